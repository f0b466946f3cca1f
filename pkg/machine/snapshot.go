package machine

// Snapshot is a read-only copy of machine state for a presentation layer.
// Taking one never mutates the machine, and mutating the machine afterwards
// never changes a snapshot already taken.
type Snapshot struct {
	// Tape holds cells 0 through max(Extent, DP).
	Tape []byte
	DP   int
	PC   int

	Status Status
	Err    error

	// Output is every byte emitted by '.' so far, in order.
	Output []byte

	// Source location of the instruction at PC. Char is 0 once the
	// program counter has run off the end of the sequence.
	Char byte
	Line int
	Col  int
}

// Snapshot copies the displayable machine state. The caller must not be
// stepping the machine concurrently; the Machine is single-owner.
func (m *Machine) Snapshot() Snapshot {
	n := m.Extent
	if m.DP > n {
		n = m.DP
	}
	tape := make([]byte, n+1)
	copy(tape, m.Tape[:n+1])

	s := Snapshot{
		Tape:   tape,
		DP:     m.DP,
		PC:     m.PC,
		Status: m.status,
		Err:    m.err,
		Output: append([]byte(nil), m.outLog...),
	}
	if m.PC < len(m.Prog) {
		instr := m.Prog[m.PC]
		s.Char = instr.Char
		s.Line = instr.Line
		s.Col = instr.Col
	}
	return s
}
