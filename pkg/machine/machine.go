package machine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gobrain/pkg/parser"
)

// DefaultTapeSize is the canonical 30,000-cell tape.
const DefaultTapeSize = 30000

var (
	ErrTapeUnderflow = errors.New("tape underflow")
	ErrTapeOverflow  = errors.New("tape overflow")
)

// Status is the lifecycle state of a Machine. Completed and Failed are
// terminal; Step on a terminal machine is a no-op.
type Status int

const (
	Running Status = iota
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Machine executes a parsed instruction sequence over a byte tape. It is
// exclusively owned by the goroutine driving it; nothing in here locks.
type Machine struct {
	Prog []parser.Instruction
	Tape []byte

	// PC indexes Prog; DP indexes Tape.
	PC int
	DP int

	// Extent is the highest tape index that has ever been raised from zero.
	// It bounds how much tape a viewer displays and is never read by
	// execution itself.
	Extent int

	// Output is where '.' bytes are streamed as they are produced.
	// If nil, os.Stdout is used.
	Output io.Writer
	// Input is where ',' reads one byte from. If nil, os.Stdin is used.
	Input io.Reader

	status Status
	err    error
	outLog []byte
}

// New parses src and constructs a machine over a zeroed tape. An optional
// tape size may be provided; it defaults to DefaultTapeSize. A parse failure
// returns no machine.
func New(src string, tapeSize ...int) (*Machine, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return FromProgram(prog, tapeSize...)
}

// FromProgram constructs a machine from an already-parsed instruction
// sequence. The sequence must not be mutated afterwards.
func FromProgram(prog []parser.Instruction, tapeSize ...int) (*Machine, error) {
	size := DefaultTapeSize
	if len(tapeSize) > 0 {
		size = tapeSize[0]
	}
	if size < 1 {
		return nil, fmt.Errorf("tape size must be at least 1 cell, got %d", size)
	}
	return &Machine{
		Prog: prog,
		Tape: make([]byte, size),
	}, nil
}

// State reports the machine's lifecycle status.
func (m *Machine) State() Status {
	return m.status
}

// Err reports the sticky runtime error, if the machine has failed.
func (m *Machine) Err() error {
	return m.err
}

func (m *Machine) outputSink() io.Writer {
	if m.Output != nil {
		return m.Output
	}
	return os.Stdout
}

func (m *Machine) inputSource() io.Reader {
	if m.Input != nil {
		return m.Input
	}
	return os.Stdin
}

// Step advances the machine by exactly one non-NoOp instruction: it skips
// forward over NoOps, executes the instruction under the program counter,
// then advances the counter unless the instruction was a taken jump.
// Running off the end of the sequence is a clean Completed, not an error.
func (m *Machine) Step() (Status, error) {
	if m.status != Running {
		return m.status, m.err
	}

	for m.PC < len(m.Prog) && m.Prog[m.PC].Cmd == parser.CmdNoOp {
		m.PC++
	}
	if m.PC >= len(m.Prog) {
		m.status = Completed
		return m.status, nil
	}

	instr := m.Prog[m.PC]
	jumped := false

	switch instr.Cmd {
	case parser.CmdMoveLeft:
		if m.DP == 0 {
			return m.fail(ErrTapeUnderflow, instr)
		}
		m.DP--

	case parser.CmdMoveRight:
		if m.DP == len(m.Tape)-1 {
			return m.fail(ErrTapeOverflow, instr)
		}
		m.DP++

	case parser.CmdDecrement:
		m.Tape[m.DP]-- // wraps 0 -> 255
		if m.Tape[m.DP] == 0 && m.DP == m.Extent {
			// The extent cell just went dark; rescan leftward for the
			// next nonzero cell, stopping at index 0.
			p := m.DP
			for p > 0 && m.Tape[p] == 0 {
				p--
			}
			m.Extent = p
		}

	case parser.CmdIncrement:
		if m.Tape[m.DP] == 0 && m.DP > m.Extent {
			m.Extent = m.DP
		}
		m.Tape[m.DP]++ // wraps 255 -> 0

	case parser.CmdOutput:
		b := m.Tape[m.DP]
		m.outLog = append(m.outLog, b)
		if _, err := m.outputSink().Write([]byte{b}); err != nil {
			m.status = Failed
			m.err = fmt.Errorf("output: %w", err)
			return m.status, m.err
		}

	case parser.CmdInput:
		buf := make([]byte, 1)
		_, err := io.ReadFull(m.inputSource(), buf)
		switch {
		case err == nil:
			if buf[0] != 0 && m.DP > m.Extent {
				m.Extent = m.DP
			}
			m.Tape[m.DP] = buf[0]
		case errors.Is(err, io.EOF):
			// Exhausted input stores 0; this is policy, not a fault.
			m.Tape[m.DP] = 0
		default:
			m.status = Failed
			m.err = fmt.Errorf("input: %w", err)
			return m.status, m.err
		}

	case parser.CmdJumpIfZero:
		if m.Tape[m.DP] == 0 {
			m.PC = instr.Target
			jumped = true
		}

	case parser.CmdJumpIfNonZero:
		if m.Tape[m.DP] != 0 {
			m.PC = instr.Target
			jumped = true
		}
	}

	if !jumped {
		m.PC++
	}
	if m.PC >= len(m.Prog) {
		m.status = Completed
	}
	return m.status, nil
}

// Run steps the machine until it reaches a terminal status. It always
// returns; deciding whether a Failed run should terminate the process is
// the caller's business.
func (m *Machine) Run() (Status, error) {
	for m.status == Running {
		if _, err := m.Step(); err != nil {
			return m.status, err
		}
	}
	return m.status, m.err
}

func (m *Machine) fail(kind error, instr parser.Instruction) (Status, error) {
	m.status = Failed
	m.err = fmt.Errorf("%w at '%c' (line %d, column %d)", kind, instr.Char, instr.Line+1, instr.Col+1)
	return m.status, m.err
}
