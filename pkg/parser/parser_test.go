package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCommandTable(t *testing.T) {
	src := "<>-+.,x \n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(prog) != len(src) {
		t.Fatalf("expected %d instructions (one per byte), got %d", len(src), len(prog))
	}

	want := []Command{
		CmdMoveLeft, CmdMoveRight, CmdDecrement, CmdIncrement,
		CmdOutput, CmdInput, CmdNoOp, CmdNoOp, CmdNoOp,
	}
	for i, cmd := range want {
		if prog[i].Cmd != cmd {
			t.Errorf("instruction %d: expected %v, got %v", i, cmd, prog[i].Cmd)
		}
		if prog[i].Char != src[i] {
			t.Errorf("instruction %d: expected char %q, got %q", i, src[i], prog[i].Char)
		}
	}
}

func TestParseBracketLinking(t *testing.T) {
	// Index:  0123456
	prog, err := Parse("[[]][x]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		idx    int
		cmd    Command
		target int
	}{
		{0, CmdJumpIfZero, 3},
		{1, CmdJumpIfZero, 2},
		{2, CmdJumpIfNonZero, 1},
		{3, CmdJumpIfNonZero, 0},
		{4, CmdJumpIfZero, 6},
		{6, CmdJumpIfNonZero, 4},
	}
	for _, tc := range tests {
		if prog[tc.idx].Cmd != tc.cmd {
			t.Errorf("instruction %d: expected %v, got %v", tc.idx, tc.cmd, prog[tc.idx].Cmd)
		}
		if prog[tc.idx].Target != tc.target {
			t.Errorf("instruction %d: expected target %d, got %d", tc.idx, tc.target, prog[tc.idx].Target)
		}
	}
}

// Following a forward jump's target and then that instruction's own target
// must return to the original index, for every delimiter pair.
func TestParseJumpPairsMutuallyConsistent(t *testing.T) {
	programs := []string{
		"[]",
		"[[]]",
		"[][]",
		"+[>[-]<[[]]]",
		"++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.",
	}
	for _, src := range programs {
		prog, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", src, err)
		}
		for i, instr := range prog {
			if instr.Cmd != CmdJumpIfZero {
				continue
			}
			partner := prog[instr.Target]
			if partner.Cmd != CmdJumpIfNonZero {
				t.Errorf("Parse(%q): instruction %d targets %d which is %v, not ']'",
					src, i, instr.Target, partner.Cmd)
			}
			if partner.Target != i {
				t.Errorf("Parse(%q): pair %d<->%d is not mutual (back target %d)",
					src, i, instr.Target, partner.Target)
			}
		}
	}
}

func TestParseUnmatchedClose(t *testing.T) {
	for _, src := range []string{"]", "[]]", "+-]", "[][]]["} {
		_, err := Parse(src)
		if !errors.Is(err, ErrUnmatchedClose) {
			t.Errorf("Parse(%q): expected ErrUnmatchedClose, got %v", src, err)
		}
	}
}

func TestParseUnmatchedOpen(t *testing.T) {
	for _, src := range []string{"[", "[[]", "+[-", "[]["} {
		_, err := Parse(src)
		if !errors.Is(err, ErrUnmatchedOpen) {
			t.Errorf("Parse(%q): expected ErrUnmatchedOpen, got %v", src, err)
		}
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	// The stray ']' sits on line 2, column 3 (1-based).
	_, err := Parse("+-\n++]")
	if !errors.Is(err, ErrUnmatchedClose) {
		t.Fatalf("expected ErrUnmatchedClose, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), "column 3") {
		t.Errorf("error should carry the source position, got %q", err.Error())
	}

	// The innermost unmatched '[' sits on line 1, column 4.
	_, err = Parse("[+[[\n]")
	if !errors.Is(err, ErrUnmatchedOpen) {
		t.Fatalf("expected ErrUnmatchedOpen, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 1") || !strings.Contains(err.Error(), "column 4") {
		t.Errorf("error should point at the innermost unmatched '[', got %q", err.Error())
	}
}

func TestParsePositions(t *testing.T) {
	prog, err := Parse("+-\n.\n\n,")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		idx       int
		line, col int
	}{
		{0, 0, 0}, // '+'
		{1, 0, 1}, // '-'
		{2, 0, 2}, // '\n'
		{3, 1, 0}, // '.'
		{4, 1, 1}, // '\n'
		{5, 2, 0}, // '\n'
		{6, 3, 0}, // ','
	}
	for _, tc := range tests {
		if prog[tc.idx].Line != tc.line || prog[tc.idx].Col != tc.col {
			t.Errorf("instruction %d: expected position (%d,%d), got (%d,%d)",
				tc.idx, tc.line, tc.col, prog[tc.idx].Line, prog[tc.idx].Col)
		}
	}
}

func TestParseEmptySource(t *testing.T) {
	prog, err := Parse("")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(prog) != 0 {
		t.Errorf("expected empty instruction sequence, got %d instructions", len(prog))
	}
}
