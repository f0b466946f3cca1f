package parser

import (
	"errors"
	"fmt"
)

// Command identifies what an instruction does when executed.
type Command int

const (
	CmdNoOp Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdDecrement
	CmdIncrement
	CmdOutput
	CmdInput
	CmdJumpIfZero
	CmdJumpIfNonZero
)

var (
	ErrUnmatchedClose = errors.New("unmatched ']'")
	ErrUnmatchedOpen  = errors.New("unmatched '['")
)

// Instruction is one parsed unit per source byte. Every byte of the source
// produces exactly one Instruction, so instruction index i is also the offset
// of its character in the source; comment characters and whitespace become
// NoOps. Target is the index of the matching delimiter and is meaningful only
// for the jump commands. Line and Col are 0-based and exist for display.
type Instruction struct {
	Cmd    Command
	Target int
	Char   byte
	Line   int
	Col    int
}

func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "<"
	case CmdMoveRight:
		return ">"
	case CmdDecrement:
		return "-"
	case CmdIncrement:
		return "+"
	case CmdOutput:
		return "."
	case CmdInput:
		return ","
	case CmdJumpIfZero:
		return "["
	case CmdJumpIfNonZero:
		return "]"
	default:
		return "nop"
	}
}

// Parse converts source text into a linked instruction sequence in a single
// left-to-right pass. Loop delimiters are matched with an index stack: '['
// emits a placeholder and pushes its index; ']' pops, emits a jump back to
// the popped index, and patches the placeholder to point forward at the
// current index. After linking, every CmdJumpIfZero at i with Target j pairs
// with a CmdJumpIfNonZero at j whose Target is i.
func Parse(src string) ([]Instruction, error) {
	instructions := make([]Instruction, 0, len(src))
	var brackStack []int

	line, col := 0, 0
	for i := 0; i < len(src); i++ {
		ch := src[i]
		instr := Instruction{Char: ch, Line: line, Col: col}

		switch ch {
		case '<':
			instr.Cmd = CmdMoveLeft
		case '>':
			instr.Cmd = CmdMoveRight
		case '-':
			instr.Cmd = CmdDecrement
		case '+':
			instr.Cmd = CmdIncrement
		case '.':
			instr.Cmd = CmdOutput
		case ',':
			instr.Cmd = CmdInput
		case '[':
			// Placeholder; Target is patched when the matching ']' is found.
			instr.Cmd = CmdJumpIfZero
			brackStack = append(brackStack, i)
		case ']':
			if len(brackStack) == 0 {
				return nil, fmt.Errorf("%w at line %d, column %d", ErrUnmatchedClose, line+1, col+1)
			}
			open := brackStack[len(brackStack)-1]
			brackStack = brackStack[:len(brackStack)-1]
			instructions[open].Target = i
			instr.Cmd = CmdJumpIfNonZero
			instr.Target = open
		default:
			instr.Cmd = CmdNoOp
		}

		instructions = append(instructions, instr)

		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	if len(brackStack) > 0 {
		open := instructions[brackStack[len(brackStack)-1]]
		return nil, fmt.Errorf("%w at line %d, column %d", ErrUnmatchedOpen, open.Line+1, open.Col+1)
	}

	return instructions, nil
}
