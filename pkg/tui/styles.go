package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorCursor = lipgloss.Color("4") // blue, read head + current instruction
	colorOutput = lipgloss.Color("2") // green, accumulated program output
	colorError  = lipgloss.Color("1")
	colorMuted  = lipgloss.Color("8")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	// CursorStyle marks the cell under the data pointer and the source
	// character under the program counter.
	CursorStyle = lipgloss.NewStyle().
			Background(colorCursor)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorOutput)

	StatusDoneStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
