package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gobrain/pkg/machine"
	"gobrain/pkg/tui"
)

var debugInput string

var debugCmd = &cobra.Command{
	Use:   "debug <source file>",
	Short: "Step through a program interactively",
	Long: `Opens the interactive stepper: tape cells and source are displayed
side by side with the data pointer and current instruction highlighted.

Keys:
  a / space - advance one instruction
  r         - toggle autorun
  q         - quit

The terminal is owned by the debugger, so ',' cannot read from stdin here;
supply program input with --input, or it reads as exhausted (stores 0).`,
	Args: cobra.ExactArgs(1),
	RunE: runDebug,
}

func init() {
	debugCmd.Flags().StringVar(&debugInput, "input", "", "file supplying bytes for ','")
	rootCmd.AddCommand(debugCmd)
}

func runDebug(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	m, err := machine.New(string(source), cfg.Tape.Cells)
	if err != nil {
		return err
	}

	// The snapshot carries accumulated output for the view; nothing should
	// write to the terminal behind bubbletea's back.
	m.Output = io.Discard
	if debugInput != "" {
		data, err := os.ReadFile(debugInput)
		if err != nil {
			return err
		}
		m.Input = bytes.NewReader(data)
	} else {
		m.Input = strings.NewReader("")
	}

	p := tea.NewProgram(
		tui.NewModel(m, string(source), cfg.Display),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
