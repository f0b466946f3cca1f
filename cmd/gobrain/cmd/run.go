package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"gobrain/pkg/machine"
)

var runCmd = &cobra.Command{
	Use:   "run <source file>",
	Short: "Run a program to completion",
	Long: `Runs a program to completion. Output bytes are written to stdout as
they are produced; ',' reads one byte at a time from stdin, storing 0 once
stdin is exhausted.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
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
	m.Output = cmd.OutOrStdout()
	m.Input = cmd.InOrStdin()

	_, err = m.Run()
	return err
}
