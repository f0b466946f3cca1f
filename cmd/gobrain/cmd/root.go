package cmd

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"gobrain/pkg/config"
	"gobrain/pkg/machine"
	"gobrain/pkg/parser"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gobrain",
	Short: "An interpreter for the classic eight-instruction tape language",
	Long: `gobrain interprets programs written in the classic eight-instruction
tape language: a byte tape, a data pointer, and < > - + . , [ ].

Commands:
  run    - run a program to completion, streaming its output
  debug  - step through a program interactively, watching tape and source`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "gobrain.toml", "config file path")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// Exit codes: 1 for an unreadable source file, 2 for a parse failure,
// 3 for a runtime tape fault. Anything else unexpected also exits 1.
const (
	exitIOError      = 1
	exitParseError   = 2
	exitRuntimeFault = 3
)

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, parser.ErrUnmatchedOpen), errors.Is(err, parser.ErrUnmatchedClose):
		return exitParseError
	case errors.Is(err, machine.ErrTapeUnderflow), errors.Is(err, machine.ErrTapeOverflow):
		return exitRuntimeFault
	case errors.As(err, &pathErr):
		return exitIOError
	default:
		return exitIOError
	}
}
