package main

import (
	"fmt"
	"os"

	"gobrain/cmd/gobrain/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gobrain: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
