// Package main is the entry point for the confit CLI.
package main

import (
	"os"

	"github.com/thoreinstein/confit/cmd/confit/commands"
	"github.com/thoreinstein/confit/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
