// Package main is the entry point for the appman CLI.
package main

import (
	"os"

	"github.com/danareia/appman/cmd/appman/commands"
	"github.com/danareia/appman/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}
