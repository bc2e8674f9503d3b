// Package main is the entry point for the tasktree CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tasktree/tasktree/internal/app"
	"github.com/tasktree/tasktree/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	container := app.New(version)
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
