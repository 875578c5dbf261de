// Package cmd wires the gitlit subcommands onto a cobra root command.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jeerrry/gitlit/store"
)

// RootCmd is the gitlit root command. Subcommands register themselves
// onto it from init functions in this package.
var RootCmd = &cobra.Command{
	Use:   "gitlit",
	Short: "A minimal, content-addressed object store and Git smart-HTTP client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, printing a colored diagnostic to
// stderr and exiting with status 1 on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// currentStore opens the store rooted at the current working
// directory, the way every subcommand but init and clone expects a
// repository to already exist there.
func currentStore() *store.Store {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return store.New(dir)
}
