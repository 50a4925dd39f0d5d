// Package main provides the entry point for the slashgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/slashgen-ai/slashgen/cmd/slashgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
