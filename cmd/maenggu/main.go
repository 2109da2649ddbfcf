// Package main is the entry point for the maenggu CLI.
package main

import (
	"os"

	"github.com/hazzzi/maenggu-run/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
