// Package main is the entry point for the maenggud daemon.
package main

import (
	"os"

	"github.com/hazzzi/maenggu-run/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
