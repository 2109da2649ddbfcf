// Package cli implements the maenggu CLI commands.
package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var rpcTimeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "maenggu",
	Short: "Feed and manage Maenggu, the desktop pet",
	Long: `maenggu talks to the maenggud daemon to inspect and change the pet's
snack stash, summon it, inspect the overlay geometry and collect bug reports.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetErrPrefix(styleError.Render("Error:"))
	rootCmd.PersistentFlags().DurationVar(&rpcTimeout, "timeout", 5*time.Second, "Timeout for daemon requests")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(boundsCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(spendCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(summonCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}
