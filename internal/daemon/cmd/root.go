// Package cmd is the command line of the maenggud daemon.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	foreground bool
	portFlag   int
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "maenggud",
	Short:         "Maenggu Run daemon",
	Long:          "maenggud owns the snack state, tracks the monitor layout and serves the desktop pet UI.",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{foreground: foreground, logLevel: logLevel}
		if cmd.Flags().Changed("port") {
			opts.port = &portFlag
		}
		return run(opts)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground (no system tray)")
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (0 for dynamic allocation)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
}

// Execute runs the daemon command line.
func Execute() error {
	return rootCmd.Execute()
}
