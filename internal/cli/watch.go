package cli

import (
	"github.com/spf13/cobra"

	"github.com/hazzzi/maenggu-run/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of Maenggu's snacks and events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := EnsureDaemon(); err != nil {
			return err
		}

		conn, client, err := connectDaemon()
		if err != nil {
			return err
		}
		defer conn.Close()

		return tui.Run(client)
	},
}
