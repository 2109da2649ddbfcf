package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "github.com/hazzzi/maenggu-run/proto"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snacks and lifetime stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, client, err := connectDaemon()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := rpcContext(cmd.Context())
		defer cancel()

		state, err := client.GetState(ctx, &emptypb.Empty{})
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, formatState(state))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add [amount]",
	Short: "Give Maenggu snacks (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args)
		if err != nil {
			return err
		}

		conn, client, err := connectDaemon()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := rpcContext(cmd.Context())
		defer cancel()

		resp, err := client.SnackAdd(ctx, &pb.SnackRequest{Amount: amount})
		if err != nil {
			return fmt.Errorf("failed to add snacks: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			styleSuccess.Render("Snack added."),
			styleSnacks.Render(formatCount(resp.Snacks)))
		return nil
	},
}

var spendCmd = &cobra.Command{
	Use:   "spend [amount]",
	Short: "Feed Maenggu from the stash (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args)
		if err != nil {
			return err
		}

		conn, client, err := connectDaemon()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := rpcContext(cmd.Context())
		defer cancel()

		resp, err := client.SnackSpend(ctx, &pb.SnackRequest{Amount: amount})
		if err != nil {
			return fmt.Errorf("failed to spend snacks: %w", err)
		}

		out := cmd.OutOrStdout()
		if !resp.Success {
			fmt.Fprintf(out, "%s %s\n",
				styleWarning.Render("Not enough snacks."),
				styleHint.Render("("+formatCount(resp.Snacks)+" left)"))
			return nil
		}
		fmt.Fprintf(out, "%s %s\n",
			styleSuccess.Render("Nom."),
			styleSnacks.Render(formatCount(resp.Snacks)+" left"))
		return nil
	},
}

// parseAmount reads the optional amount argument. No argument means the
// daemon applies its default.
func parseAmount(args []string) (*uint32, error) {
	if len(args) == 0 {
		return nil, nil
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: must be a whole number between 0 and 4294967295", args[0])
	}
	v := uint32(n)
	return &v, nil
}

func formatCount(n uint32) string {
	if n == 1 {
		return "1 snack"
	}
	return fmt.Sprintf("%d snacks", n)
}

func formatState(s *pb.SaveState) string {
	playtime := time.Duration(s.Stats.SessionPlaytime) * time.Second
	return fmt.Sprintf("%s %s\n\n%s\n%s\n%s\n%s",
		styleBrand.Render("Maenggu"),
		styleSnacks.Render(formatCount(s.Snacks)),
		field("Total clicks", s.Stats.TotalClicks),
		field("Total feedings", s.Stats.TotalFeedings),
		field("Peak snacks", s.Stats.PeakSnacks),
		field("Playtime", playtime.String()),
	)
}
