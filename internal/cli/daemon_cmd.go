package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/hazzzi/maenggu-run/internal/config"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the maenggud daemon",
	Long:  `Start, stop and inspect the maenggud daemon process.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		fmt.Fprintf(out, "Daemon is already running (PID %d, port %d).\n", info.PID, info.Port)
		return nil
	}

	fmt.Fprint(out, "Starting daemon...")
	if err := startDaemon(); err != nil {
		fmt.Fprintln(out)
		return err
	}

	_, info, err = config.IsDaemonRunning()
	if err != nil || info == nil {
		fmt.Fprintln(out, styleSuccess.Render(" started."))
		return nil
	}
	fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf(" started (PID %d, port %d).", info.PID, info.Port)))
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return err
	}
	if !running {
		fmt.Fprintln(out, styleWarning.Render("Daemon is not running."))
		return nil
	}

	fmt.Fprintln(out, styleSuccess.Render("Daemon is running."))
	fmt.Fprintln(out, field("Host", info.Host))
	fmt.Fprintln(out, field("Port", info.Port))
	fmt.Fprintln(out, field("PID", info.PID))
	fmt.Fprintln(out, field("Uptime", info.Uptime(time.Now())))

	conn, client, err := connectDaemon()
	if err != nil {
		return nil
	}
	defer conn.Close()

	ctx, cancel := rpcContext(cmd.Context())
	defer cancel()

	status, err := client.GetStatus(ctx, &emptypb.Empty{})
	if err != nil {
		// Non-fatal: the pid file already answered the question.
		return nil
	}
	fmt.Fprintln(out, field("Version", status.Version))
	fmt.Fprintln(out, field("Display", status.Adapter))
	fmt.Fprintln(out, field("Subscribers", status.Subscribers))
	if status.UpdateAvailable {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styleUpdate.Render("Update available: "+status.LatestVersion)+
			styleHint.Render("  (run: maenggu update)"))
	}
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if !running {
		fmt.Fprintln(out, "Daemon is not running.")
		return nil
	}

	if err := requestShutdown(cmd); err != nil {
		// Older or wedged daemons still honour SIGTERM on unix.
		process, findErr := os.FindProcess(info.PID)
		if findErr != nil {
			return fmt.Errorf("failed to find daemon process: %w", findErr)
		}
		if sigErr := process.Signal(syscall.SIGTERM); sigErr != nil {
			return fmt.Errorf("failed to stop daemon: %w", err)
		}
	}

	if !waitForDaemon(false, 5*time.Second) {
		return fmt.Errorf("daemon did not stop within timeout")
	}
	fmt.Fprintln(out, styleSuccess.Render("Daemon stopped."))
	return nil
}

func requestShutdown(cmd *cobra.Command) error {
	conn, client, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext(cmd.Context())
	defer cancel()

	_, err = client.Shutdown(ctx, &emptypb.Empty{})
	return err
}
