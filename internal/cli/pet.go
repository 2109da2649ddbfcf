package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/hazzzi/maenggu-run/internal/config"
	"github.com/hazzzi/maenggu-run/internal/geometry"
	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/platform"
	"github.com/hazzzi/maenggu-run/internal/report"
	"github.com/hazzzi/maenggu-run/internal/store"
	pb "github.com/hazzzi/maenggu-run/proto"
)

var summonCmd = &cobra.Command{
	Use:   "summon",
	Short: "Bring Maenggu back on screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, client, err := connectDaemon()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := rpcContext(cmd.Context())
		defer cancel()

		if _, err := client.Summon(ctx, &emptypb.Empty{}); err != nil {
			return fmt.Errorf("failed to summon: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("Maenggu is on the way."))
		return nil
	},
}

var boundsMonitors []string

var boundsCmd = &cobra.Command{
	Use:   "bounds",
	Short: "Show the overlay rectangle covering every monitor",
	Long: `Enumerate the monitors on this machine (or take them from --monitor)
and print the rectangle the overlay window must cover.

Each --monitor is "x,y,width,height" in physical pixels, e.g.
  maenggu bounds --monitor 0,0,1920,1080 --monitor -1280,0,1280,1024`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		monitors, source, err := boundsInput()
		if err != nil {
			return err
		}

		r, ok := computeBounds(cmd, monitors)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", styleBrand.Render("Monitors"), styleHint.Render("("+source+")"))
		for i, m := range monitors {
			fmt.Fprintf(out, "  %d. %s\n", i+1, m.Rect().String())
		}
		fmt.Fprintln(out)
		if !ok {
			fmt.Fprintln(out, styleWarning.Render("No monitors: no overlay bounds."))
			return nil
		}
		fmt.Fprintln(out, field("Overlay", r.String()))
		return nil
	},
}

func init() {
	boundsCmd.Flags().StringArrayVar(&boundsMonitors, "monitor", nil, "Monitor as x,y,width,height (repeatable)")
}

func boundsInput() ([]geometry.Monitor, string, error) {
	if len(boundsMonitors) > 0 {
		monitors := make([]geometry.Monitor, 0, len(boundsMonitors))
		for _, arg := range boundsMonitors {
			m, err := parseMonitor(arg)
			if err != nil {
				return nil, "", err
			}
			monitors = append(monitors, m)
		}
		return monitors, "manual", nil
	}

	adapter := localAdapter()
	monitors, err := adapter.Monitors()
	if err != nil {
		return nil, "", fmt.Errorf("failed to enumerate monitors (%s): %w", adapter.Name(), err)
	}
	return monitors, adapter.Name(), nil
}

// computeBounds asks the daemon when it is running and falls back to
// computing locally.
func computeBounds(cmd *cobra.Command, monitors []geometry.Monitor) (geometry.Rect, bool) {
	conn, client, err := connectDaemon()
	if err == nil {
		defer conn.Close()

		ctx, cancel := rpcContext(cmd.Context())
		defer cancel()

		req := &pb.BoundsRequest{Monitors: make([]*pb.Monitor, 0, len(monitors))}
		for _, m := range monitors {
			req.Monitors = append(req.Monitors, &pb.Monitor{
				Name: m.Name, X: m.X, Y: m.Y, Width: m.Width, Height: m.Height,
				ScaleFactor: m.ScaleFactor, Primary: m.Primary,
			})
		}
		if resp, err := client.ComputeBounds(ctx, req); err == nil {
			if resp.Bounds == nil {
				return geometry.Rect{}, false
			}
			return geometry.Rect{X: resp.Bounds.X, Y: resp.Bounds.Y, Width: resp.Bounds.Width, Height: resp.Bounds.Height}, true
		}
	}
	return geometry.ComputeBounds(monitors)
}

// parseMonitor parses "x,y,width,height".
func parseMonitor(arg string) (geometry.Monitor, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 4 {
		return geometry.Monitor{}, fmt.Errorf("invalid monitor %q: expected x,y,width,height", arg)
	}

	var pos [2]int32
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 32)
		if err != nil {
			return geometry.Monitor{}, fmt.Errorf("invalid monitor %q: %w", arg, err)
		}
		pos[i] = int32(v)
	}
	var size [2]uint32
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i+2]), 10, 32)
		if err != nil {
			return geometry.Monitor{}, fmt.Errorf("invalid monitor %q: %w", arg, err)
		}
		size[i] = uint32(v)
	}

	return geometry.Monitor{X: pos[0], Y: pos[1], Width: size[0], Height: size[1], ScaleFactor: 1}, nil
}

func localAdapter() platform.Adapter {
	settings, err := config.LoadSettings()
	if err != nil {
		return platform.New(nil)
	}
	return platform.New(settings.Display.Monitors)
}

var reportCopy bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a diagnostic bug report",
	Long: `Print a markdown bug report with version, monitor layout, overlay
bounds and save state. With --copy the report goes to the clipboard.

When the daemon is not running the report is built from this machine's
monitors and the save file on disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := fetchReport(cmd)
		if err != nil {
			return err
		}

		if reportCopy {
			if err := report.Copy(text); err != nil {
				return fmt.Errorf("failed to copy report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("Bug report copied to clipboard."))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVarP(&reportCopy, "copy", "c", false, "Copy the report to the clipboard")
}

func fetchReport(cmd *cobra.Command) (string, error) {
	conn, client, err := connectDaemon()
	if err == nil {
		defer conn.Close()

		ctx, cancel := rpcContext(cmd.Context())
		defer cancel()

		if resp, err := client.GetReport(ctx, &emptypb.Empty{}); err == nil {
			return resp.Markdown, nil
		}
	}
	return localReport()
}

func localReport() (string, error) {
	info := report.NewInfo()

	adapter := localAdapter()
	info.Adapter = adapter.Name()
	info.Monitors, info.MonitorsErr = adapter.Monitors()
	if info.MonitorsErr == nil {
		if r, ok := geometry.ComputeBounds(info.Monitors); ok {
			info.Bounds = &r
		}
	}

	st, err := store.Open()
	if err != nil {
		return "", err
	}
	info.SavePath = st.Path()
	state, err := st.Load()
	switch {
	case err == nil:
		info.State = state
		info.SaveHash, _ = st.Hash()
	case errors.Is(err, store.ErrNotFound):
		info.State = models.NewSaveState()
	default:
		return "", fmt.Errorf("failed to read save file: %w", err)
	}

	return report.Build(info), nil
}
