// Package report renders the diagnostic bug report shared by the tray,
// the CLI and the HTTP endpoint.
package report

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.design/x/clipboard"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
	"github.com/hazzzi/maenggu-run/internal/geometry"
	"github.com/hazzzi/maenggu-run/internal/models"
)

// ErrClipboardUnavailable is returned when no system clipboard can be opened.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Info is everything the report describes.
type Info struct {
	Version     string
	Commit      string
	OS          string
	Arch        string
	Adapter     string
	Monitors    []geometry.Monitor
	MonitorsErr error
	Bounds      *geometry.Rect
	State       models.SaveState
	SavePath    string
	SaveHash    uint64
	GeneratedAt time.Time
}

// NewInfo fills in build and host details.
func NewInfo() Info {
	return Info{
		Version:     buildinfo.Version,
		Commit:      buildinfo.CommitHash,
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		GeneratedAt: time.Now().UTC(),
	}
}

// Build renders info as markdown.
func Build(info Info) string {
	var b strings.Builder

	b.WriteString("## Maenggu Bug Report\n\n")
	fmt.Fprintf(&b, "**App Version:** %s", info.Version)
	if info.Commit != "" && info.Commit != "unknown" {
		fmt.Fprintf(&b, " (%s)", info.Commit)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "**OS:** %s (%s)\n", info.OS, info.Arch)
	if !info.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "**Generated:** %s\n", info.GeneratedAt.Format(time.RFC3339))
	}
	b.WriteString("\n")

	if info.Adapter != "" {
		fmt.Fprintf(&b, "**Display Backend:** %s\n", info.Adapter)
	}
	if info.MonitorsErr != nil {
		fmt.Fprintf(&b, "**Monitors:** unavailable (%v)\n\n", info.MonitorsErr)
	} else {
		fmt.Fprintf(&b, "**Monitors:** %d\n\n", len(info.Monitors))
		for i, m := range info.Monitors {
			fmt.Fprintf(&b, "- Monitor %d: pos=(%d, %d), size=%dx%d, scale=%s",
				i+1, m.X, m.Y, m.Width, m.Height, formatScale(m.ScaleFactor))
			if m.Name != "" {
				fmt.Fprintf(&b, ", name=%s", m.Name)
			}
			if m.Primary {
				b.WriteString(", primary")
			}
			b.WriteString("\n")
		}
	}

	if info.Bounds != nil {
		fmt.Fprintf(&b, "\n**Overlay Bounds:** %s\n", info.Bounds.String())
	} else {
		b.WriteString("\n**Overlay Bounds:** none\n")
	}

	b.WriteString("\n**State:**\n")
	fmt.Fprintf(&b, "- Snacks: %d\n", info.State.Snacks)
	fmt.Fprintf(&b, "- Total Clicks: %d\n", info.State.Stats.TotalClicks)
	fmt.Fprintf(&b, "- Total Feedings: %d\n", info.State.Stats.TotalFeedings)
	fmt.Fprintf(&b, "- Peak Snacks: %d\n", info.State.Stats.PeakSnacks)
	fmt.Fprintf(&b, "- Session Playtime: %ds\n", info.State.Stats.SessionPlaytime)

	if info.SavePath != "" {
		fmt.Fprintf(&b, "\n**Save File:** %s", info.SavePath)
		if info.SaveHash != 0 {
			fmt.Fprintf(&b, " (xxh3 %016x)", info.SaveHash)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatScale(f float64) string {
	if f == 0 {
		f = 1
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var (
	clipboardOnce sync.Once
	clipboardOK   bool
)

// Copy writes text to the system clipboard.
func Copy(text string) error {
	clipboardOnce.Do(func() {
		clipboardOK = clipboard.Init() == nil
	})
	if !clipboardOK {
		return ErrClipboardUnavailable
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
