package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hazzzi/maenggu-run/internal/geometry"
	"github.com/hazzzi/maenggu-run/internal/models"
)

func sampleInfo() Info {
	bounds := geometry.Rect{X: -1280, Y: 0, Width: 3200, Height: 1080}
	return Info{
		Version: "0.3.1",
		Commit:  "abc1234",
		OS:      "windows",
		Arch:    "amd64",
		Adapter: "win32",
		Monitors: []geometry.Monitor{
			{Name: `\\.\DISPLAY1`, X: 0, Y: 0, Width: 1920, Height: 1080, ScaleFactor: 1.5, Primary: true},
			{X: -1280, Y: 56, Width: 1280, Height: 1024},
		},
		Bounds: &bounds,
		State: models.SaveState{
			Version: 1,
			Snacks:  12,
			Stats:   models.SaveStats{TotalClicks: 40, TotalFeedings: 28, PeakSnacks: 15, SessionPlaytime: 600},
		},
		SavePath:    "/home/u/.config/maenggu-run/save.json",
		SaveHash:    0xdeadbeef,
		GeneratedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuild(t *testing.T) {
	out := Build(sampleInfo())

	for _, want := range []string{
		"## Maenggu Bug Report",
		"**App Version:** 0.3.1 (abc1234)",
		"**OS:** windows (amd64)",
		"**Generated:** 2026-10-01T12:00:00Z",
		"**Display Backend:** win32",
		"**Monitors:** 2",
		`- Monitor 1: pos=(0, 0), size=1920x1080, scale=1.5, name=\\.\DISPLAY1, primary`,
		"- Monitor 2: pos=(-1280, 56), size=1280x1024, scale=1",
		"**Overlay Bounds:** pos=(-1280, 0), size=3200x1080",
		"- Snacks: 12",
		"- Total Clicks: 40",
		"- Total Feedings: 28",
		"- Peak Snacks: 15",
		"- Session Playtime: 600s",
		"(xxh3 00000000deadbeef)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestBuildWithoutMonitors(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "enumeration failed",
			info: Info{MonitorsErr: errors.New("no display")},
			want: "**Monitors:** unavailable (no display)",
		},
		{
			name: "empty list",
			info: Info{},
			want: "**Monitors:** 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Build(tt.info)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "**Overlay Bounds:** none")
			assert.NotContains(t, out, "- Monitor 1")
			assert.NotContains(t, out, "**Save File:**")
		})
	}
}

func TestBuildOmitsUnknownCommit(t *testing.T) {
	info := sampleInfo()
	info.Commit = "unknown"
	out := Build(info)

	line := strings.SplitN(out, "\n", 4)[2]
	assert.Equal(t, "**App Version:** 0.3.1", line)
}

func TestNewInfo(t *testing.T) {
	info := NewInfo()
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
	assert.False(t, info.GeneratedAt.IsZero())
}
