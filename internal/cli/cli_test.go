package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazzzi/maenggu-run/internal/config"
	"github.com/hazzzi/maenggu-run/internal/geometry"
	pb "github.com/hazzzi/maenggu-run/proto"
)

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount(nil)
	require.NoError(t, err)
	assert.Nil(t, amount)

	amount, err = parseAmount([]string{"0"})
	require.NoError(t, err)
	require.NotNil(t, amount)
	assert.Equal(t, uint32(0), *amount)

	amount, err = parseAmount([]string{"4294967295"})
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), *amount)

	for _, bad := range []string{"-1", "4294967296", "abc", "1.5", ""} {
		_, err := parseAmount([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseMonitor(t *testing.T) {
	m, err := parseMonitor("-1280, 0, 1280, 1024")
	require.NoError(t, err)
	assert.Equal(t, geometry.Monitor{X: -1280, Y: 0, Width: 1280, Height: 1024, ScaleFactor: 1}, m)

	for _, bad := range []string{"", "1,2,3", "1,2,3,4,5", "a,0,1,1", "0,0,-1,1", "0,0,1,x"} {
		_, err := parseMonitor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseToggle(t *testing.T) {
	on, err := parseToggle("ON")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := parseToggle("off")
	require.NoError(t, err)
	assert.False(t, off)

	_, err = parseToggle("maybe")
	assert.Error(t, err)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0 snacks", formatCount(0))
	assert.Equal(t, "1 snack", formatCount(1))
	assert.Equal(t, "42 snacks", formatCount(42))
}

func TestFormatStateIncludesStats(t *testing.T) {
	out := formatState(&pb.SaveState{
		Snacks: 3,
		Stats:  pb.SaveStats{TotalClicks: 10, TotalFeedings: 4, PeakSnacks: 6, SessionPlaytime: 3600},
	})
	assert.Contains(t, out, "3 snacks")
	assert.Contains(t, out, "Total clicks")
	assert.Contains(t, out, "1h0m0s")
}

func TestConnectDaemonWithoutDaemon(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	_, _, err := connectDaemon()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon not running")
}

func TestBoundsCommandManualMonitors(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"bounds", "--monitor", "0,0,1920,1080", "--monitor", "-1280,0,1280,1024"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		boundsMonitors = nil
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "manual")
	assert.Contains(t, out.String(), geometry.Rect{X: -1280, Y: 0, Width: 3200, Height: 1080}.String())
}

func TestSettingsPathCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"settings", "path"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), home)
	assert.Contains(t, out.String(), "save.json")
}
