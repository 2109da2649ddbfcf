package tray

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hazzzi/maenggu-run/internal/models"
)

func TestFormatSnacks(t *testing.T) {
	assert.Equal(t, "0 snacks", formatSnacks(0))
	assert.Equal(t, "1 snack", formatSnacks(1))
	assert.Equal(t, "12 snacks", formatSnacks(12))
	assert.Equal(t, "Maenggu Run: 3 snacks", formatTooltip(3))
}

func TestFormatStats(t *testing.T) {
	lines := formatStats(models.SaveStats{
		TotalClicks:     10,
		TotalFeedings:   4,
		PeakSnacks:      7,
		SessionPlaytime: 3725,
	})

	assert.Equal(t, [4]string{
		"Total Clicks: 10",
		"Total Feedings: 4",
		"Peak Snacks: 7",
		"Session Playtime: 1h 02m",
	}, lines)
}

func TestFormatPlaytime(t *testing.T) {
	tests := []struct {
		seconds uint32
		want    string
	}{
		{0, "0s"},
		{59, "59s"},
		{61, "1m 01s"},
		{3600, "1h 00m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPlaytime(tt.seconds))
	}
}

func TestIconEmbedded(t *testing.T) {
	assert.NotEmpty(t, iconData)
	// Both the PNG and the PNG-in-ICO variants carry a PNG signature.
	assert.True(t, bytes.Contains(iconData, []byte("\x89PNG\r\n\x1a\n")))
}

func TestUpdateBeforeReadyIsNoop(t *testing.T) {
	Update(models.SaveState{Snacks: 5})
}
