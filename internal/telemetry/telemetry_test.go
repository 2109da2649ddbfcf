package telemetry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazzzi/maenggu-run/internal/models"
)

func TestNewReturnsNopUnlessConfigured(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		cfg  models.TelemetryConfig
	}{
		{name: "disabled", cfg: models.TelemetryConfig{Enabled: false, APIKey: "phc_key"}},
		{name: "enabled without key", cfg: models.TelemetryConfig{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, logger)
			require.NoError(t, err)
			assert.IsType(t, Nop{}, c)

			c.Capture(EventSaveFailed, map[string]any{"error": "boom"})
			assert.NoError(t, c.Close())
		})
	}
}
