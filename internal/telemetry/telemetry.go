// Package telemetry reports operational failures (save errors, monitor
// enumeration failures) when the user has opted in.
package telemetry

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/posthog/posthog-go"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
	"github.com/hazzzi/maenggu-run/internal/models"
)

// Event names.
const (
	EventSaveFailed    = "save_failed"
	EventLoadFailed    = "load_failed"
	EventMonitorsError = "monitors_failed"
	EventDaemonStarted = "daemon_started"
	EventSaveReloaded  = "save_reloaded"
)

// Client receives telemetry events. Implementations must not block.
type Client interface {
	Capture(event string, props map[string]any)
	Close() error
}

// New returns a PostHog-backed client when telemetry is enabled and
// configured, otherwise a no-op client.
func New(cfg models.TelemetryConfig, logger *slog.Logger) (Client, error) {
	if !cfg.Enabled || cfg.APIKey == "" {
		return Nop{}, nil
	}

	ph, err := posthog.NewWithConfig(cfg.APIKey, posthog.Config{Endpoint: cfg.Endpoint})
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry client: %w", err)
	}

	distinctID := cfg.InstallID
	if distinctID == "" {
		distinctID = "anonymous"
	}

	return &posthogClient{
		client:     ph,
		distinctID: distinctID,
		logger:     logger.With("component", "telemetry"),
	}, nil
}

// Nop discards every event.
type Nop struct{}

func (Nop) Capture(string, map[string]any) {}
func (Nop) Close() error                    { return nil }

type posthogClient struct {
	client     posthog.Client
	distinctID string
	logger     *slog.Logger
}

func (c *posthogClient) Capture(event string, props map[string]any) {
	p := posthog.NewProperties().
		Set("version", buildinfo.Version).
		Set("os", runtime.GOOS).
		Set("arch", runtime.GOARCH)
	for k, v := range props {
		p.Set(k, v)
	}

	if err := c.client.Enqueue(posthog.Capture{
		DistinctId: c.distinctID,
		Event:      event,
		Properties: p,
	}); err != nil {
		c.logger.Debug("telemetry enqueue failed", "event", event, "error", err)
	}
}

func (c *posthogClient) Close() error {
	return c.client.Close()
}
