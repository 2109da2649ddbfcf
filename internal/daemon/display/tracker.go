// Package display keeps the overlay bounds in sync with the monitor layout.
package display

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hazzzi/maenggu-run/internal/geometry"
	"github.com/hazzzi/maenggu-run/internal/platform"
	"github.com/hazzzi/maenggu-run/internal/telemetry"
)

// DefaultPollInterval is used when settings carry a non-positive interval.
const DefaultPollInterval = 5 * time.Second

// BoundsSink is told about every bounds change.
type BoundsSink interface {
	BoundsChanged(r geometry.Rect, ok bool)
}

// Tracker polls the platform adapter and caches the last computed bounds.
type Tracker struct {
	adapter  platform.Adapter
	sink     BoundsSink
	interval time.Duration
	logger   *slog.Logger
	tel      telemetry.Client

	mu       sync.RWMutex
	bounds   geometry.Rect
	ok       bool
	monitors []geometry.Monitor
	polled   bool
}

// NewTracker creates a tracker. sink, logger and tel may be nil.
func NewTracker(adapter platform.Adapter, sink BoundsSink, interval time.Duration, logger *slog.Logger, tel telemetry.Client) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if tel == nil {
		tel = telemetry.Nop{}
	}
	return &Tracker{
		adapter:  adapter,
		sink:     sink,
		interval: interval,
		logger:   logger,
		tel:      tel,
	}
}

// Current returns the latest bounds. ok is false when no monitor was seen.
func (t *Tracker) Current() (geometry.Rect, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bounds, t.ok
}

// Monitors returns the monitors seen by the last successful poll.
func (t *Tracker) Monitors() []geometry.Monitor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]geometry.Monitor(nil), t.monitors...)
}

// Adapter returns the platform adapter the tracker polls.
func (t *Tracker) Adapter() platform.Adapter {
	return t.adapter
}

// Refresh enumerates monitors once. On failure the previous bounds are kept.
// The sink is notified on the first successful poll and on every change.
func (t *Tracker) Refresh() (geometry.Rect, bool) {
	monitors, err := t.adapter.Monitors()
	if err != nil {
		t.logger.Warn("monitor enumeration failed", "adapter", t.adapter.Name(), "error", err)
		t.tel.Capture(telemetry.EventMonitorsError, map[string]any{
			"adapter": t.adapter.Name(),
			"error":   err.Error(),
		})
		return t.Current()
	}

	r, ok := geometry.ComputeBounds(monitors)

	t.mu.Lock()
	changed := !t.polled || r != t.bounds || ok != t.ok
	t.bounds, t.ok = r, ok
	t.monitors = monitors
	t.polled = true
	t.mu.Unlock()

	if changed {
		if ok {
			t.logger.Info("overlay bounds changed", "bounds", r.String(), "monitors", len(monitors))
		} else {
			t.logger.Warn("no monitors available")
		}
		if t.sink != nil {
			t.sink.BoundsChanged(r, ok)
		}
	}
	return r, ok
}

// Run refreshes immediately and then every poll interval until ctx is done.
func (t *Tracker) Run(ctx context.Context) {
	t.Refresh()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Refresh()
		}
	}
}
