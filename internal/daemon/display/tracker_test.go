package display

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

type fakeAdapter struct {
	mu       sync.Mutex
	monitors []geometry.Monitor
	err      error
	calls    int
}

func (f *fakeAdapter) Name() string { return "fake" }

func (f *fakeAdapter) Monitors() ([]geometry.Monitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]geometry.Monitor(nil), f.monitors...), nil
}

func (f *fakeAdapter) ConfigureOverlay(uintptr) error { return nil }

func (f *fakeAdapter) set(monitors []geometry.Monitor, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.monitors, f.err = monitors, err
}

type recordingSink struct {
	mu      sync.Mutex
	changes []geometry.Rect
	oks     []bool
}

func (s *recordingSink) BoundsChanged(r geometry.Rect, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, r)
	s.oks = append(s.oks, ok)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.changes)
}

var dualMonitors = []geometry.Monitor{
	{X: 0, Y: 0, Width: 1920, Height: 1080},
	{X: 1920, Y: 0, Width: 1280, Height: 1024},
}

func TestRefreshPublishesOnlyOnChange(t *testing.T) {
	adapter := &fakeAdapter{monitors: dualMonitors}
	sink := &recordingSink{}
	tr := NewTracker(adapter, sink, time.Hour, nil, nil)

	r, ok := tr.Refresh()
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 3200, Height: 1080}, r)
	assert.Equal(t, 1, sink.count())

	tr.Refresh()
	assert.Equal(t, 1, sink.count(), "unchanged layout must not publish")

	adapter.set(dualMonitors[:1], nil)
	r, _ = tr.Refresh()
	assert.Equal(t, geometry.Rect{Width: 1920, Height: 1080}, r)
	assert.Equal(t, 2, sink.count())
	assert.Len(t, tr.Monitors(), 1)
}

func TestRefreshKeepsPreviousBoundsOnError(t *testing.T) {
	adapter := &fakeAdapter{monitors: dualMonitors}
	sink := &recordingSink{}
	tr := NewTracker(adapter, sink, time.Hour, nil, nil)
	tr.Refresh()

	adapter.set(nil, errors.New("display server gone"))
	r, ok := tr.Refresh()
	assert.True(t, ok)
	assert.Equal(t, uint32(3200), r.Width)
	assert.Equal(t, 1, sink.count())

	cur, ok := tr.Current()
	assert.True(t, ok)
	assert.Equal(t, r, cur)
}

func TestNoMonitorsReportsNoBounds(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(&fakeAdapter{}, sink, time.Hour, nil, nil)

	_, ok := tr.Refresh()
	assert.False(t, ok)
	require.Equal(t, 1, sink.count())
	assert.False(t, sink.oks[0])

	_, ok = tr.Current()
	assert.False(t, ok)
}

func TestCurrentBeforeFirstPoll(t *testing.T) {
	tr := NewTracker(&fakeAdapter{monitors: dualMonitors}, nil, 0, nil, nil)
	_, ok := tr.Current()
	assert.False(t, ok)
	assert.Equal(t, DefaultPollInterval, tr.interval)
}

func TestRunPollsUntilCancelled(t *testing.T) {
	adapter := &fakeAdapter{monitors: dualMonitors}
	tr := NewTracker(adapter, nil, 10*time.Millisecond, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		adapter.mu.Lock()
		defer adapter.mu.Unlock()
		return adapter.calls >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
