package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

type stubAdapter struct {
	configured []uintptr
}

func (s *stubAdapter) Name() string { return "stub" }

func (s *stubAdapter) Monitors() ([]geometry.Monitor, error) { return nil, ErrUnsupported }

func (s *stubAdapter) ConfigureOverlay(h uintptr) error {
	s.configured = append(s.configured, h)
	return nil
}

func TestNewPrefersConfiguredMonitors(t *testing.T) {
	displays := []geometry.Monitor{
		{Name: "left", X: -1280, Width: 1280, Height: 1024, ScaleFactor: 1},
		{Name: "main", Width: 1920, Height: 1080, ScaleFactor: 1.25, Primary: true},
	}

	a := New(displays)
	require.Equal(t, "static", a.Name())

	got, err := a.Monitors()
	require.NoError(t, err)
	assert.Equal(t, displays, got)

	// The caller's slice must not alias the adapter's list.
	got[0].Name = "changed"
	again, _ := a.Monitors()
	assert.Equal(t, "left", again[0].Name)
}

func TestNewWithoutConfigurationIsNative(t *testing.T) {
	a := New(nil)
	assert.NotEqual(t, "static", a.Name())
}

func TestStaticDelegatesOverlay(t *testing.T) {
	stub := &stubAdapter{}
	s := Static{Native: stub}

	require.NoError(t, s.ConfigureOverlay(42))
	assert.Equal(t, []uintptr{42}, stub.configured)

	assert.ErrorIs(t, Static{}.ConfigureOverlay(1), ErrUnsupported)
}
