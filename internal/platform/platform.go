// Package platform abstracts the host window system: monitor enumeration
// and overlay window styling. Implementations are selected per OS at build
// time; geometry math stays platform independent.
package platform

import (
	"errors"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

// ErrUnsupported is returned when the host has no implementation for an operation.
var ErrUnsupported = errors.New("not supported on this platform")

// Adapter is the platform window adapter.
type Adapter interface {
	// Name identifies the backend in logs and diagnostic reports.
	Name() string
	// Monitors lists connected displays in physical pixels.
	Monitors() ([]geometry.Monitor, error)
	// ConfigureOverlay applies overlay window styles (no focus stealing,
	// hidden from the task switcher) to the native window handle.
	ConfigureOverlay(handle uintptr) error
}

// New returns the native adapter, or a Static adapter when monitors are
// configured explicitly.
func New(configured []geometry.Monitor) Adapter {
	if len(configured) > 0 {
		return Static{Displays: configured, Native: native()}
	}
	return native()
}

// Static reports a fixed monitor list and delegates window styling to Native.
type Static struct {
	Displays []geometry.Monitor
	Native   Adapter
}

func (s Static) Name() string {
	return "static"
}

func (s Static) Monitors() ([]geometry.Monitor, error) {
	return append([]geometry.Monitor(nil), s.Displays...), nil
}

func (s Static) ConfigureOverlay(handle uintptr) error {
	if s.Native == nil {
		return ErrUnsupported
	}
	return s.Native.ConfigureOverlay(handle)
}
