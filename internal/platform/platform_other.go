//go:build !windows && !((linux && !android) || freebsd || openbsd || netbsd)

package platform

import "github.com/hazzzi/maenggu-run/internal/geometry"

type unsupportedAdapter struct{}

func native() Adapter {
	return unsupportedAdapter{}
}

func (unsupportedAdapter) Name() string {
	return "unsupported"
}

func (unsupportedAdapter) Monitors() ([]geometry.Monitor, error) {
	return nil, ErrUnsupported
}

func (unsupportedAdapter) ConfigureOverlay(uintptr) error {
	return ErrUnsupported
}
