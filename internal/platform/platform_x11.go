//go:build (linux && !android) || freebsd || openbsd || netbsd

package platform

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

type x11Adapter struct{}

func native() Adapter {
	return x11Adapter{}
}

func (x11Adapter) Name() string {
	return "x11"
}

// Monitors queries Xinerama for the screen layout, falling back to the
// root window size when Xinerama is inactive.
func (x11Adapter) Monitors() ([]geometry.Monitor, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	if err := xinerama.Init(conn); err == nil {
		active, err := xinerama.IsActive(conn).Reply()
		if err == nil && active.State != 0 {
			reply, err := xinerama.QueryScreens(conn).Reply()
			if err != nil {
				return nil, fmt.Errorf("failed to query xinerama screens: %w", err)
			}
			monitors := make([]geometry.Monitor, 0, len(reply.ScreenInfo))
			for i, s := range reply.ScreenInfo {
				monitors = append(monitors, geometry.Monitor{
					Name:        fmt.Sprintf("screen-%d", i),
					X:           int32(s.XOrg),
					Y:           int32(s.YOrg),
					Width:       uint32(s.Width),
					Height:      uint32(s.Height),
					ScaleFactor: 1,
					Primary:     i == 0,
				})
			}
			return monitors, nil
		}
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	return []geometry.Monitor{{
		Name:        "root",
		Width:       uint32(screen.WidthInPixels),
		Height:      uint32(screen.HeightInPixels),
		ScaleFactor: 1,
		Primary:     true,
	}}, nil
}

// ConfigureOverlay is a no-op: on X11 the UI toolkit sets the skip-taskbar
// and input hints itself.
func (x11Adapter) ConfigureOverlay(uintptr) error {
	return nil
}
