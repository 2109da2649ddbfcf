//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")

	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procGetWindowLongPtrW   = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW   = user32.NewProc("SetWindowLongPtrW")
	procGetDpiForMonitor    = shcore.NewProc("GetDpiForMonitor")
)

const (
	gwlExStyle         = -20
	wsExToolWindow     = 0x00000080
	wsExNoActivate     = 0x08000000
	monitorInfoPrimary = 0x1
	mdtEffectiveDPI    = 0
	baseDPI            = 96
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfoEx struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
	Device  [32]uint16
}

type windowsAdapter struct{}

func native() Adapter {
	return windowsAdapter{}
}

func (windowsAdapter) Name() string {
	return "win32"
}

// Monitors enumerates display monitors in virtual-screen coordinates.
func (windowsAdapter) Monitors() ([]geometry.Monitor, error) {
	var monitors []geometry.Monitor

	cb := windows.NewCallback(func(hMonitor, hdc, lprc, data uintptr) uintptr {
		var mi monitorInfoEx
		mi.Size = uint32(unsafe.Sizeof(mi))

		ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
		if ret == 0 {
			return 1
		}
		monitors = append(monitors, geometry.Monitor{
			Name:        windows.UTF16ToString(mi.Device[:]),
			X:           mi.Monitor.Left,
			Y:           mi.Monitor.Top,
			Width:       uint32(mi.Monitor.Right - mi.Monitor.Left),
			Height:      uint32(mi.Monitor.Bottom - mi.Monitor.Top),
			ScaleFactor: monitorScale(hMonitor),
			Primary:     mi.Flags&monitorInfoPrimary != 0,
		})
		return 1
	})

	ret, _, err := procEnumDisplayMonitors.Call(0, 0, cb, 0)
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", err)
	}
	return monitors, nil
}

func monitorScale(hMonitor uintptr) float64 {
	if procGetDpiForMonitor.Find() != nil {
		return 1
	}
	var dpiX, dpiY uint32
	hr, _, _ := procGetDpiForMonitor.Call(hMonitor, mdtEffectiveDPI,
		uintptr(unsafe.Pointer(&dpiX)), uintptr(unsafe.Pointer(&dpiY)))
	if hr != 0 || dpiX == 0 {
		return 1
	}
	return float64(dpiX) / baseDPI
}

// ConfigureOverlay keeps the overlay from stealing focus and hides it from
// the taskbar and Alt+Tab.
func (windowsAdapter) ConfigureOverlay(handle uintptr) error {
	if handle == 0 {
		return fmt.Errorf("invalid window handle")
	}

	style, _, _ := procGetWindowLongPtrW.Call(handle, exStyleIndex())
	style |= wsExNoActivate | wsExToolWindow

	windows.SetLastError(0)
	ret, _, err := procSetWindowLongPtrW.Call(handle, exStyleIndex(), style)
	if ret == 0 && err != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetWindowLongPtrW failed: %w", err)
	}
	return nil
}

// exStyleIndex sign-extends GWL_EXSTYLE into a syscall argument.
func exStyleIndex() uintptr {
	idx := int32(gwlExStyle)
	return uintptr(idx)
}
