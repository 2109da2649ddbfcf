// Package geometry computes overlay window bounds across monitors.
//
// All values are physical pixels in the virtual desktop coordinate space.
// Monitors left of or above the primary display have negative coordinates.
package geometry

import "fmt"

// Monitor describes one connected display.
type Monitor struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	X           int32   `json:"x" yaml:"x" mapstructure:"x"`
	Y           int32   `json:"y" yaml:"y" mapstructure:"y"`
	Width       uint32  `json:"width" yaml:"width" mapstructure:"width"`
	Height      uint32  `json:"height" yaml:"height" mapstructure:"height"`
	ScaleFactor float64 `json:"scaleFactor,omitempty" yaml:"scale_factor,omitempty" mapstructure:"scale_factor"`
	Primary     bool    `json:"primary,omitempty" yaml:"primary,omitempty" mapstructure:"primary"`
}

// Rect returns the monitor's area as a rectangle.
func (m Monitor) Rect() Rect {
	return Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Right returns the exclusive right edge.
func (r Rect) Right() int64 {
	return int64(r.X) + int64(r.Width)
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int64 {
	return int64(r.Y) + int64(r.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("pos=(%d, %d), size=%dx%d", r.X, r.Y, r.Width, r.Height)
}

// ComputeBounds returns the smallest rectangle covering every monitor.
// The second result is false when monitors is empty.
func ComputeBounds(monitors []Monitor) (Rect, bool) {
	if len(monitors) == 0 {
		return Rect{}, false
	}

	first := monitors[0].Rect()
	minX, minY := int64(first.X), int64(first.Y)
	maxX, maxY := first.Right(), first.Bottom()

	for _, m := range monitors[1:] {
		r := m.Rect()
		minX = min(minX, int64(r.X))
		minY = min(minY, int64(r.Y))
		maxX = max(maxX, r.Right())
		maxY = max(maxY, r.Bottom())
	}

	return Rect{
		X:      int32(minX),
		Y:      int32(minY),
		Width:  clampUint32(maxX - minX),
		Height: clampUint32(maxY - minY),
	}, true
}

func clampUint32(v int64) uint32 {
	const maxUint32 = 1<<32 - 1
	if v > maxUint32 {
		return maxUint32
	}
	return uint32(v)
}
