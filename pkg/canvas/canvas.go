// Package canvas maps projected view coordinates onto pixel space.
//
// Each axis is scaled independently so the geometry fills the drawable
// area; aspect ratio is not preserved.
package canvas

import (
	"math"
)

// Padding is the share of each axis span added on both sides of the
// projected bounds.
const Padding = 0.12

// epsilon floors degenerate spans.
const epsilon = 1e-6

// DefaultMin and DefaultMax form the window used when nothing is visible.
var (
	DefaultMin = Vec2{X: -10, Y: -10}
	DefaultMax = Vec2{X: 10, Y: 10}
)

// Vec2 is a projected (u, v) coordinate.
type Vec2 struct {
	X, Y float64
}

// Pixel is a position on the raster. Y grows downward.
type Pixel struct {
	X, Y float64
}

// Bounds returns the padded bounding box of pts. An empty input yields the
// default window.
func Bounds(pts []Vec2) (min, max Vec2) {
	if len(pts) == 0 {
		return DefaultMin, DefaultMax
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	padX := (max.X - min.X) * Padding
	padY := (max.Y - min.Y) * Padding
	return Vec2{X: min.X - padX, Y: min.Y - padY}, Vec2{X: max.X + padX, Y: max.Y + padY}
}

// Mapper is an affine map from a projected window to a pixel rectangle
// [margin, width-margin] x [margin, height-margin].
type Mapper struct {
	Min, Max Vec2
	Width    float64
	Height   float64
	Margin   float64
}

// NewMapper builds a mapper for the window min..max drawn into an area of
// width x height pixels with the given margin on every side.
func NewMapper(min, max Vec2, width, height, margin float64) Mapper {
	return Mapper{Min: min, Max: max, Width: width, Height: height, Margin: margin}
}

// ToPixel maps a projected point to the raster.
func (m Mapper) ToPixel(sx, sy float64) Pixel {
	spanX := math.Max(m.Max.X-m.Min.X, epsilon)
	spanY := math.Max(m.Max.Y-m.Min.Y, epsilon)
	cw := m.Width - 2*m.Margin
	ch := m.Height - 2*m.Margin
	return Pixel{
		X: m.Margin + (sx-m.Min.X)/spanX*cw,
		Y: m.Margin + (sy-m.Min.Y)/spanY*ch,
	}
}

// Reach returns the corners of the window in which drawing is kept: one
// raster size beyond each side.
func (m Mapper) Reach() (lo, hi Pixel) {
	return Pixel{X: -m.Width, Y: -m.Height}, Pixel{X: 2 * m.Width, Y: 2 * m.Height}
}

// InReach reports whether a shape of radius r centred on p lies inside
// Reach. Non-finite positions are never in reach.
func (m Mapper) InReach(p Pixel, r float64) bool {
	lo, hi := m.Reach()
	return p.X-r >= lo.X && p.X+r <= hi.X && p.Y-r >= lo.Y && p.Y+r <= hi.Y
}

// ClipLine clips the segment ab to Reach. Endpoints already inside are
// returned unchanged. ok is false when no part of the segment remains.
func (m Mapper) ClipLine(a, b Pixel) (ca, cb Pixel, ok bool) {
	if !finite(a) || !finite(b) {
		return a, b, false
	}
	lo, hi := m.Reach()
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	// Liang-Barsky: each side bounds the parameter range from one end.
	for _, side := range [4]struct{ p, q float64 }{
		{-dx, a.X - lo.X},
		{dx, hi.X - a.X},
		{-dy, a.Y - lo.Y},
		{dy, hi.Y - a.Y},
	} {
		if side.p == 0 {
			if side.q < 0 {
				return a, b, false
			}
			continue
		}
		t := side.q / side.p
		if side.p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	ca, cb = a, b
	if t0 > 0 {
		ca = Pixel{X: a.X + t0*dx, Y: a.Y + t0*dy}.within(lo, hi)
	}
	if t1 < 1 {
		cb = Pixel{X: a.X + t1*dx, Y: a.Y + t1*dy}.within(lo, hi)
	}
	return ca, cb, true
}

// within snaps rounding overshoot back onto the box lo..hi.
func (p Pixel) within(lo, hi Pixel) Pixel {
	return Pixel{X: min(max(p.X, lo.X), hi.X), Y: min(max(p.Y, lo.Y), hi.Y)}
}

func finite(p Pixel) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
