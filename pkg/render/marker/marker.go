// Package marker lays out feature glyphs and their ID badges for one view.
//
// Every visible feature gets a glyph. Its badge is placed to the right of
// the glyph only when the padded badge box does not intersect a badge
// already placed in the same view. Placement priority is fixed by kind:
// cylinders, then horizontal planes, then vertical planes, then cones.
//
// [Layout] is pure given a text measurer and a [Placements] accumulator.
// [Draw] paints the result onto a [raster.Surface].
package marker

import (
	"image/color"
	"math"
	"slices"

	"github.com/matzehuels/featureview/pkg/canvas"
	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/raster"
)

// Shape is a marker glyph.
type Shape int

const (
	Circle Shape = iota
	Square
	Diamond
	Triangle
)

// String returns the glyph name.
func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Diamond:
		return "diamond"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// Feature colours.
var (
	ColorCylinder   = raster.RGB(210, 40, 40)
	ColorHorizontal = raster.RGB(25, 90, 200)
	ColorVertical   = raster.RGB(80, 140, 220)
	ColorCone       = raster.RGB(180, 80, 200)

	outline   = raster.RGB(255, 255, 255)
	badgeFill = raster.RGB(255, 255, 255)
)

// Layout constants in pixels.
const (
	BaseRadius     = 8
	MaxCylRadius   = 14
	MaxAreaRadius  = 13
	BadgeGap       = 3 // between glyph edge and badge text
	BadgeRaise     = 7 // badge text top above glyph centre
	BadgePad       = 3 // drawn box around the text bbox
	OverlapPad     = 4 // extra clearance in the overlap test
	OutlineWidth   = 2
	BadgeLineWidth = 1
)

// Style returns the glyph and colour for f.
func Style(f model.Feature) (Shape, color.RGBA) {
	switch {
	case f.Kind == model.KindCylinder:
		return Circle, ColorCylinder
	case f.IsHorizontal():
		return Square, ColorHorizontal
	case f.Kind == model.KindPlane:
		return Diamond, ColorVertical
	default:
		return Triangle, ColorCone
	}
}

// Radius returns the glyph radius for f: cylinders grow with radius_mm,
// planes and cones with the fourth root of their area.
func Radius(f model.Feature) float64 {
	switch f.Kind {
	case model.KindCylinder:
		return clamp(BaseRadius+0.3*f.RadiusMM, BaseRadius, MaxCylRadius)
	case model.KindPlane, model.KindCone:
		return clamp(BaseRadius+math.Pow(math.Max(f.AreaMM2, 0), 0.25), BaseRadius, MaxAreaRadius)
	}
	return BaseRadius
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Priority returns the placement rank of f. Lower ranks are placed first.
func Priority(f model.Feature) int {
	switch {
	case f.Kind == model.KindCylinder:
		return 0
	case f.IsHorizontal():
		return 1
	case f.Kind == model.KindPlane:
		return 2
	default:
		return 3
	}
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Grow returns r expanded by d on every side.
func (r Rect) Grow(d float64) Rect {
	return Rect{X0: r.X0 - d, Y0: r.Y0 - d, X1: r.X1 + d, Y1: r.Y1 + d}
}

// Intersects reports whether r and o share interior area.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

// Placements accumulates the badge boxes drawn in one view. The zero value
// is empty and ready to use. A Placements must not be shared across views.
type Placements struct {
	rects []Rect
}

// Overlaps reports whether r, grown by OverlapPad, touches a placed box.
func (p *Placements) Overlaps(r Rect) bool {
	g := r.Grow(OverlapPad)
	for _, b := range p.rects {
		if g.Intersects(b) {
			return true
		}
	}
	return false
}

// TryPlace records r and returns true unless it overlaps a placed box.
func (p *Placements) TryPlace(r Rect) bool {
	if p.Overlaps(r) {
		return false
	}
	p.rects = append(p.rects, r)
	return true
}

// Rects returns a copy of the placed boxes in placement order.
func (p *Placements) Rects() []Rect {
	return slices.Clone(p.rects)
}

// Len returns the number of placed boxes.
func (p *Placements) Len() int {
	return len(p.rects)
}

// Measurer returns the pixel size of a string in the badge font.
type Measurer func(s string) (w, h float64)

// Badge is a placed ID label.
type Badge struct {
	Text string
	X, Y float64 // text top-left
	Box  Rect    // drawn box
}

// Marker is one feature's glyph, with its badge if one was placed.
type Marker struct {
	Feature model.Feature
	Shape   Shape
	Color   color.RGBA
	Center  canvas.Pixel
	Radius  float64
	Badge   *Badge
}

// Layout positions markers for feats, which must already be visible in the
// view. Planes below model.MinPlaneAreaMM2 are skipped. Features are
// processed in priority order; input order is kept within a rank. Placed
// badge boxes are appended to placed.
func Layout(feats []model.Feature, toPixel func(model.Point) canvas.Pixel, measure Measurer, placed *Placements) []Marker {
	ordered := make([]model.Feature, 0, len(feats))
	for _, f := range feats {
		if f.Kind == model.KindPlane && f.AreaMM2 < model.MinPlaneAreaMM2 {
			continue
		}
		ordered = append(ordered, f)
	}
	slices.SortStableFunc(ordered, func(a, b model.Feature) int {
		return Priority(a) - Priority(b)
	})

	out := make([]Marker, 0, len(ordered))
	for _, f := range ordered {
		shape, col := Style(f)
		m := Marker{
			Feature: f,
			Shape:   shape,
			Color:   col,
			Center:  toPixel(f.Location),
			Radius:  Radius(f),
		}

		text := f.Badge()
		x := m.Center.X + m.Radius + BadgeGap
		y := m.Center.Y - BadgeRaise
		w, h := measure(text)
		box := Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}.Grow(BadgePad)
		if placed.TryPlace(box) {
			m.Badge = &Badge{Text: text, X: x, Y: y, Box: box}
		}
		out = append(out, m)
	}
	return out
}
