package marker

import (
	"image/color"

	"golang.org/x/image/font"

	"github.com/matzehuels/featureview/pkg/canvas"
	"github.com/matzehuels/featureview/pkg/raster"
)

// Draw paints markers in order: glyph first, then its badge box and text.
func Draw(s raster.Surface, markers []Marker, badgeFace font.Face) {
	for _, m := range markers {
		Glyph(s, m.Shape, m.Center, m.Radius, m.Color)
		if b := m.Badge; b != nil {
			s.Rect(b.Box.X0, b.Box.Y0, b.Box.X1, b.Box.Y1, badgeFill, m.Color, BadgeLineWidth)
			s.Text(b.Text, b.X, b.Y, badgeFace, m.Color)
		}
	}
}

// Glyph paints a filled shape of radius r centred on c with a white outline.
func Glyph(s raster.Surface, shape Shape, c canvas.Pixel, r float64, col color.Color) {
	switch shape {
	case Circle:
		s.Circle(c.X, c.Y, r, col, outline, OutlineWidth)
	case Square:
		s.Rect(c.X-r, c.Y-r, c.X+r, c.Y+r, col, outline, OutlineWidth)
	case Diamond:
		s.Polygon([]canvas.Pixel{
			{X: c.X, Y: c.Y - r}, {X: c.X + r, Y: c.Y}, {X: c.X, Y: c.Y + r}, {X: c.X - r, Y: c.Y},
		}, col, outline, OutlineWidth)
	case Triangle:
		s.Polygon([]canvas.Pixel{
			{X: c.X, Y: c.Y - r}, {X: c.X + r, Y: c.Y + r}, {X: c.X - r, Y: c.Y + r},
		}, col, outline, OutlineWidth)
	}
}

// IconSize is the edge length of a legend icon.
const IconSize = 10

// Icon paints an unoutlined IconSize glyph whose top-left corner is (x, y).
func Icon(s raster.Surface, shape Shape, x, y float64, col color.Color) {
	switch shape {
	case Circle:
		s.Circle(x+IconSize/2, y+IconSize/2, IconSize/2, col, nil, 0)
	case Square:
		s.Rect(x, y, x+IconSize, y+IconSize, col, nil, 0)
	case Diamond:
		mx, my := x+IconSize/2, y+IconSize/2
		s.Polygon([]canvas.Pixel{
			{X: mx, Y: y - 1}, {X: x + IconSize, Y: my}, {X: mx, Y: y + IconSize + 1}, {X: x, Y: my},
		}, col, nil, 0)
	case Triangle:
		s.Polygon([]canvas.Pixel{
			{X: x + IconSize/2, Y: y - 1}, {X: x + IconSize + 1, Y: y + IconSize + 1}, {X: x - 1, Y: y + IconSize + 1},
		}, col, nil, 0)
	}
}
