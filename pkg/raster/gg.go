package raster

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/featureview/pkg/canvas"
)

type ggSurface struct {
	dc *gg.Context
}

// NewGG returns a Surface drawing into an RGBA image via fogleman/gg.
func NewGG(width, height int) Surface {
	return &ggSurface{dc: gg.NewContext(width, height)}
}

func (s *ggSurface) Width() int  { return s.dc.Width() }
func (s *ggSurface) Height() int { return s.dc.Height() }

func (s *ggSurface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *ggSurface) Line(a, b canvas.Pixel, c color.Color, width float64) {
	s.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	s.paint(nil, c, width)
}

func (s *ggSurface) Rect(x0, y0, x1, y1 float64, fill, stroke color.Color, width float64) {
	s.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	s.paint(fill, stroke, width)
}

func (s *ggSurface) Circle(cx, cy, r float64, fill, stroke color.Color, width float64) {
	s.dc.DrawCircle(cx, cy, r)
	s.paint(fill, stroke, width)
}

func (s *ggSurface) Polygon(pts []canvas.Pixel, fill, stroke color.Color, width float64) {
	if len(pts) == 0 {
		return
	}
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	s.paint(fill, stroke, width)
}

func (s *ggSurface) Text(str string, x, y float64, face font.Face, c color.Color) {
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawString(str, x, y+Ascent(face))
}

func (s *ggSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// paint fills and/or strokes the current path, then clears it.
func (s *ggSurface) paint(fill, stroke color.Color, width float64) {
	if fill != nil {
		s.dc.SetColor(fill)
		if stroke != nil {
			s.dc.FillPreserve()
		} else {
			s.dc.Fill()
		}
	}
	if stroke != nil {
		s.dc.SetColor(stroke)
		s.dc.SetLineWidth(width)
		s.dc.Stroke()
	}
	s.dc.ClearPath()
}
