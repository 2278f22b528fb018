package legend

import (
	"golang.org/x/image/font"

	"github.com/matzehuels/featureview/pkg/canvas"
	"github.com/matzehuels/featureview/pkg/raster"
	"github.com/matzehuels/featureview/pkg/render/marker"
)

// Panel layout in pixels.
const (
	insetLeft   = 12
	insetRight  = 6
	top         = 14
	lineHeight  = 16
	sectionGap  = 4
	textIndent  = 14 // row text right of the icon
	noteIndent  = 8  // extra indent for note rows
	swatchWidth = 4
	charWidth   = 6.5 // average glyph advance of the row font
)

var (
	panelFill   = raster.RGB(240, 242, 248)
	dividerLine = raster.RGB(200, 205, 215)
	sepLine     = raster.RGB(190, 195, 210)
	titleColor  = raster.RGB(40, 40, 40)
	rowColor    = raster.RGB(50, 50, 50)
	noteColor   = raster.RGB(120, 120, 130)
)

// Panel is the rectangle the legend occupies: X from the divider to the
// right canvas edge, full canvas height.
type Panel struct {
	X, Width, Height float64
}

// CharBudget returns how many row characters fit in a panel of the given
// width.
func CharBudget(width float64) int {
	return int((width - insetLeft - insetRight - textIndent) / charWidth)
}

// Fonts are the faces the panel draws with.
type Fonts struct {
	Title  font.Face
	Header font.Face
	Row    font.Face
}

// Draw paints the panel background, the divider and every section of l.
func Draw(s raster.Surface, l Legend, p Panel, f Fonts) {
	s.Rect(p.X, 0, p.X+p.Width, p.Height, panelFill, nil, 0)
	s.Line(canvas.Pixel{X: p.X, Y: 0}, canvas.Pixel{X: p.X, Y: p.Height}, dividerLine, 1)

	x0 := p.X + insetLeft
	xEnd := p.X + p.Width - insetRight
	y := float64(top)

	s.Text(Title, x0, y, f.Title, titleColor)
	y += lineHeight + sectionGap

	for i, sec := range l.Sections {
		if i > 0 {
			y += sectionGap
		}
		s.Line(canvas.Pixel{X: x0, Y: y + 2}, canvas.Pixel{X: xEnd, Y: y + 2}, sepLine, 1)
		y += 6
		s.Rect(x0, y+2, x0+swatchWidth, y+2+marker.IconSize, sec.Color, nil, 0)
		marker.Icon(s, sec.Shape, x0+swatchWidth+4, y+2, sec.Color)
		s.Text(sec.Header(), x0+swatchWidth+marker.IconSize+10, y, f.Header, sec.Color)
		y += lineHeight + 2

		for _, row := range sec.Rows {
			if row.Note {
				s.Text(row.Text, x0+textIndent+noteIndent, y, f.Row, noteColor)
			} else {
				marker.Icon(s, sec.Shape, x0, y+2, sec.Color)
				s.Text(row.Text, x0+textIndent, y, f.Row, rowColor)
			}
			y += lineHeight
		}
	}
}
