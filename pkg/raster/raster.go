// Package raster is the drawing backend seam of the renderer.
//
// [Surface] exposes the handful of primitives a view needs: lines, filled
// and outlined shapes, text, and PNG encoding. [NewGG] implements it on
// fogleman/gg. [Recorder] implements it in memory and is used by tests to
// assert on what was drawn.
package raster

import (
	"image/color"
	"io"

	"golang.org/x/image/font"

	"github.com/matzehuels/featureview/pkg/canvas"
)

// Surface is one view's canvas. A Surface is owned by a single render and
// is not safe for concurrent use.
//
// Shape methods take a fill and a stroke colour; a nil colour skips that
// part. Text is anchored at its top-left corner.
type Surface interface {
	Width() int
	Height() int

	Clear(c color.Color)
	Line(a, b canvas.Pixel, c color.Color, width float64)
	Rect(x0, y0, x1, y1 float64, fill, stroke color.Color, width float64)
	Circle(cx, cy, r float64, fill, stroke color.Color, width float64)
	Polygon(pts []canvas.Pixel, fill, stroke color.Color, width float64)
	Text(s string, x, y float64, face font.Face, c color.Color)

	EncodePNG(w io.Writer) error
}

// Factory creates a blank surface of the given size.
type Factory func(width, height int) Surface

// Measure returns the width and height in pixels of s drawn with face.
func Measure(face font.Face, s string) (w, h float64) {
	m := face.Metrics()
	w = float64(font.MeasureString(face, s)) / 64
	h = float64(m.Ascent+m.Descent) / 64
	return w, h
}

// Ascent returns the distance in pixels from the top of a text box to its
// baseline.
func Ascent(face font.Face) float64 {
	return float64(face.Metrics().Ascent) / 64
}

// RGB is a shorthand for an opaque colour.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
