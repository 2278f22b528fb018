package raster

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/font"

	"github.com/matzehuels/featureview/pkg/canvas"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   string // "clear", "line", "rect", "circle", "polygon", "text"
	Points []canvas.Pixel
	Radius float64
	Text   string
	Fill   color.Color
	Stroke color.Color
}

// Recorder is an in-memory Surface that records every call.
type Recorder struct {
	W, H int
	Ops  []Op

	// EncodeErr, when set, is returned by EncodePNG.
	EncodeErr error
	// PanicOn makes the first call of that kind panic, simulating a
	// backend that throws mid-draw.
	PanicOn string
}

// NewRecorder returns a Recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{W: width, H: height}
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) record(op Op) {
	if r.PanicOn != "" && r.PanicOn == op.Kind {
		r.PanicOn = ""
		panic(fmt.Sprintf("raster: simulated %s failure", op.Kind))
	}
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Clear(c color.Color) {
	r.record(Op{Kind: "clear", Fill: c})
}

func (r *Recorder) Line(a, b canvas.Pixel, c color.Color, width float64) {
	r.record(Op{Kind: "line", Points: []canvas.Pixel{a, b}, Stroke: c})
}

func (r *Recorder) Rect(x0, y0, x1, y1 float64, fill, stroke color.Color, width float64) {
	r.record(Op{Kind: "rect", Points: []canvas.Pixel{{X: x0, Y: y0}, {X: x1, Y: y1}}, Fill: fill, Stroke: stroke})
}

func (r *Recorder) Circle(cx, cy, rad float64, fill, stroke color.Color, width float64) {
	r.record(Op{Kind: "circle", Points: []canvas.Pixel{{X: cx, Y: cy}}, Radius: rad, Fill: fill, Stroke: stroke})
}

func (r *Recorder) Polygon(pts []canvas.Pixel, fill, stroke color.Color, width float64) {
	cp := append([]canvas.Pixel(nil), pts...)
	r.record(Op{Kind: "polygon", Points: cp, Fill: fill, Stroke: stroke})
}

func (r *Recorder) Text(s string, x, y float64, face font.Face, c color.Color) {
	r.record(Op{Kind: "text", Points: []canvas.Pixel{{X: x, Y: y}}, Text: s, Fill: c})
}

// EncodePNG writes a fixed marker payload, or returns EncodeErr.
func (r *Recorder) EncodePNG(w io.Writer) error {
	if r.EncodeErr != nil {
		return r.EncodeErr
	}
	_, err := io.Copy(w, bytes.NewReader([]byte("\x89PNG\r\n\x1a\n")))
	return err
}

// Count returns the number of recorded ops of kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the strings of all recorded text ops in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}
