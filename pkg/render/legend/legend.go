// Package legend builds the feature reference panel drawn to the right of
// every view.
//
// The panel has four sections in a fixed order: CYLINDERS, HORIZ FACES,
// VERT FACES and CONES. Cylinders and cones list every feature. Planes are
// filtered to model.MinPlaneAreaMM2, sorted by descending area and cut to
// [MaxRows] with a trailing "... N more" row.
package legend

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/render/marker"
)

const (
	// Title heads the panel.
	Title = "FEATURE REFERENCE"
	// MaxRows caps the plane rows listed per section.
	MaxRows = 5
	// NoneDetected is the note shown for an empty section.
	NoneDetected = "none detected"
	// Ellipsis terminates clipped rows.
	Ellipsis = "…"
)

// Row is one line under a section header.
type Row struct {
	Text string
	// Note rows carry no icon and are drawn muted.
	Note bool
}

// Section is one feature group.
type Section struct {
	Title string
	Shape marker.Shape
	Color color.RGBA
	Count int
	Rows  []Row
}

// Header returns the header text, e.g. "CYLINDERS (2)".
func (s Section) Header() string {
	return fmt.Sprintf("%s (%d)", s.Title, s.Count)
}

// Legend is the assembled panel content.
type Legend struct {
	Sections []Section
}

// Section returns the section with the given title.
func (l Legend) Section(title string) (Section, bool) {
	for _, s := range l.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Section titles.
const (
	Cylinders  = "CYLINDERS"
	HorizFaces = "HORIZ FACES"
	VertFaces  = "VERT FACES"
	Cones      = "CONES"
)

// Build assembles the legend for r. Row text is clipped to charBudget runes;
// a budget below 1 disables clipping.
func Build(r *model.Report, charBudget int) Legend {
	var horiz, vert []model.Feature
	for _, p := range r.Planes {
		if p.AreaMM2 < model.MinPlaneAreaMM2 {
			continue
		}
		if p.IsHorizontal() {
			horiz = append(horiz, p)
		} else {
			vert = append(vert, p)
		}
	}
	byArea := func(a, b model.Feature) int { return cmp.Compare(b.AreaMM2, a.AreaMM2) }
	slices.SortStableFunc(horiz, byArea)
	slices.SortStableFunc(vert, byArea)

	clip := func(s string) string { return Clip(s, charBudget) }

	return Legend{Sections: []Section{
		section(Cylinders, marker.Circle, marker.ColorCylinder, r.Cylinders, len(r.Cylinders), cylinderRow, clip),
		section(HorizFaces, marker.Square, marker.ColorHorizontal, horiz, MaxRows, horizontalRow, clip),
		section(VertFaces, marker.Diamond, marker.ColorVertical, vert, MaxRows, verticalRow, clip),
		section(Cones, marker.Triangle, marker.ColorCone, r.Cones, len(r.Cones), coneRow, clip),
	}}
}

func section(title string, shape marker.Shape, col color.RGBA, feats []model.Feature, limit int,
	format func(model.Feature) string, clip func(string) string) Section {
	s := Section{Title: title, Shape: shape, Color: col, Count: len(feats)}
	if len(feats) == 0 {
		s.Rows = []Row{{Text: NoneDetected, Note: true}}
		return s
	}
	for _, f := range feats[:min(limit, len(feats))] {
		s.Rows = append(s.Rows, Row{Text: clip(format(f))})
	}
	if len(feats) > limit {
		s.Rows = append(s.Rows, Row{Text: fmt.Sprintf("... %d more", len(feats)-limit), Note: true})
	}
	return s
}

func cylinderRow(f model.Feature) string {
	axis := f.Axis
	if axis == "" {
		axis = "?"
	}
	return fmt.Sprintf("%s  R=%smm  axis=%s", f.ID, num(f.RadiusMM), axis)
}

func horizontalRow(f model.Feature) string {
	return fmt.Sprintf("%s  %.1f×%.1fmm  z=%.1fmm", f.ID, f.Dims[0], f.Dims[1], f.Location.Z)
}

func verticalRow(f model.Feature) string {
	n := f.Normal
	return fmt.Sprintf("%s  %.1f×%.1fmm  n=[%.0f,%.0f,%.0f]", f.ID, f.Dims[0], f.Dims[1], n.X, n.Y, n.Z)
}

func coneRow(f model.Feature) string {
	return fmt.Sprintf("%s  half-angle=%s°", f.ID, num(f.HalfAngleDeg))
}

// num formats v with the fewest digits that round-trip.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Clip shortens s to at most n runes, replacing the tail with Ellipsis.
func Clip(s string, n int) string {
	if n < 1 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + Ellipsis
}
