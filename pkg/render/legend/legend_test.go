package legend

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/raster"
)

func vplane(id string, area float64) model.Feature {
	return model.Feature{
		ID: id, Kind: model.KindPlane, FaceType: model.FaceVertical,
		AreaMM2: area, Dims: [2]float64{area / 10, 10}, Normal: model.Point{X: 1},
	}
}

func TestBuildTruncatesPlanes(t *testing.T) {
	r := &model.Report{}
	for i := 1; i <= 8; i++ {
		r.Planes = append(r.Planes, vplane(fmt.Sprintf("f%d", i), float64(i*10)))
	}

	sec, ok := Build(r, 0).Section(VertFaces)
	if !ok {
		t.Fatal("missing VERT FACES section")
	}
	if sec.Count != 8 {
		t.Errorf("Count = %d, want 8", sec.Count)
	}
	if len(sec.Rows) != MaxRows+1 {
		t.Fatalf("rows = %d, want %d", len(sec.Rows), MaxRows+1)
	}
	for i, want := range []string{"f8", "f7", "f6", "f5", "f4"} {
		if !strings.HasPrefix(sec.Rows[i].Text, want+"  ") {
			t.Errorf("row %d = %q, want prefix %q", i, sec.Rows[i].Text, want)
		}
	}
	last := sec.Rows[MaxRows]
	if last.Text != "... 3 more" || !last.Note {
		t.Errorf("last row = %+v, want note \"... 3 more\"", last)
	}
}

func TestBuildScenario(t *testing.T) {
	r := &model.Report{
		Cylinders: []model.Feature{{ID: "f1", Kind: model.KindCylinder, RadiusMM: 5, Axis: "Z", Location: model.Point{Z: 10}}},
		Planes: []model.Feature{{
			ID: "f2", Kind: model.KindPlane, FaceType: model.FaceHorizontal, AreaMM2: 400,
			Dims: [2]float64{20, 20}, Normal: model.Point{Z: 1}, Location: model.Point{Z: 20},
		}},
	}
	l := Build(r, 0)

	var headers []string
	for _, s := range l.Sections {
		headers = append(headers, s.Header())
	}
	want := []string{"CYLINDERS (1)", "HORIZ FACES (1)", "VERT FACES (0)", "CONES (0)"}
	if fmt.Sprint(headers) != fmt.Sprint(want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}

	tests := []struct {
		section string
		row     string
	}{
		{Cylinders, "f1  R=5mm  axis=Z"},
		{HorizFaces, "f2  20.0×20.0mm  z=20.0mm"},
		{VertFaces, NoneDetected},
		{Cones, NoneDetected},
	}
	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			s, _ := l.Section(tt.section)
			if len(s.Rows) != 1 || s.Rows[0].Text != tt.row {
				t.Errorf("rows = %+v, want [%q]", s.Rows, tt.row)
			}
		})
	}
}

func TestBuildFiltersTinyPlanes(t *testing.T) {
	r := &model.Report{Planes: []model.Feature{vplane("f1", 0.2), vplane("f2", 0.5)}}
	s, _ := Build(r, 0).Section(VertFaces)
	if s.Count != 1 || len(s.Rows) != 1 || !strings.HasPrefix(s.Rows[0].Text, "f2") {
		t.Errorf("section = %+v, want only f2", s)
	}
}

func TestRowFormats(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"vertical", verticalRow(model.Feature{ID: "f3", Dims: [2]float64{20, 10}, Normal: model.Point{X: 1}}), "f3  20.0×10.0mm  n=[1,0,0]"},
		{"cone", coneRow(model.Feature{ID: "f4", HalfAngleDeg: 45}), "f4  half-angle=45°"},
		{"fractional radius", cylinderRow(model.Feature{ID: "f5", RadiusMM: 2.5, Axis: "X"}), "f5  R=2.5mm  axis=X"},
		{"missing axis", cylinderRow(model.Feature{ID: "f6", RadiusMM: 1}), "f6  R=1mm  axis=?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("row = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"too long", 5, "too …"},
		{"f1  20.0×20.0mm", 8, "f1  20.…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if got := Clip(tt.s, tt.n); got != tt.want {
				t.Errorf("Clip(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestBuildClipsRows(t *testing.T) {
	r := &model.Report{Cylinders: []model.Feature{{ID: "f1", Kind: model.KindCylinder, RadiusMM: 12.25, Axis: "[0.707,0.707,0]"}}}
	s, _ := Build(r, 12).Section(Cylinders)
	if got := s.Rows[0].Text; got != "f1  R=12.25…" {
		t.Errorf("row = %q", got)
	}
}

func TestCharBudget(t *testing.T) {
	if got := CharBudget(270); got != 36 {
		t.Errorf("CharBudget(270) = %d, want 36", got)
	}
}

func TestDraw(t *testing.T) {
	r := &model.Report{}
	for i := 1; i <= 8; i++ {
		r.Planes = append(r.Planes, vplane(fmt.Sprintf("f%d", i), float64(i*10)))
	}
	l := Build(r, CharBudget(270))

	rec := raster.NewRecorder(1200, 900)
	face := basicfont.Face7x13
	Draw(rec, l, Panel{X: 930, Width: 270, Height: 900}, Fonts{Title: face, Header: face, Row: face})

	texts := rec.Texts()
	if texts[0] != Title {
		t.Errorf("first text = %q, want %q", texts[0], Title)
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{"CYLINDERS (0)", "VERT FACES (8)", "... 3 more", NoneDetected} {
		if !strings.Contains(joined, want) {
			t.Errorf("texts missing %q", want)
		}
	}
	// Title, 4 headers, 3 "none detected" notes, 5 plane rows, 1 truncation note.
	if len(texts) != 14 {
		t.Errorf("texts = %d, want 14", len(texts))
	}
	for _, op := range rec.Ops {
		for _, p := range op.Points {
			if p.X < 930 && op.Kind != "polygon" {
				t.Errorf("%s drawn left of the panel at x=%v", op.Kind, p.X)
			}
		}
	}
}
