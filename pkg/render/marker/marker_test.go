package marker

import (
	"fmt"
	"testing"

	"github.com/matzehuels/featureview/pkg/canvas"
	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/raster"
)

// fixedMeasure treats every rune as 7x13 pixels.
func fixedMeasure(s string) (float64, float64) {
	return float64(len([]rune(s))) * 7, 13
}

// identity maps model x/y straight onto pixels.
func identity(p model.Point) canvas.Pixel {
	return canvas.Pixel{X: p.X, Y: p.Y}
}

func cyl(id string, x, y, r float64) model.Feature {
	return model.Feature{ID: id, Kind: model.KindCylinder, Location: model.Point{X: x, Y: y}, RadiusMM: r, Axis: "Z"}
}

func plane(id string, x, y, area float64, ft model.FaceType) model.Feature {
	return model.Feature{ID: id, Kind: model.KindPlane, Location: model.Point{X: x, Y: y}, AreaMM2: area, FaceType: ft}
}

func cone(id string, x, y float64) model.Feature {
	return model.Feature{ID: id, Kind: model.KindCone, Location: model.Point{X: x, Y: y}, AreaMM2: 16, HalfAngleDeg: 45}
}

func TestRadius(t *testing.T) {
	tests := []struct {
		name string
		f    model.Feature
		want float64
	}{
		{"small cylinder", cyl("f1", 0, 0, 0), 8},
		{"cylinder r=5", cyl("f1", 0, 0, 5), 9.5},
		{"huge cylinder", cyl("f1", 0, 0, 100), 14},
		{"plane area 16", plane("f2", 0, 0, 16, model.FaceHorizontal), 10},
		{"plane area 0", plane("f2", 0, 0, 0, model.FaceHorizontal), 8},
		{"huge plane", plane("f2", 0, 0, 1e6, model.FaceVertical), 13},
		{"cone", cone("f3", 0, 0), 10},
		{"unknown kind", model.Feature{Kind: "torus"}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Radius(tt.f); got != tt.want {
				t.Errorf("Radius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyle(t *testing.T) {
	tests := []struct {
		f     model.Feature
		shape Shape
	}{
		{cyl("f1", 0, 0, 1), Circle},
		{plane("f2", 0, 0, 4, model.FaceHorizontal), Square},
		{plane("f3", 0, 0, 4, model.FaceVertical), Diamond},
		{cone("f4", 0, 0), Triangle},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			if got, _ := Style(tt.f); got != tt.shape {
				t.Errorf("Style(%v) = %v, want %v", tt.f, got, tt.shape)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{5, 5, 15, 15}, true},
		{"contained", Rect{2, 2, 3, 3}, true},
		{"touching edge", Rect{10, 0, 20, 10}, false},
		{"apart", Rect{30, 30, 40, 40}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlacementsUsePadding(t *testing.T) {
	var p Placements
	if !p.TryPlace(Rect{0, 0, 10, 10}) {
		t.Fatal("first placement should succeed")
	}
	// 3px gap is inside the 4px clearance.
	if p.TryPlace(Rect{13, 0, 20, 10}) {
		t.Error("placement within OverlapPad should fail")
	}
	if !p.TryPlace(Rect{15, 0, 20, 10}) {
		t.Error("placement beyond OverlapPad should succeed")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
	rects := p.Rects()
	rects[0] = Rect{}
	if p.Rects()[0] == (Rect{}) {
		t.Error("Rects() must return a copy")
	}
}

func TestLayoutBadgePosition(t *testing.T) {
	var placed Placements
	ms := Layout([]model.Feature{cyl("f1", 100, 100, 5)}, identity, fixedMeasure, &placed)
	if len(ms) != 1 || ms[0].Badge == nil {
		t.Fatalf("Layout() = %+v, want one marker with badge", ms)
	}
	b := ms[0].Badge
	if b.Text != "C1" {
		t.Errorf("badge text = %q, want C1", b.Text)
	}
	if wantX := 100 + 9.5 + 3; b.X != wantX {
		t.Errorf("badge x = %v, want %v", b.X, wantX)
	}
	if b.Y != 93 {
		t.Errorf("badge y = %v, want 93", b.Y)
	}
	want := Rect{X0: b.X - 3, Y0: 90, X1: b.X + 14 + 3, Y1: 93 + 13 + 3}
	if b.Box != want {
		t.Errorf("badge box = %+v, want %+v", b.Box, want)
	}
}

func TestLayoutPriorityOrder(t *testing.T) {
	feats := []model.Feature{
		cone("f9", 0, 0),
		plane("f5", 0, 0, 4, model.FaceVertical),
		plane("f4", 0, 0, 4, model.FaceHorizontal),
		cyl("f1", 0, 0, 1),
		cyl("f2", 0, 0, 1),
	}
	var placed Placements
	ms := Layout(feats, identity, fixedMeasure, &placed)

	var got []string
	for _, m := range ms {
		got = append(got, m.Feature.ID)
	}
	want := []string{"f1", "f2", "f4", "f5", "f9"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	// All at the same spot: only the first cylinder wins a badge.
	if ms[0].Badge == nil {
		t.Error("highest priority feature should get its badge")
	}
	for _, m := range ms[1:] {
		if m.Badge != nil {
			t.Errorf("%s got a badge at a crowded spot", m.Feature.ID)
		}
	}
}

func TestLayoutSkipsTinyPlanes(t *testing.T) {
	feats := []model.Feature{
		plane("f1", 0, 0, 0.49, model.FaceHorizontal),
		plane("f2", 50, 0, 0.5, model.FaceVertical),
		cone("f3", 100, 0),
	}
	var placed Placements
	ms := Layout(feats, identity, fixedMeasure, &placed)
	if len(ms) != 2 {
		t.Fatalf("len = %d, want 2", len(ms))
	}
	if ms[0].Feature.ID != "f2" {
		t.Errorf("first marker = %s, want f2", ms[0].Feature.ID)
	}
}

func TestLayoutNoOverlappingBadges(t *testing.T) {
	var feats []model.Feature
	for i := 0; i < 60; i++ {
		x := float64((i * 37) % 200)
		y := float64((i * 53) % 150)
		switch i % 3 {
		case 0:
			feats = append(feats, cyl(fmt.Sprintf("f%d", i), x, y, float64(i%10)))
		case 1:
			feats = append(feats, plane(fmt.Sprintf("f%d", i), x, y, float64(i*3), model.FaceType([]string{"horizontal", "vertical"}[i%2])))
		default:
			feats = append(feats, cone(fmt.Sprintf("f%d", i), x, y))
		}
	}

	var placed Placements
	ms := Layout(feats, identity, fixedMeasure, &placed)
	if len(ms) != len(feats) {
		t.Errorf("markers = %d, want %d (every glyph is drawn)", len(ms), len(feats))
	}

	rects := placed.Rects()
	if len(rects) == 0 || len(rects) == len(feats) {
		t.Fatalf("placed %d of %d badges; scene should be partially crowded", len(rects), len(feats))
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Intersects(rects[j]) {
				t.Errorf("badges %d and %d overlap: %+v %+v", i, j, rects[i], rects[j])
			}
		}
	}
}

func TestDraw(t *testing.T) {
	var placed Placements
	ms := Layout([]model.Feature{
		cyl("f1", 10, 10, 1),
		plane("f2", 10, 10, 4, model.FaceHorizontal),
		plane("f3", 200, 10, 4, model.FaceVertical),
		cone("f4", 400, 10),
	}, identity, fixedMeasure, &placed)

	rec := raster.NewRecorder(600, 100)
	Draw(rec, ms, nil)

	if got := rec.Count("circle"); got != 1 {
		t.Errorf("circles = %d, want 1", got)
	}
	if got := rec.Count("polygon"); got != 2 {
		t.Errorf("polygons = %d, want 2", got)
	}
	// One square glyph plus one box per placed badge.
	if got, want := rec.Count("rect"), 1+placed.Len(); got != want {
		t.Errorf("rects = %d, want %d", got, want)
	}
	if got := rec.Count("text"); got != placed.Len() {
		t.Errorf("texts = %d, want %d", got, placed.Len())
	}
}

func TestIcon(t *testing.T) {
	rec := raster.NewRecorder(50, 50)
	for _, s := range []Shape{Circle, Square, Diamond, Triangle} {
		Icon(rec, s, 0, 0, ColorCone)
	}
	if len(rec.Ops) != 4 {
		t.Errorf("ops = %d, want 4", len(rec.Ops))
	}
}
