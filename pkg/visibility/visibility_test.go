package visibility

import (
	"math"
	"testing"

	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/view"
)

func mustView(t *testing.T, name string) view.Definition {
	t.Helper()
	d, ok := view.Lookup(name)
	if !ok {
		t.Fatalf("view %s not found", name)
	}
	return d
}

func seg(a, b model.Point) model.Edge { return model.Edge{Points: []model.Point{a, b}} }

// box returns the 12 edges of an axis-aligned 10x10x10 cube at the origin.
func box() []model.Edge {
	p := func(x, y, z float64) model.Point { return model.Point{X: x, Y: y, Z: z} }
	return []model.Edge{
		seg(p(0, 0, 0), p(10, 0, 0)), seg(p(0, 10, 0), p(10, 10, 0)),
		seg(p(0, 0, 10), p(10, 0, 10)), seg(p(0, 10, 10), p(10, 10, 10)),
		seg(p(0, 0, 0), p(0, 10, 0)), seg(p(10, 0, 0), p(10, 10, 0)),
		seg(p(0, 0, 10), p(0, 10, 10)), seg(p(10, 0, 10), p(10, 10, 10)),
		seg(p(0, 0, 0), p(0, 0, 10)), seg(p(10, 0, 0), p(10, 0, 10)),
		seg(p(0, 10, 0), p(0, 10, 10)), seg(p(10, 10, 0), p(10, 10, 10)),
	}
}

func TestThreshold(t *testing.T) {
	f := New(mustView(t, view.NameTop), box())
	if f.DepthMin != 0 || f.DepthMax != 10 {
		t.Errorf("depth range = [%v, %v], want [0, 10]", f.DepthMin, f.DepthMax)
	}
	if math.Abs(f.Threshold-1.2) > 1e-12 {
		t.Errorf("Threshold = %v, want 1.2", f.Threshold)
	}
}

func TestTopViewCullsBottomEdges(t *testing.T) {
	f := New(mustView(t, view.NameTop), box())
	visible := f.VisibleEdges(box())
	// The 4 bottom-face edges at z=0 are culled; 4 top + 4 vertical remain.
	if len(visible) != 8 {
		t.Errorf("visible edges = %d, want 8", len(visible))
	}
	for _, e := range visible {
		if e.Points[0].Z == 0 && e.Points[1].Z == 0 {
			t.Errorf("bottom edge %v should be culled", e.Points)
		}
	}
}

func TestIsometricNeverCulls(t *testing.T) {
	f := New(mustView(t, view.NameIsometric), box())
	if f.Culls() {
		t.Error("isometric filter should not cull")
	}
	if got := len(f.VisibleEdges(box())); got != 12 {
		t.Errorf("isometric visible edges = %d, want 12", got)
	}
	far := model.Feature{ID: "f1", Location: model.Point{X: -1e6, Y: 1e6, Z: -1e6}}
	if !f.FeatureVisible(far) {
		t.Error("isometric should show every feature")
	}
}

func TestFrontBackExclusion(t *testing.T) {
	// Features on the front half (y=0) and back half (y=10) of the cube.
	front := model.Feature{ID: "front", Kind: model.KindPlane, Location: model.Point{X: 5, Y: 0, Z: 5}}
	back := model.Feature{ID: "back", Kind: model.KindPlane, Location: model.Point{X: 5, Y: 10, Z: 5}}
	feats := []model.Feature{front, back}

	inFront := New(mustView(t, view.NameFront), box()).VisibleFeatures(feats)
	if len(inFront) != 1 || inFront[0].ID != "front" {
		t.Errorf("front view features = %v, want [front]", inFront)
	}

	inBack := New(mustView(t, view.NameBack), box()).VisibleFeatures(feats)
	if len(inBack) != 1 || inBack[0].ID != "back" {
		t.Errorf("back view features = %v, want [back]", inBack)
	}
}

func TestFeatureAtThresholdIsVisible(t *testing.T) {
	f := New(mustView(t, view.NameTop), box())
	at := model.Feature{ID: "at", Location: model.Point{Z: f.Threshold}}
	below := model.Feature{ID: "below", Location: model.Point{Z: f.Threshold - 1e-9}}
	if !f.FeatureVisible(at) {
		t.Error("feature exactly at threshold should be visible")
	}
	if f.FeatureVisible(below) {
		t.Error("feature below threshold should be hidden")
	}
}

func TestNoEdgesFallback(t *testing.T) {
	f := New(mustView(t, view.NameBottom), nil)
	if f.DepthMin != 0 || f.DepthMax != 1 {
		t.Errorf("fallback range = [%v, %v], want [0, 1]", f.DepthMin, f.DepthMax)
	}
	if math.Abs(f.Threshold-0.12) > 1e-12 {
		t.Errorf("fallback Threshold = %v, want 0.12", f.Threshold)
	}
}

func TestDegenerateDepthKeepsAllEdges(t *testing.T) {
	// A flat square in z=3 seen from the top: every point at depth 3.
	p := func(x, y float64) model.Point { return model.Point{X: x, Y: y, Z: 3} }
	flat := []model.Edge{seg(p(0, 0), p(1, 0)), seg(p(1, 0), p(1, 1)), seg(p(1, 1), p(0, 1))}

	f := New(mustView(t, view.NameTop), flat)
	if !f.Degenerate {
		t.Fatal("expected degenerate filter")
	}
	if got := len(f.VisibleEdges(flat)); got != 3 {
		t.Errorf("visible edges = %d, want 3", got)
	}
	if !f.FeatureVisible(model.Feature{Location: p(0.5, 0.5)}) {
		t.Error("feature at the flat depth should be visible")
	}
}

func TestVisibleEdgesPreservesOrder(t *testing.T) {
	edges := box()
	f := New(mustView(t, view.NameRight), edges)
	visible := f.VisibleEdges(edges)
	j := 0
	for _, e := range edges {
		if j < len(visible) && &e.Points[0] == &visible[j].Points[0] {
			j++
		}
	}
	if j != len(visible) {
		t.Errorf("visible edges are not an ordered subsequence of the input")
	}
}
