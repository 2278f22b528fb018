// Package visibility culls edges and features that face away from a view.
//
// The rule is a depth-threshold heuristic, not hidden-line removal. For a
// view direction d, depth(p) = p·d. Over all sampled edge points the filter
// finds the depth range and places the threshold 12% of the way in from the
// far end. An edge is kept if any of its points lies in front of the
// threshold, a feature if its location is at or in front of it.
//
// Isometric views are never culled.
package visibility

import (
	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/view"
)

// Fraction is the share of the depth range, measured from the far end,
// that is treated as facing away from the camera.
const Fraction = 0.12

// epsilon floors the depth range.
const epsilon = 1e-6

// Filter holds the per-view threshold computed from one edge set.
type Filter struct {
	Def       view.Definition
	DepthMin  float64
	DepthMax  float64
	Threshold float64

	// Degenerate is set when every edge point lies at the same depth. All
	// edges then pass.
	Degenerate bool
}

// New computes the depth range of edges along def's direction. Without any
// edges the range falls back to [0, 1].
func New(def view.Definition, edges []model.Edge) Filter {
	f := Filter{Def: def}
	first := true
	for _, e := range edges {
		for _, p := range e.Points {
			d := def.Depth(p)
			if first {
				f.DepthMin, f.DepthMax = d, d
				first = false
				continue
			}
			if d < f.DepthMin {
				f.DepthMin = d
			}
			if d > f.DepthMax {
				f.DepthMax = d
			}
		}
	}
	if first {
		f.DepthMin, f.DepthMax = 0, 1
	}

	span := f.DepthMax - f.DepthMin
	if span < epsilon {
		f.Degenerate = true
		f.Threshold = f.DepthMin
		return f
	}
	f.Threshold = f.DepthMin + Fraction*span
	return f
}

// Culls reports whether the filter removes anything at all.
func (f Filter) Culls() bool {
	return !f.Def.IsIsometric()
}

// EdgeVisible reports whether the deepest-forward point of e lies in front
// of the threshold.
func (f Filter) EdgeVisible(e model.Edge) bool {
	if !f.Culls() || f.Degenerate {
		return true
	}
	for _, p := range e.Points {
		if f.Def.Depth(p) > f.Threshold {
			return true
		}
	}
	return false
}

// FeatureVisible reports whether the feature location is at or in front of
// the threshold.
func (f Filter) FeatureVisible(feat model.Feature) bool {
	if !f.Culls() {
		return true
	}
	return f.Def.Depth(feat.Location) >= f.Threshold
}

// VisibleEdges returns the edges that pass EdgeVisible, in input order. The
// returned slice shares Points with the input.
func (f Filter) VisibleEdges(edges []model.Edge) []model.Edge {
	if !f.Culls() {
		return edges
	}
	out := make([]model.Edge, 0, len(edges))
	for _, e := range edges {
		if f.EdgeVisible(e) {
			out = append(out, e)
		}
	}
	return out
}

// VisibleFeatures returns the features that pass FeatureVisible, in input
// order.
func (f Filter) VisibleFeatures(feats []model.Feature) []model.Feature {
	out := make([]model.Feature, 0, len(feats))
	for _, ft := range feats {
		if f.FeatureVisible(ft) {
			out = append(out, ft)
		}
	}
	return out
}
