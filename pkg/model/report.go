package model

import (
	"github.com/matzehuels/featureview/pkg/errors"
)

// MinPlaneAreaMM2 is the smallest plane area that gets a marker or a legend
// row. Smaller faces are analyzer noise.
const MinPlaneAreaMM2 = 0.5

// DefaultBoundingBox is used for axis indicators when the report has none.
var DefaultBoundingBox = BoundingBox{XMM: 10, YMM: 10, ZMM: 10}

// BoundingBox is the model extent in millimetres.
type BoundingBox struct {
	XMM float64
	YMM float64
	ZMM float64
}

// Report is the feature analyzer's output for one model.
type Report struct {
	Cylinders   []Feature
	Planes      []Feature
	Cones       []Feature
	BoundingBox *BoundingBox
	Summary     string
}

// Box returns the bounding box, or DefaultBoundingBox when absent.
func (r *Report) Box() BoundingBox {
	if r.BoundingBox == nil {
		return DefaultBoundingBox
	}
	return *r.BoundingBox
}

// Features returns all features in marker priority order: cylinders,
// horizontal planes, vertical planes, cones.
func (r *Report) Features() []Feature {
	out := make([]Feature, 0, r.Count())
	out = append(out, r.Cylinders...)
	for _, p := range r.Planes {
		if p.FaceType == FaceHorizontal {
			out = append(out, p)
		}
	}
	for _, p := range r.Planes {
		if p.FaceType != FaceHorizontal {
			out = append(out, p)
		}
	}
	return append(out, r.Cones...)
}

// Count returns the total number of features.
func (r *Report) Count() int {
	return len(r.Cylinders) + len(r.Planes) + len(r.Cones)
}

// Validate checks that every feature has a non-empty id, ids are unique
// across the whole report, and each feature's Kind matches its list.
func (r *Report) Validate() error {
	seen := make(map[string]Kind, r.Count())
	check := func(list []Feature, kind Kind) error {
		for _, f := range list {
			if f.ID == "" {
				return errors.New(errors.ErrCodeInvalidInput, "%s feature with empty id", kind)
			}
			if f.Kind != kind {
				return errors.New(errors.ErrCodeInvalidInput, "feature %s listed as %s has kind %q", f.ID, kind, f.Kind)
			}
			if prev, dup := seen[f.ID]; dup {
				return errors.New(errors.ErrCodeInvalidInput, "duplicate feature id %s (%s and %s)", f.ID, prev, kind)
			}
			seen[f.ID] = kind
		}
		return nil
	}
	if err := check(r.Cylinders, KindCylinder); err != nil {
		return err
	}
	if err := check(r.Planes, KindPlane); err != nil {
		return err
	}
	return check(r.Cones, KindCone)
}
