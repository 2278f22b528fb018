package model

import (
	"fmt"
	"math"
	"unicode/utf8"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/featureview/pkg/errors"
)

// Point is a 3D point in model millimetres.
type Point = r3.Vec

// Edge is one sampled boundary curve. Straight segments carry 2 points,
// curves up to about 24. Points are in curve order.
type Edge struct {
	Points []Point
}

// Validate reports an error if the edge has fewer than 2 points or a
// coordinate that is NaN or infinite.
func (e Edge) Validate() error {
	if len(e.Points) < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "edge has %d points, need at least 2", len(e.Points))
	}
	for i, p := range e.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return errors.New(errors.ErrCodeInvalidInput, "point %d (%v, %v, %v) is not finite", i, p.X, p.Y, p.Z)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Kind classifies a feature.
type Kind string

const (
	KindCylinder Kind = "cylinder"
	KindPlane    Kind = "plane"
	KindCone     Kind = "cone"
)

// FaceType distinguishes flat faces by orientation.
type FaceType string

const (
	FaceHorizontal FaceType = "horizontal"
	FaceVertical   FaceType = "vertical"
)

// Feature is one classified geometric element. Which of the kind-specific
// fields are meaningful depends on Kind.
type Feature struct {
	ID       string
	Kind     Kind
	Location Point

	// Cylinder
	RadiusMM float64
	Axis     string

	// Plane
	Dims     [2]float64
	Normal   Point
	FaceType FaceType

	// Plane and cone
	AreaMM2 float64

	// Cone
	HalfAngleDeg float64
}

// IsHorizontal reports whether the feature is a horizontal plane.
func (f Feature) IsHorizontal() bool {
	return f.Kind == KindPlane && f.FaceType == FaceHorizontal
}

// Badge returns the short label drawn next to a feature marker. The first
// rune of the id is replaced by the kind letter: "f3" on a cylinder is "C3".
// Later runes are left untouched.
func (f Feature) Badge() string {
	p, ok := badgePrefix[f.Kind]
	if !ok {
		return f.ID
	}
	if f.ID == "" {
		return p
	}
	_, size := utf8.DecodeRuneInString(f.ID)
	return p + f.ID[size:]
}

var badgePrefix = map[Kind]string{
	KindCylinder: "C",
	KindPlane:    "P",
	KindCone:     "K", // countersink
}

// String returns "kind id" for logging.
func (f Feature) String() string {
	return fmt.Sprintf("%s %s", f.Kind, f.ID)
}
