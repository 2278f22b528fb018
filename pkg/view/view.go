// Package view holds the seven fixed camera definitions and the pure
// 3D-to-2D projections used by every rendered view.
//
// The table is read-only configuration. [All] returns a fresh copy on each
// call so callers cannot mutate the shared definitions.
package view

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/model"
)

// Projection selects the projection formula of a view.
type Projection int

const (
	Isometric Projection = iota
	Orthographic
)

// String returns the projection name.
func (p Projection) String() string {
	switch p {
	case Isometric:
		return "isometric"
	case Orthographic:
		return "orthographic"
	}
	return "unknown"
}

// Definition describes one camera. Dir is the unit vector pointing toward
// the camera. U and V span the image plane and are only used by
// orthographic views.
type Definition struct {
	Name       string
	Label      string
	Projection Projection
	Dir        r3.Vec
	U          r3.Vec
	V          r3.Vec
}

// IsIsometric reports whether d uses the isometric projection.
func (d Definition) IsIsometric() bool { return d.Projection == Isometric }

// Depth returns the distance of p along the view direction. Larger is
// closer to the camera.
func (d Definition) Depth(p model.Point) float64 {
	return r3.Dot(p, d.Dir)
}

// View names.
const (
	NameIsometric = "isometric"
	NameTop       = "top"
	NameBottom    = "bottom"
	NameFront     = "front"
	NameBack      = "back"
	NameLeft      = "left"
	NameRight     = "right"
)

// isoDir is (0.5,-0.5,0.5) scaled to unit length.
var isoDir = r3.Unit(r3.Vec{X: 0.5, Y: -0.5, Z: 0.5})

var table = [...]Definition{
	{Name: NameIsometric, Label: "Isometric", Projection: Isometric, Dir: isoDir},
	{Name: NameTop, Label: "Top (+Z → down)", Projection: Orthographic,
		Dir: r3.Vec{Z: 1}, U: r3.Vec{X: 1}, V: r3.Vec{Y: 1}},
	{Name: NameBottom, Label: "Bottom (-Z → up)", Projection: Orthographic,
		Dir: r3.Vec{Z: -1}, U: r3.Vec{X: 1}, V: r3.Vec{Y: -1}},
	{Name: NameFront, Label: "Front (-Y → front)", Projection: Orthographic,
		Dir: r3.Vec{Y: -1}, U: r3.Vec{X: 1}, V: r3.Vec{Z: -1}},
	{Name: NameBack, Label: "Back (+Y → back)", Projection: Orthographic,
		Dir: r3.Vec{Y: 1}, U: r3.Vec{X: -1}, V: r3.Vec{Z: -1}},
	{Name: NameLeft, Label: "Left (-X → left)", Projection: Orthographic,
		Dir: r3.Vec{X: -1}, U: r3.Vec{Y: 1}, V: r3.Vec{Z: -1}},
	{Name: NameRight, Label: "Right (+X → right)", Projection: Orthographic,
		Dir: r3.Vec{X: 1}, U: r3.Vec{Y: -1}, V: r3.Vec{Z: -1}},
}

// All returns the seven view definitions in render order.
func All() []Definition {
	out := make([]Definition, len(table))
	copy(out, table[:])
	return out
}

// Lookup returns the definition with the given name.
func Lookup(name string) (Definition, bool) {
	for _, d := range table {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Names returns the view names in render order.
func Names() []string {
	out := make([]string, len(table))
	for i, d := range table {
		out[i] = d.Name
	}
	return out
}

const unitTolerance = 1e-9

// Validate reports an ErrCodeInvalidView error if d is malformed: empty
// name, non-unit view direction, or for orthographic views axes that are
// missing, non-unit, or not mutually perpendicular with Dir.
func (d Definition) Validate() error {
	if d.Name == "" {
		return errors.New(errors.ErrCodeInvalidView, "view has no name")
	}
	if !isUnit(d.Dir) {
		return errors.New(errors.ErrCodeInvalidView, "view %s: direction %v is not a unit vector", d.Name, d.Dir)
	}
	if d.Projection == Isometric {
		return nil
	}
	if d.Projection != Orthographic {
		return errors.New(errors.ErrCodeInvalidView, "view %s: unknown projection %d", d.Name, d.Projection)
	}
	if !isUnit(d.U) || !isUnit(d.V) {
		return errors.New(errors.ErrCodeInvalidView, "view %s: image axes must be unit vectors", d.Name)
	}
	if math.Abs(r3.Dot(d.U, d.V)) > unitTolerance ||
		math.Abs(r3.Dot(d.U, d.Dir)) > unitTolerance ||
		math.Abs(r3.Dot(d.V, d.Dir)) > unitTolerance {
		return errors.New(errors.ErrCodeInvalidView, "view %s: axes are not mutually perpendicular", d.Name)
	}
	return nil
}

func isUnit(v r3.Vec) bool {
	return math.Abs(r3.Norm(v)-1) <= unitTolerance
}

// MustValidateAll panics if any built-in definition is malformed. A failure
// here is a programming error in the table above.
func MustValidateAll() {
	for _, d := range table {
		if err := d.Validate(); err != nil {
			panic(err)
		}
	}
}
