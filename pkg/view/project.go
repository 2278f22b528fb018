package view

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/featureview/pkg/model"
)

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

// Project maps p onto the image plane of d. The result is in model units;
// the canvas package turns it into pixels.
func Project(d Definition, p model.Point) (sx, sy float64) {
	if d.Projection == Isometric {
		return ProjectIsometric(p)
	}
	return ProjectOrthographic(p, d.U, d.V)
}

// ProjectIsometric is the conventional engineering isometric, matching a
// camera looking along (0.5,-0.5,0.5). Image y grows downward.
func ProjectIsometric(p model.Point) (sx, sy float64) {
	sx = (p.X - p.Y) * cos30
	sy = -((p.X+p.Y)*sin30 + p.Z)
	return sx, sy
}

// ProjectOrthographic projects p onto the u/v image axes.
func ProjectOrthographic(p model.Point, u, v r3.Vec) (sx, sy float64) {
	return r3.Dot(p, u), r3.Dot(p, v)
}
