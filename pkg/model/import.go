package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/featureview/pkg/errors"
)

type vec3 [3]float64

func (v vec3) point() Point { return Point{X: v[0], Y: v[1], Z: v[2]} }

type featureJSON struct {
	ID           string          `json:"id"`
	Location     vec3            `json:"location"`
	RadiusMM     float64         `json:"radius_mm,omitempty"`
	Axis         json.RawMessage `json:"axis,omitempty"`
	Dims         []float64       `json:"dims,omitempty"`
	Normal       *vec3           `json:"normal,omitempty"`
	FaceType     string          `json:"face_type,omitempty"`
	AreaMM2      float64         `json:"area_mm2,omitempty"`
	HalfAngleDeg float64         `json:"half_angle_deg,omitempty"`
}

type reportJSON struct {
	Cylinders   []featureJSON `json:"cylinders"`
	Planes      []featureJSON `json:"planes"`
	Cones       []featureJSON `json:"cones"`
	BoundingBox *struct {
		XMM float64 `json:"x_mm"`
		YMM float64 `json:"y_mm"`
		ZMM float64 `json:"z_mm"`
	} `json:"bounding_box,omitempty"`
	Summary string `json:"summary,omitempty"`
}

type edgesJSON struct {
	Edges [][]vec3 `json:"edges"`
}

// ReadReport decodes a feature report from r and validates it.
//
// Each feature takes its Kind from the list it appears in. A plane without
// face_type is horizontal when its normal is within about 25° of ±Z and
// vertical otherwise. The cylinder axis may be a string ("Z") or a vector
// ([0,0,1]); vectors are kept in their compact "[0,0,1]" form.
//
// ReadReport does not close r.
func ReadReport(r io.Reader) (*Report, error) {
	var data reportJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	rep := &Report{Summary: data.Summary}
	if bb := data.BoundingBox; bb != nil {
		rep.BoundingBox = &BoundingBox{XMM: bb.XMM, YMM: bb.YMM, ZMM: bb.ZMM}
	}
	for _, f := range data.Cylinders {
		rep.Cylinders = append(rep.Cylinders, f.feature(KindCylinder))
	}
	for _, f := range data.Planes {
		rep.Planes = append(rep.Planes, f.feature(KindPlane))
	}
	for _, f := range data.Cones {
		rep.Cones = append(rep.Cones, f.feature(KindCone))
	}

	if err := rep.Validate(); err != nil {
		return nil, err
	}
	return rep, nil
}

// ImportReport reads the feature report JSON file at path. A missing file
// is NOT_FOUND.
func ImportReport(path string) (*Report, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReport(f)
}

// ReadEdges decodes sampled edges from r. Edges with fewer than 2 points
// are dropped, matching the kernel sampler's own filter.
func ReadEdges(r io.Reader) ([]Edge, error) {
	var data edgesJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	edges := make([]Edge, 0, len(data.Edges))
	for _, pts := range data.Edges {
		if len(pts) < 2 {
			continue
		}
		e := Edge{Points: make([]Point, len(pts))}
		for i, p := range pts {
			e.Points[i] = p.point()
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// ImportEdges reads the edge sample JSON file at path. A missing file is
// NOT_FOUND.
func ImportEdges(path string) ([]Edge, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEdges(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "missing input file")
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// WriteEdges encodes edges in the sidecar format read by ReadEdges.
func WriteEdges(w io.Writer, edges []Edge) error {
	data := edgesJSON{Edges: make([][]vec3, len(edges))}
	for i, e := range edges {
		pts := make([]vec3, len(e.Points))
		for j, p := range e.Points {
			pts[j] = vec3{p.X, p.Y, p.Z}
		}
		data.Edges[i] = pts
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f featureJSON) feature(kind Kind) Feature {
	out := Feature{
		ID:           f.ID,
		Kind:         kind,
		Location:     f.Location.point(),
		RadiusMM:     f.RadiusMM,
		Axis:         axisString(f.Axis),
		AreaMM2:      f.AreaMM2,
		HalfAngleDeg: f.HalfAngleDeg,
	}
	copy(out.Dims[:], f.Dims)
	if f.Normal != nil {
		out.Normal = f.Normal.point()
	}
	if kind == KindPlane {
		out.FaceType = faceType(f.FaceType, out.Normal)
	}
	return out
}

func faceType(s string, normal Point) FaceType {
	switch FaceType(s) {
	case FaceHorizontal, FaceVertical:
		return FaceType(s)
	}
	if s == "" && math.Abs(normal.Z) > 0.9 {
		return FaceHorizontal
	}
	return FaceVertical
}

func axisString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "?"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v []float64
	if err := json.Unmarshal(raw, &v); err == nil {
		parts := make([]string, len(v))
		for i, c := range v {
			parts[i] = strconv.FormatFloat(c, 'f', -1, 64)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return string(raw)
}
