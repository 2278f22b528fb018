package model

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/featureview/pkg/errors"
)

func TestBadge(t *testing.T) {
	tests := []struct {
		name string
		f    Feature
		want string
	}{
		{"cylinder", Feature{ID: "f3", Kind: KindCylinder}, "C3"},
		{"plane", Feature{ID: "f14", Kind: KindPlane}, "P14"},
		{"cone", Feature{ID: "f7", Kind: KindCone}, "K7"},
		{"inner f kept", Feature{ID: "ff1", Kind: KindCylinder}, "Cf1"},
		{"non-f prefix", Feature{ID: "h2", Kind: KindPlane}, "P2"},
		{"multibyte first rune", Feature{ID: "φ9", Kind: KindCone}, "K9"},
		{"empty id", Feature{ID: "", Kind: KindCylinder}, "C"},
		{"unknown kind", Feature{ID: "f1", Kind: "torus"}, "f1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Badge(); got != tt.want {
				t.Errorf("Badge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdgeValidate(t *testing.T) {
	if err := (Edge{Points: []Point{{}, {X: 1}}}).Validate(); err != nil {
		t.Errorf("two-point edge: unexpected error %v", err)
	}
	err := (Edge{Points: []Point{{}}}).Validate()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("one-point edge: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	err = (Edge{Points: []Point{{}, {X: 1}, {Y: math.NaN()}}}).Validate()
	if !errors.Is(err, errors.ErrCodeInvalidInput) || !strings.Contains(err.Error(), "point 2") {
		t.Errorf("NaN edge: error = %v, want INVALID_INPUT naming point 2", err)
	}
}

func TestReportFeaturesOrder(t *testing.T) {
	r := &Report{
		Cylinders: []Feature{{ID: "c", Kind: KindCylinder}},
		Planes: []Feature{
			{ID: "v1", Kind: KindPlane, FaceType: FaceVertical},
			{ID: "h1", Kind: KindPlane, FaceType: FaceHorizontal},
			{ID: "v2", Kind: KindPlane, FaceType: FaceVertical},
		},
		Cones: []Feature{{ID: "k", Kind: KindCone}},
	}

	var got []string
	for _, f := range r.Features() {
		got = append(got, f.ID)
	}
	want := []string{"c", "h1", "v1", "v2", "k"}
	if len(got) != len(want) {
		t.Fatalf("Features() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Features()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if r.Count() != 5 {
		t.Errorf("Count() = %d, want 5", r.Count())
	}
}

func TestReportValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Report
		wantErr bool
	}{
		{"empty", Report{}, false},
		{"unique", Report{
			Cylinders: []Feature{{ID: "f1", Kind: KindCylinder}},
			Planes:    []Feature{{ID: "f2", Kind: KindPlane}},
		}, false},
		{"duplicate across lists", Report{
			Cylinders: []Feature{{ID: "f1", Kind: KindCylinder}},
			Cones:     []Feature{{ID: "f1", Kind: KindCone}},
		}, true},
		{"empty id", Report{Planes: []Feature{{Kind: KindPlane}}}, true},
		{"kind mismatch", Report{Cones: []Feature{{ID: "f1", Kind: KindPlane}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReportBox(t *testing.T) {
	var r Report
	if r.Box() != DefaultBoundingBox {
		t.Errorf("Box() = %+v, want default %+v", r.Box(), DefaultBoundingBox)
	}
	r.BoundingBox = &BoundingBox{XMM: 1, YMM: 2, ZMM: 3}
	if got := r.Box(); got.ZMM != 3 {
		t.Errorf("Box().ZMM = %v, want 3", got.ZMM)
	}
}
