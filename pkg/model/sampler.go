package model

import (
	"context"
	"path/filepath"
	"strings"
)

// EdgeSampler turns a solid model file into sampled edges. Implementations
// wrap a CAD kernel; the renderer only ever sees the resulting polylines.
type EdgeSampler interface {
	SampleEdges(ctx context.Context, modelPath string) ([]Edge, error)
}

// SamplerFunc adapts a function to EdgeSampler.
type SamplerFunc func(ctx context.Context, modelPath string) ([]Edge, error)

// SampleEdges calls f.
func (f SamplerFunc) SampleEdges(ctx context.Context, modelPath string) ([]Edge, error) {
	return f(ctx, modelPath)
}

// FileSampler reads edges that a kernel has already written to a JSON
// sidecar. If Path is empty the sidecar next to the model is used.
type FileSampler struct {
	Path string
}

// SampleEdges loads the sidecar for modelPath.
func (s FileSampler) SampleEdges(ctx context.Context, modelPath string) ([]Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Path
	if path == "" {
		path = SidecarPath(modelPath)
	}
	return ImportEdges(path)
}

// SidecarPath returns the default edge sidecar path for a model:
// "parts/bracket.step" becomes "parts/bracket.edges.json".
func SidecarPath(modelPath string) string {
	return filepath.Join(filepath.Dir(modelPath), Stem(modelPath)+".edges.json")
}

// Stem returns the model file name without directory and extension.
func Stem(modelPath string) string {
	base := filepath.Base(modelPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
