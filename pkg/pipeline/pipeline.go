// Package pipeline renders the full set of labeled views for one model.
//
// # Overview
//
// A [Runner] takes a model path, its feature report and an edge sampler,
// samples the edges exactly once, then renders every view through a
// [render.Renderer]:
//
//  1. Sample: the sampler turns the model into polylines
//  2. Validate: the report and every edge are checked
//  3. Render: the seven views run on a bounded worker pool
//  4. Write: each successful view lands at <output>/<stem>/<view>.png
//
// A failing view never affects the others. The call only fails as a whole
// when the input is invalid or when every view failed.
//
// # Usage
//
//	runner := pipeline.NewRunner(render.New(render.Config{}, fonts.Default(""), nil), cache, nil, logger)
//	res, err := runner.RenderMultiview(ctx, pipeline.Request{
//	    ModelPath: "parts/bracket.step",
//	    Report:    report,
//	    OutputDir: "outputs/previews",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for name, path := range res.Paths {
//	    fmt.Println(name, path)
//	}
//
// A single labeled isometric image next to the model is rendered by
// [Runner.RenderLabeled].
package pipeline

import (
	"time"

	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/view"
)

// DefaultOutputDir is used when a Request names no output directory.
const DefaultOutputDir = "outputs/previews"

// LabeledSuffix is appended to the model stem by RenderLabeled.
const LabeledSuffix = ".labeled.png"

// Request describes one model to render.
type Request struct {
	// ModelPath locates the solid model. Its stem names the output folder.
	ModelPath string
	// Report is the analyzer output for the model.
	Report *model.Report
	// OutputDir is the parent of the per-model folder.
	OutputDir string
	// Sampler produces edges. Nil reads the JSON sidecar next to the model.
	Sampler model.EdgeSampler
	// Views limits rendering to the named views. Empty means all seven.
	Views []string
	// Refresh ignores cached artifacts; fresh renders are still stored.
	Refresh bool
}

// Result is the outcome of RenderMultiview.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// Stem is the model stem.
	Stem string
	// Paths maps view name to the absolute path of its image. Failed
	// views are absent.
	Paths map[string]string
	// Failures maps view name to the reason it failed.
	Failures map[string]error
	// Stats contains timing and count information.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Edges      int
	Features   int
	Views      int
	Succeeded  int
	Failed     int
	CacheHits  int
	SampleTime time.Duration
	RenderTime time.Duration
}

// validate checks the request and resolves the view list.
func (q *Request) validate() (string, []view.Definition, error) {
	if q.ModelPath == "" {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "model path is required")
	}
	stem := model.Stem(q.ModelPath)
	if err := errors.ValidateStem(stem); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "model path %q", q.ModelPath)
	}
	if q.Report == nil {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "feature report is required")
	}
	if err := q.Report.Validate(); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "feature report")
	}

	if len(q.Views) == 0 {
		return stem, view.All(), nil
	}
	defs := make([]view.Definition, 0, len(q.Views))
	seen := make(map[string]bool, len(q.Views))
	for _, name := range q.Views {
		d, ok := view.Lookup(name)
		if !ok {
			return "", nil, errors.New(errors.ErrCodeInvalidView, "unknown view %q (valid: %v)", name, view.Names())
		}
		if !seen[name] {
			seen[name] = true
			defs = append(defs, d)
		}
	}
	return stem, defs, nil
}

func (q *Request) sampler() model.EdgeSampler {
	if q.Sampler == nil {
		return model.FileSampler{}
	}
	return q.Sampler
}

func (q *Request) outputDir() string {
	if q.OutputDir == "" {
		return DefaultOutputDir
	}
	return q.OutputDir
}
