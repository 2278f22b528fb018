// Package pkg provides the core libraries for featureview preview rendering.
//
// # Overview
//
// Featureview turns a solid model into seven labeled preview images. A CAD
// kernel samples the model's edges into 3D polylines, an analyzer reports the
// cylinders, planar faces and cones it found, and featureview projects both
// into standard views with feature markers and a reference legend.
//
// # Architecture
//
// The typical data flow:
//
//	Solid model + feature report
//	         ↓
//	    [model] package (edges, features, sidecar import)
//	         ↓
//	    [view] package (camera table + projection)
//	         ↓
//	    [visibility] package (depth culling for orthographic views)
//	         ↓
//	    [render] package (edges, axes, markers, legend, title)
//	         ↓
//	    PNG per view
//
// # Quick Start
//
// Render all views of a model whose edges were written to a sidecar:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/featureview/pkg/model"
//	    "github.com/matzehuels/featureview/pkg/pipeline"
//	)
//
//	report, _ := model.ImportReport("parts/bracket.features.json")
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	res, _ := runner.RenderMultiview(context.Background(), pipeline.Request{
//	    ModelPath: "parts/bracket.step",
//	    Report:    report,
//	})
//	for view, path := range res.Paths {
//	    fmt.Println(view, path)
//	}
//
// # Main Packages
//
// ## Domain
//
// [model] - Points, sampled edges, features and the feature report, plus JSON
// import of reports and edge sidecars.
//
// [view] - The seven standard views. [view.Project] maps model
// points to 2D and [view.Definition.Depth] orders them along the camera.
//
// [visibility] - Depth-window culling that keeps the camera-facing slab of an
// orthographic view.
//
// [canvas] - 2D bounds and the per-axis mapping into the drawable area.
//
// ## Rendering
//
// [render] - Per-view rendering as an explicit sequence of stages, with
// failures reported by stage.
//
//   - [render/marker]: Feature glyphs, badge placement and collision avoidance
//   - [render/legend]: Feature reference panel (grouping, ordering, clipping)
//
// [raster] - Drawing surface interface over fogleman/gg, plus a recording
// surface for tests.
//
// [fonts] - Font fallback chain (configured file, system fonts, embedded Go
// fonts, bitmap face).
//
// ## Infrastructure
//
// [pipeline] - Multi-view orchestration: sampling once, rendering views in
// parallel and isolating per-view failures.
//
// [cache] - Rendered image cache with file, Redis and null backends.
//
// [config] - TOML configuration with defaults and validation.
//
// [observability] - Render and cache hooks for metrics.
//
// [errors] - Coded errors shared by all packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/render/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests (needs REDIS_ADDR)
//
// [model]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/model
// [view]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/view
// [view.Project]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/view#Project
// [view.Definition.Depth]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/view#Definition.Depth
// [visibility]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/visibility
// [canvas]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/canvas
// [render]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/render
// [render/marker]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/render/marker
// [render/legend]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/render/legend
// [raster]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/raster
// [fonts]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/featureview/pkg/errors
package pkg
