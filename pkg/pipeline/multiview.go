package pipeline

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/observability"
	"github.com/matzehuels/featureview/pkg/render"
	"github.com/matzehuels/featureview/pkg/view"
)

// RenderMultiview samples the model once and renders every requested view
// to <OutputDir>/<stem>/<view>.png.
//
// Invalid input or a failing sampler returns INVALID_INPUT before anything
// is drawn. Sampled edges with fewer than 2 points are dropped. Individual view failures are recorded in Result.Failures; only
// when every view fails does RenderMultiview return ALL_VIEWS_FAILED, which
// joins each view's cause. The Result is returned in both cases.
func (r *Runner) RenderMultiview(ctx context.Context, q Request) (*Result, error) {
	stem, defs, err := q.validate()
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:    uuid.NewString(),
		Stem:     stem,
		Paths:    make(map[string]string, len(defs)),
		Failures: make(map[string]error),
	}
	logger := r.Logger.With("run", res.RunID[:8], "model", stem)

	sampleStart := time.Now()
	edges, err := r.sample(ctx, &q)
	if err != nil {
		return nil, err
	}
	res.Stats.SampleTime = time.Since(sampleStart)
	res.Stats.Edges = len(edges)
	res.Stats.Features = q.Report.Count()
	res.Stats.Views = len(defs)
	logger.Info("sampled edges", "edges", len(edges), "features", res.Stats.Features, "duration", res.Stats.SampleTime)

	sc := render.Scene{Stem: stem, Edges: edges, Report: q.Report}
	hash, err := sceneHash(sc)
	if err != nil {
		logger.Warn("scene hash failed, caching disabled for this run", "err", err)
		hash = ""
	}

	hooks := observability.Render()
	hooks.OnMultiviewStart(ctx, stem, len(edges), res.Stats.Features)

	outDir := filepath.Join(q.outputDir(), stem)
	renderStart := time.Now()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(max(r.Workers, 1))
	for _, def := range defs {
		def := def
		g.Go(func() error {
			hooks.OnViewStart(ctx, def.Name)
			start := time.Now()
			out := r.renderView(ctx, sc, hash, def, filepath.Join(outDir, def.Name+".png"), q.Refresh)
			elapsed := time.Since(start)
			hooks.OnViewComplete(ctx, def.Name, elapsed, out.err)

			mu.Lock()
			defer mu.Unlock()
			if out.err != nil {
				res.Failures[def.Name] = out.err
				logger.Error("view failed", "view", def.Name, "stage", out.stage, "err", out.err)
				return nil
			}
			res.Paths[def.Name] = out.path
			if out.cached {
				res.Stats.CacheHits++
			}
			logger.Info("rendered view", "view", def.Name, "path", out.path, "duration", elapsed, "cached", out.cached)
			return nil
		})
	}
	_ = g.Wait()

	res.Stats.RenderTime = time.Since(renderStart)
	res.Stats.Succeeded = len(res.Paths)
	res.Stats.Failed = len(res.Failures)
	hooks.OnMultiviewComplete(ctx, stem, res.Stats.Succeeded, res.Stats.Failed, res.Stats.RenderTime)
	logger.Info("multiview complete",
		"succeeded", res.Stats.Succeeded,
		"failed", res.Stats.Failed,
		"cache_hits", res.Stats.CacheHits,
		"duration", res.Stats.RenderTime)

	if res.Stats.Succeeded == 0 {
		causes := make([]error, 0, len(defs))
		for _, def := range defs {
			causes = append(causes, res.Failures[def.Name])
		}
		return res, errors.Wrap(errors.ErrCodeAllViewsFailed, stderrors.Join(causes...), "all %d views of %s failed", len(defs), stem)
	}
	return res, nil
}

// RenderLabeled renders the isometric view alone to outputPath. An empty
// outputPath writes <model dir>/<stem>.labeled.png. It returns the
// absolute path written.
func (r *Runner) RenderLabeled(ctx context.Context, q Request, outputPath string) (string, error) {
	q.Views = []string{view.NameIsometric}
	stem, defs, err := q.validate()
	if err != nil {
		return "", err
	}
	edges, err := r.sample(ctx, &q)
	if err != nil {
		return "", err
	}
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(q.ModelPath), stem+LabeledSuffix)
	}

	sc := render.Scene{Stem: stem, Edges: edges, Report: q.Report}
	hash, err := sceneHash(sc)
	if err != nil {
		hash = ""
	}
	start := time.Now()
	out := r.renderView(ctx, sc, hash, defs[0], outputPath, q.Refresh)
	if out.err != nil {
		r.Logger.Error("labeled render failed", "model", stem, "stage", out.stage, "err", out.err)
		return "", out.err
	}
	r.Logger.Info("rendered labeled view", "model", stem, "path", out.path, "duration", time.Since(start), "cached", out.cached)
	return out.path, nil
}
