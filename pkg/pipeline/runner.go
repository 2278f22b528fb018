package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featureview/pkg/cache"
	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/observability"
	"github.com/matzehuels/featureview/pkg/render"
	"github.com/matzehuels/featureview/pkg/view"
)

// Runner renders views for models with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different requests.
type Runner struct {
	Renderer *render.Renderer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger

	// Workers bounds how many views render at once. Values below 1 mean 1.
	Workers int
	// TTL is the lifetime of cached views.
	TTL time.Duration
	// Font is folded into cache keys so a font change invalidates images.
	Font string
}

// NewRunner creates a runner. A nil renderer uses render defaults, a nil
// cache disables caching, a nil keyer uses cache.DefaultKeyer and a nil
// logger discards output.
//
// NewRunner panics if the built-in view table is malformed.
func NewRunner(rd *render.Renderer, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	view.MustValidateAll()
	if rd == nil {
		rd = render.New(render.Config{}, nil, nil)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Renderer: rd,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Workers:  1,
		TTL:      cache.TTLArtifact,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// sample runs the sampler once and validates its output. Edges with fewer
// than 2 points cannot be drawn and are dropped.
func (r *Runner) sample(ctx context.Context, q *Request) ([]model.Edge, error) {
	sampled, err := q.sampler().SampleEdges(ctx, q.ModelPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "sample edges of %s", q.ModelPath)
	}
	edges := make([]model.Edge, 0, len(sampled))
	for i, e := range sampled {
		if len(e.Points) < 2 {
			continue
		}
		if err := e.Validate(); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: %s", i, errors.UserMessage(err))
		}
		edges = append(edges, e)
	}
	if dropped := len(sampled) - len(edges); dropped > 0 {
		r.Logger.Debug("dropped short edges", "model", q.ModelPath, "dropped", dropped, "kept", len(edges))
	}
	return edges, nil
}

// sceneHash identifies the pixels-relevant content of a scene. Validated
// input always encodes, so a failure is INTERNAL_ERROR.
func sceneHash(sc render.Scene) (string, error) {
	h, err := cache.HashJSON(struct {
		Stem   string
		Edges  []model.Edge
		Report *model.Report
	}{sc.Stem, sc.Edges, sc.Report})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash scene %s", sc.Stem)
	}
	return h, nil
}

func (r *Runner) viewKey(hash string, def view.Definition) string {
	cfg := r.Renderer.Config
	return r.Keyer.ViewKey(hash, cache.ViewKeyOpts{
		View:        def.Name,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Margin:      cfg.Margin,
		LegendWidth: cfg.LegendWidth,
		Font:        r.Font,
	})
}

// viewOutcome is the result of rendering and writing one view.
type viewOutcome struct {
	path   string
	cached bool
	stage  string
	err    error
}

// renderView renders def to path, consulting the cache first.
func (r *Runner) renderView(ctx context.Context, sc render.Scene, hash string, def view.Definition, path string, refresh bool) (out viewOutcome) {
	if err := ctx.Err(); err != nil {
		return viewOutcome{stage: render.Init.String(), err: err}
	}

	key := ""
	if hash != "" {
		key = r.viewKey(hash, def)
	}
	hooks := observability.Cache()

	var data []byte
	if key != "" && !refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache read failed", "view", def.Name, "err", err)
		} else if hit {
			hooks.OnCacheHit(ctx, "view")
			data, out.cached = cached, true
		} else {
			hooks.OnCacheMiss(ctx, "view")
		}
	}

	if data == nil {
		fr, err := r.Renderer.RenderFrame(ctx, sc, def)
		if err != nil {
			return viewOutcome{stage: fr.FailedAt.String(), err: err}
		}
		data = fr.PNG
		r.Logger.Debug("drew view",
			"view", def.Name,
			"edges", fr.VisibleEdges,
			"segments", fr.Segments,
			"features", fr.VisibleFeatures,
			"badges", len(fr.Badges))

		if key != "" {
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				r.Logger.Warn("cache write failed", "view", def.Name, "err", err)
			} else {
				hooks.OnCacheSet(ctx, "view", len(data))
			}
		}
	}

	if err := writeFile(path, data); err != nil {
		return viewOutcome{cached: out.cached, stage: "write", err: errors.Wrap(errors.ErrCodeRenderBackend, err, "view %s: write", def.Name)}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	out.path = abs
	return out
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
