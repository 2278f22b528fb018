package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featureview/pkg/config"
	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/pipeline"
	"github.com/matzehuels/featureview/pkg/view"
)

// renderOpts holds the command-line flags shared by render and label.
type renderOpts struct {
	features string   // feature report JSON
	edges    string   // edge sidecar; defaults to <model>.edges.json
	output   string   // output directory (render) or file (label)
	workers  int      // parallel views, overrides render.workers
	views    []string // view subset; empty means all
	noCache  bool     // bypass the artifact cache
	refresh  bool     // re-render even when cached
}

// renderCommand creates the render command for the seven standard views.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render the seven labeled preview views of a model",
		Long: `Render projects the model's sampled edges into the standard views
(isometric, top, bottom, front, back, left, right) and writes one PNG per
view to <output>/<model stem>/<view>.png.

Edges are read from the sidecar next to the model (bracket.edges.json for
bracket.step) unless --edges names another file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg, true); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, args[0], &opts)
		},
	}

	c.addInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config, "+config.DefaultOutputDir+")")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "views rendered in parallel (default from config)")
	cmd.Flags().StringSliceVar(&opts.views, "views", nil, "render only these views (comma-separated)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render views even when cached")

	return cmd
}

// labelCommand creates the label command for a single annotated isometric image.
func (c *CLI) labelCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "label [model]",
		Short: "Render one labeled isometric image next to the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg, false); err != nil {
				return err
			}
			return c.runLabel(cmd.Context(), cfg, args[0], &opts)
		},
	}

	c.addInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <model dir>/<stem>"+pipeline.LabeledSuffix+")")

	return cmd
}

func (c *CLI) addInputFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.features, "features", "f", "", "feature report JSON (required)")
	cmd.Flags().StringVar(&opts.edges, "edges", "", "sampled edge JSON (default <model>.edges.json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.MarkFlagRequired("features")
}

// apply folds flag overrides into cfg and revalidates it. The output flag is
// a directory only for render.
func (o *renderOpts) apply(cmd *cobra.Command, cfg *config.Config, outputIsDir bool) error {
	if cmd.Flags().Changed("workers") {
		cfg.Render.Workers = o.workers
	}
	if outputIsDir && o.output != "" {
		cfg.Output.Dir = o.output
	}
	return cfg.Validate()
}

// request builds the pipeline request for modelPath.
func (o *renderOpts) request(modelPath, outputDir string) (pipeline.Request, error) {
	report, err := model.ImportReport(o.features)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return pipeline.Request{}, errors.Wrap(errors.ErrCodeNotFound, err, "feature report %s", o.features)
	}
	if err != nil {
		return pipeline.Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "feature report %s", o.features)
	}
	return pipeline.Request{
		ModelPath: modelPath,
		Report:    report,
		OutputDir: outputDir,
		Sampler:   model.FileSampler{Path: o.edges},
		Views:     o.views,
		Refresh:   o.refresh,
	}, nil
}

func (c *CLI) runRender(ctx context.Context, cfg config.Config, modelPath string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	q, err := opts.request(modelPath, cfg.Output.Dir)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", model.Stem(modelPath)))
	spinner.Start()

	res, err := runner.RenderMultiview(ctx, q)
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && res == nil {
		printError("Render failed")
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d of %d views", res.Stats.Succeeded, res.Stats.Views))

	printViewPaths(res)
	printStats(res.Stats)
	printFailures(res)
	if err != nil {
		printError("No view could be rendered")
		return err
	}
	if res.Stats.Failed == 0 {
		printSuccess("Wrote %d views for %s", res.Stats.Succeeded, StyleHighlight.Render(res.Stem))
		printNextStep("Single labeled image", appName+" label "+modelPath+" --features "+opts.features)
	} else {
		printWarning("Wrote %d views, %d failed", res.Stats.Succeeded, res.Stats.Failed)
	}
	return nil
}

func (c *CLI) runLabel(ctx context.Context, cfg config.Config, modelPath string, opts *renderOpts) error {
	q, err := opts.request(modelPath, cfg.Output.Dir)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Labeling %s...", model.Stem(modelPath)))
	spinner.Start()

	path, err := runner.RenderLabeled(ctx, q, opts.output)
	if err != nil {
		spinner.StopWithError("Label failed")
		return err
	}
	spinner.StopWithSuccess("Labeled image")
	printFile(path)
	return nil
}

// printViewPaths lists written images in view-table order.
func printViewPaths(res *pipeline.Result) {
	for _, name := range view.Names() {
		if path, ok := res.Paths[name]; ok {
			printFile(path)
		}
	}
}

// printFailures lists failed views with their reasons.
func printFailures(res *pipeline.Result) {
	for _, name := range view.Names() {
		if err, ok := res.Failures[name]; ok {
			printError("%v", err)
		}
	}
}
