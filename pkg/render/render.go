package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/featureview/pkg/canvas"
	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/fonts"
	"github.com/matzehuels/featureview/pkg/model"
	"github.com/matzehuels/featureview/pkg/raster"
	"github.com/matzehuels/featureview/pkg/render/legend"
	"github.com/matzehuels/featureview/pkg/render/marker"
	"github.com/matzehuels/featureview/pkg/view"
	"github.com/matzehuels/featureview/pkg/visibility"
)

// MarkerKey is the second title line explaining the glyphs.
const MarkerKey = "Markers: ● cylinder  ■ horiz-face  ◆ vert-face  ▲ cone  |  see panel → for IDs"

// AxisFraction is the share of each bounding box dimension drawn as an
// axis indicator on isometric views.
const AxisFraction = 0.3

var (
	background = raster.RGB(248, 249, 250)
	edgeColor  = raster.RGB(80, 100, 130)
	titleColor = raster.RGB(30, 30, 30)
	keyColor   = raster.RGB(100, 100, 100)
)

var axes = [3]struct {
	label string
	color color.RGBA
	unit  model.Point
}{
	{" X", raster.RGB(200, 60, 60), model.Point{X: 1}},
	{" Y", raster.RGB(60, 160, 60), model.Point{Y: 1}},
	{" Z", raster.RGB(60, 60, 200), model.Point{Z: 1}},
}

// Scene is the immutable input shared by every view of one model.
type Scene struct {
	// Stem names the model in titles.
	Stem   string
	Edges  []model.Edge
	Report *model.Report
}

// Frame is the outcome of one render.
type Frame struct {
	View string
	PNG  []byte

	// Stage is Done on success and Failed otherwise. FailedAt names the
	// stage that failed.
	Stage           Stage
	FailedAt        Stage
	VisibleEdges    int
	Segments        int
	VisibleFeatures int
	Badges          []marker.Rect
}

// Renderer draws views. It holds no per-view state and is safe for
// concurrent use when its font Provider is.
type Renderer struct {
	Config     Config
	Fonts      fonts.Provider
	NewSurface raster.Factory
}

// New returns a renderer. The zero Config means DefaultConfig; any other
// config is used as given, so a zero margin or legend width stays zero. A nil
// provider uses the bitmap font and a nil factory draws with fogleman/gg.
func New(cfg Config, fp fonts.Provider, factory raster.Factory) *Renderer {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if fp == nil {
		fp = fonts.Bitmap()
	}
	if factory == nil {
		factory = raster.NewGG
	}
	return &Renderer{Config: cfg, Fonts: fp, NewSurface: factory}
}

// Render draws def and returns the encoded PNG.
func (r *Renderer) Render(ctx context.Context, sc Scene, def view.Definition) ([]byte, error) {
	f, err := r.RenderFrame(ctx, sc, def)
	if err != nil {
		return nil, err
	}
	return f.PNG, nil
}

// RenderFrame draws def and reports what was drawn. On failure the
// returned frame records the failing stage.
func (r *Renderer) RenderFrame(ctx context.Context, sc Scene, def view.Definition) (fr *Frame, err error) {
	v := &viewRender{r: r, sc: sc, def: def, frame: &Frame{View: def.Name}}
	if v.sc.Report == nil {
		v.sc.Report = &model.Report{}
	}

	stage := Init
	defer func() {
		if p := recover(); p != nil {
			err = errors.New(errors.ErrCodeRenderBackend, "view %s: %s: panic: %v", def.Name, stage, p)
		}
		if err != nil {
			v.frame.Stage = Failed
			v.frame.FailedAt = stage
			fr = v.frame
		}
	}()

	steps := []struct {
		stage Stage
		run   func(context.Context) error
	}{
		{Init, v.init},
		{ComputeBounds, v.computeBounds},
		{Cull, v.cull},
		{MapCanvas, v.mapCanvas},
		{DrawEdges, v.drawEdges},
		{DrawAxisIndicators, v.drawAxes},
		{DrawMarkers, v.drawMarkers},
		{DrawLegend, v.drawLegend},
		{DrawTitle, v.drawTitle},
		{Save, v.save},
	}
	for _, s := range steps {
		stage = s.stage
		err := ctx.Err()
		if err == nil {
			err = s.run(ctx)
		}
		if err != nil {
			if errors.GetCode(err) == errors.ErrCodeRenderBackend {
				return v.frame, err
			}
			return v.frame, errors.Wrap(errors.ErrCodeRenderBackend, err, "view %s: %s", def.Name, stage)
		}
	}
	v.frame.Stage = Done
	return v.frame, nil
}

// viewRender is the mutable state of one view render.
type viewRender struct {
	r     *Renderer
	sc    Scene
	def   view.Definition
	frame *Frame

	surface raster.Surface
	faces   struct{ label, title, small, bold font.Face }

	filter   visibility.Filter
	edges    []model.Edge
	features []model.Feature
	mapper   canvas.Mapper
	placed   marker.Placements
}

func (v *viewRender) init(context.Context) error {
	cfg := v.r.Config
	v.surface = v.r.NewSurface(cfg.Width, cfg.Height)
	if v.surface == nil {
		return fmt.Errorf("surface factory returned nil")
	}
	v.surface.Clear(background)

	fp := v.r.Fonts
	v.faces.label = fp.Face(fonts.Regular, SizeLabel)
	v.faces.title = fp.Face(fonts.Regular, SizeTitle)
	v.faces.small = fp.Face(fonts.Regular, SizeSmall)
	v.faces.bold = fp.Face(fonts.Bold, SizeBold)
	return nil
}

func (v *viewRender) computeBounds(context.Context) error {
	v.filter = visibility.New(v.def, v.sc.Edges)
	return nil
}

func (v *viewRender) cull(context.Context) error {
	v.edges = v.filter.VisibleEdges(v.sc.Edges)
	v.features = v.filter.VisibleFeatures(v.sc.Report.Features())
	v.frame.VisibleEdges = len(v.edges)
	v.frame.VisibleFeatures = len(v.features)
	return nil
}

func (v *viewRender) mapCanvas(context.Context) error {
	var pts []canvas.Vec2
	for _, e := range v.edges {
		for _, p := range e.Points {
			sx, sy := view.Project(v.def, p)
			pts = append(pts, canvas.Vec2{X: sx, Y: sy})
		}
	}
	lo, hi := canvas.Bounds(pts)
	cfg := v.r.Config
	v.mapper = canvas.NewMapper(lo, hi, float64(cfg.GeometryWidth()), float64(cfg.Height), float64(cfg.Margin))
	return nil
}

func (v *viewRender) toPixel(p model.Point) canvas.Pixel {
	return v.mapper.ToPixel(view.Project(v.def, p))
}

func (v *viewRender) drawEdges(context.Context) error {
	for _, e := range v.edges {
		prev := v.toPixel(e.Points[0])
		for _, p := range e.Points[1:] {
			cur := v.toPixel(p)
			if a, b, ok := v.mapper.ClipLine(prev, cur); ok {
				v.surface.Line(a, b, edgeColor, 1)
				v.frame.Segments++
			}
			prev = cur
		}
	}
	return nil
}

func (v *viewRender) drawAxes(context.Context) error {
	if !v.def.IsIsometric() {
		return nil
	}
	box := v.sc.Report.Box()
	extent := [3]float64{box.XMM, box.YMM, box.ZMM}
	origin := v.toPixel(model.Point{})
	for i, a := range axes {
		end := v.toPixel(r3.Scale(extent[i]*AxisFraction, a.unit))
		from, to, ok := v.mapper.ClipLine(origin, end)
		if !ok {
			continue
		}
		v.surface.Line(from, to, a.color, 2)
		if to == end {
			v.surface.Text(a.label, end.X, end.Y, v.faces.small, a.color)
		}
	}
	return nil
}

func (v *viewRender) drawMarkers(context.Context) error {
	measure := func(s string) (float64, float64) { return raster.Measure(v.faces.bold, s) }
	// Features mapped far off the raster get neither glyph nor badge.
	inReach := make([]model.Feature, 0, len(v.features))
	for _, f := range v.features {
		if v.mapper.InReach(v.toPixel(f.Location), marker.Radius(f)) {
			inReach = append(inReach, f)
		}
	}
	markers := marker.Layout(inReach, v.toPixel, measure, &v.placed)
	marker.Draw(v.surface, markers, v.faces.bold)
	v.frame.Badges = v.placed.Rects()
	return nil
}

func (v *viewRender) drawLegend(context.Context) error {
	cfg := v.r.Config
	if cfg.LegendWidth == 0 {
		return nil
	}
	panel := legend.Panel{
		X:      float64(cfg.GeometryWidth()),
		Width:  float64(cfg.LegendWidth),
		Height: float64(cfg.Height),
	}
	l := legend.Build(v.sc.Report, legend.CharBudget(panel.Width))
	legend.Draw(v.surface, l, panel, legend.Fonts{Title: v.faces.label, Header: v.faces.bold, Row: v.faces.small})
	return nil
}

func (v *viewRender) drawTitle(context.Context) error {
	v.surface.Text(Title(v.sc.Stem, v.def, v.sc.Report.BoundingBox), 10, 8, v.faces.title, titleColor)
	v.surface.Text(MarkerKey, 10, 28, v.faces.small, keyColor)
	return nil
}

func (v *viewRender) save(context.Context) error {
	var buf bytes.Buffer
	if err := v.surface.EncodePNG(&buf); err != nil {
		return err
	}
	v.frame.PNG = buf.Bytes()
	return nil
}

// Title returns the first title line, e.g.
// "bracket  —  Top (+Z → down)  —  40mm × 20mm × 10mm".
// A missing bounding box prints "?" for each dimension.
func Title(stem string, def view.Definition, box *model.BoundingBox) string {
	dims := "?mm × ?mm × ?mm"
	if box != nil {
		dims = fmt.Sprintf("%smm × %smm × %smm", num(box.XMM), num(box.YMM), num(box.ZMM))
	}
	label := def.Label
	if label == "" {
		label = def.Name
	}
	return fmt.Sprintf("%s  —  %s  —  %s", stem, label, dims)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
