// Package render draws one labeled view of a model to PNG.
//
// # Overview
//
// A [Renderer] turns a [Scene] (sampled edges plus the feature report) and a
// [view.Definition] into PNG bytes. Each call owns its own surface, badge
// placements and fonts, so one Renderer may serve many views concurrently.
//
// # Stages
//
// A render walks a fixed sequence of [Stage] values:
//
//	Init → ComputeBounds → Cull → MapCanvas → DrawEdges → DrawAxisIndicators
//	     → DrawMarkers → DrawLegend → DrawTitle → Save → Done
//
// DrawAxisIndicators only paints on isometric views. Any error or panic
// moves the render to [Failed]; the returned error carries code
// RENDER_BACKEND and names the view and stage.
//
// # Canvas
//
// The canvas is split in two: geometry on the left, the feature legend on
// the right. Geometry coordinates are mapped independently per axis, so a
// long thin part fills the drawable area in every view.
//
// Subpackages:
//   - [marker]: glyphs and overlap-free ID badges
//   - [legend]: the grouped feature reference panel
//
// [marker]: github.com/matzehuels/featureview/pkg/render/marker
// [legend]: github.com/matzehuels/featureview/pkg/render/legend
package render
