package render

// Stage is one step of a view render.
type Stage int

const (
	Init Stage = iota
	ComputeBounds
	Cull
	MapCanvas
	DrawEdges
	DrawAxisIndicators
	DrawMarkers
	DrawLegend
	DrawTitle
	Save
	Done
	Failed
)

var stageNames = [...]string{
	Init:               "init",
	ComputeBounds:      "compute_bounds",
	Cull:               "cull",
	MapCanvas:          "map_canvas",
	DrawEdges:          "draw_edges",
	DrawAxisIndicators: "draw_axis_indicators",
	DrawMarkers:        "draw_markers",
	DrawLegend:         "draw_legend",
	DrawTitle:          "draw_title",
	Save:               "save",
	Done:               "done",
	Failed:             "failed",
}

// String returns the snake_case stage name.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
