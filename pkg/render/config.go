package render

import (
	"github.com/matzehuels/featureview/pkg/errors"
)

// Canvas defaults in pixels.
const (
	DefaultWidth       = 1200
	DefaultHeight      = 900
	DefaultMargin      = 80
	DefaultLegendWidth = 270
)

// Font sizes in points.
const (
	SizeLabel = 13
	SizeTitle = 15
	SizeSmall = 11
	SizeBold  = 12
)

// Config is the canvas geometry shared by every view.
type Config struct {
	Width       int `json:"width" toml:"width"`
	Height      int `json:"height" toml:"height"`
	Margin      int `json:"margin" toml:"margin"`
	LegendWidth int `json:"legend_width" toml:"legend_width"`
}

// DefaultConfig returns the standard 1200x900 canvas with a 270px legend.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Margin:      DefaultMargin,
		LegendWidth: DefaultLegendWidth,
	}
}

// GeometryWidth is the width left of the legend panel.
func (c Config) GeometryWidth() int {
	return c.Width - c.LegendWidth
}

// Validate rejects sizes that leave no drawable geometry area.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size %dx%d must be positive", c.Width, c.Height)
	case c.Margin < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "margin %d must not be negative", c.Margin)
	case c.LegendWidth < 0 || c.LegendWidth >= c.Width:
		return errors.New(errors.ErrCodeInvalidConfig, "legend width %d must be in [0, %d)", c.LegendWidth, c.Width)
	case 2*c.Margin >= c.GeometryWidth() || 2*c.Margin >= c.Height:
		return errors.New(errors.ErrCodeInvalidConfig, "margin %d leaves no drawable area in %dx%d", c.Margin, c.GeometryWidth(), c.Height)
	}
	return nil
}
