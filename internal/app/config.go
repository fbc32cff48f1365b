package app

import (
	"github.com/spf13/pflag"

	"powder/internal/core"
)

// Config holds the window settings of the GUI.
type Config struct {
	Scale    int
	TPS      int
	HUDWidth int
	Brush    int
	Strength float64
}

// NewConfig returns the default window settings.
func NewConfig() Config {
	return Config{
		Scale:    4,
		TPS:      60,
		HUDWidth: 240,
		Brush:    2,
		Strength: 0.05,
	}
}

// Bind registers the settings as flags on fs.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels, 0 hides it")
	fs.IntVar(&c.Brush, "brush", c.Brush, "initial brush radius")
	fs.Float64Var(&c.Strength, "strength", c.Strength, "heat and cool tool strength")
}

// cellAt maps a screen position to a grid cell, reporting false outside the
// grid area.
func cellAt(mx, my, scale int, size core.Size) (int, int, bool) {
	if scale <= 0 {
		scale = 1
	}
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	x, y := mx/scale, my/scale
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}
