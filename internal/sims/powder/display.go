package powder

import (
	"image/color"
	"math"

	"powder/internal/core"
)

// GlowColor tints base toward red as temperature approaches the template's
// high temperature bound. Below the bound minus 800 K the color is unchanged.
func GlowColor(base color.RGBA, temperature float64, m *Material) color.RGBA {
	high := 1100.0
	if m != nil {
		high = m.HighTemperatureBound()
	}
	if temperature <= high-800 {
		return base
	}
	grad := math.Pi / (high + 800)
	c := temperature - (high - 800)
	if temperature > high {
		c = 800
	}
	r := float64(base.R) + math.Sin(grad*c)*226
	g := float64(base.G) + math.Sin(grad*c*4.55+3.14)*34
	b := float64(base.B) + math.Sin(grad*c*2.22+3.14)*64
	return color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: base.A}
}

// Quad returns the four screen-space corners of cell (x, y), clockwise from
// the top-left.
func Quad(x, y int, cellW, cellH float64) [4]core.Vec2 {
	fx, fy := float64(x), float64(y)
	return [4]core.Vec2{
		{X: fx * cellW, Y: fy * cellH},
		{X: (fx + 1) * cellW, Y: fy * cellH},
		{X: (fx + 1) * cellW, Y: (fy + 1) * cellH},
		{X: fx * cellW, Y: (fy + 1) * cellH},
	}
}

func (w *World) elementColor(e *Element) color.RGBA {
	if e.Props.Has(RedGlow) {
		return GlowColor(e.Color, e.Temperature, e.material)
	}
	return e.Color
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Palette maps each material id to its first template color, with index 0 the
// empty-cell background. Indexing it with Cells() gives a flat material view.
func (w *World) Palette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	palette[0] = w.background
	for _, m := range w.reg.Materials() {
		if len(m.Colors) > 0 {
			palette[m.ID] = m.Colors[0]
		}
	}
	return palette
}
