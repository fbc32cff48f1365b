package ui

import (
	"math"

	"powder/internal/core"
	"powder/internal/field"
)

// Reference magnitudes that map to full overlay intensity.
const (
	pressureRef    = 50.0
	temperatureRef = 600.0
)

func resizeMask(dst []float32, n int) []float32 {
	if cap(dst) < n {
		return make([]float32, n)
	}
	return dst[:n]
}

// pressureMasks splits the air pressure over a w*h grid into an
// overpressure and an underpressure intensity in [0, 1].
func pressureMasks(high, low []float32, air *field.Air, w, h int) ([]float32, []float32) {
	high = resizeMask(high, w*h)
	low = resizeMask(low, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			p := air.Pressure(x, y) / pressureRef
			high[idx], low[idx] = 0, 0
			switch {
			case p > 0:
				high[idx] = float32(clamp01(p))
			case p < 0:
				low[idx] = float32(clamp01(-p))
			}
		}
	}
	return high, low
}

// temperatureMasks does the same for air temperature relative to ambient.
func temperatureMasks(hot, cold []float32, air *field.Air, w, h int) ([]float32, []float32) {
	hot = resizeMask(hot, w*h)
	cold = resizeMask(cold, w*h)
	ambient := air.Config().AmbientTemperature
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			d := (air.Temperature(x, y) - ambient) / temperatureRef
			hot[idx], cold[idx] = 0, 0
			switch {
			case d > 0:
				hot[idx] = float32(clamp01(d))
			case d < 0:
				cold[idx] = float32(clamp01(-d * 3))
			}
		}
	}
	return hot, cold
}

// attraction returns the mass attraction at (x, y) for unit mass, without the
// constant base gravity.
func attraction(g *field.Gravity, x, y int) core.Vec2 {
	return g.Force(x, y, 1).Sub(g.Config().Base)
}

// sampleGrid picks evenly spaced cells across a w*h grid, aiming for about
// target samples with spacing clamped to [minSpacing, maxSpacing].
func sampleGrid(w, h int, target float64, minSpacing, maxSpacing int) (points [][2]int, spacing int) {
	if w <= 0 || h <= 0 {
		return nil, 0
	}
	spacing = int(math.Sqrt(float64(w*h) / target))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}
	countX := (w + spacing - 1) / spacing
	countY := (h + spacing - 1) / spacing
	startX := max((w-1-(countX-1)*spacing)/2, 0)
	startY := max((h-1-(countY-1)*spacing)/2, 0)
	for yi := 0; yi < countY; yi++ {
		cy := min(startY+yi*spacing, h-1)
		for xi := 0; xi < countX; xi++ {
			cx := min(startX+xi*spacing, w-1)
			points = append(points, [2]int{cx, cy})
		}
	}
	return points, spacing
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
