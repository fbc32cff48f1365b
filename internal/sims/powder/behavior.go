package powder

import (
	"image/color"

	"powder/internal/core"
)

const (
	fireLifeMin = 100
	fireLifeMax = 140
)

var fireEmber = color.RGBA{R: 0x50, G: 0x0a, A: 0xff}

func init() {
	RegisterBehavior("fire", Behavior{
		OnSpawn: func(e *Element, rng *core.RNG) {
			if rng != nil {
				e.Life = float64(rng.Between(fireLifeMin, fireLifeMax))
			}
		},
		OnUpdate: func(_ *World, e *Element) {
			t := e.Life / fireLifeMax
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			e.Color = lerpColor(fireEmber, e.material.Colors[0], t)
		},
	})
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
