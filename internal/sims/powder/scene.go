package powder

// Scene names accepted by Config.Scene.
const (
	SceneEmpty   = "empty"
	SceneSandbox = "sandbox"
)

// Scenes lists the built-in layouts.
func Scenes() []string { return []string{SceneEmpty, SceneSandbox} }

func (w *World) seedScene(name string) {
	switch name {
	case SceneSandbox:
		w.seedSandbox()
	case SceneEmpty, "":
	default:
		w.logger.Warn("unknown scene, starting empty", "scene", name)
	}
}

// seedSandbox lays out a small demo: a stone floor, a glass basin of water,
// a wooden shelf with a flame, drifting sand, an ice block and a metal bar.
func (w *World) seedSandbox() {
	W, H := w.grid.W, w.grid.H
	id := func(name string) MaterialID {
		v, ok := w.reg.Lookup(name)
		if !ok {
			w.logger.Warn("sandbox material missing", "material", name)
			return None
		}
		return v
	}

	w.fillRect(id("stone"), 0, H-3, W, 3, 1)

	// basin
	bx0, bx1 := W*5/8, W*7/8
	by0 := H * 3 / 5
	w.fillRect(id("glass"), bx0, by0, 1, H-3-by0, 1)
	w.fillRect(id("glass"), bx1, by0, 1, H-3-by0, 1)
	w.fillRect(id("glass"), bx0, H-4, bx1-bx0+1, 1, 1)
	w.fillRect(id("water"), bx0+1, by0+2, bx1-bx0-1, H-6-by0, 1)

	// shelf with a flame on top
	sy := H * 2 / 3
	w.fillRect(id("wood"), W/8, sy, W/4, 2, 1)
	w.fillRect(id("fire"), W/4, sy-1, 2, 1, 1)

	w.fillRect(id("sand"), W/8, H/8, W/4, H/6, 0.5)
	w.fillRect(id("ice"), W*3/4, H/8, W/10+1, H/10+1, 1)
	w.fillRect(id("metal"), W*2/5, H-4, W/8+1, 1, 1)
}

// fillRect spawns material id over a rectangle clipped to the grid, filling
// each cell with the given probability.
func (w *World) fillRect(id MaterialID, x0, y0, rw, rh int, density float64) {
	if id == None {
		return
	}
	for y := y0; y < y0+rh; y++ {
		for x := x0; x < x0+rw; x++ {
			if !w.IsEmpty(x, y) {
				continue
			}
			if density < 1 && w.rng.Float64() >= density {
				continue
			}
			if _, err := w.CreateElement(id, x, y); err != nil {
				w.logger.Debug("scene spawn rejected", "x", x, "y", y, "err", err)
			}
		}
	}
}
