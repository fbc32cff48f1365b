package powder

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Scene = SceneEmpty
	return cfg
}

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	world.SetLogger(log.New(io.Discard))
	return world
}

func mustCreate(t *testing.T, w *World, name string, x, y int) *Element {
	t.Helper()
	id, ok := w.Registry().Lookup(name)
	if !ok {
		t.Fatalf("unknown material %q", name)
	}
	e, err := w.CreateElement(id, x, y)
	if err != nil {
		t.Fatalf("CreateElement(%s, %d, %d): %v", name, x, y, err)
	}
	return e
}

func countMaterial(w *World, id MaterialID) int {
	n := 0
	for _, e := range w.grid.Cells() {
		if e != nil && e.ID == id {
			n++
		}
	}
	return n
}

func checkOccupancy(t *testing.T, w *World) {
	t.Helper()
	seen := make(map[*Element]bool)
	for idx, e := range w.grid.Cells() {
		if e == nil {
			continue
		}
		x, y := w.grid.Coords(idx)
		if e.X != x || e.Y != y {
			t.Fatalf("element %s at cell (%d,%d) reports (%d,%d)", e.Name(), x, y, e.X, e.Y)
		}
		if seen[e] {
			t.Fatalf("element %s occupies more than one cell", e.Name())
		}
		seen[e] = true
	}
}
