package powder

import (
	"image/color"
	"testing"

	"powder/internal/core"
)

func TestGlowColor(t *testing.T) {
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	metal, _ := reg.Get(reg.MustLookup("metal"))
	base := metal.Colors[0]

	if got := GlowColor(base, 293, metal); got != base {
		t.Fatalf("cold metal should keep its color, got %v", got)
	}
	hot := GlowColor(base, metal.MeltingTemperature-100, metal)
	if hot.R <= base.R && hot.R != 255 {
		t.Fatalf("hot metal should be redder: %v -> %v", base, hot)
	}
	if hot.A != base.A {
		t.Fatal("glow must keep alpha")
	}
	if a, b := GlowColor(base, metal.MeltingTemperature+10, metal), GlowColor(base, MaxTemperature, metal); a != b {
		t.Fatal("glow saturates above the bound")
	}
}

func TestQuad(t *testing.T) {
	q := Quad(2, 3, 4, 5)
	want := [4]core.Vec2{{X: 8, Y: 15}, {X: 12, Y: 15}, {X: 12, Y: 20}, {X: 8, Y: 20}}
	if q != want {
		t.Fatalf("Quad = %v, want %v", q, want)
	}
}

func TestColorsAndCellsBuffers(t *testing.T) {
	w := newTestWorld(t, testConfig(4, 4))
	sand := mustCreate(t, w, "sand", 1, 3)
	w.Step()
	idx := w.grid.Index(sand.X, sand.Y)
	if w.Cells()[idx] != uint8(sand.ID) {
		t.Fatalf("cells buffer holds %d, want %d", w.Cells()[idx], sand.ID)
	}
	if w.Colors()[idx] != sand.Color {
		t.Fatalf("colors buffer holds %v, want %v", w.Colors()[idx], sand.Color)
	}
	if w.Colors()[0] != (color.RGBA{A: 0xff}) || w.Cells()[0] != 0 {
		t.Fatal("empty cells should render as background")
	}
	found := false
	for _, c := range sand.Material().Colors {
		if c == sand.Color {
			found = true
		}
	}
	if !found {
		t.Fatal("instance color should come from the template palette")
	}
}

func TestPaletteIndexesByMaterial(t *testing.T) {
	w := newTestWorld(t, testConfig(4, 4))
	palette := w.Palette()
	if len(palette) != 256 {
		t.Fatalf("palette has %d entries", len(palette))
	}
	sand := w.Registry().MustLookup("sand")
	m, _ := w.Registry().Get(sand)
	if palette[sand] != m.Colors[0] {
		t.Fatalf("palette[sand] = %v, want %v", palette[sand], m.Colors[0])
	}
	mustCreate(t, w, "sand", 1, 1)
	w.rebuildDisplay()
	if got := palette[w.Cells()[1*4+1]]; got != m.Colors[0] {
		t.Fatalf("material view color = %v", got)
	}
}
