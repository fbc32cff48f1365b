package powder

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRegistryLoads(t *testing.T) {
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	if reg.Len() < 10 {
		t.Fatalf("expected a full material table, got %d entries", reg.Len())
	}
	fire, ok := reg.Get(reg.Fire())
	if !ok || fire.Name != "fire" || fire.State != StateGas {
		t.Fatalf("unexpected fire material %+v", fire)
	}
	water, _ := reg.Get(reg.MustLookup("Water"))
	if water.Transitions.LowTemperature.To != reg.MustLookup("ice") {
		t.Fatal("water should freeze into ice")
	}
	if water.Transitions.LowPressure.To != NoTransition {
		t.Fatal("unset bounds should carry NoTransition")
	}
	mats := reg.Materials()
	for i := 1; i < len(mats); i++ {
		if mats[i-1].ID >= mats[i].ID {
			t.Fatal("Materials should be ordered by id")
		}
	}
	for _, m := range mats {
		if m.Mass <= 0 || m.SpecificHeat <= 0 || len(m.Colors) == 0 {
			t.Fatalf("material %s failed validation invariants", m.Name)
		}
	}
}

func TestLoadRegistryRejectsInvalidTables(t *testing.T) {
	cases := map[string]string{
		"unknown target": `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"]}
  - id: 2
    name: water
    state: liquid
    colors: ["#0000ff"]
    transitions:
      low_temperature: {at: 273, to: unobtainium}
`,
		"duplicate name": `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"]}
  - {id: 2, name: Fire, state: gas, colors: ["#ff0000"]}
`,
		"duplicate id": `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"]}
  - {id: 1, name: sand, state: powder, colors: ["#ff0000"]}
`,
		"zero mass": `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"], mass: 0}
`,
		"zero specific heat": `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"], specific_heat: 0}
`,
		"missing fire": `
materials:
  - {id: 1, name: sand, state: powder, colors: ["#ff0000"]}
`,
		"unknown prop": `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"], props: [sparkly]}
`,
		"bad state": `
materials:
  - {id: 1, name: fire, state: plasma, colors: ["#ff0000"]}
`,
		"bad color": `
materials:
  - {id: 1, name: fire, state: gas, colors: ["red"]}
`,
		"reserved id": `
materials:
  - {id: 0, name: fire, state: gas, colors: ["#ff0000"]}
`,
		"empty": `materials: []`,
	}
	for name, table := range cases {
		if _, err := LoadRegistry([]byte(table)); !errors.Is(err, ErrInvalidMaterial) {
			t.Errorf("%s: expected ErrInvalidMaterial, got %v", name, err)
		}
	}
	if _, err := LoadRegistry([]byte("materials: [")); err == nil || errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("malformed YAML should fail with a parse error, got %v", err)
	}
}

func TestLoadRegistryFileTargetKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	table := `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"]}
  - id: 2
    name: snow
    state: powder
    colors: ["#ffffff", "#eeeeeeff"]
    transitions:
      high_temperature: {at: 280, to: destroy}
      low_temperature: {at: 250, to: none}
`
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := LoadRegistryFile(path)
	if err != nil {
		t.Fatalf("LoadRegistryFile: %v", err)
	}
	snow, _ := reg.Get(reg.MustLookup("snow"))
	if snow.Transitions.HighTemperature.To != None {
		t.Fatal("\"destroy\" should resolve to the empty material")
	}
	if snow.Transitions.LowTemperature.To != NoTransition {
		t.Fatalf("\"none\" should leave the bound unset, got %d", snow.Transitions.LowTemperature.To)
	}
	if snow.Colors[1] != (color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}) {
		t.Fatalf("unexpected color %v", snow.Colors[1])
	}

	cfg := testConfig(4, 4)
	cfg.Materials = path
	w := newTestWorld(t, cfg)
	e := mustCreate(t, w, "snow", 1, 3)
	e.Temperature = 300
	w.Step()
	if !w.IsEmpty(e.X, e.Y) {
		t.Fatal("transition to destroy should destroy the element")
	}
	cold := mustCreate(t, w, "snow", 2, 3)
	cold.Temperature = 200
	w.Step()
	if w.Element(2, 3) != cold {
		t.Fatal("a bound targeting none should not transition")
	}

	if _, err := LoadRegistryFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read materials") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestHighTemperatureBound(t *testing.T) {
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	stone, _ := reg.Get(reg.MustLookup("stone"))
	if got := stone.HighTemperatureBound(); got != stone.Transitions.HighTemperature.At {
		t.Fatalf("stone bound %f, want its lava transition", got)
	}
	metal, _ := reg.Get(reg.MustLookup("metal"))
	if got := metal.HighTemperatureBound(); got != metal.MeltingTemperature {
		t.Fatalf("metal bound %f, want melting point", got)
	}
	wall, _ := reg.Get(reg.MustLookup("wall"))
	if got := wall.HighTemperatureBound(); got != 1100 {
		t.Fatalf("wall bound %f, want 1100", got)
	}
}
