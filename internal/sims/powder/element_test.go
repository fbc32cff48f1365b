package powder

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

const probeTable = `
materials:
  - {id: 1, name: fire, state: gas, colors: ["#ff0000"]}
  - {id: 3, name: a, state: solid, colors: ["#000001"]}
  - {id: 4, name: b, state: solid, colors: ["#000002"]}
  - {id: 5, name: c, state: solid, colors: ["#000003"]}
  - {id: 6, name: d, state: solid, colors: ["#000004"]}
  - id: 2
    name: probe
    state: solid
    colors: ["#ffffff"]
    transitions:
      low_pressure: {at: -300, to: a}
      high_pressure: {at: 300, to: b}
      low_temperature: {at: 600, to: c}
      high_temperature: {at: 400, to: d}
`

func TestTransitionPriority(t *testing.T) {
	reg, err := LoadRegistry([]byte(probeTable))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	m, _ := reg.Get(reg.MustLookup("probe"))
	e := newElement(m, 0, 0, nil)
	e.Temperature = 500

	cases := []struct {
		pressure float64
		want     string
	}{
		{-400, "a"},
		{400, "b"},
		{0, "c"},
	}
	for _, tc := range cases {
		if got := e.TransitionTarget(tc.pressure); got != reg.MustLookup(tc.want) {
			t.Errorf("pressure %v: target %d, want %s", tc.pressure, got, tc.want)
		}
	}

	e.Temperature = 700
	if got := e.TransitionTarget(0); got != reg.MustLookup("d") {
		t.Errorf("hot probe: target %d, want d", got)
	}
	e.Temperature = 500
	e.Transitions.LowTemperature.At = 100
	e.Transitions.HighTemperature.At = 1000
	if got := e.TransitionTarget(0); got != e.ID {
		t.Errorf("no bound crossed: target %d, want own id", got)
	}
}

func TestTransitionPriorityInWorld(t *testing.T) {
	reg, err := LoadRegistry([]byte(probeTable))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	w := NewWithRegistry(testConfig(8, 8), reg)
	w.SetLogger(log.New(io.Discard))
	probe, err := w.CreateElement(reg.MustLookup("probe"), 3, 3)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	probe.Temperature = 500
	w.Air().AddPressure(3, 3, -400)

	w.Step()
	got := w.Element(3, 3)
	if got == nil || got.ID != reg.MustLookup("a") {
		t.Fatalf("expected low pressure target, got %+v", got)
	}
	if got.Temperature != 500 {
		t.Fatalf("transition should keep temperature, got %f", got.Temperature)
	}
	if w.Stats().Transitions != 1 {
		t.Fatalf("expected 1 transition, got %d", w.Stats().Transitions)
	}
}

func TestWaterBelowFreezingBecomesIce(t *testing.T) {
	w := newTestWorld(t, testConfig(3, 3))
	water := mustCreate(t, w, "water", 1, 2)
	water.Temperature = 270
	ice := w.Registry().MustLookup("ice")
	if got := water.TransitionTarget(0); got != ice {
		t.Fatalf("target %d, want ice %d", got, ice)
	}

	w.Step()
	if countMaterial(w, ice) != 1 {
		t.Fatal("expected the water to freeze during the update")
	}
	if countMaterial(w, water.ID) != 0 {
		t.Fatal("water should be gone")
	}
}

func TestAddHeatScalesAndClamps(t *testing.T) {
	e := &Element{Mass: 2, SpecificHeat: 0.5, Temperature: 300}
	e.AddHeat(1000)
	if e.Temperature != 301 {
		t.Fatalf("temperature %f, want 301", e.Temperature)
	}
	e.AddHeat(-1e12)
	if e.Temperature != 0 {
		t.Fatalf("temperature %f, want clamp at 0", e.Temperature)
	}
	e.AddHeat(1e12)
	if e.Temperature != MaxTemperature {
		t.Fatalf("temperature %f, want clamp at %f", e.Temperature, MaxTemperature)
	}
	zero := &Element{Mass: 0, SpecificHeat: 1, Temperature: 300}
	zero.AddHeat(1000)
	if zero.Temperature != 300 {
		t.Fatal("massless element should ignore heat")
	}
}

func TestMeltAndSolidify(t *testing.T) {
	w := newTestWorld(t, testConfig(3, 3))
	metal := mustCreate(t, w, "metal", 1, 1)

	metal.Temperature = metal.MeltingTemperature + 10
	metal.meltOrSolidify()
	if metal.State != StateLiquid || !metal.Props.Has(Melted) {
		t.Fatalf("hot metal should melt, got %v %v", metal.State, metal.Props)
	}
	metal.Temperature = metal.MeltingTemperature - 10
	metal.meltOrSolidify()
	if metal.State != StateSolid || metal.Props.Has(Melted) {
		t.Fatalf("cool metal should solidify, got %v %v", metal.State, metal.Props)
	}

	wall := mustCreate(t, w, "wall", 0, 0)
	wall.Temperature = MaxTemperature
	wall.meltOrSolidify()
	if wall.State != StateSolid {
		t.Fatal("non-meltable material must not melt")
	}
}

func TestBreakableShattersUnderPressure(t *testing.T) {
	cfg := testConfig(4, 4)
	cfg.Params.Air.AmbientHeat = false
	w := newTestWorld(t, cfg)
	glass := mustCreate(t, w, "glass", 1, 3)
	w.Air().AddPressure(1, 3, -(glass.BreakPressure + 1))

	w.Step()
	if glass.State != StatePowder {
		t.Fatalf("glass under pressure should turn to powder, got %v", glass.State)
	}
}

func TestFireLifeIsRandomized(t *testing.T) {
	w := newTestWorld(t, testConfig(20, 20))
	fire := w.Registry().Fire()
	seen := map[float64]bool{}
	for i := 0; i < 40; i++ {
		e, err := w.CreateElementAt(fire, i)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if e.Life < fireLifeMin || e.Life > fireLifeMax {
			t.Fatalf("fire life %f outside [%d, %d]", e.Life, fireLifeMin, fireLifeMax)
		}
		seen[e.Life] = true
	}
	if len(seen) < 2 {
		t.Fatal("fire life should vary between instances")
	}
}

func TestFireBurnsOut(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.Params.Air.AmbientHeat = false
	w := newTestWorld(t, cfg)
	e := mustCreate(t, w, "fire", 2, 2)
	e.Life = 0
	w.Step()
	w.Step()
	if countMaterial(w, w.Registry().Fire()) != 0 {
		t.Fatal("fire with no life left should disappear")
	}
}
