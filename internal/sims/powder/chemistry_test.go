package powder

import (
	"math"
	"testing"

	"powder/internal/core"
)

func TestCorrosionWithZeroEnduranceAlwaysDestroys(t *testing.T) {
	w := newTestWorld(t, testConfig(8, 8))
	acid := mustCreate(t, w, "acid", 1, 1)
	for i := 0; i < 50; i++ {
		target := mustCreate(t, w, "sand", 2, 1)
		target.Endurance = 0
		life := acid.Life
		w.respond(acid, target)
		if !target.Props.Has(Destroyed) {
			t.Fatalf("trial %d: endurance 0 target survived corrosion", i)
		}
		if acid.Life != life-1 {
			t.Fatalf("trial %d: acid life %f, want %f", i, acid.Life, life-1)
		}
		w.RemoveElement(2, 1)
	}
}

func TestCorrosionRespectsResistanceAndSameMaterial(t *testing.T) {
	w := newTestWorld(t, testConfig(8, 8))
	acid := mustCreate(t, w, "acid", 1, 1)
	wall := mustCreate(t, w, "wall", 2, 1)
	wall.Endurance = 0
	other := mustCreate(t, w, "acid", 1, 2)
	other.Endurance = 0
	full := mustCreate(t, w, "sand", 0, 1)
	full.Endurance = 1000

	for i := 0; i < 50; i++ {
		w.respond(acid, wall)
		w.corrode(acid, other)
		w.respond(acid, full)
	}
	if wall.Props.Has(Destroyed) {
		t.Fatal("corrosion resistant element was destroyed")
	}
	if other.Props.Has(Destroyed) {
		t.Fatal("corrosive destroyed its own material")
	}
	if full.Props.Has(Destroyed) {
		t.Fatal("endurance 1000 element was destroyed")
	}
}

func TestCorrodedElementRemovedNextUpdate(t *testing.T) {
	w := newTestWorld(t, testConfig(5, 5))
	acid := mustCreate(t, w, "acid", 2, 3)
	sand := mustCreate(t, w, "sand", 2, 4)
	sand.Endurance = 0
	acid.SetVelocity(core.V2(0, 30))

	w.Step()
	w.Step()
	if countMaterial(w, sand.ID) != 0 {
		t.Fatal("sand should be eaten by the acid")
	}
}

func TestExtinguisherClearsBurning(t *testing.T) {
	w := newTestWorld(t, testConfig(5, 5))
	water := mustCreate(t, w, "water", 1, 1)
	wood := mustCreate(t, w, "wood", 2, 1)
	wood.Props.Set(Burning)
	w.respond(water, wood)
	if wood.Props.Has(Burning) {
		t.Fatal("water should put out burning wood")
	}
}

func TestBurnConsumesLifeAndSpawnsFire(t *testing.T) {
	w := newTestWorld(t, testConfig(3, 3))
	wood := mustCreate(t, w, "wood", 1, 1)
	wood.Flammability = 1000
	wood.Props.Set(Burning)
	temp := wood.Temperature

	w.burn(wood)
	if wood.Life != 100-1000 {
		t.Fatalf("life %f, want %f", wood.Life, 100.0-1000)
	}
	if wood.Temperature <= temp {
		t.Fatal("burning should heat the element")
	}
	if got := countMaterial(w, w.Registry().Fire()); got != 1 {
		t.Fatalf("expected one flame, got %d", got)
	}
}

func TestBurnWithoutRoomSpawnsNothing(t *testing.T) {
	w := newTestWorld(t, testConfig(1, 1))
	wood := mustCreate(t, w, "wood", 0, 0)
	wood.Flammability = 1000
	w.burn(wood)
	if got := countMaterial(w, w.Registry().Fire()); got != 0 {
		t.Fatalf("no free neighbor, expected no flame, got %d", got)
	}
}

func TestIgniterLightsFlammableNeighbors(t *testing.T) {
	w := newTestWorld(t, testConfig(5, 5))
	lava := mustCreate(t, w, "lava", 2, 2)
	oil := mustCreate(t, w, "oil", 3, 2)
	oil.Flammability = 1000
	stone := mustCreate(t, w, "stone", 1, 2)

	w.ignite(lava)
	if !oil.Props.Has(Burning) {
		t.Fatal("oil next to lava should ignite")
	}
	if stone.Props.Has(Burning) {
		t.Fatal("stone is not flammable")
	}
}

func TestSpontaneousCombustion(t *testing.T) {
	cfg := testConfig(3, 3)
	cfg.Params.Air.AmbientHeat = false
	w := newTestWorld(t, cfg)
	wood := mustCreate(t, w, "wood", 1, 2)
	wood.Temperature = wood.CombustionTemperature + 50
	w.Step()
	if !wood.Props.Has(Burning) {
		t.Fatal("wood above its combustion temperature should burn")
	}
}

func TestBurningExplosiveBecomesFire(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.Params.Air.DiffusionRate = 0
	cfg.Params.Air.PressureDecay = 0
	w := newTestWorld(t, cfg)
	gp := mustCreate(t, w, "gunpowder", 2, 4)
	gp.Props.Set(Burning)

	w.Step()
	got := w.Element(2, 4)
	if got == nil || got.ID != w.Registry().Fire() {
		t.Fatalf("burning gunpowder should turn into fire, got %+v", got)
	}
	if p := w.Air().Pressure(2, 4); math.Abs(p-w.Config().Params.ExplosionPressure) > 1e-9 {
		t.Fatalf("explosion pressure %f, want %f", p, w.Config().Params.ExplosionPressure)
	}
	if got.Temperature != got.Material().Temperature {
		t.Fatal("explosion should start fire from its template temperature")
	}
}

func TestPressureExplosiveDetonatesAboveLimit(t *testing.T) {
	w := newTestWorld(t, testConfig(8, 8))
	nitro := mustCreate(t, w, "nitro", 4, 7)
	if w.explosive(nitro) {
		t.Fatal("nitro should be stable at ambient pressure")
	}
	w.Air().AddPressure(4, 7, w.Config().Params.ExplosionLimit+1)
	if !w.explosive(nitro) {
		t.Fatal("nitro should detonate above the explosion limit")
	}
}

func TestExplosiveCatchesFromAdjacentFire(t *testing.T) {
	w := newTestWorld(t, testConfig(5, 5))
	gp := mustCreate(t, w, "gunpowder", 2, 2)
	gp.Flammability = 1000
	mustCreate(t, w, "fire", 3, 2)
	if !w.explosive(gp) {
		t.Fatal("explosive next to fire with certain ignition should detonate")
	}
	if !gp.Props.Has(Burning) {
		t.Fatal("explosive should be marked burning")
	}
}
