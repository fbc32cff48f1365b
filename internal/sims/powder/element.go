package powder

import (
	"image/color"

	"powder/internal/core"
)

// MaxTemperature caps element temperatures.
const MaxTemperature = 10000.0

// Element is one particle living in a grid cell. Every field is copied from
// its material template on creation and may diverge afterwards.
type Element struct {
	ID    MaterialID
	State State
	Props Props
	Color color.RGBA

	// X, Y is the owning cell. Pos is the continuous position and only
	// differs from the cell while a move is in flight.
	X, Y     int
	Pos      core.Vec2
	Velocity core.Vec2
	Forces   core.Vec2
	Speed    float64

	Mass                  float64
	Temperature           float64
	ThermalCond           float64
	SpecificHeat          float64
	Flammability          float64
	Restitution           float64
	DragCoef              float64
	GasGravity            float64
	GasPressure           float64
	Life                  float64
	Endurance             int
	PileThreshold         int
	MeltingTemperature    float64
	BreakPressure         float64
	CombustionTemperature float64

	Transitions Transitions

	material *Material
	tick     uint64
}

func newElement(m *Material, x, y int, rng *core.RNG) *Element {
	e := &Element{
		ID:                    m.ID,
		State:                 m.State,
		Props:                 m.Props,
		Color:                 m.Colors[0],
		X:                     x,
		Y:                     y,
		Pos:                   core.V2(float64(x), float64(y)),
		Mass:                  m.Mass,
		Temperature:           m.Temperature,
		ThermalCond:           m.ThermalCond,
		SpecificHeat:          m.SpecificHeat,
		Flammability:          m.Flammability,
		Restitution:           m.Restitution,
		DragCoef:              m.DragCoef,
		GasGravity:            m.GasGravity,
		GasPressure:           m.GasPressure,
		Life:                  m.Life,
		Endurance:             m.Endurance,
		PileThreshold:         m.PileThreshold,
		MeltingTemperature:    m.MeltingTemperature,
		BreakPressure:         m.BreakPressure,
		CombustionTemperature: m.CombustionTemperature,
		Transitions:           m.Transitions,
		material:              m,
	}
	if len(m.Colors) > 1 && rng != nil {
		e.Color = m.Colors[rng.Between(0, len(m.Colors)-1)]
	}
	if m.behavior.OnSpawn != nil {
		m.behavior.OnSpawn(e, rng)
	}
	return e
}

// Material returns the template the element was created from.
func (e *Element) Material() *Material { return e.material }

// Name is the template name.
func (e *Element) Name() string {
	if e.material == nil {
		return ""
	}
	return e.material.Name
}

// AddHeat converts heat into a temperature change scaled by mass and
// specific heat, clamped to [0, MaxTemperature].
func (e *Element) AddHeat(heat float64) {
	if e.Mass <= 0 || e.SpecificHeat <= 0 {
		return
	}
	e.Temperature += heat / (e.Mass * 1000) / e.SpecificHeat
	switch {
	case e.Temperature < 0:
		e.Temperature = 0
	case e.Temperature > MaxTemperature:
		e.Temperature = MaxTemperature
	}
}

// AddVelocity accumulates dv and refreshes the cached speed.
func (e *Element) AddVelocity(dv core.Vec2) {
	e.Velocity = e.Velocity.Add(dv)
	e.Speed = e.Velocity.Magnitude()
}

// SetVelocity replaces the velocity.
func (e *Element) SetVelocity(v core.Vec2) {
	e.Velocity = v
	e.Speed = v.Magnitude()
}

// TransitionTarget evaluates the threshold bounds in priority order
// (low pressure, high pressure, low temperature, high temperature) and
// returns the first crossed bound's target. The element's own id means no
// transition.
func (e *Element) TransitionTarget(pressure float64) MaterialID {
	t := e.Transitions
	target := NoTransition
	switch {
	case pressure < t.LowPressure.At:
		target = t.LowPressure.To
	case pressure > t.HighPressure.At:
		target = t.HighPressure.To
	case e.Temperature < t.LowTemperature.At:
		target = t.LowTemperature.To
	case e.Temperature > t.HighTemperature.At:
		target = t.HighTemperature.To
	}
	if target == NoTransition {
		return e.ID
	}
	return target
}

// meltOrSolidify applies the melting point rules for meltable materials.
func (e *Element) meltOrSolidify() {
	switch {
	case e.Props.Has(Meltable) && !e.Props.Has(Melted) && e.Temperature > e.MeltingTemperature:
		e.State = StateLiquid
		e.Props.Set(Melted)
	case e.Props.Has(Melted) && e.Temperature < e.MeltingTemperature:
		e.State = StateSolid
		e.Props.Clear(Melted)
	}
}

func (e *Element) isDead() bool {
	return e.Props.Has(Destroyed) || (e.Props.Has(LifeDependant) && e.Life < 0)
}
