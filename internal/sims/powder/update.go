package powder

import (
	"math"

	"powder/internal/core"
)

// update runs one element through a tick. It returns the material the cell
// should hold afterwards (None destroys it) and whether the replacement is an
// explosion.
func (w *World) update(e *Element, dt float64) (MaterialID, bool) {
	if e.isDead() {
		return None, false
	}
	if e.Props.Has(LifeDecay) {
		e.Life--
	}

	e.meltOrSolidify()
	if e.Props.Has(Breakable) && math.Abs(w.air.Pressure(e.X, e.Y)) > e.BreakPressure {
		e.State = StatePowder
	}

	if e.State != StateSolid {
		w.integrate(e, dt)
		step := e.Velocity.Scale(dt / w.cfg.Params.Scale)
		if c := w.move(e, e.Pos.Add(step)); c.Hit {
			w.resolve(c)
		}
		if e.State == StateGas && e.GasPressure != 0 {
			w.emitPressure(e)
		}
	}

	if e.Props.Has(Flammable) && !e.Props.Has(Burning) && e.Temperature > e.CombustionTemperature {
		e.Props.Set(Burning)
	}
	if e.Props.Has(Burning) {
		w.burn(e)
	}
	if e.Props.Has(Igniter) {
		w.ignite(e)
	}
	if hook := e.material.behavior.OnUpdate; hook != nil {
		hook(w, e)
	}

	w.exchangeHeat(e)
	w.exchangeAirHeat(e)

	if w.explosive(e) {
		return w.reg.Fire(), true
	}
	return e.TransitionTarget(w.air.Pressure(e.X, e.Y)), false
}

// integrate accumulates gravity, buoyancy, drag and the air pressure force
// into the element velocity.
func (w *World) integrate(e *Element, dt float64) {
	f := w.gravity.Force(e.X, e.Y, e.Mass)
	if e.State == StateGas {
		f = f.Add(w.gravity.Config().Base.Scale(e.Mass * (e.GasGravity - 1)))
	}
	e.Forces = f
	e.AddVelocity(f.Scale(dt / e.Mass))

	if e.Speed > 0 && e.DragCoef > 0 && w.cfg.Params.AirDensity > 0 {
		drag := 0.25 * w.cfg.Params.AirDensity * e.Speed * e.Speed * e.DragCoef
		dv := drag / e.Mass * dt
		// drag can stop an element but never reverse it
		if dv > e.Speed {
			dv = e.Speed
		}
		e.AddVelocity(e.Velocity.Normalize().Scale(-dv))
	}

	if air := w.air.Force(e.X, e.Y); !air.IsZero() {
		e.AddVelocity(air)
	}
}

// emitPressure spreads a gas element's pressure over its own cell and the
// three cells to the right and below.
func (w *World) emitPressure(e *Element) {
	for _, off := range [...]core.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}} {
		x, y := e.X+int(off.X), e.Y+int(off.Y)
		if w.air.Contains(x, y) {
			w.air.AddPressure(x, y, e.GasPressure)
		}
	}
}
