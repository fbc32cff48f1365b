package powder

// respond applies e's reactive properties to other after a collision.
// other is nil for ground collisions.
func (w *World) respond(e, other *Element) {
	if other == nil {
		return
	}
	if e.Props.Has(Corrosive) && !other.Props.Has(CorrosiveResistant) {
		w.corrode(e, other)
	}
	if e.Props.Has(Extinguisher) {
		other.Props.Clear(Burning)
	}
}

// corrode eats other with probability (1000 - endurance)/1000, spending one
// point of e's life on success.
func (w *World) corrode(e, other *Element) bool {
	if other.ID == e.ID {
		return false
	}
	if !w.rng.Chance(1000-other.Endurance, 1000) {
		return false
	}
	other.Props.Set(Destroyed)
	e.Life--
	return true
}

// burn consumes life, releases heat and occasionally throws a flame into a
// free neighboring cell.
func (w *World) burn(e *Element) {
	e.Life -= e.Flammability
	e.AddHeat(1000 * e.Flammability)
	if !w.rng.Chance(int(e.Flammability), 1000) {
		return
	}
	var free [8][2]int
	n := 0
	w.neighbors(e.X, e.Y, func(nx, ny int, other *Element) {
		if other == nil {
			free[n] = [2]int{nx, ny}
			n++
		}
	})
	if n == 0 {
		return
	}
	pick := free[w.rng.Between(0, n-1)]
	if _, err := w.CreateElement(w.reg.Fire(), pick[0], pick[1]); err != nil {
		w.logger.Debug("flame spawn rejected", "err", err)
	}
}

// ignite gives every flammable or explosive neighbor a chance to catch fire.
func (w *World) ignite(e *Element) {
	w.neighbors(e.X, e.Y, func(_, _ int, other *Element) {
		if other == nil || other.Props.Has(Burning) || !other.Props.Any(Flammable|Explosive) {
			return
		}
		if w.rng.Chance(int(other.Flammability), 1000) {
			other.Props.Set(Burning)
		}
	})
}

// explosive runs the explosive chain and reports whether e detonates. A
// detonation pressurizes the element's cell.
func (w *World) explosive(e *Element) bool {
	if e.Props.Has(Explosive) && !e.Props.Has(Burning) {
		fire := w.reg.Fire()
		w.neighbors(e.X, e.Y, func(_, _ int, other *Element) {
			if other == nil || other.ID != fire || e.Props.Has(Burning) {
				return
			}
			if w.rng.Chance(int(e.Flammability), 1000) {
				e.Props.Set(Burning)
			}
		})
	}
	detonate := e.Props.Has(Explosive|Burning) ||
		(e.Props.Has(ExplosivePressure) && absFloat(w.air.Pressure(e.X, e.Y)) > w.cfg.Params.ExplosionLimit)
	if detonate {
		w.air.AddPressure(e.X, e.Y, w.cfg.Params.ExplosionPressure)
	}
	return detonate
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
