package powder

// resolve applies the full collision response: chemistry both ways, the
// restitution impulse, then piling for powders and flowing for liquids.
// A powder only piles when the hit stopped it in its starting cell.
func (w *World) resolve(c Collision) {
	e := c.Mover
	impact := e.Speed

	w.respond(e, c.Obstacle)
	if c.Obstacle != nil {
		w.respond(c.Obstacle, e)
	}
	w.applyImpulse(c)

	switch e.State {
	case StatePowder:
		if !c.Moved && impact > float64(e.PileThreshold) {
			w.pile(e, c)
		}
	case StateLiquid:
		w.flow(e, c)
	}
}

// applyImpulse exchanges momentum along the contact normal. The obstacle
// term is dropped for ground collisions. It reports false when the impulse
// is degenerate.
func (w *World) applyImpulse(c Collision) bool {
	e, o := c.Mover, c.Obstacle
	if e.Mass <= 0 || (o != nil && o.Mass <= 0) {
		return false
	}
	n := e.Pos.Sub(c.contact()).Normalize()
	rel := e.Velocity
	inv := 1 / e.Mass
	if o != nil {
		rel = rel.Sub(o.Velocity)
		inv += 1 / o.Mass
	}
	den := n.Dot(n) * inv
	if den == 0 {
		return false
	}
	j := -(1 + e.Restitution) * rel.Dot(n) / den
	e.AddVelocity(n.Scale(j / e.Mass))
	if o != nil {
		o.AddVelocity(n.Scale(-j / o.Mass))
	}
	return true
}

// pile slides a powder off the obstacle's side, trying a random side first.
func (w *World) pile(e *Element, c Collision) {
	o := c.Obstacle
	if o == nil {
		return
	}
	base := o.Pos
	perp := base.Sub(e.Pos).PerpendicularCW()
	if w.rng.Bool() {
		perp = perp.Neg()
	}
	if w.move(e, base.Add(perp)).Hit {
		w.move(e, base.Sub(perp))
	}
}

// flow moves a liquid sideways relative to whatever stopped it.
func (w *World) flow(e *Element, c Collision) {
	perp := c.contact().Sub(e.Pos).PerpendicularCW()
	if w.rng.Bool() {
		perp = perp.Neg()
	}
	if w.move(e, e.Pos.Add(perp)).Hit {
		w.move(e, e.Pos.Sub(perp))
	}
}
