package powder

import (
	"math"

	"powder/internal/core"
)

type collideRule uint8

const (
	collideSwap collideRule = iota
	collideBlock
)

// Collision describes a blocked move. It lives only until the response step
// consumes it.
type Collision struct {
	Hit   bool
	Mover *Element
	// Moved is set when the mover entered at least one cell before the hit.
	Moved bool
	// Obstacle is the blocking element, nil when the mover left the grid.
	Obstacle *Element
	// Ground is the out-of-bounds cell the mover tried to enter.
	Ground core.Vec2
	// Normal points from the contact point toward the mover.
	Normal core.Vec2
}

// contact returns the point the mover collided with.
func (c Collision) contact() core.Vec2 {
	if c.Obstacle != nil {
		return c.Obstacle.Pos
	}
	return c.Ground
}

// evalCollision decides whether mover may take other's cell.
func evalCollision(mover, other *Element) collideRule {
	switch {
	case other == nil:
		return collideSwap
	case mover.State == other.State:
		if mover.Mass > other.Mass {
			return collideSwap
		}
		return collideBlock
	case mover.State > other.State:
		return collideSwap
	}
	return collideBlock
}

// move walks e from its cell toward dest one cell at a time and stops at the
// first cell it may not enter.
func (w *World) move(e *Element, dest core.Vec2) Collision {
	c := Collision{Mover: e}
	if math.IsNaN(dest.X) || math.IsNaN(dest.Y) || math.IsInf(dest.X, 0) || math.IsInf(dest.Y, 0) {
		e.Pos = core.V2(float64(e.X), float64(e.Y))
		return c
	}
	// Anything longer than the grid diagonal leaves the grid anyway.
	from := core.V2(float64(e.X), float64(e.Y))
	if delta := dest.Sub(from); delta.Magnitude() > float64(w.grid.W+w.grid.H) {
		dest = from.Add(delta.Normalize().Scale(float64(w.grid.W + w.grid.H)))
	}
	e.Pos = dest

	xD, yD := dest.Round()
	dx, dy := xD-e.X, yD-e.Y
	if dx == 0 && dy == 0 {
		return c
	}
	xStep, yStep := 1, 1
	if dx < 0 {
		dx, xStep = -dx, -1
	}
	if dy < 0 {
		dy, yStep = -dy, -1
	}

	if dx >= dy {
		w.trace(e, dx, xStep, yStep, 2*dx, 2*dy, false, &c)
	} else {
		w.trace(e, dy, xStep, yStep, 2*dy, 2*dx, true, &c)
	}
	if c.Hit {
		c.Normal = e.Pos.Sub(c.contact()).Normalize()
	}
	return c
}

// trace is the Bresenham walk on doubled deltas. When the minor axis steps,
// the cell between the previous and the next one is tried first so that
// diagonal moves cannot slip between two occupied cells.
func (w *World) trace(e *Element, d, xStep, yStep, de, dr int, yMajor bool, c *Collision) {
	xO, yO := e.X, e.Y
	errPrev, errCur := d, d
	for i := 0; i < d; i++ {
		if yMajor {
			yO += yStep
		} else {
			xO += xStep
		}
		errCur += dr
		if errCur > de {
			if yMajor {
				xO += xStep
			} else {
				yO += yStep
			}
			errCur -= de

			cx, cy := xO, yO
			if errCur+errPrev > de {
				// corner: the cell reached by the minor step only
				if yMajor {
					cy -= yStep
				} else {
					cx -= xStep
				}
			} else {
				// bottom square, also taken on an exact tie
				if yMajor {
					cx -= xStep
				} else {
					cy -= yStep
				}
			}
			if w.doMove(e, cx, cy, c) {
				return
			}
		}
		if w.doMove(e, xO, yO, c) {
			return
		}
		errPrev = errCur
	}
}

// doMove tries to put e into (x, y) and reports whether it was blocked.
func (w *World) doMove(e *Element, x, y int, c *Collision) bool {
	if !w.grid.InBounds(x, y) {
		c.Hit = true
		c.Obstacle = nil
		c.Ground = core.V2(float64(x), float64(y))
		e.Pos = core.V2(float64(e.X), float64(e.Y))
		return true
	}
	other := w.grid.Get(x, y)
	if evalCollision(e, other) == collideSwap {
		w.swapCells(e.X, e.Y, x, y)
		c.Moved = true
		return false
	}
	c.Hit = true
	c.Obstacle = other
	e.Pos = core.V2(float64(e.X), float64(e.Y))
	return true
}
