// Package field holds the coarse overlays that sit beneath the element grid:
// the aggregated gravity field and the air pressure/temperature field.
package field

import "powder/internal/core"

// GravityConfig holds the tunables of the gravity overlay.
type GravityConfig struct {
	// CellSize is the number of fine cells per coarse cell along each axis.
	CellSize int `yaml:"cell_size"`
	// G scales the mass-to-mass attraction between coarse cells.
	G float64 `yaml:"g"`
	// MassThreshold is the mass a coarse cell must exceed to attract.
	MassThreshold float64 `yaml:"mass_threshold"`
	// DistanceThreshold bounds the coarse-cell radius scanned per query.
	DistanceThreshold int `yaml:"distance_threshold"`
	// Base is the constant gravity acceleration, +Y down.
	Base core.Vec2 `yaml:"base"`
	// Neutral disables the mass attraction and keeps only Base.
	Neutral bool `yaml:"neutral"`
}

// DefaultGravityConfig returns the standard gravity tunables.
func DefaultGravityConfig() GravityConfig {
	return GravityConfig{
		CellSize:          8,
		G:                 0.005,
		MassThreshold:     48,
		DistanceThreshold: 4,
		Base:              core.V2(0, 9.81),
	}
}

type gravCell struct {
	mass   float64
	mx, my float64
}

// Gravity aggregates element mass into coarse cells and sums the attraction
// of heavy cells near a query point. Active cells are visited in insertion
// order so force sums are reproducible.
type Gravity struct {
	cfg        GravityConfig
	cols, rows int

	cells  []gravCell
	active []int
	listed []bool
	on     []bool
}

// NewGravity sizes a gravity overlay for a w*h fine grid.
func NewGravity(w, h int, cfg GravityConfig) *Gravity {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	cols := (w + cfg.CellSize - 1) / cfg.CellSize
	rows := (h + cfg.CellSize - 1) / cfg.CellSize
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	total := cols * rows
	return &Gravity{
		cfg:    cfg,
		cols:   cols,
		rows:   rows,
		cells:  make([]gravCell, total),
		listed: make([]bool, total),
		on:     make([]bool, total),
	}
}

// Config returns the active tunables.
func (g *Gravity) Config() GravityConfig { return g.cfg }

// SetBase replaces the base gravity vector.
func (g *Gravity) SetBase(base core.Vec2) { g.cfg.Base = base }

// SetNeutral toggles the mass attraction term.
func (g *Gravity) SetNeutral(neutral bool) { g.cfg.Neutral = neutral }

// Size returns the coarse grid dimensions.
func (g *Gravity) Size() (int, int) { return g.cols, g.rows }

// Reset drops all accumulated mass.
func (g *Gravity) Reset() {
	for i := range g.cells {
		g.cells[i] = gravCell{}
		g.listed[i] = false
		g.on[i] = false
	}
	g.active = g.active[:0]
}

func (g *Gravity) coarse(x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	cx, cy := x/g.cfg.CellSize, y/g.cfg.CellSize
	if cx >= g.cols || cy >= g.rows {
		return 0, false
	}
	return cy*g.cols + cx, true
}

// UpdateMass moves mass from the coarse cell of (oldX, oldY) to the one of
// (newX, newY). A -1,-1 pair on either side means there is no contribution to
// remove or add.
func (g *Gravity) UpdateMass(mass float64, newX, newY, oldX, oldY int) {
	if mass == 0 {
		return
	}
	if !(oldX == -1 && oldY == -1) {
		if idx, ok := g.coarse(oldX, oldY); ok {
			g.adjust(idx, -mass, float64(oldX), float64(oldY))
		}
	}
	if !(newX == -1 && newY == -1) {
		if idx, ok := g.coarse(newX, newY); ok {
			g.adjust(idx, mass, float64(newX), float64(newY))
		}
	}
}

func (g *Gravity) adjust(idx int, dm, x, y float64) {
	c := &g.cells[idx]
	c.mass += dm
	c.mx += dm * x
	c.my += dm * y
	if c.mass < 1e-9 && c.mass > -1e-9 {
		*c = gravCell{}
	}
	switch {
	case c.mass > g.cfg.MassThreshold && !g.on[idx]:
		g.on[idx] = true
		if !g.listed[idx] {
			g.listed[idx] = true
			g.active = append(g.active, idx)
		}
	case c.mass <= g.cfg.MassThreshold && g.on[idx]:
		g.on[idx] = false
	}
}

// Refresh compacts the active list, dropping cells that fell below the mass
// threshold since the last call while keeping insertion order.
func (g *Gravity) Refresh() {
	kept := g.active[:0]
	for _, idx := range g.active {
		if g.on[idx] {
			kept = append(kept, idx)
			continue
		}
		g.listed[idx] = false
	}
	g.active = kept
}

// ActiveCells returns the coarse indices currently contributing attraction.
func (g *Gravity) ActiveCells() []int {
	out := make([]int, 0, len(g.active))
	for _, idx := range g.active {
		if g.on[idx] {
			out = append(out, idx)
		}
	}
	return out
}

// CellMass returns the mass stored in coarse cell (cx, cy).
func (g *Gravity) CellMass(cx, cy int) float64 {
	if cx < 0 || cy < 0 || cx >= g.cols || cy >= g.rows {
		return 0
	}
	return g.cells[cy*g.cols+cx].mass
}

// TotalMass sums every coarse cell.
func (g *Gravity) TotalMass() float64 {
	total := 0.0
	for _, c := range g.cells {
		total += c.mass
	}
	return total
}

// Force returns the gravitational force acting on mass at fine cell (x, y).
func (g *Gravity) Force(x, y int, mass float64) core.Vec2 {
	f := g.cfg.Base.Scale(mass)
	if g.cfg.Neutral || g.cfg.G == 0 {
		return f
	}
	qcx, qcy := x/g.cfg.CellSize, y/g.cfg.CellSize
	p := core.V2(float64(x), float64(y))
	dist := g.cfg.DistanceThreshold
	for _, idx := range g.active {
		if !g.on[idx] {
			continue
		}
		c := g.cells[idx]
		if c.mass <= g.cfg.MassThreshold {
			continue
		}
		cx, cy := idx%g.cols, idx/g.cols
		if cx == qcx && cy == qcy {
			continue
		}
		if absInt(cx-qcx) > dist || absInt(cy-qcy) > dist {
			continue
		}
		d := core.V2(c.mx/c.mass, c.my/c.mass).Sub(p)
		r2 := d.MagnitudeSq()
		if r2 < 1e-9 {
			continue
		}
		f = f.Add(d.Normalize().Scale(g.cfg.G * mass * c.mass / r2))
	}
	return f
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
