// Package powder implements a cellular-automaton powder physics engine:
// elements on a grid with gravity, momentum, collisions, heat, air pressure
// and material transitions.
package powder

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"

	"powder/internal/core"
	"powder/internal/field"
)

// World owns the element grid and the coarse fields beneath it. A world is
// single threaded: one Tick visits cells bottom to top, left to right, and
// updates each element at most once.
type World struct {
	cfg    Config
	reg    *Registry
	logger *log.Logger

	grid    *core.Grid[*Element]
	gravity *field.Gravity
	air     *field.Air
	rng     *core.RNG

	tick     uint64
	selected *Element

	display    []uint8
	colors     []color.RGBA
	background color.RGBA
	stats      Stats
}

// New constructs a world of the given size with the embedded material table.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	world, err := NewWithConfig(cfg)
	if err != nil {
		panic(fmt.Sprintf("powder: embedded defaults: %v", err))
	}
	return world
}

// NewWithConfig constructs a world from cfg, loading cfg.Materials when set.
func NewWithConfig(cfg Config) (*World, error) {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	if cfg.Params.TimeStep <= 0 {
		cfg.Params.TimeStep = DefaultConfig().Params.TimeStep
	}
	if cfg.Params.Scale <= 0 {
		cfg.Params.Scale = DefaultConfig().Params.Scale
	}

	var (
		reg *Registry
		err error
	)
	if cfg.Materials != "" {
		reg, err = LoadRegistryFile(cfg.Materials)
	} else {
		reg, err = DefaultRegistry()
	}
	if err != nil {
		return nil, err
	}
	return NewWithRegistry(cfg, reg), nil
}

// NewWithRegistry constructs a world over an already loaded material table.
func NewWithRegistry(cfg Config, reg *Registry) *World {
	w := &World{
		cfg:        cfg,
		reg:        reg,
		logger:     log.Default().WithPrefix("powder"),
		grid:       core.NewGrid[*Element](cfg.Width, cfg.Height),
		gravity:    field.NewGravity(cfg.Width, cfg.Height, cfg.Params.Gravity),
		air:        field.NewAir(cfg.Width, cfg.Height, cfg.Params.Air),
		rng:        core.NewRNG(cfg.Seed),
		display:    make([]uint8, cfg.Width*cfg.Height),
		colors:     make([]color.RGBA, cfg.Width*cfg.Height),
		background: color.RGBA{A: 0xff},
	}
	w.Reset(0)
	return w
}

// SetLogger replaces the world logger.
func (w *World) SetLogger(l *log.Logger) {
	if l != nil {
		w.logger = l
	}
}

// Name implements core.Sim.
func (w *World) Name() string { return "powder" }

// Size implements core.Sim.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells returns one material id per cell, zero for empty cells.
func (w *World) Cells() []uint8 { return w.display }

// Colors returns one RGBA value per cell for rendering.
func (w *World) Colors() []color.RGBA { return w.colors }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Registry exposes the material table.
func (w *World) Registry() *Registry { return w.reg }

// Gravity exposes the gravity overlay.
func (w *World) Gravity() *field.Gravity { return w.gravity }

// Air exposes the air overlay.
func (w *World) Air() *field.Air { return w.air }

// RNG exposes the world random source for tools that need to share it.
func (w *World) RNG() *core.RNG { return w.rng }

// TickCount returns the number of completed ticks since the last reset.
func (w *World) TickCount() uint64 { return w.tick }

// Reset clears the world and seeds the configured scene. A zero seed keeps
// the configured seed.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng.Seed(seed)
	w.grid.Reset()
	w.gravity.Reset()
	w.air.Reset()
	w.tick = 0
	w.selected = nil
	w.stats = Stats{}

	w.seedScene(w.cfg.Scene)
	w.rebuildDisplay()
	w.logger.Debug("reset", "seed", seed, "scene", w.cfg.Scene, "elements", w.stats.Elements)
}

// Step advances the world by the configured time step.
func (w *World) Step() { w.Tick(w.cfg.Params.TimeStep) }

// Tick advances the world by dt seconds.
func (w *World) Tick(dt float64) {
	w.tick++
	w.stats.beginTick(w.tick)
	w.gravity.Refresh()

	for y := w.grid.H - 1; y >= 0; y-- {
		for x := 0; x < w.grid.W; x++ {
			e := w.grid.Get(x, y)
			if e == nil || e.tick == w.tick {
				continue
			}
			e.tick = w.tick
			next, explode := w.update(e, dt)
			switch {
			case next == None:
				w.destroy(e)
			case explode:
				w.replace(e, next, false)
			case next != e.ID:
				w.replace(e, next, true)
			}
		}
	}

	w.air.Diffuse()
	w.rebuildDisplay()
}

// InBounds reports whether (x, y) lies inside the grid.
func (w *World) InBounds(x, y int) bool { return w.grid.InBounds(x, y) }

// IsEmpty reports whether (x, y) is inside the grid and holds no element.
func (w *World) IsEmpty(x, y int) bool {
	return w.grid.InBounds(x, y) && w.grid.IsZero(x, y)
}

// Element returns the element at (x, y), or nil for empty or out of range
// cells.
func (w *World) Element(x, y int) *Element {
	if !w.grid.InBounds(x, y) {
		return nil
	}
	return w.grid.Get(x, y)
}

// CreateElement spawns a new element of material id at (x, y).
func (w *World) CreateElement(id MaterialID, x, y int) (*Element, error) {
	if !w.grid.InBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	if !w.grid.IsZero(x, y) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, x, y)
	}
	m, ok := w.reg.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrInvalidMaterial, id)
	}
	e := w.spawn(m, x, y)
	w.stats.Spawned++
	return e, nil
}

// CreateElementAt spawns an element at a linear cell index.
func (w *World) CreateElementAt(id MaterialID, index int) (*Element, error) {
	if index < 0 || index >= w.grid.W*w.grid.H {
		return nil, fmt.Errorf("%w: index %d", ErrOutOfBounds, index)
	}
	x, y := w.grid.Coords(index)
	return w.CreateElement(id, x, y)
}

// RemoveElement destroys the element at (x, y), reporting whether one was
// there.
func (w *World) RemoveElement(x, y int) bool {
	e := w.Element(x, y)
	if e == nil {
		return false
	}
	w.destroy(e)
	return true
}

// AddHeat applies heat to the element at (x, y), if any.
func (w *World) AddHeat(x, y int, heat float64) bool {
	e := w.Element(x, y)
	if e == nil {
		return false
	}
	e.AddHeat(heat)
	return true
}

// SetMass changes an element's mass and moves the difference in the gravity
// field.
func (w *World) SetMass(e *Element, mass float64) {
	if e == nil || mass <= 0 || w.Element(e.X, e.Y) != e {
		return
	}
	w.gravity.UpdateMass(e.Mass, -1, -1, e.X, e.Y)
	e.Mass = mass
	w.gravity.UpdateMass(e.Mass, e.X, e.Y, -1, -1)
}

// SwapElements exchanges the contents of two cells, keeping element
// coordinates and the gravity field consistent.
func (w *World) SwapElements(x1, y1, x2, y2 int) error {
	if !w.grid.InBounds(x1, y1) || !w.grid.InBounds(x2, y2) {
		return fmt.Errorf("%w: swap (%d, %d) <-> (%d, %d)", ErrOutOfBounds, x1, y1, x2, y2)
	}
	w.swapCells(x1, y1, x2, y2)
	if e := w.grid.Get(x2, y2); e != nil {
		e.Pos = core.V2(float64(x2), float64(y2))
	}
	return nil
}

// swapCells moves the element at (x1, y1) to (x2, y2) and the occupant of
// (x2, y2), if any, back to (x1, y1). The mover keeps its continuous
// position; the displaced occupant snaps to its new cell.
func (w *World) swapCells(x1, y1, x2, y2 int) {
	a := w.grid.Get(x1, y1)
	b := w.grid.Get(x2, y2)
	w.grid.Swap(x1, y1, x2, y2)
	if a != nil {
		a.X, a.Y = x2, y2
		w.gravity.UpdateMass(a.Mass, x2, y2, x1, y1)
	}
	if b != nil {
		b.X, b.Y = x1, y1
		b.Pos = core.V2(float64(x1), float64(y1))
		w.gravity.UpdateMass(b.Mass, x1, y1, x2, y2)
	}
}

func (w *World) spawn(m *Material, x, y int) *Element {
	e := newElement(m, x, y, w.rng)
	e.tick = w.tick
	w.grid.Set(x, y, e)
	w.gravity.UpdateMass(e.Mass, x, y, -1, -1)
	return e
}

func (w *World) destroy(e *Element) {
	if w.grid.Get(e.X, e.Y) != e {
		return
	}
	w.grid.Clear(e.X, e.Y)
	w.gravity.UpdateMass(e.Mass, -1, -1, e.X, e.Y)
	e.Props.Set(Destroyed)
	if w.selected == e {
		w.selected = nil
	}
	w.stats.Destroyed++
}

// replace swaps e for a fresh element of material id in the same cell.
// Threshold transitions keep temperature and velocity; explosions start from
// the template.
func (w *World) replace(e *Element, id MaterialID, keep bool) {
	m, ok := w.reg.Get(id)
	if !ok {
		w.logger.Warn("transition to unknown material", "from", e.Name(), "to", int(id))
		return
	}
	x, y := e.X, e.Y
	w.grid.Clear(x, y)
	w.gravity.UpdateMass(e.Mass, -1, -1, x, y)
	ne := w.spawn(m, x, y)
	if keep {
		ne.Temperature = e.Temperature
		ne.SetVelocity(e.Velocity)
	}
	if w.selected == e {
		w.selected = ne
	}
	w.stats.Transitions++
}

func (w *World) neighbors(x, y int, fn func(nx, ny int, n *Element)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !w.grid.InBounds(nx, ny) {
				continue
			}
			fn(nx, ny, w.grid.Get(nx, ny))
		}
	}
}

func (w *World) rebuildDisplay() {
	var (
		count   int
		mass    float64
		tempSum float64
	)
	cells := w.grid.Cells()
	for i, e := range cells {
		if e == nil {
			w.display[i] = 0
			w.colors[i] = w.background
			continue
		}
		w.display[i] = uint8(e.ID)
		w.colors[i] = w.elementColor(e)
		count++
		mass += e.Mass
		tempSum += e.Temperature
	}
	w.stats.Elements = count
	w.stats.TotalMass = mass
	w.stats.FieldMass = w.gravity.TotalMass()
	w.stats.MeanTemperature = 0
	if count > 0 {
		w.stats.MeanTemperature = tempSum / float64(count)
	}
	peak := 0.0
	for _, p := range w.air.Pressures() {
		if a := math.Abs(p); a > peak {
			peak = a
		}
	}
	w.stats.PeakPressure = peak
}

func init() {
	core.Register("powder", func(cfg map[string]string) (core.Sim, error) {
		w, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
