package field

import "powder/internal/core"

// AirConfig holds the tunables of the air overlay.
type AirConfig struct {
	CellSize int `yaml:"cell_size"`
	// DiffusionRate is the fraction of the gap to the neighbor average closed
	// per step, for both pressure and temperature.
	DiffusionRate float64 `yaml:"diffusion_rate"`
	// PressureDecay pulls pressure back toward zero each step.
	PressureDecay float64 `yaml:"pressure_decay"`
	// AmbientTemperature is the resting air temperature in kelvin.
	AmbientTemperature float64 `yaml:"ambient_temperature"`
	// TemperatureDecay pulls air temperature toward AmbientTemperature.
	TemperatureDecay float64 `yaml:"temperature_decay"`
	// HeatCapacity converts heat units into temperature change.
	HeatCapacity float64 `yaml:"heat_capacity"`
	// Conductivity is the air side thermal conductivity used when the air is
	// hotter than the element it touches.
	Conductivity float64 `yaml:"conductivity"`
	// AmbientHeat enables heat exchange between elements and the air.
	AmbientHeat bool `yaml:"ambient_heat"`
	// ForceScale converts the pressure gradient into a velocity change.
	ForceScale float64 `yaml:"force_scale"`
}

// DefaultAirConfig returns the standard air tunables.
func DefaultAirConfig() AirConfig {
	return AirConfig{
		CellSize:           4,
		DiffusionRate:      0.2,
		PressureDecay:      0.02,
		AmbientTemperature: 293.15,
		TemperatureDecay:   0.001,
		HeatCapacity:       1000,
		Conductivity:       0.02,
		AmbientHeat:        true,
		ForceScale:         1,
	}
}

// Air stores pressure and temperature per coarse cell. Every cell always has
// both values regardless of whether any element lives there.
type Air struct {
	cfg        AirConfig
	cols, rows int

	pressure    []float64
	temperature []float64
	nextP       []float64
	nextT       []float64
}

// NewAir sizes an air overlay for a w*h fine grid.
func NewAir(w, h int, cfg AirConfig) *Air {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	if cfg.HeatCapacity <= 0 {
		cfg.HeatCapacity = 1
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
	a := &Air{
		cfg:         cfg,
		cols:        cols,
		rows:        rows,
		pressure:    make([]float64, total),
		temperature: make([]float64, total),
		nextP:       make([]float64, total),
		nextT:       make([]float64, total),
	}
	a.Reset()
	return a
}

// Config returns the active tunables.
func (a *Air) Config() AirConfig { return a.cfg }

// Size returns the coarse grid dimensions.
func (a *Air) Size() (int, int) { return a.cols, a.rows }

// Reset returns every cell to zero pressure and ambient temperature.
func (a *Air) Reset() {
	for i := range a.pressure {
		a.pressure[i] = 0
		a.temperature[i] = a.cfg.AmbientTemperature
	}
}

// Pressures exposes the coarse pressure values in row-major order.
func (a *Air) Pressures() []float64 { return a.pressure }

// Temperatures exposes the coarse temperature values in row-major order.
func (a *Air) Temperatures() []float64 { return a.temperature }

func (a *Air) coarse(x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	cx, cy := x/a.cfg.CellSize, y/a.cfg.CellSize
	if cx >= a.cols || cy >= a.rows {
		return 0, false
	}
	return cy*a.cols + cx, true
}

// Contains reports whether fine cell (x, y) maps onto the overlay.
func (a *Air) Contains(x, y int) bool {
	_, ok := a.coarse(x, y)
	return ok
}

// AddPressure adds amount to the cell containing (x, y).
func (a *Air) AddPressure(x, y int, amount float64) {
	if idx, ok := a.coarse(x, y); ok {
		a.pressure[idx] += amount
	}
}

// Pressure returns the pressure at (x, y), zero outside the overlay.
func (a *Air) Pressure(x, y int) float64 {
	if idx, ok := a.coarse(x, y); ok {
		return a.pressure[idx]
	}
	return 0
}

// AddHeat deposits heat into the cell containing (x, y).
func (a *Air) AddHeat(x, y int, amount float64) {
	if idx, ok := a.coarse(x, y); ok {
		t := a.temperature[idx] + amount/a.cfg.HeatCapacity
		if t < 0 {
			t = 0
		}
		a.temperature[idx] = t
	}
}

// Temperature returns the air temperature at (x, y), ambient outside the
// overlay.
func (a *Air) Temperature(x, y int) float64 {
	if idx, ok := a.coarse(x, y); ok {
		return a.temperature[idx]
	}
	return a.cfg.AmbientTemperature
}

// Diffuse relaxes pressure and temperature toward the 4-neighbor average.
func (a *Air) Diffuse() {
	rate := a.cfg.DiffusionRate
	for cy := 0; cy < a.rows; cy++ {
		for cx := 0; cx < a.cols; cx++ {
			idx := cy*a.cols + cx
			sumP, sumT, n := 0.0, 0.0, 0
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nx, ny := cx+d[0], cy+d[1]
				if nx < 0 || ny < 0 || nx >= a.cols || ny >= a.rows {
					continue
				}
				nIdx := ny*a.cols + nx
				sumP += a.pressure[nIdx]
				sumT += a.temperature[nIdx]
				n++
			}
			p := a.pressure[idx]
			t := a.temperature[idx]
			if n > 0 {
				p += rate * (sumP/float64(n) - p)
				t += rate * (sumT/float64(n) - t)
			}
			p -= p * a.cfg.PressureDecay
			t += (a.cfg.AmbientTemperature - t) * a.cfg.TemperatureDecay
			a.nextP[idx] = p
			a.nextT[idx] = t
		}
	}
	a.pressure, a.nextP = a.nextP, a.pressure
	a.temperature, a.nextT = a.nextT, a.temperature
}

// Force returns the velocity push of the local pressure gradient, pointing
// from high toward low pressure.
func (a *Air) Force(x, y int) core.Vec2 {
	idx, ok := a.coarse(x, y)
	if !ok || a.cfg.ForceScale == 0 {
		return core.Vec2{}
	}
	cx, cy := idx%a.cols, idx/a.cols
	at := func(px, py int) float64 {
		if px < 0 || py < 0 || px >= a.cols || py >= a.rows {
			return a.pressure[idx]
		}
		return a.pressure[py*a.cols+px]
	}
	fx := (at(cx-1, cy) - at(cx+1, cy)) * 0.5
	fy := (at(cx, cy-1) - at(cx, cy+1)) * 0.5
	return core.V2(fx, fy).Scale(a.cfg.ForceScale)
}
