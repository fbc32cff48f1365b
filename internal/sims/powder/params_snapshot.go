package powder

import (
	"strconv"

	"powder/internal/core"
)

// Select makes the element at (x, y) the editor target. Selecting an empty
// cell clears the selection.
func (w *World) Select(x, y int) bool {
	w.selected = w.Element(x, y)
	return w.selected != nil
}

// Selected returns the element under edit, if any.
func (w *World) Selected() *Element {
	if w.selected != nil && w.selected.Props.Has(Destroyed) {
		w.selected = nil
	}
	return w.selected
}

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				core.StringParam("scene", "Scene", w.cfg.Scene),
				int64Param("tick", "Tick", int64(w.tick)),
				core.IntParam("elements", "Elements", w.stats.Elements),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				core.FloatParam("dt", "Time step", params.TimeStep),
				core.FloatParam("scale", "Cell size (m)", params.Scale),
				core.FloatParam("heat_coef", "Heat coefficient", params.HeatCoef),
				core.FloatParam("air_density", "Air density", params.AirDensity),
				core.FloatParam("gravity", "Base gravity", w.gravity.Config().Base.Y),
				core.BoolParam("neutral_gravity", "Neutral gravity", w.gravity.Config().Neutral),
			},
		},
	}

	if e := w.Selected(); e != nil {
		element := core.ParameterGroup{
			Name:    "Element",
			Summary: e.Name(),
			Params: []core.Parameter{
				core.StringParam("name", "Material", e.Name()),
				core.StringParam("state", "State", e.State.String()),
				core.StringParam("props", "Properties", e.Props.String()),
				core.IntParam("x", "X", e.X),
				core.IntParam("y", "Y", e.Y),
				core.FloatParam("mass", "Mass", e.Mass),
				core.FloatParam("speed", "Speed", e.Speed),
				core.FloatParam("temperature", "Temperature", e.Temperature),
				core.FloatParam("thermal_cond", "Thermal conductivity", e.ThermalCond),
				core.FloatParam("specific_heat", "Specific heat", e.SpecificHeat),
				core.FloatParam("life", "Life", e.Life),
				core.IntParam("endurance", "Endurance", e.Endurance),
				core.IntParam("pile_threshold", "Pile threshold", e.PileThreshold),
			},
		}
		if e.State == StateGas {
			element.Params = append(element.Params,
				core.FloatParam("gas_gravity", "Gas gravity", e.GasGravity),
				core.FloatParam("gas_pressure", "Gas pressure", e.GasPressure),
			)
		}
		groups = append(groups, element)
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable values. Element controls act on
// the current selection.
func (w *World) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{
		{Key: "heat_coef", Label: "Heat coefficient", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
		{Key: "gravity", Label: "Base gravity", Type: core.ParamTypeFloat, Step: 0.5},
	}
	e := w.Selected()
	if e == nil {
		return controls
	}
	controls = append(controls,
		core.ParameterControl{Key: "mass", Label: "Mass", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.01, HasMin: true},
		core.ParameterControl{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true},
		core.ParameterControl{Key: "temperature", Label: "Temperature", Type: core.ParamTypeFloat, Step: 10, Min: 0, Max: MaxTemperature, HasMin: true, HasMax: true},
		core.ParameterControl{Key: "thermal_cond", Label: "Thermal conductivity", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		core.ParameterControl{Key: "specific_heat", Label: "Specific heat", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, HasMin: true},
		core.ParameterControl{Key: "endurance", Label: "Endurance", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 1000, HasMin: true, HasMax: true},
		core.ParameterControl{Key: "pile_threshold", Label: "Pile threshold", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
	)
	if e.State == StateGas {
		controls = append(controls,
			core.ParameterControl{Key: "gas_gravity", Label: "Gas gravity", Type: core.ParamTypeFloat, Step: 0.05},
			core.ParameterControl{Key: "gas_pressure", Label: "Gas pressure", Type: core.ParamTypeFloat, Step: 0.0005},
		)
	}
	return controls
}

// SetFloatParameter updates a world tunable or a field of the selected
// element. Values are clamped to the control bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "heat_coef":
		w.cfg.Params.HeatCoef = clampMin(value, 0)
		return true
	case "gravity":
		base := w.gravity.Config().Base
		base.Y = value
		w.gravity.SetBase(base)
		w.cfg.Params.Gravity.Base = base
		return true
	}

	e := w.Selected()
	if e == nil {
		return false
	}
	switch key {
	case "mass":
		w.SetMass(e, clampMin(value, 0.01))
	case "speed":
		value = clampMin(value, 0)
		if e.Velocity.IsZero() {
			e.SetVelocity(core.V2(0, value))
		} else {
			e.SetVelocity(e.Velocity.Normalize().Scale(value))
		}
	case "temperature":
		e.Temperature = clamp(value, 0, MaxTemperature)
	case "thermal_cond":
		e.ThermalCond = clampMin(value, 0)
	case "specific_heat":
		e.SpecificHeat = clampMin(value, 0.01)
	case "gas_gravity":
		if e.State != StateGas {
			return false
		}
		e.GasGravity = value
	case "gas_pressure":
		if e.State != StateGas {
			return false
		}
		e.GasPressure = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates integer fields of the selected element.
func (w *World) SetIntParameter(key string, value int) bool {
	e := w.Selected()
	if e == nil {
		return false
	}
	switch key {
	case "endurance":
		e.Endurance = int(clamp(float64(value), 0, 1000))
	case "pile_threshold":
		if value < 0 {
			value = 0
		}
		e.PileThreshold = value
	default:
		return false
	}
	return true
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampMin(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
