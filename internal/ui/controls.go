package ui

import (
	"image"
	"math"
	"strconv"
	"strings"

	"powder/internal/core"
)

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// controlKeys identifies a control set so the panel can tell when the
// selection changed and the layout needs rebuilding.
func controlKeys(controls []core.ParameterControl) string {
	keys := make([]string, len(controls))
	for i, c := range controls {
		keys[i] = c.Key
	}
	return strings.Join(keys, ",")
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refreshValues copies the snapshot values into the control states.
func refreshValues(states []controlState, snapshot core.ParameterSnapshot) {
	for i := range states {
		s := &states[i]
		s.hasValue = false
		s.value = "--"
		param, ok := snapshot.Lookup(s.control.Key)
		if !ok {
			continue
		}
		switch s.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			s.intValue = parsed
			s.floatValue = float64(parsed)
			s.value = strconv.Itoa(parsed)
			s.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			s.floatValue = parsed
			s.value = formatFloat(s.control, parsed)
			s.hasValue = true
		}
	}
}

// adjustTarget returns the value one step in direction from the current one,
// clamped to the control bounds, and whether it differs from the current one.
func adjustTarget(s *controlState, direction int) (float64, bool) {
	if s == nil || direction == 0 || !s.hasValue {
		return 0, false
	}
	ctrl := s.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := int(math.Round(ctrl.Step))
		if step <= 0 {
			step = 1
		}
		target := s.intValue + direction*step
		if ctrl.HasMin {
			target = max(target, int(math.Round(ctrl.Min)))
		}
		if ctrl.HasMax {
			target = min(target, int(math.Round(ctrl.Max)))
		}
		return float64(target), target != s.intValue
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		target := s.floatValue + float64(direction)*step
		if ctrl.HasMin && target < ctrl.Min {
			target = ctrl.Min
		}
		if ctrl.HasMax && target > ctrl.Max {
			target = ctrl.Max
		}
		return target, math.Abs(target-s.floatValue) >= 1e-9
	}
	return 0, false
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// infoLines lists the read-only text and flag entries of a snapshot as
// "Label: value" rows.
func infoLines(snapshot core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range snapshot.Groups {
		for _, p := range g.Params {
			if p.Type != core.ParamTypeString && p.Type != core.ParamTypeBool {
				continue
			}
			lines = append(lines, p.Label+": "+p.Value)
		}
	}
	return lines
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
