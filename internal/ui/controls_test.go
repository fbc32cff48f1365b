package ui

import (
	"image"
	"testing"

	"powder/internal/core"
)

func snapshotOf(params ...core.Parameter) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "Test", Params: params}}}
}

func TestRefreshValuesParsesTypes(t *testing.T) {
	states := newControlStates([]core.ParameterControl{
		{Key: "endurance", Type: core.ParamTypeInt},
		{Key: "mass", Type: core.ParamTypeFloat, Step: 0.1},
		{Key: "missing", Type: core.ParamTypeFloat},
	})
	refreshValues(states, snapshotOf(
		core.IntParam("endurance", "Endurance", 40),
		core.FloatParam("mass", "Mass", 1.25),
	))
	if !states[0].hasValue || states[0].intValue != 40 {
		t.Fatalf("int control = %+v", states[0])
	}
	if !states[1].hasValue || states[1].value != "1.2" && states[1].value != "1.3" {
		t.Fatalf("float control = %+v", states[1])
	}
	if states[2].hasValue || states[2].value != "--" {
		t.Fatalf("missing control = %+v", states[2])
	}
}

func TestAdjustTargetClamps(t *testing.T) {
	s := &controlState{
		control:  core.ParameterControl{Key: "endurance", Type: core.ParamTypeInt, Step: 10, Max: 1000, HasMax: true},
		intValue: 995, hasValue: true,
	}
	target, ok := adjustTarget(s, 1)
	if !ok || target != 1000 {
		t.Fatalf("target = %v ok = %v, want 1000 true", target, ok)
	}
	s.intValue = 1000
	if _, ok := adjustTarget(s, 1); ok {
		t.Fatalf("adjust past max should be a no-op")
	}

	f := &controlState{
		control:    core.ParameterControl{Key: "mass", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.01, HasMin: true},
		floatValue: 0.2, hasValue: true,
	}
	target, ok = adjustTarget(f, -1)
	if !ok || target != 0.01 {
		t.Fatalf("target = %v ok = %v, want 0.01 true", target, ok)
	}
	if _, ok := adjustTarget(&controlState{control: f.control}, 1); ok {
		t.Fatalf("control without a value must not adjust")
	}
}

func TestControlKeysChangeWithSelection(t *testing.T) {
	base := []core.ParameterControl{{Key: "heat_coef"}, {Key: "gravity"}}
	withElement := append(append([]core.ParameterControl{}, base...), core.ParameterControl{Key: "mass"})
	if controlKeys(base) == controlKeys(withElement) {
		t.Fatalf("signatures should differ")
	}
}

func TestInfoLinesSkipsNumbers(t *testing.T) {
	lines := infoLines(snapshotOf(
		core.StringParam("name", "Material", "sand"),
		core.FloatParam("mass", "Mass", 1),
		core.BoolParam("neutral_gravity", "Neutral gravity", true),
	))
	if len(lines) != 2 || lines[0] != "Material: sand" || lines[1] != "Neutral gravity: true" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestFormatFloatPrecision(t *testing.T) {
	if got := formatFloat(core.ParameterControl{Step: 0.0005}, 1); got != "1.0000" {
		t.Fatalf("got %q", got)
	}
	if got := formatFloat(core.ParameterControl{Step: 1}, 2.25); got != "2.2" && got != "2.3" {
		t.Fatalf("got %q", got)
	}
}

func TestPointInRect(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	if !pointInRect(0, 0, r) || pointInRect(10, 5, r) {
		t.Fatal("pointInRect bounds are half-open")
	}
}
