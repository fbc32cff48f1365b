package powder

import (
	"fmt"
	"strings"
)

// State is the physical phase of an element. Higher states are denser and win
// displacement ties during collisions.
type State uint8

const (
	StateGas State = iota
	StateLiquid
	StatePowder
	StateSolid
)

var stateNames = [...]string{"gas", "liquid", "powder", "solid"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// ParseState converts a state name into a State.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if strings.EqualFold(n, name) {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", name)
}

// Props is a set of independent element property flags.
type Props uint32

const (
	Meltable Props = 1 << iota
	Flammable
	Explosive
	ExplosivePressure
	Corrosive
	CorrosiveResistant
	LifeDependant
	LifeDecay
	Burning
	Igniter
	Extinguisher
	Destroyed
	Melted
	Breakable
	RedGlow

	NoProps Props = 0
)

var propNames = []struct {
	flag Props
	name string
}{
	{Meltable, "meltable"},
	{Flammable, "flammable"},
	{Explosive, "explosive"},
	{ExplosivePressure, "explosive_pressure"},
	{Corrosive, "corrosive"},
	{CorrosiveResistant, "corrosive_resistant"},
	{LifeDependant, "life_dependant"},
	{LifeDecay, "life_decay"},
	{Burning, "burning"},
	{Igniter, "igniter"},
	{Extinguisher, "extinguisher"},
	{Destroyed, "destroyed"},
	{Melted, "melted"},
	{Breakable, "breakable"},
	{RedGlow, "red_glow"},
}

// Has reports whether every flag in f is set.
func (p Props) Has(f Props) bool { return p&f == f }

// Any reports whether at least one flag in f is set.
func (p Props) Any(f Props) bool { return p&f != 0 }

// Union returns p with the flags of f added.
func (p Props) Union(f Props) Props { return p | f }

// Intersect keeps only the flags present in both sets.
func (p Props) Intersect(f Props) Props { return p & f }

// Without returns p with the flags of f removed.
func (p Props) Without(f Props) Props { return p &^ f }

// Toggle flips the flags of f.
func (p Props) Toggle(f Props) Props { return p ^ f }

// Set adds f in place.
func (p *Props) Set(f Props) { *p |= f }

// Clear removes f in place.
func (p *Props) Clear(f Props) { *p &^= f }

func (p Props) String() string {
	if p == NoProps {
		return "none"
	}
	var parts []string
	for _, pn := range propNames {
		if p.Has(pn.flag) {
			parts = append(parts, pn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseProps folds a list of flag names into a Props set.
func ParseProps(names []string) (Props, error) {
	var out Props
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		found := false
		for _, pn := range propNames {
			if pn.name == name {
				out |= pn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown property %q", raw)
		}
	}
	return out, nil
}
