package powder

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"powder/internal/core"
)

//go:embed materials.yaml
var defaultMaterials []byte

// MaterialID identifies a material template. Zero is the empty cell.
type MaterialID int

const (
	// NoTransition marks a threshold bound without a configured target.
	NoTransition MaterialID = -1
	// None is the empty cell and the target used to destroy an element.
	None MaterialID = 0
)

// Transition pairs a threshold with the material that replaces an element
// once the threshold is crossed.
type Transition struct {
	At float64
	To MaterialID
}

// Transitions holds the four threshold bounds of a material.
type Transitions struct {
	LowPressure     Transition
	HighPressure    Transition
	LowTemperature  Transition
	HighTemperature Transition
}

// Behavior carries optional per-material hooks. Materials without hooks
// behave purely through their property flags.
type Behavior struct {
	OnSpawn  func(e *Element, rng *core.RNG)
	OnUpdate func(w *World, e *Element)
}

var behaviors = map[string]Behavior{}

// RegisterBehavior attaches hooks to the material with the given name. It is
// consulted when a registry is loaded.
func RegisterBehavior(name string, b Behavior) {
	behaviors[strings.ToLower(name)] = b
}

// Material is the template every element instance is copied from.
type Material struct {
	ID          MaterialID
	Name        string
	Description string
	Colors      []color.RGBA
	State       State
	Props       Props

	Mass                  float64
	Temperature           float64
	ThermalCond           float64
	SpecificHeat          float64
	Flammability          float64
	Restitution           float64
	DragCoef              float64
	GasGravity            float64
	GasPressure           float64
	Life                  float64
	Endurance             int
	PileThreshold         int
	MeltingTemperature    float64
	BreakPressure         float64
	CombustionTemperature float64

	Transitions Transitions

	behavior Behavior
}

// HighTemperatureBound is the temperature the material glows up to: the high
// temperature transition when one is configured, the melting point for
// meltable materials and 1100 K otherwise.
func (m *Material) HighTemperatureBound() float64 {
	switch {
	case m.Transitions.HighTemperature.To != NoTransition:
		return m.Transitions.HighTemperature.At
	case m.Props.Has(Meltable):
		return m.MeltingTemperature
	}
	return 1100
}

type transitionSpec struct {
	At *float64 `yaml:"at"`
	To string   `yaml:"to"`
}

type materialSpec struct {
	ID                    int                       `yaml:"id"`
	Name                  string                    `yaml:"name"`
	Description           string                    `yaml:"description"`
	Colors                []string                  `yaml:"colors"`
	State                 string                    `yaml:"state"`
	Props                 []string                  `yaml:"props"`
	Mass                  *float64                  `yaml:"mass"`
	Temperature           *float64                  `yaml:"temperature"`
	ThermalCond           float64                   `yaml:"thermal_cond"`
	SpecificHeat          *float64                  `yaml:"specific_heat"`
	Flammability          *float64                  `yaml:"flammability"`
	Restitution           *float64                  `yaml:"restitution"`
	DragCoef              *float64                  `yaml:"drag_coef"`
	GasGravity            *float64                  `yaml:"gas_gravity"`
	GasPressure           float64                   `yaml:"gas_pressure"`
	Life                  *float64                  `yaml:"life"`
	Endurance             int                       `yaml:"endurance"`
	PileThreshold         *int                      `yaml:"pile_threshold"`
	MeltingTemperature    *float64                  `yaml:"melting_temperature"`
	BreakPressure         *float64                  `yaml:"break_pressure"`
	CombustionTemperature *float64                  `yaml:"combustion_temperature"`
	Transitions           map[string]transitionSpec `yaml:"transitions"`
}

type materialFile struct {
	Materials []materialSpec `yaml:"materials"`
}

// Registry maps material identifiers and names to templates.
type Registry struct {
	byID   map[MaterialID]*Material
	byName map[string]MaterialID
	order  []MaterialID
	fire   MaterialID
}

// DefaultRegistry parses the embedded material table.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(defaultMaterials)
}

// LoadRegistryFile reads a material table from disk.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("powder: read materials: %w", err)
	}
	return LoadRegistry(data)
}

// LoadRegistry parses and validates a YAML material table.
func LoadRegistry(data []byte) (*Registry, error) {
	var file materialFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("powder: parse materials: %w", err)
	}
	if len(file.Materials) == 0 {
		return nil, fmt.Errorf("%w: empty material table", ErrInvalidMaterial)
	}

	r := &Registry{
		byID:   make(map[MaterialID]*Material, len(file.Materials)),
		byName: make(map[string]MaterialID, len(file.Materials)),
	}
	// Names first so transitions can point at materials declared later.
	for _, spec := range file.Materials {
		name := strings.ToLower(strings.TrimSpace(spec.Name))
		id := MaterialID(spec.ID)
		if name == "" {
			return nil, fmt.Errorf("%w: material %d has no name", ErrInvalidMaterial, spec.ID)
		}
		if id <= None || id > 255 {
			return nil, fmt.Errorf("%w: %s: id must be in [1, 255]", ErrInvalidMaterial, name)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidMaterial, name)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidMaterial, id)
		}
		r.byName[name] = id
		r.byID[id] = nil
	}
	for _, spec := range file.Materials {
		m, err := r.build(spec)
		if err != nil {
			return nil, err
		}
		r.byID[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })

	fire, ok := r.byName["fire"]
	if !ok {
		return nil, fmt.Errorf("%w: table has no fire material", ErrInvalidMaterial)
	}
	r.fire = fire
	return r, nil
}

func (r *Registry) build(spec materialSpec) (*Material, error) {
	name := strings.ToLower(strings.TrimSpace(spec.Name))
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidMaterial, name, fmt.Sprintf(format, args...))
	}

	state, err := ParseState(spec.State)
	if err != nil {
		return nil, fail("%v", err)
	}
	props, err := ParseProps(spec.Props)
	if err != nil {
		return nil, fail("%v", err)
	}
	if len(spec.Colors) == 0 {
		return nil, fail("no colors")
	}
	colors := make([]color.RGBA, 0, len(spec.Colors))
	for _, hex := range spec.Colors {
		c, err := parseHexColor(hex)
		if err != nil {
			return nil, fail("%v", err)
		}
		colors = append(colors, c)
	}

	m := &Material{
		ID:                    MaterialID(spec.ID),
		Name:                  name,
		Description:           spec.Description,
		Colors:                colors,
		State:                 state,
		Props:                 props,
		Mass:                  orFloat(spec.Mass, 1),
		Temperature:           orFloat(spec.Temperature, 293.15),
		ThermalCond:           spec.ThermalCond,
		SpecificHeat:          orFloat(spec.SpecificHeat, 1),
		Flammability:          orFloat(spec.Flammability, 1),
		Restitution:           orFloat(spec.Restitution, 0.6),
		DragCoef:              orFloat(spec.DragCoef, 0.47),
		GasGravity:            orFloat(spec.GasGravity, 1),
		GasPressure:           spec.GasPressure,
		Life:                  orFloat(spec.Life, 100),
		Endurance:             spec.Endurance,
		PileThreshold:         1,
		MeltingTemperature:    orFloat(spec.MeltingTemperature, MaxTemperature),
		BreakPressure:         orFloat(spec.BreakPressure, MaxTemperature),
		CombustionTemperature: orFloat(spec.CombustionTemperature, MaxTemperature),
		Transitions: Transitions{
			LowPressure:     Transition{At: -300, To: NoTransition},
			HighPressure:    Transition{At: 300, To: NoTransition},
			LowTemperature:  Transition{At: -1, To: NoTransition},
			HighTemperature: Transition{At: MaxTemperature, To: NoTransition},
		},
		behavior: behaviors[name],
	}
	if spec.PileThreshold != nil {
		m.PileThreshold = *spec.PileThreshold
	}
	if m.Mass <= 0 {
		return nil, fail("mass must be positive")
	}
	if m.SpecificHeat <= 0 {
		return nil, fail("specific heat must be positive")
	}
	if m.Endurance < 0 || m.Endurance > 1000 {
		return nil, fail("endurance %d outside [0, 1000]", m.Endurance)
	}

	for key, ts := range spec.Transitions {
		var slot *Transition
		switch key {
		case "low_pressure":
			slot = &m.Transitions.LowPressure
		case "high_pressure":
			slot = &m.Transitions.HighPressure
		case "low_temperature":
			slot = &m.Transitions.LowTemperature
		case "high_temperature":
			slot = &m.Transitions.HighTemperature
		default:
			return nil, fail("unknown transition %q", key)
		}
		if ts.At != nil {
			slot.At = *ts.At
		}
		if ts.To == "" {
			continue
		}
		target := strings.ToLower(strings.TrimSpace(ts.To))
		switch target {
		case "none":
			slot.To = NoTransition
			continue
		case "destroy":
			slot.To = None
			continue
		}
		id, ok := r.byName[target]
		if !ok {
			return nil, fail("transition %s targets unknown material %q", key, ts.To)
		}
		slot.To = id
	}
	return m, nil
}

// Get returns the template for id.
func (r *Registry) Get(id MaterialID) (*Material, bool) {
	m, ok := r.byID[id]
	return m, ok && m != nil
}

// Lookup resolves a material name, case-insensitively.
func (r *Registry) Lookup(name string) (MaterialID, bool) {
	id, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// MustLookup resolves a name that is known to exist in the table.
func (r *Registry) MustLookup(name string) MaterialID {
	id, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("powder: unknown material %q", name))
	}
	return id
}

// Fire is the material used for spawned flames and explosions.
func (r *Registry) Fire() MaterialID { return r.fire }

// Materials lists templates ordered by id.
func (r *Registry) Materials() []*Material {
	out := make([]*Material, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of templates.
func (r *Registry) Len() int { return len(r.order) }

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
