package powder

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"powder/internal/field"
)

//go:embed powder.yaml
var defaultConfigYAML []byte

// Params holds the physical tunables of a world.
type Params struct {
	// TimeStep is the dt used by Step, in seconds.
	TimeStep float64 `yaml:"time_step"`
	// Scale is the cell size in meters; velocities are divided by it when
	// converting to cell displacements.
	Scale float64 `yaml:"scale"`
	// HeatCoef scales every heat exchange.
	HeatCoef          float64 `yaml:"heat_coef"`
	AirDensity        float64 `yaml:"air_density"`
	ExplosionPressure float64 `yaml:"explosion_pressure"`
	ExplosionLimit    float64 `yaml:"explosion_limit"`

	Gravity field.GravityConfig `yaml:"gravity"`
	Air     field.AirConfig     `yaml:"air"`
}

// Config controls world dimensions, seeding and physics.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`
	// Scene names the layout seeded by Reset: "empty" or "sandbox".
	Scene string `yaml:"scene"`
	// Materials optionally points at a YAML material table replacing the
	// embedded one.
	Materials string `yaml:"materials"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  200,
		Height: 150,
		Seed:   1337,
		Scene:  "sandbox",
		Params: Params{
			TimeStep:          1.0 / 60.0,
			Scale:             0.1,
			HeatCoef:          1,
			AirDensity:        1.225,
			ExplosionPressure: 0.25,
			ExplosionLimit:    2.5,
			Gravity:           field.DefaultGravityConfig(),
			Air:               field.DefaultAirConfig(),
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overrides fields of c from flag-style key/value pairs. Unknown keys
// and unparsable values are ignored.
func ApplyMap(c Config, cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	p := &c.Params
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scene"]; ok && v != "" {
		c.Scene = strings.ToLower(v)
	}
	if v, ok := cfg["materials"]; ok {
		c.Materials = v
	}
	positive := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	nonNegative := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	anyFloat := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	positiveInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				*dst = parsed
			}
		}
	}

	positive("dt", &p.TimeStep)
	positive("scale", &p.Scale)
	nonNegative("heat_coef", &p.HeatCoef)
	nonNegative("air_density", &p.AirDensity)
	nonNegative("explosion_pressure", &p.ExplosionPressure)
	nonNegative("explosion_limit", &p.ExplosionLimit)

	positiveInt("grav_cell", &p.Gravity.CellSize)
	nonNegative("g", &p.Gravity.G)
	nonNegative("mass_th", &p.Gravity.MassThreshold)
	positiveInt("dist_th", &p.Gravity.DistanceThreshold)
	anyFloat("gravity", &p.Gravity.Base.Y)
	anyFloat("gravity_x", &p.Gravity.Base.X)
	boolean("neutral_gravity", &p.Gravity.Neutral)

	positiveInt("air_cell", &p.Air.CellSize)
	nonNegative("diffusion", &p.Air.DiffusionRate)
	nonNegative("pressure_decay", &p.Air.PressureDecay)
	nonNegative("ambient_temperature", &p.Air.AmbientTemperature)
	nonNegative("temperature_decay", &p.Air.TemperatureDecay)
	positive("air_heat_capacity", &p.Air.HeatCapacity)
	nonNegative("air_conductivity", &p.Air.Conductivity)
	boolean("ambient_heat", &p.Air.AmbientHeat)
	anyFloat("air_force", &p.Air.ForceScale)

	if p.Air.DiffusionRate > 1 {
		p.Air.DiffusionRate = 1
	}
	return c
}

// LoadConfig loads a world configuration.
// Search order: customPath -> ~/.powder/config.yaml -> ./configs/powder.yaml -> embedded default
// Files only need to carry the keys they change.
func LoadConfig(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("powder: read config %s: %w", customPath, err)
		}
		cfg, err := parseConfig(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("powder: parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userPath := userConfigPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := parseConfig(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "powder.yaml")); err == nil {
		if cfg, err := parseConfig(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseConfig(defaultConfigYAML)
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("grid size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	if cfg.Params.TimeStep <= 0 || cfg.Params.Scale <= 0 {
		return cfg, fmt.Errorf("time_step and scale must be positive")
	}
	return cfg, nil
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".powder", "config.yaml")
}
