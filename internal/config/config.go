package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/heatsim/internal/materials"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/thermal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0
	DefaultDuration    = 600.0
	DefaultAmbient     = 25.0
	DefaultConvection  = 10.0
	DefaultArea        = 0.1
	DefaultMass        = 1.0
	DefaultTemperature = 100.0
	DefaultMaterial    = "Aluminium"
)

type Config struct {
	Mode        string        `yaml:"mode"`
	Dt          float64       `yaml:"dt"`
	Duration    float64       `yaml:"duration"`
	Ambient     AmbientConfig `yaml:"ambient"`
	Bodies      []BodyConfig  `yaml:"bodies"`
	Conductance [][]float64   `yaml:"conductance,omitempty"`
	Pair        PairConfig    `yaml:"pair"`
}

type AmbientConfig struct {
	Temperature  float64   `yaml:"temperature"`
	Convection   float64   `yaml:"convection"`
	Coefficients []float64 `yaml:"coefficients,omitempty"`
}

type BodyConfig struct {
	Name         string  `yaml:"name"`
	Material     string  `yaml:"material,omitempty"`
	Mass         float64 `yaml:"mass"`
	SpecificHeat float64 `yaml:"specific_heat,omitempty"`
	Area         float64 `yaml:"area"`
	Temperature  float64 `yaml:"temperature"`
}

type PairConfig struct {
	A         int     `yaml:"a"`
	B         int     `yaml:"b"`
	K         float64 `yaml:"k"`
	Area      float64 `yaml:"area"`
	Thickness float64 `yaml:"thickness"`
}

func DefaultConfig() *Config {
	p := sim.DefaultPair()
	return &Config{
		Mode:     sim.ModeAmbient.String(),
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Ambient: AmbientConfig{
			Temperature: DefaultAmbient,
			Convection:  DefaultConvection,
		},
		Bodies: []BodyConfig{
			{Name: DefaultMaterial, Material: DefaultMaterial, Mass: DefaultMass, Area: DefaultArea, Temperature: DefaultTemperature},
		},
		Pair: PairConfig{A: p.A, B: p.B, K: p.K, Area: p.Area, Thickness: p.Thickness},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseMode maps a mode name to the engine's stepping mode.
func ParseMode(name string) (sim.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ambient":
		return sim.ModeAmbient, nil
	case "pair", "conduction":
		return sim.ModePair, nil
	case "coupled", "multibody":
		return sim.ModeCoupled, nil
	}
	return sim.ModeAmbient, fmt.Errorf("%w: unknown mode %q", thermal.ErrInvalidParameter, name)
}

// Resolve fills missing specific heats from the material catalog.
func (c *Config) Resolve(cat *materials.Catalog) error {
	for i := range c.Bodies {
		b := &c.Bodies[i]
		if b.SpecificHeat > 0 || b.Material == "" {
			continue
		}
		m, err := cat.Lookup(b.Material)
		if err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
		b.SpecificHeat = m.SpecificHeat
		if b.Name == "" {
			b.Name = m.Name
		}
	}
	return nil
}

// Validate checks the scenario before any engine is built. The engine repeats the
// dimension and positivity checks on its own.
func (c *Config) Validate() error {
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", thermal.ErrInvalidParameter, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", thermal.ErrInvalidParameter, c.Duration)
	}
	n := len(c.Bodies)
	if n == 0 {
		return fmt.Errorf("%w: no bodies configured", thermal.ErrInvalidParameter)
	}
	for i, b := range c.Bodies {
		if !(b.Mass > 0) {
			return fmt.Errorf("%w: body %d mass must be positive, got %g", thermal.ErrInvalidParameter, i, b.Mass)
		}
		if !(b.SpecificHeat > 0) {
			return fmt.Errorf("%w: body %d needs a positive specific heat or a known material", thermal.ErrInvalidParameter, i)
		}
		if !(b.Area > 0) {
			return fmt.Errorf("%w: body %d area must be positive, got %g", thermal.ErrInvalidParameter, i, b.Area)
		}
	}
	if c.Ambient.Coefficients != nil && len(c.Ambient.Coefficients) != n {
		return fmt.Errorf("%w: %d ambient coefficients for %d bodies", thermal.ErrConfigMismatch, len(c.Ambient.Coefficients), n)
	}
	if c.Conductance != nil {
		if len(c.Conductance) != n {
			return fmt.Errorf("%w: conductance matrix must be %dx%d", thermal.ErrConfigMismatch, n, n)
		}
		for _, row := range c.Conductance {
			if len(row) != n {
				return fmt.Errorf("%w: conductance matrix must be %dx%d", thermal.ErrConfigMismatch, n, n)
			}
		}
	}

	switch mode {
	case sim.ModeCoupled:
		if c.Conductance == nil {
			return fmt.Errorf("%w: coupled mode needs a conductance matrix", thermal.ErrInvalidParameter)
		}
	case sim.ModePair:
		if n < 2 {
			return fmt.Errorf("%w: pair mode needs two bodies, got %d", thermal.ErrConfigMismatch, n)
		}
	}
	return nil
}

func (c *Config) SimConfig() sim.Config {
	cfg := sim.Config{
		Dt:                  c.Dt,
		AmbientTemperature:  c.Ambient.Temperature,
		Convection:          c.Ambient.Convection,
		AmbientCoefficients: c.Ambient.Coefficients,
	}
	if mode, _ := ParseMode(c.Mode); mode == sim.ModeCoupled {
		cfg.Conductance = c.Conductance
	}
	return cfg
}

func (c *Config) Vectors() sim.Vectors {
	v := sim.Vectors{}
	for _, b := range c.Bodies {
		v.Names = append(v.Names, b.Name)
		v.Temperatures = append(v.Temperatures, b.Temperature)
		v.Masses = append(v.Masses, b.Mass)
		v.SpecificHeats = append(v.SpecificHeats, b.SpecificHeat)
		v.Areas = append(v.Areas, b.Area)
	}
	return v
}

func (c *Config) PairParams() sim.Pair {
	return sim.Pair{A: c.Pair.A, B: c.Pair.B, K: c.Pair.K, Area: c.Pair.Area, Thickness: c.Pair.Thickness}
}

// Clone returns a deep copy so presets can be edited safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	if c.Ambient.Coefficients != nil {
		out.Ambient.Coefficients = append([]float64(nil), c.Ambient.Coefficients...)
	}
	if c.Conductance != nil {
		out.Conductance = make([][]float64, len(c.Conductance))
		for i, row := range c.Conductance {
			out.Conductance[i] = append([]float64(nil), row...)
		}
	}
	return &out
}
