// Package materials looks up thermal properties of common materials and typical
// convection coefficients. The built-in catalog is embedded; a YAML or JSON file with
// the same layout can replace it.
package materials

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/heatsim/internal/thermal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

type Material struct {
	ID           int      `yaml:"id"`
	Name         string   `yaml:"name"`
	SpecificHeat float64  `yaml:"specific_heat"`
	Unit         string   `yaml:"unit"`
	Density      float64  `yaml:"density"`
	Description  string   `yaml:"description"`
	Applications []string `yaml:"applications"`
}

type Coefficient struct {
	Key         string  `yaml:"key"`
	Description string  `yaml:"description"`
	Value       float64 `yaml:"value"`
	Range       string  `yaml:"range"`
}

type Catalog struct {
	Materials    []Material    `yaml:"materials"`
	Coefficients []Coefficient `yaml:"convection_coefficients"`
}

// Load returns the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(builtin)
}

// LoadFile reads a catalog from path. JSON files parse too since JSON is valid YAML.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse material catalog: %w", err)
	}
	if len(c.Materials) == 0 {
		return nil, fmt.Errorf("%w: material catalog lists no materials", thermal.ErrInvalidParameter)
	}
	for _, m := range c.Materials {
		if !(m.SpecificHeat > 0) {
			return nil, fmt.Errorf("%w: material %q has specific heat %g", thermal.ErrInvalidParameter, m.Name, m.SpecificHeat)
		}
	}
	return &c, nil
}

func (c *Catalog) List() []Material {
	out := make([]Material, len(c.Materials))
	copy(out, c.Materials)
	return out
}

func (c *Catalog) ByID(id int) (Material, error) {
	for _, m := range c.Materials {
		if m.ID == id {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: material %d", thermal.ErrLookupNotFound, id)
}

// ByName matches case-insensitively.
func (c *Catalog) ByName(name string) (Material, error) {
	for _, m := range c.Materials {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: material %q", thermal.ErrLookupNotFound, name)
}

// Lookup treats a numeric identifier as an ID and anything else as a name.
func (c *Catalog) Lookup(idOrName string) (Material, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(idOrName)); err == nil {
		return c.ByID(id)
	}
	return c.ByName(idOrName)
}

func (c *Catalog) ListCoefficients() []Coefficient {
	out := make([]Coefficient, len(c.Coefficients))
	copy(out, c.Coefficients)
	return out
}

func (c *Catalog) Coefficient(key string) (Coefficient, error) {
	for _, co := range c.Coefficients {
		if co.Key == key {
			return co, nil
		}
	}
	return Coefficient{}, fmt.Errorf("%w: convection coefficient %q", thermal.ErrLookupNotFound, key)
}
