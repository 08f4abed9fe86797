package materials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/heatsim/internal/thermal"
)

func TestLoadBuiltin(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.List()) == 0 {
		t.Fatal("expected materials in builtin catalog")
	}
	if len(c.ListCoefficients()) == 0 {
		t.Fatal("expected convection coefficients in builtin catalog")
	}
}

func TestLookup(t *testing.T) {
	c, _ := Load()

	tests := []struct {
		query        string
		name         string
		specificHeat float64
	}{
		{"1", "Aluminium", 900},
		{"copper", "Copper", 385},
		{"  WATER ", "Water", 4186},
		{"Stainless Steel", "Stainless steel", 500},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m, err := c.Lookup(tt.query)
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if m.Name != tt.name || m.SpecificHeat != tt.specificHeat {
				t.Errorf("got %s (%v), want %s (%v)", m.Name, m.SpecificHeat, tt.name, tt.specificHeat)
			}
		})
	}
}

func TestLookup_NotFound(t *testing.T) {
	c, _ := Load()

	for _, q := range []string{"99", "unobtainium", ""} {
		if _, err := c.Lookup(q); !errors.Is(err, thermal.ErrLookupNotFound) {
			t.Errorf("%q: expected ErrLookupNotFound, got %v", q, err)
		}
	}
	if _, err := c.Coefficient("vacuum"); !errors.Is(err, thermal.ErrLookupNotFound) {
		t.Errorf("expected ErrLookupNotFound, got %v", err)
	}
}

func TestCoefficient(t *testing.T) {
	c, _ := Load()
	co, err := c.Coefficient("still_air")
	if err != nil {
		t.Fatalf("coefficient: %v", err)
	}
	if co.Value != 10 {
		t.Errorf("expected 10, got %v", co.Value)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.json")
	data := `{"materials": [{"id": 7, "name": "Lead", "specific_heat": 128, "density": 11340}], "convection_coefficients": [{"key": "oil", "description": "Oil bath", "value": 100}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	m, err := c.ByID(7)
	if err != nil || m.SpecificHeat != 128 {
		t.Errorf("unexpected material %+v, err %v", m, err)
	}
	if n := len(c.List()); n != 1 {
		t.Errorf("expected one material, got %d", n)
	}
}

func TestParse_RejectsEmptyCatalog(t *testing.T) {
	for _, doc := range []string{"", "convection_coefficients:\n  - key: fan\n    value: 50\n"} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, thermal.ErrInvalidParameter) {
			t.Errorf("Parse(%q): expected ErrInvalidParameter, got %v", doc, err)
		}
	}
}

func TestParse_RejectsNonPositiveSpecificHeat(t *testing.T) {
	_, err := Parse([]byte("materials:\n  - id: 1\n    name: Bad\n    specific_heat: 0\n"))
	if !errors.Is(err, thermal.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
