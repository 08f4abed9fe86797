package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/heatsim/internal/thermal"
	"gonum.org/v1/gonum/mat"
)

// Vectors describes bodies as parallel slices, index i being body i.
// Names and Areas are optional; missing names become "body_<i+1>" and a nil Areas uses DefaultArea.
type Vectors struct {
	Names         []string
	Temperatures  []float64
	Masses        []float64
	SpecificHeats []float64
	Areas         []float64
}

// DefaultArea is the surface area given to bodies built without one.
const DefaultArea = 0.1

// FromVectors checks that every slice agrees on the body count before building any body,
// then constructs the bodies and the engine.
func FromVectors(v Vectors, cfg Config, opts ...Option) (*Engine, error) {
	n := len(v.Temperatures)
	if err := sameLength("masses", len(v.Masses), n); err != nil {
		return nil, err
	}
	if err := sameLength("specific heats", len(v.SpecificHeats), n); err != nil {
		return nil, err
	}
	if v.Areas != nil {
		if err := sameLength("areas", len(v.Areas), n); err != nil {
			return nil, err
		}
	}
	if v.Names != nil {
		if err := sameLength("names", len(v.Names), n); err != nil {
			return nil, err
		}
	}
	if err := checkDimensions(cfg, n); err != nil {
		return nil, err
	}

	bodies := make([]*thermal.Body, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("body_%d", i+1)
		if v.Names != nil && v.Names[i] != "" {
			name = v.Names[i]
		}
		area := DefaultArea
		if v.Areas != nil {
			area = v.Areas[i]
		}
		b, err := thermal.NewBody(name, v.Masses[i], v.SpecificHeats[i], area, v.Temperatures[i])
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies[i] = b
	}

	return New(cfg, bodies, opts...)
}

func validateConfig(cfg Config, bodies []*thermal.Body) error {
	if len(bodies) == 0 {
		return fmt.Errorf("%w: at least one body is required", thermal.ErrInvalidParameter)
	}
	for i, b := range bodies {
		if b == nil {
			return fmt.Errorf("%w: body %d is nil", thermal.ErrInvalidParameter, i)
		}
	}
	if err := checkDimensions(cfg, len(bodies)); err != nil {
		return err
	}
	if !positive(cfg.Dt) {
		return fmt.Errorf("%w: dt must be positive, got %g", thermal.ErrInvalidParameter, cfg.Dt)
	}
	if !finite(cfg.AmbientTemperature) {
		return fmt.Errorf("%w: ambient temperature must be finite, got %g", thermal.ErrInvalidParameter, cfg.AmbientTemperature)
	}
	if !positive(cfg.Convection) {
		return fmt.Errorf("%w: convection coefficient must be positive, got %g", thermal.ErrInvalidParameter, cfg.Convection)
	}
	for i, h := range cfg.AmbientCoefficients {
		if !positive(h) {
			return fmt.Errorf("%w: ambient coefficient %d must be positive, got %g", thermal.ErrInvalidParameter, i, h)
		}
	}

	g := cfg.Conductance
	for i := range g {
		for j := range g[i] {
			if !finite(g[i][j]) || g[i][j] < 0 {
				return fmt.Errorf("%w: conductance G[%d][%d] must be finite and non-negative, got %g", thermal.ErrInvalidParameter, i, j, g[i][j])
			}
			if i != j && g[i][j] != g[j][i] {
				return fmt.Errorf("%w: conductance matrix is not symmetric at [%d][%d]", thermal.ErrInvalidParameter, i, j)
			}
		}
	}
	return nil
}

// checkDimensions compares the coefficient vector and conductance matrix with the body count.
func checkDimensions(cfg Config, n int) error {
	if cfg.AmbientCoefficients != nil {
		if err := sameLength("ambient coefficients", len(cfg.AmbientCoefficients), n); err != nil {
			return err
		}
	}
	if cfg.Conductance == nil {
		return nil
	}
	if len(cfg.Conductance) != n {
		return fmt.Errorf("%w: conductance matrix has %d rows, want %dx%d", thermal.ErrConfigMismatch, len(cfg.Conductance), n, n)
	}
	for i, row := range cfg.Conductance {
		if len(row) != n {
			return fmt.Errorf("%w: conductance row %d has %d columns, want %d", thermal.ErrConfigMismatch, i, len(row), n)
		}
	}
	return nil
}

func (e *Engine) validatePair(p Pair) error {
	n := len(e.bodies)
	if p.A < 0 || p.A >= n || p.B < 0 || p.B >= n {
		return fmt.Errorf("%w: pair (%d, %d) out of range for %d bodies", thermal.ErrInvalidParameter, p.A, p.B, n)
	}
	if p.A == p.B {
		return fmt.Errorf("%w: pair needs two distinct bodies, got %d twice", thermal.ErrInvalidParameter, p.A)
	}
	if !positive(p.K) {
		return fmt.Errorf("%w: conductivity must be positive, got %g", thermal.ErrInvalidParameter, p.K)
	}
	if !positive(p.Area) {
		return fmt.Errorf("%w: contact area must be positive, got %g", thermal.ErrInvalidParameter, p.Area)
	}
	if !positive(p.Thickness) {
		return fmt.Errorf("%w: thickness must be positive, got %g", thermal.ErrInvalidParameter, p.Thickness)
	}
	return nil
}

func sameLength(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %d %s for %d bodies", thermal.ErrConfigMismatch, got, what, want)
	}
	return nil
}

// symmetric copies an already validated square matrix into a SymDense.
func symmetric(g [][]float64) *mat.SymDense {
	n := len(g)
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if i == j {
				continue
			}
			s.SetSym(i, j, g[i][j])
		}
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
