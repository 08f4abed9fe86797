package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/thermal"
)

// SweepPoint is one time step of a convergence sweep.
type SweepPoint struct {
	Dt        float64
	Steps     int
	Elapsed   float64
	Final     []float64
	Deviation float64
	Unstable  bool
}

// Analytical returns the exact lumped-capacitance temperature of a body cooling
// towards ambient with coefficient h, after t seconds.
func Analytical(b config.BodyConfig, ambient, h, t float64) float64 {
	tau := b.Mass * b.SpecificHeat / (h * b.Area)
	return ambient + (b.Temperature-ambient)*math.Exp(-t/tau)
}

// Sweep reruns the scenario once per dt in parallel. In ambient mode each point is
// compared against the analytical curve; otherwise against the run with the smallest dt,
// sampled at the point's own elapsed time.
func Sweep(ctx context.Context, cfg *config.Config, dts []float64, opts ...sim.Option) ([]SweepPoint, error) {
	if len(dts) == 0 {
		return nil, fmt.Errorf("no time steps to sweep")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := config.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	sorted := append([]float64(nil), dts...)
	sort.Float64s(sorted)

	factories := make([]sim.Factory, len(sorted))
	for i, dt := range sorted {
		c := cfg.Clone()
		c.Dt = dt
		factories[i] = func() (*sim.Engine, error) {
			return sim.FromVectors(c.Vectors(), c.SimConfig(), opts...)
		}
	}

	ens := sim.NewEnsemble(factories...)
	if mode == sim.ModePair {
		ens.WithPair(cfg.PairParams())
	}
	results, errs := ens.RunEach(ctx, cfg.Duration)

	points := make([]SweepPoint, len(results))
	for i, res := range results {
		if errs[i] != nil && !errors.Is(errs[i], thermal.ErrUnstable) {
			return nil, fmt.Errorf("dt %g: %w", sorted[i], errs[i])
		}
		p := SweepPoint{Dt: sorted[i], Steps: res.StepsTaken, Elapsed: res.Elapsed, Unstable: errs[i] != nil}
		for _, s := range res.Series {
			p.Final = append(p.Final, s.Final())
		}
		points[i] = p
	}
	if points[0].Unstable {
		return nil, fmt.Errorf("smallest dt %g diverged: %w", sorted[0], errs[0])
	}
	reference := results[0].Series

	for i := range points {
		p := &points[i]
		if p.Unstable {
			p.Deviation = math.Inf(1)
			continue
		}
		for j, got := range p.Final {
			var want float64
			if mode == sim.ModeAmbient {
				h := cfg.Ambient.Convection
				if cfg.Ambient.Coefficients != nil {
					h = cfg.Ambient.Coefficients[j]
				}
				want = Analytical(cfg.Bodies[j], cfg.Ambient.Temperature, h, p.Elapsed)
			} else {
				want = SampleAt(reference[j], p.Elapsed)
			}
			p.Deviation = math.Max(p.Deviation, math.Abs(got-want))
		}
	}

	return points, nil
}

// SampleAt returns the temperature of s at time t, interpolating linearly between
// recorded samples. Times outside the recorded range clamp to the nearest end.
func SampleAt(s sim.Series, t float64) float64 {
	n := len(s.Times)
	if n == 0 {
		return math.NaN()
	}
	i := sort.SearchFloat64s(s.Times, t)
	switch {
	case i == 0:
		return s.Temperatures[0]
	case i == n:
		return s.Temperatures[n-1]
	case s.Times[i] == t:
		return s.Temperatures[i]
	}
	t0, t1 := s.Times[i-1], s.Times[i]
	w := (t - t0) / (t1 - t0)
	return s.Temperatures[i-1] + w*(s.Temperatures[i]-s.Temperatures[i-1])
}

// LargestStable returns the largest dt whose deviation stays within tolerance.
func LargestStable(points []SweepPoint, tolerance float64) (SweepPoint, bool) {
	best := SweepPoint{Dt: math.Inf(-1)}
	found := false
	for _, p := range points {
		if p.Deviation <= tolerance && p.Dt > best.Dt {
			best = p
			found = true
		}
	}
	return best, found
}
