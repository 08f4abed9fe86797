package metrics

import (
	"math"

	"github.com/san-kum/heatsim/internal/sim"
)

const (
	EquilibriumReached = 1.0
	EquilibriumNear    = 5.0
)

// AmbientGap reports the largest |T - T_ambient| across bodies at the last observed step.
type AmbientGap struct {
	name    string
	ambient float64
	gap     float64
}

func NewAmbientGap(ambient float64) *AmbientGap {
	return &AmbientGap{
		name:    "ambient_gap",
		ambient: ambient,
	}
}

func (a *AmbientGap) Name() string {
	return a.name
}

func (a *AmbientGap) Observe(r sim.StepReport) {
	a.gap = 0
	for _, t := range r.After {
		a.gap = math.Max(a.gap, math.Abs(t-a.ambient))
	}
}

func (a *AmbientGap) Value() float64 {
	return a.gap
}

func (a *AmbientGap) Reset() {
	a.gap = 0
}

// Verdict classifies a gap to the ambient the way the summary screens print it.
func Verdict(gap float64) string {
	switch {
	case gap < EquilibriumReached:
		return "thermal equilibrium reached"
	case gap < EquilibriumNear:
		return "close to thermal equilibrium"
	default:
		return "still away from ambient"
	}
}

// Defaults returns the metrics every command attaches to an engine.
func Defaults(ambient float64) []sim.Metric {
	return []sim.Metric{
		NewEnergyResidual(),
		NewConductionResidual(),
		NewAmbientExchange(),
		NewAmbientGap(ambient),
	}
}
