package metrics

import (
	"math"

	"github.com/san-kum/heatsim/internal/sim"
)

// EnergyResidual tracks the largest gap between the change in stored system energy
// and the heat exchanged with the ambient over a single step.
type EnergyResidual struct {
	name     string
	residual float64
}

func NewEnergyResidual() *EnergyResidual {
	return &EnergyResidual{name: "energy_residual"}
}

func (e *EnergyResidual) Name() string { return e.name }

func (e *EnergyResidual) Observe(r sim.StepReport) {
	delta := r.SystemEnergy(r.After) - r.SystemEnergy(r.Before)
	exchanged := 0.0
	for _, q := range r.Convective {
		exchanged += q
	}
	e.residual = math.Max(e.residual, math.Abs(delta-exchanged))
}

func (e *EnergyResidual) Value() float64 {
	return e.residual
}

func (e *EnergyResidual) Reset() {
	e.residual = 0
}

// ConductionResidual tracks the largest net conduction heat applied in one step.
// Conduction only moves heat between bodies, so anything beyond rounding is a
// bookkeeping error.
type ConductionResidual struct {
	name     string
	residual float64
}

func NewConductionResidual() *ConductionResidual {
	return &ConductionResidual{name: "conduction_residual"}
}

func (c *ConductionResidual) Name() string { return c.name }

func (c *ConductionResidual) Observe(r sim.StepReport) {
	net := 0.0
	for _, q := range r.Conduction {
		net += q
	}
	c.residual = math.Max(c.residual, math.Abs(net))
}

func (c *ConductionResidual) Value() float64 { return c.residual }

func (c *ConductionResidual) Reset() { c.residual = 0 }
