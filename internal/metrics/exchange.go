package metrics

import "github.com/san-kum/heatsim/internal/sim"

// AmbientExchange accumulates the heat received from the ambient, in joules.
// Negative totals mean the system lost heat.
type AmbientExchange struct {
	name  string
	total float64
}

func NewAmbientExchange() *AmbientExchange {
	return &AmbientExchange{name: "ambient_exchange"}
}

func (a *AmbientExchange) Name() string {
	return a.name
}

func (a *AmbientExchange) Observe(r sim.StepReport) {
	for _, q := range r.Convective {
		a.total += q
	}
}

func (a *AmbientExchange) Value() float64 {
	return a.total
}

func (a *AmbientExchange) Reset() {
	a.total = 0
}
