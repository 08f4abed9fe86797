package thermal

import (
	"fmt"
	"math"
)

// Sample is one recorded point of a body's temperature history.
type Sample struct {
	Time        float64
	Temperature float64
}

// Body is an isothermal body exchanging heat through its surface.
type Body struct {
	name         string
	mass         float64
	specificHeat float64
	area         float64
	initial      float64
	temperature  float64
	history      []Sample
}

// NewBody validates the physical parameters and seeds the history with t=0.
func NewBody(name string, mass, specificHeat, area, initialTemp float64) (*Body, error) {
	if !positive(mass) {
		return nil, invalid("mass must be positive, got %g", mass)
	}
	if !positive(specificHeat) {
		return nil, invalid("specific heat must be positive, got %g", specificHeat)
	}
	if !positive(area) {
		return nil, invalid("surface area must be positive, got %g", area)
	}
	if math.IsNaN(initialTemp) || math.IsInf(initialTemp, 0) {
		return nil, invalid("initial temperature must be finite, got %g", initialTemp)
	}

	return &Body{
		name:         name,
		mass:         mass,
		specificHeat: specificHeat,
		area:         area,
		initial:      initialTemp,
		temperature:  initialTemp,
		history:      []Sample{{Time: 0, Temperature: initialTemp}},
	}, nil
}

func (b *Body) Name() string          { return b.name }
func (b *Body) Mass() float64         { return b.mass }
func (b *Body) SpecificHeat() float64 { return b.specificHeat }
func (b *Body) Area() float64         { return b.area }
func (b *Body) Temperature() float64  { return b.temperature }

// HeatCapacity returns m·c in J/K.
func (b *Body) HeatCapacity() float64 {
	return b.mass * b.specificHeat
}

// ApplyHeat changes the temperature by deltaQ / C. Positive deltaQ heats the body.
func (b *Body) ApplyHeat(deltaQ float64) {
	b.temperature += deltaQ / b.HeatCapacity()
}

// RecordState appends the current temperature at time t.
func (b *Body) RecordState(t float64) {
	b.history = append(b.history, Sample{Time: t, Temperature: b.temperature})
}

// StoredHeat returns the heat gained since creation, C·(T − T₀).
func (b *Body) StoredHeat() float64 {
	return b.HeatCapacity() * (b.temperature - b.initial)
}

// History returns a copy of the recorded samples.
func (b *Body) History() []Sample {
	h := make([]Sample, len(b.history))
	copy(h, b.history)
	return h
}

func (b *Body) Times() []float64 {
	out := make([]float64, len(b.history))
	for i, s := range b.history {
		out[i] = s.Time
	}
	return out
}

func (b *Body) Temperatures() []float64 {
	out := make([]float64, len(b.history))
	for i, s := range b.history {
		out[i] = s.Temperature
	}
	return out
}

func (b *Body) String() string {
	return fmt.Sprintf("%s: T=%.2f°C, m=%gkg, c=%gJ/(kg·K)", b.name, b.temperature, b.mass, b.specificHeat)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
