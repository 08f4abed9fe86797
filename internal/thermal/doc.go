// Package thermal provides the lumped-capacitance primitives for heat exchange simulation.
//
// The package defines the body entity and the rate laws the engine integrates:
//
//   - [Body]: isothermal body with mass, specific heat, surface area and history
//   - [ConvectionRate]: Newton's law of cooling against an ambient fluid
//   - [ConductionRate]: Fourier's law through a contact layer
//   - [HeatOverStep]: heat quantity moved by a constant rate over one step
//
// # Sign convention
//
// Rates are positive when heat flows out of the first temperature argument.
// Heat quantities passed to [Body.ApplyHeat] are positive when the body gains heat.
//
// # Example
//
//	cup, _ := thermal.NewBody("cup", 0.3, 4186, 0.02, 90)
//	rate := thermal.ConvectionRate(10, cup.Area(), cup.Temperature(), 20)
//	cup.ApplyHeat(-thermal.HeatOverStep(rate, 1))
//	cup.RecordState(1)
//
// # Thread Safety
//
// Body is NOT thread-safe. It is written by exactly one engine for its lifetime.
package thermal
