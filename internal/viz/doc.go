// Package viz renders simulation results for the terminal.
//
// Plots are drawn with asciigraph, one coloured line per body:
//
//   - [PlotTemperatures]: temperature of every body against time
//   - [PlotEnergy]: heat gained by every body since the start, C·(T − T₀), in kilojoules
//
// [Summary] renders a lipgloss panel with initial and final temperatures
// and the equilibrium verdict. All functions are read-only consumers of
// [sim.Series]; none of them touch the engine.
package viz
