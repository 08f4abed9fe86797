package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heatsim/internal/sim"
)

const (
	DefaultHeight = 15
	DefaultWidth  = 80
)

type PlotOptions struct {
	Height  int
	Width   int
	Caption string
}

func (o PlotOptions) withDefaults(caption string) PlotOptions {
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Caption == "" {
		o.Caption = caption
	}
	return o
}

// PlotTemperatures draws every series on one chart. Empty series are skipped;
// an empty string is returned when nothing is left to draw.
func PlotTemperatures(series []sim.Series, opts PlotOptions) string {
	data := make([][]float64, 0, len(series))
	names := make([]string, 0, len(series))
	for _, s := range series {
		if len(s.Temperatures) == 0 {
			continue
		}
		data = append(data, s.Temperatures)
		names = append(names, s.Name)
	}
	return plot(data, names, opts.withDefaults(caption("temperature (°C)", series)))
}

// PlotEnergy draws the heat each body gained since the first sample,
// capacities[i]·(T − T₀), in kJ. Negative values are heat lost.
func PlotEnergy(series []sim.Series, capacities []float64, opts PlotOptions) (string, error) {
	if len(capacities) != len(series) {
		return "", fmt.Errorf("%d capacities for %d series", len(capacities), len(series))
	}

	data := make([][]float64, 0, len(series))
	names := make([]string, 0, len(series))
	for i, s := range series {
		if len(s.Temperatures) == 0 {
			continue
		}
		data = append(data, heatGained(s, capacities[i]))
		names = append(names, s.Name)
	}
	return plot(data, names, opts.withDefaults(caption("heat gained (kJ)", series))), nil
}

// heatGained returns C·(T − T₀) in kJ for every sample of s.
func heatGained(s sim.Series, capacity float64) []float64 {
	t0 := s.Temperatures[0]
	kj := make([]float64, len(s.Temperatures))
	for i, t := range s.Temperatures {
		kj[i] = capacity * (t - t0) / 1000
	}
	return kj
}

func plot(data [][]float64, names []string, opts PlotOptions) string {
	if len(data) == 0 {
		return ""
	}

	colors := make([]asciigraph.AnsiColor, len(data))
	for i := range colors {
		colors[i] = CurrentTheme.seriesColor(i)
	}

	options := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(opts.Caption),
		asciigraph.SeriesColors(colors...),
	}
	if len(data) > 1 {
		options = append(options, asciigraph.SeriesLegends(names...))
	}
	return asciigraph.PlotMany(data, options...)
}

func caption(quantity string, series []sim.Series) string {
	for _, s := range series {
		if n := len(s.Times); n > 0 {
			return fmt.Sprintf("%s over %.0f s", quantity, s.Times[n-1])
		}
	}
	return quantity
}
