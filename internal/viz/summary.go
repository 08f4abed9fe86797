package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/sim"
)

// Summary renders initial and final temperatures of every body, how far the
// hottest one still is from ambient, and any metrics carried by res.
func Summary(res *sim.Result, ambient float64) string {
	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%s run: %d steps, %.1f s simulated", res.Mode, res.StepsTaken, res.Elapsed)))
	b.WriteString("\n\n")

	gap := 0.0
	for i, s := range res.Series {
		if len(s.Temperatures) == 0 {
			continue
		}
		initial, final := s.Temperatures[0], s.Final()
		gap = math.Max(gap, math.Abs(final-ambient))

		style := ColdValue
		if final > ambient {
			style = HotValue
		}
		change := fmt.Sprintf("(%+.2f)", final-initial)
		if i < len(res.HeatGained) {
			change = fmt.Sprintf("(%+.2f, %+.3g kJ)", final-initial, res.HeatGained[i]/1000)
		}
		b.WriteString(fmt.Sprintf("%s %s → %s  %s\n",
			MetricLabel.Render(fmt.Sprintf("%-16s", s.Name)),
			MetricValue.Render(fmt.Sprintf("%8.2f °C", initial)),
			style.Render(fmt.Sprintf("%8.2f °C", final)),
			Subtle.Render(change),
		))
	}

	b.WriteString("\n")
	b.WriteString(MetricLabel.Render("ambient          "))
	b.WriteString(MetricValue.Render(fmt.Sprintf("%.2f °C", ambient)))
	b.WriteString("\n")
	b.WriteString(MetricLabel.Render("gap to ambient   "))
	b.WriteString(MetricValue.Render(fmt.Sprintf("%.2f °C", gap)))
	b.WriteString("  ")
	b.WriteString(Selected.Render(metrics.Verdict(gap)))

	if res.Unsimulated > 0 {
		b.WriteString("\n")
		b.WriteString(Subtle.Render(fmt.Sprintf("last %.4g s shorter than one step, not simulated", res.Unsimulated)))
	}

	if len(res.Metrics) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderMetrics(res.Metrics))
	}

	return Panel.Render(b.String())
}

func renderMetrics(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]string, len(names))
	for i, name := range names {
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top,
			MetricLabel.Width(22).Render(name),
			MetricValue.Render(fmt.Sprintf("%.6g", values[name])),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
