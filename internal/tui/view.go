package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/viz"
)

var stepTitles = map[step]string{
	stepMaterial:          "step 1  material",
	stepMass:              "step 2  body",
	stepArea:              "step 2  body",
	stepTemperature:       "step 2  body",
	stepAmbient:           "step 3  environment",
	stepCoefficient:       "step 3  environment",
	stepCustomCoefficient: "step 3  environment",
	stepMinutes:           "step 4  simulation",
	stepDt:                "step 4  simulation",
	stepSummary:           "summary",
	stepRunning:           "running",
	stepResult:            "result",
}

func (m Wizard) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("             " + accent.Render("h e a t s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("      " + dim.Render(stepTitles[m.step]) + "\n\n")

	switch m.step {
	case stepMaterial:
		b.WriteString(m.viewMaterials())
	case stepCoefficient:
		b.WriteString(m.viewCoefficients())
	case stepSummary:
		b.WriteString(m.viewSummary())
	case stepRunning:
		b.WriteString("      " + yellow.Render("simulating...") + "\n")
	case stepResult:
		b.WriteString(m.viewResult())
	default:
		b.WriteString(m.viewInput())
	}

	return b.String()
}

func (m Wizard) viewMaterials() string {
	var b strings.Builder
	for i, mat := range m.materials {
		line := fmt.Sprintf("%-18s", mat.Name)
		heat := fmt.Sprintf("%6.0f %s", mat.SpecificHeat, mat.Unit)
		if i == m.cursor {
			b.WriteString("      " + accent.Render("▸ ") + white.Render(line) + dim.Render(heat) + "\n")
		} else {
			b.WriteString("        " + dim.Render(line) + dimmer.Render(heat) + "\n")
		}
	}
	if m.cursor < len(m.materials) {
		b.WriteString("\n      " + dimmer.Render(m.materials[m.cursor].Description) + "\n")
	}
	b.WriteString("\n" + dim.Render("      ↑↓ select   enter choose   q quit") + "\n")
	return b.String()
}

func (m Wizard) viewCoefficients() string {
	var b strings.Builder
	for i := 0; i <= len(m.coefficients); i++ {
		label, value := "custom value", ""
		if i < len(m.coefficients) {
			c := m.coefficients[i]
			label = c.Description
			value = fmt.Sprintf("%g W/m²·K", c.Value)
		}
		line := fmt.Sprintf("%-28s", label)
		if i == m.cursor {
			b.WriteString("      " + accent.Render("▸ ") + white.Render(line) + dim.Render(value) + "\n")
		} else {
			b.WriteString("        " + dim.Render(line) + dimmer.Render(value) + "\n")
		}
	}
	b.WriteString("\n" + dim.Render("      ↑↓ select   enter choose   esc back") + "\n")
	return b.String()
}

func (m Wizard) viewInput() string {
	f := fields[m.step]
	var b strings.Builder

	if m.material.Name != "" {
		b.WriteString(fmt.Sprintf("      %s  %s\n\n",
			white.Render(m.material.Name),
			dim.Render(fmt.Sprintf("c = %g %s", m.material.SpecificHeat, m.material.Unit))))
	}

	bounds := fmt.Sprintf("≥ %g", f.min)
	if f.bounds {
		bounds = fmt.Sprintf("%g to %g", f.min, f.max)
	}
	b.WriteString(fmt.Sprintf("      %s (%s): %s\n",
		white.Render(f.label), f.unit, accent.Render(m.input+"▋")))
	b.WriteString("      " + dimmer.Render(bounds) + "\n")
	if m.step == stepDt {
		b.WriteString("      " + dimmer.Render("smaller steps are more precise but slower; 1 to 10 s is typical") + "\n")
	}
	if m.err != "" {
		b.WriteString("\n      " + red.Render(m.err) + "\n")
	}
	b.WriteString("\n" + dim.Render("      enter confirm   esc back   ctrl+c quit") + "\n")
	return b.String()
}

func (m Wizard) viewSummary() string {
	cfg := m.Scenario()
	body := cfg.Bodies[0]
	row := func(label, value string) string {
		return "        " + dim.Render(fmt.Sprintf("%-22s", label)) + white.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString("      " + accent.Render("body") + "\n")
	b.WriteString(row("name", body.Name))
	b.WriteString(row("mass", fmt.Sprintf("%g kg", body.Mass)))
	b.WriteString(row("specific heat", fmt.Sprintf("%g J/(kg·K)", body.SpecificHeat)))
	b.WriteString(row("area", fmt.Sprintf("%g m²", body.Area)))
	b.WriteString(row("initial temperature", fmt.Sprintf("%g °C", body.Temperature)))
	b.WriteString("\n      " + accent.Render("environment") + "\n")
	b.WriteString(row("temperature", fmt.Sprintf("%g °C", cfg.Ambient.Temperature)))
	b.WriteString(row("convection", fmt.Sprintf("%g W/m²·K", cfg.Ambient.Convection)))
	b.WriteString("\n      " + accent.Render("simulation") + "\n")
	b.WriteString(row("total time", fmt.Sprintf("%.1f min (%.0f s)", cfg.Duration/60, cfg.Duration)))
	b.WriteString(row("time step", fmt.Sprintf("%g s", cfg.Dt)))
	b.WriteString(row("steps", fmt.Sprintf("%d", int(cfg.Duration/cfg.Dt))))
	b.WriteString("\n" + dim.Render("      enter run   esc back   q quit") + "\n")
	return b.String()
}

func (m Wizard) viewResult() string {
	var b strings.Builder

	if m.runErr != nil {
		b.WriteString("      " + red.Render("simulation failed: "+m.runErr.Error()) + "\n")
	}
	if m.result != nil && len(m.result.Series) > 0 {
		s := m.result.Series[0]
		initial, final := s.Temperatures[0], s.Final()
		ambient := m.values[stepAmbient]
		gap := math.Abs(final - ambient)

		b.WriteString(fmt.Sprintf("        %s%s\n", dim.Render(fmt.Sprintf("%-22s", "initial temperature")), white.Render(fmt.Sprintf("%.2f °C", initial))))
		b.WriteString(fmt.Sprintf("        %s%s\n", dim.Render(fmt.Sprintf("%-22s", "final temperature")), white.Render(fmt.Sprintf("%.2f °C", final))))
		b.WriteString(fmt.Sprintf("        %s%s\n", dim.Render(fmt.Sprintf("%-22s", "total variation")), white.Render(fmt.Sprintf("%+.2f °C", final-initial))))
		b.WriteString(fmt.Sprintf("        %s%s\n", dim.Render(fmt.Sprintf("%-22s", "gap to ambient")), white.Render(fmt.Sprintf("%.2f °C", gap))))

		verdict := metrics.Verdict(gap)
		switch {
		case gap < metrics.EquilibriumReached:
			verdict = green.Render(verdict)
		case gap < metrics.EquilibriumNear:
			verdict = yellow.Render(verdict)
		default:
			verdict = red.Render(fmt.Sprintf("%s (%.1f °C left)", verdict, gap))
		}
		b.WriteString("\n      " + verdict + "\n\n")

		width := m.width - 16
		if width > 70 {
			width = 70
		}
		if width < 20 {
			width = 20
		}
		chart := viz.PlotTemperatures(m.result.Series, viz.PlotOptions{Height: 10, Width: width})
		for _, line := range strings.Split(chart, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	if m.runID != "" {
		b.WriteString("\n      " + dimmer.Render("saved as "+m.runID) + "\n")
	}
	b.WriteString("\n" + dim.Render("      r restart   q quit") + "\n")
	return b.String()
}
