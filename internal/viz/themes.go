package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines the colour scheme for panels and plots.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Hot     lipgloss.Color
	Cold    lipgloss.Color
	Series  []asciigraph.AnsiColor
}

var (
	ThemeEmber = Theme{
		Name:    "ember",
		Primary: lipgloss.Color("#ff7a18"),
		Accent:  lipgloss.Color("#ffd23f"),
		Text:    lipgloss.Color("#fff5eb"),
		Muted:   lipgloss.Color("#8a6f5a"),
		Hot:     lipgloss.Color("#ff4444"),
		Cold:    lipgloss.Color("#3fa7ff"),
		Series:  []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Orange, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan, asciigraph.Blue},
	}

	ThemeGlacier = Theme{
		Name:    "glacier",
		Primary: lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#a0e7ff"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Hot:     lipgloss.Color("#ff9ff3"),
		Cold:    lipgloss.Color("#00ffff"),
		Series:  []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Blue, asciigraph.Green, asciigraph.Purple, asciigraph.Magenta, asciigraph.Yellow},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Hot:     lipgloss.Color("#ffffff"),
		Cold:    lipgloss.Color("#cccccc"),
		Series:  []asciigraph.AnsiColor{asciigraph.Default},
	}

	CurrentTheme = ThemeEmber

	Themes = []Theme{
		ThemeEmber,
		ThemeGlacier,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to ember.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	refreshStyles()
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// seriesColor cycles through the theme's plot colours.
func (t Theme) seriesColor(i int) asciigraph.AnsiColor {
	if len(t.Series) == 0 {
		return asciigraph.Default
	}
	return t.Series[i%len(t.Series)]
}
