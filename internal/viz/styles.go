package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel       lipgloss.Style
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	HotValue    lipgloss.Style
	ColdValue   lipgloss.Style
	KeyHint     lipgloss.Style
	Selected    lipgloss.Style
	ErrorText   lipgloss.Style
)

func init() {
	refreshStyles()
}

func refreshStyles() {
	t := CurrentTheme

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	MetricLabel = lipgloss.NewStyle().
		Foreground(t.Muted)

	MetricValue = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	HotValue = lipgloss.NewStyle().
		Foreground(t.Hot).
		Bold(true)

	ColdValue = lipgloss.NewStyle().
		Foreground(t.Cold).
		Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	ErrorText = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff4444"))
}

// ProgressBar renders percent in [0, 1] as a bar of the given width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return Selected.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}

// Sparkline renders a one-line sketch of values, sampled to fit width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[min(max(idx, 0), len(chars)-1)])
	}
	return b.String()
}
