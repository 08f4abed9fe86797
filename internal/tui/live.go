package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/heatsim/internal/sim"
)

const (
	barWidth    = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is an engine observer that redraws one temperature bar per body,
// at most frameRate times per second. Bars span the range seen so far.
type LiveRenderer struct {
	out       io.Writer
	names     []string
	frameRate int
	lastFrame time.Time
	lo, hi    float64
	frames    int
}

func NewLiveRenderer(out io.Writer, names []string, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		names:     names,
		frameRate: frameRate,
		lo:        math.Inf(1),
		hi:        math.Inf(-1),
	}
}

func (r *LiveRenderer) OnStep(rep sim.StepReport) {
	for _, t := range rep.After {
		r.lo = math.Min(r.lo, t)
		r.hi = math.Max(r.hi, t)
	}
	for _, t := range rep.Before {
		r.lo = math.Min(r.lo, t)
		r.hi = math.Max(r.hi, t)
	}

	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(rep)
}

func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) render(rep sim.StepReport) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  step %d  t=%.1fs\n", rep.Step, rep.Time))
	b.WriteString("  " + strings.Repeat("-", barWidth+30) + "\n")

	span := r.hi - r.lo
	for i, t := range rep.After {
		filled := barWidth
		if span > 0 {
			filled = int((t - r.lo) / span * barWidth)
		}
		filled = min(max(filled, 0), barWidth)

		name := fmt.Sprintf("body_%d", i+1)
		if i < len(r.names) {
			name = r.names[i]
		}
		b.WriteString(fmt.Sprintf("  %-14s %s%s %9.3f °C\n",
			name, strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), t))
	}

	b.WriteString("  " + strings.Repeat("-", barWidth+30) + "\n")
	fmt.Fprint(r.out, b.String())
	r.frames++
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
