package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/materials"
	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
)

var (
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type step int

const (
	stepMaterial step = iota
	stepMass
	stepArea
	stepTemperature
	stepAmbient
	stepCoefficient
	stepCustomCoefficient
	stepMinutes
	stepDt
	stepSummary
	stepRunning
	stepResult
)

// field is one numeric prompt with its accepted range.
type field struct {
	label  string
	unit   string
	min    float64
	max    float64
	bounds bool
}

var fields = map[step]field{
	stepMass:              {label: "mass of the object", unit: "kg", min: 0.001},
	stepArea:              {label: "exposed surface area", unit: "m²", min: 0.0001},
	stepTemperature:       {label: "initial temperature", unit: "°C", min: -273},
	stepAmbient:           {label: "ambient temperature", unit: "°C", min: -273},
	stepCustomCoefficient: {label: "convection coefficient", unit: "W/m²·K", min: 0.01},
	stepMinutes:           {label: "total time", unit: "min", min: 0.1},
	stepDt:                {label: "time step", unit: "s", min: 0.1, max: 60, bounds: true},
}

// Wizard is the bubbletea model that collects a single-body scenario and runs it.
type Wizard struct {
	step   step
	cursor int

	materials    []materials.Material
	coefficients []materials.Coefficient
	material     materials.Material
	custom       bool
	convection   float64

	values map[step]float64
	input  string
	err    string

	result *sim.Result
	runID  string
	runErr error

	store *storage.Store
	log   *slog.Logger

	width  int
	height int
}

type Option func(*Wizard)

// WithStore saves every finished run.
func WithStore(st *storage.Store) Option {
	return func(m *Wizard) { m.store = st }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Wizard) {
		if l != nil {
			m.log = l
		}
	}
}

func NewWizard(cat *materials.Catalog, opts ...Option) Wizard {
	m := Wizard{
		step:         stepMaterial,
		materials:    cat.List(),
		coefficients: cat.ListCoefficients(),
		values: map[step]float64{
			stepMass:              1,
			stepArea:              0.05,
			stepTemperature:       100,
			stepAmbient:           config.DefaultAmbient,
			stepCustomCoefficient: config.DefaultConvection,
			stepMinutes:           10,
			stepDt:                config.DefaultDt,
		},
		log:    slog.New(slog.DiscardHandler),
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Wizard) Init() tea.Cmd { return nil }

type resultMsg struct {
	result *sim.Result
	runID  string
	err    error
}

func (m Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		m.result = msg.result
		m.runID = msg.runID
		m.runErr = msg.err
		m.step = stepResult
		return m, nil
	}
	return m, nil
}

func (m Wizard) handleKey(msg tea.KeyMsg) (Wizard, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.step {
	case stepMaterial:
		return m.listKey(msg, len(m.materials))
	case stepCoefficient:
		return m.listKey(msg, len(m.coefficients)+1)
	case stepSummary:
		return m.summaryKey(msg)
	case stepRunning:
		return m, nil
	case stepResult:
		return m.resultKey(msg)
	}
	return m.inputKey(msg)
}

func (m Wizard) listKey(msg tea.KeyMsg, n int) (Wizard, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m = m.back()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter", " ":
		if n == 0 {
			return m, nil
		}
		if m.step == stepMaterial {
			m.material = m.materials[m.cursor]
		} else {
			m.custom = m.cursor == len(m.coefficients)
			if !m.custom {
				m.convection = m.coefficients[m.cursor].Value
			}
		}
		m = m.advance()
	}
	return m, nil
}

func (m Wizard) inputKey(msg tea.KeyMsg) (Wizard, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v, err := m.parseInput()
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.values[m.step] = v
		if m.step == stepCustomCoefficient {
			m.convection = v
		}
		m = m.advance()
	case "esc":
		m = m.back()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == 'e' {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m Wizard) parseInput() (float64, error) {
	f := fields[m.step]
	v, err := strconv.ParseFloat(strings.TrimSpace(m.input), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("please enter a valid number")
	}
	if v < f.min {
		return 0, fmt.Errorf("value must be at least %g", f.min)
	}
	if f.bounds && v > f.max {
		return 0, fmt.Errorf("value must be at most %g", f.max)
	}
	return v, nil
}

func (m Wizard) summaryKey(msg tea.KeyMsg) (Wizard, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m = m.back()
	case "enter", "s":
		m.step = stepRunning
		return m, m.run(m.Scenario())
	}
	return m, nil
}

func (m Wizard) resultKey(msg tea.KeyMsg) (Wizard, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		m.result = nil
		m.runErr = nil
		m.runID = ""
		m.step = stepMaterial
		m.cursor = 0
		return m, tea.ClearScreen
	}
	return m, nil
}

// advance moves to the next prompt and prefills it with the current value.
func (m Wizard) advance() Wizard {
	next := m.step + 1
	if next == stepCustomCoefficient && !m.custom {
		next++
	}
	return m.enter(next)
}

func (m Wizard) back() Wizard {
	if m.step == stepMaterial {
		return m
	}
	prev := m.step - 1
	if prev == stepCustomCoefficient && !m.custom {
		prev--
	}
	return m.enter(prev)
}

func (m Wizard) enter(s step) Wizard {
	m.step = s
	m.err = ""
	m.input = ""
	m.cursor = 0
	switch s {
	case stepMaterial:
		for i, mat := range m.materials {
			if mat.ID == m.material.ID {
				m.cursor = i
			}
		}
	case stepCoefficient:
		if m.custom {
			m.cursor = len(m.coefficients)
		}
	}
	if _, ok := fields[s]; ok {
		m.input = strconv.FormatFloat(m.values[s], 'g', -1, 64)
	}
	return m
}

// Scenario converts the answers into a single-body ambient scenario.
func (m Wizard) Scenario() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Mode = sim.ModeAmbient.String()
	cfg.Dt = m.values[stepDt]
	cfg.Duration = m.values[stepMinutes] * 60
	cfg.Ambient = config.AmbientConfig{
		Temperature: m.values[stepAmbient],
		Convection:  m.convection,
	}
	cfg.Bodies = []config.BodyConfig{{
		Name:         m.material.Name,
		Material:     m.material.Name,
		Mass:         m.values[stepMass],
		SpecificHeat: m.material.SpecificHeat,
		Area:         m.values[stepArea],
		Temperature:  m.values[stepTemperature],
	}}
	return cfg
}

func (m Wizard) run(cfg *config.Config) tea.Cmd {
	store, log := m.store, m.log
	return func() tea.Msg {
		exp := experiment.New(cfg, sim.WithLogger(log))
		if err := exp.Setup(metrics.Defaults(cfg.Ambient.Temperature)); err != nil {
			return resultMsg{err: err}
		}
		res, err := exp.Run(context.Background())
		if err != nil {
			return resultMsg{result: res, err: err}
		}

		var runID string
		if store != nil {
			runID, err = store.Save(storage.RunMetadata{
				Source:     "wizard",
				Dt:         cfg.Dt,
				Duration:   cfg.Duration,
				Ambient:    cfg.Ambient.Temperature,
				Capacities: []float64{cfg.Bodies[0].Mass * cfg.Bodies[0].SpecificHeat},
			}, res)
			if err != nil {
				log.Warn("tui.save.failed", "err", err)
			}
		}
		return resultMsg{result: res, runID: runID}
	}
}

func RunWizard(cat *materials.Catalog, opts ...Option) error {
	p := tea.NewProgram(NewWizard(cat, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
