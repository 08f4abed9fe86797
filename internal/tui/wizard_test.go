package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/heatsim/internal/materials"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestWizard(t *testing.T, opts ...Option) Wizard {
	t.Helper()
	cat, err := materials.Load()
	if err != nil {
		t.Fatal(err)
	}
	return NewWizard(cat, opts...)
}

func press(t *testing.T, m Wizard, keys ...string) (Wizard, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Wizard)
	}
	return m, cmd
}

// typeValue clears the prefilled input and types v.
func typeValue(t *testing.T, m Wizard, v string) Wizard {
	t.Helper()
	for len(m.input) > 0 {
		m, _ = press(t, m, "backspace")
	}
	m, _ = press(t, m, v)
	return m
}

func TestWizard_MaterialSelection(t *testing.T) {
	m := newTestWizard(t)
	if m.step != stepMaterial {
		t.Fatalf("expected material step, got %d", m.step)
	}

	m, _ = press(t, m, "down", "enter")
	if m.step != stepMass {
		t.Fatalf("expected mass step, got %d", m.step)
	}
	if m.material.Name != "Copper" {
		t.Errorf("expected Copper, got %s", m.material.Name)
	}
	if m.input != "1" {
		t.Errorf("expected prefilled mass, got %q", m.input)
	}
}

func TestWizard_CursorBounds(t *testing.T) {
	m := newTestWizard(t)
	m, _ = press(t, m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.cursor)
	}
	for i := 0; i < 50; i++ {
		m, _ = press(t, m, "down")
	}
	if m.cursor != len(m.materials)-1 {
		t.Errorf("cursor moved past last item: %d", m.cursor)
	}
}

func TestWizard_InputValidation(t *testing.T) {
	m := newTestWizard(t)
	m, _ = press(t, m, "enter")

	m = typeValue(t, m, "-")
	m, _ = press(t, m, "enter")
	if m.step != stepMass || m.err == "" {
		t.Fatalf("expected error on mass step, got step %d err %q", m.step, m.err)
	}

	m = typeValue(t, m, "0")
	m, _ = press(t, m, "enter")
	if !strings.Contains(m.err, "at least 0.001") {
		t.Errorf("expected minimum error, got %q", m.err)
	}

	m = typeValue(t, m, "2.5")
	m, _ = press(t, m, "enter")
	if m.step != stepArea {
		t.Fatalf("expected area step, got %d", m.step)
	}
	if m.values[stepMass] != 2.5 {
		t.Errorf("expected mass 2.5, got %f", m.values[stepMass])
	}
	if m.err != "" {
		t.Errorf("error not cleared: %q", m.err)
	}
}

func TestWizard_IgnoresLetters(t *testing.T) {
	m := newTestWizard(t)
	m, _ = press(t, m, "enter")
	m = typeValue(t, m, "1x2")
	if m.input != "12" {
		t.Errorf("expected letters filtered, got %q", m.input)
	}
}

func toCoefficient(t *testing.T, m Wizard) Wizard {
	t.Helper()
	m, _ = press(t, m, "enter", "enter", "enter", "enter", "enter")
	if m.step != stepCoefficient {
		t.Fatalf("expected coefficient step, got %d", m.step)
	}
	return m
}

func TestWizard_PresetCoefficientSkipsCustom(t *testing.T) {
	m := toCoefficient(t, newTestWizard(t))

	m, _ = press(t, m, "down", "enter")
	if m.step != stepMinutes {
		t.Fatalf("expected minutes step, got %d", m.step)
	}
	if m.convection != m.coefficients[1].Value {
		t.Errorf("expected convection %f, got %f", m.coefficients[1].Value, m.convection)
	}

	m, _ = press(t, m, "esc")
	if m.step != stepCoefficient {
		t.Errorf("esc should return to coefficient list, got %d", m.step)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor reset, got %d", m.cursor)
	}
}

func TestWizard_CustomCoefficient(t *testing.T) {
	m := toCoefficient(t, newTestWizard(t))

	for i := 0; i < len(m.coefficients); i++ {
		m, _ = press(t, m, "down")
	}
	m, _ = press(t, m, "enter")
	if m.step != stepCustomCoefficient {
		t.Fatalf("expected custom coefficient step, got %d", m.step)
	}

	m = typeValue(t, m, "42")
	m, _ = press(t, m, "enter")
	if m.convection != 42 {
		t.Errorf("expected convection 42, got %f", m.convection)
	}

	m, _ = press(t, m, "esc")
	if m.step != stepCustomCoefficient {
		t.Errorf("esc should return to custom coefficient, got %d", m.step)
	}
}

func TestWizard_DtBounds(t *testing.T) {
	m := toCoefficient(t, newTestWizard(t))
	m, _ = press(t, m, "enter", "enter")
	if m.step != stepDt {
		t.Fatalf("expected dt step, got %d", m.step)
	}

	m = typeValue(t, m, "120")
	m, _ = press(t, m, "enter")
	if !strings.Contains(m.err, "at most 60") {
		t.Errorf("expected maximum error, got %q", m.err)
	}

	m = typeValue(t, m, "0.05")
	m, _ = press(t, m, "enter")
	if !strings.Contains(m.err, "at least 0.1") {
		t.Errorf("expected minimum error, got %q", m.err)
	}
}

func TestWizard_Scenario(t *testing.T) {
	m := toCoefficient(t, newTestWizard(t))
	m, _ = press(t, m, "enter")

	cfg := m.Scenario()
	if cfg.Mode != "ambient" {
		t.Errorf("expected ambient mode, got %s", cfg.Mode)
	}
	if cfg.Duration != 600 {
		t.Errorf("expected 600 s, got %f", cfg.Duration)
	}
	if cfg.Bodies[0].SpecificHeat != m.materials[0].SpecificHeat {
		t.Errorf("expected specific heat from material, got %f", cfg.Bodies[0].SpecificHeat)
	}
	if cfg.Ambient.Convection != m.coefficients[0].Value {
		t.Errorf("expected first preset coefficient, got %f", cfg.Ambient.Convection)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("wizard scenario invalid: %v", err)
	}
}

func TestWizard_RunAndResult(t *testing.T) {
	st := storage.New(t.TempDir())
	m := toCoefficient(t, newTestWizard(t, WithStore(st)))
	m, _ = press(t, m, "enter")

	m = typeValue(t, m, "0.1")
	m, _ = press(t, m, "enter", "enter")
	if m.step != stepSummary {
		t.Fatalf("expected summary, got %d", m.step)
	}
	if !strings.Contains(m.View(), "Aluminium") {
		t.Error("summary should name the material")
	}

	m, cmd := press(t, m, "enter")
	if m.step != stepRunning || cmd == nil {
		t.Fatalf("expected running step with command, got %d", m.step)
	}

	next, _ := m.Update(cmd())
	m = next.(Wizard)
	if m.step != stepResult {
		t.Fatalf("expected result step, got %d", m.step)
	}
	if m.runErr != nil {
		t.Fatalf("run failed: %v", m.runErr)
	}
	if m.result.StepsTaken != 6 {
		t.Errorf("expected 6 steps, got %d", m.result.StepsTaken)
	}
	if m.runID == "" {
		t.Error("expected run to be saved")
	}

	view := m.View()
	for _, want := range []string{"final temperature", "total variation", "saved as"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q", want)
		}
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 || runs[0].Source != "wizard" {
		t.Errorf("expected one stored wizard run, got %v (%v)", runs, err)
	}

	m, _ = press(t, m, "r")
	if m.step != stepMaterial || m.result != nil {
		t.Errorf("restart should clear the result, got step %d", m.step)
	}
	if m.values[stepMinutes] != 0.1 {
		t.Errorf("restart should keep answers, got %f", m.values[stepMinutes])
	}
}

func TestWizard_Quit(t *testing.T) {
	m := newTestWizard(t)
	if _, cmd := press(t, m, "q"); cmd == nil {
		t.Error("q should quit from the material list")
	}

	m, _ = press(t, m, "enter")
	m, cmd := press(t, m, "q")
	if cmd != nil {
		t.Error("q should not quit while typing a value")
	}
	if _, cmd := press(t, m, "ctrl+c"); cmd == nil {
		t.Error("ctrl+c should always quit")
	}
}

func TestWizard_EmptyCatalog(t *testing.T) {
	m := NewWizard(&materials.Catalog{})
	m, _ = press(t, m, "down", "enter", " ")
	if m.step != stepMaterial {
		t.Errorf("an empty material list should not advance, got step %d", m.step)
	}
	if !strings.Contains(m.View(), "q quit") {
		t.Error("material screen should still render")
	}
}

func TestWizard_WindowSize(t *testing.T) {
	m := newTestWizard(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := next.(Wizard); got.width != 120 || got.height != 40 {
		t.Errorf("unexpected size %dx%d", got.width, got.height)
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, []string{"mug"}, 1000)

	r.OnStep(sim.StepReport{Step: 1, Time: 1, Before: []float64{90, 20}, After: []float64{89, 21}})
	if r.Frames() != 1 {
		t.Fatalf("expected one frame, got %d", r.Frames())
	}
	out := buf.String()
	if !strings.Contains(out, "mug") || !strings.Contains(out, "body_2") {
		t.Errorf("frame missing body names:\n%s", out)
	}
	if !strings.Contains(out, "89.000") {
		t.Errorf("frame missing temperature:\n%s", out)
	}
}
