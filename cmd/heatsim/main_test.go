package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/heatsim/internal/thermal"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSimpleThenExport(t *testing.T) {
	data := t.TempDir()

	out, err := execute(t, "simple", "--data", data, "--material", "Copper", "--t-max", "120", "--no-plot")
	if err != nil {
		t.Fatalf("simple: %v\n%s", err, out)
	}
	if !strings.Contains(out, "run id: ambient_") {
		t.Errorf("missing run id in output:\n%s", out)
	}

	out, err = execute(t, "list", "--data", data)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Copper") {
		t.Errorf("list does not show the run:\n%s", out)
	}

	csvPath := filepath.Join(t.TempDir(), "run.csv")
	if _, err := execute(t, "export-csv", "--data", data, "--out", csvPath); err != nil {
		t.Fatalf("export-csv: %v", err)
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if lines[0] != "time,Copper_T" {
		t.Errorf("header = %q", lines[0])
	}
	// initial state plus 120 steps
	if len(lines) != 1+121 {
		t.Errorf("got %d lines, want %d", len(lines), 122)
	}

	out, err = execute(t, "export-json", "--data", data)
	if err != nil {
		t.Fatalf("export-json: %v", err)
	}
	if !strings.Contains(out, `"mode": "ambient"`) {
		t.Errorf("json export missing mode:\n%s", out)
	}

	if _, err := execute(t, "energy", "--data", data); err != nil {
		t.Errorf("energy: %v", err)
	}
}

func TestMultibodyMismatch(t *testing.T) {
	_, err := execute(t, "multibody", "--data", t.TempDir(),
		"--t-init", "80,30", "--m", "1", "--c", "900,900", "--no-plot")
	if !errors.Is(err, thermal.ErrConfigMismatch) {
		t.Errorf("err = %v, want ErrConfigMismatch", err)
	}
}

func TestCoupledMultibody(t *testing.T) {
	out, err := execute(t, "multibody", "--data", t.TempDir(),
		"--t-init", "80,30,10", "--m", "2,1,0.5", "--c", "900,900,900",
		"--g", "0,5,0;5,0,3;0,3,0", "--t-max", "30", "--no-plot")
	if err != nil {
		t.Fatalf("multibody: %v\n%s", err, out)
	}
	if !strings.Contains(out, "run id: coupled_") {
		t.Errorf("expected a coupled run:\n%s", out)
	}
}

func TestPairDefaults(t *testing.T) {
	out, err := execute(t, "pair", "--data", t.TempDir(), "--t-max", "10", "--no-plot")
	if err != nil {
		t.Fatalf("pair: %v\n%s", err, out)
	}
	if !strings.Contains(out, "run id: pair_") {
		t.Errorf("expected a pair run:\n%s", out)
	}
}

func TestSavedScenarioRunsAgain(t *testing.T) {
	data := t.TempDir()
	scenario := filepath.Join(t.TempDir(), "pair.yaml")

	out, err := execute(t, "pair", "--data", data, "--t-max", "10", "--no-plot", "--save-scenario", scenario)
	if err != nil {
		t.Fatalf("pair: %v\n%s", err, out)
	}

	out, err = execute(t, "run", "--data", data, "--config", scenario, "--no-plot")
	if err != nil {
		t.Fatalf("run saved scenario: %v\n%s", err, out)
	}
	if !strings.Contains(out, "run id: pair_") {
		t.Errorf("saved scenario should rerun in pair mode:\n%s", out)
	}
}

func TestDebugReportsLogPath(t *testing.T) {
	data := t.TempDir()
	out, err := execute(t, "presets", "--data", data, "--debug")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, filepath.Join(data, "logs", "heatsim.log")) {
		t.Errorf("debug output should name the log file:\n%s", out)
	}
}

func TestUnknownMaterial(t *testing.T) {
	_, err := execute(t, "simple", "--data", t.TempDir(), "--material", "Unobtainium")
	if !errors.Is(err, thermal.ErrLookupNotFound) {
		t.Errorf("err = %v, want ErrLookupNotFound", err)
	}
}

func TestCatalogListings(t *testing.T) {
	out, err := execute(t, "materials", "--data", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Aluminium") || !strings.Contains(out, "Water") {
		t.Errorf("materials output:\n%s", out)
	}

	out, err = execute(t, "coefficients", "--data", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "still_air") {
		t.Errorf("coefficients output:\n%s", out)
	}

	out, err = execute(t, "presets", "--data", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"coffee", "contact", "kitchen"} {
		if !strings.Contains(out, want) {
			t.Errorf("presets output missing %s:\n%s", want, out)
		}
	}
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "--data", t.TempDir(), "--preset", "coffee", "--dts", "5,1")
	if err != nil {
		t.Fatalf("compare: %v\n%s", err, out)
	}
	if !strings.Contains(out, "analytical solution") {
		t.Errorf("compare output:\n%s", out)
	}
}
