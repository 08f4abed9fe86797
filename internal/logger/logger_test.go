package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSON(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := Setup(Config{DataDir: dir, Debug: true})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	want := filepath.Join(dir, "logs", "heatsim.log")
	if Path() != want {
		t.Errorf("expected path %s, got %s", want, Path())
	}

	L().Debug("sim.run.start", "bodies", 3)
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d:\n%s", len(lines), data)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("record is not json: %v", err)
	}
	if rec["msg"] != "sim.run.start" {
		t.Errorf("unexpected message %v", rec["msg"])
	}
	if rec["bodies"] != float64(3) {
		t.Errorf("unexpected bodies attr %v", rec["bodies"])
	}
	if _, ok := rec["source"]; !ok {
		t.Error("debug records should carry source")
	}
}

func TestSetup_InfoDropsDebug(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := Setup(Config{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	L().Debug("hidden")
	path := Path()
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug record written at info level")
	}
}

func TestCleanup_Resets(t *testing.T) {
	cleanup, err := Setup(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	cleanup()

	if Path() != "" {
		t.Errorf("expected empty path after cleanup, got %s", Path())
	}
	L().Info("goes nowhere")
}

func TestSetup_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Setup(Config{DataDir: file}); err == nil {
		t.Error("expected error when data dir is a file")
	}
	if Path() != "" {
		t.Error("failed setup should leave no path")
	}
}
