package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/grid"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	validConfig := `{
		"name": "Test Map",
		"description": "Test map",
		"layout": [
			"S...#",
			".##.#",
			"....G"
		]
	}`

	path := writeTempFile(t, "test_map.json", validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != "test_map.json" {
		t.Errorf("Expected file name test_map.json, got %s", result.File)
	}

	for _, want := range []string{"✓ Name: Test Map", "✓ Grid: 5x3", "✓ Walls: 4", "✓ Heuristic: manhattan"} {
		if !contains(result.Errors, want) {
			t.Errorf("Expected info %q, got %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_YAML(t *testing.T) {
	yamlConfig := `name: Diagonal
diagonal: true
layout:
  - "S.."
  - ".#."
  - "..G"
`
	path := writeTempFile(t, "diag.yaml", yamlConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if !contains(result.Errors, "✓ Heuristic: octile") {
		t.Errorf("Expected octile heuristic on a diagonal map, got %v", result.Errors)
	}
	if !contains(result.Errors, "✓ Diagonal moves enabled") {
		t.Errorf("Expected diagonal info, got %v", result.Errors)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "broken.json", `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config for malformed JSON")
	}

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Invalid JSON") {
		t.Errorf("Expected JSON error, got: %v", result.Errors)
	}
}

func TestValidateConfig_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "broken.yml", "name: [unterminated\n")

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config for malformed YAML")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Invalid YML") {
		t.Errorf("Expected YAML error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/nonexistent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Failed to read file") {
		t.Errorf("Expected file read error, got: %v", result.Errors)
	}
}

func TestValidateConfig_RaggedLayout(t *testing.T) {
	path := writeTempFile(t, "ragged.json", `{"name": "Ragged", "layout": ["S...", "..G"]}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config for ragged layout")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "config validation") {
		t.Errorf("Expected layout validation error, got: %v", result.Errors)
	}
}

func TestValidateConfig_NoStart(t *testing.T) {
	path := writeTempFile(t, "nostart.json", `{"name": "No Start", "layout": ["....", "...G"]}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config without a start cell")
	}
	if !contains(result.Errors, "Must have a start (S) cell") {
		t.Errorf("Expected missing start error, got: %v", result.Errors)
	}
}

func TestValidateConfig_NoGoal(t *testing.T) {
	path := writeTempFile(t, "nogoal.json", `{"name": "No Goal", "layout": ["S...", "...."]}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config without a goal cell")
	}
	if !contains(result.Errors, "Must have a goal (G) cell") {
		t.Errorf("Expected missing goal error, got: %v", result.Errors)
	}
}

func TestValidateConfig_UnknownHeuristic(t *testing.T) {
	path := writeTempFile(t, "heur.json", `{"name": "Heur", "heuristic": "chebyshev", "layout": ["S.G"]}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config for unknown heuristic")
	}
}

func TestValidateConnectivity_Valid(t *testing.T) {
	layout, err := grid.ParseLayout([]string{
		"S.#",
		"..#",
		"..G",
	})
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	result := validateConnectivity(layout, engine.Manhattan)
	if !result.Valid {
		t.Errorf("Expected valid connectivity, got errors: %v", result.Errors)
	}
	if !contains(result.Errors, "✓ Connectivity: path of 4 steps, cost 4") {
		t.Errorf("Expected connectivity info, got %v", result.Errors)
	}
}

func TestValidateConnectivity_Unreachable(t *testing.T) {
	layout, err := grid.ParseLayout([]string{
		"S.#..",
		"..#.G",
		"..#..",
	})
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	result := validateConnectivity(layout, engine.Manhattan)
	if result.Valid {
		t.Error("Expected invalid connectivity for walled-off goal")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Connectivity failure") && strings.Contains(err, "(4, 1)") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected connectivity failure error, got: %v", result.Errors)
	}
}

func TestValidateConnectivity_MissingMarkers(t *testing.T) {
	layout, err := grid.ParseLayout([]string{"...", "..."})
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	result := validateConnectivity(layout, engine.Manhattan)
	if result.Valid {
		t.Error("Expected invalid connectivity without markers")
	}
}

func TestFindMapFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "c.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := findMapFiles(dir)
	if err != nil {
		t.Fatalf("findMapFiles: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 map files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[2]) != "c.yml" {
		t.Errorf("Expected files in name order, got %v", files)
	}
}

func TestReport(t *testing.T) {
	good := writeTempFile(t, "good.json", `{"name": "Good", "layout": ["S.G"]}`)
	bad := writeTempFile(t, "bad.json", `{"name": "Bad", "layout": ["S#G"]}`)

	var out bytes.Buffer
	if !report(&out, []string{good}) {
		t.Errorf("Expected all valid, output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "✅ All maps are valid!") {
		t.Errorf("Missing summary line:\n%s", out.String())
	}

	out.Reset()
	if report(&out, []string{good, bad}) {
		t.Error("Expected report to flag the unreachable map")
	}
	text := out.String()
	if !strings.Contains(text, "❌ INVALID") || !strings.Contains(text, "❌ Some maps have errors") {
		t.Errorf("Unexpected report:\n%s", text)
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
