// Command validate provides a small CLI that validates the map files (.json,
// .yaml, .yml) in a config directory. It checks:
//   - JSON or YAML structure and required fields
//   - Grid consistency and allowed characters (. # S G 1-9)
//   - Presence of exactly one start (S) and one goal (G)
//   - Heuristic name and expansion budget
//   - Connectivity: the goal is reachable from the start
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/grid"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single map file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config grid.MapConfig
	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		result.fail("Invalid %s: %v", strings.ToUpper(strings.TrimPrefix(filepath.Ext(filePath), ".")), err)
		return result
	}

	if err := grid.ValidateMapConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	layout, err := config.Build()
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if !layout.HasStart {
		result.fail("Must have a start (S) cell")
	}
	if !layout.HasGoal {
		result.fail("Must have a goal (G) cell")
	}

	heuristic, err := engine.HeuristicByName(config.HeuristicName())
	if err != nil {
		result.fail("%v", err)
	}

	// Connectivity validation
	if result.Valid {
		connectivity := validateConnectivity(layout, heuristic)
		if !connectivity.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, connectivity.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", layout.Grid.Width, layout.Grid.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Walls: %d", len(layout.Grid.Walls())))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Heuristic: %s", config.HeuristicName()))
		if config.Diagonal {
			result.Errors = append(result.Errors, "✓ Diagonal moves enabled")
		}
	}

	return result
}

// validateConnectivity ensures the goal can be reached from the start
func validateConnectivity(layout *grid.Layout, heuristic engine.Heuristic[engine.Coordinate]) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if !layout.HasStart || !layout.HasGoal {
		result.fail("Cannot validate connectivity: start or goal missing")
		return result
	}

	found, err := engine.FindPath(layout.Grid, layout.Start, layout.Goal, heuristic)
	switch {
	case errors.Is(err, engine.ErrPathNotFound):
		result.fail("Connectivity failure: goal %s unreachable from start %s (%d nodes expanded)",
			layout.Goal, layout.Start, found.Expanded)
	case err != nil:
		result.fail("Search failed: %v", err)
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: path of %d steps, cost %g",
			len(found.Path)-1, found.Cost))
	}

	return result
}

// findMapFiles returns the map files in configDir in name order
func findMapFiles(configDir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(configDir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// report prints one block per file and returns whether all files are valid
func report(w io.Writer, files []string) bool {
	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All maps are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some maps have errors")
	}
	return allValid
}

// main validates every map file in --config-dir, exiting with non-zero
// status if any are invalid
func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "validate the map files in a config directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing map configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files, err := findMapFiles(cmd.String("config-dir"))
			if err != nil {
				return fmt.Errorf("error finding map files: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no map files in %s", cmd.String("config-dir"))
			}
			if !report(os.Stdout, files) {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
