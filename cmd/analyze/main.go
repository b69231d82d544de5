// Command analyze prints quick, human-readable facts about the map files in
// a config directory. It summarizes dimensions, counts open cells and walls,
// lists cells that cannot be reached from the start, and compares how many
// nodes each heuristic expands on the start-to-goal search.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/pathfinder/pathfinding/config"
	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/grid"
)

// maxListed caps how many unreachable cells are printed per map
const maxListed = 5

// nowhere is never a grid cell, so searching for it floods every reachable cell
var nowhere = engine.Coordinate{X: -1, Y: -1}

// HeuristicRun records one start-to-goal search
type HeuristicRun struct {
	Heuristic string
	Found     bool
	Cost      float64
	Expanded  int
}

// Report summarizes a single map
type Report struct {
	MapID       string
	Name        string
	Width       int
	Height      int
	Open        int
	Walls       int
	HasStart    bool
	HasGoal     bool
	Reachable   int
	Unreachable []engine.Coordinate
	Runs        []HeuristicRun
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "summarize the maps in a config directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing map configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(os.Stdout, cmd.String("config-dir"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, configDir string) error {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return err
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)

		mapConfig, err := manager.LoadConfig(info.Filename)
		if err != nil {
			fmt.Fprintf(w, "Error loading map: %v\n", err)
			continue
		}

		report, err := analyzeMap(info.MapID, mapConfig)
		if err != nil {
			fmt.Fprintf(w, "Error analyzing map: %v\n", err)
			continue
		}
		printReport(w, report)
	}

	return nil
}

func analyzeMap(mapID string, mapConfig *grid.MapConfig) (*Report, error) {
	layout, err := mapConfig.Build()
	if err != nil {
		return nil, err
	}
	g := layout.Grid

	report := &Report{
		MapID:    mapID,
		Name:     mapConfig.Name,
		Width:    g.Width,
		Height:   g.Height,
		Walls:    len(g.Walls()),
		HasStart: layout.HasStart,
		HasGoal:  layout.HasGoal,
	}
	open := g.OpenCells()
	report.Open = len(open)

	if !layout.HasStart {
		return report, nil
	}

	// Flood from the start; every cell with a cost is reachable
	flood := engine.New[engine.Coordinate](nil)
	if _, err := flood.FindPath(g, layout.Start, nowhere); !errors.Is(err, engine.ErrPathNotFound) {
		return nil, fmt.Errorf("flood fill from %s: %v", layout.Start, err)
	}
	report.Reachable = flood.Discovered()
	for _, c := range open {
		if _, ok := flood.CostSoFar(c); !ok {
			report.Unreachable = append(report.Unreachable, c)
		}
	}

	if !layout.HasGoal {
		return report, nil
	}

	for _, name := range []string{engine.HeuristicZero, engine.HeuristicManhattan, engine.HeuristicOctile, engine.HeuristicEuclidean} {
		heuristic, err := engine.HeuristicByName(name)
		if err != nil {
			return nil, err
		}

		result, err := engine.FindPath(g, layout.Start, layout.Goal, heuristic)
		if err != nil && !errors.Is(err, engine.ErrPathNotFound) {
			return nil, err
		}
		report.Runs = append(report.Runs, HeuristicRun{
			Heuristic: name,
			Found:     err == nil,
			Cost:      result.Cost,
			Expanded:  result.Expanded,
		})
	}

	return report, nil
}

func printReport(w io.Writer, r *Report) {
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", r.Width, r.Height)
	fmt.Fprintf(w, "Open Cells: %d\n", r.Open)
	fmt.Fprintf(w, "Walls: %d\n", r.Walls)

	if !r.HasStart {
		fmt.Fprintf(w, "⚠️  WARNING: map has no start cell, reachability skipped\n")
		return
	}

	if len(r.Unreachable) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d open cells are unreachable from the start!\n", len(r.Unreachable))
		for i, c := range r.Unreachable {
			if i == maxListed {
				fmt.Fprintf(w, "   ... and %d more\n", len(r.Unreachable)-maxListed)
				break
			}
			fmt.Fprintf(w, "   Unreachable: %s\n", c)
		}
	} else {
		fmt.Fprintf(w, "✅ All %d open cells are reachable from the start\n", r.Reachable)
	}

	if !r.HasGoal {
		return
	}

	for _, run := range r.Runs {
		if run.Found {
			fmt.Fprintf(w, "   %-10s cost %g, expanded %d\n", run.Heuristic, run.Cost, run.Expanded)
		} else {
			fmt.Fprintf(w, "   %-10s no path, expanded %d\n", run.Heuristic, run.Expanded)
		}
	}
	if len(r.Runs) > 0 && !r.Runs[0].Found {
		fmt.Fprintf(w, "⚠️  CRITICAL: the goal is unreachable from the start!\n")
	}
}
