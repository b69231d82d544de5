package grid

import (
	"fmt"
	"strings"

	"github.com/wricardo/pathfinder/pathfinding/engine"
)

// Validation constants
const (
	MinGridSize = 1
	MaxGridSize = 256
)

// MapConfig describes a searchable map as stored in the configs directory
type MapConfig struct {
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Layout        []string `json:"layout" yaml:"layout"`
	Diagonal      bool     `json:"diagonal,omitempty" yaml:"diagonal,omitempty"`
	Heuristic     string   `json:"heuristic,omitempty" yaml:"heuristic,omitempty"`
	MaxExpansions int      `json:"max_expansions,omitempty" yaml:"max_expansions,omitempty"`
}

// ValidateMapConfig validates a map configuration for correctness
func ValidateMapConfig(config *MapConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("config validation: name is required")
	}

	height := len(config.Layout)
	if height < MinGridSize || height > MaxGridSize {
		return fmt.Errorf("config validation: layout must have between %d and %d rows, got %d", MinGridSize, MaxGridSize, height)
	}
	if width := len(config.Layout[0]); width < MinGridSize || width > MaxGridSize {
		return fmt.Errorf("config validation: layout rows must have between %d and %d cells, got %d", MinGridSize, MaxGridSize, width)
	}

	if _, err := ParseLayout(config.Layout); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	heuristic := normalizeHeuristic(config.Heuristic)
	if _, err := engine.HeuristicByName(heuristic); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if config.Diagonal && heuristic == engine.HeuristicManhattan {
		return fmt.Errorf("config validation: heuristic %q overestimates diagonal moves; use %q", heuristic, engine.HeuristicOctile)
	}

	if config.MaxExpansions < 0 {
		return fmt.Errorf("config validation: max_expansions must not be negative, got %d", config.MaxExpansions)
	}

	return nil
}

// Build parses the layout and applies the movement mode
func (c *MapConfig) Build() (*Layout, error) {
	layout, err := ParseLayout(c.Layout)
	if err != nil {
		return nil, err
	}
	layout.Grid.SetDiagonal(c.Diagonal)
	return layout, nil
}

// HeuristicName returns the configured heuristic, defaulting to octile on
// diagonal maps and manhattan otherwise
func (c *MapConfig) HeuristicName() string {
	return ResolveHeuristic("", c.Heuristic, c.Diagonal)
}

// ResolveHeuristic picks the heuristic name for a search. An explicitly
// requested name always wins. A configured name applies next, except that
// manhattan is replaced by octile when diagonal moves are enabled, since it
// overestimates diagonal steps. Without either the movement mode decides.
func ResolveHeuristic(requested, configured string, diagonal bool) string {
	if name := normalizeHeuristic(requested); name != "" {
		return name
	}
	if name := normalizeHeuristic(configured); name != "" {
		if diagonal && name == engine.HeuristicManhattan {
			return engine.HeuristicOctile
		}
		return name
	}
	if diagonal {
		return engine.HeuristicOctile
	}
	return engine.HeuristicManhattan
}

func normalizeHeuristic(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
