package engine

import (
	"fmt"
	"math"
	"strings"
)

// Heuristic estimates the remaining cost from a node to the goal
type Heuristic[N comparable] func(from, to N) float64

// Heuristic names accepted by HeuristicByName
const (
	HeuristicManhattan = "manhattan"
	HeuristicOctile    = "octile"
	HeuristicEuclidean = "euclidean"
	HeuristicZero      = "zero"
)

// Manhattan returns |dx| + |dy|. Admissible for 4-directional unit moves.
func Manhattan(a, b Coordinate) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

// Octile is the exact distance on an empty 8-directional grid where
// diagonal steps cost √2.
func Octile(a, b Coordinate) float64 {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(hi-lo) + math.Sqrt2*float64(lo)
}

// Euclidean returns the straight-line distance
func Euclidean(a, b Coordinate) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Zero never estimates any remaining cost, turning A* into Dijkstra
func Zero[N comparable](_, _ N) float64 {
	return 0
}

// HeuristicByName resolves a coordinate heuristic by name. The empty name
// selects Manhattan.
func HeuristicByName(name string) (Heuristic[Coordinate], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HeuristicManhattan:
		return Manhattan, nil
	case HeuristicOctile:
		return Octile, nil
	case HeuristicEuclidean:
		return Euclidean, nil
	case HeuristicZero:
		return Zero[Coordinate], nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
