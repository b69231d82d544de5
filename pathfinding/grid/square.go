package grid

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/wricardo/pathfinder/pathfinding/engine"
)

// Cardinal directions in neighbor order
var Directions = []engine.Coordinate{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Diagonals are appended after Directions when diagonal movement is on
var Diagonals = []engine.Coordinate{
	{X: 1, Y: 1},
	{X: -1, Y: 1},
	{X: 1, Y: -1},
	{X: -1, Y: -1},
}

// DefaultWeight is the entry cost of a cell without an explicit weight
const DefaultWeight = 1.0

// SquareGrid is a width x height grid of unit cells.
// It implements engine.WeightedGraph[engine.Coordinate].
type SquareGrid struct {
	Width    int
	Height   int
	walls    map[engine.Coordinate]struct{}
	weights  map[engine.Coordinate]float64
	diagonal bool
}

var _ engine.WeightedGraph[engine.Coordinate] = (*SquareGrid)(nil)

// NewSquareGrid creates an open grid with the given dimensions
func NewSquareGrid(width, height int) *SquareGrid {
	return &SquareGrid{
		Width:   width,
		Height:  height,
		walls:   make(map[engine.Coordinate]struct{}),
		weights: make(map[engine.Coordinate]float64),
	}
}

// InBounds reports whether c lies inside the grid
func (g *SquareGrid) InBounds(c engine.Coordinate) bool {
	return 0 <= c.X && c.X < g.Width && 0 <= c.Y && c.Y < g.Height
}

// Passable reports whether c is not a wall
func (g *SquareGrid) Passable(c engine.Coordinate) bool {
	_, wall := g.walls[c]
	return !wall
}

// Open reports whether c is in bounds and passable
func (g *SquareGrid) Open(c engine.Coordinate) bool {
	return g.InBounds(c) && g.Passable(c)
}

// AddWall marks c as impassable
func (g *SquareGrid) AddWall(c engine.Coordinate) {
	g.walls[c] = struct{}{}
}

// RemoveWall makes c passable again
func (g *SquareGrid) RemoveWall(c engine.Coordinate) {
	delete(g.walls, c)
}

// IsWall reports whether c was marked as a wall
func (g *SquareGrid) IsWall(c engine.Coordinate) bool {
	return !g.Passable(c)
}

// Walls returns all walls ordered by row, then column
func (g *SquareGrid) Walls() []engine.Coordinate {
	walls := make([]engine.Coordinate, 0, len(g.walls))
	for c := range g.walls {
		walls = append(walls, c)
	}
	slices.SortFunc(walls, compareCoordinates)
	return walls
}

// SetWeight sets the cost of entering c. Weights below zero are clamped to
// zero since the engine requires non-negative costs.
func (g *SquareGrid) SetWeight(c engine.Coordinate, weight float64) {
	if weight < 0 {
		weight = 0
	}
	if weight == DefaultWeight {
		delete(g.weights, c)
		return
	}
	g.weights[c] = weight
}

// Weight returns the cost of entering c
func (g *SquareGrid) Weight(c engine.Coordinate) float64 {
	if w, ok := g.weights[c]; ok {
		return w
	}
	return DefaultWeight
}

// SetDiagonal enables or disables 8-directional movement
func (g *SquareGrid) SetDiagonal(enabled bool) {
	g.diagonal = enabled
}

// Diagonal reports whether 8-directional movement is enabled
func (g *SquareGrid) Diagonal() bool {
	return g.diagonal
}

// Cost returns the cost of moving from a to its neighbor b
func (g *SquareGrid) Cost(a, b engine.Coordinate) float64 {
	w := g.Weight(b)
	if a.X != b.X && a.Y != b.Y {
		return w * math.Sqrt2
	}
	return w
}

// Neighbors yields the open cells adjacent to c
func (g *SquareGrid) Neighbors(c engine.Coordinate) iter.Seq[engine.Coordinate] {
	return func(yield func(engine.Coordinate) bool) {
		for _, dir := range Directions {
			next := c.Add(dir)
			if g.Open(next) && !yield(next) {
				return
			}
		}

		if !g.diagonal {
			return
		}

		for _, dir := range Diagonals {
			next := c.Add(dir)
			if !g.Open(next) {
				continue
			}
			// No corner cutting
			if !g.Open(engine.Coordinate{X: next.X, Y: c.Y}) || !g.Open(engine.Coordinate{X: c.X, Y: next.Y}) {
				continue
			}
			if !yield(next) {
				return
			}
		}
	}
}

// OpenCells returns every open cell ordered by row, then column
func (g *SquareGrid) OpenCells() []engine.Coordinate {
	cells := make([]engine.Coordinate, 0, g.Width*g.Height-len(g.walls))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := engine.Coordinate{X: x, Y: y}
			if g.Passable(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

func compareCoordinates(a, b engine.Coordinate) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
