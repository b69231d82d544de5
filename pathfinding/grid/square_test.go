package grid

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wricardo/pathfinder/pathfinding/engine"
)

type C = engine.Coordinate

func TestSquareGrid_Bounds(t *testing.T) {
	g := NewSquareGrid(10, 6)

	assert.True(t, g.InBounds(C{X: 0, Y: 0}))
	assert.True(t, g.InBounds(C{X: 9, Y: 5}))
	assert.False(t, g.InBounds(C{X: 10, Y: 5}))
	assert.False(t, g.InBounds(C{X: 9, Y: 6}))
	assert.False(t, g.InBounds(C{X: -1, Y: 0}))
}

func TestSquareGrid_Walls(t *testing.T) {
	g := NewSquareGrid(4, 4)
	g.AddWall(C{X: 2, Y: 3})
	g.AddWall(C{X: 3, Y: 0})
	g.AddWall(C{X: 1, Y: 3})

	assert.True(t, g.IsWall(C{X: 2, Y: 3}))
	assert.False(t, g.Passable(C{X: 3, Y: 0}))
	assert.Equal(t, []C{{X: 3, Y: 0}, {X: 1, Y: 3}, {X: 2, Y: 3}}, g.Walls())

	g.RemoveWall(C{X: 3, Y: 0})
	assert.True(t, g.Passable(C{X: 3, Y: 0}))
	assert.Len(t, g.OpenCells(), 14)
}

func TestSquareGrid_NeighborOrder(t *testing.T) {
	g := NewSquareGrid(3, 3)

	got := slices.Collect(g.Neighbors(C{X: 1, Y: 1}))
	assert.Equal(t, []C{{X: 1, Y: 2}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}}, got)

	// Corner cells only see in-bounds neighbors
	got = slices.Collect(g.Neighbors(C{X: 0, Y: 0}))
	assert.Equal(t, []C{{X: 0, Y: 1}, {X: 1, Y: 0}}, got)

	g.AddWall(C{X: 0, Y: 1})
	got = slices.Collect(g.Neighbors(C{X: 0, Y: 0}))
	assert.Equal(t, []C{{X: 1, Y: 0}}, got)
}

func TestSquareGrid_NeighborsStopEarly(t *testing.T) {
	g := NewSquareGrid(3, 3)
	g.SetDiagonal(true)

	count := 0
	for range g.Neighbors(C{X: 1, Y: 1}) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestSquareGrid_DiagonalNoCornerCutting(t *testing.T) {
	g := NewSquareGrid(3, 3)
	g.SetDiagonal(true)
	assert.True(t, g.Diagonal())

	got := slices.Collect(g.Neighbors(C{X: 1, Y: 1}))
	assert.Len(t, got, 8)

	g.AddWall(C{X: 2, Y: 1})
	got = slices.Collect(g.Neighbors(C{X: 1, Y: 1}))
	assert.NotContains(t, got, C{X: 2, Y: 2})
	assert.NotContains(t, got, C{X: 2, Y: 0})
	assert.Contains(t, got, C{X: 0, Y: 2})
	assert.Len(t, got, 5)
}

func TestSquareGrid_Cost(t *testing.T) {
	g := NewSquareGrid(3, 3)
	g.SetWeight(C{X: 1, Y: 0}, 4)
	g.SetWeight(C{X: 2, Y: 2}, -3)

	assert.Equal(t, 1.0, g.Cost(C{X: 0, Y: 0}, C{X: 0, Y: 1}))
	assert.Equal(t, 4.0, g.Cost(C{X: 0, Y: 0}, C{X: 1, Y: 0}))
	assert.InDelta(t, math.Sqrt2, g.Cost(C{X: 0, Y: 0}, C{X: 1, Y: 1}), 1e-12)
	assert.Equal(t, 0.0, g.Weight(C{X: 2, Y: 2}), "negative weights clamp to zero")

	g.SetWeight(C{X: 1, Y: 0}, DefaultWeight)
	assert.Equal(t, DefaultWeight, g.Weight(C{X: 1, Y: 0}))
}
