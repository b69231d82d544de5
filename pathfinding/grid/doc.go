// Package grid provides a square-cell graph for the pathfinding engine.
//
// The grid package implements:
//   - SquareGrid, a bounded grid with walls and per-cell entry costs
//   - A text layout format for describing grids
//   - Rendering of a grid with a computed path
//   - MapConfig, the on-disk description of a searchable map
//
// Layout Format:
//
// A layout is one string per row, top row first:
//   - '.' open cell with cost 1
//   - '#' wall
//   - 'S' start cell, 'G' goal cell (both open, cost 1)
//   - '1'..'9' open cell entered at that cost
//
// Movement:
//
// Moves are 4-directional by default. With diagonal movement enabled the
// four diagonals are added; a diagonal may not cut the corner of a wall and
// costs √2 times the entry cost of the target cell.
package grid
