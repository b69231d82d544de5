package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/pathfinder/pathfinding/engine"
)

// Layout cell characters
const (
	CellOpen  = '.'
	CellWall  = '#'
	CellStart = 'S'
	CellGoal  = 'G'
	CellPath  = '*'
)

var ErrInvalidLayout = errors.New("invalid layout")

// Layout is a parsed text grid together with its optional endpoints
type Layout struct {
	Grid     *SquareGrid
	Start    engine.Coordinate
	Goal     engine.Coordinate
	HasStart bool
	HasGoal  bool
}

// ParseLayout builds a grid from rows of layout characters
func ParseLayout(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: layout is empty", ErrInvalidLayout)
	}

	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: row 1 is empty", ErrInvalidLayout)
	}

	layout := &Layout{Grid: NewSquareGrid(width, len(rows))}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d must have %d cells, got %d", ErrInvalidLayout, y+1, width, len(row))
		}

		for x := 0; x < len(row); x++ {
			c := engine.Coordinate{X: x, Y: y}
			switch ch := row[x]; {
			case ch == CellOpen:
			case ch == CellWall:
				layout.Grid.AddWall(c)
			case ch == CellStart:
				if layout.HasStart {
					return nil, fmt.Errorf("%w: second start at %s", ErrInvalidLayout, c)
				}
				layout.Start, layout.HasStart = c, true
			case ch == CellGoal:
				if layout.HasGoal {
					return nil, fmt.Errorf("%w: second goal at %s", ErrInvalidLayout, c)
				}
				layout.Goal, layout.HasGoal = c, true
			case ch >= '1' && ch <= '9':
				layout.Grid.SetWeight(c, float64(ch-'0'))
			default:
				return nil, fmt.Errorf("%w: invalid character '%c' at %s", ErrInvalidLayout, ch, c)
			}
		}
	}

	return layout, nil
}

// Render draws g in layout characters, marking path cells with '*'.
// start and goal are drawn as 'S' and 'G' when they are on the grid.
func Render(g *SquareGrid, path []engine.Coordinate, start, goal engine.Coordinate) string {
	onPath := make(map[engine.Coordinate]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := engine.Coordinate{X: x, Y: y}
			switch {
			case c == start:
				b.WriteByte(CellStart)
			case c == goal:
				b.WriteByte(CellGoal)
			case g.IsWall(c):
				b.WriteByte(CellWall)
			case onPath[c]:
				b.WriteByte(CellPath)
			default:
				b.WriteByte(weightChar(g.Weight(c)))
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// weightChar maps an entry cost back to its layout digit
func weightChar(w float64) byte {
	if w == DefaultWeight {
		return CellOpen
	}
	if w >= 1 && w <= 9 && w == float64(int(w)) {
		return byte('0' + int(w))
	}
	return CellOpen
}
