package ui

import (
	"fmt"
	"strings"

	"maze-mobs/internal/core"
	"maze-mobs/internal/maze"
	"maze-mobs/internal/mob"
)

// rect is a screen-space rectangle in pixels.
type rect struct {
	X, Y, W, H float32
}

// boxRect maps a mob box to screen space. World X runs along rows (screen y)
// and Z along columns (screen x); cell (r, c) covers [c, c+1)x[r, r+1) before
// scaling, so world coordinates are shifted by half a cell.
func boxRect(b mob.Box, scale int) rect {
	s := float32(scale)
	return rect{
		X: (float32(b.Top) + 0.5) * s,
		Y: (float32(b.Left) + 0.5) * s,
		W: float32(b.Bottom-b.Top) * s,
		H: float32(b.Right-b.Left) * s,
	}
}

// cellCenter returns the pixel center of a grid cell.
func cellCenter(c maze.Cell, scale int) (float32, float32) {
	s := float32(scale)
	return (float32(c.Col) + 0.5) * s, (float32(c.Row) + 0.5) * s
}

// pathCache memoizes the entrance-to-exit path of the last grid it saw. A
// reset builds a new grid, so pointer identity is enough. A maze with no path
// caches nil like any other result.
type pathCache struct {
	grid *maze.Grid
	path []maze.Cell
	runs int
}

func (pc *pathCache) get(g *maze.Grid) []maze.Cell {
	if g != pc.grid {
		pc.path = g.Path(maze.Entrance, g.Exit())
		pc.grid = g
		pc.runs++
	}
	return pc.path
}

// hudLines flattens a parameter snapshot into display lines, one header per
// group followed by indented "label: value" rows.
func hudLines(title string, snap core.ParameterSnapshot) []string {
	lines := []string{title}
	if len(snap.Groups) == 0 {
		return append(lines, "No parameters")
	}
	for _, group := range snap.Groups {
		lines = append(lines, "", strings.ToUpper(group.Name))
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return lines
}
