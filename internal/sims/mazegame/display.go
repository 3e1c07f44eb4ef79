package mazegame

import (
	"image/color"
	"math"

	"maze-mobs/internal/maze"
)

// Display values written by Cells.
const (
	CellFloor uint8 = iota
	CellWall
	CellEntrance
	CellExit
	CellMob
)

var mazePalette = []color.RGBA{
	CellFloor:    {R: 28, G: 30, B: 36, A: 255},
	CellWall:     {R: 120, G: 124, B: 140, A: 255},
	CellEntrance: {R: 60, G: 170, B: 90, A: 255},
	CellExit:     {R: 220, G: 180, B: 60, A: 255},
	CellMob:      {R: 230, G: 70, B: 60, A: 255},
}

// Palette exposes the colors used for each display value.
func (w *World) Palette() []color.RGBA {
	return mazePalette
}

// Cells renders the maze row-major, one byte per cell, with each mob drawn on
// the cell nearest its position.
func (w *World) Cells() []uint8 {
	g := w.grid
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			v := CellFloor
			if g.State(maze.Cell{Row: r, Col: c}) == maze.Wall {
				v = CellWall
			}
			w.cells[r*g.Cols()+c] = v
		}
	}
	for _, c := range g.ExitPocket() {
		w.cells[c.Row*g.Cols()+c.Col] = CellExit
	}
	w.cells[0] = CellEntrance

	for _, m := range w.mobs {
		p := m.Position()
		cell := maze.Cell{Row: int(math.Round(p.X)), Col: int(math.Round(p.Z))}
		if g.InBounds(cell) {
			w.cells[cell.Row*g.Cols()+cell.Col] = CellMob
		}
	}
	return w.cells
}
