package maze

import "fmt"

// State classifies a grid cell.
type State uint8

const (
	// Open cells are floor: agents may occupy them.
	Open State = iota
	// Wall cells block movement.
	Wall
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Wall:
		return "wall"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Cell addresses a grid position by zero-based row and column. Cells are
// plain values and compare by value.
type Cell struct {
	Row int
	Col int
}

// Entrance is the player's start cell. It is always open.
var Entrance = Cell{Row: 0, Col: 0}

// Add returns the cell offset by (dRow, dCol).
func (c Cell) Add(dRow, dCol int) Cell {
	return Cell{Row: c.Row + dRow, Col: c.Col + dCol}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// carveSteps are the two-cell strides used by the carving walk, in the
// order candidates are collected.
var carveSteps = [4]Cell{
	{Row: 0, Col: -2},
	{Row: -2, Col: 0},
	{Row: 0, Col: 2},
	{Row: 2, Col: 0},
}

var orthogonal = [4]Cell{
	{Row: 0, Col: -1},
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
}
