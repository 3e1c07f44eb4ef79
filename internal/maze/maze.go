/*
Package maze generates perfect mazes on a rectangular grid.

Generation is a randomized depth-first walk with a two-cell stride over an
explicit stack: cells at even offsets from the entrance form the carving
lattice and every carve opens the cell in between. The entrance (0,0) and a
three-cell exit pocket in the opposite corner are always open.

A generated Grid is immutable. Callers read it through derived views:
WallCells for obstacles, OpenCells for spawn placement, BorderCells for the
ring just outside the grid.
*/
package maze

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"maze-mobs/internal/core"
	pcore "maze-mobs/pkg/core"

	"github.com/cespare/xxhash/v2"
	"github.com/zyedidia/generic/mapset"
)

// MaxDimension bounds rows and cols accepted by New.
const MaxDimension = 1024

var (
	// ErrInvalidDimensions is returned for rows or cols outside [1, MaxDimension].
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	// ErrNilRand is returned when New is called without a randomness source.
	ErrNilRand = errors.New("maze: nil randomness source")
)

// Grid is a generated maze.
type Grid struct {
	rows, cols int
	cells      *core.ByteGrid

	opened   int
	passages int
}

// New builds a maze of the given size. Carving choices are drawn from rng, so
// the same sequence of choices always yields the same grid.
func New(rows, cols int, rng pcore.Rand) (*Grid, error) {
	if rows < 1 || cols < 1 || rows > MaxDimension || cols > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d (each side must be in [1, %d])", ErrInvalidDimensions, rows, cols, MaxDimension)
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	g := &Grid{rows: rows, cols: cols, cells: core.NewByteGrid(rows, cols)}
	g.cells.Fill(uint8(Wall))

	// entrance and exit pocket
	for _, c := range g.forced() {
		g.open(c)
	}
	g.carve(rng)
	return g, nil
}

func (g *Grid) carve(rng pcore.Rand) {
	stack := []Cell{Entrance}
	g.open(Entrance)

	candidates := make([]Cell, 0, len(carveSteps))
	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, d := range carveSteps {
			next := curr.Add(d.Row, d.Col)
			if g.cells.InBounds(next.Row, next.Col) && g.State(next) == Wall {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.IntN(len(candidates))]
		g.open(Cell{Row: (curr.Row + next.Row) / 2, Col: (curr.Col + next.Col) / 2})
		g.open(next)
		g.passages++
		stack = append(stack, next)
	}
}

// open turns a wall cell into floor. Out-of-bounds and already-open cells are ignored.
func (g *Grid) open(c Cell) {
	if !g.cells.InBounds(c.Row, c.Col) || g.State(c) == Open {
		return
	}
	g.cells.Set(c.Row, c.Col, uint8(Open))
	g.opened++
}

// forced lists the entrance and exit pocket cells, which may fall outside
// the grid when a side is shorter than 2.
func (g *Grid) forced() []Cell {
	return []Cell{
		Entrance,
		{Row: g.rows - 1, Col: g.cols - 1},
		{Row: g.rows - 2, Col: g.cols - 1},
		{Row: g.rows - 1, Col: g.cols - 2},
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool { return g.cells.InBounds(c.Row, c.Col) }

// State returns the state of c. Cells outside the grid read as Wall.
func (g *Grid) State(c Cell) State {
	if !g.InBounds(c) {
		return Wall
	}
	return State(g.cells.At(c.Row, c.Col))
}

// Exit returns the corner cell opposite the entrance.
func (g *Grid) Exit() Cell { return Cell{Row: g.rows - 1, Col: g.cols - 1} }

// ExitPocket returns the distinct in-bounds exit cells, corner first.
func (g *Grid) ExitPocket() []Cell {
	forced := g.forced()[1:]
	out := make([]Cell, 0, len(forced))
	seen := mapset.New[Cell]()
	for _, c := range forced {
		if !g.InBounds(c) || seen.Has(c) {
			continue
		}
		seen.Put(c)
		out = append(out, c)
	}
	return out
}

// Opened returns how many cells changed from Wall to Open while the grid was
// built. It always equals the number of open cells.
func (g *Grid) Opened() int { return g.opened }

// Passages returns the number of carve steps taken by the walk.
func (g *Grid) Passages() int { return g.passages }

// WallCells returns every wall cell in row-major order.
func (g *Grid) WallCells() []Cell {
	var out []Cell
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if State(g.cells.At(r, c)) == Wall {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// OpenCells returns every open cell in row-major order except the entrance
// and any cell listed in excluded. Exclusions match by value.
func (g *Grid) OpenCells(excluded ...Cell) []Cell {
	skip := mapset.New[Cell]()
	skip.Put(Entrance)
	for _, c := range excluded {
		skip.Put(c)
	}

	var out []Cell
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := Cell{Row: r, Col: c}
			if State(g.cells.At(r, c)) != Open || skip.Has(cell) {
				continue
			}
			out = append(out, cell)
		}
	}
	return out
}

// BorderCells returns the ring of pseudo-cells one step outside the grid,
// corners included, in row-major order.
func (g *Grid) BorderCells() []Cell {
	out := make([]Cell, 0, 2*(g.cols+2)+2*g.rows)
	for c := -1; c <= g.cols; c++ {
		out = append(out, Cell{Row: -1, Col: c})
	}
	for r := 0; r < g.rows; r++ {
		out = append(out, Cell{Row: r, Col: -1}, Cell{Row: r, Col: g.cols})
	}
	for c := -1; c <= g.cols; c++ {
		out = append(out, Cell{Row: g.rows, Col: c})
	}
	return out
}

// Fingerprint returns a stable 64-bit digest of the dimensions and cell states.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	var hdr []byte
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(g.rows))
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(g.cols))
	_, _ = d.Write(hdr)
	_, _ = d.Write(g.cells.Cells())
	return d.Sum64()
}

// String renders the maze as ASCII: '#' wall, '.' open, 'S' entrance, 'E' exit pocket.
func (g *Grid) String() string {
	exits := mapset.New[Cell]()
	for _, c := range g.ExitPocket() {
		exits.Put(c)
	}

	var sb strings.Builder
	sb.Grow((g.cols + 1) * g.rows)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := Cell{Row: r, Col: c}
			switch {
			case cell == Entrance:
				sb.WriteByte('S')
			case exits.Has(cell):
				sb.WriteByte('E')
			case g.State(cell) == Wall:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
