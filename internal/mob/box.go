package mob

import "maze-mobs/internal/maze"

// Box is an axis-aligned rectangle in world units. Left/Right bound x,
// Top/Bottom bound z.
type Box struct {
	Left, Right float64
	Top, Bottom float64
}

// Overlaps reports whether the open interiors of b and o intersect.
// Touching edges do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Left < o.Right && b.Right > o.Left && b.Top < o.Bottom && b.Bottom > o.Top
}

// CellBox returns the unit box centered on a grid cell. A cell's row maps to
// x and its column to z.
func CellBox(c maze.Cell) Box {
	x, z := float64(c.Row), float64(c.Col)
	return Box{Left: x - 0.5, Right: x + 0.5, Top: z - 0.5, Bottom: z + 0.5}
}

// boxAt builds the facing-dependent box: it reaches size ahead of p along
// the heading and size to either side across it, but not behind.
func boxAt(p Position, d Direction, size float64) Box {
	switch d {
	case Up:
		return Box{Left: p.X - size, Right: p.X + size, Top: p.Z - size, Bottom: p.Z}
	case Down:
		return Box{Left: p.X - size, Right: p.X + size, Top: p.Z, Bottom: p.Z + size}
	case Left:
		return Box{Left: p.X - size, Right: p.X, Top: p.Z - size, Bottom: p.Z + size}
	default:
		return Box{Left: p.X, Right: p.X + size, Top: p.Z - size, Bottom: p.Z + size}
	}
}
