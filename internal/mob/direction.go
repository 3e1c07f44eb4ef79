package mob

import (
	"fmt"
	"strings"
)

// Direction is the axis-aligned heading of a mob.
type Direction uint8

const (
	// Up decreases z.
	Up Direction = iota
	// Down increases z.
	Down
	// Left decreases x.
	Left
	// Right increases x.
	Right
)

// Directions lists every heading a mob can pick after a collision.
var Directions = [...]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool { return d <= Right }

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection maps "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d Direction) advance(p Position, speed float64) Position {
	switch d {
	case Up:
		p.Z -= speed
	case Down:
		p.Z += speed
	case Left:
		p.X -= speed
	case Right:
		p.X += speed
	}
	return p
}
