// Package mob implements autonomous maze agents that walk in straight lines
// and pick a random new heading whenever the next step would hit a wall.
package mob

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"maze-mobs/internal/maze"
	pcore "maze-mobs/pkg/core"

	"github.com/google/uuid"
)

const (
	// DefaultSpeed is the distance advanced per tick.
	DefaultSpeed = 0.015
	// DefaultSize is the box half-extent.
	DefaultSize = 0.15
)

var (
	ErrInvalidSpeed     = errors.New("mob speed must be positive and finite")
	ErrInvalidSize      = errors.New("mob size must be positive and finite")
	ErrInvalidDirection = errors.New("invalid mob direction")
)

// Position is a continuous world coordinate. X runs along grid rows, Z along columns.
type Position struct {
	X, Z float64
}

// Mob is a single agent. Its position, heading and box always change
// together inside Move, so a Mob must not be read while it is moving.
type Mob struct {
	id    uuid.UUID
	pos   Position
	dir   Direction
	speed float64
	size  float64
	box   Box
	rng   pcore.Rand
}

// Option customizes a Mob at construction.
type Option func(*Mob)

// WithSpeed sets the distance advanced per tick.
func WithSpeed(speed float64) Option { return func(m *Mob) { m.speed = speed } }

// WithSize sets the box half-extent.
func WithSize(size float64) Option { return func(m *Mob) { m.size = size } }

// WithDirection sets the initial heading. The default is Right.
func WithDirection(d Direction) Option { return func(m *Mob) { m.dir = d } }

// WithRand sets the source used to pick headings after a collision.
func WithRand(r pcore.Rand) Option { return func(m *Mob) { m.rng = r } }

// WithID overrides the generated identifier.
func WithID(id uuid.UUID) Option { return func(m *Mob) { m.id = id } }

// New creates a mob at start.
func New(start Position, opts ...Option) (*Mob, error) {
	m := &Mob{
		pos:   start,
		dir:   Right,
		speed: DefaultSpeed,
		size:  DefaultSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	if !positiveFinite(m.speed) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, m.speed)
	}
	if !positiveFinite(m.size) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, m.size)
	}
	if !m.dir.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirection, m.dir)
	}
	if m.id == uuid.Nil {
		m.id = uuid.New()
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.box = boxAt(m.pos, m.dir, m.size)
	return m, nil
}

// Move advances the mob one tick against the given obstacle cells. If the
// box at the next position overlaps any obstacle, the mob stays put, picks a
// uniformly random heading (possibly the same one) and Move returns true.
// Otherwise position and box are committed together.
func (m *Mob) Move(obstacles []maze.Cell) bool {
	next := m.dir.advance(m.pos, m.speed)
	box := boxAt(next, m.dir, m.size)

	for _, c := range obstacles {
		if box.Overlaps(CellBox(c)) {
			m.dir = Directions[m.rng.IntN(len(Directions))]
			return true
		}
	}

	m.pos = next
	m.box = box
	return false
}

// Respawn places the mob at p facing d, keeping its identity. A non-nil rng
// replaces the heading source.
func (m *Mob) Respawn(p Position, d Direction, rng pcore.Rand) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidDirection, d)
	}
	m.pos = p
	m.dir = d
	m.box = boxAt(p, d, m.size)
	if rng != nil {
		m.rng = rng
	}
	return nil
}

// ID returns the mob's identifier.
func (m *Mob) ID() uuid.UUID { return m.id }

// Position returns the current position.
func (m *Mob) Position() Position { return m.pos }

// Direction returns the current heading.
func (m *Mob) Direction() Direction { return m.dir }

// Box returns the box committed by the last successful move.
func (m *Mob) Box() Box { return m.box }

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
