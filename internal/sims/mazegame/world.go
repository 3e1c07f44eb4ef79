// Package mazegame runs a maze and its mobs as a tick-driven simulation.
package mazegame

import (
	"fmt"

	"maze-mobs/internal/core"
	"maze-mobs/internal/log"
	"maze-mobs/internal/maze"
	"maze-mobs/internal/mob"
	pcore "maze-mobs/pkg/core"

	"golang.org/x/sync/errgroup"
)

// Stats counts what happened since the last reset.
type Stats struct {
	Ticks      int
	Moves      int
	Collisions int
}

// World owns one maze, the obstacles derived from it and the mobs walking it.
type World struct {
	cfg  Config
	log  log.Log
	seed int64

	grid      *maze.Grid
	obstacles []maze.Cell
	spawns    []maze.Cell
	mobs      []*mob.Mob

	collided []bool
	stats    Stats
	cells    []uint8
}

// Option customizes a World at construction.
type Option func(*World)

// WithLogger routes world events to l instead of the process logger.
func WithLogger(l log.Log) Option {
	return func(w *World) { w.log = l }
}

// NewWithConfig validates cfg and builds a world seeded with cfg.Seed.
func NewWithConfig(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{cfg: cfg, log: log.Provide()}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(log.String("sim", "maze"))
	if err := w.reset(cfg.Seed); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) Name() string { return "maze" }

func (w *World) Size() core.Size { return core.Size{W: w.cfg.Cols, H: w.cfg.Rows} }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Seed returns the seed of the current maze.
func (w *World) Seed() int64 { return w.seed }

// Reset regenerates the maze and respawns every mob. A zero seed reuses the
// configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	if err := w.reset(seed); err != nil {
		w.log.Error("reset failed", log.Int64("seed", seed), log.Error(err))
	}
}

func (w *World) reset(seed int64) error {
	rng := pcore.NewRNG(seed)
	grid, err := maze.New(w.cfg.Rows, w.cfg.Cols, rng)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	border := grid.BorderCells()
	obstacles := append(grid.WallCells(), border...)
	spawns := grid.OpenCells(border...)

	count := w.cfg.Mobs
	if len(spawns) == 0 && count > 0 {
		w.log.Warn("no spawn cells, mobs disabled",
			log.Int("rows", w.cfg.Rows), log.Int("cols", w.cfg.Cols), log.Int("mobs", count))
		count = 0
	}

	mobs := w.mobs[:0]
	for i := 0; i < count; i++ {
		cell := spawns[rng.IntN(len(spawns))]
		dir := mob.Directions[rng.IntN(len(mob.Directions))]
		pos := mob.Position{X: float64(cell.Row), Z: float64(cell.Col)}
		steer := pcore.Derive(seed, uint64(i))

		if i < len(w.mobs) {
			if err := w.mobs[i].Respawn(pos, dir, steer); err != nil {
				return err
			}
			mobs = append(mobs, w.mobs[i])
			continue
		}
		m, err := mob.New(pos,
			mob.WithSpeed(w.cfg.Speed),
			mob.WithSize(w.cfg.Size),
			mob.WithDirection(dir),
			mob.WithRand(steer),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		mobs = append(mobs, m)
	}

	w.seed = seed
	w.grid = grid
	w.obstacles = obstacles
	w.spawns = spawns
	w.mobs = mobs
	w.collided = make([]bool, len(mobs))
	w.stats = Stats{}
	w.cells = make([]uint8, w.cfg.Rows*w.cfg.Cols)

	w.log.Info("maze reset",
		log.Int("rows", w.cfg.Rows),
		log.Int("cols", w.cfg.Cols),
		log.Int64("seed", seed),
		log.Int("mobs", len(mobs)),
		log.Int("spawn_cells", len(spawns)),
		log.Uint64("fingerprint", grid.Fingerprint()),
	)
	return nil
}

// Step moves every mob once. With more than one worker the mobs move
// concurrently; each mob owns its state and steering source, so the outcome
// matches the sequential order.
func (w *World) Step() {
	if w.cfg.Workers > 1 && len(w.mobs) > 1 {
		var g errgroup.Group
		g.SetLimit(w.cfg.Workers)
		for i, m := range w.mobs {
			g.Go(func() error {
				w.collided[i] = m.Move(w.obstacles)
				return nil
			})
		}
		// Move has no failure mode; the group only bounds concurrency and joins.
		_ = g.Wait()
	} else {
		for i, m := range w.mobs {
			w.collided[i] = m.Move(w.obstacles)
		}
	}

	w.stats.Ticks++
	for _, hit := range w.collided {
		if hit {
			w.stats.Collisions++
		} else {
			w.stats.Moves++
		}
	}
}

// Stats returns the counters accumulated since the last reset.
func (w *World) Stats() Stats { return w.stats }

// Grid returns the current maze.
func (w *World) Grid() *maze.Grid { return w.grid }

// Mobs returns the live mobs. The slice is owned by the world.
func (w *World) Mobs() []*mob.Mob { return w.mobs }

// Obstacles returns the wall cells followed by the border ring.
func (w *World) Obstacles() []maze.Cell { return w.obstacles }

// SpawnCells returns the cells mobs were sampled from.
func (w *World) SpawnCells() []maze.Cell { return w.spawns }

// Penetrations returns the indices of mobs whose box overlaps an obstacle.
func (w *World) Penetrations() []int {
	var out []int
	for i, m := range w.mobs {
		box := m.Box()
		for _, c := range w.obstacles {
			if box.Overlaps(mob.CellBox(c)) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func init() {
	core.Register("maze", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		w, err := NewWithConfig(c)
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
