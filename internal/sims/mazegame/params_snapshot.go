package mazegame

import "maze-mobs/internal/core"

func (w *World) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "Maze",
				Params: []core.Parameter{
					core.StringParam("difficulty", "Difficulty", w.cfg.Difficulty),
					core.IntParam("rows", "Rows", w.cfg.Rows),
					core.IntParam("cols", "Cols", w.cfg.Cols),
					core.Int64Param("seed", "Seed", w.seed),
					core.IntParam("passages", "Passages", w.grid.Passages()),
				},
			},
			{
				Name: "Mobs",
				Params: []core.Parameter{
					core.IntParam("mobs", "Mobs", len(w.mobs)),
					core.FloatParam("speed", "Speed", w.cfg.Speed),
					core.FloatParam("size", "Size", w.cfg.Size),
					core.IntParam("workers", "Workers", w.cfg.Workers),
				},
			},
			{
				Name: "Stats",
				Params: []core.Parameter{
					core.IntParam("ticks", "Ticks", w.stats.Ticks),
					core.IntParam("moves", "Moves", w.stats.Moves),
					core.IntParam("collisions", "Collisions", w.stats.Collisions),
				},
			},
		},
	}
}
