//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"maze-mobs/internal/app"
	"maze-mobs/internal/core"
	"maze-mobs/internal/log"
	_ "maze-mobs/internal/sims/mazegame"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.LevelInfo
	}
	logger := log.New(level)
	defer logger.Sync()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		logger.Error("unknown sim", log.String("sim", cfg.Sim))
		os.Exit(2)
	}
	settings, err := cfg.Settings()
	if err != nil {
		logger.Error("load settings", log.Error(err))
		os.Exit(2)
	}

	sim, err := factory(settings)
	if err != nil {
		logger.Error("invalid sim settings", log.String("sim", cfg.Sim), log.Error(err))
		os.Exit(2)
	}
	if cfg.Seed != 0 {
		sim.Reset(cfg.Seed)
	}

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("maze-mobs - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	logger.Info("viewer started",
		log.String("sim", sim.Name()),
		log.Int("width", size.W),
		log.Int("height", size.H),
		log.Int("tps", cfg.TPS),
	)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("viewer stopped", log.Error(err))
		os.Exit(1)
	}
}
