// Command maze-sweep generates mazes for a range of seeds, runs the mobs for a
// fixed number of ticks on each and reports any mob that ended a tick inside
// a wall.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"maze-mobs/internal/app"
	"maze-mobs/internal/core"
	"maze-mobs/internal/log"
	"maze-mobs/internal/maze"
	"maze-mobs/internal/sims/mazegame"

	"golang.org/x/sync/errgroup"
)

type options struct {
	seeds     int
	startSeed int64
	ticks     int
	parallel  int
	tps       int
	print     bool
}

type result struct {
	seed        int64
	fingerprint uint64
	pathLen     int
	stats       mazegame.Stats
	// firstBreach is the tick on which a mob first overlapped an obstacle, or -1.
	firstBreach int
	breached    []int
	maze        string
	elapsed     time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("maze-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.IntVar(&opts.seeds, "seeds", 8, "number of consecutive seeds to run")
	fs.Int64Var(&opts.startSeed, "start-seed", 1, "first seed")
	fs.IntVar(&opts.ticks, "ticks", 1000, "ticks to simulate per seed")
	fs.IntVar(&opts.parallel, "parallel", runtime.NumCPU(), "seeds simulated concurrently")
	fs.IntVar(&opts.tps, "tps", 0, "pace each run at this many ticks per second (0 runs unpaced)")
	fs.BoolVar(&opts.print, "print", false, "print each maze as ASCII")
	configPath := fs.String("config", "", "YAML file with maze settings")
	logLevel := fs.String("log-level", "warn", "debug, info, warn or error")
	var sets app.KeyValues
	fs.Var(&sets, "set", "maze setting in key=value form (repeatable)")
	scratch := mazegame.DefaultConfig()
	scratch.Bind(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := log.New(level)
	defer logger.Sync()

	cfg := mazegame.DefaultConfig()
	if *configPath != "" {
		cfg, err = mazegame.LoadFile(*configPath)
		if err != nil {
			logger.Error("load config", log.String("path", *configPath), log.Error(err))
			return 2
		}
	}
	overrides := mazegame.Overrides(fs)
	for k, v := range sets.Map() {
		overrides[k] = v
	}
	cfg, err = cfg.Apply(overrides)
	if err != nil {
		logger.Error("invalid config", log.Error(err))
		return 2
	}
	if opts.seeds < 1 || opts.ticks < 0 {
		logger.Error("seeds must be positive and ticks non-negative",
			log.Int("seeds", opts.seeds), log.Int("ticks", opts.ticks))
		return 2
	}

	logger.Info("sweep started",
		log.Int("seeds", opts.seeds),
		log.Int64("start_seed", opts.startSeed),
		log.Int("ticks", opts.ticks),
		log.Int("rows", cfg.Rows),
		log.Int("cols", cfg.Cols),
		log.Int("mobs", cfg.Mobs),
	)

	start := time.Now()
	results, err := sweep(context.Background(), cfg, opts, logger)
	if err != nil {
		logger.Error("sweep failed", log.Error(err))
		return 1
	}

	failed := report(stdout, results, opts.print)
	logger.Info("sweep finished",
		log.Int("failed", failed),
		log.Duration("elapsed", time.Since(start)),
	)
	if failed > 0 {
		return 1
	}
	return 0
}

func sweep(ctx context.Context, cfg mazegame.Config, opts options, logger log.Log) ([]result, error) {
	results := make([]result, opts.seeds)
	g, ctx := errgroup.WithContext(ctx)
	if opts.parallel > 0 {
		g.SetLimit(opts.parallel)
	}
	for i := range results {
		seed := opts.startSeed + int64(i)
		g.Go(func() error {
			res, err := runSeed(ctx, cfg, seed, opts, logger.With(log.Int64("seed", seed)))
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(a, b int) bool { return results[a].seed < results[b].seed })
	return results, nil
}

func runSeed(ctx context.Context, cfg mazegame.Config, seed int64, opts options, logger log.Log) (result, error) {
	cfg.Seed = seed
	w, err := mazegame.NewWithConfig(cfg, mazegame.WithLogger(logger))
	if err != nil {
		return result{}, err
	}

	var pacer *core.FixedStep
	if opts.tps > 0 {
		pacer = core.NewFixedStep(opts.tps)
	}

	res := result{seed: seed, firstBreach: -1}
	began := time.Now()
	for tick := 0; tick < opts.ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return result{}, err
		}
		if pacer != nil {
			pacer.Wait()
		}
		w.Step()
		if breached := w.Penetrations(); len(breached) > 0 && res.firstBreach < 0 {
			res.firstBreach = tick
			res.breached = breached
			logger.Warn("mob overlapped an obstacle",
				log.Int("tick", tick), log.Any("mobs", breached))
		}
	}
	res.elapsed = time.Since(began)

	grid := w.Grid()
	res.fingerprint = grid.Fingerprint()
	res.pathLen = len(grid.Path(maze.Entrance, grid.Exit()))
	res.stats = w.Stats()
	if opts.print {
		res.maze = grid.String()
	}
	logger.Debug("seed finished",
		log.Uint64("fingerprint", res.fingerprint),
		log.Int("moves", res.stats.Moves),
		log.Int("collisions", res.stats.Collisions),
		log.Duration("elapsed", res.elapsed),
	)
	return res, nil
}

// report writes one row per seed and returns how many seeds breached.
func report(w io.Writer, results []result, printMaze bool) int {
	failed := 0
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "seed\tfingerprint\tpath\tticks\tmoves\tcollisions\tstatus")
	for _, r := range results {
		status := "ok"
		if r.firstBreach >= 0 {
			status = fmt.Sprintf("BREACH tick=%d mobs=%v", r.firstBreach, r.breached)
			failed++
		}
		fmt.Fprintf(tw, "%d\t%016x\t%d\t%d\t%d\t%d\t%s\n",
			r.seed, r.fingerprint, r.pathLen, r.stats.Ticks, r.stats.Moves, r.stats.Collisions, status)
	}
	tw.Flush()

	if printMaze {
		for _, r := range results {
			fmt.Fprintf(w, "\nseed %d\n%s", r.seed, r.maze)
		}
	}
	return failed
}
