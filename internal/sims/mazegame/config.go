package mazegame

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"maze-mobs/internal/maze"
	"maze-mobs/internal/mob"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a Config cannot produce a world.
var ErrInvalidConfig = errors.New("invalid maze config")

// Config controls maze dimensions, the mob population and how a world steps.
type Config struct {
	Rows int
	Cols int
	Mobs int

	Speed float64
	Size  float64

	Seed int64

	// Workers > 1 moves mobs concurrently, at most Workers at a time.
	Workers int

	Difficulty string
}

type preset struct {
	rows, cols, mobs int
}

var presets = map[string]preset{
	"easy":   {rows: 6, cols: 6, mobs: 4},
	"medium": {rows: 10, cols: 10, mobs: 8},
	"hard":   {rows: 16, cols: 16, mobs: 16},
}

// Difficulties lists the known preset names in sorted order.
func Difficulties() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultConfig returns the medium preset.
func DefaultConfig() Config {
	c := Config{
		Speed:   mob.DefaultSpeed,
		Size:    mob.DefaultSize,
		Seed:    1,
		Workers: 1,
	}
	_ = c.applyDifficulty("medium")
	return c
}

// Preset returns the default config with the named difficulty applied.
func Preset(name string) (Config, error) {
	c := DefaultConfig()
	if err := c.applyDifficulty(name); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDifficulty(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
	}
	c.Rows, c.Cols, c.Mobs = p.rows, p.cols, p.mobs
	c.Difficulty = name
	return nil
}

// FromMap builds a config from a string map (flag-style key/value pairs) on
// top of the defaults.
func FromMap(cfg map[string]string) (Config, error) {
	return DefaultConfig().Apply(cfg)
}

// Apply returns a copy of c with the given overrides. A "difficulty" key is
// applied before the other keys so they can refine the preset. Unknown keys,
// values that do not parse and a result that fails Validate are errors.
func (c Config) Apply(cfg map[string]string) (Config, error) {
	if v, ok := cfg["difficulty"]; ok {
		if err := c.applyDifficulty(v); err != nil {
			return Config{}, err
		}
	}
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := strings.TrimSpace(cfg[k])
		var err error
		switch k {
		case "difficulty":
		case "rows":
			c.Rows, err = strconv.Atoi(v)
		case "cols":
			c.Cols, err = strconv.Atoi(v)
		case "mobs":
			c.Mobs, err = strconv.Atoi(v)
		case "speed":
			c.Speed, err = strconv.ParseFloat(v, 64)
		case "size":
			c.Size, err = strconv.ParseFloat(v, 64)
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "workers":
			c.Workers, err = strconv.Atoi(v)
		default:
			return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, k)
		}
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, k, cfg[k], err)
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first problem that would stop a world from being built.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 || c.Rows > maze.MaxDimension || c.Cols > maze.MaxDimension {
		return fmt.Errorf("%w: %w: %dx%d", ErrInvalidConfig, maze.ErrInvalidDimensions, c.Rows, c.Cols)
	}
	if c.Mobs < 0 {
		return fmt.Errorf("%w: negative mob count %d", ErrInvalidConfig, c.Mobs)
	}
	if !(c.Speed > 0) || math.IsInf(c.Speed, 1) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, mob.ErrInvalidSpeed, c.Speed)
	}
	if !(c.Size > 0) || math.IsInf(c.Size, 1) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, mob.ErrInvalidSize, c.Size)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	}
	if c.Difficulty != "" {
		if _, ok := presets[c.Difficulty]; !ok {
			return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, c.Difficulty)
		}
	}
	return nil
}

type fileConfig struct {
	Difficulty *string  `yaml:"difficulty"`
	Rows       *int     `yaml:"rows"`
	Cols       *int     `yaml:"cols"`
	Mobs       *int     `yaml:"mobs"`
	Speed      *float64 `yaml:"speed"`
	Size       *float64 `yaml:"size"`
	Seed       *int64   `yaml:"seed"`
	Workers    *int     `yaml:"workers"`
}

// LoadYAML reads a config document. Missing keys keep their defaults, a
// difficulty key is applied first, and unknown keys are rejected.
func LoadYAML(r io.Reader) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c := DefaultConfig()
	if fc.Difficulty != nil {
		if err := c.applyDifficulty(*fc.Difficulty); err != nil {
			return Config{}, err
		}
	}
	if fc.Rows != nil {
		c.Rows = *fc.Rows
	}
	if fc.Cols != nil {
		c.Cols = *fc.Cols
	}
	if fc.Mobs != nil {
		c.Mobs = *fc.Mobs
	}
	if fc.Speed != nil {
		c.Speed = *fc.Speed
	}
	if fc.Size != nil {
		c.Size = *fc.Size
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}
	if fc.Workers != nil {
		c.Workers = *fc.Workers
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile reads a YAML config from path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// Bind registers one flag per config key, defaulting to the current values.
// Use Overrides after parsing to collect only the flags the user set.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Difficulty, "difficulty", c.Difficulty, "preset: "+strings.Join(Difficulties(), ", "))
	fs.IntVar(&c.Rows, "rows", c.Rows, "maze rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "maze columns")
	fs.IntVar(&c.Mobs, "mobs", c.Mobs, "number of mobs")
	fs.Float64Var(&c.Speed, "speed", c.Speed, "mob distance per tick")
	fs.Float64Var(&c.Size, "size", c.Size, "mob box half-extent")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "maze and spawn seed")
	fs.IntVar(&c.Workers, "workers", c.Workers, "concurrent mob updates per tick")
}

var configKeys = map[string]bool{
	"difficulty": true, "rows": true, "cols": true, "mobs": true,
	"speed": true, "size": true, "seed": true, "workers": true,
}

// Overrides returns the config flags that were explicitly set on fs, keyed
// the way Apply expects.
func Overrides(fs *flag.FlagSet) map[string]string {
	out := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		if configKeys[f.Name] {
			out[f.Name] = f.Value.String()
		}
	})
	return out
}
