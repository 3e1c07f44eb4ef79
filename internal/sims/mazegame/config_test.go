package mazegame

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maze-mobs/internal/maze"
	"maze-mobs/internal/mob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsMedium(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "medium", c.Difficulty)
	assert.Equal(t, 10, c.Rows)
	assert.Equal(t, 10, c.Cols)
	assert.Equal(t, 8, c.Mobs)
	assert.Equal(t, mob.DefaultSpeed, c.Speed)
	assert.Equal(t, mob.DefaultSize, c.Size)
	assert.NoError(t, c.Validate())
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"easy", "hard", "medium"}, Difficulties())
	cases := map[string][3]int{
		"easy":   {6, 6, 4},
		"Medium": {10, 10, 8},
		" hard ": {16, 16, 16},
	}
	for name, want := range cases {
		c, err := Preset(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, [3]int{c.Rows, c.Cols, c.Mobs}, name)
	}

	_, err := Preset("nightmare")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{
		"difficulty": "hard",
		"rows":       "12",
		"mobs":       "3",
		"speed":      "0.05",
		"seed":       "-4",
		"workers":    "8",
	})
	require.NoError(t, err)
	assert.Equal(t, "hard", c.Difficulty)
	assert.Equal(t, 12, c.Rows)
	assert.Equal(t, 16, c.Cols)
	assert.Equal(t, 3, c.Mobs)
	assert.Equal(t, 0.05, c.Speed)
	assert.Equal(t, int64(-4), c.Seed)
	assert.Equal(t, 8, c.Workers)

	c, err = FromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestFromMapRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown difficulty": {"difficulty": "nightmare"},
		"zero rows":          {"rows": "0"},
		"negative cols":      {"cols": "-4"},
		"unparsable cols":    {"cols": "wide"},
		"zero speed":         {"speed": "0"},
		"negative speed":     {"speed": "-1"},
		"negative size":      {"size": "-2"},
		"nan speed":          {"speed": "NaN"},
		"negative mobs":      {"mobs": "-1"},
		"negative workers":   {"workers": "-3"},
		"unparsable seed":    {"seed": "1.5"},
		"unknown key":        {"colour": "red"},
	}
	for name, overrides := range cases {
		c, err := FromMap(overrides)
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
		assert.Equal(t, Config{}, c, name)
	}
}

func TestApplyKeepsBaseOnError(t *testing.T) {
	base, err := Preset("easy")
	require.NoError(t, err)
	_, err = base.Apply(map[string]string{"rows": "8", "speed": "-1"})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, mob.ErrInvalidSpeed)
	assert.Equal(t, 6, base.Rows)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		also   error
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }, maze.ErrInvalidDimensions},
		{"huge cols", func(c *Config) { c.Cols = maze.MaxDimension + 1 }, maze.ErrInvalidDimensions},
		{"negative mobs", func(c *Config) { c.Mobs = -1 }, nil},
		{"nan speed", func(c *Config) { c.Speed = math.NaN() }, mob.ErrInvalidSpeed},
		{"inf size", func(c *Config) { c.Size = math.Inf(1) }, mob.ErrInvalidSize},
		{"negative workers", func(c *Config) { c.Workers = -1 }, nil},
		{"unknown difficulty", func(c *Config) { c.Difficulty = "nightmare" }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(&c)
			err := c.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			if tc.also != nil {
				assert.ErrorIs(t, err, tc.also)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
difficulty: easy
mobs: 20
seed: 99
workers: 2
`
	c, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "easy", c.Difficulty)
	assert.Equal(t, 6, c.Rows)
	assert.Equal(t, 6, c.Cols)
	assert.Equal(t, 20, c.Mobs)
	assert.Equal(t, int64(99), c.Seed)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, mob.DefaultSpeed, c.Speed)
}

func TestLoadYAMLEmptyDocumentKeepsDefaults(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadYAMLErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":        "colour: red\n",
		"bad type":           "rows: many\n",
		"unknown difficulty": "difficulty: nightmare\n",
		"invalid value":      "size: -1\n",
	} {
		_, err := LoadYAML(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte("difficulty: hard\ncols: 20\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 16, c.Rows)
	assert.Equal(t, 20, c.Cols)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBindAndOverrides(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	scratch := DefaultConfig()
	scratch.Bind(fs)
	fs.Bool("print", false, "unrelated")
	require.NoError(t, fs.Parse([]string{"-difficulty", "easy", "-mobs", "20", "-print"}))

	got := Overrides(fs)
	assert.Equal(t, map[string]string{"difficulty": "easy", "mobs": "20"}, got)

	base, err := Preset("hard")
	require.NoError(t, err)
	c, err := base.Apply(got)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Rows)
	assert.Equal(t, 20, c.Mobs)
}
