package maze

import (
	"errors"
	"slices"
	"testing"

	pcore "maze-mobs/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays a fixed sequence of choices, wrapping each into [0, n).
type scripted struct {
	choices []int
	i       int
}

func (s *scripted) IntN(n int) int {
	if len(s.choices) == 0 {
		return 0
	}
	v := s.choices[s.i%len(s.choices)]
	s.i++
	return v % n
}

func mustNew(t *testing.T, rows, cols int, rng pcore.Rand) *Grid {
	t.Helper()
	g, err := New(rows, cols, rng)
	require.NoError(t, err)
	return g
}

func TestGenerateScriptedLayout(t *testing.T) {
	g := mustNew(t, 5, 5, &scripted{})

	want := "S....\n" +
		"####.\n" +
		".....\n" +
		".###E\n" +
		"...EE\n"
	assert.Equal(t, want, g.String())
	assert.Equal(t, 18, g.Opened())
	assert.Equal(t, 7, g.Passages())
	assert.Equal(t, []Cell{
		{1, 0}, {1, 1}, {1, 2}, {1, 3},
		{3, 1}, {3, 2}, {3, 3},
	}, g.WallCells())
}

func TestEntranceAndExitAlwaysOpen(t *testing.T) {
	for _, dims := range [][2]int{{3, 3}, {4, 7}, {6, 6}, {10, 10}, {11, 9}, {16, 16}} {
		for seed := int64(1); seed <= 5; seed++ {
			g := mustNew(t, dims[0], dims[1], pcore.NewRNG(seed))
			require.Equal(t, Open, g.State(Entrance), "entrance %v seed %d", dims, seed)
			pocket := g.ExitPocket()
			require.Len(t, pocket, 3)
			for _, c := range pocket {
				require.Equal(t, Open, g.State(c), "exit cell %v in %v seed %d", c, dims, seed)
			}
			if dims[0]%2 == dims[1]%2 {
				require.NotNil(t, g.Path(Entrance, g.Exit()), "exit unreachable in %v seed %d", dims, seed)
			}
		}
	}
}

// With one side even and the other odd, a forced pocket cell lands on the
// carving lattice already open, so the walk never links into the pocket.
func TestMixedParitySealsExitPocket(t *testing.T) {
	for _, dims := range [][2]int{{4, 7}, {7, 4}, {6, 9}, {10, 11}} {
		for seed := int64(1); seed <= 10; seed++ {
			g := mustNew(t, dims[0], dims[1], pcore.NewRNG(seed))
			for _, c := range g.ExitPocket() {
				require.Equal(t, Open, g.State(c), "exit cell %v in %v seed %d", c, dims, seed)
			}
			assert.Nil(t, g.Path(Entrance, g.Exit()), "exit reachable in %v seed %d", dims, seed)
		}
	}
}

func TestOpenCountMatchesOpened(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := mustNew(t, 12, 9, pcore.NewRNG(seed))
		open := 0
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if g.State(Cell{r, c}) == Open {
					open++
				}
			}
		}
		if open != g.Opened() {
			t.Fatalf("seed %d: %d open cells, %d openings recorded", seed, open, g.Opened())
		}
	}
}

func TestNoOrphanedOpenings(t *testing.T) {
	g := mustNew(t, 10, 14, pcore.NewRNG(3))
	forced := map[Cell]bool{Entrance: true}
	for _, c := range g.ExitPocket() {
		forced[c] = true
	}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := Cell{r, c}
			if g.State(cell) != Open || forced[cell] {
				continue
			}
			// Every carved cell is a lattice node or sits between two lattice nodes.
			if r%2 == 1 && c%2 == 1 {
				t.Fatalf("cell %v has two odd coordinates and cannot be carved", cell)
			}
		}
	}
}

// TestPerfectLattice checks that lattice nodes and the passages between them
// form a spanning tree.
func TestPerfectLattice(t *testing.T) {
	for _, dims := range [][2]int{{4, 4}, {6, 6}, {10, 10}, {8, 12}, {20, 14}} {
		for seed := int64(1); seed <= 5; seed++ {
			g := mustNew(t, dims[0], dims[1], pcore.NewRNG(seed))

			var nodes []Cell
			for r := 0; r < g.Rows(); r += 2 {
				for c := 0; c < g.Cols(); c += 2 {
					nodes = append(nodes, Cell{r, c})
					require.Equal(t, Open, g.State(Cell{r, c}), "lattice node %v closed", Cell{r, c})
				}
			}

			adj := map[Cell][]Cell{}
			edges := 0
			for _, n := range nodes {
				for _, d := range []Cell{{0, 2}, {2, 0}} {
					m := n.Add(d.Row, d.Col)
					if !g.InBounds(m) {
						continue
					}
					mid := n.Add(d.Row/2, d.Col/2)
					if g.State(mid) == Open {
						edges++
						adj[n] = append(adj[n], m)
						adj[m] = append(adj[m], n)
					}
				}
			}
			require.Equal(t, len(nodes)-1, edges, "dims %v seed %d", dims, seed)

			seen := map[Cell]bool{Entrance: true}
			queue := []Cell{Entrance}
			for len(queue) > 0 {
				n := queue[0]
				queue = queue[1:]
				for _, m := range adj[n] {
					if !seen[m] {
						seen[m] = true
						queue = append(queue, m)
					}
				}
			}
			require.Len(t, seen, len(nodes), "lattice disconnected for dims %v seed %d", dims, seed)
		}
	}
}

// With odd sides the exit corner is a lattice node the walk never enters;
// the forced pocket can join two branches and close exactly one loop.
func TestOddDimensionsMayCloseExitLoop(t *testing.T) {
	g := mustNew(t, 5, 5, &scripted{})

	links := 0
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := Cell{r, c}
			if g.State(cell) != Open {
				continue
			}
			if g.State(cell.Add(0, 1)) == Open {
				links++
			}
			if g.State(cell.Add(1, 0)) == Open {
				links++
			}
		}
	}
	assert.Equal(t, g.Opened(), links, "one loop means as many links as open cells")
	assert.Equal(t, []Cell{{4, 2}, {4, 3}, {4, 4}}, g.Path(Cell{4, 2}, g.Exit()))
}

func TestDeterministicGeneration(t *testing.T) {
	a := mustNew(t, 15, 11, &scripted{choices: []int{2, 0, 1, 3, 1}})
	b := mustNew(t, 15, 11, &scripted{choices: []int{2, 0, 1, 3, 1}})
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := mustNew(t, 15, 11, pcore.NewRNG(99))
	d := mustNew(t, 15, 11, pcore.NewRNG(99))
	assert.True(t, slices.Equal(c.WallCells(), d.WallCells()))

	distinct := map[uint64]bool{}
	for seed := int64(1); seed <= 8; seed++ {
		distinct[mustNew(t, 15, 11, pcore.NewRNG(seed)).Fingerprint()] = true
	}
	assert.Greater(t, len(distinct), 1, "different seeds should produce different mazes")
}

func TestWallAndOpenCellsPartition(t *testing.T) {
	g := mustNew(t, 9, 13, pcore.NewRNG(5))
	walls := g.WallCells()
	open := g.OpenCells()

	seen := map[Cell]int{}
	for _, c := range walls {
		seen[c]++
	}
	for _, c := range open {
		seen[c]++
	}
	seen[Entrance]++

	require.Len(t, seen, g.Rows()*g.Cols())
	for c, n := range seen {
		require.Equal(t, 1, n, "cell %v counted %d times", c, n)
	}
	assert.NotContains(t, open, Entrance)
	assert.True(t, slices.IsSortedFunc(walls, rowMajor))
	assert.True(t, slices.IsSortedFunc(open, rowMajor))
}

func rowMajor(a, b Cell) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// The exclusion list must match cells by value: freshly built Cell values
// equal to open cells have to be removed from the result.
func TestOpenCellsExclusionByValue(t *testing.T) {
	g := mustNew(t, 6, 6, pcore.NewRNG(11))
	all := g.OpenCells()
	require.GreaterOrEqual(t, len(all), 3)

	excluded := []Cell{
		{Row: all[0].Row, Col: all[0].Col},
		{Row: all[2].Row, Col: all[2].Col},
	}
	got := g.OpenCells(excluded...)
	assert.Len(t, got, len(all)-2)
	assert.NotContains(t, got, all[0])
	assert.NotContains(t, got, all[2])
	assert.Contains(t, got, all[1])

	// Walls and out-of-grid exclusions change nothing.
	got = g.OpenCells(append(g.WallCells(), g.BorderCells()...)...)
	assert.Equal(t, all, got)
}

func TestBorderCells(t *testing.T) {
	g := mustNew(t, 3, 4, pcore.NewRNG(1))
	border := g.BorderCells()
	assert.Len(t, border, 2*(4+2)+2*3)
	for _, c := range border {
		assert.False(t, g.InBounds(c), "border cell %v inside grid", c)
		assert.Equal(t, Wall, g.State(c))
	}
	assert.Contains(t, border, Cell{-1, -1})
	assert.Contains(t, border, Cell{3, 4})
	assert.Contains(t, border, Cell{1, -1})
	assert.Contains(t, border, Cell{1, 4})
}

func TestDegenerateDimensions(t *testing.T) {
	t.Run("1x1", func(t *testing.T) {
		g := mustNew(t, 1, 1, pcore.NewRNG(1))
		assert.Equal(t, Open, g.State(Entrance))
		assert.Empty(t, g.WallCells())
		assert.Empty(t, g.OpenCells())
		assert.Equal(t, []Cell{{0, 0}}, g.ExitPocket())
		assert.Equal(t, "S\n", g.String())
	})
	t.Run("2x2", func(t *testing.T) {
		g := mustNew(t, 2, 2, pcore.NewRNG(1))
		assert.Empty(t, g.WallCells())
		assert.ElementsMatch(t, []Cell{{0, 1}, {1, 0}, {1, 1}}, g.OpenCells())
		assert.Equal(t, 4, g.Opened())
	})
	t.Run("1x5", func(t *testing.T) {
		g := mustNew(t, 1, 5, pcore.NewRNG(1))
		assert.Empty(t, g.WallCells())
		assert.Len(t, g.ExitPocket(), 2)
		assert.NotNil(t, g.Path(Entrance, g.Exit()))
	})
	t.Run("2x7", func(t *testing.T) {
		g := mustNew(t, 2, 7, pcore.NewRNG(4))
		assert.Equal(t, Open, g.State(Entrance))
		for _, c := range g.ExitPocket() {
			assert.Equal(t, Open, g.State(c))
		}
	})
}

func TestInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, -1}, {MaxDimension + 1, 3}} {
		_, err := New(dims[0], dims[1], pcore.NewRNG(1))
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("dims %v: expected ErrInvalidDimensions, got %v", dims, err)
		}
	}
	if _, err := New(3, 3, nil); !errors.Is(err, ErrNilRand) {
		t.Fatalf("expected ErrNilRand, got %v", err)
	}
}

func TestPathUnreachable(t *testing.T) {
	g := mustNew(t, 5, 5, &scripted{})
	assert.Nil(t, g.Path(Entrance, Cell{1, 1}), "wall target")
	assert.Nil(t, g.Path(Cell{-1, 0}, Entrance), "out-of-grid start")
	assert.Equal(t, []Cell{Entrance}, g.Path(Entrance, Entrance))
}
