//go:build ebiten

package ui

import (
	"image/color"

	"maze-mobs/internal/core"
	"maze-mobs/internal/maze"
	"maze-mobs/internal/mob"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type mobProvider interface {
	Mobs() []*mob.Mob
}

type gridProvider interface {
	Grid() *maze.Grid
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim   core.Sim
	scale int

	showBoxes bool
	showPath  bool

	paths pathCache
}

// NewOverlay constructs a new overlay instance. Mob boxes are shown by default.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, showBoxes: true}
}

// Update toggles layers: 1 mob boxes, 2 entrance-to-exit path.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBoxes = !o.showBoxes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showPath = !o.showPath
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showPath {
		if provider, ok := o.sim.(gridProvider); ok {
			o.drawPath(screen, provider.Grid(), scale)
		}
	}
	if o.showBoxes {
		if provider, ok := o.sim.(mobProvider); ok {
			o.drawBoxes(screen, provider.Mobs(), scale)
		}
	}
}

func (o *Overlay) drawBoxes(screen *ebiten.Image, mobs []*mob.Mob, scale int) {
	stroke := color.RGBA{R: 255, G: 235, B: 120, A: 255}
	for _, m := range mobs {
		r := boxRect(m.Box(), scale)
		vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, stroke, false)
	}
}

func (o *Overlay) drawPath(screen *ebiten.Image, g *maze.Grid, scale int) {
	if g == nil {
		return
	}
	path := o.paths.get(g)
	trail := color.RGBA{R: 90, G: 200, B: 255, A: 200}
	width := float32(scale) / 6
	if width < 1 {
		width = 1
	}
	for i := 1; i < len(path); i++ {
		x0, y0 := cellCenter(path[i-1], scale)
		x1, y1 := cellCenter(path[i], scale)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, trail, true)
	}
}
