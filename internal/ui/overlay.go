//go:build ebiten

package ui

import (
	"image/color"

	"cellsociety/internal/core"
	"cellsociety/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var maskTint = color.RGBA{R: 255, G: 120, B: 40, A: 255}

// Overlay tints the grid by one cell property. O cycles through the
// properties present on the grid and finally turns the overlay off.
type Overlay struct {
	logic   core.Logic
	scale   int
	cycle   MaskCycle
	painter *render.GridPainter
}

// NewOverlay constructs an overlay for l drawn at scale.
func NewOverlay(l core.Logic, scale int) *Overlay {
	g := l.Grid()
	return &Overlay{logic: l, scale: scale, painter: render.NewGridPainter(g.Cols(), g.Rows())}
}

// Update handles the overlay toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		o.cycle.Refresh(o.logic.Grid().Snapshot())
		o.cycle.Next()
	}
}

// Draw renders the active property mask and its name.
func (o *Overlay) Draw(screen *ebiten.Image) {
	key, ok := o.cycle.Active()
	if !ok {
		return
	}
	o.painter.BlitMask(screen, o.cycle.Mask(o.logic.Grid().Snapshot()), maskTint, o.scale)
	text.Draw(screen, key, basicfont.Face7x13, 4, 14, color.White)
}
