//go:build ebiten

package app

import (
	"image/color"
	"time"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
	"cellsociety/internal/render"
	"cellsociety/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a rule to the ebiten.Game interface.
type Game struct {
	logic   core.Logic
	initial [][]grid.Record
	painter *render.GridPainter
	palette []color.RGBA
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for l. initial is restored on reset.
func New(l core.Logic, initial [][]grid.Record, cfg Config) *Game {
	g := l.Grid()
	return &Game{
		logic:    l,
		initial:  initial,
		painter:  render.NewGridPainter(g.Cols(), g.Rows()),
		palette:  render.Palette(l.Kind(), l.States().Len()),
		hud:      ui.NewHUD(l, cfg.HUDWidth),
		overlay:  ui.NewOverlay(l, cfg.Scale),
		timer:    core.NewFixedStep(cfg.TPS),
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		seed:     cfg.Seed,
	}
}

// Reset restores the initial grid and reseeds the rule.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	grd := g.logic.Grid()
	if err := grd.SetGrid(g.initial, grd.Factory()); err != nil {
		return
	}
	g.logic.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the rule at its own rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())

	due := g.timer.Due()
	if g.paused {
		due = 0
	}
	if g.tickOnce {
		due = 1
		g.tickOnce = false
	}
	for ; due > 0; due-- {
		g.logic.Step()
	}
	return nil
}

// Draw renders the current generation, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.logic.Grid().Snapshot().Codes(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.logic.Grid().Rows()*g.scale)
}

func (g *Game) gridWidth() int { return g.logic.Grid().Cols() * g.scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridWidth() + g.hudWidth, g.logic.Grid().Rows() * g.scale
}
