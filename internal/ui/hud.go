//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"cellsociety/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view.
// Up and Down pick a parameter, Left and Right step it; the +/- buttons do
// the same with the mouse.
type HUD struct {
	controls     *Controls
	width        int
	panel        *ebiten.Image
	lastHeight   int
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for l with the given panel width.
func NewHUD(l core.Logic, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{controls: NewControls(l), width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layoutControls()
	return h
}

// Update refreshes the displayed values and handles HUD input.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.controls.Refresh()
	h.handleKeys()
	h.handleMouse()
}

// Draw paints the HUD panel at offsetX with the given height in pixels.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		h.controls.Select(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		h.controls.Select(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		_ = h.controls.AdjustSelected(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		_ = h.controls.AdjustSelected(1)
	}
}

func (h *HUD) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls.states {
		st := &h.controls.states[i]
		if pointInRect(px, my, st.minusRect) {
			h.controls.selected = i
			_ = h.controls.Adjust(i, -1)
			return
		}
		if pointInRect(px, my, st.plusRect) {
			h.controls.selected = i
			_ = h.controls.Adjust(i, 1)
			return
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.controls.Title(), face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if h.controls.Len() == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i, line := range h.controls.Lines() {
		st := &h.controls.states[i]
		labelY := st.top + labelBaseline
		labelColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if line.Selected {
			labelColor = color.RGBA{R: 255, G: 210, B: 90, A: 255}
		}
		text.Draw(h.panel, line.Label, face, panelPadding, labelY, labelColor)

		bounds := text.BoundString(face, line.Value)
		valueX := st.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, line.Value, face, valueX, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		h.drawButton(st.minusRect, "-", line.CanDec)
		h.drawButton(st.plusRect, "+", line.CanInc)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls.states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls.states[i].top = top
		h.controls.states[i].minusRect = minusRect
		h.controls.states[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
