package render

import (
	"image/color"

	"cellsociety/internal/core"
)

var palettes = map[core.Kind][]color.RGBA{
	core.KindLife: {
		{R: 0, G: 0, B: 0, A: 255},
		{R: 240, G: 240, B: 240, A: 255},
	},
	core.KindFire: {
		{R: 60, G: 40, B: 20, A: 255},
		{R: 34, G: 139, B: 34, A: 255},
		{R: 255, G: 96, B: 0, A: 255},
	},
	core.KindPercolation: {
		{R: 230, G: 230, B: 230, A: 255},
		{R: 30, G: 30, B: 30, A: 255},
		{R: 40, G: 110, B: 220, A: 255},
	},
	core.KindSegregation: {
		{R: 245, G: 245, B: 245, A: 255},
		{R: 220, G: 60, B: 60, A: 255},
		{R: 50, G: 90, B: 210, A: 255},
	},
	core.KindWaTor: {
		{R: 10, G: 40, B: 90, A: 255},
		{R: 150, G: 150, B: 160, A: 255},
		{R: 250, G: 200, B: 40, A: 255},
	},
	core.KindAnt: {
		{R: 200, G: 180, B: 140, A: 255},
		{R: 120, G: 60, B: 20, A: 255},
		{R: 60, G: 190, B: 60, A: 255},
		{R: 70, G: 70, B: 70, A: 255},
	},
	core.KindSugarscape: {
		{R: 250, G: 240, B: 200, A: 255},
		{R: 200, G: 40, B: 40, A: 255},
	},
	core.KindBacteria: {
		{R: 200, G: 60, B: 60, A: 255},
		{R: 60, G: 200, B: 60, A: 255},
		{R: 60, G: 60, B: 200, A: 255},
	},
	core.KindFallingSand: {
		{R: 0, G: 0, B: 0, A: 255},
		{R: 230, G: 200, B: 120, A: 255},
		{R: 40, G: 120, B: 230, A: 255},
		{R: 120, G: 120, B: 120, A: 255},
	},
	core.KindDarwin: {
		{R: 20, G: 20, B: 24, A: 255},
		{R: 90, G: 200, B: 90, A: 255},
		{R: 240, G: 200, B: 60, A: 255},
		{R: 200, G: 60, B: 160, A: 255},
		{R: 60, G: 160, B: 240, A: 255},
	},
}

// Palette returns the colors for kind indexed by state code, padded with
// generated colors up to n entries.
func Palette(kind core.Kind, n int) []color.RGBA {
	out := append([]color.RGBA(nil), palettes[kind]...)
	for i := len(out); i < n; i++ {
		out = append(out, generated(i))
	}
	return out
}

// generated spreads extra colors around the hue circle.
func generated(i int) color.RGBA {
	h := float64((i*67)%360) / 60
	x := uint8(255 * (1 - abs(mod2(h)-1)))
	switch int(h) {
	case 0:
		return color.RGBA{R: 255, G: x, A: 255}
	case 1:
		return color.RGBA{R: x, G: 255, A: 255}
	case 2:
		return color.RGBA{G: 255, B: x, A: 255}
	case 3:
		return color.RGBA{G: x, B: 255, A: 255}
	case 4:
		return color.RGBA{R: x, B: 255, A: 255}
	default:
		return color.RGBA{R: 255, B: x, A: 255}
	}
}

func mod2(v float64) float64 {
	for v >= 2 {
		v -= 2
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
