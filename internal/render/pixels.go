package render

import (
	"image/color"
	"math"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillMaskRGBA tints buf by a [0,1] intensity field. Zero intensity stays
// transparent; stronger cells get brighter and more opaque.
func fillMaskRGBA(buf []byte, mask []float32, tint color.RGBA) {
	const (
		maxAlpha      = 160.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, v := range mask {
		base := i * 4
		intensity := clamp01(float64(v))
		if intensity == 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		glow := glowBase + glowRange*math.Sqrt(intensity)
		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// Normalize scales a property field into [0,1] by its largest value.
// Negative values clamp to zero.
func Normalize(field []float32) []float32 {
	var peak float32
	for _, v := range field {
		if v > peak {
			peak = v
		}
	}
	out := make([]float32, len(field))
	if peak <= 0 {
		return out
	}
	for i, v := range field {
		if v > 0 {
			out[i] = v / peak
		}
	}
	return out
}
