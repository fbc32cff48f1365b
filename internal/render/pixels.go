// Package render uploads world colors into pixel buffers.
package render

import "image/color"

// fillColorsRGBA copies per-cell colors into an RGBA byte buffer.
func fillColorsRGBA(buf []byte, colors []color.RGBA) {
	for i, col := range colors {
		base := i * 4
		if base+3 >= len(buf) {
			return
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
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

// Mode selects what the painter shows.
type Mode int

const (
	// ModeColor shows each element's live color, including glow and fades.
	ModeColor Mode = iota
	// ModeMaterial flattens every element to its material's base color.
	ModeMaterial
)

func (m Mode) String() string {
	if m == ModeMaterial {
		return "material"
	}
	return "color"
}

// Source is what the painter reads each frame.
type Source interface {
	Colors() []color.RGBA
	Cells() []uint8
	Palette() []color.RGBA
}

// Fill writes the frame for mode into buf, which must hold four bytes per
// cell.
func Fill(buf []byte, src Source, mode Mode) {
	if mode == ModeMaterial {
		fillPaletteRGBA(buf, src.Cells(), src.Palette())
		return
	}
	fillColorsRGBA(buf, src.Colors())
}
