// Package layout converts engine frames into sprite buffers and maps
// window coordinates back to beads. It has no GL dependency.
package layout

import (
	"math"

	"beads/internal/bead"
)

// SpriteFloats is the number of floats per sprite:
// x, y, size, r, g, b, a, rotation.
const SpriteFloats = 8

// Padding is the margin in pixels around the grid.
const Padding = 8

// BorderColor is drawn under each bead where its border shows.
var BorderColor = bead.Gray

// WindowSize returns the framebuffer size for a w x h grid.
func WindowSize(w, h, beadSize int) (int, int) {
	return w*beadSize + 2*Padding, h*beadSize + 2*Padding
}

// BeadAt maps a pixel position to bead coordinates. Positions outside
// the grid map to coordinates InGrid rejects.
func BeadAt(px, py float64, beadSize int) (int, int) {
	s := float64(beadSize)
	x := int(math.Floor((px - Padding) / s))
	y := int(math.Floor((py - Padding) / s))
	return x, y
}

// Sprites appends the sprites for f to buf and returns it. Each bead
// emits a border square, a fill square inset by the border width, and a
// marker when a glyph is set.
func Sprites(f bead.Frame, beadSize int, buf []float32) []float32 {
	buf = buf[:0]
	s := float32(beadSize)
	br, bg, bb := BorderColor.Floats()
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			b := f.Beads[y*f.Width+x]
			cx := float32(Padding) + (float32(x)+0.5)*s
			cy := float32(Padding) + (float32(y)+0.5)*s
			size := s - 1

			if b.Border > 0 {
				buf = append(buf, cx, cy, size, br, bg, bb, 1, 0)
				size -= float32(2 * b.Border)
				if size < 1 {
					size = 1
				}
			}
			r, g, bl := b.Color.Floats()
			buf = append(buf, cx, cy, size, r, g, bl, 1, 0)

			if b.Glyph != 0 {
				gr, gg, gb := GlyphColor(b.Color).Floats()
				buf = append(buf, cx, cy, s/3, gr, gg, gb, 1, math.Pi/4)
			}
		}
	}
	return buf
}

// GlyphColor picks black or white, whichever contrasts with c.
func GlyphColor(c bead.Color) bead.Color {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum > 140 {
		return bead.Black
	}
	return bead.White
}
