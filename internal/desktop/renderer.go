//go:build !android

package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"beads/internal/bead"
	"beads/internal/desktop/layout"
)

// maxSprites covers a full grid with border, fill and glyph per bead.
const maxSprites = bead.MaxGridSize * bead.MaxGridSize * 3

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32

	uResolution int32

	buf []float32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(beadVertSrc, beadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("bead program: %w", err)
	}
	r := &Renderer{prog: prog}

	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(layout.SpriteFloats * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxSprites*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))

	gl.UseProgram(prog)
	r.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// Draw clears to the grid colour and draws every bead in f.
func (r *Renderer) Draw(f bead.Frame, beadSize, fbW, fbH int) {
	cr, cg, cb := f.GridColor.Floats()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(cr, cg, cb, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// Sprites are laid out in window pixels; scale for HiDPI framebuffers.
	winW, _ := layout.WindowSize(f.Width, f.Height, beadSize)
	scale := float32(fbW) / float32(winW)
	r.buf = layout.Sprites(f, beadSize, r.buf)
	if scale != 1 {
		for i := 0; i+layout.SpriteFloats <= len(r.buf); i += layout.SpriteFloats {
			r.buf[i] *= scale
			r.buf[i+1] *= scale
			r.buf[i+2] *= scale
		}
	}
	count := len(r.buf) / layout.SpriteFloats
	if count == 0 {
		return
	}
	if count > maxSprites {
		count = maxSprites
	}

	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.BufferData(gl.ARRAY_BUFFER, count*layout.SpriteFloats*4, gl.Ptr(r.buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.BindVertexArray(0)
}
