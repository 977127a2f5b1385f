//go:build !android

// Package desktop hosts a bead.Engine in a GLFW window.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"beads/internal/bead"
	"beads/internal/desktop/layout"
)

// Options configures the window.
type Options struct {
	Title    string
	BeadSize int
}

// Run opens a window, starts g on engine and drives it until the window
// closes. Window and GL setup failures panic.
func Run(opts Options, engine *bead.Engine, g bead.Game) {
	runtime.LockOSThread()

	w, h := layout.WindowSize(engine.Width(), engine.Height(), opts.BeadSize)
	window, err := initWindow(w, h, opts.Title)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	setTitle := func(status string) {
		if status == "" {
			window.SetTitle(opts.Title)
			return
		}
		window.SetTitle(opts.Title + " - " + status)
	}
	bus := engine.Events()
	bus.Subscribe(bead.EventStatus, func(e bead.Event) { setTitle(e.Text) })
	bus.Subscribe(bead.EventGridResized, func(e bead.Event) {
		window.SetSize(layout.WindowSize(e.X, e.Y, opts.BeadSize))
	})

	NewInput(engine, opts.BeadSize).Attach(window)
	engine.Start(g)
	defer engine.Shutdown()

	step := 1.0 / bead.TicksPerSecond
	acc := 0.0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.25 {
			dt = 0.25
		}

		glfw.PollEvents()

		acc += dt
		for acc >= step {
			engine.Tick()
			acc -= step
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.Draw(engine.Snapshot(), opts.BeadSize, fbW, fbH)
		window.SwapBuffers()
	}
}
