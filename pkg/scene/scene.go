// Package scene connects a line manager to a renderer and a host that owns
// the clock and the canvas.
//
// The host calls [Harness.OnResize] whenever the canvas changes,
// [Harness.OnFrame] once per tick with the current time and
// [Harness.OnTeardown] exactly once at the end.
package scene

import (
	"fmt"
	"sync"

	"github.com/matzehuels/weave/pkg/errors"
	"github.com/matzehuels/weave/pkg/viewport"
	"github.com/matzehuels/weave/pkg/weave"
)

// Renderer draws frames.
type Renderer interface {
	Render(weave.Frame) error
	Close() error
}

// RendererFunc adapts a function to a Renderer with a no-op Close.
type RendererFunc func(weave.Frame) error

func (f RendererFunc) Render(fr weave.Frame) error { return f(fr) }
func (RendererFunc) Close() error                  { return nil }

// Discard renders nothing.
var Discard Renderer = RendererFunc(func(weave.Frame) error { return nil })

// Harness drives one manager and one renderer.
type Harness struct {
	manager  *weave.Manager
	renderer Renderer

	lastT    float64
	started  bool
	teardown sync.Once
	closed   bool
}

// New returns a harness. A nil renderer discards frames.
func New(m *weave.Manager, r Renderer) *Harness {
	if r == nil {
		r = Discard
	}
	return &Harness{manager: m, renderer: r}
}

// Manager returns the driven manager.
func (h *Harness) Manager() *weave.Manager { return h.manager }

// OnResize rebuilds the camera for a canvas of width x height CSS pixels.
func (h *Harness) OnResize(pixelRatio float64, width, height int) {
	h.manager.Resize(viewport.Resize(pixelRatio, width, height))
}

// OnFrame advances to t, renders and returns the frame. Time must not go
// backwards.
func (h *Harness) OnFrame(t float64) (weave.Frame, error) {
	if h.closed {
		return weave.Frame{}, errors.New(errors.ErrCodeInternal, "frame requested after teardown")
	}
	if err := errors.ValidateTime(t); err != nil {
		return weave.Frame{}, err
	}
	if h.started && t < h.lastT {
		return weave.Frame{}, errors.New(errors.ErrCodeInvalidTime, "time went backwards: %v after %v", t, h.lastT)
	}
	h.started, h.lastT = true, t

	f := h.manager.Update(t)
	if err := h.renderer.Render(f); err != nil {
		return f, fmt.Errorf("render frame at %.3fs: %w", t, err)
	}
	return f, nil
}

// OnTeardown releases the manager and the renderer. Later calls are no-ops.
func (h *Harness) OnTeardown() error {
	var err error
	h.teardown.Do(func() {
		h.closed = true
		h.manager.Close()
		err = h.renderer.Close()
	})
	return err
}
