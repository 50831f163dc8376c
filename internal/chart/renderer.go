package chart

import (
	"errors"
	"fmt"
	"sync"
)

// ErrRendererClosed is returned by Replace after Close
var ErrRendererClosed = errors.New("chart renderer closed")

// Surface is a drawn chart owned by a canvas until released
type Surface interface {
	Release() error
}

// Canvas draws a series and hands back the resulting surface
type Canvas interface {
	Acquire(Series) (Surface, error)
}

// Handle is the chart currently shown by a Renderer
type Handle struct {
	series  Series
	surface Surface
}

// Series returns the data the handle was drawn from
func (h *Handle) Series() Series { return h.series }

// Surface returns the canvas surface
func (h *Handle) Surface() Surface { return h.surface }

// Renderer keeps at most one live chart. Replacing it releases the previous
// surface before the next one is acquired.
type Renderer struct {
	mu      sync.Mutex
	canvas  Canvas
	current *Handle
	closed  bool
}

// NewRenderer creates a renderer drawing on the given canvas
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Replace releases the current chart, if any, and draws series in its place
func (r *Renderer) Replace(series Series) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRendererClosed
	}
	if err := r.releaseLocked(); err != nil {
		return nil, err
	}

	surface, err := r.canvas.Acquire(series)
	if err != nil {
		return nil, fmt.Errorf("failed to draw chart: %w", err)
	}
	r.current = &Handle{series: series, surface: surface}
	return r.current, nil
}

// Current returns the live handle, or nil
func (r *Renderer) Current() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Close releases the live chart. Further Replace calls fail.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.releaseLocked()
}

func (r *Renderer) releaseLocked() error {
	if r.current == nil {
		return nil
	}
	h := r.current
	r.current = nil
	if err := h.surface.Release(); err != nil {
		return fmt.Errorf("failed to release chart: %w", err)
	}
	return nil
}
