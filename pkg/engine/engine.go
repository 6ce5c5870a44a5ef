// Package engine drives a scene through frames: it owns the frame
// counter and clock, runs the update traversal, and walks renderable
// nodes for the render phase, with per-node panic isolation so one
// faulty component cannot take the frame loop down.
package engine

import (
	"time"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/scene"
)

// Renderer receives frame boundaries around the render walk. Drawing
// itself happens in each renderable behavior through its own
// collaborators; the renderer brackets the pass (acquire target,
// present, swap).
type Renderer interface {
	BeginFrame(ctx *scene.FrameContext)
	EndFrame(ctx *scene.FrameContext)
}

// Engine steps one scene. Not safe for concurrent use; all stepping
// happens on the update thread.
type Engine struct {
	scene    *scene.Scene
	clock    Clock
	log      scene.Logger
	renderer Renderer
	stats    *StatsBuffer

	frame uint64
	last  time.Time
}

// New returns an engine stepping s with the system clock and a stats
// window of the default size.
func New(s *scene.Scene) *Engine {
	return &Engine{
		scene: s,
		clock: realClock{},
		log:   scene.NopLogger{},
		stats: NewStatsBuffer(0),
	}
}

// SetClock replaces the engine's clock and returns the previous one so
// tests can restore it during cleanup.
func (e *Engine) SetClock(c Clock) Clock {
	prev := e.clock
	if c != nil {
		e.clock = c
	}
	return prev
}

// SetLogger replaces the log sink threaded through frame contexts.
func (e *Engine) SetLogger(l scene.Logger) {
	if l == nil {
		l = scene.NopLogger{}
	}
	e.log = l
}

// SetRenderer installs the renderer bracketing render walks.
func (e *Engine) SetRenderer(r Renderer) {
	e.renderer = r
}

// Scene returns the scene the engine steps.
func (e *Engine) Scene() *scene.Scene {
	return e.scene
}

// Frame returns the number of frames stepped so far.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// Stats returns the engine's frame sample window.
func (e *Engine) Stats() *StatsBuffer {
	return e.stats
}

// Step advances the scene by delta: one update traversal from the
// root, draining each active node's queue and advancing its cells
// before its behavior observes the frame. Returns the frame context so
// callers can pass it to RenderFrame.
func (e *Engine) Step(delta time.Duration) *scene.FrameContext {
	e.frame++
	ctx := &scene.FrameContext{Delta: delta, Frame: e.frame, Log: e.log}

	start := e.clock.Now()
	if root := e.scene.Root(); root != nil {
		root.Update(ctx)
	}
	e.stats.Add(FrameSample{
		Frame:    e.frame,
		Delta:    delta,
		Duration: e.clock.Now().Sub(start),
		Nodes:    e.scene.NodeCount(),
	})
	return ctx
}

// RenderFrame runs the render phase for a stepped frame: every Active
// node with a Renderable behavior draws once, parents before children
// in child-list order. Values are stable here; the update traversal
// for ctx's frame has already completed. A panicking Draw is reported
// and the walk continues with the next node.
func (e *Engine) RenderFrame(ctx *scene.FrameContext) {
	root := e.scene.Root()
	if root == nil {
		return
	}
	if e.renderer != nil {
		e.renderer.BeginFrame(ctx)
	}
	e.render(root, ctx)
	if e.renderer != nil {
		e.renderer.EndFrame(ctx)
	}
}

// StepFrame advances the scene by the wall time elapsed since the
// previous StepFrame call, then renders. The first call advances by
// zero. This is the whole-frame convenience for real-time loops;
// fixed-step callers use Step and RenderFrame directly.
func (e *Engine) StepFrame() {
	now := e.clock.Now()
	var delta time.Duration
	if !e.last.IsZero() {
		delta = now.Sub(e.last)
	}
	e.last = now
	ctx := e.Step(delta)
	e.RenderFrame(ctx)
}

func (e *Engine) render(n *scene.Node, ctx *scene.FrameContext) {
	if !n.Active() {
		return
	}
	if r, ok := n.Behavior().(scene.Renderable); ok {
		e.safeDraw(r, n, ctx)
	}
	for _, c := range n.Children() {
		e.render(c, ctx)
	}
}

func (e *Engine) safeDraw(r scene.Renderable, n *scene.Node, ctx *scene.FrameContext) {
	defer func() {
		if rec := recover(); rec != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "engine.Engine.RenderFrame",
				Node:       n.Path(),
				Value:      rec,
				StackTrace: errors.CaptureStack(),
			})
		}
	}()
	r.Draw(n, ctx)
}
