package enginetest

import (
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/go-ember/ember/pkg/content"
	"github.com/go-ember/ember/pkg/engine"
	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/scene"
	"github.com/go-ember/ember/pkg/template"
)

// FrameDuration is the simulated frame length PumpAndSettle uses.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = stderrors.New("PumpAndSettle timed out: scene did not settle")

// SceneTester drives an isolated scene through deterministic frames.
// It wires a scene, registry, factory, content manager and engine to a
// fake clock, and captures everything reported through the error
// handler while it is installed.
type SceneTester struct {
	scene    *scene.Scene
	registry *scene.Registry
	resolver scene.StaticResolver
	manager  *content.Manager
	eng      *engine.Engine
	clock    *FakeClock
	recorder *recordingHandler
}

// NewSceneTester creates a tester with an active root and the error
// handler replaced by a recording one. Call Cleanup when done, or use
// NewSceneTesterWithT instead.
func NewSceneTester() *SceneTester {
	s := scene.NewScene()
	registry := scene.NewRegistry()
	resolver := scene.StaticResolver{}
	st := &SceneTester{
		scene:    s,
		registry: registry,
		resolver: resolver,
		manager:  content.NewManager(scene.NewFactory(s, registry, resolver)),
		eng:      engine.New(s),
		clock:    NewFakeClock(),
		recorder: &recordingHandler{},
	}
	st.eng.SetClock(st.clock)
	errors.SetHandler(st.recorder)
	if err := s.Root().Activate(); err != nil {
		panic("enginetest: root activation failed: " + err.Error())
	}
	return st
}

// NewSceneTesterWithT creates a tester that cleans up via t.Cleanup.
// This is the recommended constructor for tests.
func NewSceneTesterWithT(t *testing.T) *SceneTester {
	tester := NewSceneTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the default error handler. Must be called if not
// using NewSceneTesterWithT.
func (st *SceneTester) Cleanup() {
	errors.SetHandler(nil)
}

// Scene returns the tester's scene.
func (st *SceneTester) Scene() *scene.Scene {
	return st.scene
}

// Root returns the scene's root node.
func (st *SceneTester) Root() *scene.Node {
	return st.scene.Root()
}

// Engine returns the engine stepping the scene.
func (st *SceneTester) Engine() *engine.Engine {
	return st.eng
}

// Manager returns the tester's content manager.
func (st *SceneTester) Manager() *content.Manager {
	return st.manager
}

// Registry returns the tester's component registry, for bulk
// registration helpers like components.RegisterBuiltins.
func (st *SceneTester) Registry() *scene.Registry {
	return st.registry
}

// Clock returns the fake clock for advancing time.
func (st *SceneTester) Clock() *FakeClock {
	return st.clock
}

// Register adds a component type to the tester's registry.
func (st *SceneTester) Register(typeName string, b scene.Builder) {
	st.registry.Register(typeName, b)
}

// Provide registers a collaborator under name for builders to resolve.
func (st *SceneTester) Provide(name string, collaborator any) {
	st.resolver[name] = collaborator
}

// Attach builds tmpl, configures and validates it, and activates it
// under the root.
func (st *SceneTester) Attach(tmpl *template.Template) (*scene.Node, *content.Report, error) {
	return st.manager.Attach(st.scene.Root(), tmpl)
}

// Pump advances the fake clock by delta and steps one frame, render
// walk included. Returns the frame context.
func (st *SceneTester) Pump(delta time.Duration) *scene.FrameContext {
	st.clock.Advance(delta)
	ctx := st.eng.Step(delta)
	st.eng.RenderFrame(ctx)
	return ctx
}

// PumpFrames pumps n frames of delta each.
func (st *SceneTester) PumpFrames(n int, delta time.Duration) {
	for i := 0; i < n; i++ {
		st.Pump(delta)
	}
}

// PumpAndSettle pumps FrameDuration frames until no animation is in
// flight and no update is queued anywhere in the scene, or the timeout
// of simulated time is exceeded.
func (st *SceneTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		st.Pump(FrameDuration)
		elapsed += FrameDuration
		if st.settled() {
			return nil
		}
	}
	return ErrSettleTimeout
}

func (st *SceneTester) settled() bool {
	root := st.scene.Root()
	if root == nil {
		return true
	}
	settled := true
	root.Visit(func(n *scene.Node) bool {
		if n.Animating() || n.PendingUpdates() > 0 {
			settled = false
			return false
		}
		return true
	})
	return settled
}

// Find returns the first node named name in traversal order, or nil.
func (st *SceneTester) Find(name string) *scene.Node {
	return st.FindBy(func(n *scene.Node) bool { return n.Name() == name })
}

// FindBy returns the first node matching pred in traversal order, or
// nil.
func (st *SceneTester) FindBy(pred func(*scene.Node) bool) *scene.Node {
	root := st.scene.Root()
	if root == nil {
		return nil
	}
	var found *scene.Node
	root.Visit(func(n *scene.Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// ReportedErrors returns the errors reported through the handler since
// the tester was created.
func (st *SceneTester) ReportedErrors() []*errors.EmberError {
	return st.recorder.Errors()
}

// ReportedPanics returns the panics reported through the handler since
// the tester was created.
func (st *SceneTester) ReportedPanics() []*errors.PanicError {
	return st.recorder.Panics()
}

// recordingHandler captures handler traffic instead of logging it.
type recordingHandler struct {
	mu     sync.Mutex
	errs   []*errors.EmberError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(e *errors.EmberError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, e)
}

func (h *recordingHandler) HandlePanic(p *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, p)
}

func (h *recordingHandler) Errors() []*errors.EmberError {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*errors.EmberError, len(h.errs))
	copy(out, h.errs)
	return out
}

func (h *recordingHandler) Panics() []*errors.PanicError {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*errors.PanicError, len(h.panics))
	copy(out, h.panics)
	return out
}
