package scene

import (
	"strings"
	"testing"
	"time"

	"github.com/go-ember/ember/pkg/errors"
)

// captureHandler records reported errors and panics for assertions.
type captureHandler struct {
	errs   []*errors.EmberError
	panics []*errors.PanicError
}

func (h *captureHandler) HandleError(e *errors.EmberError) { h.errs = append(h.errs, e) }
func (h *captureHandler) HandlePanic(p *errors.PanicError) { h.panics = append(h.panics, p) }

// activeNode returns an Active leaf attached under an active root.
func activeNode(t *testing.T, behavior any) (*Scene, *Node) {
	t.Helper()
	s := NewScene()
	n := s.NewNode("leaf", behavior)
	if err := n.Configure(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().AddChild(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, n
}

func frame(delta time.Duration, frame uint64) *FrameContext {
	return &FrameContext{Delta: delta, Frame: frame}
}

func TestQueueUpdateRunsInOrder(t *testing.T) {
	_, n := activeNode(t, nil)
	var seen []int
	for i := 1; i <= 3; i++ {
		i := i
		if err := n.QueueUpdate(func() { seen = append(seen, i) }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if n.PendingUpdates() != 3 {
		t.Fatalf("expected 3 pending updates, got %d", n.PendingUpdates())
	}

	n.ApplyUpdates(frame(time.Millisecond, 1))
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", seen)
	}
	if n.PendingUpdates() != 0 {
		t.Errorf("expected an empty queue after apply, got %d", n.PendingUpdates())
	}
}

func TestLastQueuedWriteWins(t *testing.T) {
	_, n := activeNode(t, nil)
	x := DefineFloat64(n, "x", 1)
	started, completed := false, false
	x.OnStarted = func() { started = true }
	x.OnCompleted = func() { completed = true }

	if err := x.Set(5, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := x.Set(9, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x.Value() != 1 {
		t.Fatalf("expected the value to stay 1 until apply, got %v", x.Value())
	}

	n.ApplyUpdates(frame(time.Millisecond, 1))
	if x.Value() != 9 {
		t.Errorf("expected only the last write to be visible, got %v", x.Value())
	}
	if started || completed {
		t.Error("expected no animation events for immediate writes")
	}
}

func TestQueueBeforeActivationRunsImmediately(t *testing.T) {
	s := NewScene()
	n := s.NewNode("fresh", nil)
	ran := false
	if err := n.QueueUpdate(func() { ran = true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected the action to run immediately before activation")
	}
	if n.PendingUpdates() != 0 {
		t.Errorf("expected nothing queued, got %d", n.PendingUpdates())
	}
}

func TestQueueOnInactiveFails(t *testing.T) {
	_, n := activeNode(t, nil)
	n.Deactivate()
	err := n.QueueUpdate(func() {})
	if !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
}

func TestQueueOnDisposedFails(t *testing.T) {
	_, n := activeNode(t, nil)
	n.Dispose()
	err := n.QueueUpdate(func() {})
	if !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
}

func TestQueueNilActionFails(t *testing.T) {
	_, n := activeNode(t, nil)
	if err := n.QueueUpdate(nil); !errors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
}

func TestReenqueueLandsNextFrame(t *testing.T) {
	_, n := activeNode(t, nil)
	var seen []string
	if err := n.QueueUpdate(func() {
		seen = append(seen, "first")
		if err := n.QueueUpdate(func() { seen = append(seen, "second") }); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n.ApplyUpdates(frame(time.Millisecond, 1))
	if len(seen) != 1 || seen[0] != "first" {
		t.Fatalf("expected only the first action this frame, got %v", seen)
	}
	if n.PendingUpdates() != 1 {
		t.Fatalf("expected the re-enqueued action to wait, got %d pending", n.PendingUpdates())
	}

	n.ApplyUpdates(frame(time.Millisecond, 2))
	if len(seen) != 2 || seen[1] != "second" {
		t.Errorf("expected the second action next frame, got %v", seen)
	}
}

func TestQueueDrainsBeforeCellsAdvance(t *testing.T) {
	_, n := activeNode(t, nil)
	x := DefineFloat64(n, "x", 0)
	var order []string
	x.OnStarted = func() { order = append(order, "started") }

	if err := x.Set(10, time.Second, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.QueueUpdate(func() { order = append(order, "action") }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n.ApplyUpdates(frame(100*time.Millisecond, 1))
	if len(order) != 2 || order[0] != "action" || order[1] != "started" {
		t.Errorf("expected the queue to drain before cells advance, got %v", order)
	}
}

func TestActionDisposingNodeSkipsAdvance(t *testing.T) {
	_, n := activeNode(t, nil)
	x := DefineFloat64(n, "x", 0)
	completed := false
	x.OnCompleted = func() { completed = true }
	if err := x.Set(10, time.Second, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.QueueUpdate(func() { n.Dispose() }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n.ApplyUpdates(frame(2*time.Second, 1))
	if n.State() != StateDisposed {
		t.Fatalf("expected disposed, got %s", n.State())
	}
	if x.Value() != 0 {
		t.Errorf("expected the cell to stop at 0, got %v", x.Value())
	}
	if completed {
		t.Error("expected no completion after disposal")
	}
}

func TestPanicInActionIsReportedAndDrainContinues(t *testing.T) {
	handler := &captureHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	_, n := activeNode(t, nil)
	ran := false
	if err := n.QueueUpdate(func() { panic("boom") }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.QueueUpdate(func() { ran = true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n.ApplyUpdates(frame(time.Millisecond, 1))
	if !ran {
		t.Error("expected the second action to run after the first panicked")
	}
	if len(handler.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(handler.panics))
	}
	p := handler.panics[0]
	if p.Op != "scene.Node.ApplyUpdates" || p.Value != "boom" {
		t.Errorf("unexpected panic report: op=%q value=%v", p.Op, p.Value)
	}
	if !strings.Contains(p.Node, "leaf") {
		t.Errorf("expected the report to name the node, got %q", p.Node)
	}
}

type panickyUpdater struct{}

func (panickyUpdater) OnUpdate(*Node, *FrameContext) { panic("bad frame") }

func TestPanicInOnUpdateIsReported(t *testing.T) {
	handler := &captureHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	s, _ := activeNode(t, panickyUpdater{})
	s.Root().Update(frame(time.Millisecond, 1))

	if len(handler.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(handler.panics))
	}
	if handler.panics[0].Op != "scene.Node.Update" {
		t.Errorf("expected op scene.Node.Update, got %q", handler.panics[0].Op)
	}
}

type countingUpdater struct {
	frames []uint64
}

func (u *countingUpdater) OnUpdate(n *Node, ctx *FrameContext) {
	u.frames = append(u.frames, ctx.Frame)
}

func TestUpdateSkipsInactiveSubtree(t *testing.T) {
	s := NewScene()
	u := &countingUpdater{}
	mid := s.NewNode("mid", nil)
	leaf := s.NewNode("leaf", u)
	for _, n := range []*Node{mid, leaf} {
		if err := n.Configure(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := s.Root().AddChild(mid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mid.AddChild(leaf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Root().Update(frame(time.Millisecond, 1))
	mid.Deactivate()
	s.Root().Update(frame(time.Millisecond, 2))

	if len(u.frames) != 1 || u.frames[0] != 1 {
		t.Errorf("expected the leaf to see only frame 1, got %v", u.frames)
	}
}

func TestUpdateOrderFollowsChildList(t *testing.T) {
	s := NewScene()
	var order []string
	newUpdater := func(name string) *Node {
		n := s.NewNode(name, orderUpdater{name: name, order: &order})
		if err := n.Configure(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return n
	}
	first, second := newUpdater("first"), newUpdater("second")
	if err := s.Root().AddChild(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().AddChild(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Root().Update(frame(time.Millisecond, 1))
	expectLog(t, order, "first", "second")
}

type orderUpdater struct {
	name  string
	order *[]string
}

func (u orderUpdater) OnUpdate(*Node, *FrameContext) {
	*u.order = append(*u.order, u.name)
}

func TestBehaviorCanAttachChildrenMidFrame(t *testing.T) {
	s := NewScene()
	spawner := &spawnOnce{}
	n := s.NewNode("spawner", spawner)
	if err := n.Configure(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().AddChild(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Root().Update(frame(time.Millisecond, 1))
	if n.ChildCount() != 1 {
		t.Fatalf("expected 1 spawned child, got %d", n.ChildCount())
	}
	if got := n.Find("spawned").State(); got != StateActive {
		t.Errorf("expected the spawned child to be active, got %s", got)
	}
}

// spawnOnce attaches and activates one child during its first update.
type spawnOnce struct {
	done bool
}

func (b *spawnOnce) OnUpdate(n *Node, ctx *FrameContext) {
	if b.done {
		return
	}
	b.done = true
	child := n.Scene().NewNode("spawned", nil)
	if err := child.Configure(nil); err != nil {
		return
	}
	if err := n.AddChild(child); err != nil {
		return
	}
	_ = child.Activate()
}
