package scene

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/template"
)

// probe records lifecycle callbacks in order and can be told to fail
// activation.
type probe struct {
	log         *[]string
	activateErr error
	config      map[string]any
}

func (p *probe) OnConfigure(n *Node, tmpl *template.Template) error {
	p.record("configure " + n.Name())
	p.config = tmpl.Config()
	return nil
}

func (p *probe) OnActivate(n *Node) error {
	if p.activateErr != nil {
		return p.activateErr
	}
	p.record("activate " + n.Name())
	return nil
}

func (p *probe) OnDeactivate(n *Node) {
	p.record("deactivate " + n.Name())
}

func (p *probe) OnDispose(n *Node) {
	p.record("dispose " + n.Name())
}

func (p *probe) record(s string) {
	if p.log != nil {
		*p.log = append(*p.log, s)
	}
}

func expectLog(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d events %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// buildTree returns an active-ready tree: root(parent(a, b)) where
// parent, a and b carry probes and are Configured.
func buildTree(t *testing.T, log *[]string) (s *Scene, parent, a, b *Node) {
	t.Helper()
	s = NewScene()
	parent = s.NewNode("parent", &probe{log: log})
	a = s.NewNode("a", &probe{log: log})
	b = s.NewNode("b", &probe{log: log})
	for _, n := range []*Node{parent, a, b} {
		if err := n.Configure(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := s.Root().AddChild(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := parent.AddChild(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := parent.AddChild(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	*log = (*log)[:0]
	return s, parent, a, b
}

func TestNewNodeStartsCreated(t *testing.T) {
	s := NewScene()
	n := s.NewNode("thing", nil)
	if n.State() != StateCreated {
		t.Errorf("expected created, got %s", n.State())
	}
	if n.Parent() != nil {
		t.Error("expected a fresh node to be parentless")
	}
}

func TestConfigureTransitions(t *testing.T) {
	s := NewScene()
	n := s.NewNode("thing", nil)

	if err := n.Configure(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.State() != StateConfigured {
		t.Errorf("expected configured, got %s", n.State())
	}
	// Repeatable before activation.
	if err := n.Configure(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.State() != StateConfigured {
		t.Errorf("expected configured after reconfigure, got %s", n.State())
	}
}

func TestConfigureRoundTrip(t *testing.T) {
	s := NewScene()
	p := &probe{}
	n := s.NewNode("sprite", p)
	fields := map[string]any{"opacity": 0.5, "label": "hero"}

	if err := n.Configure(template.New("sprite", "", fields)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.config, fields) {
		t.Errorf("expected configured fields %v, got %v", fields, p.config)
	}
	if n.Template() == nil {
		t.Error("expected the node to keep its template")
	}
}

func TestConfigureAfterActivateKeepsActive(t *testing.T) {
	var log []string
	_, parent, _, _ := buildTree(t, &log)
	if err := parent.Scene().Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log = log[:0]

	if err := parent.Configure(template.New("parent", "", map[string]any{"x": 1.0})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent.State() != StateActive {
		t.Errorf("expected active, got %s", parent.State())
	}
	expectLog(t, log, "configure parent")
}

func TestConfigureDisposedFails(t *testing.T) {
	s := NewScene()
	n := s.NewNode("thing", nil)
	n.Dispose()
	err := n.Configure(nil)
	if !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
}

func TestActivateNotConfigured(t *testing.T) {
	s := NewScene()
	n := s.NewNode("thing", nil)
	if err := s.Root().AddChild(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().Activate(); !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
	if n.State() != StateCreated {
		t.Errorf("expected created, got %s", n.State())
	}
}

func TestActivateCascadesParentFirst(t *testing.T) {
	var log []string
	s, parent, a, b := buildTree(t, &log)

	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectLog(t, log, "activate parent", "activate a", "activate b")
	for _, n := range []*Node{parent, a, b} {
		if n.State() != StateActive {
			t.Errorf("expected %s active, got %s", n.Name(), n.State())
		}
	}
}

func TestActivateActiveIsNoOp(t *testing.T) {
	var log []string
	s, _, _, _ := buildTree(t, &log)
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log = log[:0]

	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectLog(t, log)
}

func TestActivateUnderInactiveParentFails(t *testing.T) {
	var log []string
	_, _, a, _ := buildTree(t, &log)

	err := a.Activate()
	if !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
	if a.State() != StateConfigured {
		t.Errorf("expected configured, got %s", a.State())
	}
}

func TestActivateFailureKeepsEarlierNodesActive(t *testing.T) {
	var log []string
	s, parent, a, b := buildTree(t, &log)
	b.behavior.(*probe).activateErr = fmt.Errorf("shader missing")

	err := s.Root().Activate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if parent.State() != StateActive || a.State() != StateActive {
		t.Errorf("expected earlier nodes to stay active, got parent=%s a=%s", parent.State(), a.State())
	}
	if b.State() != StateConfigured {
		t.Errorf("expected the failing node to keep its prior state, got %s", b.State())
	}
}

func TestActivateDisposedFails(t *testing.T) {
	s := NewScene()
	n := s.NewNode("thing", nil)
	n.Dispose()
	if err := n.Activate(); !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
}

func TestDeactivateCascadesChildrenFirst(t *testing.T) {
	var log []string
	s, parent, a, b := buildTree(t, &log)
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log = log[:0]

	parent.Deactivate()
	expectLog(t, log, "deactivate a", "deactivate b", "deactivate parent")
	for _, n := range []*Node{parent, a, b} {
		if n.State() != StateInactive {
			t.Errorf("expected %s inactive, got %s", n.Name(), n.State())
		}
	}
}

func TestDeactivateNotActiveIsNoOp(t *testing.T) {
	var log []string
	_, parent, _, _ := buildTree(t, &log)
	parent.Deactivate()
	expectLog(t, log)
	if parent.State() != StateConfigured {
		t.Errorf("expected configured, got %s", parent.State())
	}
}

func TestReactivateAfterDeactivate(t *testing.T) {
	var log []string
	s, parent, _, _ := buildTree(t, &log)
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parent.Deactivate()
	log = log[:0]

	if err := parent.Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectLog(t, log, "activate parent", "activate a", "activate b")
}

func TestDeactivateFreezesAnimation(t *testing.T) {
	s := NewScene()
	n := s.NewNode("mover", nil)
	x := DefineFloat64(n, "x", 0)
	completed := false
	x.OnCompleted = func() { completed = true }
	if err := n.Configure(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().AddChild(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := x.Set(10, 2*time.Second, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Root().Update(&FrameContext{Delta: 500 * time.Millisecond, Frame: 1})
	if x.Value() != 2.5 {
		t.Fatalf("expected 2.5 mid-animation, got %v", x.Value())
	}

	n.Deactivate()
	if x.Value() != 2.5 {
		t.Errorf("expected the value to freeze at 2.5, got %v", x.Value())
	}
	if x.Animating() {
		t.Error("expected the animation to be cancelled")
	}
	if completed {
		t.Error("expected no completion on deactivation")
	}

	s.Root().Update(&FrameContext{Delta: time.Second, Frame: 2})
	if x.Value() != 2.5 {
		t.Errorf("expected the frozen value to stay at 2.5, got %v", x.Value())
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	var log []string
	s, parent, _, _ := buildTree(t, &log)
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log = log[:0]

	parent.Dispose()
	first := len(log)
	parent.Dispose()
	if len(log) != first {
		t.Errorf("expected no additional events on repeat dispose, got %v", log[first:])
	}
	if parent.State() != StateDisposed {
		t.Errorf("expected disposed, got %s", parent.State())
	}
}

func TestDisposeImpliesDeactivate(t *testing.T) {
	var log []string
	s, parent, _, _ := buildTree(t, &log)
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log = log[:0]

	parent.Dispose()
	expectLog(t, log,
		"deactivate a", "dispose a",
		"deactivate b", "dispose b",
		"deactivate parent", "dispose parent")
}

func TestDisposeReleasesHandles(t *testing.T) {
	var log []string
	s, parent, a, _ := buildTree(t, &log)
	ha, hp := a.Handle(), parent.Handle()
	before := s.NodeCount()

	parent.Dispose()
	if s.Resolve(ha) != nil || s.Resolve(hp) != nil {
		t.Error("expected handles of disposed nodes to resolve to nil")
	}
	if got := s.NodeCount(); got != before-3 {
		t.Errorf("expected %d live nodes, got %d", before-3, got)
	}
}

func TestDisposeDetachesFromParent(t *testing.T) {
	var log []string
	_, parent, a, _ := buildTree(t, &log)
	changed := 0
	parent.OnChildrenChanged = func(*Node) { changed++ }

	a.Dispose()
	if parent.ChildCount() != 1 {
		t.Errorf("expected 1 remaining child, got %d", parent.ChildCount())
	}
	if changed != 1 {
		t.Errorf("expected one children-changed event, got %d", changed)
	}
	if parent.Find("a") != nil {
		t.Error("expected the disposed child to be gone from the parent")
	}
}

func TestDisposerRunsInReverseOrder(t *testing.T) {
	s := NewScene()
	n := s.NewNode("thing", nil)
	var log []string
	n.OnDispose(func() { log = append(log, "first") })
	n.OnDispose(func() { log = append(log, "second") })
	unregister := n.OnDispose(func() { log = append(log, "third") })
	unregister()

	n.Dispose()
	expectLog(t, log, "second", "first")
}

func TestOnDisposeAfterDisposalRunsImmediately(t *testing.T) {
	s := NewScene()
	n := s.NewNode("thing", nil)
	n.Dispose()
	ran := false
	n.OnDispose(func() { ran = true })
	if !ran {
		t.Error("expected the disposer to run immediately on a disposed node")
	}
}

func TestAddChildOnDisposedFails(t *testing.T) {
	s := NewScene()
	parent := s.NewNode("parent", nil)
	child := s.NewNode("child", nil)
	parent.Dispose()

	err := parent.AddChild(child)
	if !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
	if child.Parent() != nil {
		t.Error("expected the tree to be unchanged")
	}
}

func TestAddChildRejectsCycle(t *testing.T) {
	s := NewScene()
	grand := s.NewNode("grand", nil)
	mid := s.NewNode("mid", nil)
	if err := grand.AddChild(mid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mid.AddChild(grand); !errors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
	if err := mid.AddChild(mid); !errors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid argument error for self-attach, got %v", err)
	}
}

func TestAddChildRejectsForeignScene(t *testing.T) {
	s1, s2 := NewScene(), NewScene()
	parent := s1.NewNode("parent", nil)
	stranger := s2.NewNode("stranger", nil)
	if err := parent.AddChild(stranger); !errors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
}

func TestAddChildRejectsSecondParent(t *testing.T) {
	s := NewScene()
	p1 := s.NewNode("p1", nil)
	p2 := s.NewNode("p2", nil)
	c := s.NewNode("c", nil)
	if err := p1.AddChild(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p2.AddChild(c); !errors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
}

func TestAddChildRejectsActiveChildUnderInactiveParent(t *testing.T) {
	s := NewScene()
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active := s.NewNode("active", nil)
	if err := active.Configure(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().AddChild(active); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := active.Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Root().RemoveChild(active); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cold := s.NewNode("cold", nil)
	if err := cold.AddChild(active); !errors.IsInvalidState(err) {
		t.Errorf("expected an invalid state error, got %v", err)
	}
}

func TestRemoveChildKeepsChildState(t *testing.T) {
	var log []string
	s, parent, a, _ := buildTree(t, &log)
	if err := s.Root().Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := parent.RemoveChild(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.State() != StateActive {
		t.Errorf("expected the detached child to keep its state, got %s", a.State())
	}
	if a.Parent() != nil {
		t.Error("expected the detached child to be parentless")
	}
	if parent.ChildCount() != 1 {
		t.Errorf("expected 1 child, got %d", parent.ChildCount())
	}
}

func TestRemoveChildNotAttached(t *testing.T) {
	s := NewScene()
	parent := s.NewNode("parent", nil)
	other := s.NewNode("other", nil)
	if err := parent.RemoveChild(other); !errors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
}

func TestChildOrderIsStable(t *testing.T) {
	s := NewScene()
	parent := s.NewNode("parent", nil)
	names := []string{"one", "two", "three"}
	for _, name := range names {
		if err := parent.AddChild(s.NewNode(name, nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	children := parent.Children()
	for i, c := range children {
		if c.Name() != names[i] {
			t.Errorf("child %d: expected %q, got %q", i, names[i], c.Name())
		}
	}
}

func TestPathAndFind(t *testing.T) {
	var log []string
	_, parent, a, _ := buildTree(t, &log)
	if got := a.Path(); got != "root/parent/a" {
		t.Errorf("expected root/parent/a, got %q", got)
	}
	if parent.Find("a") != a {
		t.Error("expected Find to return the direct child")
	}
	if parent.Find("nope") != nil {
		t.Error("expected Find to return nil for unknown names")
	}
}

func TestVisitStopsEarly(t *testing.T) {
	var log []string
	s, _, _, _ := buildTree(t, &log)
	var visited []string
	s.Root().Visit(func(n *Node) bool {
		visited = append(visited, n.Name())
		return n.Name() != "a"
	})
	expectLog(t, visited, "root", "parent", "a")
}

func TestValidateAggregatesSubtree(t *testing.T) {
	s := NewScene()
	parent := s.NewNode("parent", validatorBehavior{diags: []Diagnostic{Warningf("parent", "odd scale")}})
	child := s.NewNode("child", validatorBehavior{diags: []Diagnostic{Errorf("child", "missing texture")}})
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	diags := parent.Validate()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags), diags)
	}
	if diags[0].Severity != SeverityWarning || diags[1].Severity != SeverityError {
		t.Errorf("expected traversal order warning then error, got %v", diags)
	}
}

type validatorBehavior struct {
	diags []Diagnostic
}

func (v validatorBehavior) OnValidate(*Node) []Diagnostic {
	return v.diags
}

func TestValidateNeverChangesState(t *testing.T) {
	s := NewScene()
	n := s.NewNode("n", validatorBehavior{diags: []Diagnostic{Errorf("n", "broken")}})
	if err := n.Configure(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n.Validate()
	if n.State() != StateConfigured {
		t.Errorf("expected configured, got %s", n.State())
	}
}
