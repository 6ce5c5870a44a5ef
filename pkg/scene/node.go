package scene

import (
	"fmt"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/template"
)

// Node is one component in a scene tree. It owns its ordered children,
// holds a weak handle to its parent, carries an optional behavior value
// and the named property cells that behavior defined, and moves through
// the lifecycle described by State.
//
// All methods must be called from the scene's update thread.
type Node struct {
	scene  *Scene
	handle Handle
	id     uint64
	name   string
	state  State

	parent   Handle
	children []Handle

	behavior any
	tmpl     *template.Template

	cells     []namedCell
	cellIndex map[string]int
	pending   []func()
	disposers []func()

	// OnChildrenChanged fires after a child is attached or detached,
	// including detachment caused by a child's disposal. May be nil.
	OnChildrenChanged func(n *Node)
}

// Scene returns the scene that owns the node.
func (n *Node) Scene() *Scene {
	return n.scene
}

// Handle returns the node's arena handle. The handle goes stale when
// the node is disposed.
func (n *Node) Handle() Handle {
	return n.handle
}

// ID returns the node's scene-unique numeric id.
func (n *Node) ID() uint64 {
	return n.id
}

// Name returns the node's instance name.
func (n *Node) Name() string {
	return n.name
}

// State returns the node's lifecycle state.
func (n *Node) State() State {
	return n.state
}

// Active reports whether the node is in the Active state.
func (n *Node) Active() bool {
	return n.state == StateActive
}

// Behavior returns the component value attached at construction, or
// nil for a plain structural node.
func (n *Node) Behavior() any {
	return n.behavior
}

// Template returns the node's template: the one the factory created it
// from, replaced by whatever was last passed to Configure. Nil for
// nodes built by hand and never configured from a template.
func (n *Node) Template() *template.Template {
	return n.tmpl
}

// Parent returns the parent node, or nil for a detached or root node.
func (n *Node) Parent() *Node {
	return n.scene.Resolve(n.parent)
}

// Children returns the live child nodes in list order.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, h := range n.children {
		if c := n.scene.Resolve(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildCount returns the number of attached children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Find returns the first direct child named name, or nil.
func (n *Node) Find(name string) *Node {
	for _, h := range n.children {
		if c := n.scene.Resolve(h); c != nil && c.name == name {
			return c
		}
	}
	return nil
}

// Path returns the slash-separated name chain from the root down to
// this node, such as "root/world/player".
func (n *Node) Path() string {
	if p := n.scene.Resolve(n.parent); p != nil {
		return p.Path() + "/" + n.name
	}
	return n.name
}

// String returns the node's path and state for diagnostics.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Path(), n.state)
}

// Visit walks the subtree rooted at n in child-list order, calling fn
// for each node. Returning false from fn stops the walk.
func (n *Node) Visit(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, h := range n.children {
		if c := n.scene.Resolve(h); c != nil {
			if !c.Visit(fn) {
				return false
			}
		}
	}
	return true
}

// AddChild attaches child as the last child of n. The child keeps its
// lifecycle state; attach then activate, in that order. Fails with an
// invalid state error when either node is disposed or when attaching
// an active child under a non-active parent, and with an invalid
// argument error on nil, foreign, already-attached, or cycle-forming
// children. A failed AddChild leaves the tree unchanged.
func (n *Node) AddChild(child *Node) error {
	if n.state == StateDisposed {
		return errors.InvalidState("scene.Node.AddChild", n.Path(), "node is disposed")
	}
	if child == nil {
		return errors.InvalidArgument("scene.Node.AddChild", "nil child")
	}
	if child.state == StateDisposed {
		return errors.InvalidState("scene.Node.AddChild", n.Path(), "child %q is disposed", child.name)
	}
	if child.scene != n.scene {
		return errors.InvalidArgument("scene.Node.AddChild", "child %q belongs to a different scene", child.name)
	}
	if !child.parent.IsNil() {
		return errors.InvalidArgument("scene.Node.AddChild", "child %q already has a parent", child.name)
	}
	if child.state == StateActive && n.state != StateActive {
		return errors.InvalidState("scene.Node.AddChild", n.Path(),
			"cannot attach active child %q under %s parent", child.name, n.state)
	}
	for a := n; a != nil; a = a.scene.Resolve(a.parent) {
		if a == child {
			return errors.InvalidArgument("scene.Node.AddChild", "attaching %q under %q would form a cycle", child.name, n.name)
		}
	}
	n.children = append(n.children, child.handle)
	child.parent = n.handle
	n.childrenChanged()
	return nil
}

// RemoveChild detaches child from n without changing the child's
// lifecycle state. The detached node keeps living in the scene until
// it is disposed or re-attached.
func (n *Node) RemoveChild(child *Node) error {
	if n.state == StateDisposed {
		return errors.InvalidState("scene.Node.RemoveChild", n.Path(), "node is disposed")
	}
	if child == nil {
		return errors.InvalidArgument("scene.Node.RemoveChild", "nil child")
	}
	if !n.removeChildHandle(child.handle) {
		return errors.InvalidArgument("scene.Node.RemoveChild", "%q is not a child of %q", child.name, n.name)
	}
	child.parent = Handle{}
	n.childrenChanged()
	return nil
}

// removeChildHandle drops h from the child list, preserving order.
func (n *Node) removeChildHandle(h Handle) bool {
	for i, ch := range n.children {
		if ch == h {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Node) childrenChanged() {
	if n.OnChildrenChanged != nil {
		n.OnChildrenChanged(n)
	}
}

// Configure copies template fields into the node. A Created node
// becomes Configured; configuring again before activation replaces the
// previous configuration. Configuring an Active or Inactive node is
// legal and re-copies fields but does not re-run activation setup.
// tmpl may be nil, which configures the behavior against an empty
// template.
func (n *Node) Configure(tmpl *template.Template) error {
	if n.state == StateDisposed {
		return errors.InvalidState("scene.Node.Configure", n.Path(), "node is disposed")
	}
	n.tmpl = tmpl
	if c, ok := n.behavior.(Configurable); ok {
		if err := c.OnConfigure(n, tmpl); err != nil {
			return fmt.Errorf("configure %s: %w", n.Path(), err)
		}
	}
	if n.state == StateCreated {
		n.state = StateConfigured
	}
	return nil
}

// Validate collects diagnostics from every Validating behavior in the
// subtree, in traversal order. It never changes lifecycle state.
func (n *Node) Validate() []Diagnostic {
	var out []Diagnostic
	n.validate(&out)
	return out
}

func (n *Node) validate(out *[]Diagnostic) {
	if n.state == StateDisposed {
		return
	}
	if v, ok := n.behavior.(Validating); ok {
		*out = append(*out, v.OnValidate(n)...)
	}
	for _, h := range n.children {
		if c := n.scene.Resolve(h); c != nil {
			c.validate(out)
		}
	}
}

// Activate brings the subtree live, parent first and then each child
// in list order. Activating an Active node is a no-op. A Created node
// cannot activate, a Disposed node cannot activate, and a node cannot
// activate under a non-active parent.
//
// When a descendant fails to activate, the cascade stops there and the
// error reports the failing node; nodes activated earlier in the
// cascade stay Active. The caller decides whether to roll back.
func (n *Node) Activate() error {
	if n.state == StateActive {
		return nil
	}
	if p := n.Parent(); p != nil && p.state != StateActive {
		return errors.InvalidState("scene.Node.Activate", n.Path(), "parent %q is %s", p.name, p.state)
	}
	return n.activate()
}

func (n *Node) activate() error {
	switch n.state {
	case StateActive:
		return nil
	case StateCreated:
		return errors.InvalidState("scene.Node.Activate", n.Path(), "not configured")
	case StateDisposed:
		return errors.InvalidState("scene.Node.Activate", n.Path(), "node is disposed")
	}
	if a, ok := n.behavior.(Activatable); ok {
		if err := a.OnActivate(n); err != nil {
			return fmt.Errorf("activate %s: %w", n.Path(), err)
		}
	}
	n.state = StateActive
	for _, h := range n.children {
		c := n.scene.Resolve(h)
		if c == nil {
			continue
		}
		if err := c.activate(); err != nil {
			return err
		}
	}
	return nil
}

// Deactivate takes the subtree out of the Active state, children first
// and then the parent, so no child ever runs against a torn-down
// parent. Every in-flight animation in the subtree is cancelled: the
// values freeze where they are and no completion fires. Deactivating a
// node that is not Active is a no-op.
func (n *Node) Deactivate() {
	if n.state != StateActive {
		return
	}
	for _, h := range n.children {
		if c := n.scene.Resolve(h); c != nil {
			c.Deactivate()
		}
	}
	n.deactivateSelf()
}

func (n *Node) deactivateSelf() {
	for _, pc := range n.cells {
		pc.cell.Cancel()
	}
	if a, ok := n.behavior.(Activatable); ok {
		a.OnDeactivate(n)
	}
	n.state = StateInactive
}

// OnDispose registers fn to run when the node is disposed. Disposers
// run in reverse registration order, before the behavior's Disposable
// callback. The returned function unregisters fn; calling it after
// disposal is harmless. Registering on an already disposed node runs
// fn immediately.
func (n *Node) OnDispose(fn func()) (unregister func()) {
	if fn == nil {
		return func() {}
	}
	if n.state == StateDisposed {
		fn()
		return func() {}
	}
	n.disposers = append(n.disposers, fn)
	idx := len(n.disposers) - 1
	return func() {
		if idx < len(n.disposers) {
			n.disposers[idx] = nil
		}
	}
}

// Dispose tears the subtree down, children before parent, and releases
// every node's arena slot so outstanding handles go stale. An Active
// node is deactivated first. Dispose is terminal and idempotent;
// repeat calls do nothing.
func (n *Node) Dispose() {
	if n.state == StateDisposed {
		return
	}
	n.dispose(true)
}

// dispose runs the teardown. detach is true only for the top node of
// the cascade: descendants must not edit the child list of a parent
// that is itself being torn down.
func (n *Node) dispose(detach bool) {
	if n.state == StateDisposed {
		return
	}
	for _, h := range n.children {
		if c := n.scene.Resolve(h); c != nil {
			c.dispose(false)
		}
	}
	n.children = nil
	if n.state == StateActive {
		n.deactivateSelf()
	}
	for i := len(n.disposers) - 1; i >= 0; i-- {
		if fn := n.disposers[i]; fn != nil {
			fn()
		}
	}
	n.disposers = nil
	if d, ok := n.behavior.(Disposable); ok {
		d.OnDispose(n)
	}
	n.state = StateDisposed
	n.pending = nil
	if detach {
		if p := n.scene.Resolve(n.parent); p != nil {
			p.removeChildHandle(n.handle)
			p.childrenChanged()
		}
	}
	n.parent = Handle{}
	n.scene.release(n.handle)
}
