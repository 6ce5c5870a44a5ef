package scene

import "github.com/go-ember/ember/pkg/template"

// Capabilities are the optional contracts a node's behavior may
// implement. The runtime discovers them by type assertion; a behavior
// implements exactly the ones it needs.

// Updatable behaviors observe each frame after the node's queued
// updates have drained and its cells have advanced.
type Updatable interface {
	OnUpdate(n *Node, ctx *FrameContext)
}

// Renderable behaviors are drawn by the external render walk, strictly
// after the frame's apply step. Drawing happens through collaborators
// injected at construction; the scene itself never renders.
type Renderable interface {
	Draw(n *Node, ctx *FrameContext)
}

// Configurable behaviors copy template fields into their own state
// during Configure.
type Configurable interface {
	OnConfigure(n *Node, tmpl *template.Template) error
}

// Validating behaviors report diagnostics during validation. Returning
// diagnostics never changes lifecycle state.
type Validating interface {
	OnValidate(n *Node) []Diagnostic
}

// Activatable behaviors run setup when their node activates and
// teardown when it deactivates. OnActivate errors abort the node's
// activation and leave it in its prior state.
type Activatable interface {
	OnActivate(n *Node) error
	OnDeactivate(n *Node)
}

// Disposable behaviors release resources when their node is disposed.
// OnDispose runs exactly once, after the node's registered disposers.
type Disposable interface {
	OnDispose(n *Node)
}
