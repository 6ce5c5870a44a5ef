// Package scene provides the component tree: nodes with lifecycle state,
// animated property cells, deferred update queues, and the factory that
// builds node graphs from templates.
//
// # Nodes and handles
//
// Nodes live in a Scene, an indexed arena. Relationships are expressed
// with generational Handles: children are owned handles in a stable
// order, and the parent reference is a weak, lookup-only handle that is
// never an ownership edge, so the tree cannot form ownership cycles.
// Resolving the handle of a disposed node yields nil.
//
// # Lifecycle
//
// A node moves through Created, Configured, Active, Inactive and
// Disposed. Activation cascades parent-first and deactivation cascades
// children-first, so no child ever runs against a torn-down parent.
// Dispose is terminal and idempotent. Lifecycle violations surface as
// invalid state errors at the call site, never silently.
//
// # Frames
//
// Once per frame the update traversal calls Update on each active node
// in child-list order: queued mutations drain first, then the node's
// property cells advance, then the node's behavior observes the frame.
// Mid-frame writes therefore land atomically at a well-defined point.
// The traversal threads an explicit FrameContext; there is no ambient
// frame state.
//
// # Behaviors and capabilities
//
// A node may carry a behavior, an arbitrary component value constructed
// by the factory through a Registry. Behaviors opt into framework
// callbacks by implementing capability interfaces (Updatable,
// Renderable, Configurable, Validating, Activatable, Disposable), which
// the runtime discovers by type assertion.
package scene
