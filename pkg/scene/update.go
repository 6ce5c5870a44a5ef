package scene

import "github.com/go-ember/ember/pkg/errors"

// QueueUpdate defers action to the node's next ApplyUpdates call.
// Actions run in FIFO order, before the node's cells advance, so every
// reader within the frame observes either none or all of an action's
// effect.
//
// On a node that is not yet Active the action runs immediately, which
// lets construction-time code use one write path throughout. Queuing
// on an Inactive or Disposed node fails with an invalid state error
// rather than dropping the action silently.
func (n *Node) QueueUpdate(action func()) error {
	if action == nil {
		return errors.InvalidArgument("scene.Node.QueueUpdate", "nil action")
	}
	switch n.state {
	case StateCreated, StateConfigured:
		action()
		return nil
	case StateActive:
		n.pending = append(n.pending, action)
		return nil
	case StateInactive:
		return errors.InvalidState("scene.Node.QueueUpdate", n.Path(), "node is inactive")
	default:
		return errors.InvalidState("scene.Node.QueueUpdate", n.Path(), "node is disposed")
	}
}

// PendingUpdates returns the number of queued actions.
func (n *Node) PendingUpdates() int {
	return len(n.pending)
}

// ApplyUpdates runs the node's frame step: drain the queued actions in
// FIFO order, then advance every property cell by the frame delta.
// Only the actions queued before the call run; actions queued while
// draining land in the next frame. A panicking action is reported
// through the error handler and the remaining actions still run.
//
// ApplyUpdates does nothing on a node that is not Active. It is called
// once per frame by Update; calling it directly is only useful in
// tests that need to step a single node.
func (n *Node) ApplyUpdates(ctx *FrameContext) {
	if n.state != StateActive {
		return
	}
	queued := n.pending
	n.pending = nil
	for _, action := range queued {
		n.safeRun("scene.Node.ApplyUpdates", action)
	}
	// An action may have deactivated or disposed the node, which
	// cancels its animations. They must not advance afterwards.
	if n.state != StateActive {
		return
	}
	for _, pc := range n.cells {
		pc.cell.Advance(ctx.Delta)
	}
}

// Update runs one frame over the subtree in traversal order: the
// node's ApplyUpdates step, then its behavior's OnUpdate, then each
// child in list order. Nodes that are not Active are skipped along
// with their subtrees.
func (n *Node) Update(ctx *FrameContext) {
	if n.state != StateActive {
		return
	}
	n.ApplyUpdates(ctx)
	if n.state != StateActive {
		return
	}
	if u, ok := n.behavior.(Updatable); ok {
		n.safeUpdate(u, ctx)
	}
	if n.state != StateActive || len(n.children) == 0 {
		return
	}
	// Children are walked over a snapshot: behaviors may attach or
	// detach nodes mid-frame without corrupting the traversal.
	children := make([]Handle, len(n.children))
	copy(children, n.children)
	for _, h := range children {
		if c := n.scene.Resolve(h); c != nil {
			c.Update(ctx)
		}
	}
}

// safeRun executes fn, converting a panic into a report through the
// error handler so one faulty action cannot take down the frame.
func (n *Node) safeRun(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         op,
				Node:       n.Path(),
				Value:      r,
				StackTrace: errors.CaptureStack(),
			})
		}
	}()
	fn()
}

func (n *Node) safeUpdate(u Updatable, ctx *FrameContext) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "scene.Node.Update",
				Node:       n.Path(),
				Value:      r,
				StackTrace: errors.CaptureStack(),
			})
		}
	}()
	u.OnUpdate(n, ctx)
}
