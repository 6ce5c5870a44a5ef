package content

import (
	"fmt"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/scene"
	"github.com/go-ember/ember/pkg/template"
)

// SwapState is the phase of a host's content swap.
type SwapState int

const (
	// SwapIdle means no swap is staged.
	SwapIdle SwapState = iota
	// SwapPending means new content is assigned but the old content is
	// still live; the swap executes at the host node's next update.
	SwapPending
	// SwapApplied is the transient phase while the swap executes; the
	// OnSwapped callback observes it. The host returns to SwapIdle
	// before the update step finishes.
	SwapApplied
)

// String returns a human-readable representation of the swap state.
func (s SwapState) String() string {
	switch s {
	case SwapIdle:
		return "idle"
	case SwapPending:
		return "pending-swap"
	case SwapApplied:
		return "applied"
	default:
		return fmt.Sprintf("SwapState(%d)", int(s))
	}
}

// Host swaps the content subtree under one node. Assigning content
// stages it; the actual swap defers to the host node's next update
// tick, so the old subtree keeps rendering until a well-defined point.
// Until then an external renderer still observes the old content.
//
// A host created before its node activates applies the first content
// immediately, the same construction-time carve-out the node's update
// queue makes.
type Host struct {
	node    *scene.Node
	manager *Manager

	state   SwapState
	staged  *template.Template
	current *scene.Node

	lastReport *Report
	lastErr    error

	// OnSwapped fires after a swap executed, with the outgoing subtree
	// root (already disposed) and the incoming one (nil when the swap
	// cleared the content or failed). May be nil.
	OnSwapped func(old, current *scene.Node)
}

// NewHost returns a host swapping content under node using manager.
func NewHost(manager *Manager, node *scene.Node) *Host {
	return &Host{node: node, manager: manager}
}

// Node returns the node the host swaps content under.
func (h *Host) Node() *scene.Node {
	return h.node
}

// Content returns the live content subtree root, or nil.
func (h *Host) Content() *scene.Node {
	return h.current
}

// State returns the swap phase.
func (h *Host) State() SwapState {
	return h.state
}

// Report returns the validation report of the most recent swap.
func (h *Host) Report() *Report {
	return h.lastReport
}

// Err returns the error of the most recent swap, nil when it succeeded.
func (h *Host) Err() error {
	return h.lastErr
}

// SetContent stages tmpl as the host's next content; nil clears the
// content. On an active host the swap executes at the node's next
// update tick. Staging again before the tick replaces the staged
// content; only the last assignment is ever built. Fails when the host
// node can no longer accept updates.
func (h *Host) SetContent(tmpl *template.Template) error {
	if h.state == SwapPending {
		h.staged = tmpl
		return nil
	}
	h.staged = tmpl
	h.state = SwapPending
	if err := h.node.QueueUpdate(func() { h.apply() }); err != nil {
		h.staged = nil
		h.state = SwapIdle
		return err
	}
	return nil
}

// ApplyNow executes a staged swap immediately instead of waiting for
// the next update tick, for callers that need a populated tree without
// delay. With nothing staged it does nothing. Returns the swap's
// report and error.
func (h *Host) ApplyNow() (*Report, error) {
	h.apply()
	return h.lastReport, h.lastErr
}

// apply executes the staged swap. The queued closure from SetContent
// and an ApplyNow call may both arrive here; whichever runs first
// consumes the staged content and the other finds SwapIdle.
func (h *Host) apply() {
	if h.state != SwapPending {
		return
	}
	tmpl := h.staged
	h.staged = nil
	h.state = SwapApplied
	h.lastReport = nil
	h.lastErr = nil

	old := h.current
	h.current = nil
	if old != nil {
		if err := h.manager.Detach(old); err != nil {
			h.lastErr = err
		}
	}
	if tmpl != nil {
		n, report, err := h.manager.Attach(h.node, tmpl)
		h.lastReport = report
		if err != nil {
			h.lastErr = err
			errors.Report(&errors.EmberError{
				Op:   "content.Host.apply",
				Kind: errors.KindOf(err),
				Node: h.node.Path(),
				Err:  err,
			})
		} else {
			h.current = n
		}
	}
	if h.OnSwapped != nil {
		h.OnSwapped(old, h.current)
	}
	h.state = SwapIdle
}
