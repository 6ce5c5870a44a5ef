package scene

import "fmt"

// State is a node's lifecycle state.
//
// The state machine is monotonic with one exception: Dispose may be
// called from any state and is terminal.
//
//	Created ──Configure──► Configured ──Activate──► Active
//	                            ▲                     │
//	                            │                 Deactivate
//	                        (re-Configure)            │
//	                                                  ▼
//	                                              Inactive ──Activate──► Active
//
//	any state ──Dispose──► Disposed (terminal, idempotent)
type State int

const (
	// StateCreated means the node exists but has no configuration yet.
	StateCreated State = iota
	// StateConfigured means template fields have been copied in.
	StateConfigured
	// StateActive means the node participates in update traversals.
	StateActive
	// StateInactive means the node was deactivated and holds frozen values.
	StateInactive
	// StateDisposed means the node has been torn down. Terminal.
	StateDisposed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConfigured:
		return "configured"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
