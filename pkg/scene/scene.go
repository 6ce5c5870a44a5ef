package scene

// Handle identifies a node in a scene's arena. Handles are generational:
// once the node is disposed its slot generation advances, and stale
// handles resolve to nil instead of a recycled node. The zero Handle is
// never valid.
type Handle struct {
	index      uint32
	generation uint32
}

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool {
	return h.generation == 0
}

// slot is one arena entry. The generation advances when the occupant is
// released, invalidating outstanding handles.
type slot struct {
	node       *Node
	generation uint32
}

// Scene owns every node in one component tree. It is an indexed arena:
// nodes reference each other by Handle, the scene resolves handles to
// live nodes, and freed slots recycle.
//
// A scene starts with an implicit root node, already configured, that
// callers activate to bring the tree live. All methods must be called
// from the single update thread.
type Scene struct {
	slots  []slot
	free   []uint32
	root   Handle
	nextID uint64
}

// NewScene creates an empty scene with a configured root node.
func NewScene() *Scene {
	s := &Scene{}
	root := s.NewNode("root", nil)
	root.state = StateConfigured
	s.root = root.handle
	return s
}

// Root returns the root node, or nil if it has been disposed.
func (s *Scene) Root() *Node {
	return s.Resolve(s.root)
}

// NewNode allocates a node in the Created state with the given name and
// behavior. The node starts parentless; attach it with AddChild.
func (s *Scene) NewNode(name string, behavior any) *Node {
	s.nextID++
	n := &Node{
		scene:    s,
		id:       s.nextID,
		name:     name,
		state:    StateCreated,
		behavior: behavior,
	}
	n.handle = s.allocate(n)
	return n
}

// Resolve returns the live node for h, or nil when h is stale, nil, or
// out of range.
func (s *Scene) Resolve(h Handle) *Node {
	if h.IsNil() || int(h.index) >= len(s.slots) {
		return nil
	}
	sl := s.slots[h.index]
	if sl.generation != h.generation {
		return nil
	}
	return sl.node
}

// NodeCount returns the number of live nodes.
func (s *Scene) NodeCount() int {
	return len(s.slots) - len(s.free)
}

func (s *Scene) allocate(n *Node) Handle {
	if len(s.free) > 0 {
		idx := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.slots[idx].node = n
		return Handle{index: idx, generation: s.slots[idx].generation}
	}
	idx := uint32(len(s.slots))
	s.slots = append(s.slots, slot{node: n, generation: 1})
	return Handle{index: idx, generation: 1}
}

// release invalidates h and recycles its slot. Outstanding copies of h
// resolve to nil from here on.
func (s *Scene) release(h Handle) {
	if s.Resolve(h) == nil {
		return
	}
	s.slots[h.index].node = nil
	s.slots[h.index].generation++
	s.free = append(s.free, h.index)
}
