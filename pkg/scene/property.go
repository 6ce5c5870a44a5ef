package scene

import (
	"fmt"

	"github.com/go-ember/ember/pkg/animation"
	"github.com/go-ember/ember/pkg/geometry"
)

// namedCell is one registered property cell. Cells advance in
// registration order during ApplyUpdates.
type namedCell struct {
	name string
	cell animation.Advancer
}

// Define creates a property cell on n with a custom interpolator and
// registers it under name. The node is the cell's host, so writes made
// while the node is Active defer to the node's queue and animations
// advance with the node's frames. Panics when name is already taken,
// which indicates a behavior wiring mistake.
func Define[T any](n *Node, name string, initial T, lerp animation.Lerp[T]) *animation.Cell[T] {
	c := animation.NewCell(n, initial, lerp)
	registerCell(n, name, c)
	return c
}

// DefineFloat64 creates a linear float64 property cell on n.
func DefineFloat64(n *Node, name string, initial float64) *animation.Cell[float64] {
	c := animation.NewFloat64Cell(n, initial)
	registerCell(n, name, c)
	return c
}

// DefineVec2 creates a component-wise Vec2 property cell on n.
func DefineVec2(n *Node, name string, initial geometry.Vec2) *animation.Cell[geometry.Vec2] {
	c := animation.NewVec2Cell(n, initial)
	registerCell(n, name, c)
	return c
}

// DefineVec3 creates a component-wise Vec3 property cell on n.
func DefineVec3(n *Node, name string, initial geometry.Vec3) *animation.Cell[geometry.Vec3] {
	c := animation.NewVec3Cell(n, initial)
	registerCell(n, name, c)
	return c
}

// DefineVec4 creates a component-wise Vec4 property cell on n.
func DefineVec4(n *Node, name string, initial geometry.Vec4) *animation.Cell[geometry.Vec4] {
	c := animation.NewVec4Cell(n, initial)
	registerCell(n, name, c)
	return c
}

// DefineQuat creates a rotation property cell on n. Rotations blend by
// spherical interpolation, not component-wise.
func DefineQuat(n *Node, name string, initial geometry.Quat) *animation.Cell[geometry.Quat] {
	c := animation.NewQuatCell(n, initial)
	registerCell(n, name, c)
	return c
}

// DefineColor creates a channel-wise color property cell on n.
func DefineColor(n *Node, name string, initial geometry.Color) *animation.Cell[geometry.Color] {
	c := animation.NewColorCell(n, initial)
	registerCell(n, name, c)
	return c
}

func registerCell(n *Node, name string, cell animation.Advancer) {
	if n.cellIndex == nil {
		n.cellIndex = make(map[string]int)
	}
	if _, exists := n.cellIndex[name]; exists {
		panic(fmt.Sprintf("scene: duplicate property cell %q on node %q", name, n.name))
	}
	n.cellIndex[name] = len(n.cells)
	n.cells = append(n.cells, namedCell{name: name, cell: cell})
}

// Cell returns the property cell registered under name, untyped.
// Callers that know the property's type assert to the concrete
// *animation.Cell[T]; the typed pointer a Define call returned is the
// usual access path.
func (n *Node) Cell(name string) (animation.Advancer, bool) {
	i, ok := n.cellIndex[name]
	if !ok {
		return nil, false
	}
	return n.cells[i].cell, true
}

// CellNames returns the registered property names in registration
// order.
func (n *Node) CellNames() []string {
	if len(n.cells) == 0 {
		return nil
	}
	out := make([]string, len(n.cells))
	for i, pc := range n.cells {
		out[i] = pc.name
	}
	return out
}

// Animating reports whether any cell on the node is mid-animation.
func (n *Node) Animating() bool {
	for _, pc := range n.cells {
		if pc.cell.Animating() {
			return true
		}
	}
	return false
}
