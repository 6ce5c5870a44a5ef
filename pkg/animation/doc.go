// Package animation provides the animated property cell, the smallest
// unit of the runtime's property engine.
//
// A Cell holds one property's value and, when asked, animates it toward a
// target over a duration with a chosen easing Curve. Cells are generic
// over their value type and interpolate through a plain Lerp function, so
// the non-animating path is an ordinary field access with no boxing and
// no reflection.
//
// # Cells and their owners
//
// A cell belongs to a component node, represented here by the narrow Host
// interface. The owner decides how writes behave: before the owner is
// active a Set assigns immediately, while an active owner routes
// zero-duration writes through its deferred update queue so they become
// visible atomically at the next apply step. Timed writes begin an
// animation that the owner advances once per frame:
//
//	speed := animation.NewFloat64Cell(node, 1.0)
//	if err := speed.Set(4.0, 2*time.Second, animation.EaseOut); err != nil {
//	    return err
//	}
//
// # Value semantics
//
// Vector and color values interpolate component-wise; rotation values use
// spherical interpolation (see LerpQuat) so angular velocity stays
// uniform. The current value of a cell only ever mutates during its
// owner's apply step.
//
// See ExampleCell for the complete flow.
package animation
