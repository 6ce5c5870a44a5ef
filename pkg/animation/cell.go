package animation

import (
	"time"

	"github.com/go-ember/ember/pkg/errors"
)

// Host is the narrow surface a cell needs from its owning component
// node. A nil host behaves like an owner that is never active, so
// standalone cells assign immediately on every Set.
type Host interface {
	// Active reports whether the owner is live in the tree. Writes on an
	// inactive owner assign immediately with no queueing and no events.
	Active() bool
	// QueueUpdate defers action to the owner's next apply step.
	QueueUpdate(action func()) error
}

// Advancer is the type-erased view of a cell held by its owning node,
// which advances and cancels cells without knowing their value types.
type Advancer interface {
	// Advance moves an in-flight animation forward by delta. Called only
	// from the owner's apply step.
	Advance(delta time.Duration)
	// Cancel stops an in-flight animation, freezing the value at the last
	// applied interpolated value. No completion fires.
	Cancel()
	// Animating reports whether an animation is in flight.
	Animating() bool
}

// Cell holds one property's value and its animation state.
//
// The current value mutates only during the owning node's apply step:
// timed writes record start and target and let Advance blend between
// them, and zero-duration writes on an active owner travel through the
// owner's deferred update queue. Reading is always a plain field access.
type Cell[T any] struct {
	host Host
	lerp Lerp[T]

	value    T
	start    T
	target   T
	elapsed  time.Duration
	duration time.Duration
	curve    Curve

	animating    bool
	startPending bool

	// OnStarted fires during the apply step in which a newly set
	// animation first advances. Optional.
	OnStarted func()
	// OnCompleted fires exactly once when an animation reaches its
	// target. Cancelled animations never fire it. Optional.
	OnCompleted func()
}

// NewCell creates a cell owned by host holding initial. A nil lerp
// behaves like Step easing: the value holds until completion, then jumps
// to the target.
func NewCell[T any](host Host, initial T, lerp Lerp[T]) *Cell[T] {
	return &Cell[T]{
		host:   host,
		lerp:   lerp,
		value:  initial,
		start:  initial,
		target: initial,
	}
}

// Value returns the current value.
func (c *Cell[T]) Value() T {
	return c.value
}

// Target returns the value the cell is animating toward. While not
// animating it reports the last target set.
func (c *Cell[T]) Target() T {
	return c.target
}

// Animating reports whether an animation is in flight.
func (c *Cell[T]) Animating() bool {
	return c.animating
}

// Elapsed returns the time the current animation has been advancing.
func (c *Cell[T]) Elapsed() time.Duration {
	return c.elapsed
}

// Duration returns the duration of the current animation.
func (c *Cell[T]) Duration() time.Duration {
	return c.duration
}

// Set writes value to the cell.
//
// Before the owner is active the write assigns immediately with no
// events. On an active owner a zero duration defers the write to the
// owner's next apply step so it lands atomically, and a positive
// duration begins an animation from the current value. Re-setting while
// animating restarts from the current interpolated value, never the
// original start, so no snap is visible.
//
// A negative duration fails with an invalid argument error and leaves
// the cell untouched.
func (c *Cell[T]) Set(value T, duration time.Duration, curve Curve) error {
	if duration < 0 {
		return errors.InvalidArgument("animation.Cell.Set", "negative duration %v", duration)
	}
	if c.host == nil || !c.host.Active() {
		c.animating = false
		c.startPending = false
		c.value = value
		c.target = value
		return nil
	}
	if duration == 0 {
		return c.host.QueueUpdate(func() { c.snap(value) })
	}
	c.start = c.value
	c.target = value
	c.elapsed = 0
	c.duration = duration
	c.curve = curve
	c.animating = true
	c.startPending = true
	return nil
}

// snap applies an immediate write during the owner's apply step. An
// in-flight animation is superseded, not completed, so OnCompleted does
// not fire.
func (c *Cell[T]) snap(value T) {
	c.animating = false
	c.startPending = false
	c.value = value
	c.target = value
}

// Advance moves an in-flight animation forward by delta. At or past the
// duration the value lands exactly on the target and OnCompleted fires
// once. Idle cells return immediately.
func (c *Cell[T]) Advance(delta time.Duration) {
	if !c.animating {
		return
	}
	if delta < 0 {
		delta = 0
	}
	if c.startPending {
		c.startPending = false
		if c.OnStarted != nil {
			c.OnStarted()
		}
	}
	c.elapsed += delta
	if c.elapsed >= c.duration {
		c.elapsed = c.duration
		c.value = c.target
		c.animating = false
		if c.OnCompleted != nil {
			c.OnCompleted()
		}
		return
	}
	if c.lerp != nil {
		t := c.curve.At(float64(c.elapsed) / float64(c.duration))
		c.value = c.lerp(c.start, c.target, t)
	}
}

// Cancel stops an in-flight animation, discarding elapsed progress. The
// value freezes at the last applied interpolated value and OnCompleted
// never fires. Cancelling an idle cell is a no-op.
func (c *Cell[T]) Cancel() {
	c.animating = false
	c.startPending = false
}
