package animation

import "fmt"

// Curve selects the easing that maps a cell's linear progress to eased
// progress. All kinds are exact at the boundaries: At(0) == 0 and
// At(1) == 1.
type Curve int

const (
	// Linear applies no easing.
	Linear Curve = iota
	// EaseIn starts slowly and accelerates (cubic).
	EaseIn
	// EaseOut starts quickly and decelerates (cubic).
	EaseOut
	// EaseInOut starts and ends slowly with acceleration in the middle (cubic).
	EaseInOut
	// Step holds the start value for the whole duration and jumps to the
	// target at completion.
	Step
)

// String returns a human-readable representation of the curve.
func (c Curve) String() string {
	switch c {
	case Linear:
		return "linear"
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case EaseInOut:
		return "ease-in-out"
	case Step:
		return "step"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// At transforms linear progress t into eased progress. Inputs outside
// [0, 1] are clamped.
func (c Curve) At(t float64) float64 {
	t = clampUnit(t)
	switch c {
	case EaseIn:
		return t * t * t
	case EaseOut:
		inv := 1 - t
		return 1 - inv*inv*inv
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		inv := -2*t + 2
		return 1 - inv*inv*inv/2
	case Step:
		if t < 1 {
			return 0
		}
		return 1
	default:
		return t
	}
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
