package engine

import "time"

// Clock provides time for frame pacing. The default implementation
// uses system time. Tests inject a fake clock via Engine.SetClock to
// drive frames deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
