package engine

import (
	"sync"
	"time"
)

const (
	statsCapacityDefault = 120
	statsCapacityMax     = 1024
)

// FrameSample captures one frame's timing.
type FrameSample struct {
	// Frame is the frame number the sample belongs to.
	Frame uint64
	// Delta is the simulated time the frame advanced.
	Delta time.Duration
	// Duration is the wall time the update traversal took.
	Duration time.Duration
	// Nodes is the live node count after the frame.
	Nodes int
}

// StatsBuffer stores recent frame samples in a ring buffer. The engine
// writes from the update thread; snapshots may be read from anywhere.
type StatsBuffer struct {
	mu      sync.RWMutex
	samples []FrameSample
	index   int
	count   int
}

// NewStatsBuffer creates a buffer holding up to capacity samples.
// Out-of-range capacities clamp to sensible bounds.
func NewStatsBuffer(capacity int) *StatsBuffer {
	if capacity <= 0 {
		capacity = statsCapacityDefault
	}
	if capacity > statsCapacityMax {
		capacity = statsCapacityMax
	}
	return &StatsBuffer{samples: make([]FrameSample, capacity)}
}

// Add stores a frame sample, evicting the oldest when full.
func (b *StatsBuffer) Add(sample FrameSample) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	b.mu.Unlock()
}

// Len returns the number of stored samples.
func (b *StatsBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Last returns the most recent sample.
func (b *StatsBuffer) Last() (FrameSample, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return FrameSample{}, false
	}
	last := (b.index - 1 + len(b.samples)) % len(b.samples)
	return b.samples[last], true
}

// Snapshot returns the stored samples in chronological order.
func (b *StatsBuffer) Snapshot() []FrameSample {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	result := make([]FrameSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return result
}

// AverageDuration returns the mean update duration over the stored
// samples, zero when empty.
func (b *StatsBuffer) AverageDuration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return 0
	}
	var total time.Duration
	if b.count < len(b.samples) {
		for _, s := range b.samples[:b.count] {
			total += s.Duration
		}
	} else {
		for _, s := range b.samples {
			total += s.Duration
		}
	}
	return total / time.Duration(b.count)
}
