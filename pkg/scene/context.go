package scene

import (
	"fmt"
	"io"
	"time"
)

// Logger is the log sink carried by a FrameContext.
type Logger interface {
	Logf(format string, args ...any)
}

// FrameContext carries per-frame values through the update traversal:
// the frame's delta time, a monotonically increasing frame number, and
// the log sink. It replaces ambient globals; every Update and Draw call
// receives one explicitly.
type FrameContext struct {
	// Delta is the time advanced this frame.
	Delta time.Duration
	// Frame is the frame number, starting at 1 for the first step.
	Frame uint64
	// Log receives diagnostic messages. May be nil; use Logf.
	Log Logger
}

// Logf writes to the context's log sink, if any.
func (ctx *FrameContext) Logf(format string, args ...any) {
	if ctx == nil || ctx.Log == nil {
		return
	}
	ctx.Log.Logf(format, args...)
}

// WriterLogger is a Logger that writes one line per message.
type WriterLogger struct {
	W io.Writer
}

// Logf writes the formatted message followed by a newline.
func (l *WriterLogger) Logf(format string, args ...any) {
	if l == nil || l.W == nil {
		return
	}
	fmt.Fprintf(l.W, format+"\n", args...)
}

// NopLogger discards all messages.
type NopLogger struct{}

// Logf discards the message.
func (NopLogger) Logf(format string, args ...any) {}
