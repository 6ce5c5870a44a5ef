package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to a writer,
// defaulting to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Output receives the log lines. Nil means os.Stderr.
	Output io.Writer
}

func (h *LogHandler) writer() io.Writer {
	if h.Output != nil {
		return h.Output
	}
	return os.Stderr
}

// HandleError logs an EmberError.
func (h *LogHandler) HandleError(err *EmberError) {
	if err == nil {
		return
	}
	w := h.writer()
	if h.Verbose {
		fmt.Fprintf(w, "[ember error] %s [%s]", err.Op, err.Kind)
		if err.Node != "" {
			fmt.Fprintf(w, " node=%s", err.Node)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[ember error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.writer()
	if err.Op != "" {
		fmt.Fprintf(w, "[ember panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[ember panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
