package scene

import "fmt"

// Severity grades a validation diagnostic.
type Severity int

const (
	// SeverityInfo is advisory output.
	SeverityInfo Severity = iota
	// SeverityWarning flags a suspicious configuration that does not
	// block activation.
	SeverityWarning
	// SeverityError flags a configuration the component considers
	// unusable. Whether it blocks activation is the caller's threshold
	// decision, not this package's.
	SeverityError
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is one validation finding. Validation never changes
// lifecycle state; diagnostics accumulate into a report whose
// consequences the caller decides.
type Diagnostic struct {
	// Severity grades the finding.
	Severity Severity
	// Node is the path of the node the finding concerns.
	Node string
	// Message describes the finding.
	Message string
}

// String formats the diagnostic as "severity node: message".
func (d Diagnostic) String() string {
	if d.Node != "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Node, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Infof builds an informational diagnostic for the given node path.
func Infof(node, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityInfo, Node: node, Message: fmt.Sprintf(format, args...)}
}

// Warningf builds a warning diagnostic for the given node path.
func Warningf(node, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Node: node, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an error diagnostic for the given node path.
func Errorf(node, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Node: node, Message: fmt.Sprintf(format, args...)}
}
