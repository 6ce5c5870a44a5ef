// Package content sequences subtree lifecycles. The Manager is the one
// place that runs the Configure, Validate, Activate chain for newly
// built trees and the Deactivate, Dispose chain for torn-down ones;
// the Host adds deferred content swapping on top for nodes that
// replace their subtree at runtime.
package content

import (
	"fmt"
	"strings"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/scene"
	"github.com/go-ember/ember/pkg/template"
)

// FailNever is a FailOn threshold no diagnostic reaches, for managers
// that treat validation as purely advisory.
const FailNever = scene.SeverityError + 1

// Report aggregates the diagnostics one validation pass produced over a
// subtree.
type Report struct {
	Diagnostics []scene.Diagnostic
}

// NewReport wraps diags in a Report.
func NewReport(diags []scene.Diagnostic) *Report {
	return &Report{Diagnostics: diags}
}

// Empty reports whether validation produced no findings.
func (r *Report) Empty() bool {
	return r == nil || len(r.Diagnostics) == 0
}

// Count returns the number of findings with exactly the given severity.
func (r *Report) Count(sev scene.Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// CountAtLeast returns the number of findings at or above sev.
func (r *Report) CountAtLeast(sev scene.Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

// String returns the findings one per line.
func (r *Report) String() string {
	if r.Empty() {
		return "no findings"
	}
	lines := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Manager builds, checks and activates content subtrees. All methods
// must be called from the scene's update thread.
type Manager struct {
	factory *scene.Factory

	// FailOn is the validation severity at which Attach aborts instead
	// of activating. Defaults to SeverityError: warnings pass, errors
	// abort. Set FailNever to activate regardless of findings.
	FailOn scene.Severity
}

// NewManager returns a manager building content with factory.
func NewManager(factory *scene.Factory) *Manager {
	return &Manager{factory: factory, FailOn: scene.SeverityError}
}

// Factory returns the factory the manager builds with.
func (m *Manager) Factory() *scene.Factory {
	return m.factory
}

// Attach builds the subtree tmpl describes, configures it, validates
// it, attaches it under parent and, when parent is Active, activates
// it. A subtree attached under a not-yet-active parent stays Configured
// and goes live with the parent's own activation cascade.
//
// The returned report carries every validation finding whether or not
// the attach succeeded. On a configure failure, a validation finding at
// or above the FailOn threshold, or an activation failure, the built
// subtree is disposed, parent is left unchanged, and the error names
// the failing stage.
func (m *Manager) Attach(parent *scene.Node, tmpl *template.Template) (*scene.Node, *Report, error) {
	if parent == nil {
		return nil, nil, errors.InvalidArgument("content.Manager.Attach", "nil parent")
	}
	if parent.State() == scene.StateDisposed {
		return nil, nil, errors.InvalidState("content.Manager.Attach", parent.Path(), "parent is disposed")
	}

	n, err := m.factory.Create(tmpl)
	if err != nil {
		return nil, nil, err
	}
	if err := configureTree(n); err != nil {
		n.Dispose()
		return nil, nil, err
	}

	report := NewReport(n.Validate())
	if count := report.CountAtLeast(m.FailOn); count > 0 {
		n.Dispose()
		return nil, report, errors.Validation("content.Manager.Attach", tmpl.Name(),
			"%d finding(s) at or above %s", count, m.FailOn)
	}

	if err := parent.AddChild(n); err != nil {
		n.Dispose()
		return nil, report, err
	}
	if parent.State() == scene.StateActive {
		if err := n.Activate(); err != nil {
			n.Dispose()
			return nil, report, fmt.Errorf("attach %q: %w", tmpl.Name(), err)
		}
	}
	return n, report, nil
}

// Detach takes the subtree rooted at n out of service: deactivate,
// then dispose, children before parents throughout. Detaching an
// already disposed subtree is a no-op.
func (m *Manager) Detach(n *scene.Node) error {
	if n == nil {
		return errors.InvalidArgument("content.Manager.Detach", "nil node")
	}
	if n.State() == scene.StateDisposed {
		return nil
	}
	n.Deactivate()
	n.Dispose()
	return nil
}

// configureTree configures each node in the subtree from the template
// the factory stashed on it, parents before children.
func configureTree(n *scene.Node) error {
	if err := n.Configure(n.Template()); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := configureTree(c); err != nil {
			return err
		}
	}
	return nil
}
