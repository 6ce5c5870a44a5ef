package template

import (
	"fmt"
	"sync"
)

// Library is a named collection of templates with fingerprint-based
// interning. Safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	byName   map[string]*Template
	interned map[string]*Template
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		byName:   make(map[string]*Template),
		interned: make(map[string]*Template),
	}
}

// Define registers a template under its own name. Panics on duplicate
// names, which indicate a wiring mistake during startup.
func (l *Library) Define(t *Template) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.byName[t.name]; exists {
		panic(fmt.Sprintf("template: duplicate definition for %q", t.name))
	}
	l.byName[t.name] = t
}

// Lookup returns the template registered under name.
func (l *Library) Lookup(name string) (*Template, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.byName[name]
	return t, ok
}

// Intern returns the canonical instance for structurally equal
// templates. The first template with a given fingerprint becomes the
// canonical one; later equals are discarded in favor of it.
func (l *Library) Intern(t *Template) (*Template, error) {
	fp, err := t.Fingerprint()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if canonical, ok := l.interned[fp]; ok {
		return canonical, nil
	}
	l.interned[fp] = t
	return t, nil
}

// Len returns the number of named definitions.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byName)
}
