package scene

import (
	"fmt"
	"sort"

	"github.com/go-ember/ember/pkg/errors"
)

// Resolver supplies external collaborators (renderer handles, loggers,
// asset caches) to component builders. Builders look collaborators up
// by name and fail construction when a required one is missing.
type Resolver interface {
	Resolve(name string) (any, bool)
}

// StaticResolver is a map-backed Resolver for wiring collaborators at
// startup and in tests.
type StaticResolver map[string]any

// Resolve returns the collaborator registered under name.
func (r StaticResolver) Resolve(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// ResolveAs looks name up in r and asserts the collaborator to T. The
// error names what was missing or mistyped, so builder failures read
// well in factory errors.
func ResolveAs[T any](r Resolver, name string) (T, error) {
	var zero T
	if r == nil {
		return zero, errors.InvalidArgument("scene.ResolveAs", "no resolver for collaborator %q", name)
	}
	v, ok := r.Resolve(name)
	if !ok {
		return zero, errors.InvalidArgument("scene.ResolveAs", "no collaborator registered as %q", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.InvalidArgument("scene.ResolveAs", "collaborator %q is %T, not %T", name, v, zero)
	}
	return t, nil
}

// Builder constructs a behavior value for a node about to be created.
// The resolver carries the collaborators the behavior needs; a builder
// that cannot obtain one returns an error and no node is created.
type Builder func(r Resolver) (any, error)

// Registry maps component type names to builders. Registration happens
// at startup from a single goroutine; lookups may come from anywhere
// afterwards.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder under typeName. Panics on a duplicate name,
// which indicates two components claiming the same type at startup.
func (r *Registry) Register(typeName string, b Builder) {
	if typeName == "" {
		panic("scene: empty component type name")
	}
	if b == nil {
		panic(fmt.Sprintf("scene: nil builder for component type %q", typeName))
	}
	if _, exists := r.builders[typeName]; exists {
		panic(fmt.Sprintf("scene: duplicate component type %q", typeName))
	}
	r.builders[typeName] = b
}

// Lookup returns the builder for typeName.
func (r *Registry) Lookup(typeName string) (Builder, bool) {
	b, ok := r.builders[typeName]
	return b, ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.builders))
	for name := range r.builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
