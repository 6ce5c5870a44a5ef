package scene

import (
	"fmt"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/template"
)

// Factory builds node subtrees from templates. Each node's behavior
// comes from the registry builder matching the template's type
// selector, constructed with the factory's resolver for collaborator
// injection.
//
// Create only constructs: the returned subtree is unconfigured and not
// active. The content manager (or the caller) configures, validates
// and activates it afterwards.
type Factory struct {
	scene    *Scene
	registry *Registry
	resolver Resolver
}

// NewFactory returns a factory creating nodes in scene from the types
// in registry. resolver may be nil when no registered builder needs
// collaborators.
func NewFactory(scene *Scene, registry *Registry, resolver Resolver) *Factory {
	if resolver == nil {
		resolver = StaticResolver(nil)
	}
	return &Factory{scene: scene, registry: registry, resolver: resolver}
}

// Scene returns the scene the factory creates nodes in.
func (f *Factory) Scene() *Scene {
	return f.scene
}

// Create builds the node tree tmpl describes, depth-first, and returns
// its root in the Created state. A template with an empty type
// selector resolves by its name instead.
//
// An unresolvable type fails with a type resolution error naming the
// missing registration; any partially constructed subtree is disposed,
// never left attached.
func (f *Factory) Create(tmpl *template.Template) (*Node, error) {
	if tmpl == nil {
		return nil, errors.InvalidArgument("scene.Factory.Create", "nil template")
	}
	return f.create(tmpl)
}

func (f *Factory) create(tmpl *template.Template) (*Node, error) {
	typeName := tmpl.Type()
	if typeName == "" {
		typeName = tmpl.Name()
	}
	builder, ok := f.registry.Lookup(typeName)
	if !ok {
		return nil, errors.TypeResolution("scene.Factory.Create", typeName, tmpl.Name())
	}
	behavior, err := builder(f.resolver)
	if err != nil {
		return nil, fmt.Errorf("build %q as %q: %w", tmpl.Name(), typeName, err)
	}
	n := f.scene.NewNode(tmpl.Name(), behavior)
	// Stash the template so a later Configure pass can reach each
	// node's own slice of the tree without re-pairing.
	n.tmpl = tmpl
	for _, sub := range tmpl.Subcomponents() {
		child, err := f.create(sub)
		if err != nil {
			n.Dispose()
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			child.Dispose()
			n.Dispose()
			return nil, err
		}
	}
	return n, nil
}
