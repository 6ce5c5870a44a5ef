package components

import "github.com/go-ember/ember/pkg/scene"

// Type names the built-ins register under.
const (
	TypeGroup     = "group"
	TypeTransform = "transform"
	TypeSprite    = "sprite"
)

// RegisterBuiltins adds the built-in component types to r. Sprites
// resolve the "painter" collaborator when built; the other types need
// no collaborators.
func RegisterBuiltins(r *scene.Registry) {
	r.Register(TypeGroup, func(scene.Resolver) (any, error) {
		return Group{}, nil
	})
	r.Register(TypeTransform, func(scene.Resolver) (any, error) {
		return &Transform{}, nil
	})
	r.Register(TypeSprite, func(res scene.Resolver) (any, error) {
		p, err := scene.ResolveAs[Painter](res, "painter")
		if err != nil {
			return nil, err
		}
		return NewSprite(p), nil
	})
}
