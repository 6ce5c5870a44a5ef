// Package components provides the built-in component library.
//
// Components are plain behavior values attached to scene nodes. Each
// implements the capability interfaces it needs and nothing else: a
// Group is inert, a Transform carries animatable spatial cells, a
// Sprite draws through an injected Painter.
//
// # Registration
//
// RegisterBuiltins adds every built-in type to a registry under its
// stable type name:
//
//	registry := scene.NewRegistry()
//	components.RegisterBuiltins(registry)
//
// A Sprite resolves its Painter collaborator at build time, so scenes
// containing sprites need one provided:
//
//	resolver := scene.StaticResolver{"painter": myPainter}
//	factory := scene.NewFactory(s, registry, resolver)
//
// # Configuration
//
// Components read their initial cell values from template fields
// during Configure. Reconfiguring a live node routes the new values
// through the deferred update queue like any other property write:
//
//	template.New("player", "transform", map[string]any{
//	    "position": []any{0, 1, 0},
//	    "rotation": []any{0, 90, 0},
//	    "scale":    2,
//	})
package components
