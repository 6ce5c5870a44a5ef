package components

import (
	"github.com/go-ember/ember/pkg/animation"
	"github.com/go-ember/ember/pkg/geometry"
	"github.com/go-ember/ember/pkg/scene"
	"github.com/go-ember/ember/pkg/template"
)

// Painter draws sprites during the render walk. One is injected into
// every Sprite at build time under the collaborator name "painter".
// Implementations read the sprite's cells and texture; node transforms
// come from Transform behaviors on the node's ancestors.
type Painter interface {
	Paint(n *scene.Node, s *Sprite)
}

// Sprite is a drawable component with an animatable tint and opacity.
//
// Template fields:
//
//   - "texture": name of the texture to draw
//   - "tint": "#RRGGBB", "#AARRGGBB" or a packed number, white default
//   - "opacity": 0 to 1, fully opaque default
type Sprite struct {
	painter Painter
	texture string

	// Tint multiplies the texture color.
	Tint *animation.Cell[geometry.Color]
	// Opacity fades the whole sprite.
	Opacity *animation.Cell[float64]
}

// NewSprite creates a sprite drawing through p.
func NewSprite(p Painter) *Sprite {
	return &Sprite{painter: p}
}

// Texture returns the configured texture name.
func (s *Sprite) Texture() string {
	return s.texture
}

func (s *Sprite) OnConfigure(n *scene.Node, tmpl *template.Template) error {
	if s.Tint == nil {
		s.Tint = scene.DefineColor(n, "tint", geometry.ColorWhite)
		s.Opacity = scene.DefineFloat64(n, "opacity", 1)
	}
	if tex, ok := tmpl.String("texture"); ok {
		s.texture = tex
	}
	if c, ok := tmpl.Color("tint"); ok {
		if err := s.Tint.Set(c, 0, animation.Linear); err != nil {
			return err
		}
	}
	if o, ok := tmpl.Float64("opacity"); ok {
		if err := s.Opacity.Set(o, 0, animation.Linear); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sprite) OnValidate(n *scene.Node) []scene.Diagnostic {
	var out []scene.Diagnostic
	if s.texture == "" {
		out = append(out, scene.Warningf(n.Path(), "sprite has no texture"))
	}
	if o := s.Opacity.Value(); o < 0 || o > 1 {
		out = append(out, scene.Errorf(n.Path(), "opacity %v outside [0, 1]", o))
	}
	return out
}

func (s *Sprite) Draw(n *scene.Node, ctx *scene.FrameContext) {
	s.painter.Paint(n, s)
}
