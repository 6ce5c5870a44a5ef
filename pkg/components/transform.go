package components

import (
	"math"

	"github.com/go-ember/ember/pkg/animation"
	"github.com/go-ember/ember/pkg/geometry"
	"github.com/go-ember/ember/pkg/scene"
	"github.com/go-ember/ember/pkg/template"
)

// Transform places its node in space with three animatable cells:
// position, rotation and scale. All three animate independently; the
// composed local matrix is read through Matrix.
//
// Template fields:
//
//   - "position": [x, y, z]
//   - "rotation": [x, y, z] Euler angles in degrees, applied Z, Y, X
//   - "scale": [x, y, z], or a single number for uniform scale
//
// Missing fields keep their current values, so a reconfigure may move
// a node without resetting its scale.
type Transform struct {
	// Position is the node's local translation.
	Position *animation.Cell[geometry.Vec3]
	// Rotation is the node's local orientation.
	Rotation *animation.Cell[geometry.Quat]
	// Scale is the node's local scale, (1,1,1) by default.
	Scale *animation.Cell[geometry.Vec3]
}

func (t *Transform) OnConfigure(n *scene.Node, tmpl *template.Template) error {
	if t.Position == nil {
		t.Position = scene.DefineVec3(n, "position", geometry.Vec3{})
		t.Rotation = scene.DefineQuat(n, "rotation", geometry.QuatIdentity())
		t.Scale = scene.DefineVec3(n, "scale", geometry.Vec3{1, 1, 1})
	}
	if v, ok := tmpl.Vec3("position"); ok {
		if err := t.Position.Set(v, 0, animation.Linear); err != nil {
			return err
		}
	}
	if v, ok := tmpl.Vec3("rotation"); ok {
		if err := t.Rotation.Set(eulerDegrees(v), 0, animation.Linear); err != nil {
			return err
		}
	}
	if v, ok := scaleField(tmpl); ok {
		if err := t.Scale.Set(v, 0, animation.Linear); err != nil {
			return err
		}
	}
	return nil
}

// Matrix composes the current cell values into the local
// translate*rotate*scale matrix.
func (t *Transform) Matrix() geometry.Mat4 {
	return geometry.TRS(t.Position.Value(), t.Rotation.Value(), t.Scale.Value())
}

// scaleField accepts either a 3-vector or a single uniform factor.
func scaleField(tmpl *template.Template) (geometry.Vec3, bool) {
	if v, ok := tmpl.Vec3("scale"); ok {
		return v, true
	}
	if f, ok := tmpl.Float64("scale"); ok {
		return geometry.Vec3{f, f, f}, true
	}
	return geometry.Vec3{}, false
}

// eulerDegrees converts ZYX Euler angles in degrees to a quaternion.
func eulerDegrees(v geometry.Vec3) geometry.Quat {
	const rad = math.Pi / 180
	qz := geometry.AxisAngle(geometry.Vec3{0, 0, 1}, v.Z()*rad)
	qy := geometry.AxisAngle(geometry.Vec3{0, 1, 0}, v.Y()*rad)
	qx := geometry.AxisAngle(geometry.Vec3{1, 0, 0}, v.X()*rad)
	return qz.Mul(qy).Mul(qx)
}
