package cones

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent places an entity in world space. Local -Z is the
// forward direction.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() TransformComponent {
	return TransformComponent{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t *TransformComponent) SetTranslation(x, y, z float32) *TransformComponent {
	t.Position = mgl32.Vec3{x, y, z}
	return t
}

// SetRotationXAxis replaces the rotation with angle radians about X.
func (t *TransformComponent) SetRotationXAxis(angle float32) *TransformComponent {
	t.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{1, 0, 0})
	return t
}

// PrependRotationYAxis rotates by angle radians about the local Y axis.
func (t *TransformComponent) PrependRotationYAxis(angle float32) *TransformComponent {
	t.Rotation = t.Rotation.Mul(mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})).Normalize()
	return t
}

// FaceTowards rotates the transform so that local -Z points at target and
// local +Y leans towards up. Degenerate inputs (target at the position, or
// up parallel to the view direction) leave the rotation untouched.
func (t *TransformComponent) FaceTowards(target mgl32.Vec3, up mgl32.Vec3) *TransformComponent {
	const eps = 1e-6

	zAxis := t.Position.Sub(target)
	if zAxis.Len() < eps {
		return t
	}
	zAxis = zAxis.Normalize()

	xAxis := up.Cross(zAxis)
	if xAxis.Len() < eps {
		return t
	}
	xAxis = xAxis.Normalize()
	yAxis := zAxis.Cross(xAxis)

	t.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(xAxis, yAxis, zAxis).Mat4()).Normalize()
	return t
}

func (t *TransformComponent) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (t *TransformComponent) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Matrix returns the object-to-world matrix, T * R * S.
func (t *TransformComponent) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}
