package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrSingularTransform is returned for transforms that cannot be inverted
var ErrSingularTransform = errors.New("singular transform")

// Transform maps mesh-local coordinates into the space of the cutting plane
// and back. It is the composition translate(origin) * rotate * scale.
type Transform struct {
	toPlane mgl64.Mat4
	toMesh  mgl64.Mat4
}

// Identity returns the transform for meshes already in plane space
func Identity() Transform {
	return Transform{toPlane: mgl64.Ident4(), toMesh: mgl64.Ident4()}
}

// NewTransform builds a transform from a per-axis scale and a translation
func NewTransform(scale, origin Vector3) (Transform, error) {
	return NewTransformTRS(scale, mgl64.QuatIdent(), origin)
}

// NewTransformTRS builds a transform from scale, rotation and translation
func NewTransformTRS(scale Vector3, rotation mgl64.Quat, origin Vector3) (Transform, error) {
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return Transform{}, fmt.Errorf("%w: scale %s has a zero axis", ErrSingularTransform, scale)
	}
	m := mgl64.Translate3D(origin.X, origin.Y, origin.Z).
		Mul4(rotation.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(scale.X, scale.Y, scale.Z))
	if m.Det() == 0 {
		return Transform{}, ErrSingularTransform
	}
	return Transform{toPlane: m, toMesh: m.Inv()}, nil
}

// ToPlaneSpace converts a mesh-local position into plane space
func (t Transform) ToPlaneSpace(local Vector3) Vector3 {
	return fromVec3(mgl64.TransformCoordinate(toVec3(local), t.matrix()))
}

// ToMeshSpace converts a plane-space position back into mesh-local space
func (t Transform) ToMeshSpace(world Vector3) Vector3 {
	return fromVec3(mgl64.TransformCoordinate(toVec3(world), t.inverse()))
}

// NormalToMeshSpace converts a plane-space direction normal into a unit
// mesh-local normal. Normals transform with the inverse transpose, so the
// inverse mapping is the transpose of the forward linear part.
func (t Transform) NormalToMeshSpace(normal Vector3) Vector3 {
	linear := t.matrix().Mat3().Transpose()
	return fromVec3(linear.Mul3x1(toVec3(normal))).Normalize()
}

// zero-value Transform behaves as the identity
func (t Transform) matrix() mgl64.Mat4 {
	if t.toPlane == (mgl64.Mat4{}) {
		return mgl64.Ident4()
	}
	return t.toPlane
}

func (t Transform) inverse() mgl64.Mat4 {
	if t.toMesh == (mgl64.Mat4{}) {
		return mgl64.Ident4()
	}
	return t.toMesh
}

func toVec3(v Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Mirrors reports whether the transform flips handedness, which reverses
// the apparent winding of triangles
func (t Transform) Mirrors() bool {
	return t.matrix().Mat3().Det() < 0
}
