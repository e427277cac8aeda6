package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an object in the world as translation, rotation and scale
type Transform struct {
	Position Vector3
	Rotation mgl64.Quat
	Scale    Vector3
}

// IdentityTransform returns a transform at the origin with unit scale
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    One,
	}
}

// Translation returns an identity transform moved to position
func Translation(position Vector3) Transform {
	t := IdentityTransform()
	t.Position = position
	return t
}

// Matrix returns the object-to-world matrix T*R*S
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position.X, t.Position.Y, t.Position.Z).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// TransformPoint maps a local point to world space
func (t Transform) TransformPoint(p Vector3) Vector3 {
	return t.Position.Add(t.TransformDirection(p))
}

// TransformDirection applies rotation and scale, not translation
func (t Transform) TransformDirection(d Vector3) Vector3 {
	return FromVec(t.Rotation.Rotate(d.Scale(t.Scale).Vec()))
}

// InverseTransformPoint maps a world point to local space. The translation is
// removed before the linear part to keep precision for far away objects.
func (t Transform) InverseTransformPoint(p Vector3) Vector3 {
	return t.InverseTransformDirection(p.Sub(t.Position))
}

// InverseTransformDirection undoes rotation and scale
func (t Transform) InverseTransformDirection(d Vector3) Vector3 {
	r := FromVec(t.Rotation.Inverse().Rotate(d.Vec()))
	return Vector3{
		X: safeDiv(r.X, t.Scale.X),
		Y: safeDiv(r.Y, t.Scale.Y),
		Z: safeDiv(r.Z, t.Scale.Z),
	}
}

// InverseTransformRay maps a world ray to local space. The direction is not
// renormalized so a local ray parameter equals the world ray parameter.
func (t Transform) InverseTransformRay(r Ray) Ray {
	return Ray{
		Origin:    t.InverseTransformPoint(r.Origin),
		Direction: t.InverseTransformDirection(r.Direction),
	}
}

func safeDiv(v, s float64) float64 {
	if math.Abs(s) < Epsilon {
		return 0
	}
	return v / s
}

// RotateVector rotates v by q
func RotateVector(q mgl64.Quat, v Vector3) Vector3 {
	return FromVec(q.Rotate(v.Vec()))
}
