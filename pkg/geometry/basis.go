package geometry

import "github.com/go-gl/mathgl/mgl64"

// Basis is an orthonormal frame. Forward is the implicit third axis, which
// for a face basis is the face normal.
type Basis struct {
	Right   Vector3
	Up      Vector3
	Forward Vector3
}

// WorldBasis is the canonical fallback frame
var WorldBasis = Basis{Right: Right, Up: Up, Forward: Forward}

// NewBasis builds a right-handed frame from a normal and a tangent. A zero
// normal, zero tangent or a tangent parallel to the normal returns
// WorldBasis.
func NewBasis(normal, tangent Vector3) Basis {
	forward := normal.Normalize()
	if forward.IsZero() {
		return WorldBasis
	}
	// Gram-Schmidt
	right := tangent.Sub(forward.Mul(tangent.Dot(forward))).Normalize()
	if right.IsZero() {
		return WorldBasis
	}
	return Basis{
		Right:   right,
		Up:      forward.Cross(right),
		Forward: forward,
	}
}

// Rotation returns the quaternion rotating world axes onto the basis
func (b Basis) Rotation() mgl64.Quat {
	m := mgl64.Mat3FromCols(b.Right.Vec(), b.Up.Vec(), b.Forward.Vec())
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}
