package geometry

import "math"

// Ray is a half-line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// PointAt returns Origin + Direction*t
func (r Ray) PointAt(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ClosestPoint projects a point onto the ray's supporting line.
// Direction is assumed normalized.
func (r Ray) ClosestPoint(p Vector3) Vector3 {
	return r.PointAt(p.Sub(r.Origin).Dot(r.Direction))
}

// DistanceToPoint returns the distance from a point to the ray's line
func (r Ray) DistanceToPoint(p Vector3) float64 {
	return r.ClosestPoint(p).Distance(p)
}

// IntersectPlane returns the ray parameter where it crosses the plane
// through point with the given normal. Rays parallel to the plane, or
// crossing behind the origin, report false.
func (r Ray) IntersectPlane(point, normal Vector3) (float64, bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}
