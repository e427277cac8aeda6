package geometry

import "math"

// SqrDistancePointSegment2D returns the squared distance from p to segment ab
func SqrDistancePointSegment2D(p, a, b Vector2) float64 {
	ab := b.Sub(a)
	lenSq := ab.SqrLength()
	if lenSq < Epsilon {
		return p.SqrDistance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.SqrDistance(a.Add(ab.Mul(t)))
}

// ClosestPointOnSegment returns the point of segment ab nearest to p
func ClosestPointOnSegment(p, a, b Vector3) Vector3 {
	ab := b.Sub(a)
	lenSq := ab.SqrLength()
	if lenSq < Epsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

// DistancePointSegment returns the distance from p to segment ab
func DistancePointSegment(p, a, b Vector3) float64 {
	return p.Distance(ClosestPointOnSegment(p, a, b))
}
