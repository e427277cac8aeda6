package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrCollinear is returned when the points span no plane
var ErrCollinear = errors.New("points are collinear")

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of the point distances from the circle
}

// FitCircle fits a circle through the first, middle and last point and
// measures how well the remaining points follow it. The circle lies in the
// plane of those three points.
//
// In plane coordinates the center of the circle through three points is
//
//	D  = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//	cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//	cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
func FitCircle(points []Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit a circle, got %d", len(points))
	}

	origin := points[0]
	a := points[len(points)/2].Sub(origin)
	b := points[len(points)-1].Sub(origin)
	normal := a.Cross(b).Normalize()
	if normal.IsZero() {
		return nil, ErrCollinear
	}
	basis := NewBasis(normal, a)
	project := func(p Vector3) (float64, float64) {
		d := p.Sub(origin)
		return d.Dot(basis.Right), d.Dot(basis.Up)
	}

	x1, y1 := 0.0, 0.0
	x2, y2 := project(points[len(points)/2])
	x3, y3 := project(points[len(points)-1])

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, ErrCollinear
	}

	x2sq := x2*x2 + y2*y2
	x3sq := x3*x3 + y3*y3
	cx := (x2sq*(y3-y1) + x3sq*(y1-y2)) / D
	cy := (x2sq*(x1-x3) + x3sq*(x2-x1)) / D

	center := origin.Add(basis.Right.Mul(cx)).Add(basis.Up.Mul(cy))
	radius := math.Hypot(cx, cy)

	var sumError float64
	for _, p := range points {
		e := p.Distance(center) - radius
		sumError += e * e
	}

	return &CircleFit{
		Center: center,
		Radius: radius,
		Normal: normal,
		StdDev: math.Sqrt(sumError / float64(len(points))),
	}, nil
}
