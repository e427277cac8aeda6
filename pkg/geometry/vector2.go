package geometry

import "math"

// Vector2 is a point in screen space, in pixels with Y pointing down
type Vector2 struct {
	X, Y float64
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul multiplies the vector by a scalar
func (v Vector2) Mul(scalar float64) Vector2 {
	return Vector2{X: v.X * scalar, Y: v.Y * scalar}
}

// Dot returns the dot product of two vectors
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// SqrLength returns the squared magnitude
func (v Vector2) SqrLength() float64 {
	return v.X*v.X + v.Y*v.Y
}

// SqrDistance returns the squared distance between two points
func (v Vector2) SqrDistance(other Vector2) float64 {
	return v.Sub(other).SqrLength()
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return math.Sqrt(v.SqrDistance(other))
}

// Rect is an axis-aligned screen rectangle
type Rect struct {
	Min Vector2
	Max Vector2
}

// NewRect normalizes a drag from start to end so the rectangle has positive
// width and height regardless of drag direction
func NewRect(start, end Vector2) Rect {
	return Rect{
		Min: Vector2{X: math.Min(start.X, end.X), Y: math.Min(start.Y, end.Y)},
		Max: Vector2{X: math.Max(start.X, end.X), Y: math.Max(start.Y, end.Y)},
	}
}

// Contains reports whether the point is inside or on the border
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}
