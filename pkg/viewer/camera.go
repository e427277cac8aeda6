package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// Camera is an orbiting perspective camera over a viewport in pixels
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Vertical field of view in radians
	Near     float64
	Far      float64
	Width    float64
	Height   float64
	Distance float64
	Yaw      float64 // Rotation around the Y axis
	Pitch    float64 // Rotation above the XZ plane
}

// NewCamera creates a camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox, width, height float64) *Camera {
	center := bbox.Center()
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance < geometry.Epsilon {
		distance = 1
	}

	c := &Camera{
		Target:   center,
		Up:       geometry.Up,
		FOV:      math.Pi / 4, // 45 degrees
		Near:     0.01,
		Far:      distance * 100,
		Width:    width,
		Height:   height,
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera on its orbit around Target
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Orbit sets the yaw and pitch angles in radians
func (c *Camera) Orbit(yaw, pitch float64) {
	c.Yaw = 0
	c.Pitch = 0
	c.Rotate(pitch, yaw)
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw

	// Clamp pitch to keep Up usable
	maxAngle := math.Pi/2 - 0.1
	c.Pitch = math.Max(-maxAngle, math.Min(maxAngle, c.Pitch))

	c.UpdatePosition()
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// Forward returns the unit view direction
func (c *Camera) Forward() geometry.Vector3 {
	return c.Target.Sub(c.Position).Normalize()
}

// View returns the world to camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Vec(), c.Target.Vec(), c.Up.Vec())
}

// Projection returns the perspective matrix for the viewport
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(c.FOV, c.aspect(), c.Near, c.Far)
}

// ViewProjection returns Projection * View
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// WorldToScreen projects a world point to pixel coordinates with Y down.
// Depth is the distance along the view direction; points behind the near
// plane report false.
func (c *Camera) WorldToScreen(p geometry.Vector3) (geometry.Vector2, float64, bool) {
	depth := p.Sub(c.Position).Dot(c.Forward())
	if depth <= c.Near {
		return geometry.Vector2{}, depth, false
	}

	clip := c.ViewProjection().Mul4x1(p.Vec().Vec4(1))
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()

	screen := geometry.Vector2{
		X: (ndcX + 1) / 2 * c.Width,
		Y: (1 - ndcY) / 2 * c.Height,
	}
	return screen, depth, true
}

// ScreenToRay returns the world ray through a pixel
func (c *Camera) ScreenToRay(p geometry.Vector2) geometry.Ray {
	// Convert screen coordinates to normalized device coordinates (-1 to 1)
	ndcX := (2.0 * p.X / c.Width) - 1.0
	ndcY := 1.0 - (2.0 * p.Y / c.Height)

	fovScale := math.Tan(c.FOV / 2)

	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	dir := forward.Add(right.Mul(ndcX * fovScale * c.aspect())).Add(up.Mul(ndcY * fovScale))
	return geometry.NewRay(c.Position, dir)
}

func (c *Camera) aspect() float64 {
	if c.Height <= 0 {
		return 1
	}
	return c.Width / c.Height
}
