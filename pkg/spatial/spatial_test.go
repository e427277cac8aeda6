package spatial

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/mesh/meshtest"
	"github.com/philipparndt/meshedit/pkg/viewer"
)

// frontCamera looks at the origin from (0, 0, 4)
func frontCamera() *viewer.Camera {
	c := viewer.NewCamera(meshtest.Cube().Bounds(), 800, 600)
	c.Distance = 4
	c.UpdatePosition()
	return c
}

func screenOf(t *testing.T, cam *viewer.Camera, p geometry.Vector3) geometry.Vector2 {
	s, _, ok := cam.WorldToScreen(p)
	require.True(t, ok)
	return s
}

func TestFaceRaycastCulling(t *testing.T) {
	tri := meshtest.Triangle()
	toward := geometry.NewRay(geometry.NewVector3(0.25, 0.25, 5), geometry.NewVector3(0, 0, -1))
	away := geometry.NewRay(geometry.NewVector3(0.25, 0.25, -5), geometry.NewVector3(0, 0, 1))

	tests := []struct {
		cull     CullingMode
		ray      geometry.Ray
		expected bool
	}{
		{Front, toward, true},
		{Back, toward, false},
		{FrontBack, toward, true},
		{Front, away, false},
		{Back, away, true},
		{FrontBack, away, true},
	}
	for _, tt := range tests {
		_, ok := FaceRaycast(tt.ray, tri, tt.cull)
		assert.Equal(t, tt.expected, ok, "%v culling with ray %v", tt.cull, tt.ray.Direction)
	}
}

func TestFaceRaycastTransformedObject(t *testing.T) {
	tri := meshtest.Triangle()
	tri.Transform = geometry.Transform{
		Position: geometry.NewVector3(1e6, 0, 0),
		Rotation: mgl64.QuatIdent(),
		Scale:    geometry.NewVector3(2, 2, 2),
	}
	ray := geometry.NewRay(geometry.NewVector3(1e6+0.5, 0.5, 3), geometry.NewVector3(0, 0, -1))

	hit, ok := FaceRaycast(ray, tri, Front)

	require.True(t, ok)
	assert.InDelta(t, 3.0, hit.Distance, 1e-9)
	assert.True(t, hit.WorldPoint.ApproxEqual(geometry.NewVector3(1e6+0.5, 0.5, 0), 1e-6))
	assert.True(t, hit.Point.ApproxEqual(geometry.NewVector3(0.25, 0.25, 0), 1e-9))
	assert.Equal(t, 0, hit.Face)
}

func TestFaceRaycastAllSorted(t *testing.T) {
	cube := meshtest.Cube()
	ray := geometry.NewRay(geometry.NewVector3(0.1, 0.2, 4), geometry.NewVector3(0, 0, -1))

	hits := FaceRaycastAll(ray, cube, FrontBack)

	require.Len(t, hits, 2)
	assert.InDelta(t, 3.5, hits[0].Distance, 1e-9)
	assert.InDelta(t, 4.5, hits[1].Distance, 1e-9)
	assert.Equal(t, 4, hits[0].Face, "+Z face first")
	assert.Equal(t, 5, hits[1].Face)

	assert.Len(t, FaceRaycastAll(ray, cube, Front), 1)
	assert.Empty(t, FaceRaycastAll(ray, nil, Front))
}

func TestIsPointOccluded(t *testing.T) {
	cam := frontCamera()
	objects := []*mesh.Object{meshtest.Cube()}

	assert.False(t, IsPointOccluded(cam, objects, geometry.NewVector3(0, 0, 0.5)))
	assert.False(t, IsPointOccluded(cam, objects, geometry.NewVector3(0.5, 0.5, 0.5)))
	assert.True(t, IsPointOccluded(cam, objects, geometry.NewVector3(0, 0, -0.5)))
	assert.True(t, IsPointOccluded(cam, objects, geometry.NewVector3(0.5, 0.5, -0.5)))
	assert.False(t, IsPointOccluded(cam, nil, geometry.NewVector3(0, 0, -0.5)))
}

func TestNearestVertexToScreenPoint(t *testing.T) {
	cam := frontCamera()
	cube := meshtest.Cube()
	objects := []*mesh.Object{cube}
	front := geometry.NewVector3(0.5, 0.5, 0.5)
	back := geometry.NewVector3(0.5, 0.5, -0.5)
	mouse := screenOf(t, cam, back)

	hit, ok := NearestVertexToScreenPoint(cam, objects, mouse, 128, false)
	require.True(t, ok)
	assert.Equal(t, back, cube.Position(hit.Index))
	assert.InDelta(t, 0.0, hit.Screen, 1e-6)

	hit, ok = NearestVertexToScreenPoint(cam, objects, mouse, 128, true)
	require.True(t, ok)
	assert.Equal(t, front, cube.Position(hit.Index), "hidden vertex is skipped")

	_, ok = NearestVertexToScreenPoint(cam, objects, geometry.NewVector2(0, 0), 12, false)
	assert.False(t, ok)
}

func TestNearestEdgeToScreenPoint(t *testing.T) {
	cam := frontCamera()
	cube := meshtest.Cube()
	objects := []*mesh.Object{cube}
	topFront := cube.UniversalEdge(meshtest.FindEdge(cube,
		geometry.NewVector3(-0.5, 0.5, 0.5), geometry.NewVector3(0.5, 0.5, 0.5))).Normalized()

	t.Run("over the object", func(t *testing.T) {
		mouse := screenOf(t, cam, geometry.NewVector3(0.1, 0.45, 0.5))
		hit, ok := NearestEdgeToScreenPoint(cam, objects, mouse, 12, Front)
		require.True(t, ok)
		assert.Equal(t, topFront, cube.UniversalEdge(hit.Edge).Normalized())
	})

	t.Run("beside the object", func(t *testing.T) {
		mouse := screenOf(t, cam, geometry.NewVector3(0.1, 0.5, 0.5)).Sub(geometry.NewVector2(0, 6))
		hit, ok := NearestEdgeToScreenPoint(cam, objects, mouse, 12, Front)
		require.True(t, ok)
		assert.Equal(t, topFront, cube.UniversalEdge(hit.Edge).Normalized())
		assert.InDelta(t, 6.0, hit.Screen, 1e-6)
	})

	t.Run("too far", func(t *testing.T) {
		_, ok := NearestEdgeToScreenPoint(cam, objects, geometry.NewVector2(5, 5), 12, Front)
		assert.False(t, ok)
	})
}

func TestNearestFaceCandidates(t *testing.T) {
	cam := frontCamera()
	cube := meshtest.Cube()
	mouse := geometry.NewVector2(400, 300)

	hits := NearestFaceCandidates(cam, []*mesh.Object{cube}, mouse, FrontBack)

	require.Len(t, hits, 2)
	assert.Equal(t, cube.Faces()[4], hits[0].Face)
	assert.Equal(t, cube.Faces()[5], hits[1].Face)
	assert.Less(t, hits[0].Distance, hits[1].Distance)
	assert.Len(t, NearestFaceCandidates(cam, []*mesh.Object{cube}, mouse, Front), 1)
}

func TestPickInRect(t *testing.T) {
	cam := frontCamera()
	cube := meshtest.Cube()
	objects := []*mesh.Object{cube}
	all := geometry.NewRect(geometry.NewVector2(0, 0), geometry.NewVector2(800, 600))

	tests := []struct {
		name     string
		opts     RectOptions
		vertices int
		edges    int
		faces    int
	}{
		{"partial", RectOptions{Policy: Partial}, 8, 12, 6},
		{"complete", RectOptions{Policy: Complete}, 8, 12, 6},
		{"partial visible", RectOptions{Policy: Partial, SkipOccluded: true}, 4, 8, 5},
		{"complete visible", RectOptions{Policy: Complete, SkipOccluded: true}, 4, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, PickVerticesInRect(cam, objects, all, tt.opts)[cube], tt.vertices)
			assert.Len(t, PickEdgesInRect(cam, objects, all, tt.opts)[cube], tt.edges)
			assert.Len(t, PickFacesInRect(cam, objects, all, tt.opts)[cube], tt.faces)
		})
	}
}

func TestPickFacesInSmallRect(t *testing.T) {
	cam := frontCamera()
	grid := meshtest.Grid(2, 1)
	grid.Transform.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
	objects := []*mesh.Object{grid}

	// the rotated grid faces the camera, cell (0,0) spans x 0..1
	rect := geometry.NewRect(
		screenOf(t, cam, geometry.NewVector3(-0.1, 0.1, 0)),
		screenOf(t, cam, geometry.NewVector3(1.1, -1.1, 0)),
	)

	complete := PickFacesInRect(cam, objects, rect, RectOptions{Policy: Complete})[grid]
	partial := PickFacesInRect(cam, objects, rect, RectOptions{Policy: Partial})[grid]

	assert.Equal(t, []*mesh.Face{grid.Faces()[0]}, complete)
	assert.Len(t, partial, 2)
}

func TestVertexIndex(t *testing.T) {
	cube := meshtest.Cube()
	index := NewVertexIndex([]*mesh.Object{cube}, nil)
	require.Equal(t, 8, index.Len())

	ref, ok := index.Nearest(geometry.NewVector3(0.6, 0.6, 0.6), 0.2)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(0.5, 0.5, 0.5), ref.Position)
	assert.Equal(t, cube, ref.Object)

	_, ok = index.Nearest(geometry.NewVector3(0.6, 0.6, 0.6), 0.1)
	assert.False(t, ok)

	within := index.Within(geometry.NewVector3(0.5, 0.5, 0.4), 1.05)
	require.Len(t, within, 4)
	assert.Equal(t, geometry.NewVector3(0.5, 0.5, 0.5), within[0].Position)

	skipAll := NewVertexIndex([]*mesh.Object{cube}, func(*mesh.Object, int) bool { return true })
	_, ok = skipAll.Nearest(geometry.Vector3{}, 10)
	assert.False(t, ok)
	assert.Empty(t, skipAll.Within(geometry.Vector3{}, 10))
}
