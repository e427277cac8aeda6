package spatial

import (
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/viewer"
)

// occlusionOffset lifts the ray origin off the surface the point lies on
const occlusionOffset = 1e-4

// IsPointOccluded reports whether any of the objects blocks the line of
// sight from the camera to a world point. Only faces turned toward the
// camera occlude.
func IsPointOccluded(cam *viewer.Camera, objects []*mesh.Object, point geometry.Vector3) bool {
	toCamera := cam.Position.Sub(point)
	maxDist := toCamera.Length()
	if maxDist < geometry.Epsilon {
		return false
	}
	dir := toCamera.Mul(1 / maxDist)
	ray := geometry.Ray{Origin: point.Add(dir.Mul(occlusionOffset)), Direction: dir}

	for _, o := range objects {
		if hit, ok := FaceRaycast(ray, o, Back); ok && hit.Distance < maxDist-occlusionOffset {
			return true
		}
	}
	return false
}

// occlusionCache memoizes IsPointOccluded for one query
type occlusionCache struct {
	cam     *viewer.Camera
	objects []*mesh.Object
	results map[geometry.Vector3]bool
}

func newOcclusionCache(cam *viewer.Camera, objects []*mesh.Object) *occlusionCache {
	return &occlusionCache{cam: cam, objects: objects, results: make(map[geometry.Vector3]bool)}
}

func (c *occlusionCache) occluded(p geometry.Vector3) bool {
	if r, ok := c.results[p]; ok {
		return r
	}
	r := IsPointOccluded(c.cam, c.objects, p)
	c.results[p] = r
	return r
}
