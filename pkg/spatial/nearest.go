package spatial

import (
	"cmp"
	"math"
	"slices"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/viewer"
)

// VertexHit is a vertex found near a screen position
type VertexHit struct {
	Object *mesh.Object
	Index  int     // First slot of the shared group
	Screen float64 // Distance to the cursor in pixels
}

// EdgeHit is an edge found near a screen position
type EdgeHit struct {
	Object *mesh.Object
	Edge   mesh.Edge // Face-local edge
	Screen float64   // Distance to the cursor in pixels
}

// FaceHit is a face under a screen position
type FaceHit struct {
	Object   *mesh.Object
	Face     *mesh.Face
	Distance float64 // Ray distance from the camera
}

// NearestVertexToScreenPoint returns the shared vertex closest to the cursor
// within maxDistance pixels. With skipOccluded, vertices hidden behind any
// of the objects are ignored.
func NearestVertexToScreenPoint(cam *viewer.Camera, objects []*mesh.Object, mouse geometry.Vector2, maxDistance float64, skipOccluded bool) (VertexHit, bool) {
	best := VertexHit{Screen: math.Inf(1)}
	bestSqr := maxDistance * maxDistance
	found := false
	cache := newOcclusionCache(cam, objects)

	for _, o := range objects {
		for g := 0; g < o.GroupCount(); g++ {
			slot := o.MembersOf(g)[0]
			world := o.WorldPosition(slot)
			screen, _, ok := cam.WorldToScreen(world)
			if !ok {
				continue
			}
			d := screen.SqrDistance(mouse)
			if d > bestSqr || (found && d == bestSqr) {
				continue
			}
			if skipOccluded && cache.occluded(world) {
				continue
			}
			bestSqr = d
			best = VertexHit{Object: o, Index: slot, Screen: math.Sqrt(d)}
			found = true
		}
	}
	return best, found
}

// NearestEdgeToScreenPoint returns the edge closest to the cursor within
// maxDistance pixels. When an object is under the cursor only the faces the
// pick ray crosses on that object are searched, by 3D distance from the hit
// point. Otherwise every edge of every object is measured in screen space.
func NearestEdgeToScreenPoint(cam *viewer.Camera, objects []*mesh.Object, mouse geometry.Vector2, maxDistance float64, cull CullingMode) (EdgeHit, bool) {
	if hit, ok := nearestEdgeOnHitFaces(cam, objects, mouse, maxDistance, cull); ok {
		return hit, true
	}
	return nearestEdgeInScreen(cam, objects, mouse, maxDistance)
}

func nearestEdgeOnHitFaces(cam *viewer.Camera, objects []*mesh.Object, mouse geometry.Vector2, maxDistance float64, cull CullingMode) (EdgeHit, bool) {
	ray := cam.ScreenToRay(mouse)

	var target *mesh.Object
	var hits []Hit
	for _, o := range objects {
		h := FaceRaycastAll(ray, o, cull)
		if len(h) > 0 && (target == nil || h[0].Distance < hits[0].Distance) {
			target, hits = o, h
		}
	}
	if target == nil {
		return EdgeHit{}, false
	}

	var best EdgeHit
	bestWorld := math.Inf(1)
	found := false
	faces := target.Faces()
	for _, h := range hits {
		for _, e := range faces[h.Face].Edges() {
			a, b := target.WorldPosition(e.A), target.WorldPosition(e.B)
			closest := geometry.ClosestPointOnSegment(h.WorldPoint, a, b)
			d := closest.Distance(h.WorldPoint)
			if d >= bestWorld {
				continue
			}
			screen, _, ok := cam.WorldToScreen(closest)
			if !ok || screen.SqrDistance(mouse) > maxDistance*maxDistance {
				continue
			}
			bestWorld = d
			best = EdgeHit{Object: target, Edge: e, Screen: screen.Distance(mouse)}
			found = true
		}
	}
	return best, found
}

func nearestEdgeInScreen(cam *viewer.Camera, objects []*mesh.Object, mouse geometry.Vector2, maxDistance float64) (EdgeHit, bool) {
	var best EdgeHit
	bestSqr := maxDistance * maxDistance
	found := false

	for _, o := range objects {
		for _, e := range o.LocalEdges() {
			a, _, okA := cam.WorldToScreen(o.WorldPosition(e.A))
			b, _, okB := cam.WorldToScreen(o.WorldPosition(e.B))
			if !okA || !okB {
				continue
			}
			d := geometry.SqrDistancePointSegment2D(mouse, a, b)
			if d > bestSqr || (found && d == bestSqr) {
				continue
			}
			bestSqr = d
			best = EdgeHit{Object: o, Edge: e, Screen: math.Sqrt(d)}
			found = true
		}
	}
	return best, found
}

// NearestFaceCandidates returns every face under the cursor across all
// objects, nearest first. A face crossed twice is listed once.
func NearestFaceCandidates(cam *viewer.Camera, objects []*mesh.Object, mouse geometry.Vector2, cull CullingMode) []FaceHit {
	ray := cam.ScreenToRay(mouse)

	var out []FaceHit
	seen := make(map[*mesh.Face]bool)
	for _, o := range objects {
		faces := o.Faces()
		for _, h := range FaceRaycastAll(ray, o, cull) {
			f := faces[h.Face]
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, FaceHit{Object: o, Face: f, Distance: h.Distance})
		}
	}
	slices.SortStableFunc(out, func(a, b FaceHit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return out
}
