// Package spatial resolves screen positions, rays and rectangles into mesh
// elements.
package spatial

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// CullingMode selects which side of a triangle can be hit
type CullingMode int

const (
	// Front hits triangles facing the ray, dot(dir, normal) <= 0
	Front CullingMode = iota
	// Back hits triangles facing away from the ray
	Back
	// FrontBack disables culling
	FrontBack
)

func (c CullingMode) String() string {
	switch c {
	case Front:
		return "front"
	case Back:
		return "back"
	case FrontBack:
		return "front-back"
	default:
		return "unknown"
	}
}

// ParseCullingMode converts a culling name
func ParseCullingMode(s string) (CullingMode, error) {
	switch strings.ToLower(s) {
	case "front":
		return Front, nil
	case "back":
		return Back, nil
	case "front-back", "frontback", "none":
		return FrontBack, nil
	}
	return Front, fmt.Errorf("unknown culling mode: %s", s)
}

// Hit is a ray intersection with a face
type Hit struct {
	Distance   float64          // Ray parameter, equal in local and world space
	Point      geometry.Vector3 // Local space
	WorldPoint geometry.Vector3
	Normal     geometry.Vector3 // Local triangle normal
	Face       int              // Index into Object.Faces
}

// FaceRaycast returns the nearest hit of a world ray on o
func FaceRaycast(ray geometry.Ray, o *mesh.Object, cull CullingMode) (Hit, bool) {
	var best Hit
	found := false
	eachHit(ray, o, cull, func(h Hit) {
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	})
	return best, found
}

// FaceRaycastAll returns every hit of a world ray on o sorted by distance
func FaceRaycastAll(ray geometry.Ray, o *mesh.Object, cull CullingMode) []Hit {
	var hits []Hit
	eachHit(ray, o, cull, func(h Hit) {
		hits = append(hits, h)
	})
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

// eachHit tests every triangle of o in local space. Malformed meshes are
// reported as no hit.
func eachHit(ray geometry.Ray, o *mesh.Object, cull CullingMode, fn func(Hit)) {
	if o == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	local := o.Transform.InverseTransformRay(ray)
	for fi, f := range o.Faces() {
		indices := f.Indices()
		for t := 0; t+2 < len(indices); t += 3 {
			tri := geometry.Triangle{
				V1: o.Position(indices[t]),
				V2: o.Position(indices[t+1]),
				V3: o.Position(indices[t+2]),
			}
			normal := tri.AreaNormal()
			if !facing(local.Direction, normal, cull) {
				continue
			}
			dist, ok := tri.Intersect(local)
			if !ok {
				continue
			}
			fn(Hit{
				Distance:   dist,
				Point:      local.PointAt(dist),
				WorldPoint: ray.PointAt(dist),
				Normal:     normal.Normalize(),
				Face:       fi,
			})
		}
	}
}

// facing reports whether a triangle passes the culling test
func facing(dir, normal geometry.Vector3, cull CullingMode) bool {
	d := dir.Dot(normal)
	switch cull {
	case Front:
		return d <= 0
	case Back:
		return d > 0
	default:
		return true
	}
}
