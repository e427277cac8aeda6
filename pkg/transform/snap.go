package transform

import (
	"math"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/spatial"
)

// constrain keeps the components of delta along the given handle axes
func (g *Gesture) constrain(delta geometry.Vector3, axes Axis) geometry.Vector3 {
	local := geometry.RotateVector(g.rotation.Inverse(), delta)
	if axes&AxisX == 0 {
		local.X = 0
	}
	if axes&AxisY == 0 {
		local.Y = 0
	}
	if axes&AxisZ == 0 {
		local.Z = 0
	}
	return geometry.RotateVector(g.rotation, local)
}

// moving reports whether slot group g of o is part of the gesture
func (g *Gesture) moving(o *mesh.Object, group int) bool {
	for _, e := range g.entries {
		if e.object != o {
			continue
		}
		for _, i := range e.slots {
			if o.GroupOf(i) == group {
				return true
			}
		}
	}
	return false
}

// snapToVertex replaces delta with the offset to the closest resting vertex
// within the snap radius of the dragged handle
func (g *Gesture) snapToVertex(delta geometry.Vector3) (geometry.Vector3, bool) {
	if g.index == nil {
		g.index = spatial.NewVertexIndex(g.objects, g.moving)
	}
	ref, ok := g.index.Nearest(g.pivot.Add(delta), g.opts.SnapRadius)
	if !ok {
		return delta, false
	}
	return ref.Position.Sub(g.pivot), true
}

// snapToFace casts from the handle along delta against every face that does
// not move and lands the handle on the nearest hit
func (g *Gesture) snapToFace(delta geometry.Vector3) (geometry.Vector3, bool) {
	if delta.IsZero() {
		return delta, false
	}
	ray := geometry.NewRay(g.pivot, delta)

	best := math.Inf(1)
	var point geometry.Vector3
	for _, o := range g.objects {
		faces := o.Faces()
		skip := g.movingFaces(o)
		for _, hit := range spatial.FaceRaycastAll(ray, o, spatial.FrontBack) {
			if skip[faces[hit.Face]] || hit.Distance >= best {
				continue
			}
			best = hit.Distance
			point = hit.WorldPoint
		}
	}
	if math.IsInf(best, 1) {
		return delta, false
	}
	return point.Sub(g.pivot), true
}

func (g *Gesture) movingFaces(o *mesh.Object) map[*mesh.Face]bool {
	for _, e := range g.entries {
		if e.object == o {
			return e.faces
		}
	}
	return nil
}
