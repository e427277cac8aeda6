package topology

import (
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// GrowFaces returns the faces sharing an edge with any of faces, excluding
// faces themselves. With maxAngle > 0 a neighbour is only added when its
// normal deviates less than maxAngle degrees from the face it borders.
func GrowFaces(o *mesh.Object, faces []*mesh.Face, maxAngle float64) []*mesh.Face {
	source := make(map[*mesh.Face]bool, len(faces))
	for _, f := range faces {
		source[f] = true
	}

	added := make(map[*mesh.Face]bool)
	var out []*mesh.Face
	var normal geometry.Vector3
	for _, w := range o.WingedEdges() {
		if !source[w.Face] {
			continue
		}
		if maxAngle > 0 {
			normal = o.FaceNormal(w.Face)
		}
		opp := w.Opposite
		if opp == nil || source[opp.Face] || added[opp.Face] {
			continue
		}
		if maxAngle > 0 && normal.Angle(o.FaceNormal(opp.Face)) >= maxAngle {
			continue
		}
		added[opp.Face] = true
		out = append(out, opp.Face)
	}
	return out
}

// FloodFaces returns faces plus every face reachable from them across shared
// edges. With maxAngle > 0 the walk only crosses edges whose two faces
// deviate less than maxAngle degrees.
func FloodFaces(o *mesh.Object, faces []*mesh.Face, maxAngle float64) []*mesh.Face {
	source := make(map[*mesh.Face]bool, len(faces))
	for _, f := range faces {
		source[f] = true
	}

	type step struct {
		wing   *mesh.WingedEdge
		normal geometry.Vector3
	}

	flood := make(map[*mesh.Face]bool)
	var out []*mesh.Face
	visit := func(f *mesh.Face) bool {
		if flood[f] {
			return false
		}
		flood[f] = true
		out = append(out, f)
		return true
	}

	for _, w := range o.WingedEdges() {
		if flood[w.Face] || !source[w.Face] {
			continue
		}
		visit(w.Face)

		stack := []step{{wing: w, normal: o.FaceNormal(w.Face)}}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			for _, e := range s.wing.Perimeter() {
				opp := e.Opposite
				if opp == nil || flood[opp.Face] {
					continue
				}
				n := o.FaceNormal(opp.Face)
				if maxAngle > 0 && s.normal.Angle(n) >= maxAngle {
					continue
				}
				visit(opp.Face)
				stack = append(stack, step{wing: opp, normal: n})
			}
		}
	}
	return out
}

// perimeterFaces returns the selected faces bordering an unselected face
func perimeterFaces(o *mesh.Object, faces []*mesh.Face) map[*mesh.Face]bool {
	selected := make(map[*mesh.Face]bool, len(faces))
	for _, f := range faces {
		selected[f] = true
	}

	out := make(map[*mesh.Face]bool)
	for _, w := range o.WingedEdges() {
		if selected[w.Face] && w.Opposite != nil && !selected[w.Opposite.Face] {
			out[w.Face] = true
		}
	}
	return out
}

// perimeterGroups returns the selected shared groups connected by an edge to
// an unselected group
func perimeterGroups(o *mesh.Object, groups []int) map[int]bool {
	selected := make(map[int]bool, len(groups))
	for _, g := range groups {
		selected[g] = true
	}

	out := make(map[int]bool)
	for _, u := range o.UniversalEdges() {
		switch {
		case selected[u.A] && !selected[u.B]:
			out[u.A] = true
		case selected[u.B] && !selected[u.A]:
			out[u.B] = true
		}
	}
	return out
}

// perimeterEdges returns the selected universal edges that share an endpoint
// with an unselected edge
func perimeterEdges(o *mesh.Object, universal []mesh.Edge) map[mesh.Edge]bool {
	selected := make(map[mesh.Edge]bool, len(universal))
	for _, u := range universal {
		selected[u] = true
	}

	// groups touched by an unselected edge
	open := make(map[int]bool)
	for _, u := range o.UniversalEdges() {
		if !selected[u] {
			open[u.A] = true
			open[u.B] = true
		}
	}

	out := make(map[mesh.Edge]bool)
	for _, u := range universal {
		if open[u.A] || open[u.B] {
			out[u] = true
		}
	}
	return out
}
