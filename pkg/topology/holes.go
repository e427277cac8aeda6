package topology

import (
	"slices"

	"github.com/samber/lo"

	"github.com/philipparndt/meshedit/pkg/mesh"
)

// maxHoleSteps bounds walks around malformed topology
const maxHoleSteps = 4096

// FindHoles returns the boundary loops of the open holes touching any of the
// shared groups, one local edge per boundary edge in walking order. A hole
// whose border passes a vertex twice is split into simple loops.
func FindHoles(o *mesh.Object, groups []int) [][]mesh.Edge {
	common := lo.SliceToMap(groups, func(g int) (int, bool) { return g, true })
	used := make(map[*mesh.WingedEdge]bool)

	var holes [][]mesh.Edge
	for _, w := range o.WingedEdges() {
		e := w.Edge.Common
		if w.Opposite != nil || used[w] || !(common[e.A] || common[e.B]) {
			continue
		}
		for _, loop := range walkHole(w, used) {
			touches := lo.SomeBy(loop, func(x *mesh.WingedEdge) bool {
				return common[x.Edge.Common.A] || common[x.Edge.Common.B]
			})
			if touches {
				holes = append(holes, lo.Map(loop, func(x *mesh.WingedEdge, _ int) mesh.Edge {
					return x.Edge.Local
				}))
			}
		}
	}
	return holes
}

// walkHole follows boundary edges from start and cuts a loop off the path
// each time the walk reaches a vertex it already left
func walkHole(start *mesh.WingedEdge, used map[*mesh.WingedEdge]bool) [][]*mesh.WingedEdge {
	var loops [][]*mesh.WingedEdge
	var path []*mesh.WingedEdge
	var from []int

	at := start.Edge.Common.A
	for w, steps := start, 0; w != nil && !used[w] && steps < maxHoleSteps; steps++ {
		used[w] = true
		path = append(path, w)
		from = append(from, at)
		at = w.Edge.Common.Other(at)

		if n := slices.Index(from, at); n >= 0 {
			loops = append(loops, slices.Clone(path[n:]))
			path, from = path[:n], from[:n]
		}
		w = nextInHole(w, at)
	}
	return loops
}

// nextInHole turns around pivot from w until it reaches the next boundary edge
func nextInHole(w *mesh.WingedEdge, pivot int) *mesh.WingedEdge {
	next := w.AdjacentWithCommon(pivot)
	for steps := 0; next != nil && next != w && steps < maxHoleSteps; steps++ {
		if next.Opposite == nil {
			return next
		}
		next = next.Opposite.AdjacentWithCommon(pivot)
	}
	return nil
}

// FaceRingAndLoop returns the union of the face loop and the face ring
// through each face
func FaceRingAndLoop(o *mesh.Object, faces []*mesh.Face) []*mesh.Face {
	return lo.Uniq(append(FaceLoop(o, faces, false), FaceLoop(o, faces, true)...))
}
