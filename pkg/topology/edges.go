// Package topology expands and reduces element selections by walking the
// mesh connectivity: grow, shrink, invert, loops, rings and welding.
package topology

import (
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// edgeSet collects edges by universal identity and keeps the first local
// edge seen for each
type edgeSet struct {
	seen  map[mesh.Edge]bool
	local []mesh.Edge
}

func newEdgeSet() *edgeSet {
	return &edgeSet{seen: make(map[mesh.Edge]bool)}
}

func (s *edgeSet) add(l mesh.EdgeLookup) bool {
	key := l.Key()
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.local = append(s.local, l.Local)
	return true
}

func (s *edgeSet) has(l mesh.EdgeLookup) bool {
	return s.seen[l.Key()]
}

// lookups converts local edges to their distinct universal keys, in order
func lookups(o *mesh.Object, edges []mesh.Edge) []mesh.Edge {
	seen := make(map[mesh.Edge]bool, len(edges))
	var out []mesh.Edge
	for _, e := range edges {
		key := o.UniversalEdge(e).Normalized()
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// wingsByKey maps each universal edge to the first wing carrying it
func wingsByKey(o *mesh.Object) map[mesh.Edge]*mesh.WingedEdge {
	out := make(map[mesh.Edge]*mesh.WingedEdge)
	for _, w := range o.WingedEdges() {
		if _, ok := out[w.Edge.Key()]; !ok {
			out[w.Edge.Key()] = w
		}
	}
	return out
}

// EdgeLoop extends each edge through every 4-valent vertex until the loop
// closes or reaches a vertex where the continuation is ambiguous. The input
// edges are part of the result.
func EdgeLoop(o *mesh.Object, edges []mesh.Edge) []mesh.Edge {
	sources := make(map[mesh.Edge]bool)
	for _, key := range lookups(o, edges) {
		sources[key] = true
	}

	used := newEdgeSet()
	for _, w := range o.WingedEdges() {
		if used.has(w.Edge) || !sources[w.Edge.Key()] {
			continue
		}
		if !walkLoop(w, w.Edge.Common.B, used) {
			walkLoop(w, w.Edge.Common.A, used)
		}
	}
	return used.local
}

// EdgeLoopIterative adds the next loop edge at both ends of each edge
func EdgeLoopIterative(o *mesh.Object, edges []mesh.Edge) []mesh.Edge {
	sources := make(map[mesh.Edge]bool)
	for _, key := range lookups(o, edges) {
		sources[key] = true
	}

	used := newEdgeSet()
	for _, w := range o.WingedEdges() {
		if !sources[w.Edge.Key()] {
			continue
		}
		used.add(w.Edge)
		for _, pivot := range []int{w.Edge.Common.A, w.Edge.Common.B} {
			if spokes := w.DistinctSpokes(pivot); len(spokes) == 4 {
				used.add(spokes[2].Edge)
			}
		}
	}
	return used.local
}

// walkLoop follows the loop away from pivot and reports whether it returned
// to an edge already collected
func walkLoop(start *mesh.WingedEdge, pivot int, used *edgeSet) bool {
	cur := start
	for {
		used.add(cur.Edge)

		spokes := cur.DistinctSpokes(pivot)
		if len(spokes) != 4 {
			return false
		}
		cur = spokes[2]
		pivot = cur.Edge.Common.Other(pivot)

		if used.has(cur.Edge) {
			return true
		}
	}
}

// EdgeRing extends each edge across the faces on both of its sides by
// stepping to the opposite edge of every even sided face
func EdgeRing(o *mesh.Object, edges []mesh.Edge) []mesh.Edge {
	wings := wingsByKey(o)
	used := newEdgeSet()

	for _, key := range lookups(o, edges) {
		w, ok := wings[key]
		if !ok || used.has(w.Edge) {
			continue
		}
		for cur := w; cur != nil; cur = crossRing(cur) {
			if !used.add(cur.Edge) {
				break
			}
		}
		for cur := crossRing(w.Opposite); cur != nil; cur = crossRing(cur) {
			if !used.add(cur.Edge) {
				break
			}
		}
	}
	return used.local
}

// EdgeRingIterative adds the next ring edge on both sides of each edge
func EdgeRingIterative(o *mesh.Object, edges []mesh.Edge) []mesh.Edge {
	wings := wingsByKey(o)
	used := newEdgeSet()

	for _, key := range lookups(o, edges) {
		w, ok := wings[key]
		if !ok {
			continue
		}
		used.add(w.Edge)
		if next := ringNext(w); next != nil {
			used.add(next.Edge)
		}
		if prev := ringNext(w.Opposite); prev != nil {
			used.add(prev.Edge)
		}
	}
	return used.local
}

// ringNext returns the edge across the face from w, nil for odd sided faces
func ringNext(w *mesh.WingedEdge) *mesh.WingedEdge {
	if w == nil {
		return nil
	}

	next, prev := w.Next, w.Previous
	steps := 0
	for next != prev && next != w {
		next = next.Next
		if next == prev {
			return nil
		}
		prev = prev.Previous
		steps++
	}

	if steps%2 == 0 || next == w {
		return nil
	}
	return next
}

// crossRing steps across w's face and into the neighbouring face
func crossRing(w *mesh.WingedEdge) *mesh.WingedEdge {
	next := ringNext(w)
	if next != nil && next.Opposite != nil {
		return next.Opposite
	}
	return next
}

// FaceLoop walks from each face across opposite edges of consecutive quads in
// both directions. With ring set the walk starts on the face's second edge,
// giving the perpendicular strip.
func FaceLoop(o *mesh.Object, faces []*mesh.Face, ring bool) []*mesh.Face {
	seen := make(map[*mesh.Face]bool)
	var out []*mesh.Face

	for _, f := range faces {
		start := o.FirstWing(f)
		if start == nil {
			continue
		}
		if ring {
			start = start.Next
		}

		loop := make(map[*mesh.Face]bool)
		for _, cur := range []*mesh.WingedEdge{start, start.Opposite} {
			for cur != nil {
				if loop[cur.Face] {
					break
				}
				loop[cur.Face] = true
				if !seen[cur.Face] {
					seen[cur.Face] = true
					out = append(out, cur.Face)
				}
				if cur.Count() != 4 {
					break
				}
				cur = cur.Next.Next.Opposite
			}
		}
	}
	return out
}
