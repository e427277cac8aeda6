package mesh

import "slices"

// Face is a polygon made of triangles. Its indices address vertex slots that
// belong to this face only; coincident corners of neighbouring faces are
// linked through shared groups instead.
type Face struct {
	indices []int

	// Material is the material id
	Material int
	// SmoothingGroup is the smoothing group id, 0 for none
	SmoothingGroup int
	// TextureGroup keeps faces together for auto UV projection, 0 for none
	TextureGroup int
	// UV is the per-face UV transform, passed through untouched
	UV any

	distinct []int
	edges    []Edge
}

// NewFace creates a face from triangle index triples
func NewFace(indices ...int) *Face {
	f := &Face{indices: slices.Clone(indices)}
	f.rebuild()
	return f
}

// Indices returns the triangle index triples
func (f *Face) Indices() []int {
	return f.indices
}

// DistinctIndices returns each slot referenced by the face once, in first use order
func (f *Face) DistinctIndices() []int {
	return f.distinct
}

// Edges returns the perimeter edges sorted by adjacency, following the winding
func (f *Face) Edges() []Edge {
	return f.edges
}

// TriangleCount returns the number of triangles
func (f *Face) TriangleCount() int {
	return len(f.indices) / 3
}

// IsQuad reports whether the face has four perimeter edges
func (f *Face) IsQuad() bool {
	return len(f.edges) == 4
}

// Contains reports whether the face references slot i
func (f *Face) Contains(i int) bool {
	return slices.Contains(f.distinct, i)
}

// ContainsEdge reports whether e is one of the face's perimeter edges
func (f *Face) ContainsEdge(e Edge) bool {
	for _, fe := range f.edges {
		if fe.Equals(e) {
			return true
		}
	}
	return false
}

func (f *Face) rebuild() {
	f.distinct = f.distinct[:0]
	seen := make(map[int]bool, len(f.indices))
	for _, i := range f.indices {
		if !seen[i] {
			seen[i] = true
			f.distinct = append(f.distinct, i)
		}
	}
	f.edges = perimeterEdges(f.indices)
}

// perimeterEdges returns the triangle edges used by exactly one triangle,
// keeping their winding, chained head to tail
func perimeterEdges(indices []int) []Edge {
	count := make(map[Edge]int)
	var all []Edge
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		for _, e := range []Edge{{a, b}, {b, c}, {c, a}} {
			if count[e.Normalized()] == 0 {
				all = append(all, e)
			}
			count[e.Normalized()]++
		}
	}

	edges := make([]Edge, 0, len(all))
	for _, e := range all {
		if count[e.Normalized()] == 1 {
			edges = append(edges, e)
		}
	}
	sortByAdjacency(edges)
	return edges
}

// sortByAdjacency orders edges so each one starts where the previous ended
func sortByAdjacency(edges []Edge) {
	for i := 1; i < len(edges); i++ {
		want := edges[i-1].B
		for n := i; n < len(edges); n++ {
			if edges[n].A == want {
				edges[i], edges[n] = edges[n], edges[i]
				break
			}
		}
	}
}
