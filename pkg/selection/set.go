// Package selection keeps the per-object element selection and the mode
// machine that edits it.
package selection

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/philipparndt/meshedit/pkg/mesh"
)

// Mode is the element type being edited
type Mode int

const (
	// Vertex selects shared vertices
	Vertex Mode = iota
	// Edge selects edges
	Edge
	// Face selects faces
	Face
)

func (m Mode) String() string {
	switch m {
	case Vertex:
		return "vertex"
	case Edge:
		return "edge"
	case Face:
		return "face"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "vertex", "vertices", "v":
		return Vertex, nil
	case "edge", "edges", "e":
		return Edge, nil
	case "face", "faces", "f":
		return Face, nil
	}
	return Vertex, fmt.Errorf("unknown selection mode: %s", s)
}

// Set is the element selection of one object
type Set struct {
	object   *mesh.Object
	vertices []int
	edges    []mesh.Edge
	faces    []*mesh.Face

	dirty     bool
	groups    []int
	universal []mesh.Edge
}

// NewSet creates an empty selection for o
func NewSet(o *mesh.Object) *Set {
	return &Set{object: o, dirty: true}
}

// Object returns the object the selection belongs to
func (s *Set) Object() *mesh.Object {
	return s.object
}

// Vertices returns the selected slots
func (s *Set) Vertices() []int {
	return s.vertices
}

// Edges returns the selected local edges
func (s *Set) Edges() []mesh.Edge {
	return s.edges
}

// Faces returns the selected faces
func (s *Set) Faces() []*mesh.Face {
	return s.faces
}

// SetVertices selects slots and clears edges and faces
func (s *Set) SetVertices(indices []int) {
	s.vertices = lo.Uniq(indices)
	s.edges = nil
	s.faces = nil
	s.Invalidate()
}

// SetEdges selects edges, one per universal edge, clears faces and selects
// the edge endpoints
func (s *Set) SetEdges(edges []mesh.Edge) {
	s.edges = lo.UniqBy(edges, func(e mesh.Edge) mesh.Edge {
		return s.object.UniversalEdge(e).Normalized()
	})
	s.faces = nil
	s.vertices = lo.Uniq(lo.FlatMap(s.edges, func(e mesh.Edge, _ int) []int {
		return []int{e.A, e.B}
	}))
	s.Invalidate()
}

// SetFaces selects faces together with their perimeter edges and vertices
func (s *Set) SetFaces(faces []*mesh.Face) {
	s.faces = lo.Uniq(lo.Filter(faces, func(f *mesh.Face, _ int) bool {
		return s.object.HasFace(f)
	}))
	s.edges = lo.UniqBy(lo.FlatMap(s.faces, func(f *mesh.Face, _ int) []mesh.Edge {
		return f.Edges()
	}), func(e mesh.Edge) mesh.Edge {
		return s.object.UniversalEdge(e).Normalized()
	})
	s.vertices = lo.Uniq(lo.FlatMap(s.faces, func(f *mesh.Face, _ int) []int {
		return f.DistinctIndices()
	}))
	s.Invalidate()
}

// Clear deselects everything
func (s *Set) Clear() {
	s.vertices = nil
	s.edges = nil
	s.faces = nil
	s.Invalidate()
}

// Invalidate marks the derived views stale. Call after topology edits.
func (s *Set) Invalidate() {
	s.dirty = true
}

// HasVertex reports whether any slot of i's shared group is selected
func (s *Set) HasVertex(i int) bool {
	return lo.Contains(s.SelectedGroups(), s.object.GroupOf(i))
}

// HasEdge reports whether e's universal edge is selected
func (s *Set) HasEdge(e mesh.Edge) bool {
	return lo.Contains(s.SelectedUniversalEdges(), s.object.UniversalEdge(e).Normalized())
}

// HasFace reports whether f is selected
func (s *Set) HasFace(f *mesh.Face) bool {
	return lo.Contains(s.faces, f)
}

// ToggleVertex adds or removes slot i by shared group and reports whether it
// is selected afterwards
func (s *Set) ToggleVertex(i int) bool {
	if s.HasVertex(i) {
		g := s.object.GroupOf(i)
		s.SetVertices(lo.Reject(s.vertices, func(v int, _ int) bool {
			return s.object.GroupOf(v) == g
		}))
		return false
	}
	s.SetVertices(append(s.vertices, i))
	return true
}

// ToggleEdge adds or removes e by universal edge
func (s *Set) ToggleEdge(e mesh.Edge) bool {
	if s.HasEdge(e) {
		u := s.object.UniversalEdge(e).Normalized()
		s.SetEdges(lo.Reject(s.edges, func(x mesh.Edge, _ int) bool {
			return s.object.UniversalEdge(x).Normalized() == u
		}))
		return false
	}
	s.SetEdges(append(s.edges, e))
	return true
}

// ToggleFace adds or removes f
func (s *Set) ToggleFace(f *mesh.Face) bool {
	if s.HasFace(f) {
		s.SetFaces(lo.Without(s.faces, f))
		return false
	}
	s.SetFaces(append(s.faces, f))
	return true
}

// SelectedGroups returns the distinct shared groups of the selected slots
func (s *Set) SelectedGroups() []int {
	s.refresh()
	return s.groups
}

// SelectedUniversalEdges returns the distinct universal edges of the selection
func (s *Set) SelectedUniversalEdges() []mesh.Edge {
	s.refresh()
	return s.universal
}

// Count returns the number of selected elements of a mode. Vertices are
// counted by shared group.
func (s *Set) Count(m Mode) int {
	switch m {
	case Vertex:
		return len(s.SelectedGroups())
	case Edge:
		return len(s.SelectedUniversalEdges())
	case Face:
		return len(s.faces)
	}
	return 0
}

// IsEmpty reports whether nothing of mode m is selected
func (s *Set) IsEmpty(m Mode) bool {
	switch m {
	case Vertex:
		return len(s.vertices) == 0
	case Edge:
		return len(s.edges) == 0
	default:
		return len(s.faces) == 0
	}
}

func (s *Set) refresh() {
	if !s.dirty {
		return
	}
	// drop faces removed by topology edits
	s.faces = lo.Filter(s.faces, func(f *mesh.Face, _ int) bool {
		return s.object.HasFace(f)
	})
	s.groups = lo.Uniq(lo.Map(s.vertices, func(i int, _ int) int {
		return s.object.GroupOf(i)
	}))
	s.universal = lo.Uniq(lo.Map(s.edges, func(e mesh.Edge, _ int) mesh.Edge {
		return s.object.UniversalEdge(e).Normalized()
	}))
	s.dirty = false
}
