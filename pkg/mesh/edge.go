package mesh

import "fmt"

// Edge is a pair of vertex indices. Depending on context the indices are
// local slots of one face or shared group ids (a universal edge).
type Edge struct {
	A, B int
}

// NewEdge creates a new edge
func NewEdge(a, b int) Edge {
	return Edge{A: a, B: b}
}

// Normalized returns the edge with A <= B, used as an unordered key
func (e Edge) Normalized() Edge {
	if e.A > e.B {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

// Equals compares two edges ignoring orientation
func (e Edge) Equals(other Edge) bool {
	return e.Normalized() == other.Normalized()
}

// Contains reports whether the edge has i as an endpoint
func (e Edge) Contains(i int) bool {
	return e.A == i || e.B == i
}

// Other returns the endpoint opposite to i
func (e Edge) Other(i int) int {
	if e.A == i {
		return e.B
	}
	return e.A
}

func (e Edge) String() string {
	return fmt.Sprintf("[%d, %d]", e.A, e.B)
}

// EdgeLookup pairs a face-local edge with its universal counterpart
type EdgeLookup struct {
	Local  Edge
	Common Edge
}

// Key returns the orientation independent identity of the universal edge
func (l EdgeLookup) Key() Edge {
	return l.Common.Normalized()
}
