package spatial

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// VertexRef is a shared vertex in world space
type VertexRef struct {
	Object   *mesh.Object
	Index    int // First slot of the shared group
	Position geometry.Vector3
}

// vertexPoint is a kd-tree entry
type vertexPoint struct {
	ref VertexRef
}

func (p vertexPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertexPoint)
	return p.ref.Position.Component(int(d)) - q.ref.Position.Component(int(d))
}

func (p vertexPoint) Dims() int { return 3 }

// Distance returns the squared euclidean distance
func (p vertexPoint) Distance(c kdtree.Comparable) float64 {
	return p.ref.Position.SqrDistance(c.(vertexPoint).ref.Position)
}

type vertexPoints []vertexPoint

func (p vertexPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p vertexPoints) Len() int                      { return len(p) }
func (p vertexPoints) Pivot(d kdtree.Dim) int {
	return vertexPlane{points: p, dim: d}.pivot()
}
func (p vertexPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// vertexPlane sorts points along one dimension for partitioning
type vertexPlane struct {
	points vertexPoints
	dim    kdtree.Dim
}

func (p vertexPlane) Len() int { return len(p.points) }
func (p vertexPlane) Less(i, j int) bool {
	return p.points[i].ref.Position.Component(int(p.dim)) < p.points[j].ref.Position.Component(int(p.dim))
}
func (p vertexPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p vertexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p vertexPlane) pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// VertexIndex answers nearest shared vertex queries in world space
type VertexIndex struct {
	tree *kdtree.Tree
	size int
}

// NewVertexIndex indexes one entry per shared group of the objects. Groups
// for which skip returns true are left out.
func NewVertexIndex(objects []*mesh.Object, skip func(o *mesh.Object, group int) bool) *VertexIndex {
	var points vertexPoints
	for _, o := range objects {
		for g := 0; g < o.GroupCount(); g++ {
			if skip != nil && skip(o, g) {
				continue
			}
			slot := o.MembersOf(g)[0]
			points = append(points, vertexPoint{ref: VertexRef{
				Object:   o,
				Index:    slot,
				Position: o.WorldPosition(slot),
			}})
		}
	}
	if len(points) == 0 {
		return &VertexIndex{}
	}
	return &VertexIndex{tree: kdtree.New(points, false), size: len(points)}
}

// Len returns the number of indexed vertices
func (x *VertexIndex) Len() int {
	return x.size
}

// Nearest returns the closest vertex within radius of p
func (x *VertexIndex) Nearest(p geometry.Vector3, radius float64) (VertexRef, bool) {
	if x.tree == nil {
		return VertexRef{}, false
	}
	c, dist := x.tree.Nearest(vertexPoint{ref: VertexRef{Position: p}})
	if c == nil || dist > radius*radius {
		return VertexRef{}, false
	}
	return c.(vertexPoint).ref, true
}

// Within returns every vertex within radius of p, nearest first
func (x *VertexIndex) Within(p geometry.Vector3, radius float64) []VertexRef {
	if x.tree == nil {
		return nil
	}
	keeper := kdtree.NewDistKeeper(radius * radius)
	x.tree.NearestSet(keeper, vertexPoint{ref: VertexRef{Position: p}})

	var out []VertexRef
	for _, cd := range keeper.Heap {
		if cd.Comparable == nil {
			continue
		}
		out = append(out, cd.Comparable.(vertexPoint).ref)
	}
	sortByDistance(out, p)
	return out
}

func sortByDistance(refs []VertexRef, p geometry.Vector3) {
	slices.SortStableFunc(refs, func(a, b VertexRef) int {
		return cmp.Compare(a.Position.SqrDistance(p), b.Position.SqrDistance(p))
	})
}
