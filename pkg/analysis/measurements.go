// Package analysis computes statistics of mesh objects and their selections.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/selection"
)

// EdgeInfo contains information about a universal edge of an object
type EdgeInfo struct {
	Edge   mesh.Edge
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Faces  int // Faces using the edge, 1 on a boundary
	Seam   bool
}

// MeasurementResult contains various measurements of an object in world space
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	FaceCount     int
	QuadCount     int
	TriangleCount int
	VertexCount   int // Shared groups
	SlotCount     int
	EdgeCount     int // Universal edges
	BoundaryEdges int
	SeamEdges     int // Edges where neighbouring faces split the UVs
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// AnalyzeObject measures o in world space
func AnalyzeObject(o *mesh.Object) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: o.WorldBounds(),
		FaceCount:   len(o.Faces()),
		VertexCount: o.GroupCount(),
		SlotCount:   o.VertexCount(),
		AllEdges:    make([]EdgeInfo, 0),
	}
	result.Dimensions = result.BoundingBox.Size()

	for _, f := range o.Faces() {
		result.TriangleCount += f.TriangleCount()
		if f.IsQuad() {
			result.QuadCount++
		}
	}
	for _, t := range o.Triangles() {
		w := geometry.Triangle{
			V1: o.Transform.TransformPoint(t.V1),
			V2: o.Transform.TransformPoint(t.V2),
			V3: o.Transform.TransformPoint(t.V3),
		}
		result.SurfaceArea += w.Area()
	}

	uses := make(map[mesh.Edge]int)
	for _, w := range o.WingedEdges() {
		uses[w.Edge.Key()]++
	}

	seams := make(map[mesh.Edge]bool)
	for _, e := range o.SeamEdges() {
		seams[e] = true
	}
	result.SeamEdges = len(seams)

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, key := range o.UniversalEdges() {
		start := o.WorldPosition(o.MembersOf(key.A)[0])
		end := o.WorldPosition(o.MembersOf(key.B)[0])
		length := start.Distance(end)
		result.AllEdges = append(result.AllEdges, EdgeInfo{
			Edge:   key,
			Start:  start,
			End:    end,
			Length: length,
			Faces:  uses[key],
			Seam:   seams[key],
		})
		if uses[key] == 1 {
			result.BoundaryEdges++
		}

		totalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// SelectionBounds returns the world bounds of the selected vertices of every
// set, empty when nothing is selected
func SelectionBounds(sets []*selection.Set) geometry.BoundingBox {
	bounds := geometry.NewBoundingBox()
	for _, set := range sets {
		o := set.Object()
		for _, i := range lo.Uniq(set.Vertices()) {
			bounds.Extend(o.WorldPosition(i))
		}
	}
	return bounds
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	return lo.Filter(result.AllEdges, func(edge EdgeInfo, _ int) bool {
		return edge.Length >= minLength && edge.Length <= maxLength
	})
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FitSelectionCircle fits a circle through the selected vertices in world
// space, one point per shared group
func FitSelectionCircle(sets []*selection.Set) (*geometry.CircleFit, error) {
	var points []geometry.Vector3
	for _, set := range sets {
		o := set.Object()
		for _, g := range set.SelectedGroups() {
			points = append(points, o.WorldPosition(o.MembersOf(g)[0]))
		}
	}
	return geometry.FitCircle(points)
}
