package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh/meshtest"
	"github.com/philipparndt/meshedit/pkg/selection"
)

func TestAnalyzeCube(t *testing.T) {
	cube := meshtest.Cube()
	cube.Transform.Scale = geometry.NewVector3(2, 2, 2)

	result := AnalyzeObject(cube)

	if result.FaceCount != 6 || result.QuadCount != 6 || result.TriangleCount != 12 {
		t.Errorf("Face counts failed: got %d faces, %d quads, %d triangles",
			result.FaceCount, result.QuadCount, result.TriangleCount)
	}
	if result.VertexCount != 8 || result.SlotCount != 24 {
		t.Errorf("Vertex counts failed: expected 8 and 24, got %d and %d", result.VertexCount, result.SlotCount)
	}
	if result.SeamEdges != 0 {
		t.Errorf("SeamEdges failed: expected 0, got %d", result.SeamEdges)
	}
	if result.EdgeCount != 12 || result.BoundaryEdges != 0 {
		t.Errorf("Edge counts failed: expected 12 and 0, got %d and %d", result.EdgeCount, result.BoundaryEdges)
	}
	if math.Abs(result.SurfaceArea-24) > 1e-10 {
		t.Errorf("SurfaceArea failed: expected 24, got %f", result.SurfaceArea)
	}
	if math.Abs(result.MinEdgeLength-2) > 1e-10 || math.Abs(result.MaxEdgeLength-2) > 1e-10 {
		t.Errorf("Edge lengths failed: expected 2, got %f..%f", result.MinEdgeLength, result.MaxEdgeLength)
	}
	if !result.Dimensions.ApproxEqual(geometry.NewVector3(2, 2, 2), 1e-10) {
		t.Errorf("Dimensions failed: expected (2, 2, 2), got %v", result.Dimensions)
	}
}

func TestAnalyzeGridBoundary(t *testing.T) {
	result := AnalyzeObject(meshtest.Grid(2, 2))

	if result.EdgeCount != 12 {
		t.Errorf("EdgeCount failed: expected 12, got %d", result.EdgeCount)
	}
	if result.BoundaryEdges != 8 {
		t.Errorf("BoundaryEdges failed: expected 8, got %d", result.BoundaryEdges)
	}
	if got := len(FindEdgesByLength(result, 0.5, 1.5)); got != 12 {
		t.Errorf("FindEdgesByLength failed: expected 12, got %d", got)
	}
	if got := len(FindLongestEdges(result, 20)); got != 12 {
		t.Errorf("FindLongestEdges failed: expected 12, got %d", got)
	}
}

func TestSelectionBounds(t *testing.T) {
	grid := meshtest.Grid(2, 2)
	set := selection.NewSet(grid)
	set.SetFaces(grid.Faces()[:1])

	bounds := SelectionBounds([]*selection.Set{set})

	if !bounds.Min.ApproxEqual(geometry.Vector3{}, 1e-10) || !bounds.Max.ApproxEqual(geometry.NewVector3(1, 0, 1), 1e-10) {
		t.Errorf("SelectionBounds failed: got %v..%v", bounds.Min, bounds.Max)
	}
	if !SelectionBounds(nil).IsEmpty() {
		t.Error("SelectionBounds of nothing should be empty")
	}
}

func TestFitSelectionCircle(t *testing.T) {
	cube := meshtest.Cube()
	set := selection.NewSet(cube)
	set.SetFaces(cube.Faces()[2:3])

	fit, err := FitSelectionCircle([]*selection.Set{set})
	if err != nil {
		t.Fatalf("FitSelectionCircle failed: %v", err)
	}
	if !fit.Center.ApproxEqual(geometry.NewVector3(0, 0.5, 0), 1e-9) {
		t.Errorf("FitSelectionCircle center failed: got %v", fit.Center)
	}
	if math.Abs(fit.Radius-math.Sqrt2/2) > 1e-9 {
		t.Errorf("FitSelectionCircle radius failed: got %f", fit.Radius)
	}
}

func TestAnalyzeSeams(t *testing.T) {
	grid := meshtest.Grid(2, 1)
	split := [][]int{}
	for i := 0; i < grid.VertexCount(); i++ {
		split = append(split, []int{i})
	}
	if err := grid.SetSharedUVGroups(split); err != nil {
		t.Fatalf("SetSharedUVGroups failed: %v", err)
	}

	result := AnalyzeObject(grid)

	if result.SeamEdges != 1 {
		t.Errorf("SeamEdges failed: expected 1, got %d", result.SeamEdges)
	}
	seams := 0
	for _, e := range result.AllEdges {
		if e.Seam {
			seams++
			if e.Faces != 2 {
				t.Errorf("Seam edge %v failed: expected 2 faces, got %d", e.Edge, e.Faces)
			}
		}
	}
	if seams != 1 {
		t.Errorf("EdgeInfo.Seam failed: expected 1, got %d", seams)
	}
}
