package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshedit/pkg/action"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/mesh/meshtest"
	"github.com/philipparndt/meshedit/pkg/selection"
)

func newState(mode selection.Mode, objects ...*mesh.Object) *selection.State {
	state := selection.NewState()
	state.SetObjects(objects)
	state.SetMode(mode)
	return state
}

func begin(t *testing.T, state *selection.State, tool Tool, opts Options) *Gesture {
	g, res := Begin(state, tool, opts)
	require.True(t, res.Ok(), res.String())
	require.True(t, g.Active())
	return g
}

func assertSharedConsistent(t *testing.T, o *mesh.Object) {
	for _, members := range o.SharedGroups() {
		for _, i := range members[1:] {
			assert.Equal(t, o.Position(members[0]), o.Position(i), "slot %d left its group", i)
		}
	}
}

type uvRecorder struct {
	faces map[*mesh.Object][]*mesh.Face
}

func (r *uvRecorder) RefreshUVs(o *mesh.Object, faces []*mesh.Face) {
	r.faces[o] = faces
}

func TestMoveOneCubeVertex(t *testing.T) {
	cube := meshtest.Cube()
	before := cube.Positions()
	state := newState(selection.Vertex, cube)
	state.Set(cube).SetVertices([]int{0})

	g := begin(t, state, MoveTool, Options{})
	g.Move(geometry.NewVector3(1, 0, 0), MoveOptions{})
	objects := g.Finish()

	assert.Equal(t, []*mesh.Object{cube}, objects)
	assert.False(t, g.Active())
	moved := 0
	for i, p := range cube.Positions() {
		if cube.GroupOf(i) == cube.GroupOf(0) {
			moved++
			assert.Equal(t, before[i].Add(geometry.NewVector3(1, 0, 0)), p)
		} else {
			assert.Equal(t, before[i], p, "slot %d", i)
		}
	}
	assert.Equal(t, 3, moved)
	assertSharedConsistent(t, cube)
}

func TestMoveIsRelativeToBegin(t *testing.T) {
	cube := meshtest.Cube()
	start := cube.Position(0)
	state := newState(selection.Vertex, cube)
	state.Set(cube).SetVertices([]int{0})

	g := begin(t, state, MoveTool, Options{})
	g.Move(geometry.NewVector3(1, 0, 0), MoveOptions{})
	g.Move(geometry.NewVector3(2, 0, 0), MoveOptions{})
	g.Finish()

	assert.Equal(t, start.Add(geometry.NewVector3(2, 0, 0)), cube.Position(0))
	assert.Equal(t, start.Add(geometry.NewVector3(2, 0, 0)), g.HandlePosition())

	g.Move(geometry.NewVector3(5, 0, 0), MoveOptions{})
	assert.Equal(t, start.Add(geometry.NewVector3(2, 0, 0)), cube.Position(0), "finished gestures ignore steps")
}

func TestBeginWithoutSelection(t *testing.T) {
	state := newState(selection.Vertex, meshtest.Cube())

	g, res := Begin(state, MoveTool, Options{})

	assert.Nil(t, g)
	assert.Equal(t, action.NoSelection, res.Status)
	assert.False(t, g.Active())
}

func TestMoveInWorldSpace(t *testing.T) {
	quad := meshtest.Quad()
	quad.Transform = geometry.Transform{
		Position: geometry.NewVector3(10, 0, 0),
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}),
		Scale:    geometry.NewVector3(2, 2, 2),
	}
	state := newState(selection.Vertex, quad)
	state.Set(quad).SetVertices([]int{2})
	world := quad.WorldPosition(2)

	g := begin(t, state, MoveTool, Options{})
	g.Move(geometry.NewVector3(0, 0, 1), MoveOptions{})
	g.Finish()

	assert.True(t, quad.WorldPosition(2).ApproxEqual(world.Add(geometry.NewVector3(0, 0, 1)), 1e-9))
}

func TestMoveConstrainedToAxis(t *testing.T) {
	t.Run("world", func(t *testing.T) {
		cube := meshtest.Cube()
		start := cube.Position(0)
		state := newState(selection.Vertex, cube)
		state.Set(cube).SetVertices([]int{0})

		g := begin(t, state, MoveTool, Options{})
		g.Move(geometry.NewVector3(1, 2, 3), MoveOptions{Axes: AxisX | AxisZ})
		g.Finish()

		assert.Equal(t, start.Add(geometry.NewVector3(1, 0, 3)), cube.Position(0))
	})

	t.Run("plane normal", func(t *testing.T) {
		cube := meshtest.Cube()
		state := newState(selection.Face, cube)
		top := cube.Faces()[2]
		state.Set(cube).SetFaces([]*mesh.Face{top})

		g := begin(t, state, MoveTool, Options{Alignment: Plane})
		require.Equal(t, Plane, g.Alignment())
		g.Move(geometry.NewVector3(0.3, 1, -0.2), MoveOptions{Axes: AxisZ})
		g.Finish()

		for _, i := range top.DistinctIndices() {
			p := cube.Position(i)
			assert.InDelta(t, 1.5, p.Y, 1e-9)
			assert.InDelta(t, 0.5, math.Abs(p.X), 1e-9)
			assert.InDelta(t, 0.5, math.Abs(p.Z), 1e-9)
		}
	})
}

func TestMoveSnapsToGrid(t *testing.T) {
	cube := meshtest.Cube()
	start := cube.Position(0)
	state := newState(selection.Vertex, cube)
	state.Set(cube).SetVertices([]int{0})

	g := begin(t, state, MoveTool, Options{GridSize: 0.25})
	g.Move(geometry.NewVector3(0.3, 0.1, -0.6), MoveOptions{})
	g.Finish()

	assert.True(t, cube.Position(0).ApproxEqual(start.Add(geometry.NewVector3(0.25, 0, -0.5)), 1e-12))
}

func TestMoveSnapsToVertex(t *testing.T) {
	cube := meshtest.Cube()
	corner := meshtest.FindSlot(cube, geometry.NewVector3(0.5, 0.5, 0.5))
	state := newState(selection.Vertex, cube)
	state.Set(cube).SetVertices([]int{corner})

	g := begin(t, state, MoveTool, Options{SnapRadius: 0.1, GridSize: 0.25})
	g.Move(geometry.NewVector3(-0.95, 0.02, 0), MoveOptions{SnapToVertex: true})
	assert.Equal(t, geometry.NewVector3(-0.5, 0.5, 0.5), cube.Position(corner))

	g.Move(geometry.NewVector3(-0.5, 0.02, 0), MoveOptions{SnapToVertex: true})
	assert.True(t, cube.Position(corner).ApproxEqual(geometry.NewVector3(0, 0.5, 0.5), 1e-12), "no vertex in reach falls back to the grid")
	g.Finish()
}

func TestMoveSnapsToFace(t *testing.T) {
	floor := meshtest.Quad()
	tri := meshtest.Triangle()
	tri.Transform.Position = geometry.NewVector3(0.3, 2, 0.2)
	state := newState(selection.Vertex, floor, tri)
	state.Set(tri).SetVertices([]int{0})

	g := begin(t, state, MoveTool, Options{})
	g.Move(geometry.NewVector3(0, -0.1, 0), MoveOptions{SnapToFace: true})
	assert.True(t, tri.WorldPosition(0).ApproxEqual(geometry.NewVector3(0.3, 0, 0.2), 1e-9))

	g.Move(geometry.NewVector3(0, 0.5, 0), MoveOptions{SnapToFace: true})
	assert.True(t, tri.WorldPosition(0).ApproxEqual(geometry.NewVector3(0.3, 2.5, 0.2), 1e-9), "a miss keeps the raw delta")
	g.Finish()
}

func TestRotate(t *testing.T) {
	cube := meshtest.Cube()
	state := newState(selection.Face, cube)
	state.Set(cube).SetFaces(cube.Faces())
	corner := meshtest.FindSlot(cube, geometry.NewVector3(0.5, 0.5, 0.5))

	g := begin(t, state, RotateTool, Options{})
	assert.Equal(t, geometry.Vector3{}, g.Pivot())

	g.Rotate(mgl64.QuatIdent())
	assert.True(t, cube.Position(corner).ApproxEqual(geometry.NewVector3(0.5, 0.5, 0.5), 1e-12))

	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	g.Rotate(q)
	g.Finish()

	assert.True(t, cube.Position(corner).ApproxEqual(geometry.NewVector3(0.5, 0.5, -0.5), 1e-9))
	assert.True(t, g.HandleRotation().ApproxEqual(q))
	assertSharedConsistent(t, cube)
}

func TestRotateAroundSelectionCenter(t *testing.T) {
	cube := meshtest.Cube()
	state := newState(selection.Face, cube)
	right := cube.Faces()[0]
	state.Set(cube).SetFaces([]*mesh.Face{right})

	g := begin(t, state, RotateTool, Options{})
	require.True(t, g.Pivot().ApproxEqual(geometry.NewVector3(0.5, 0, 0), 1e-12))
	g.Rotate(mgl64.QuatRotate(math.Pi, mgl64.Vec3{1, 0, 0}))
	g.Finish()

	// a half turn around the face center maps the face onto itself
	for _, i := range right.DistinctIndices() {
		p := cube.Position(i)
		assert.InDelta(t, 0.5, p.X, 1e-9)
		assert.InDelta(t, 0.5, math.Abs(p.Y), 1e-9)
		assert.InDelta(t, 0.5, math.Abs(p.Z), 1e-9)
	}
}

func TestScale(t *testing.T) {
	t.Run("world", func(t *testing.T) {
		cube := meshtest.Cube()
		state := newState(selection.Face, cube)
		right := cube.Faces()[0]
		state.Set(cube).SetFaces([]*mesh.Face{right})

		g := begin(t, state, ScaleTool, Options{})
		g.Scale(geometry.NewVector3(2, 2, 2))
		g.Finish()

		for _, i := range right.DistinctIndices() {
			p := cube.Position(i)
			assert.InDelta(t, 0.5, p.X, 1e-9)
			assert.InDelta(t, 1.0, math.Abs(p.Y), 1e-9)
			assert.InDelta(t, 1.0, math.Abs(p.Z), 1e-9)
		}
		assertSharedConsistent(t, cube)
	})

	t.Run("plane keeps the normal axis", func(t *testing.T) {
		cube := meshtest.Cube()
		state := newState(selection.Face, cube)
		top := cube.Faces()[2]
		state.Set(cube).SetFaces([]*mesh.Face{top})
		pivot := geometry.NewVector3(0, 0.25, 0)

		g := begin(t, state, ScaleTool, Options{Alignment: Plane, Pivot: &pivot})
		assert.Equal(t, pivot, g.Pivot())
		g.Scale(geometry.NewVector3(3, 3, 3))
		g.Finish()

		for _, i := range top.DistinctIndices() {
			p := cube.Position(i)
			assert.InDelta(t, 0.5, p.Y, 1e-9)
			assert.InDelta(t, 1.5, math.Abs(p.X), 1e-9)
			assert.InDelta(t, 1.5, math.Abs(p.Z), 1e-9)
		}
	})
}

func TestPlaneAlignmentFallsBackToWorld(t *testing.T) {
	a, b := meshtest.Cube(), meshtest.Cube()
	state := newState(selection.Face, a, b)
	state.Set(a).SetFaces(a.Faces()[:1])
	state.Set(b).SetFaces(b.Faces()[:1])

	g := begin(t, state, RotateTool, Options{Alignment: Plane})
	assert.Equal(t, World, g.Alignment())
	assert.Len(t, g.Objects(), 2)

	vertices := newState(selection.Vertex, a)
	vertices.Set(a).SetVertices([]int{0})
	g = begin(t, vertices, RotateTool, Options{Alignment: Plane})
	assert.Equal(t, World, g.Alignment(), "plane alignment needs a face")
}

func TestShiftExtrudeFaces(t *testing.T) {
	cube := meshtest.Cube()
	state := newState(selection.Face, cube)
	top := cube.Faces()[2]
	state.Set(cube).SetFaces([]*mesh.Face{top})

	g := begin(t, state, MoveTool, Options{Extrude: true})
	assert.True(t, g.Extruded())
	g.Move(geometry.NewVector3(0, 1, 0), MoveOptions{})
	g.Move(geometry.NewVector3(0, 1, 0), MoveOptions{})
	g.Finish()

	assert.Len(t, cube.Faces(), 10, "extruded once per gesture")
	for _, i := range top.DistinctIndices() {
		assert.InDelta(t, 1.5, cube.Position(i).Y, 1e-12)
	}
	for _, i := range cube.Faces()[0].DistinctIndices() {
		assert.LessOrEqual(t, cube.Position(i).Y, 0.5)
	}
	assertSharedConsistent(t, cube)
}

func TestShiftExtrudeEdges(t *testing.T) {
	quad := meshtest.Quad()
	state := newState(selection.Edge, quad)
	edge := meshtest.FindEdge(quad, geometry.NewVector3(1, 0, 0), geometry.NewVector3(1, 0, 1))
	state.Set(quad).SetEdges([]mesh.Edge{edge})

	g := begin(t, state, MoveTool, Options{Extrude: true, ExtrudeEdgesAsGroup: true})
	g.Move(geometry.NewVector3(1, 0, 0), MoveOptions{})
	g.Finish()

	assert.Len(t, quad.Faces(), 2)
	selected := state.Set(quad).Edges()
	require.Len(t, selected, 1)
	assert.Equal(t, 2.0, quad.Position(selected[0].A).X)
	assert.Equal(t, 2.0, quad.Position(selected[0].B).X)
	assert.Equal(t, 1.0, quad.Position(edge.A).X, "the original edge stays")
}

func TestTextureGroupsMoveTogether(t *testing.T) {
	grid := meshtest.Grid(3, 1)
	grid.Faces()[0].TextureGroup = 7
	grid.Faces()[2].TextureGroup = 7
	state := newState(selection.Face, grid)
	state.Set(grid).SetFaces(grid.Faces()[:1])

	g := begin(t, state, MoveTool, Options{})
	g.Move(geometry.NewVector3(0, 1, 0), MoveOptions{})
	g.Finish()

	assert.ElementsMatch(t, []*mesh.Face{grid.Faces()[0], grid.Faces()[2]}, state.Set(grid).Faces())
	assert.InDelta(t, 1.0, grid.FaceCenter(grid.Faces()[2]).Y, 1e-12)
}

func TestFinishRefreshesUVs(t *testing.T) {
	grid := meshtest.Grid(3, 1)
	state := newState(selection.Vertex, grid)
	state.Set(grid).SetVertices([]int{meshtest.FindSlot(grid, geometry.NewVector3(0, 0, 0))})
	uv := &uvRecorder{faces: make(map[*mesh.Object][]*mesh.Face)}

	g := begin(t, state, MoveTool, Options{UV: uv})
	g.Move(geometry.NewVector3(0, 1, 0), MoveOptions{})
	g.Finish()

	assert.Equal(t, []*mesh.Face{grid.Faces()[0]}, uv.faces[grid])
}

func TestParseAlignment(t *testing.T) {
	for _, a := range []HandleAlignment{World, Local, Plane} {
		parsed, err := ParseAlignment(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	_, err := ParseAlignment("screen")
	assert.Error(t, err)
}
