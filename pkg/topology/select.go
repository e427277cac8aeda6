package topology

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/philipparndt/meshedit/pkg/action"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/spatial"
)

// GrowOptions selects the face grow strategy
type GrowOptions struct {
	UseAngle  bool
	MaxAngle  float64 // Degrees
	Iterative bool    // One ring per call instead of flooding
}

// Grow expands the selection of every selected object. Vertex and edge
// selections become every edge touching a selected vertex. Face selections
// add the neighbouring ring, or flood when an angle limit is set and
// Iterative is off.
func Grow(state *selection.State, opts GrowOptions) action.Result {
	sets := state.Selected()
	if len(sets) == 0 {
		return action.NoSelectionResult
	}

	mode := state.Mode()
	iterative := opts.Iterative || !opts.UseAngle
	maxAngle := -1.0
	if opts.UseAngle {
		maxAngle = opts.MaxAngle
	}

	grown := 0
	for _, set := range sets {
		o := set.Object()
		before := set.Count(mode)
		switch mode {
		case selection.Vertex, selection.Edge:
			set.SetEdges(o.ConnectedEdges(set.Vertices()))
		case selection.Face:
			if iterative {
				set.SetFaces(append(slices.Clone(set.Faces()), GrowFaces(o, set.Faces(), maxAngle)...))
			} else {
				set.SetFaces(FloodFaces(o, set.Faces(), maxAngle))
			}
		}
		grown += set.Count(mode) - before
	}
	state.Notify()

	if grown > 0 {
		return action.NewSuccess("Grow Selection")
	}
	return action.NewFailure("Nothing to Grow")
}

// Shrink removes the perimeter of the selection: every selected element with
// a neighbour outside the selection. Objects with one element selected or
// everything selected are left alone.
func Shrink(state *selection.State) action.Result {
	sets := state.Selected()
	if len(sets) == 0 {
		return action.NoSelectionResult
	}

	mode := state.Mode()
	removed := 0
	for _, set := range sets {
		o := set.Object()
		n := set.Count(mode)
		if n <= 1 || n >= total(o, mode) {
			continue
		}

		switch mode {
		case selection.Vertex:
			perimeter := perimeterGroups(o, set.SelectedGroups())
			set.SetVertices(lo.Reject(set.Vertices(), func(v int, _ int) bool {
				return perimeter[o.GroupOf(v)]
			}))
			removed += len(perimeter)
		case selection.Edge:
			perimeter := perimeterEdges(o, set.SelectedUniversalEdges())
			set.SetEdges(lo.Reject(set.Edges(), func(e mesh.Edge, _ int) bool {
				return perimeter[o.UniversalEdge(e).Normalized()]
			}))
			removed += len(perimeter)
		case selection.Face:
			perimeter := perimeterFaces(o, set.Faces())
			set.SetFaces(lo.Reject(set.Faces(), func(f *mesh.Face, _ int) bool {
				return perimeter[f]
			}))
			removed += len(perimeter)
		}
	}
	state.Notify()

	if removed > 0 {
		return action.NewSuccess("Shrink Selection")
	}
	return action.NewFailure("Nothing to Shrink")
}

// Invert selects the complement of the selection on every active object.
// Vertices are inverted per shared group.
func Invert(state *selection.State) action.Result {
	if len(state.Objects()) == 0 {
		return action.NoSelectionResult
	}

	for _, set := range state.Sets() {
		o := set.Object()
		switch state.Mode() {
		case selection.Vertex:
			selected := lo.SliceToMap(set.SelectedGroups(), func(g int) (int, bool) { return g, true })
			var inverse []int
			for g := 0; g < o.GroupCount(); g++ {
				if !selected[g] {
					inverse = append(inverse, o.MembersOf(g)[0])
				}
			}
			set.SetVertices(inverse)
		case selection.Edge:
			selected := lo.SliceToMap(set.SelectedUniversalEdges(), func(e mesh.Edge) (mesh.Edge, bool) { return e, true })
			set.SetEdges(lo.Reject(o.LocalEdges(), func(e mesh.Edge, _ int) bool {
				return selected[o.UniversalEdge(e).Normalized()]
			}))
		case selection.Face:
			set.SetFaces(lo.Reject(o.Faces(), func(f *mesh.Face, _ int) bool {
				return set.HasFace(f)
			}))
		}
	}
	state.Notify()

	return action.NewSuccess("Invert Selection")
}

// Loop selects the edge loop of each selected edge, or the face loop of each
// selected face. Iterative adds one step at each end per call.
func Loop(state *selection.State, iterative bool) action.Result {
	return extend(state, "Loop", func(o *mesh.Object, edges []mesh.Edge) []mesh.Edge {
		if iterative {
			return EdgeLoopIterative(o, edges)
		}
		return EdgeLoop(o, edges)
	}, false)
}

// Ring selects the edge ring of each selected edge, or the perpendicular
// face loop of each selected face. Iterative adds one step at each side per
// call.
func Ring(state *selection.State, iterative bool) action.Result {
	return extend(state, "Ring", func(o *mesh.Object, edges []mesh.Edge) []mesh.Edge {
		if iterative {
			return EdgeRingIterative(o, edges)
		}
		return EdgeRing(o, edges)
	}, true)
}

// RingAndLoop adds the face ring and the face loop through every selected face
func RingAndLoop(state *selection.State) action.Result {
	if state.Mode() != selection.Face {
		return action.NewFailure("Ring and Loop requires Face mode")
	}
	sets := state.Selected()
	if len(sets) == 0 {
		return action.NoSelectionResult
	}

	success := false
	for _, set := range sets {
		faces := FaceRingAndLoop(set.Object(), set.Faces())
		if len(faces) > set.Count(selection.Face) {
			set.SetFaces(faces)
			success = true
		}
	}
	state.Notify()

	if success {
		return action.NewSuccess("Select Face Ring and Loop")
	}
	return action.NewFailure("Nothing to Ring and Loop")
}

// SelectHole selects the border edges of the holes touching the selected
// vertices. Objects without a selection search every vertex.
func SelectHole(state *selection.State) action.Result {
	if state.Mode() == selection.Face {
		return action.NewFailure("Select Hole requires Vertex or Edge mode")
	}
	if len(state.Objects()) == 0 {
		return action.NoSelectionResult
	}

	found := 0
	for _, set := range state.Sets() {
		o := set.Object()
		groups := set.SelectedGroups()
		if len(groups) == 0 {
			groups = lo.Range(o.GroupCount())
		}
		holes := FindHoles(o, groups)
		if len(holes) == 0 {
			continue
		}
		found += len(holes)
		set.SetEdges(lo.Flatten(holes))
	}
	state.Notify()

	if found == 0 {
		return action.NewFailure("No Holes Found")
	}
	return action.NewSuccess("Select Hole")
}

// extend replaces the selection with a larger one and reports success when
// any object's selection grew
func extend(state *selection.State, name string, edgeOp func(*mesh.Object, []mesh.Edge) []mesh.Edge, ring bool) action.Result {
	sets := state.Selected()
	if len(sets) == 0 {
		return action.NoSelectionResult
	}

	mode := state.Mode()
	element := "Edge"
	if mode == selection.Face {
		element = "Face"
	}

	success := false
	for _, set := range sets {
		o := set.Object()
		switch mode {
		case selection.Face:
			faces := FaceLoop(o, set.Faces(), ring)
			if len(faces) > set.Count(selection.Face) {
				set.SetFaces(faces)
				success = true
			}
		default:
			edges := edgeOp(o, set.Edges())
			if len(edges) > set.Count(selection.Edge) {
				set.SetEdges(edges)
				success = true
			}
		}
	}
	state.Notify()

	if success {
		return action.NewSuccess(fmt.Sprintf("Select %s %s", element, name))
	}
	return action.NewFailure("Nothing to " + name)
}

// MinWeldDistance is the smallest accepted weld distance
const MinWeldDistance = 0.00001

// Weld merges the selected shared vertices of each object that lie within
// distance of each other in world space
func Weld(state *selection.State, distance float64) action.Result {
	sets := lo.Filter(state.Sets(), func(set *selection.Set, _ int) bool {
		return !set.IsEmpty(selection.Vertex)
	})
	if len(sets) == 0 {
		return action.NoSelectionResult
	}
	distance = max(distance, MinWeldDistance)

	welded := 0
	for _, set := range sets {
		o := set.Object()
		groups := set.SelectedGroups()
		if len(groups) < 2 {
			continue
		}

		selected := lo.SliceToMap(groups, func(g int) (int, bool) { return g, true })
		index := spatial.NewVertexIndex([]*mesh.Object{o}, func(_ *mesh.Object, g int) bool {
			return !selected[g]
		})

		var merges [][]int
		for _, g := range groups {
			near := index.Within(o.WorldPosition(o.MembersOf(g)[0]), distance)
			if len(near) < 2 {
				continue
			}
			merges = append(merges, lo.Map(near, func(ref spatial.VertexRef, _ int) int {
				return o.GroupOf(ref.Index)
			}))
		}

		if removed := o.MergeGroups(merges); removed > 0 {
			welded += removed
			set.Invalidate()
		}
	}
	state.Notify()

	switch {
	case welded == 1:
		return action.NewSuccess("Weld 1 Vertex")
	case welded > 1:
		return action.NewSuccess(fmt.Sprintf("Weld %d Vertices", welded))
	}
	return action.NewFailure("Nothing to Weld")
}

// total returns the number of elements of mode m in o
func total(o *mesh.Object, m selection.Mode) int {
	switch m {
	case selection.Vertex:
		return o.GroupCount()
	case selection.Edge:
		return len(o.UniversalEdges())
	default:
		return len(o.Faces())
	}
}
