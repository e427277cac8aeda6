package transform

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"

	"github.com/philipparndt/meshedit/pkg/action"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/spatial"
)

// UVRefresher regenerates texture coordinates of faces whose vertices moved
type UVRefresher interface {
	RefreshUVs(o *mesh.Object, faces []*mesh.Face)
}

// Options configures a gesture
type Options struct {
	Alignment           HandleAlignment
	Extrude             bool    // Shift was held when the drag started
	ExtrudeEdgesAsGroup bool    // Extruded edges keep their shared corners
	GridSize            float64 // Snap the move delta to this step, 0 disables
	SnapRadius          float64 // World distance for snapping to a vertex
	Pivot               *geometry.Vector3
	UV                  UVRefresher
}

// Axis is a bit mask of handle axes
type Axis int

// Handle axes. In Plane alignment AxisZ is the face normal.
const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ
)

// AllAxes leaves a move unconstrained
const AllAxes = AxisX | AxisY | AxisZ

// MoveOptions configures one move step. Snapping is ignored while the move
// is constrained to an axis.
type MoveOptions struct {
	Axes         Axis // Zero is the same as AllAxes
	SnapToVertex bool
	SnapToFace   bool
}

// entry is the moving part of one object
type entry struct {
	object  *mesh.Object
	slots   []int              // Every member of the selected shared groups
	origins []geometry.Vector3 // World positions at Begin
	offsets []geometry.Vector3 // Pivot relative, in handle space at Begin
	faces   map[*mesh.Face]bool
}

// Gesture is one drag of a transform handle. Each step is applied relative
// to the state at Begin.
type Gesture struct {
	tool      Tool
	alignment HandleAlignment
	opts      Options
	objects   []*mesh.Object
	entries   []entry

	pivot    geometry.Vector3
	rotation mgl64.Quat

	handlePosition geometry.Vector3
	handleRotation mgl64.Quat

	extruded bool
	active   bool
	index    *spatial.VertexIndex
}

// Begin starts a gesture on every object with selected vertices. Face
// selections are widened to whole texture groups. With opts.Extrude the
// selected faces or boundary edges are extruded in place first.
func Begin(state *selection.State, tool Tool, opts Options) (*Gesture, action.Result) {
	sets := lo.Filter(state.Sets(), func(set *selection.Set, _ int) bool {
		return !set.IsEmpty(selection.Vertex)
	})
	if len(sets) == 0 {
		return nil, action.NoSelectionResult
	}

	g := &Gesture{
		tool:    tool,
		opts:    opts,
		objects: state.Objects(),
		active:  true,
	}

	mode := state.Mode()
	for _, set := range sets {
		if mode == selection.Face {
			set.SetFaces(withTextureGroups(set.Object(), set.Faces()))
		}
		if opts.Extrude {
			g.extruded = extrude(set, mode, opts.ExtrudeEdgesAsGroup) || g.extruded
		}
	}

	bounds := geometry.NewBoundingBox()
	for _, set := range sets {
		o := set.Object()
		var slots []int
		for _, grp := range set.SelectedGroups() {
			slots = append(slots, o.MembersOf(grp)...)
		}
		e := entry{object: o, slots: slots, faces: make(map[*mesh.Face]bool)}
		for _, i := range slots {
			p := o.WorldPosition(i)
			e.origins = append(e.origins, p)
			bounds.Extend(p)
		}
		for _, f := range o.Faces() {
			if lo.SomeBy(f.DistinctIndices(), func(i int) bool { return lo.Contains(slots, i) }) {
				e.faces[f] = true
			}
		}
		g.entries = append(g.entries, e)
	}

	if len(sets) > 1 && opts.Alignment == Plane {
		g.alignment, g.rotation = World, mgl64.QuatIdent()
	} else {
		g.alignment, g.rotation = handleFrame(opts.Alignment, sets)
	}

	g.pivot = bounds.Center()
	if g.alignment == Plane && opts.Pivot != nil {
		g.pivot = *opts.Pivot
	}
	inverse := g.rotation.Inverse()
	for n := range g.entries {
		e := &g.entries[n]
		for _, p := range e.origins {
			e.offsets = append(e.offsets, geometry.RotateVector(inverse, p.Sub(g.pivot)))
		}
	}

	g.handlePosition = g.pivot
	g.handleRotation = g.rotation
	return g, action.NewSuccess(tool.String())
}

// withTextureGroups adds every face sharing a texture group with faces
func withTextureGroups(o *mesh.Object, faces []*mesh.Face) []*mesh.Face {
	groups := make(map[int]bool)
	for _, f := range faces {
		if f.TextureGroup > 0 {
			groups[f.TextureGroup] = true
		}
	}
	if len(groups) == 0 {
		return faces
	}
	out := append([]*mesh.Face(nil), faces...)
	for _, f := range o.Faces() {
		if groups[f.TextureGroup] && !lo.Contains(faces, f) {
			out = append(out, f)
		}
	}
	return out
}

// extrude duplicates the selection in place so the drag moves the new
// geometry
func extrude(set *selection.Set, mode selection.Mode, edgesAsGroup bool) bool {
	o := set.Object()
	switch mode {
	case selection.Face:
		if len(set.Faces()) == 0 {
			return false
		}
		o.ExtrudeFaces(set.Faces())
		set.Invalidate()
		return true
	case selection.Edge:
		edges := o.ExtrudeEdges(set.Edges(), edgesAsGroup)
		if len(edges) == 0 {
			return false
		}
		set.SetEdges(edges)
		return true
	}
	return false
}

// Tool returns the gesture's tool
func (g *Gesture) Tool() Tool {
	return g.tool
}

// Alignment returns the effective handle alignment
func (g *Gesture) Alignment() HandleAlignment {
	return g.alignment
}

// Active reports whether the gesture accepts steps
func (g *Gesture) Active() bool {
	return g != nil && g.active
}

// Extruded reports whether Begin extruded the selection
func (g *Gesture) Extruded() bool {
	return g.extruded
}

// Pivot returns the world point rotation and scale act around
func (g *Gesture) Pivot() geometry.Vector3 {
	return g.pivot
}

// HandlePosition returns the current world position of the handle
func (g *Gesture) HandlePosition() geometry.Vector3 {
	return g.handlePosition
}

// HandleRotation returns the current orientation of the handle
func (g *Gesture) HandleRotation() mgl64.Quat {
	return g.handleRotation
}

// Objects returns the objects the gesture modifies
func (g *Gesture) Objects() []*mesh.Object {
	return lo.Map(g.entries, func(e entry, _ int) *mesh.Object { return e.object })
}

// Move translates the selection by delta, a world offset from the handle
// position at Begin
func (g *Gesture) Move(delta geometry.Vector3, opts MoveOptions) {
	if !g.Active() {
		return
	}

	snapped := false
	if opts.Axes != 0 && opts.Axes != AllAxes {
		delta = g.constrain(delta, opts.Axes)
	} else {
		switch {
		case opts.SnapToVertex:
			delta, snapped = g.snapToVertex(delta)
		case opts.SnapToFace:
			delta, snapped = g.snapToFace(delta)
		}
	}
	if !snapped && g.opts.GridSize > 0 {
		delta = delta.Snap(g.opts.GridSize)
	}

	g.apply(func(_ geometry.Vector3, origin geometry.Vector3) geometry.Vector3 {
		return origin.Add(delta)
	})
	g.handlePosition = g.pivot.Add(delta)
}

// Rotate orients the selection so that the handle has rotation q
func (g *Gesture) Rotate(q mgl64.Quat) {
	if !g.Active() {
		return
	}
	q = q.Normalize()
	g.apply(func(offset geometry.Vector3, _ geometry.Vector3) geometry.Vector3 {
		return g.pivot.Add(geometry.RotateVector(q, offset))
	})
	g.handleRotation = q
}

// Scale scales the selection around the pivot by factors along the handle
// axes. In Plane alignment the normal axis is never scaled.
func (g *Gesture) Scale(factors geometry.Vector3) {
	if !g.Active() {
		return
	}
	if g.alignment == Plane {
		factors.Z = 1
	}
	g.apply(func(offset geometry.Vector3, _ geometry.Vector3) geometry.Vector3 {
		return g.pivot.Add(geometry.RotateVector(g.rotation, offset.Scale(factors)))
	})
}

// apply computes the new world position of every moving slot and writes
// all of them back
func (g *Gesture) apply(fn func(offset, origin geometry.Vector3) geometry.Vector3) {
	for _, e := range g.entries {
		positions := make([]geometry.Vector3, len(e.slots))
		for n := range e.slots {
			world := fn(e.offsets[n], e.origins[n])
			positions[n] = e.object.Transform.InverseTransformPoint(world)
		}
		e.object.SetVertices(e.slots, positions)
	}
}

// Finish ends the gesture, makes shared groups consistent and refreshes UVs
// of the moved faces. Returns the modified objects.
func (g *Gesture) Finish() []*mesh.Object {
	if !g.Active() {
		return nil
	}
	g.active = false

	for _, e := range g.entries {
		e.object.PropagateSharedPositions()
		if g.opts.UV != nil {
			faces := lo.Filter(e.object.Faces(), func(f *mesh.Face, _ int) bool {
				return e.faces[f]
			})
			g.opts.UV.RefreshUVs(e.object, faces)
		}
	}
	return g.Objects()
}
