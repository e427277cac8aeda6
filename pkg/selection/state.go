package selection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/spatial"
	"github.com/philipparndt/meshedit/pkg/viewer"
)

// Modifiers is the keyboard state of a mouse event
type Modifiers struct {
	Shift   bool
	Control bool
}

// Append reports whether the click adds to the existing selection
func (m Modifiers) Append() bool {
	return m.Shift || m.Control
}

// DragPolicy combines a rectangle pick with the existing selection
type DragPolicy int

const (
	// Add unions the picked elements
	Add DragPolicy = iota
	// Subtract removes the picked elements
	Subtract
	// Difference toggles the picked elements
	Difference
)

func (p DragPolicy) String() string {
	switch p {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	default:
		return "difference"
	}
}

// ParseDragPolicy converts a policy name
func ParseDragPolicy(s string) (DragPolicy, error) {
	switch strings.ToLower(s) {
	case "add":
		return Add, nil
	case "subtract":
		return Subtract, nil
	case "difference":
		return Difference, nil
	}
	return Difference, fmt.Errorf("unknown drag policy: %s", s)
}

// PickOptions configures how the cursor resolves to elements
type PickOptions struct {
	MaxDistance  float64 // Pixels
	Culling      spatial.CullingMode
	SkipOccluded bool
	Rect         spatial.RectOptions
	DragPolicy   DragPolicy // Used when a modifier is held
}

// Observer is notified with the active objects after the selection changes
type Observer func(objects []*mesh.Object)

// State is the selection of every active object under one mode
type State struct {
	mode      Mode
	objects   []*mesh.Object
	sets      map[*mesh.Object]*Set
	observers map[int]Observer
	nextID    int

	deepMouse geometry.Vector2
	deepFace  *mesh.Face
}

// NewState creates an empty selection in Vertex mode
func NewState() *State {
	return &State{
		sets:      make(map[*mesh.Object]*Set),
		observers: make(map[int]Observer),
	}
}

// SetObjects replaces the active objects. Selections of objects that stay
// active are kept.
func (s *State) SetObjects(objects []*mesh.Object) {
	sets := make(map[*mesh.Object]*Set, len(objects))
	for _, o := range objects {
		if set, ok := s.sets[o]; ok {
			sets[o] = set
		} else {
			sets[o] = NewSet(o)
		}
	}
	s.objects = slices.Clone(objects)
	s.sets = sets
	s.deepFace = nil
	s.Notify()
}

// Objects returns the active objects
func (s *State) Objects() []*mesh.Object {
	return s.objects
}

// Set returns the selection of o, nil when o is not active
func (s *State) Set(o *mesh.Object) *Set {
	return s.sets[o]
}

// Sets returns the selection of every active object in object order
func (s *State) Sets() []*Set {
	return lo.Map(s.objects, func(o *mesh.Object, _ int) *Set {
		return s.sets[o]
	})
}

// Mode returns the active element mode
func (s *State) Mode() Mode {
	return s.mode
}

// SetMode switches the element mode and refreshes derived views
func (s *State) SetMode(m Mode) {
	if s.mode == m {
		return
	}
	s.mode = m
	for _, set := range s.sets {
		set.Invalidate()
	}
	s.Notify()
}

// Selected returns the sets holding elements of the active mode
func (s *State) Selected() []*Set {
	return lo.Filter(s.Sets(), func(set *Set, _ int) bool {
		return !set.IsEmpty(s.mode)
	})
}

// ClearAll deselects every element of every object
func (s *State) ClearAll() {
	for _, set := range s.sets {
		set.Clear()
	}
	s.Notify()
}

// Subscribe registers an observer and returns a function removing it
func (s *State) Subscribe(fn Observer) func() {
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		delete(s.observers, id)
	}
}

// Notify calls every observer with the active objects
func (s *State) Notify() {
	ids := lo.Keys(s.observers)
	slices.Sort(ids)
	for _, id := range ids {
		s.observers[id](s.objects)
	}
}

// Counts are the per-mode totals over all active objects
type Counts struct {
	Objects  int // Objects with any vertex selected
	Vertices int
	Edges    int
	Faces    int
}

// SelectedCounts sums the selection of every active object
func (s *State) SelectedCounts() Counts {
	var c Counts
	for _, set := range s.Sets() {
		if !set.IsEmpty(Vertex) {
			c.Objects++
		}
		c.Vertices += set.Count(Vertex)
		c.Edges += set.Count(Edge)
		c.Faces += set.Count(Face)
	}
	return c
}

// Element is one mesh element resolved from the cursor
type Element struct {
	Object *mesh.Object
	Vertex int
	Edge   mesh.Edge
	Face   *mesh.Face
}

// Toggle applies a click on el. Without modifiers every object is deselected
// first, unless the clicked object already holds the only selection. A nil
// Object is a click on empty space.
func (s *State) Toggle(el Element, mods Modifiers) bool {
	if !mods.Append() && !s.exclusive(el.Object) {
		for _, set := range s.sets {
			set.Clear()
		}
	}

	set := s.sets[el.Object]
	if set == nil {
		s.Notify()
		return false
	}

	switch s.mode {
	case Vertex:
		set.ToggleVertex(el.Vertex)
	case Edge:
		set.ToggleEdge(el.Edge)
	case Face:
		if el.Face == nil {
			break
		}
		set.ToggleFace(el.Face)
	}
	s.Notify()
	return true
}

// Contains reports whether el is selected
func (s *State) Contains(el Element) bool {
	set := s.sets[el.Object]
	if set == nil {
		return false
	}
	switch s.mode {
	case Vertex:
		return set.HasVertex(el.Vertex)
	case Edge:
		return set.HasEdge(el.Edge)
	default:
		return el.Face != nil && set.HasFace(el.Face)
	}
}

// exclusive reports whether o is the only object with a selection
func (s *State) exclusive(o *mesh.Object) bool {
	set := s.sets[o]
	if set == nil || set.IsEmpty(Vertex) {
		return false
	}
	for other, set := range s.sets {
		if other != o && !set.IsEmpty(Vertex) {
			return false
		}
	}
	return true
}

// Click resolves the element under the cursor for the active mode and
// toggles it. Repeated face clicks at the same point cycle through
// overlapping faces nearest first; a double click keeps the last pick.
func (s *State) Click(cam *viewer.Camera, mouse geometry.Vector2, mods Modifiers, doubleClick bool, opts PickOptions) bool {
	el, ok := s.Pick(cam, mouse, mods, doubleClick, opts)
	if !ok {
		el = Element{}
	}
	return s.Toggle(el, mods)
}

// Pick resolves the element under the cursor without changing the selection
func (s *State) Pick(cam *viewer.Camera, mouse geometry.Vector2, mods Modifiers, doubleClick bool, opts PickOptions) (Element, bool) {
	switch s.mode {
	case Vertex:
		hit, ok := spatial.NearestVertexToScreenPoint(cam, s.objects, mouse, opts.MaxDistance, opts.SkipOccluded)
		if !ok {
			return Element{}, false
		}
		return Element{Object: hit.Object, Vertex: hit.Index}, true
	case Edge:
		hit, ok := spatial.NearestEdgeToScreenPoint(cam, s.objects, mouse, opts.MaxDistance, opts.Culling)
		if !ok {
			return Element{}, false
		}
		return Element{Object: hit.Object, Edge: hit.Edge}, true
	default:
		return s.pickFace(cam, mouse, mods, doubleClick, opts)
	}
}

func (s *State) pickFace(cam *viewer.Camera, mouse geometry.Vector2, mods Modifiers, doubleClick bool, opts PickOptions) (Element, bool) {
	candidates := spatial.NearestFaceCandidates(cam, s.objects, mouse, opts.Culling)
	if len(candidates) == 0 {
		s.deepFace = nil
		return Element{}, false
	}
	if mods.Append() || mouse.Distance(s.deepMouse) > deepClickTolerance {
		candidates = candidates[:1]
	}

	pick := 0
	for i, c := range candidates {
		if c.Face == s.deepFace {
			pick = i
			if !doubleClick {
				pick = (i + 1) % len(candidates)
			}
			break
		}
	}

	s.deepMouse = mouse
	s.deepFace = candidates[pick].Face
	return Element{Object: candidates[pick].Object, Face: candidates[pick].Face}, true
}

// deepClickTolerance is how far in pixels the cursor may move between
// clicks that cycle through overlapping faces
const deepClickTolerance = 2.0

// DragSelect applies a rectangle selection. Without modifiers the picked
// elements replace the selection, otherwise opts.DragPolicy combines them
// with it.
func (s *State) DragSelect(cam *viewer.Camera, rect geometry.Rect, mods Modifiers, opts PickOptions) {
	policy := opts.DragPolicy
	if !mods.Append() {
		for _, set := range s.sets {
			set.Clear()
		}
		policy = Add
	}

	switch s.mode {
	case Vertex:
		picked := spatial.PickVerticesInRect(cam, s.objects, rect, opts.Rect)
		for _, o := range s.objects {
			set := s.sets[o]
			set.SetVertices(combine(set.Vertices(), picked[o], policy, o.GroupOf))
		}
	case Edge:
		picked := spatial.PickEdgesInRect(cam, s.objects, rect, opts.Rect)
		for _, o := range s.objects {
			set := s.sets[o]
			set.SetEdges(combine(set.Edges(), picked[o], policy, func(e mesh.Edge) mesh.Edge {
				return o.UniversalEdge(e).Normalized()
			}))
		}
	case Face:
		picked := spatial.PickFacesInRect(cam, s.objects, rect, opts.Rect)
		for _, o := range s.objects {
			set := s.sets[o]
			set.SetFaces(combine(set.Faces(), picked[o], policy, func(f *mesh.Face) *mesh.Face {
				return f
			}))
		}
	}
	s.Notify()
}

// combine merges picked into current under policy, comparing elements by key
func combine[T any, K comparable](current, picked []T, policy DragPolicy, key func(T) K) []T {
	inCurrent := make(map[K]bool, len(current))
	for _, c := range current {
		inCurrent[key(c)] = true
	}
	inPicked := make(map[K]bool, len(picked))
	for _, p := range picked {
		inPicked[key(p)] = true
	}

	switch policy {
	case Subtract:
		return lo.Reject(current, func(c T, _ int) bool { return inPicked[key(c)] })
	case Difference:
		kept := lo.Reject(current, func(c T, _ int) bool { return inPicked[key(c)] })
		added := lo.Reject(picked, func(p T, _ int) bool { return inCurrent[key(p)] })
		return append(kept, added...)
	default:
		added := lo.Reject(picked, func(p T, _ int) bool { return inCurrent[key(p)] })
		return append(slices.Clone(current), added...)
	}
}
