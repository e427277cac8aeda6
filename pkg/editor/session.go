// Package editor wires selection, topology operators and transform gestures
// into one session driven by a host's input loop.
package editor

import (
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/meshedit/pkg/action"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/topology"
	"github.com/philipparndt/meshedit/pkg/transform"
	"github.com/philipparndt/meshedit/pkg/viewer"
)

// Listener receives the objects affected by an event
type Listener func(objects []*mesh.Object)

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithUVRefresher sets the collaborator called for moved faces when a
// transform finishes
func WithUVRefresher(uv transform.UVRefresher) Option {
	return func(s *Session) {
		s.uv = uv
	}
}

// Session is the editing context of a host: the active objects, their
// selection, the camera and at most one running transform gesture
type Session struct {
	prefs   Preferences
	state   *selection.State
	camera  *viewer.Camera
	gesture *transform.Gesture
	uv      transform.UVRefresher
	log     *slog.Logger

	alignment   transform.HandleAlignment
	handle      *geometry.Vector3
	beginHooks  []Listener
	finishHooks []Listener
}

// NewSession creates a session without objects in Vertex mode
func NewSession(prefs Preferences, opts ...Option) *Session {
	s := &Session{
		prefs:     prefs,
		state:     selection.NewState(),
		log:       slog.Default(),
		alignment: prefs.HandleAlignment,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preferences returns the session preferences
func (s *Session) Preferences() Preferences {
	return s.prefs
}

// SetPreferences replaces the preferences. The handle alignment is kept.
func (s *Session) SetPreferences(prefs Preferences) {
	s.prefs = prefs
}

// Selection returns the selection state
func (s *Session) Selection() *selection.State {
	return s.state
}

// SetObjects replaces the active objects, finishing a running gesture
func (s *Session) SetObjects(objects []*mesh.Object) {
	s.FinishTransform()
	s.handle = nil
	s.state.SetObjects(objects)
	s.log.Debug("objects changed", "objects", len(objects))
}

// Objects returns the active objects
func (s *Session) Objects() []*mesh.Object {
	return s.state.Objects()
}

// SetCamera sets the camera used to resolve screen positions
func (s *Session) SetCamera(cam *viewer.Camera) {
	s.camera = cam
}

// Camera returns the current camera
func (s *Session) Camera() *viewer.Camera {
	return s.camera
}

// SetMode switches the element mode
func (s *Session) SetMode(m selection.Mode) {
	s.state.SetMode(m)
	s.log.Debug("mode changed", "mode", m)
}

// Mode returns the element mode
func (s *Session) Mode() selection.Mode {
	return s.state.Mode()
}

// SetAlignment sets the handle alignment used by the next gesture
func (s *Session) SetAlignment(a transform.HandleAlignment) {
	s.alignment = a
}

// Alignment returns the handle alignment, the effective one while a gesture
// runs
func (s *Session) Alignment() transform.HandleAlignment {
	if s.gesture.Active() {
		return s.gesture.Alignment()
	}
	return s.alignment
}

// SetHandlePosition moves the handle to the world point p. Plane aligned
// gestures rotate and scale around it; the position is dropped when the next
// gesture finishes or the objects change.
func (s *Session) SetHandlePosition(p geometry.Vector3) {
	s.handle = &p
}

// HandlePosition returns the position set with SetHandlePosition
func (s *Session) HandlePosition() (geometry.Vector3, bool) {
	if s.handle == nil {
		return geometry.Vector3{}, false
	}
	return *s.handle, true
}

// SelectedCounts returns the selected element totals
func (s *Session) SelectedCounts() selection.Counts {
	return s.state.SelectedCounts()
}

// OnSelectionUpdate registers fn for selection changes and returns a function
// removing it
func (s *Session) OnSelectionUpdate(fn Listener) func() {
	return s.state.Subscribe(selection.Observer(fn))
}

// OnVertexMovementBegin registers fn for the start of every gesture
func (s *Session) OnVertexMovementBegin(fn Listener) {
	s.beginHooks = append(s.beginHooks, fn)
}

// OnVertexMovementFinish registers fn for the end of every gesture
func (s *Session) OnVertexMovementFinish(fn Listener) {
	s.finishHooks = append(s.finishHooks, fn)
}

// Click toggles the element under mouse. Returns false without a camera or
// when the click hit nothing.
func (s *Session) Click(mouse geometry.Vector2, mods selection.Modifiers, doubleClick bool) bool {
	if s.camera == nil {
		s.log.Warn("click without camera")
		return false
	}
	hit := s.state.Click(s.camera, mouse, mods, doubleClick, s.prefs.pickOptions())
	s.log.Debug("click", "mode", s.Mode(), "x", mouse.X, "y", mouse.Y, "hit", hit)
	return hit
}

// DoubleClick selects the element under the cursor and extends it. Edges
// take their loop, or their ring with Shift. Faces take their loop with
// Shift, their ring with Control and both with Shift and Control; without
// modifiers, and in Vertex mode, the whole object is selected.
func (s *Session) DoubleClick(mouse geometry.Vector2, mods selection.Modifiers) action.Result {
	if s.camera == nil {
		s.log.Warn("double click without camera")
		return action.NoSelectionResult
	}
	el, ok := s.state.Pick(s.camera, mouse, mods, true, s.prefs.pickOptions())
	if !ok {
		return s.report("double click", action.NewFailure("Nothing under the cursor"))
	}
	if !s.state.Contains(el) {
		s.state.Toggle(el, mods)
	}

	switch s.Mode() {
	case selection.Edge:
		if mods.Shift {
			return s.Ring(false)
		}
		return s.Loop(false)
	case selection.Face:
		switch {
		case mods.Shift && mods.Control:
			return s.RingAndLoop()
		case mods.Control:
			return s.Ring(false)
		case mods.Shift:
			return s.Loop(false)
		}
	}
	set := s.state.Set(el.Object)
	set.SetFaces(el.Object.Faces())
	s.state.Notify()
	return s.report("double click", action.NewSuccess("Select All Faces"))
}

// DragSelect applies a rectangle selection
func (s *Session) DragSelect(rect geometry.Rect, mods selection.Modifiers) {
	if s.camera == nil {
		s.log.Warn("drag select without camera")
		return
	}
	s.state.DragSelect(s.camera, rect, mods, s.prefs.pickOptions())
	s.log.Debug("drag select", "mode", s.Mode(), "counts", s.SelectedCounts())
}

// Grow expands the selection using the grow preferences
func (s *Session) Grow() action.Result {
	return s.report("grow", topology.Grow(s.state, topology.GrowOptions{
		UseAngle:  s.prefs.GrowUsingAngle,
		MaxAngle:  s.prefs.GrowAngle,
		Iterative: s.prefs.GrowIterative,
	}))
}

// Shrink removes the perimeter of the selection
func (s *Session) Shrink() action.Result {
	return s.report("shrink", topology.Shrink(s.state))
}

// Invert selects every unselected element
func (s *Session) Invert() action.Result {
	return s.report("invert", topology.Invert(s.state))
}

// Loop extends the selection along edge or face loops
func (s *Session) Loop(iterative bool) action.Result {
	return s.report("loop", topology.Loop(s.state, iterative))
}

// Ring extends the selection across edge or face rings
func (s *Session) Ring(iterative bool) action.Result {
	return s.report("ring", topology.Ring(s.state, iterative))
}

// RingAndLoop adds the face ring and loop through the selected faces
func (s *Session) RingAndLoop() action.Result {
	return s.report("ring and loop", topology.RingAndLoop(s.state))
}

// SelectHole selects the borders of holes next to the selected vertices
func (s *Session) SelectHole() action.Result {
	return s.report("select hole", topology.SelectHole(s.state))
}

// Weld merges selected vertices closer than distance
func (s *Session) Weld(distance float64) action.Result {
	return s.report("weld", topology.Weld(s.state, distance))
}

// BeginTransform starts a gesture on the selection. Extrude duplicates the
// selected faces or boundary edges first. A running gesture must be
// finished before a new one can begin.
func (s *Session) BeginTransform(tool transform.Tool, extrude bool) action.Result {
	if s.gesture.Active() {
		return s.report("begin "+tool.String(), action.Result{Status: action.Canceled, Message: "Transform in progress"})
	}

	g, res := transform.Begin(s.state, tool, transform.Options{
		Alignment:           s.alignment,
		Extrude:             extrude,
		ExtrudeEdgesAsGroup: s.prefs.ExtrudeEdgesAsGroup,
		GridSize:            s.prefs.gridSize(),
		SnapRadius:          s.prefs.SnapRadius,
		Pivot:               s.handle,
		UV:                  s.uv,
	})
	if !res.Ok() {
		return s.report("begin "+tool.String(), res)
	}
	s.gesture = g
	fire(s.beginHooks, g.Objects())
	if g.Extruded() {
		s.state.Notify()
	}
	return s.report("begin "+tool.String(), res)
}

// Transform returns the running gesture, nil when there is none
func (s *Session) Transform() *transform.Gesture {
	if !s.gesture.Active() {
		return nil
	}
	return s.gesture
}

// Move applies a move step of the running gesture
func (s *Session) Move(delta geometry.Vector3, opts transform.MoveOptions) {
	s.gesture.Move(delta, opts)
}

// Rotate applies a rotate step of the running gesture
func (s *Session) Rotate(q mgl64.Quat) {
	s.gesture.Rotate(q)
}

// Scale applies a scale step of the running gesture
func (s *Session) Scale(factors geometry.Vector3) {
	s.gesture.Scale(factors)
}

// FinishTransform ends the running gesture and returns the modified objects
func (s *Session) FinishTransform() []*mesh.Object {
	if !s.gesture.Active() {
		return nil
	}
	objects := s.gesture.Finish()
	s.log.Debug("finish "+s.gesture.Tool().String(), "objects", len(objects))
	s.gesture = nil
	s.handle = nil
	fire(s.finishHooks, objects)
	s.state.Notify()
	return objects
}

func (s *Session) report(op string, res action.Result) action.Result {
	s.log.Debug(op,
		"mode", s.Mode(),
		"objects", len(s.state.Objects()),
		"status", res.Status,
		"message", res.Message)
	return res
}

func fire(hooks []Listener, objects []*mesh.Object) {
	for _, fn := range hooks {
		fn(slices.Clone(objects))
	}
}
