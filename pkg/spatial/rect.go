package spatial

import (
	"fmt"
	"strings"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/viewer"
)

// RectPolicy decides when an edge or face counts as inside a rectangle
type RectPolicy int

const (
	// Partial selects elements with any vertex inside
	Partial RectPolicy = iota
	// Complete selects elements with every vertex inside
	Complete
)

func (p RectPolicy) String() string {
	if p == Complete {
		return "complete"
	}
	return "partial"
}

// ParseRectPolicy converts a policy name
func ParseRectPolicy(s string) (RectPolicy, error) {
	switch strings.ToLower(s) {
	case "partial":
		return Partial, nil
	case "complete":
		return Complete, nil
	}
	return Partial, fmt.Errorf("unknown rect policy: %s", s)
}

// RectOptions configures rectangle picking
type RectOptions struct {
	Policy RectPolicy
	// SkipOccluded ignores vertices hidden behind any of the objects
	SkipOccluded bool
}

// rectTester projects and tests shared groups once per query
type rectTester struct {
	cam     *viewer.Camera
	rect    geometry.Rect
	opts    RectOptions
	cache   *occlusionCache
	results map[*mesh.Object]map[int]bool
}

func newRectTester(cam *viewer.Camera, objects []*mesh.Object, rect geometry.Rect, opts RectOptions) *rectTester {
	return &rectTester{
		cam:     cam,
		rect:    rect,
		opts:    opts,
		cache:   newOcclusionCache(cam, objects),
		results: make(map[*mesh.Object]map[int]bool),
	}
}

// inside reports whether the group of slot i projects into the rectangle
func (r *rectTester) inside(o *mesh.Object, i int) bool {
	g := o.GroupOf(i)
	memo, ok := r.results[o]
	if !ok {
		memo = make(map[int]bool)
		r.results[o] = memo
	}
	if v, ok := memo[g]; ok {
		return v
	}

	world := o.WorldPosition(i)
	screen, _, visible := r.cam.WorldToScreen(world)
	v := visible && r.rect.Contains(screen)
	if v && r.opts.SkipOccluded {
		v = !r.cache.occluded(world)
	}
	memo[g] = v
	return v
}

func (r *rectTester) accepts(o *mesh.Object, indices []int) bool {
	if len(indices) == 0 {
		return false
	}
	for _, i := range indices {
		in := r.inside(o, i)
		if r.opts.Policy == Partial && in {
			return true
		}
		if r.opts.Policy == Complete && !in {
			return false
		}
	}
	return r.opts.Policy == Complete
}

// PickVerticesInRect returns, per object, the first slot of every shared
// group inside the rectangle
func PickVerticesInRect(cam *viewer.Camera, objects []*mesh.Object, rect geometry.Rect, opts RectOptions) map[*mesh.Object][]int {
	r := newRectTester(cam, objects, rect, opts)
	out := make(map[*mesh.Object][]int)
	for _, o := range objects {
		for g := 0; g < o.GroupCount(); g++ {
			slot := o.MembersOf(g)[0]
			if r.inside(o, slot) {
				out[o] = append(out[o], slot)
			}
		}
	}
	return out
}

// PickEdgesInRect returns, per object, one local edge per universal edge
// accepted by the policy
func PickEdgesInRect(cam *viewer.Camera, objects []*mesh.Object, rect geometry.Rect, opts RectOptions) map[*mesh.Object][]mesh.Edge {
	r := newRectTester(cam, objects, rect, opts)
	out := make(map[*mesh.Object][]mesh.Edge)
	for _, o := range objects {
		for _, e := range o.LocalEdges() {
			if r.accepts(o, []int{e.A, e.B}) {
				out[o] = append(out[o], e)
			}
		}
	}
	return out
}

// PickFacesInRect returns, per object, the faces accepted by the policy
func PickFacesInRect(cam *viewer.Camera, objects []*mesh.Object, rect geometry.Rect, opts RectOptions) map[*mesh.Object][]*mesh.Face {
	r := newRectTester(cam, objects, rect, opts)
	out := make(map[*mesh.Object][]*mesh.Face)
	for _, o := range objects {
		for _, f := range o.Faces() {
			if r.accepts(o, f.DistinctIndices()) {
				out[o] = append(out[o], f)
			}
		}
	}
	return out
}
