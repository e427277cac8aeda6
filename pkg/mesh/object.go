package mesh

import (
	"errors"
	"fmt"
	"slices"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

var (
	// ErrIndexOutOfRange is returned when a face or group names a slot that does not exist
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	// ErrDuplicateSlot is returned when a slot appears in more than one shared group
	ErrDuplicateSlot = errors.New("vertex slot in more than one shared group")
	// ErrEmptyFace is returned for faces without triangles
	ErrEmptyFace = errors.New("face has no triangles")
	// ErrMalformedFace is returned when a face's index count is not a multiple of three
	ErrMalformedFace = errors.New("face index count is not a multiple of 3")
)

// Object is an editable mesh: vertex slots, faces over private slots and the
// shared group table that welds coincident slots together.
type Object struct {
	Name      string
	Transform geometry.Transform

	positions []geometry.Vector3
	faces     []*Face
	shared    SharedTable
	sharedUV  SharedTable

	faceIndex map[*Face]int
	universal []Edge
	seams     []Edge
	wings     []*WingedEdge
	bounds    *geometry.BoundingBox
}

// New creates an object. A nil shared slice welds slots by position. A nil
// sharedUV copies the shared groups, leaving the object without UV seams.
func New(name string, positions []geometry.Vector3, faces []*Face, shared, sharedUV [][]int) (*Object, error) {
	for i, f := range faces {
		if len(f.indices) == 0 {
			return nil, fmt.Errorf("face %d: %w", i, ErrEmptyFace)
		}
		if len(f.indices)%3 != 0 {
			return nil, fmt.Errorf("face %d: %w", i, ErrMalformedFace)
		}
		for _, v := range f.indices {
			if v < 0 || v >= len(positions) {
				return nil, fmt.Errorf("face %d: %w: %d", i, ErrIndexOutOfRange, v)
			}
		}
	}

	if shared == nil {
		shared = WeldByPosition(positions, geometry.Epsilon)
	}
	table, err := NewSharedTable(len(positions), shared)
	if err != nil {
		return nil, fmt.Errorf("failed to build shared table: %w", err)
	}
	if sharedUV == nil {
		sharedUV = table.Groups()
	}
	uv, err := NewSharedTable(len(positions), sharedUV)
	if err != nil {
		return nil, fmt.Errorf("failed to build shared UV table: %w", err)
	}

	o := &Object{
		Name:      name,
		Transform: geometry.IdentityTransform(),
		positions: slices.Clone(positions),
		faces:     slices.Clone(faces),
		shared:    table,
		sharedUV:  uv,
	}
	o.invalidateTopology()
	return o, nil
}

// VertexCount returns the number of vertex slots
func (o *Object) VertexCount() int {
	return len(o.positions)
}

// Position returns the local position of slot i
func (o *Object) Position(i int) geometry.Vector3 {
	o.checkIndex(i)
	return o.positions[i]
}

// Positions returns a copy of all local positions
func (o *Object) Positions() []geometry.Vector3 {
	return slices.Clone(o.positions)
}

// GetVertices gathers the positions of the given slots
func (o *Object) GetVertices(indices []int) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(indices))
	for n, i := range indices {
		o.checkIndex(i)
		out[n] = o.positions[i]
	}
	return out
}

// SetVertices scatters positions into the given slots. Shared groups are not
// kept consistent; call PropagateSharedPositions when done.
func (o *Object) SetVertices(indices []int, positions []geometry.Vector3) {
	if len(indices) != len(positions) {
		panic(fmt.Sprintf("mesh: SetVertices got %d indices and %d positions", len(indices), len(positions)))
	}
	for n, i := range indices {
		o.checkIndex(i)
		o.positions[i] = positions[n]
	}
	o.bounds = nil
}

// PropagateSharedPositions copies the first member's position to every
// other member of its group
func (o *Object) PropagateSharedPositions() {
	for _, g := range o.shared.groups {
		p := o.positions[g[0]]
		for _, i := range g[1:] {
			o.positions[i] = p
		}
	}
	o.bounds = nil
}

// GroupOf returns the shared group of slot i
func (o *Object) GroupOf(i int) int {
	return o.shared.GroupOf(i)
}

// MembersOf returns the slots of shared group g
func (o *Object) MembersOf(g int) []int {
	return o.shared.MembersOf(g)
}

// GroupCount returns the number of shared groups
func (o *Object) GroupCount() int {
	return o.shared.Len()
}

// SharedGroups returns a copy of the shared groups
func (o *Object) SharedGroups() [][]int {
	return o.shared.Groups()
}

// UVGroupOf returns the shared UV group of slot i
func (o *Object) UVGroupOf(i int) int {
	return o.sharedUV.GroupOf(i)
}

// SetSharedUVGroups replaces the UV seam partition
func (o *Object) SetSharedUVGroups(groups [][]int) error {
	table, err := NewSharedTable(len(o.positions), groups)
	if err != nil {
		return fmt.Errorf("failed to build shared UV table: %w", err)
	}
	o.sharedUV = table
	o.seams = nil
	return nil
}

// SeamEdges returns the universal edges whose faces disagree on the UV
// groups of the endpoints, normalized, in UniversalEdges order
func (o *Object) SeamEdges() []Edge {
	if o.seams != nil {
		return o.seams
	}
	sides := make(map[Edge]Edge)
	seam := make(map[Edge]bool)
	for _, f := range o.faces {
		for _, e := range f.edges {
			u := o.UniversalEdge(e)
			uv := Edge{A: o.sharedUV.GroupOf(e.A), B: o.sharedUV.GroupOf(e.B)}
			if u.A > u.B {
				u, uv = u.Normalized(), Edge{A: uv.B, B: uv.A}
			}
			if prev, ok := sides[u]; !ok {
				sides[u] = uv
			} else if prev != uv {
				seam[u] = true
			}
		}
	}
	o.seams = []Edge{}
	for _, u := range o.UniversalEdges() {
		if seam[u] {
			o.seams = append(o.seams, u)
		}
	}
	return o.seams
}

// IsSeam reports whether the universal edge of e is a UV seam
func (o *Object) IsSeam(e Edge) bool {
	u := o.UniversalEdge(e).Normalized()
	for _, s := range o.SeamEdges() {
		if s == u {
			return true
		}
	}
	return false
}

// Faces returns the faces of the object
func (o *Object) Faces() []*Face {
	return o.faces
}

// FaceIndex returns the position of f in Faces, or -1
func (o *Object) FaceIndex(f *Face) int {
	if i, ok := o.faceIndex[f]; ok {
		return i
	}
	return -1
}

// HasFace reports whether f belongs to the object
func (o *Object) HasFace(f *Face) bool {
	_, ok := o.faceIndex[f]
	return ok
}

// UniversalEdge converts a local edge to shared group ids
func (o *Object) UniversalEdge(e Edge) Edge {
	return Edge{A: o.shared.GroupOf(e.A), B: o.shared.GroupOf(e.B)}
}

// UniversalEdges returns every distinct edge of the object in shared group
// space, normalized, in face order
func (o *Object) UniversalEdges() []Edge {
	if o.universal == nil {
		seen := make(map[Edge]bool)
		for _, f := range o.faces {
			for _, e := range f.edges {
				u := o.UniversalEdge(e).Normalized()
				if !seen[u] {
					seen[u] = true
					o.universal = append(o.universal, u)
				}
			}
		}
	}
	return o.universal
}

// LocalEdges returns one local edge per universal edge, in UniversalEdges order
func (o *Object) LocalEdges() []Edge {
	seen := make(map[Edge]bool)
	var out []Edge
	for _, f := range o.faces {
		for _, e := range f.edges {
			u := o.UniversalEdge(e).Normalized()
			if !seen[u] {
				seen[u] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// FaceNormal returns the unit area weighted normal of f
func (o *Object) FaceNormal(f *Face) geometry.Vector3 {
	var n geometry.Vector3
	for t := 0; t+2 < len(f.indices); t += 3 {
		tri := geometry.Triangle{
			V1: o.positions[f.indices[t]],
			V2: o.positions[f.indices[t+1]],
			V3: o.positions[f.indices[t+2]],
		}
		n = n.Add(tri.AreaNormal())
	}
	return n.Normalize()
}

// NormalTangentBitangent returns an orthonormal frame for f. The tangent
// follows the face's first perimeter edge.
func (o *Object) NormalTangentBitangent(f *Face) (normal, tangent, bitangent geometry.Vector3) {
	normal = o.FaceNormal(f)
	var edge geometry.Vector3
	if len(f.edges) > 0 {
		e := f.edges[0]
		edge = o.positions[e.B].Sub(o.positions[e.A])
	}
	basis := geometry.NewBasis(normal, edge)
	return basis.Forward, basis.Right, basis.Up
}

// FaceCenter returns the average of the face's distinct positions
func (o *Object) FaceCenter(f *Face) geometry.Vector3 {
	return geometry.Average(o.GetVertices(f.distinct))
}

// Triangles returns the local triangles of all faces
func (o *Object) Triangles() []geometry.Triangle {
	var out []geometry.Triangle
	for _, f := range o.faces {
		for t := 0; t+2 < len(f.indices); t += 3 {
			tri := geometry.Triangle{
				V1: o.positions[f.indices[t]],
				V2: o.positions[f.indices[t+1]],
				V3: o.positions[f.indices[t+2]],
			}
			tri.Normal = tri.CalculateNormal()
			out = append(out, tri)
		}
	}
	return out
}

// Bounds returns the local bounding box of all slots
func (o *Object) Bounds() geometry.BoundingBox {
	if o.bounds == nil {
		b := geometry.BoundsOf(o.positions)
		o.bounds = &b
	}
	return *o.bounds
}

// WorldBounds returns the bounding box of all slots in world space
func (o *Object) WorldBounds() geometry.BoundingBox {
	b := geometry.NewBoundingBox()
	for _, p := range o.positions {
		b.Extend(o.Transform.TransformPoint(p))
	}
	return b
}

// WorldPosition returns slot i in world space
func (o *Object) WorldPosition(i int) geometry.Vector3 {
	return o.Transform.TransformPoint(o.Position(i))
}

// CenterPivot moves the transform origin to the center of the local bounds
// without changing any world position
func (o *Object) CenterPivot() {
	center := o.Bounds().Center()
	o.Transform.Position = o.Transform.TransformPoint(center)
	for i := range o.positions {
		o.positions[i] = o.positions[i].Sub(center)
	}
	o.bounds = nil
}

// NeighborFaces returns the faces that contain the universal edge of e
func (o *Object) NeighborFaces(e Edge) []*Face {
	u := o.UniversalEdge(e).Normalized()
	var out []*Face
	for _, f := range o.faces {
		for _, fe := range f.edges {
			if o.UniversalEdge(fe).Normalized() == u {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// ConnectedEdges returns one local edge for each universal edge touching a
// group of the given slots
func (o *Object) ConnectedEdges(indices []int) []Edge {
	groups := make(map[int]bool, len(indices))
	for _, i := range indices {
		groups[o.GroupOf(i)] = true
	}

	seen := make(map[Edge]bool)
	var out []Edge
	for _, f := range o.faces {
		for _, e := range f.edges {
			u := o.UniversalEdge(e)
			if !groups[u.A] && !groups[u.B] {
				continue
			}
			if key := u.Normalized(); !seen[key] {
				seen[key] = true
				out = append(out, e)
			}
		}
	}
	return out
}

func (o *Object) checkIndex(i int) {
	if i < 0 || i >= len(o.positions) {
		panic(fmt.Sprintf("mesh: vertex index %d out of range [0,%d)", i, len(o.positions)))
	}
}

// invalidateTopology drops every cache derived from faces or shared groups
func (o *Object) invalidateTopology() {
	o.faceIndex = make(map[*Face]int, len(o.faces))
	for i, f := range o.faces {
		o.faceIndex[f] = i
	}
	o.universal = nil
	o.seams = nil
	o.wings = nil
	o.bounds = nil
}
