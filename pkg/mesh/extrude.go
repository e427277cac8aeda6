package mesh

import (
	"fmt"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// ExtrudeFaces extrudes the faces as one group with zero distance. The
// selected faces keep their slots, which move into new shared groups, and a
// quad is bridged across every perimeter edge of the group. Returns the new
// side faces.
func (o *Object) ExtrudeFaces(faces []*Face) []*Face {
	selected := make(map[*Face]bool, len(faces))
	for _, f := range faces {
		if o.HasFace(f) {
			selected[f] = true
		}
	}
	if len(selected) == 0 {
		return nil
	}

	// universal edges used exactly once inside the selection form its perimeter
	type border struct {
		face *Face
		edge Edge
	}
	uses := make(map[Edge][]border)
	var order []Edge
	for _, f := range o.faces {
		if !selected[f] {
			continue
		}
		for _, e := range f.edges {
			key := o.UniversalEdge(e).Normalized()
			if _, ok := uses[key]; !ok {
				order = append(order, key)
			}
			uses[key] = append(uses[key], border{face: f, edge: e})
		}
	}

	groups := o.shared.Groups()
	lifted := make(map[int]int)
	lift := func(g int) int {
		if ng, ok := lifted[g]; ok {
			return ng
		}
		ng := len(groups)
		groups = append(groups, nil)
		lifted[g] = ng
		return ng
	}

	// move the selected slots into lifted groups
	moved := make(map[int]bool)
	for _, f := range o.faces {
		if !selected[f] {
			continue
		}
		for _, i := range f.distinct {
			if moved[i] {
				continue
			}
			moved[i] = true
			g := o.shared.GroupOf(i)
			ng := lift(g)
			groups[g] = removeSlot(groups[g], i)
			groups[ng] = append(groups[ng], i)
		}
	}

	var sides []*Face
	for _, key := range order {
		b := uses[key]
		if len(b) != 1 {
			continue
		}
		e := b[0].edge
		ga, gb := o.shared.GroupOf(e.A), o.shared.GroupOf(e.B)
		base := len(o.positions)
		pa, pb := o.positions[e.A], o.positions[e.B]
		o.positions = append(o.positions, pa, pb, pb, pa)
		groups[ga] = append(groups[ga], base)
		groups[gb] = append(groups[gb], base+1)
		groups[lifted[gb]] = append(groups[lifted[gb]], base+2)
		groups[lifted[ga]] = append(groups[lifted[ga]], base+3)

		side := NewFace(base, base+1, base+2, base, base+2, base+3)
		side.Material = b[0].face.Material
		side.SmoothingGroup = b[0].face.SmoothingGroup
		sides = append(sides, side)
	}

	o.faces = append(o.faces, sides...)
	o.mustRebuildShared(groups)
	return sides
}

// ExtrudeEdges bridges a quad onto every boundary edge with zero distance.
// With asGroup, extruded edges that share an endpoint share the new vertex.
// Returns the new outer edges; edges that are not on a boundary are skipped.
func (o *Object) ExtrudeEdges(edges []Edge, asGroup bool) []Edge {
	boundary := make(map[Edge]bool)
	for _, w := range o.WingedEdges() {
		if w.Opposite == nil {
			boundary[w.Edge.Key()] = true
		}
	}

	groups := o.shared.Groups()
	lifted := make(map[int]int)
	lift := func(g int) int {
		if ng, ok := lifted[g]; ok && asGroup {
			return ng
		}
		ng := len(groups)
		groups = append(groups, nil)
		lifted[g] = ng
		return ng
	}

	var out []Edge
	done := make(map[Edge]bool)
	for _, e := range edges {
		key := o.UniversalEdge(e).Normalized()
		if !boundary[key] || done[key] {
			continue
		}
		done[key] = true

		local, owner := o.boundaryEdge(key)
		ga, gb := o.shared.GroupOf(local.A), o.shared.GroupOf(local.B)
		base := len(o.positions)
		pa, pb := o.positions[local.A], o.positions[local.B]
		o.positions = append(o.positions, pb, pa, pa, pb)
		groups[gb] = append(groups[gb], base)
		groups[ga] = append(groups[ga], base+1)
		na, nb := lift(ga), lift(gb)
		groups[na] = append(groups[na], base+2)
		groups[nb] = append(groups[nb], base+3)

		side := NewFace(base, base+1, base+2, base, base+2, base+3)
		side.Material = owner.Material
		side.SmoothingGroup = owner.SmoothingGroup
		o.faces = append(o.faces, side)
		out = append(out, Edge{A: base + 2, B: base + 3})
	}

	if len(out) > 0 {
		o.mustRebuildShared(groups)
	}
	return out
}

// MergeGroups welds each set of shared groups into one group placed at the
// average of the merged positions. Returns the number of groups removed.
func (o *Object) MergeGroups(sets [][]int) int {
	ds := newDisjointSet(o.shared.Len())
	for _, set := range sets {
		if len(set) < 2 {
			continue
		}
		for _, g := range set[1:] {
			ds.union(set[0], g)
		}
	}

	merged := ds.groups()
	removed := o.shared.Len() - len(merged)
	if removed == 0 {
		return 0
	}

	groups := make([][]int, 0, len(merged))
	var welded [][]int
	for _, m := range merged {
		var slots []int
		for _, g := range m {
			slots = append(slots, o.shared.MembersOf(g)...)
		}
		if len(m) > 1 {
			p := geometry.Average(o.GetVertices(slots))
			for _, i := range slots {
				o.positions[i] = p
			}
			welded = append(welded, slots)
		}
		groups = append(groups, slots)
	}
	// welded slots become texture continuous
	o.sharedUV = o.sharedUV.merged(welded)
	o.mustRebuildShared(groups)
	return removed
}

func (o *Object) boundaryEdge(key Edge) (Edge, *Face) {
	for _, w := range o.WingedEdges() {
		if w.Opposite == nil && w.Edge.Key() == key {
			return w.Edge.Local, w.Face
		}
	}
	panic(fmt.Sprintf("mesh: no boundary edge for %v", key))
}

// mustRebuildShared installs a new partition after a topology edit. UV
// groups are split where their slots no longer share a position group; new
// slots get one UV group per shared group.
func (o *Object) mustRebuildShared(groups [][]int) {
	table, err := NewSharedTable(len(o.positions), groups)
	if err != nil {
		panic(fmt.Sprintf("mesh: inconsistent shared groups after topology edit: %v", err))
	}
	o.shared = table

	var uv [][]int
	for _, g := range o.sharedUV.Groups() {
		uv = append(uv, splitByGroup(table, g)...)
	}
	var added []int
	for i := o.sharedUV.Slots(); i < len(o.positions); i++ {
		added = append(added, i)
	}
	uv = append(uv, splitByGroup(table, added)...)

	uvTable, err := NewSharedTable(len(o.positions), uv)
	if err != nil {
		panic(fmt.Sprintf("mesh: inconsistent UV groups after topology edit: %v", err))
	}
	o.sharedUV = uvTable
	o.invalidateTopology()
}

// splitByGroup partitions slots by their shared group, keeping first use order
func splitByGroup(table SharedTable, slots []int) [][]int {
	index := make(map[int]int)
	var out [][]int
	for _, i := range slots {
		g := table.GroupOf(i)
		n, ok := index[g]
		if !ok {
			n = len(out)
			index[g] = n
			out = append(out, nil)
		}
		out[n] = append(out[n], i)
	}
	return out
}

func removeSlot(slots []int, i int) []int {
	out := slots[:0]
	for _, s := range slots {
		if s != i {
			out = append(out, s)
		}
	}
	return out
}
