package mesh

import (
	"fmt"
	"math"
	"slices"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// SharedTable partitions vertex slots into groups of coincident slots. It is
// immutable once built; topology edits build a new table.
type SharedTable struct {
	groups [][]int
	lookup []int
}

// NewSharedTable validates groups as a partition of count slots. Slots not
// named by any group become singleton groups.
func NewSharedTable(count int, groups [][]int) (SharedTable, error) {
	lookup := make([]int, count)
	for i := range lookup {
		lookup[i] = -1
	}

	var out [][]int
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		id := len(out)
		members := make([]int, 0, len(g))
		for _, i := range g {
			if i < 0 || i >= count {
				return SharedTable{}, fmt.Errorf("shared group %d: %w: %d", id, ErrIndexOutOfRange, i)
			}
			if lookup[i] != -1 {
				return SharedTable{}, fmt.Errorf("shared group %d: %w: slot %d", id, ErrDuplicateSlot, i)
			}
			lookup[i] = id
			members = append(members, i)
		}
		out = append(out, members)
	}

	for i, g := range lookup {
		if g == -1 {
			lookup[i] = len(out)
			out = append(out, []int{i})
		}
	}

	return SharedTable{groups: out, lookup: lookup}, nil
}

// GroupOf returns the group id of slot i
func (t SharedTable) GroupOf(i int) int {
	if i < 0 || i >= len(t.lookup) {
		panic(fmt.Sprintf("mesh: vertex index %d out of range [0,%d)", i, len(t.lookup)))
	}
	return t.lookup[i]
}

// MembersOf returns the slots of group g
func (t SharedTable) MembersOf(g int) []int {
	if g < 0 || g >= len(t.groups) {
		panic(fmt.Sprintf("mesh: shared group %d out of range [0,%d)", g, len(t.groups)))
	}
	return t.groups[g]
}

// Len returns the number of groups
func (t SharedTable) Len() int {
	return len(t.groups)
}

// Slots returns the number of partitioned slots
func (t SharedTable) Slots() int {
	return len(t.lookup)
}

// merged returns the table with every group of t touching the same set in
// sets joined into one
func (t SharedTable) merged(sets [][]int) SharedTable {
	ds := newDisjointSet(t.Len())
	for _, set := range sets {
		if len(set) == 0 {
			continue
		}
		for _, i := range set[1:] {
			ds.union(t.GroupOf(set[0]), t.GroupOf(i))
		}
	}
	var groups [][]int
	for _, m := range ds.groups() {
		var slots []int
		for _, g := range m {
			slots = append(slots, t.groups[g]...)
		}
		groups = append(groups, slots)
	}
	out, err := NewSharedTable(len(t.lookup), groups)
	if err != nil {
		panic(fmt.Sprintf("mesh: inconsistent table after merge: %v", err))
	}
	return out
}

// Groups returns a copy of all groups
func (t SharedTable) Groups() [][]int {
	out := make([][]int, len(t.groups))
	for i, g := range t.groups {
		out[i] = slices.Clone(g)
	}
	return out
}

// disjointSet is a union-find over vertex slots
type disjointSet struct {
	parent []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{parent: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *disjointSet) find(i int) int {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
}

// groups returns the sets ordered by their smallest member
func (d *disjointSet) groups() [][]int {
	index := make(map[int]int)
	var out [][]int
	for i := range d.parent {
		r := d.find(i)
		g, ok := index[r]
		if !ok {
			g = len(out)
			index[r] = g
			out = append(out, nil)
		}
		out[g] = append(out[g], i)
	}
	return out
}

// WeldByPosition groups slots lying within epsilon of each other, chaining
// through intermediate slots. Positions are bucketed into epsilon cells and
// each slot is compared with the slots of the surrounding cells.
func WeldByPosition(positions []geometry.Vector3, epsilon float64) [][]int {
	if epsilon <= 0 {
		epsilon = geometry.Epsilon
	}
	type cell [3]int64
	key := func(p geometry.Vector3) cell {
		return cell{
			int64(math.Floor(p.X / epsilon)),
			int64(math.Floor(p.Y / epsilon)),
			int64(math.Floor(p.Z / epsilon)),
		}
	}

	ds := newDisjointSet(len(positions))
	buckets := make(map[cell][]int)
	for i, p := range positions {
		k := key(p)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, j := range buckets[cell{k[0] + dx, k[1] + dy, k[2] + dz}] {
						if positions[j].Distance(p) <= epsilon {
							ds.union(j, i)
						}
					}
				}
			}
		}
		buckets[k] = append(buckets[k], i)
	}
	return ds.groups()
}
