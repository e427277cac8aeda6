package mesh

// WingedEdge is one face-local edge linked to its neighbours in the face
// perimeter and to the matching edge of the adjacent face.
type WingedEdge struct {
	Edge     EdgeLookup
	Face     *Face
	Next     *WingedEdge
	Previous *WingedEdge
	Opposite *WingedEdge
}

// WingedEdges returns the winged edge structure for every face, rebuilt after
// topology edits
func (o *Object) WingedEdges() []*WingedEdge {
	if o.wings == nil {
		o.wings = buildWingedEdges(o, o.faces)
	}
	return o.wings
}

// FirstWing returns the winged edge of f's first perimeter edge
func (o *Object) FirstWing(f *Face) *WingedEdge {
	for _, w := range o.WingedEdges() {
		if w.Face == f {
			return w
		}
	}
	return nil
}

func buildWingedEdges(o *Object, faces []*Face) []*WingedEdge {
	var winged []*WingedEdge
	opposites := make(map[Edge]*WingedEdge)

	for _, f := range faces {
		var first, prev *WingedEdge
		for n, e := range f.edges {
			w := &WingedEdge{
				Edge: EdgeLookup{Local: e, Common: o.UniversalEdge(e)},
				Face: f,
			}
			if n == 0 {
				first = w
			} else {
				w.Previous = prev
				prev.Next = w
			}
			if n == len(f.edges)-1 {
				w.Next = first
				first.Previous = w
			}
			prev = w

			key := w.Edge.Key()
			if opp, ok := opposites[key]; ok {
				opp.Opposite = w
				w.Opposite = opp
			} else {
				opposites[key] = w
			}
			winged = append(winged, w)
		}
	}
	return winged
}

// Count returns the number of edges in the wing's face perimeter
func (w *WingedEdge) Count() int {
	count := 0
	cur := w
	for {
		count++
		cur = cur.Next
		if cur == nil || cur == w {
			return count
		}
	}
}

// Perimeter returns the wings of the face starting at w
func (w *WingedEdge) Perimeter() []*WingedEdge {
	var out []*WingedEdge
	cur := w
	for cur != nil {
		out = append(out, cur)
		cur = cur.Next
		if cur == w {
			break
		}
	}
	return out
}

// AdjacentWithCommon returns the neighbour in the face that shares group common
func (w *WingedEdge) AdjacentWithCommon(common int) *WingedEdge {
	if w.Next != nil && w.Next.Edge.Common.Contains(common) {
		return w.Next
	}
	if w.Previous != nil && w.Previous.Edge.Common.Contains(common) {
		return w.Previous
	}
	return nil
}

func nextSpoke(w *WingedEdge, pivot int, opposite bool) *WingedEdge {
	if opposite {
		return w.Opposite
	}
	return w.AdjacentWithCommon(pivot)
}

// Spokes walks around the shared group pivot starting at w and returns every
// wing touching it. When the fan is open (a boundary vertex) and allowHoles
// is set, the walk continues from w's opposite to collect the other side.
func (w *WingedEdge) Spokes(pivot int, allowHoles bool) []*WingedEdge {
	var spokes []*WingedEdge
	seen := make(map[*WingedEdge]bool)
	start := w.Edge.Key()

	cur := w
	opposite := false
	for cur != nil {
		if seen[cur] {
			return spokes
		}
		seen[cur] = true
		spokes = append(spokes, cur)
		cur = nextSpoke(cur, pivot, opposite)
		opposite = !opposite
		if cur != nil && cur.Edge.Key() == start {
			return spokes
		}
	}

	if !allowHoles {
		return nil
	}

	var fragment []*WingedEdge
	cur = w.Opposite
	opposite = false
	for cur != nil && cur.Edge.Key() != start && !seen[cur] {
		seen[cur] = true
		fragment = append(fragment, cur)
		cur = nextSpoke(cur, pivot, opposite)
		opposite = !opposite
	}
	for i := len(fragment) - 1; i >= 0; i-- {
		spokes = append(spokes, fragment[i])
	}
	return spokes
}

// DistinctSpokes returns Spokes with one wing per universal edge
func (w *WingedEdge) DistinctSpokes(pivot int) []*WingedEdge {
	seen := make(map[Edge]bool)
	var out []*WingedEdge
	for _, s := range w.Spokes(pivot, true) {
		if key := s.Edge.Key(); !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}
