package stl

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// WeldEpsilon is the default distance under which imported positions share a
// vertex
const WeldEpsilon = 1e-5

// coplanarTolerance is the largest angle in radians between two triangle
// normals that still form a quad
const coplanarTolerance = 1e-4

// ToObject converts the triangle soup into an editable object. Positions
// closer than epsilon are welded into shared groups and coplanar triangle
// pairs sharing their longest edge become quad faces.
func (m *Model) ToObject(epsilon float64) (*mesh.Object, error) {
	if len(m.Triangles) == 0 {
		return nil, fmt.Errorf("model %q: %w", m.Name, ErrEmpty)
	}

	positions := make([]geometry.Vector3, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		positions = append(positions, t.V1, t.V2, t.V3)
	}
	shared := mesh.WeldByPosition(positions, epsilon)
	group := make([]int, len(positions))
	for g, members := range shared {
		for _, i := range members {
			group[i] = g
		}
	}

	// directed group edge to the triangle using it
	directed := make(map[[2]int]int)
	for t := range m.Triangles {
		for k := 0; k < 3; k++ {
			a, b := group[3*t+k], group[3*t+(k+1)%3]
			directed[[2]int{a, b}] = t
		}
	}

	paired := make([]bool, len(m.Triangles))
	var faces []*mesh.Face
	for t := range m.Triangles {
		if paired[t] {
			continue
		}
		paired[t] = true

		k := longestEdge(positions, t)
		c, a, b := 3*t+k, 3*t+(k+1)%3, 3*t+(k+2)%3 // diagonal c -> a
		other, ok := directed[[2]int{group[a], group[c]}]
		if !ok || paired[other] || longestEdge(positions, other) != edgeFrom(group, other, group[a]) ||
			!coplanar(m.Triangles[t], m.Triangles[other]) {
			faces = append(faces, mesh.NewFace(3*t, 3*t+1, 3*t+2))
			continue
		}
		paired[other] = true
		d := 3*other + (edgeFrom(group, other, group[a])+2)%3
		faces = append(faces, mesh.NewFace(a, b, c, a, c, d))
	}

	o, err := mesh.New(m.Name, positions, faces, shared, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh: %w", err)
	}
	return o, nil
}

// longestEdge returns k where edge k runs from corner k to corner k+1
func longestEdge(positions []geometry.Vector3, t int) int {
	best, length := 0, -1.0
	for k := 0; k < 3; k++ {
		l := positions[3*t+k].SqrDistance(positions[3*t+(k+1)%3])
		if l > length {
			best, length = k, l
		}
	}
	return best
}

// edgeFrom returns the corner of triangle t whose group is g
func edgeFrom(group []int, t, g int) int {
	for k := 0; k < 3; k++ {
		if group[3*t+k] == g {
			return k
		}
	}
	return -1
}

func coplanar(a, b geometry.Triangle) bool {
	na, nb := a.CalculateNormal(), b.CalculateNormal()
	if na.IsZero() || nb.IsZero() {
		return false
	}
	return na.Angle(nb) <= coplanarTolerance*180/math.Pi
}

// FromObject returns the world space triangles of o
func FromObject(o *mesh.Object) *Model {
	m := NewModel(o.Name)
	for _, t := range o.Triangles() {
		w := geometry.Triangle{
			V1: o.Transform.TransformPoint(t.V1),
			V2: o.Transform.TransformPoint(t.V2),
			V3: o.Transform.TransformPoint(t.V3),
		}
		w.Normal = w.CalculateNormal()
		m.AddTriangle(w)
	}
	return m
}
