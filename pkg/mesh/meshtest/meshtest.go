// Package meshtest provides small meshes for tests.
package meshtest

import (
	"fmt"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// Cube returns a unit cube centered at the origin: 6 quads over 24 slots,
// welded into 8 shared groups of 3
func Cube() *mesh.Object {
	n, p := -0.5, 0.5
	corners := [][4]geometry.Vector3{
		{{X: p, Y: n, Z: n}, {X: p, Y: p, Z: n}, {X: p, Y: p, Z: p}, {X: p, Y: n, Z: p}}, // +X
		{{X: n, Y: n, Z: n}, {X: n, Y: n, Z: p}, {X: n, Y: p, Z: p}, {X: n, Y: p, Z: n}}, // -X
		{{X: n, Y: p, Z: n}, {X: n, Y: p, Z: p}, {X: p, Y: p, Z: p}, {X: p, Y: p, Z: n}}, // +Y
		{{X: n, Y: n, Z: n}, {X: p, Y: n, Z: n}, {X: p, Y: n, Z: p}, {X: n, Y: n, Z: p}}, // -Y
		{{X: n, Y: n, Z: p}, {X: p, Y: n, Z: p}, {X: p, Y: p, Z: p}, {X: n, Y: p, Z: p}}, // +Z
		{{X: n, Y: n, Z: n}, {X: n, Y: p, Z: n}, {X: p, Y: p, Z: n}, {X: p, Y: n, Z: n}}, // -Z
	}
	return quads("cube", corners)
}

// Grid returns w by h unit quads in the XZ plane facing +Y, starting at the origin
func Grid(w, h int) *mesh.Object {
	var corners [][4]geometry.Vector3
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			fx, fz := float64(x), float64(z)
			corners = append(corners, [4]geometry.Vector3{
				{X: fx, Z: fz},
				{X: fx, Z: fz + 1},
				{X: fx + 1, Z: fz + 1},
				{X: fx + 1, Z: fz},
			})
		}
	}
	return quads(fmt.Sprintf("grid-%dx%d", w, h), corners)
}

// GridFace returns the face of cell (x, z) of a Grid of width w
func GridFace(o *mesh.Object, w, x, z int) *mesh.Face {
	return o.Faces()[z*w+x]
}

// Quad returns a single unit quad facing +Y
func Quad() *mesh.Object {
	return Grid(1, 1)
}

// Triangle returns a single triangle in the XY plane facing +Z
func Triangle() *mesh.Object {
	positions := []geometry.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	return must(mesh.New("triangle", positions, []*mesh.Face{mesh.NewFace(0, 1, 2)}, nil, nil))
}

// FindSlot returns the first slot at the local position p
func FindSlot(o *mesh.Object, p geometry.Vector3) int {
	for i := 0; i < o.VertexCount(); i++ {
		if o.Position(i).ApproxEqual(p, 1e-9) {
			return i
		}
	}
	panic(fmt.Sprintf("meshtest: no slot at %v", p))
}

// FindEdge returns a local edge between the positions a and b
func FindEdge(o *mesh.Object, a, b geometry.Vector3) mesh.Edge {
	for _, f := range o.Faces() {
		for _, e := range f.Edges() {
			pa, pb := o.Position(e.A), o.Position(e.B)
			if (pa.ApproxEqual(a, 1e-9) && pb.ApproxEqual(b, 1e-9)) ||
				(pa.ApproxEqual(b, 1e-9) && pb.ApproxEqual(a, 1e-9)) {
				return e
			}
		}
	}
	panic(fmt.Sprintf("meshtest: no edge between %v and %v", a, b))
}

func quads(name string, corners [][4]geometry.Vector3) *mesh.Object {
	var positions []geometry.Vector3
	var faces []*mesh.Face
	for _, c := range corners {
		base := len(positions)
		positions = append(positions, c[0], c[1], c[2], c[3])
		faces = append(faces, mesh.NewFace(base, base+1, base+2, base, base+2, base+3))
	}
	return must(mesh.New(name, positions, faces, nil, nil))
}

func must(o *mesh.Object, err error) *mesh.Object {
	if err != nil {
		panic(err)
	}
	return o
}
