package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh/meshtest"
)

const quadASCII = `solid plate
  facet normal 0 1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 1
    endloop
  endfacet
  facet normal 0 1 0
    outer loop
      vertex 0 0 0
      vertex 1 0 1
      vertex 1 0 0
    endloop
  endfacet
endsolid plate
`

func binarySTL(triangles ...geometry.Triangle) []byte {
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "binary")
	buf.Write(header)
	binary.Write(&buf, binary.LittleEndian, uint32(len(triangles)))
	for _, t := range triangles {
		for _, v := range []geometry.Vector3{t.Normal, t.V1, t.V2, t.V3} {
			binary.Write(&buf, binary.LittleEndian, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func TestReadASCII(t *testing.T) {
	model, err := Read(strings.NewReader(quadASCII))
	require.NoError(t, err)

	assert.Equal(t, "plate", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, geometry.NewVector3(1, 0, 1), model.Triangles[1].V2)
}

func TestReadBinary(t *testing.T) {
	tri := geometry.NewTriangle(geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0))
	model, err := Read(bytes.NewReader(binarySTL(tri)))
	require.NoError(t, err)

	assert.Equal(t, "binary", model.Name)
	require.Equal(t, 1, model.TriangleCount())
	assert.Equal(t, tri.V2, model.Triangles[0].V2)
}

func TestReadBinaryWithSolidHeader(t *testing.T) {
	tri := geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 0, 0), geometry.NewVector3(0, 2, 0))
	data := binarySTL(tri)
	copy(data, "solid exported")

	model, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, model.TriangleCount())
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestToObjectBuildsQuads(t *testing.T) {
	model, err := Read(strings.NewReader(quadASCII))
	require.NoError(t, err)

	o, err := model.ToObject(WeldEpsilon)
	require.NoError(t, err)

	require.Len(t, o.Faces(), 1)
	assert.True(t, o.Faces()[0].IsQuad())
	assert.Equal(t, 6, o.VertexCount())
	assert.Equal(t, 4, o.GroupCount())
	assert.Len(t, o.UniversalEdges(), 4)
}

func TestToObjectKeepsSkewedTriangles(t *testing.T) {
	model := NewModel("fold")
	model.AddTriangle(geometry.Triangle{
		V1: geometry.NewVector3(0, 0, 0), V2: geometry.NewVector3(0, 0, 1), V3: geometry.NewVector3(1, 0, 1),
	})
	model.AddTriangle(geometry.Triangle{
		V1: geometry.NewVector3(0, 0, 0), V2: geometry.NewVector3(1, 0, 1), V3: geometry.NewVector3(1, 1, 0),
	})

	o, err := model.ToObject(WeldEpsilon)
	require.NoError(t, err)
	assert.Len(t, o.Faces(), 2)
	assert.Equal(t, 4, o.GroupCount())
}

func TestRoundTripCube(t *testing.T) {
	cube := meshtest.Cube()
	cube.Transform.Position = geometry.NewVector3(3, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, FromObject(cube)))
	model, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "cube", model.Name)
	assert.Equal(t, 12, model.TriangleCount())

	o, err := model.ToObject(WeldEpsilon)
	require.NoError(t, err)
	assert.Len(t, o.Faces(), 6)
	assert.Equal(t, 8, o.GroupCount())
	assert.Len(t, o.UniversalEdges(), 12)
	assert.True(t, o.Bounds().Center().ApproxEqual(geometry.NewVector3(3, 0, 0), 1e-9))
}
