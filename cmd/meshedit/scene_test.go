package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh/meshtest"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/stl"
)

func TestParseVector(t *testing.T) {
	v, err := parseVector("1, -2.5,3")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(1, -2.5, 3), v)

	_, err = parseVector("1,2")
	assert.Error(t, err)
	_, err = parseVector("1,x,2")
	assert.Error(t, err)
}

func TestParseRect(t *testing.T) {
	r, err := parseRect("300,200,100,50")
	require.NoError(t, err)
	assert.Equal(t, 200.0, r.Width())
	assert.Equal(t, 150.0, r.Height())

	_, err = parseRect("1,2,3")
	assert.Error(t, err)
}

func TestOpenSessionAndOperators(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.stl")
	require.NoError(t, stl.Write(path, stl.FromObject(meshtest.Cube())))

	view := viewFlags{width: 800, height: 600, x: -1, y: -1, mode: "face", weld: stl.WeldEpsilon}
	s, err := openSession([]string{path}, &view)
	require.NoError(t, err)
	require.Len(t, s.Objects(), 1)
	assert.Equal(t, selection.Face, s.Mode())
	assert.Len(t, s.Objects()[0].Faces(), 6)

	require.True(t, s.Click(view.cursor(), selection.Modifiers{}, false))
	res, err := applyOperator(s, "grow", 0.01)
	require.NoError(t, err)
	assert.True(t, res.Ok())
	assert.Equal(t, 5, s.SelectedCounts().Faces)

	res, err = applyOperator(s, "ring-loop", 0.01)
	require.NoError(t, err)
	assert.True(t, res.Ok())
	assert.Equal(t, 6, s.SelectedCounts().Faces)

	res, err = applyOperator(s, "hole", 0.01)
	require.NoError(t, err)
	assert.False(t, res.Ok(), "holes are selected in vertex or edge mode")

	_, err = applyOperator(s, "explode", 0.01)
	assert.Error(t, err)

	view.mode = "polygon"
	_, err = openSession([]string{path}, &view)
	assert.Error(t, err)
}
