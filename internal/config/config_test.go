package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshedit/pkg/editor"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/spatial"
	"github.com/philipparndt/meshedit/pkg/transform"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	prefs, err := Load(filepath.Join(t.TempDir(), "meshedit.toml"))
	require.NoError(t, err)
	assert.Equal(t, editor.DefaultPreferences(), prefs)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshedit.toml")
	content := `
[selection]
precise = true
drag_policy = "subtract"
culling = "front-back"

[grow]
use_angle = true
angle = 30.0

[transform]
grid_enabled = true
handle_alignment = "plane"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	prefs, err := Load(path)
	require.NoError(t, err)

	assert.True(t, prefs.PreciseSelection)
	assert.Equal(t, 12.0, prefs.PickDistance())
	assert.Equal(t, selection.Subtract, prefs.DragModifierPolicy)
	assert.Equal(t, spatial.FrontBack, prefs.Culling)
	assert.True(t, prefs.GrowUsingAngle)
	assert.Equal(t, 30.0, prefs.GrowAngle)
	assert.True(t, prefs.GridEnabled)
	assert.Equal(t, editor.DefaultPreferences().GridSize, prefs.GridSize)
	assert.Equal(t, transform.Plane, prefs.HandleAlignment)
	assert.Equal(t, spatial.Partial, prefs.RectPolicy)
}

func TestDecodeRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[selection]\nradius = 3\n"},
		{"unknown enum", "[transform]\nhandle_alignment = \"screen\"\n"},
		{"negative grid", "[transform]\ngrid_size = -1.0\n"},
		{"zero distance", "[selection]\nprecise_distance = 0.0\n"},
		{"syntax", "[selection\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestWriteThenDecode(t *testing.T) {
	prefs := editor.DefaultPreferences()
	prefs.RectPolicy = spatial.Complete
	prefs.SnapRadius = 0.5

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, prefs))
	assert.Contains(t, buf.String(), "complete")

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, prefs, decoded)
}
