// Package config loads editor preferences from TOML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/philipparndt/meshedit/pkg/editor"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/spatial"
	"github.com/philipparndt/meshedit/pkg/transform"
)

// File is the TOML layout of the preferences
type File struct {
	Selection struct {
		Precise           bool    `toml:"precise"`
		ImpreciseDistance float64 `toml:"imprecise_distance"`
		PreciseDistance   float64 `toml:"precise_distance"`
		RectPolicy        string  `toml:"rect_policy"`
		DragPolicy        string  `toml:"drag_policy"`
		SelectHidden      bool    `toml:"select_hidden"`
		Culling           string  `toml:"culling"`
	} `toml:"selection"`

	Grow struct {
		UseAngle  bool    `toml:"use_angle"`
		Angle     float64 `toml:"angle"`
		Iterative bool    `toml:"iterative"`
	} `toml:"grow"`

	Transform struct {
		GridEnabled         bool    `toml:"grid_enabled"`
		GridSize            float64 `toml:"grid_size"`
		SnapRadius          float64 `toml:"snap_radius"`
		ExtrudeEdgesAsGroup bool    `toml:"extrude_edges_as_group"`
		HandleAlignment     string  `toml:"handle_alignment"`
	} `toml:"transform"`
}

// Load reads preferences from path over the defaults. A missing file yields
// the defaults.
func Load(path string) (editor.Preferences, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return editor.DefaultPreferences(), nil
	}
	if err != nil {
		return editor.Preferences{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	prefs, err := Decode(f)
	if err != nil {
		return editor.Preferences{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return prefs, nil
}

// Decode reads preferences from TOML over the defaults. Unknown keys are
// rejected.
func Decode(r io.Reader) (editor.Preferences, error) {
	file := fromPreferences(editor.DefaultPreferences())
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return editor.Preferences{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return file.Preferences()
}

// Preferences validates the file and converts it
func (f File) Preferences() (editor.Preferences, error) {
	var err error
	p := editor.Preferences{
		PreciseSelection:    f.Selection.Precise,
		ImpreciseDistance:   f.Selection.ImpreciseDistance,
		PreciseDistance:     f.Selection.PreciseDistance,
		SelectHidden:        f.Selection.SelectHidden,
		GrowUsingAngle:      f.Grow.UseAngle,
		GrowAngle:           f.Grow.Angle,
		GrowIterative:       f.Grow.Iterative,
		GridEnabled:         f.Transform.GridEnabled,
		GridSize:            f.Transform.GridSize,
		SnapRadius:          f.Transform.SnapRadius,
		ExtrudeEdgesAsGroup: f.Transform.ExtrudeEdgesAsGroup,
	}
	if p.RectPolicy, err = spatial.ParseRectPolicy(f.Selection.RectPolicy); err != nil {
		return p, err
	}
	if p.DragModifierPolicy, err = selection.ParseDragPolicy(f.Selection.DragPolicy); err != nil {
		return p, err
	}
	if p.Culling, err = spatial.ParseCullingMode(f.Selection.Culling); err != nil {
		return p, err
	}
	if p.HandleAlignment, err = transform.ParseAlignment(f.Transform.HandleAlignment); err != nil {
		return p, err
	}
	if p.ImpreciseDistance <= 0 || p.PreciseDistance <= 0 {
		return p, fmt.Errorf("pick distances must be positive")
	}
	if p.GridSize < 0 || p.SnapRadius < 0 {
		return p, fmt.Errorf("grid size and snap radius must not be negative")
	}
	return p, nil
}

func fromPreferences(p editor.Preferences) File {
	var f File
	f.Selection.Precise = p.PreciseSelection
	f.Selection.ImpreciseDistance = p.ImpreciseDistance
	f.Selection.PreciseDistance = p.PreciseDistance
	f.Selection.RectPolicy = p.RectPolicy.String()
	f.Selection.DragPolicy = p.DragModifierPolicy.String()
	f.Selection.SelectHidden = p.SelectHidden
	f.Selection.Culling = p.Culling.String()
	f.Grow.UseAngle = p.GrowUsingAngle
	f.Grow.Angle = p.GrowAngle
	f.Grow.Iterative = p.GrowIterative
	f.Transform.GridEnabled = p.GridEnabled
	f.Transform.GridSize = p.GridSize
	f.Transform.SnapRadius = p.SnapRadius
	f.Transform.ExtrudeEdgesAsGroup = p.ExtrudeEdgesAsGroup
	f.Transform.HandleAlignment = p.HandleAlignment.String()
	return f
}

// Write stores p as TOML
func Write(w io.Writer, p editor.Preferences) error {
	if err := toml.NewEncoder(w).Encode(fromPreferences(p)); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
