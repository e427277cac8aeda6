package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedit/internal/config"
	"github.com/philipparndt/meshedit/pkg/analysis"
	"github.com/philipparndt/meshedit/pkg/editor"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/stl"
	"github.com/philipparndt/meshedit/pkg/viewer"
)

// viewFlags place the virtual camera and the cursor
type viewFlags struct {
	yaw, pitch    float64 // Degrees
	width, height float64
	x, y          float64
	mode          string
	weld          float64
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&v.yaw, "yaw", 0, "Camera rotation around Y in degrees")
	cmd.Flags().Float64Var(&v.pitch, "pitch", 0, "Camera elevation in degrees")
	cmd.Flags().Float64Var(&v.width, "width", 800, "Viewport width in pixels")
	cmd.Flags().Float64Var(&v.height, "height", 600, "Viewport height in pixels")
	cmd.Flags().Float64Var(&v.x, "x", -1, "Cursor x in pixels, defaults to the viewport center")
	cmd.Flags().Float64Var(&v.y, "y", -1, "Cursor y in pixels, defaults to the viewport center")
	cmd.Flags().StringVarP(&v.mode, "mode", "m", "face", "Element mode: vertex, edge or face")
	cmd.Flags().Float64Var(&v.weld, "weld", stl.WeldEpsilon, "Distance under which imported positions are welded")
}

func (v *viewFlags) cursor() geometry.Vector2 {
	x, y := v.x, v.y
	if x < 0 {
		x = v.width / 2
	}
	if y < 0 {
		y = v.height / 2
	}
	return geometry.NewVector2(x, y)
}

// loadObjects parses every file into an editable object
func loadObjects(files []string, weld float64) ([]*mesh.Object, error) {
	objects := make([]*mesh.Object, 0, len(files))
	for _, file := range files {
		model, err := stl.Parse(file)
		if err != nil {
			return nil, err
		}
		if model.Name == "" {
			model.Name = file
		}
		o, err := model.ToObject(weld)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", file, err)
		}
		objects = append(objects, o)
	}
	return objects, nil
}

// openSession loads files into a session with a camera framing all of them
func openSession(files []string, v *viewFlags) (*editor.Session, error) {
	prefs := editor.DefaultPreferences()
	if configPath != "" {
		var err error
		if prefs, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	mode, err := selection.ParseMode(v.mode)
	if err != nil {
		return nil, err
	}
	objects, err := loadObjects(files, v.weld)
	if err != nil {
		return nil, err
	}

	bounds := geometry.NewBoundingBox()
	for _, o := range objects {
		b := o.WorldBounds()
		bounds.Extend(b.Min)
		bounds.Extend(b.Max)
	}
	cam := viewer.NewCamera(bounds, v.width, v.height)
	cam.Orbit(v.yaw*math.Pi/180, v.pitch*math.Pi/180)

	s := editor.NewSession(prefs)
	s.SetObjects(objects)
	s.SetCamera(cam)
	s.SetMode(mode)
	return s, nil
}

// parseVector reads "x,y,z"
func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid component %q: %w", p, err)
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// printSelection lists the selected elements of every object
func printSelection(s *editor.Session) {
	for _, set := range s.Selection().Sets() {
		o := set.Object()
		if set.IsEmpty(selection.Vertex) {
			continue
		}
		fmt.Printf("%s:\n", o.Name)
		switch s.Mode() {
		case selection.Vertex:
			for _, g := range set.SelectedGroups() {
				fmt.Printf("  vertex %-4d %s\n", g, formatVector(o.WorldPosition(o.MembersOf(g)[0])))
			}
		case selection.Edge:
			for _, e := range set.Edges() {
				fmt.Printf("  edge   %-9s %s -> %s\n", e, formatVector(o.WorldPosition(e.A)), formatVector(o.WorldPosition(e.B)))
			}
		case selection.Face:
			for _, f := range set.Faces() {
				fmt.Printf("  face   %-4d center %s\n", o.FaceIndex(f), formatVector(o.Transform.TransformPoint(o.FaceCenter(f))))
			}
		}
	}
	c := s.SelectedCounts()
	fmt.Printf("Selected: %d objects, %d vertices, %d edges, %d faces\n", c.Objects, c.Vertices, c.Edges, c.Faces)
	if b := analysis.SelectionBounds(s.Selection().Sets()); !b.IsEmpty() {
		fmt.Printf("Bounds: %s .. %s\n", formatVector(b.Min), formatVector(b.Max))
	}
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
