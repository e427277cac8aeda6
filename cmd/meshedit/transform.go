package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedit/pkg/editor"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/stl"
	"github.com/philipparndt/meshedit/pkg/transform"
)

var (
	transformView      viewFlags
	transformOps       []string
	transformMove      string
	transformRotate    string
	transformScale     string
	transformAlignment string
	transformPivot     string
	transformExtrude   bool
	transformOut       string
)

var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Move, rotate or scale the selected elements",
	Long: `Click the element under the cursor, apply the selection operators given by
--op and transform the selection with exactly one of --move, --rotate (Euler
degrees around X, Y and Z) or --scale. --extrude extrudes the selected faces
or boundary edges first. The result is written to --out as ASCII STL.`,
	Args: cobra.ExactArgs(1),
	Run:  runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformView.register(transformCmd)
	transformCmd.Flags().StringSliceVar(&transformOps, "op", nil, "Selection operators to apply before the transform")
	transformCmd.Flags().StringVar(&transformMove, "move", "", "Translation x,y,z")
	transformCmd.Flags().StringVar(&transformRotate, "rotate", "", "Rotation x,y,z in degrees")
	transformCmd.Flags().StringVar(&transformScale, "scale", "", "Scale factors x,y,z")
	transformCmd.Flags().StringVar(&transformAlignment, "alignment", "", "Handle alignment: world, local or plane")
	transformCmd.Flags().StringVar(&transformPivot, "pivot", "", "Handle position x,y,z used by plane alignment")
	transformCmd.Flags().BoolVar(&transformExtrude, "extrude", false, "Extrude the selection before moving it")
	transformCmd.Flags().StringVarP(&transformOut, "out", "o", "", "Output STL file")
}

func runTransform(cmd *cobra.Command, args []string) {
	if err := transformFile(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func transformFile(filename string) error {
	s, err := openSession([]string{filename}, &transformView)
	if err != nil {
		return err
	}
	if transformAlignment != "" {
		a, err := transform.ParseAlignment(transformAlignment)
		if err != nil {
			return err
		}
		s.SetAlignment(a)
	}
	if transformPivot != "" {
		p, err := parseVector(transformPivot)
		if err != nil {
			return err
		}
		s.SetHandlePosition(p)
	}

	s.Click(transformView.cursor(), selection.Modifiers{}, false)
	for _, op := range transformOps {
		if _, err := applyOperator(s, op, selectWeld); err != nil {
			return err
		}
	}

	step, tool, err := transformStep()
	if err != nil {
		return err
	}

	res := s.BeginTransform(tool, transformExtrude)
	if !res.Ok() {
		return fmt.Errorf("%s", res)
	}
	step(s)
	objects := s.FinishTransform()

	printSelection(s)
	if transformOut == "" {
		return nil
	}
	return writeObjects(transformOut, objects)
}

// transformStep returns the single gesture step requested by the flags
func transformStep() (func(*editor.Session), transform.Tool, error) {
	set := 0
	for _, f := range []string{transformMove, transformRotate, transformScale} {
		if f != "" {
			set++
		}
	}
	if set != 1 {
		return nil, 0, fmt.Errorf("exactly one of --move, --rotate or --scale is required")
	}

	switch {
	case transformMove != "":
		delta, err := parseVector(transformMove)
		if err != nil {
			return nil, 0, err
		}
		return func(s *editor.Session) {
			s.Move(delta, transform.MoveOptions{})
		}, transform.MoveTool, nil

	case transformRotate != "":
		euler, err := parseVector(transformRotate)
		if err != nil {
			return nil, 0, err
		}
		e := euler.Mul(math.Pi / 180)
		return func(s *editor.Session) {
			base := mgl64.QuatIdent()
			if g := s.Transform(); g != nil {
				base = g.HandleRotation()
			}
			q := mgl64.AnglesToQuat(e.X, e.Y, e.Z, mgl64.XYZ)
			s.Rotate(base.Mul(q))
		}, transform.RotateTool, nil

	default:
		factors, err := parseVector(transformScale)
		if err != nil {
			return nil, 0, err
		}
		return func(s *editor.Session) {
			s.Scale(factors)
		}, transform.ScaleTool, nil
	}
}

func writeObjects(filename string, objects []*mesh.Object) error {
	if len(objects) == 0 {
		return fmt.Errorf("nothing to write")
	}
	model := stl.NewModel(objects[0].Name)
	for _, o := range objects {
		for _, t := range stl.FromObject(o).Triangles {
			model.AddTriangle(t)
		}
	}
	if err := stl.Write(filename, model); err != nil {
		return err
	}
	fmt.Printf("Wrote %d triangles to %s\n", model.TriangleCount(), filename)
	return nil
}
