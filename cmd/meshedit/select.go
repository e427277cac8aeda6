package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedit/pkg/action"
	"github.com/philipparndt/meshedit/pkg/analysis"
	"github.com/philipparndt/meshedit/pkg/editor"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/selection"
)

var (
	pickView   viewFlags
	selectView viewFlags
	selectOps  []string
	selectDrag string
	selectWeld float64
	selectFit  bool
	selectDbl  bool
	selectMods selection.Modifiers
)

var pickCmd = &cobra.Command{
	Use:   "pick [file]...",
	Short: "Show the element under the cursor",
	Long:  "Resolve the vertex, edge or face under the cursor of a virtual camera and print it.",
	Args:  cobra.MinimumNArgs(1),
	Run:   runPick,
}

var selectCmd = &cobra.Command{
	Use:   "select [file]...",
	Short: "Select elements and apply selection operators",
	Long: `Click the element under the cursor, or drag a rectangle with --drag, then apply
the operators given by --op in order: grow, shrink, invert, loop, ring,
loop-step, ring-step, ring-loop, hole and weld. --double-click extends the
clicked element the way a double click does.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSelect,
}

func init() {
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(selectCmd)

	pickView.register(pickCmd)
	selectView.register(selectCmd)
	selectCmd.Flags().StringSliceVar(&selectOps, "op", nil, "Operators to apply, comma separated")
	selectCmd.Flags().StringVar(&selectDrag, "drag", "", "Rectangle x1,y1,x2,y2 in pixels instead of a click")
	selectCmd.Flags().Float64Var(&selectWeld, "weld-distance", 0.01, "Distance for the weld operator")
	selectCmd.Flags().BoolVar(&selectFit, "fit-circle", false, "Fit a circle through the selected vertices")
	selectCmd.Flags().BoolVar(&selectDbl, "double-click", false, "Double click instead of a single click")
	selectCmd.Flags().BoolVar(&selectMods.Shift, "shift", false, "Hold Shift while clicking")
	selectCmd.Flags().BoolVar(&selectMods.Control, "control", false, "Hold Control while clicking")
}

func runPick(cmd *cobra.Command, args []string) {
	s, err := openSession(args, &pickView)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !s.Click(pickView.cursor(), selection.Modifiers{}, false) {
		fmt.Println("Nothing under the cursor.")
		return
	}
	printSelection(s)
}

func runSelect(cmd *cobra.Command, args []string) {
	s, err := openSession(args, &selectView)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if selectDrag != "" {
		rect, err := parseRect(selectDrag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		s.DragSelect(rect, selectMods)
	} else if selectDbl {
		fmt.Printf("%-10s %s\n", "double", s.DoubleClick(selectView.cursor(), selectMods))
	} else {
		s.Click(selectView.cursor(), selectMods, false)
	}

	for _, op := range selectOps {
		res, err := applyOperator(s, op, selectWeld)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-10s %s\n", op, res)
	}
	printSelection(s)

	if selectFit {
		fit, err := analysis.FitSelectionCircle(s.Selection().Sets())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Circle: center %s, radius %.6f, deviation %.6f\n",
			analysis.FormatVector(fit.Center), fit.Radius, fit.StdDev)
	}
}

// applyOperator runs a named selection operator
func applyOperator(s *editor.Session, op string, weld float64) (action.Result, error) {
	switch strings.ToLower(strings.TrimSpace(op)) {
	case "grow":
		return s.Grow(), nil
	case "shrink":
		return s.Shrink(), nil
	case "invert":
		return s.Invert(), nil
	case "loop":
		return s.Loop(false), nil
	case "loop-step":
		return s.Loop(true), nil
	case "ring":
		return s.Ring(false), nil
	case "ring-step":
		return s.Ring(true), nil
	case "ring-loop":
		return s.RingAndLoop(), nil
	case "hole":
		return s.SelectHole(), nil
	case "weld":
		return s.Weld(weld), nil
	}
	return action.Result{}, fmt.Errorf("unknown operator: %s", op)
}

// parseRect reads "x1,y1,x2,y2"
func parseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("expected x1,y1,x2,y2, got %q", s)
	}
	var c [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		c[i] = f
	}
	return geometry.NewRect(geometry.NewVector2(c[0], c[1]), geometry.NewVector2(c[2], c[3])), nil
}
