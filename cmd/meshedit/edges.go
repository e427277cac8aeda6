package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedit/pkg/analysis"
	"github.com/philipparndt/meshedit/pkg/stl"
)

var (
	edgesCount     int
	edgesLongest   bool
	edgesBoundary  bool
	edgesSeams     bool
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "List the welded edges of a mesh",
	Long:  "List universal edges, longest first, on the boundary or UV seams only, or within a length range.",
	Args:  cobra.ExactArgs(1),
	Run:   runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesBoundary, "boundary", "b", false, "Show boundary edges only")
	edgesCmd.Flags().BoolVar(&edgesSeams, "seams", false, "Show UV seam edges only")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
}

func runEdges(cmd *cobra.Command, args []string) {
	objects, err := loadObjects(args, stl.WeldEpsilon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	result := analysis.AnalyzeObject(objects[0])

	var edges []analysis.EdgeInfo
	var title string
	switch {
	case edgesLongest:
		edges = analysis.FindLongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesBoundary:
		for _, e := range result.AllEdges {
			if e.Faces == 1 {
				edges = append(edges, e)
			}
		}
		title = fmt.Sprintf("Boundary Edges (found %d)", len(edges))
	case edgesSeams:
		for _, e := range result.AllEdges {
			if e.Seam {
				edges = append(edges, e)
			}
		}
		title = fmt.Sprintf("Seam Edges (found %d)", len(edges))
	case edgesMaxLength > 0:
		edges = analysis.FindEdgesByLength(result, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
	default:
		edges = result.AllEdges
		title = fmt.Sprintf("All Edges (showing first %d of %d)", min(edgesCount, len(edges)), len(edges))
	}
	if len(edges) > edgesCount {
		edges = edges[:edgesCount]
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total edges in mesh: %d\n\n", result.EdgeCount)

	if len(edges) == 0 {
		fmt.Println("No edges found matching the criteria.")
		return
	}
	fmt.Printf("%-10s %-35s %-35s %-12s %s\n", "Edge", "Start", "End", "Length", "Faces")
	for _, edge := range edges {
		fmt.Printf("%-10s %-35s %-35s %-12.6f %d\n",
			edge.Edge,
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length,
			edge.Faces)
	}
}
