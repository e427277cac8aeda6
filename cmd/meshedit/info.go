package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedit/pkg/analysis"
	"github.com/philipparndt/meshedit/pkg/stl"
	"github.com/philipparndt/meshedit/pkg/watcher"
)

var (
	infoWatch bool
	infoWeld  float64
)

var infoCmd = &cobra.Command{
	Use:   "info [file]...",
	Short: "Display mesh statistics of STL files",
	Long: `Show faces, quads, welded vertices, universal edges, boundary edges,
surface area, bounds and edge lengths of every file. With --watch the
statistics are printed again whenever a file changes.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&infoWatch, "watch", "w", false, "Reprint when a file changes")
	infoCmd.Flags().Float64Var(&infoWeld, "weld", stl.WeldEpsilon, "Distance under which imported positions are welded")
}

func runInfo(cmd *cobra.Command, args []string) {
	for _, file := range args {
		if err := printInfo(file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if !infoWatch {
				os.Exit(1)
			}
		}
	}
	if !infoWatch {
		return
	}

	fw, err := watcher.NewFileWatcher(200*time.Millisecond, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	err = fw.Watch(args, func(path string) {
		if err := printInfo(path); err != nil {
			slog.Error("failed to reload", "path", path, "err", err)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	slog.Info("watching for changes", "files", len(args))
	fw.Run(ctx)
}

func printInfo(filename string) error {
	objects, err := loadObjects([]string{filename}, infoWeld)
	if err != nil {
		return err
	}
	o := objects[0]
	result := analysis.AnalyzeObject(o)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	fmt.Printf("Name: %s\n", o.Name)
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Topology:")
	fmt.Printf("  Faces: %d (%d quads)\n", result.FaceCount, result.QuadCount)
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Vertices: %d (%d slots)\n", result.VertexCount, result.SlotCount)
	fmt.Printf("  Edges: %d (%d boundary, %d seams)\n", result.EdgeCount, result.BoundaryEdges, result.SeamEdges)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Size: %s\n\n", analysis.FormatVector(result.Dimensions))

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)
	return nil
}
