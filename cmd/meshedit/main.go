package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedit/version"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "meshedit",
	Short: "Select and transform mesh elements from the command line",
	Long: `meshedit loads STL files as editable meshes with welded vertices and quad
faces, picks vertices, edges or faces through a virtual camera, extends the
selection with grow, shrink, loop and ring operators and moves, rotates or
scales the selected elements.`,
	Version: version.GetFullVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		slog.Debug("starting", "command", cmd.Name(), "version", version.GetVersion(), "commit", version.GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every editing operation")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Preferences file (TOML)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
