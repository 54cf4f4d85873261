package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshcut/internal/logger"
	"github.com/philipparndt/meshcut/pkg/analysis"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/meshio"
)

var (
	measureFrom []float64
	measureTo   []float64
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points and report
the nearest mesh vertex to each. Useful for picking a --point for cut.`,
	Args: cobra.ExactArgs(1),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64SliceVar(&measureFrom, "from", nil, "First point as x,y,z")
	measureCmd.Flags().Float64SliceVar(&measureTo, "to", nil, "Second point as x,y,z")

	_ = measureCmd.MarkFlagRequired("from")
	_ = measureCmd.MarkFlagRequired("to")
}

func runMeasure(cmd *cobra.Command, args []string) {
	filename := args[0]

	p1, err := vectorFlag("from", measureFrom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p2, err := vectorFlag("to", measureTo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := meshio.NewLoader(logger.Log).Load(cmd.Context(), filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")

	nearest1, dist1 := analysis.FindNearestVertex(m, p1)
	nearest2, dist2 := analysis.FindNearestVertex(m, p2)

	printPoint("Point 1", p1, nearest1, dist1)
	printPoint("Point 2", p2, nearest2, dist2)

	fmt.Printf("\nDirect distance: %.6f units\n", p1.Distance(p2))
	if dist1 > 0 || dist2 > 0 {
		fmt.Printf("Distance between nearest vertices: %.6f units\n", nearest1.Distance(nearest2))
	}
}

func printPoint(label string, p, nearest geometry.Vector3, dist float64) {
	fmt.Printf("\n%s: %s\n", label, analysis.FormatVector(p))
	if dist > 0 {
		fmt.Printf("  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(nearest), dist)
	}
}
