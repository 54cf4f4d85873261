package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/meshio"
	"github.com/philipparndt/meshcut/pkg/primitive"
)

var (
	primSize   float64
	primHeight float64
	primRound  float64
	primCells  int
	primASCII  bool
)

var primitiveCmd = &cobra.Command{
	Use:   "primitive [shape] [output]",
	Short: "Write a test solid",
	Long: `Write a closed test solid to an STL or OBJ file.
Shapes: cube, octahedron, sphere, cylinder, box. Sphere, cylinder and the
rounded box are tessellated from signed distance functions.`,
	Example: `  meshcut primitive sphere sphere.stl --size 10 --cells 96`,
	Args:    cobra.ExactArgs(2),
	Run:     runPrimitive,
}

func init() {
	rootCmd.AddCommand(primitiveCmd)

	primitiveCmd.Flags().Float64VarP(&primSize, "size", "s", 1, "Edge length, or diameter for round shapes")
	primitiveCmd.Flags().Float64Var(&primHeight, "height", 0, "Cylinder height (default size)")
	primitiveCmd.Flags().Float64Var(&primRound, "round", 0.1, "Box corner radius as a fraction of size")
	primitiveCmd.Flags().IntVar(&primCells, "cells", primitive.DefaultCells, "Marching cubes cells along the longest axis")
	primitiveCmd.Flags().BoolVar(&primASCII, "ascii", false, "Write ASCII instead of binary STL")
}

func buildPrimitive(shape string) (*mesh.Mesh, error) {
	switch shape {
	case "cube":
		return primitive.Cube(primSize), nil
	case "octahedron":
		return primitive.Octahedron(primSize / 2), nil
	case "sphere":
		return primitive.Sphere(primSize/2, primCells)
	case "cylinder":
		height := primHeight
		if height == 0 {
			height = primSize
		}
		return primitive.Cylinder(height, primSize/2, primCells)
	case "box":
		size := geometry.NewVector3(primSize, primSize, primSize)
		return primitive.RoundedBox(size, primSize*primRound, primCells)
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

func runPrimitive(cmd *cobra.Command, args []string) {
	shape, output := args[0], args[1]

	m, err := buildPrimitive(shape)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := meshio.Save(output, m, meshio.SaveOptions{BinarySTL: !primASCII}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s: %d vertices, %d triangles\n", output, m.VertexCount(), m.TriangleCount())
}
