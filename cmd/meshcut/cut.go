package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/meshcut/internal/logger"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/meshio"
	"github.com/philipparndt/meshcut/pkg/slicer"
)

var (
	cutNormal  []float64
	cutPoint   []float64
	cutPoints  []float64
	cutScale   []float64
	cutOrigin  []float64
	cutOutDir  string
	cutFormat  string
	cutCapMode string
	cutWeld    float64
	cutNoCap   bool
)

var cutCmd = &cobra.Command{
	Use:   "cut [file]",
	Short: "Cut a mesh into two capped halves",
	Long: `Cut a mesh with a plane and write <name>_positive and <name>_negative.
The plane is given by a normal and a point on it, or by three points in
counter-clockwise order. --scale and --origin place the mesh in the space
of the plane.`,
	Example: `  meshcut cut part.stl --normal 0,0,1 --point 0,0,5
  meshcut cut part.obj --points 0,0,1,1,0,1,0,1,1 --format obj
  meshcut cut model.scad --normal 1,1,0 --cap-mode contour`,
	Args: cobra.ExactArgs(1),
	Run:  runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)
	addCutFlags(cutCmd)
}

// addCutFlags registers the flags shared by cut and watch
func addCutFlags(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&cutNormal, "normal", []float64{0, 0, 1}, "Plane normal x,y,z")
	cmd.Flags().Float64SliceVar(&cutPoint, "point", []float64{0, 0, 0}, "Point on the plane x,y,z")
	cmd.Flags().Float64SliceVar(&cutPoints, "points", nil, "Three points on the plane, 9 values")
	cmd.Flags().Float64SliceVar(&cutScale, "scale", []float64{1, 1, 1}, "Mesh scale x,y,z")
	cmd.Flags().Float64SliceVar(&cutOrigin, "origin", []float64{0, 0, 0}, "Mesh origin in plane space x,y,z")
	cmd.Flags().StringVarP(&cutOutDir, "out-dir", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVarP(&cutFormat, "format", "f", "", "Output format: stl or obj (default from config)")
	cmd.Flags().StringVar(&cutCapMode, "cap-mode", "", "Cap triangulation: fan or contour")
	cmd.Flags().Float64Var(&cutWeld, "weld", 0, "Merge output vertices closer than this")
	cmd.Flags().BoolVar(&cutNoCap, "no-cap", false, "Leave the cut faces open")

	cmd.MarkFlagsMutuallyExclusive("points", "normal")
	cmd.MarkFlagsMutuallyExclusive("points", "point")
}

// cutJob is a fully resolved cut request
type cutJob struct {
	plane     geometry.Plane
	transform geometry.Transform
	options   slicer.Options
	outDir    string
	format    string
	binary    bool
}

func newCutJob(cmd *cobra.Command) (*cutJob, error) {
	plane, err := planeFromFlags()
	if err != nil {
		return nil, err
	}

	scale, err := vectorFlag("scale", cutScale)
	if err != nil {
		return nil, err
	}
	origin, err := vectorFlag("origin", cutOrigin)
	if err != nil {
		return nil, err
	}
	xf, err := geometry.NewTransform(scale, origin)
	if err != nil {
		return nil, err
	}

	cutCfg := cfg.Cut
	if cmd.Flags().Changed("cap-mode") {
		cutCfg.CapMode = cutCapMode
	}
	if cmd.Flags().Changed("weld") {
		cutCfg.WeldTolerance = cutWeld
	}
	if cutNoCap {
		cutCfg.Cap = false
	}
	if _, err := slicer.ParseCapMode(cutCfg.CapMode); err != nil {
		return nil, err
	}
	if cutCfg.WeldTolerance < 0 {
		return nil, fmt.Errorf("weld tolerance must not be negative, got %g", cutCfg.WeldTolerance)
	}

	job := &cutJob{
		plane:     plane,
		transform: xf,
		options:   cutCfg.SlicerOptions(),
		outDir:    cfg.Output.Dir,
		format:    cfg.Output.Format,
		binary:    cfg.Output.Binary,
	}
	if cutOutDir != "" {
		job.outDir = cutOutDir
	}
	if cutFormat != "" {
		job.format = cutFormat
	}
	if job.format != "stl" && job.format != "obj" {
		return nil, fmt.Errorf("format must be stl or obj, got %q", job.format)
	}
	return job, nil
}

func planeFromFlags() (geometry.Plane, error) {
	if len(cutPoints) > 0 {
		if len(cutPoints) != 9 {
			return geometry.Plane{}, fmt.Errorf("--points needs 9 values, got %d", len(cutPoints))
		}
		return geometry.NewPlaneFromPoints(
			geometry.NewVector3(cutPoints[0], cutPoints[1], cutPoints[2]),
			geometry.NewVector3(cutPoints[3], cutPoints[4], cutPoints[5]),
			geometry.NewVector3(cutPoints[6], cutPoints[7], cutPoints[8]),
		)
	}

	normal, err := vectorFlag("normal", cutNormal)
	if err != nil {
		return geometry.Plane{}, err
	}
	point, err := vectorFlag("point", cutPoint)
	if err != nil {
		return geometry.Plane{}, err
	}
	return geometry.NewPlane(normal, point)
}

func vectorFlag(name string, values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("--%s needs 3 values, got %d", name, len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}

// run loads, cuts and saves one file. It returns the written paths, which
// are empty when the plane misses the mesh.
func (j *cutJob) run(ctx context.Context, filename string) ([]string, *slicer.Result, error) {
	src, err := meshio.NewLoader(logger.Log).Load(ctx, filename)
	if err != nil {
		return nil, nil, err
	}

	result, err := slicer.New(j.options, logger.Log).Cut(src, j.plane, j.transform)
	if err != nil {
		return nil, nil, fmt.Errorf("cutting %s: %w", filename, err)
	}
	if result.NoOp() {
		return nil, result, nil
	}

	var written []string
	for _, half := range []*mesh.Mesh{result.Positive, result.Negative} {
		// halves are named <source>_positive and <source>_negative
		path := filepath.Join(j.outDir, half.Name+"."+j.format)
		if err := meshio.Save(path, half, meshio.SaveOptions{BinarySTL: j.binary}); err != nil {
			return written, result, fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("wrote half", zap.String("file", path), zap.Int("triangles", half.TriangleCount()))
		written = append(written, path)
	}
	return written, result, nil
}

func runCut(cmd *cobra.Command, args []string) {
	filename := args[0]

	job, err := newCutJob(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	written, result, err := job.run(cmd.Context(), filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printResult(filename, written, result)
}

func printResult(filename string, written []string, result *slicer.Result) {
	if result.NoOp() {
		side := "negative"
		if result.Positive != nil {
			side = "positive"
		}
		fmt.Printf("%s: plane does not intersect the mesh, everything is on the %s side\n", filename, side)
		return
	}

	fmt.Printf("%s: split %d triangles, cap of %d points and %d triangles per side\n",
		filename, result.SplitTriangles, result.CapPoints, result.CapTriangles)
	if result.OpenContours > 0 {
		fmt.Printf("  warning: %d open contours left uncapped\n", result.OpenContours)
	}
	for _, path := range written {
		fmt.Printf("  %s\n", path)
	}
}
