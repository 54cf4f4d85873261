// Package slicer cuts an indexed triangle mesh with a plane into two
// sub-meshes and seals the exposed cross-section of each with a cap.
//
// A cut classifies every vertex as above, below or on the plane, within
// Options.Epsilon. Triangles without corners on both sides pass through
// unchanged; triangles straddling the plane are split into triangles routed
// to their sides, three when two edges cross or two when the plane runs
// through a corner. The cut points are collected and triangulated into a
// cap for each side, facing away from the remaining material.
package slicer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// Result holds the two halves of a cut. When the plane misses the mesh
// the half holding the material is the untouched source mesh and the other
// one is nil.
type Result struct {
	Positive *mesh.Mesh
	Negative *mesh.Mesh

	// SplitTriangles counts source triangles that straddled the plane
	SplitTriangles int
	// CapPoints counts unique intersection points on the cut face
	CapPoints int
	// CapTriangles counts cap triangles on each side
	CapTriangles int
	// OpenContours counts cut segment chains that could not be closed in
	// contour cap mode
	OpenContours int
}

// NoOp reports whether the plane left the mesh in one piece, with every
// triangle on one side. A disconnected mesh with parts on both sides is not
// a no-op even when no triangle straddles the plane: it yields two halves
// whose caps are empty.
func (r *Result) NoOp() bool {
	return r.Positive == nil || r.Negative == nil
}

// Slicer performs plane cuts with fixed options. It keeps no state between
// cuts and is safe for concurrent use.
type Slicer struct {
	opts Options
	log  *zap.Logger
}

// New creates a Slicer. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Slicer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Slicer{opts: opts, log: log}
}

// Cut slices src with a plane given in plane space; xf maps src's local
// coordinates into that space. src is never modified.
func Cut(src *mesh.Mesh, plane geometry.Plane, xf geometry.Transform) (*Result, error) {
	return New(DefaultOptions(), nil).Cut(src, plane, xf)
}

// Cut slices src with plane. See the package documentation for the
// algorithm.
func (s *Slicer) Cut(src *mesh.Mesh, plane geometry.Plane, xf geometry.Transform) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil mesh", mesh.ErrInvalidMesh)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if plane.Normal == (geometry.Vector3{}) {
		return nil, fmt.Errorf("%w: zero normal", geometry.ErrDegeneratePlane)
	}

	eps := s.opts.epsilon()
	state := newCutState(plane, s.opts.WeldTolerance)
	state.mirrored = xf.Mirrors()
	world := make([]geometry.Vector3, len(src.Vertices))
	for i, v := range src.Vertices {
		world[i] = xf.ToPlaneSpace(v)
	}

	for t := 0; t < src.TriangleCount(); t++ {
		var tri [3]Vertex
		for k := 0; k < 3; k++ {
			idx := src.Triangles[3*t+k]
			tri[k] = Vertex{
				Position: world[idx],
				Normal:   src.Normal(idx),
				UV:       src.UV(idx),
				Side:     plane.Classify(world[idx], eps),
			}
		}
		a, b, c := src.Triangle(t)
		if err := state.addTriangle(t, tri, geometry.FaceNormal(a, b, c)); err != nil {
			s.log.Warn("cut aborted", zap.String("mesh", src.Name), zap.Error(err))
			return nil, err
		}
	}

	state.closeTouchingEdges()

	result := &Result{
		SplitTriangles: state.split,
		CapPoints:      len(state.points),
	}

	if state.positive.triangleCount() == 0 || state.negative.triangleCount() == 0 {
		if state.positive.triangleCount() > 0 {
			result.Positive = src
		} else {
			result.Negative = src
		}
		s.log.Debug("plane misses mesh",
			zap.String("mesh", src.Name),
			zap.Int("triangles", src.TriangleCount()),
			zap.Bool("positive", result.Positive != nil))
		return result, nil
	}

	result.Positive = state.positive.toMesh(xf)
	result.Negative = state.negative.toMesh(xf)
	result.Positive.Name = sideName(src.Name, "positive")
	result.Negative.Name = sideName(src.Name, "negative")

	if s.opts.Cap {
		// The positive half's cut face looks back along the normal
		positiveCaps, open := s.assemble(state, plane.Normal.Neg())
		negativeCaps, _ := s.assemble(state, plane.Normal)
		result.OpenContours = open

		positiveCap := capMesh(positiveCaps, plane, xf)
		result.CapTriangles = positiveCap.TriangleCount()
		result.Positive.Append(positiveCap)
		result.Negative.Append(capMesh(negativeCaps, plane, xf))
	}

	s.log.Debug("cut mesh",
		zap.String("mesh", src.Name),
		zap.Int("triangles", src.TriangleCount()),
		zap.Int("split", result.SplitTriangles),
		zap.Int("capPoints", result.CapPoints),
		zap.Int("capTriangles", result.CapTriangles),
		zap.Int("positiveTriangles", result.Positive.TriangleCount()),
		zap.Int("negativeTriangles", result.Negative.TriangleCount()))
	if result.OpenContours > 0 {
		s.log.Warn("cut face has open contours",
			zap.String("mesh", src.Name),
			zap.Int("open", result.OpenContours))
	}
	return result, nil
}

func (s *Slicer) assemble(state *cutState, normal geometry.Vector3) ([]capPolygon, int) {
	eps := s.opts.epsilon()
	switch s.opts.CapMode {
	case CapContour:
		return contourCap(state.segments, normal, eps)
	default:
		return fanCap(state.points, normal, eps), 0
	}
}

func sideName(name, side string) string {
	if name == "" {
		return side
	}
	return name + "_" + side
}
