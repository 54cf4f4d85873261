// Package meshio loads and saves meshes by file extension.
package meshio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/obj"
	"github.com/philipparndt/meshcut/pkg/openscad"
	"github.com/philipparndt/meshcut/pkg/stl"
)

// ErrUnsupportedFormat is returned for file extensions meshio cannot handle
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Loader reads meshes from disk. OpenSCAD sources are rendered to a
// temporary STL first.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a Loader. A nil logger disables logging.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load reads the mesh stored at path. The mesh is named after the file.
func (l *Loader) Load(ctx context.Context, path string) (*mesh.Mesh, error) {
	var (
		m   *mesh.Mesh
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		m, err = loadSTL(path)
	case ".obj":
		m, err = obj.Parse(path)
	case ".scad":
		m, err = l.loadSCAD(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	m.Name = BaseName(path)
	l.log.Debug("loaded mesh",
		zap.String("file", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))
	return m, nil
}

// Dependencies returns the files whose changes affect the mesh at path:
// the file itself, plus every use/include of an OpenSCAD source.
func (l *Loader) Dependencies(path string) ([]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".scad" {
		return []string{path}, nil
	}
	return openscad.NewRenderer(filepath.Dir(path), l.log).ResolveDependencies(path)
}

func loadSTL(path string) (*mesh.Mesh, error) {
	model, err := stl.Parse(path)
	if err != nil {
		return nil, err
	}
	return model.ToMesh(), nil
}

func (l *Loader) loadSCAD(ctx context.Context, path string) (*mesh.Mesh, error) {
	tmpDir, err := os.MkdirTemp("", "meshcut-scad-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	out := filepath.Join(tmpDir, BaseName(path)+".stl")
	if err := openscad.NewRenderer(filepath.Dir(absPath), l.log).RenderToSTL(ctx, absPath, out); err != nil {
		return nil, err
	}
	return loadSTL(out)
}

// SaveOptions controls the output encoding
type SaveOptions struct {
	// BinarySTL selects binary over ASCII STL
	BinarySTL bool
}

// Save writes m to path, choosing the format from the extension
func Save(path string, m *mesh.Mesh, opts SaveOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return stl.Write(path, stl.FromMesh(m), opts.BinarySTL)
	case ".obj":
		return obj.Write(path, m)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// BaseName returns the file name without directory and extension
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
