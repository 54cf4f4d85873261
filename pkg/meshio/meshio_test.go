package meshio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/philipparndt/meshcut/pkg/primitive"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cube := primitive.Cube(2)

	tests := []struct {
		name string
		file string
		opts SaveOptions
	}{
		{"binary stl", "cube.stl", SaveOptions{BinarySTL: true}},
		{"ascii stl", "cube_ascii.stl", SaveOptions{}},
		{"obj", "cube.obj", SaveOptions{}},
	}

	loader := NewLoader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := Save(path, cube, tt.opts); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			m, err := loader.Load(context.Background(), path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if m.TriangleCount() != cube.TriangleCount() {
				t.Errorf("TriangleCount = %d, want %d", m.TriangleCount(), cube.TriangleCount())
			}
			if m.Name != BaseName(tt.file) {
				t.Errorf("Name = %q, want %q", m.Name, BaseName(tt.file))
			}
			if size := m.BoundingBox().Size(); !size.ApproxEqual(cube.BoundingBox().Size(), 1e-6) {
				t.Errorf("bounding box size = %v, want %v", size, cube.BoundingBox().Size())
			}
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.ply")
	if err := Save(path, primitive.Cube(1), SaveOptions{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save: expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := NewLoader(nil).Load(context.Background(), path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load: expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDependenciesOfPlainMesh(t *testing.T) {
	deps, err := NewLoader(nil).Dependencies("part.stl")
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	if len(deps) != 1 || deps[0] != "part.stl" {
		t.Errorf("expected only the file itself, got %v", deps)
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"/tmp/models/bracket.stl": "bracket",
		"part.v2.obj":             "part.v2",
		"noext":                   "noext",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}
