package obj

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

const quad = `# unit quad
o plate
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseQuad(t *testing.T) {
	m, err := ParseReader(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if m.Name != "plate" {
		t.Errorf("Name = %q, want plate", m.Name)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
	}
	if m.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", m.VertexCount())
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("parsed mesh invalid: %v", err)
	}
	if got := m.UV(2); got != geometry.NewVector2(1, 1) {
		t.Errorf("UV(2) = %v, want (1, 1)", got)
	}
	if got := m.Normal(3); got != geometry.NewVector3(0, 0, 1) {
		t.Errorf("Normal(3) = %v, want (0, 0, 1)", got)
	}
}

func TestParseFaceForms(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		triangles  int
		vertices   int
		hasNormals bool
		hasUVs     bool
	}{
		{"positions only", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", 1, 3, false, false},
		{"negative indices", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n", 1, 3, false, false},
		{"normals only", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n", 1, 3, true, false},
		{"shared corners", "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3\nf 2 4 3\n", 2, 4, false, false},
		{"split by uv", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 1\nf 1/1 2/1 3/1\nf 1/2 3/2 2/2\n", 2, 6, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseReader failed: %v", err)
			}
			if m.TriangleCount() != tt.triangles {
				t.Errorf("TriangleCount = %d, want %d", m.TriangleCount(), tt.triangles)
			}
			if m.VertexCount() != tt.vertices {
				t.Errorf("VertexCount = %d, want %d", m.VertexCount(), tt.vertices)
			}
			if (len(m.Normals) > 0) != tt.hasNormals {
				t.Errorf("normals present = %v, want %v", len(m.Normals) > 0, tt.hasNormals)
			}
			if (len(m.UVs) > 0) != tt.hasUVs {
				t.Errorf("uvs present = %v, want %v", len(m.UVs) > 0, tt.hasUVs)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"out of range", "v 0 0 0\nf 1 2 3\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad float", "v 0 x 0\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"missing position", "v 0 0 0\nvn 0 0 1\nf //1 //1 //1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseReader(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src := &mesh.Mesh{
		Name: "wedge",
		Vertices: []geometry.Vector3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0.25, Y: 0.5, Z: 1.125},
		},
		Normals: []geometry.Vector3{
			{Z: -1}, {Z: -1}, {Z: -1}, {Y: 1},
		},
		UVs: []geometry.Vector2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0.5, Y: 0.5},
		},
		Triangles: []int{0, 2, 1, 1, 2, 3},
	}

	var buf bytes.Buffer
	if err := WriteTo(&buf, src); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	got, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if got.Name != src.Name {
		t.Errorf("Name = %q, want %q", got.Name, src.Name)
	}
	if got.TriangleCount() != src.TriangleCount() {
		t.Fatalf("TriangleCount = %d, want %d", got.TriangleCount(), src.TriangleCount())
	}
	for i := range src.Triangles {
		a, b := got.Triangles[i], src.Triangles[i]
		if got.Vertices[a] != src.Vertices[b] || got.Normal(a) != src.Normal(b) || got.UV(a) != src.UV(b) {
			t.Errorf("corner %d differs: got %v %v %v", i, got.Vertices[a], got.Normal(a), got.UV(a))
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	src := &mesh.Mesh{
		Vertices:  []geometry.Vector3{{}, {X: 1}, {Y: 1}},
		Triangles: []int{0, 1, 2},
	}
	if err := Write(path, src); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.TriangleCount() != 1 || len(got.Normals) != 0 {
		t.Errorf("unexpected mesh: %d triangles, %d normals", got.TriangleCount(), len(got.Normals))
	}
}
