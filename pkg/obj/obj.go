// Package obj reads and writes Wavefront OBJ meshes with positions,
// normals and texture coordinates.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// corner is one v/vt/vn reference of a face, resolved to zero based indices
// with -1 for a missing attribute
type corner struct {
	v, vt, vn int
}

// Parse reads an OBJ file into a single mesh
func Parse(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader reads OBJ data. All groups and objects are merged; polygons
// are fan triangulated. Corners are deduplicated by their (v, vt, vn)
// triple, so every output vertex carries one normal and one uv.
func ParseReader(r io.Reader) (*mesh.Mesh, error) {
	var (
		positions []geometry.Vector3
		normals   []geometry.Vector3
		uvs       []geometry.Vector2
		corners   []corner
		faces     [][3]int
		hasNormal bool
		hasUV     bool
		name      string
	)
	index := make(map[corner]int)

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o":
			if name == "" && len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}

		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNumber, err)
			}
			positions = append(positions, geometry.NewVector3(v[0], v[1], v[2]))

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid normal: %w", lineNumber, err)
			}
			normals = append(normals, geometry.NewVector3(v[0], v[1], v[2]))

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid texture coordinate: %w", lineNumber, err)
			}
			uvs = append(uvs, geometry.NewVector2(v[0], v[1]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNumber)
			}
			polygon := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				c, err := parseCorner(ref, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				hasUV = hasUV || c.vt >= 0
				hasNormal = hasNormal || c.vn >= 0
				idx, ok := index[c]
				if !ok {
					idx = len(corners)
					index[c] = idx
					corners = append(corners, c)
				}
				polygon = append(polygon, idx)
			}
			for i := 1; i < len(polygon)-1; i++ {
				faces = append(faces, [3]int{polygon[0], polygon[i], polygon[i+1]})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	m := &mesh.Mesh{Name: name}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, positions[c.v])
		if hasNormal {
			var n geometry.Vector3
			if c.vn >= 0 {
				n = normals[c.vn]
			}
			m.Normals = append(m.Normals, n)
		}
		if hasUV {
			var uv geometry.Vector2
			if c.vt >= 0 {
				uv = uvs[c.vt]
			}
			m.UVs = append(m.UVs, uv)
		}
	}
	for _, f := range faces {
		m.Triangles = append(m.Triangles, f[0], f[1], f[2])
	}
	return m, nil
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn. Negative references count
// back from the last element defined so far.
func parseCorner(ref string, nv, nvt, nvn int) (corner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("invalid face vertex %q", ref)
	}

	c := corner{v: -1, vt: -1, vn: -1}
	targets := []*int{&c.v, &c.vt, &c.vn}
	counts := []int{nv, nvt, nvn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return corner{}, fmt.Errorf("face vertex %q has no position", ref)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return corner{}, fmt.Errorf("invalid face vertex %q: %w", ref, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return corner{}, fmt.Errorf("face vertex %q uses index 0", ref)
		}
		if n < 0 || n >= counts[i] {
			return corner{}, fmt.Errorf("face vertex %q out of range", ref)
		}
		*targets[i] = n
	}
	return c, nil
}

func parseFloats(fields []string, count int) ([]float64, error) {
	if len(fields) < count {
		return nil, fmt.Errorf("expected %d values, got %d", count, len(fields))
	}
	values := make([]float64, count)
	for i := range values {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Write saves the mesh to filename
func Write(filename string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteTo(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteTo writes the mesh as a single OBJ object. Attribute indices follow
// the vertex indices one to one.
func WriteTo(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %s %s\n", formatFloat(uv.X), formatFloat(uv.Y))
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
	}

	hasUV := len(m.UVs) > 0
	hasNormal := len(m.Normals) > 0
	for i := 0; i < m.TriangleCount(); i++ {
		bw.WriteString("f")
		for k := 0; k < 3; k++ {
			idx := m.Triangles[3*i+k] + 1
			switch {
			case hasUV && hasNormal:
				fmt.Fprintf(bw, " %d/%d/%d", idx, idx, idx)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", idx, idx)
			case hasNormal:
				fmt.Fprintf(bw, " %d//%d", idx, idx)
			default:
				fmt.Fprintf(bw, " %d", idx)
			}
		}
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing OBJ: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
