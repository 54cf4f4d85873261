package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

// Write saves the model to filename in the binary or ASCII format
func Write(filename string, model *Model, asBinary bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if asBinary {
		err = WriteBinary(file, model)
	} else {
		err = WriteASCII(file, model)
	}
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteASCII writes the model as an ASCII STL solid
func WriteASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", model.Name)
	for _, t := range model.Triangles {
		fmt.Fprintf(bw, "  facet normal %s\n", formatASCII(t.Normal))
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %s\n", formatASCII(v))
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", model.Name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary writes the model in the little endian binary format. The
// name goes into the 80 byte header, prefixed so readers do not mistake
// the file for ASCII.
func WriteBinary(w io.Writer, model *Model) error {
	if len(model.Triangles) > math.MaxUint32 {
		return fmt.Errorf("too many triangles for binary STL: %d", len(model.Triangles))
	}
	bw := bufio.NewWriter(w)

	header := make([]byte, 80)
	copy(header, "binary "+model.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	var record [50]byte
	for i, t := range model.Triangles {
		offset := 0
		for _, v := range [4]geometry.Vector3{t.Normal, t.V1, t.V2, t.V3} {
			for _, c := range [3]float64{v.X, v.Y, v.Z} {
				binary.LittleEndian.PutUint32(record[offset:], math.Float32bits(float32(c)))
				offset += 4
			}
		}
		// attribute byte count stays zero
		if _, err := bw.Write(record[:]); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing binary STL: %w", err)
	}
	return nil
}

func formatASCII(v geometry.Vector3) string {
	return fmt.Sprintf("%e %e %e", v.X, v.Y, v.Z)
}
