package stl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// Write stores the model as an ASCII STL file
func Write(filename string, m *Model) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteASCII(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteASCII encodes the model as ASCII STL
func WriteASCII(w io.Writer, m *Model) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "solid %s\n", m.Name)
	for _, t := range m.Triangles {
		n := t.Normal
		if n.IsZero() {
			n = t.CalculateNormal()
		}
		fmt.Fprintf(out, "  facet normal %s\n", format(n))
		fmt.Fprintln(out, "    outer loop")
		for _, v := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(out, "      vertex %s\n", format(v))
		}
		fmt.Fprintln(out, "    endloop")
		fmt.Fprintln(out, "  endfacet")
	}
	fmt.Fprintf(out, "endsolid %s\n", m.Name)
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}

func format(v geometry.Vector3) string {
	return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)
}
