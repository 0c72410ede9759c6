package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"starmesh/internal/scene"
	"starmesh/pkg/stargeom"
)

// WriteScene writes every object in the scene into one Wavefront OBJ
// stream, each as its own named object block. Face indices are 1-based
// and keep counting across blocks, per the format.
func WriteScene(w io.Writer, sc *scene.Scene) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# starmesh scene export"); err != nil {
		return err
	}
	offset := 1
	for _, obj := range sc.Objects {
		var err error
		offset, err = writeObject(bw, obj.Name, obj.Mesh, offset)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteObject writes a single star as an OBJ object block.
func WriteObject(w io.Writer, obj *scene.Object) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# starmesh object export"); err != nil {
		return err
	}
	if _, err := writeObject(bw, obj.Name, obj.Mesh, 1); err != nil {
		return err
	}
	return bw.Flush()
}

func writeObject(w io.Writer, name string, mesh stargeom.MeshBuffers, offset int) (int, error) {
	// OBJ object names cannot carry whitespace.
	if _, err := fmt.Fprintf(w, "o %s\n", strings.Join(strings.Fields(name), "_")); err != nil {
		return offset, err
	}
	for _, v := range mesh.Vertices {
		if _, err := fmt.Fprintf(w, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z); err != nil {
			return offset, err
		}
	}
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		if _, err := fmt.Fprintf(w, "f %d %d %d\n", int(a)+offset, int(b)+offset, int(c)+offset); err != nil {
			return offset, err
		}
	}
	return offset + mesh.VertexCount(), nil
}
