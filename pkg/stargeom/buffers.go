package stargeom

import "goki.dev/mat32/v2"

// MeshBuffers is the geometry output: vertex positions plus a flat triangle
// index list, three indices per face. Buffers are regenerated wholesale on
// every build; consumers treat them as immutable.
type MeshBuffers struct {
	Vertices []mat32.Vec3
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m MeshBuffers) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangular faces.
func (m MeshBuffers) TriangleCount() int { return len(m.Indices) / 3 }

// Triangle returns the three vertex indices of face i.
func (m MeshBuffers) Triangle(i int) (a, b, c uint32) {
	return m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]
}
