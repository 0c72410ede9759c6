package stargeom

import (
	"math"

	"goki.dev/mat32/v2"
)

// Bounds applied by Normalized and by the editing layer's clamps.
const (
	MinSpikes = 3
	MaxSpikes = 256

	// MinRadius is the floor for radii and the global scale.
	MinRadius = 1e-4

	// InnerCap keeps the inner radius strictly below the outer one.
	InnerCap = 0.999
)

// Params describes one star shape. The JSON field names are the persisted
// preset layout.
type Params struct {
	SpikeCount  int     `json:"spikeCount"`
	OuterRadius float64 `json:"outerRadius"`
	InnerRadius float64 `json:"innerRadius"`
	GlobalScale float64 `json:"globalScale"`
	Is3D        bool    `json:"is3D"`
	Thickness   float64 `json:"thickness"`
}

// Default returns the parameters a new star starts from.
func Default() Params {
	return Params{
		SpikeCount:  5,
		OuterRadius: 1.0,
		InnerRadius: 0.5,
		GlobalScale: 1.0,
		Is3D:        false,
		Thickness:   0.2,
	}
}

// Normalized clamps every field into its valid range. The inner radius is
// clamped against the already-clamped outer radius, so the result always
// satisfies innerRadius < outerRadius.
func (p Params) Normalized() Params {
	if p.SpikeCount < MinSpikes {
		p.SpikeCount = MinSpikes
	}
	if p.SpikeCount > MaxSpikes {
		p.SpikeCount = MaxSpikes
	}
	if p.OuterRadius < MinRadius {
		p.OuterRadius = MinRadius
	}
	if p.InnerRadius < MinRadius {
		p.InnerRadius = MinRadius
	}
	if hi := p.OuterRadius * InnerCap; p.InnerRadius > hi {
		p.InnerRadius = hi
	}
	if p.GlobalScale < MinRadius {
		p.GlobalScale = MinRadius
	}
	if p.Thickness < 0 {
		p.Thickness = 0
	}
	return p
}

// Build turns params into fresh mesh buffers. It is pure: identical params
// yield identical buffers and nothing outside the return value is touched.
//
// The ring holds 2×spikeCount vertices at angle i·π/spikeCount, outer radius
// at even i, in the XY plane, followed by the center vertex. A flat star is
// one triangle fan around the center. An extruded star duplicates the whole
// set at +thickness on Z and closes the side wall with two triangles per
// ring edge; cap windings keep all face normals pointing outward. The global
// scale multiplies every vertex as the final step.
func Build(p Params) MeshBuffers {
	n := p.SpikeCount
	ring := 2 * n

	vertCount := ring + 1
	faceCount := ring
	if p.Is3D {
		vertCount = 2 * (ring + 1)
		faceCount = 4 * ring
	}
	verts := make([]mat32.Vec3, 0, vertCount)
	indices := make([]uint32, 0, 3*faceCount)

	for i := 0; i < ring; i++ {
		r := p.OuterRadius
		if i%2 == 1 {
			r = p.InnerRadius
		}
		a := float64(i) * math.Pi / float64(n)
		verts = append(verts, mat32.V3(float32(r*math.Cos(a)), float32(r*math.Sin(a)), 0))
	}
	center := uint32(ring)
	verts = append(verts, mat32.V3(0, 0, 0))

	tri := func(a, b, c uint32) {
		indices = append(indices, a, b, c)
	}

	if !p.Is3D {
		for i := 0; i < ring; i++ {
			tri(center, uint32(i), uint32((i+1)%ring))
		}
	} else {
		base := uint32(ring) + 1
		z := float32(p.Thickness)
		for i := 0; i < ring; i++ {
			v := verts[i]
			verts = append(verts, mat32.V3(v.X, v.Y, z))
		}
		topCenter := base + uint32(ring)
		verts = append(verts, mat32.V3(0, 0, z))

		for i := 0; i < ring; i++ {
			j := (i + 1) % ring
			bi, bj := uint32(i), uint32(j)
			ti, tj := base+uint32(i), base+uint32(j)
			tri(center, bj, bi)    // bottom cap, -Z out
			tri(topCenter, ti, tj) // top cap, +Z out
			tri(bi, bj, tj)        // wall
			tri(bi, tj, ti)
		}
	}

	if p.GlobalScale != 1 {
		s := float32(p.GlobalScale)
		for i := range verts {
			verts[i] = verts[i].MulScalar(s)
		}
	}
	return MeshBuffers{Vertices: verts, Indices: indices}
}
