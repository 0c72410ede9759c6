package render

import (
	"sort"

	"goki.dev/mat32/v2"

	"starmesh/pkg/stargeom"
)

// Camera orbits the world origin, Z up. Yaw and Pitch are radians, Dist is
// the eye distance from the target.
type Camera struct {
	Yaw   float32
	Pitch float32
	Dist  float32

	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

const (
	minDist  = 0.5
	maxDist  = 60
	maxPitch = mat32.Pi/2 - 0.02
)

// DefaultCamera frames the default star with some elevation.
func DefaultCamera() Camera {
	return Camera{Yaw: 0.65, Pitch: 0.5, Dist: 4, FOV: 40, Near: 0.1, Far: 200}
}

// Orbit turns the camera around the target. Pitch stays shy of the poles
// so the up vector never degenerates.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch += dpitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Zoom moves the eye along the view axis. Positive steps zoom in.
func (c *Camera) Zoom(steps float32) {
	c.Dist *= 1 - 0.1*steps
	if c.Dist < minDist {
		c.Dist = minDist
	}
	if c.Dist > maxDist {
		c.Dist = maxDist
	}
}

// Eye returns the camera position in world space.
func (c Camera) Eye() mat32.Vec3 {
	cp := mat32.Cos(c.Pitch)
	return mat32.V3(
		c.Dist*cp*mat32.Sin(c.Yaw),
		-c.Dist*cp*mat32.Cos(c.Yaw),
		c.Dist*mat32.Sin(c.Pitch),
	)
}

// ViewProjection builds the combined view and perspective matrix for the
// given output size.
func (c Camera) ViewProjection(width, height int) mat32.Mat4 {
	campos := c.Eye()
	target := mat32.V3(0, 0, 0)
	var lookq mat32.Quat
	lookq.SetFromRotationMatrix(mat32.NewLookAt(campos, target, mat32.V3(0, 0, 1)))
	var cview mat32.Mat4
	cview.SetTransform(campos, lookq, mat32.V3(1, 1, 1))
	view, _ := cview.Inverse()

	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	var prjn mat32.Mat4
	prjn.SetPerspective(c.FOV, aspect, c.Near, c.Far)

	var vp mat32.Mat4
	vp.MulMatrices(&prjn, view)
	return vp
}

// ScreenTri is one mesh triangle mapped to the screen: corner coordinates
// in pixels, mean depth for painter sorting, and a flat shade factor.
type ScreenTri struct {
	X     [3]float32
	Y     [3]float32
	Depth float32
	Shade float32
}

// lightDir is the fixed key light, normalized.
var lightDir = mat32.V3(0.45, -0.6, 0.66).Normal()

// ProjectMesh maps mesh triangles into screen space with double-sided flat
// shading, sorted far to near for painter's-algorithm drawing. Triangles
// fully outside the clip cube are dropped; degenerate ones too.
func ProjectMesh(mesh stargeom.MeshBuffers, vp *mat32.Mat4, width, height int) []ScreenTri {
	w := float32(width)
	h := float32(height)
	ndc := make([]mat32.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		ndc[i] = v.MulMat4(vp)
	}
	out := make([]ScreenTri, 0, mesh.TriangleCount())
	for t := 0; t < mesh.TriangleCount(); t++ {
		a, b, c := mesh.Triangle(t)
		pa, pb, pc := ndc[a], ndc[b], ndc[c]
		if outsideClip(pa) && outsideClip(pb) && outsideClip(pc) {
			continue
		}
		va, vb, vc := mesh.Vertices[a], mesh.Vertices[b], mesh.Vertices[c]
		n := vb.Sub(va).Cross(vc.Sub(va))
		if n == (mat32.Vec3{}) {
			continue
		}
		out = append(out, ScreenTri{
			X:     [3]float32{toScreenX(pa.X, w), toScreenX(pb.X, w), toScreenX(pc.X, w)},
			Y:     [3]float32{toScreenY(pa.Y, h), toScreenY(pb.Y, h), toScreenY(pc.Y, h)},
			Depth: (pa.Z + pb.Z + pc.Z) / 3,
			Shade: mat32.Abs(n.Normal().Dot(lightDir)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

// Contains reports whether the screen point lies inside the triangle.
func (t ScreenTri) Contains(x, y float32) bool {
	d1 := edgeSign(x, y, t.X[0], t.Y[0], t.X[1], t.Y[1])
	d2 := edgeSign(x, y, t.X[1], t.Y[1], t.X[2], t.Y[2])
	d3 := edgeSign(x, y, t.X[2], t.Y[2], t.X[0], t.Y[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(px, py, ax, ay, bx, by float32) float32 {
	return (px-bx)*(ay-by) - (ax-bx)*(py-by)
}

func toScreenX(x, w float32) float32 { return (x + 1) / 2 * w }
func toScreenY(y, h float32) float32 { return (1 - y) / 2 * h }

func outsideClip(p mat32.Vec3) bool {
	return p.Z < -1 || p.Z > 1 || p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1
}
