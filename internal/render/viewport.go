//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"starmesh/internal/scene"
)

const ambient = 0.25

var (
	backdropColor = color.RGBA{R: 22, G: 22, B: 28, A: 255}
	baseColor     = color.RGBA{R: 176, G: 180, B: 196, A: 255}
	selectedColor = color.RGBA{R: 232, G: 164, B: 96, A: 255}
)

// Viewport draws the scene's stars with painter-sorted flat shading. It
// caches projected triangles per object and reprojects only when the mesh
// version, camera, or output size changes, or after RequestRedraw.
type Viewport struct {
	camera Camera
	bounds image.Rectangle

	whiteImage *ebiten.Image
	whitePixel *ebiten.Image

	cache map[*scene.Object]*projCache
	dirty bool
}

type projCache struct {
	version uint64
	camera  Camera
	w, h    int
	tris    []ScreenTri
}

// NewViewport constructs a viewport with the default camera.
func NewViewport() *Viewport {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Viewport{
		camera:     DefaultCamera(),
		whiteImage: white,
		whitePixel: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		cache:      map[*scene.Object]*projCache{},
		dirty:      true,
	}
}

// SetBounds places the viewport in screen coordinates.
func (v *Viewport) SetBounds(r image.Rectangle) { v.bounds = r }

// Bounds returns the viewport's screen rectangle.
func (v *Viewport) Bounds() image.Rectangle { return v.bounds }

// Camera exposes the orbit camera for input handling.
func (v *Viewport) Camera() *Camera { return &v.camera }

// RequestRedraw drops all cached projections. Rebuilds invalidate per
// object through the mesh version; this is for everything else.
func (v *Viewport) RequestRedraw() { v.dirty = true }

// Draw paints the backdrop and every object, selected one highlighted.
func (v *Viewport) Draw(screen *ebiten.Image, sc *scene.Scene) {
	if v.dirty {
		v.cache = map[*scene.Object]*projCache{}
		v.dirty = false
	}
	v.prune(sc)
	v.fillRect(screen, v.bounds, backdropColor)

	selected := sc.Selected()
	for _, obj := range sc.Objects {
		col := baseColor
		if obj == selected {
			col = selectedColor
		}
		v.drawMesh(screen, v.project(obj), col)
	}
}

// Pick returns the index of the frontmost object under the screen point,
// or -1. Projections are tested near to far, so overlapping stars resolve
// to the visible one.
func (v *Viewport) Pick(x, y int, sc *scene.Scene) int {
	if !image.Pt(x, y).In(v.bounds) {
		return -1
	}
	px := float32(x - v.bounds.Min.X)
	py := float32(y - v.bounds.Min.Y)
	best := -1
	bestDepth := float32(2)
	for i, obj := range sc.Objects {
		tris := v.project(obj)
		for j := len(tris) - 1; j >= 0; j-- {
			if tris[j].Contains(px, py) {
				if tris[j].Depth < bestDepth {
					bestDepth = tris[j].Depth
					best = i
				}
				break
			}
		}
	}
	return best
}

func (v *Viewport) project(obj *scene.Object) []ScreenTri {
	w, h := v.bounds.Dx(), v.bounds.Dy()
	c, ok := v.cache[obj]
	if ok && c.version == obj.MeshVersion() && c.camera == v.camera && c.w == w && c.h == h {
		return c.tris
	}
	vp := v.camera.ViewProjection(w, h)
	tris := ProjectMesh(obj.Mesh, &vp, w, h)
	v.cache[obj] = &projCache{version: obj.MeshVersion(), camera: v.camera, w: w, h: h, tris: tris}
	return tris
}

func (v *Viewport) prune(sc *scene.Scene) {
	if len(v.cache) <= len(sc.Objects) {
		return
	}
	live := make(map[*scene.Object]bool, len(sc.Objects))
	for _, o := range sc.Objects {
		live[o] = true
	}
	for o := range v.cache {
		if !live[o] {
			delete(v.cache, o)
		}
	}
}

func (v *Viewport) drawMesh(dst *ebiten.Image, tris []ScreenTri, col color.RGBA) {
	if len(tris) == 0 {
		return
	}
	vs := make([]ebiten.Vertex, 0, len(tris)*3)
	is := make([]uint16, 0, len(tris)*3)
	ox := float32(v.bounds.Min.X)
	oy := float32(v.bounds.Min.Y)
	for _, tri := range tris {
		shade := ambient + (1-ambient)*tri.Shade
		r := float32(col.R) / 255 * shade
		g := float32(col.G) / 255 * shade
		b := float32(col.B) / 255 * shade
		base := uint16(len(vs))
		for i := 0; i < 3; i++ {
			vs = append(vs, ebiten.Vertex{
				DstX:   ox + tri.X[i],
				DstY:   oy + tri.Y[i],
				SrcX:   1,
				SrcY:   1,
				ColorR: r,
				ColorG: g,
				ColorB: b,
				ColorA: 1,
			})
		}
		is = append(is, base, base+1, base+2)
	}
	dst.DrawTriangles(vs, is, v.whitePixel, &ebiten.DrawTrianglesOptions{})
}

func (v *Viewport) fillRect(dst *ebiten.Image, r image.Rectangle, c color.RGBA) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorM.Scale(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
	dst.DrawImage(v.whitePixel, op)
}
