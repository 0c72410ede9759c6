//go:build !ebiten

package render

import (
	"image"

	"starmesh/internal/scene"
)

// Viewport is a no-op placeholder for headless builds.
type Viewport struct {
	camera Camera
	bounds image.Rectangle
}

// NewViewport constructs a stub viewport.
func NewViewport() *Viewport { return &Viewport{camera: DefaultCamera()} }

// SetBounds stores the rectangle in the headless build.
func (v *Viewport) SetBounds(r image.Rectangle) { v.bounds = r }

// Bounds returns the stored rectangle.
func (v *Viewport) Bounds() image.Rectangle { return v.bounds }

// Camera exposes the orbit camera.
func (v *Viewport) Camera() *Camera { return &v.camera }

// RequestRedraw is a no-op in the headless build.
func (v *Viewport) RequestRedraw() {}

// Draw is a no-op in the headless build.
func (v *Viewport) Draw(any, *scene.Scene) {}

// Pick reports nothing under the cursor in the headless build.
func (v *Viewport) Pick(int, int, *scene.Scene) int { return -1 }
