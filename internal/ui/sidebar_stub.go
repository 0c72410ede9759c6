//go:build !ebiten

package ui

import (
	"image"

	"starmesh/internal/scene"
)

// Sidebar is a no-op placeholder for headless builds.
type Sidebar struct {
	bounds image.Rectangle
}

// NewSidebar constructs a stub sidebar.
func NewSidebar() *Sidebar { return &Sidebar{} }

// SetBounds stores the rectangle in the headless build.
func (s *Sidebar) SetBounds(r image.Rectangle) { s.bounds = r }

// Bounds returns the stored rectangle.
func (s *Sidebar) Bounds() image.Rectangle { return s.bounds }

// Hit reports nothing in the headless build.
func (s *Sidebar) Hit(int, int, int, int) (SidebarHit, int) { return SidebarHitNone, -1 }

// Draw is a no-op in the headless build.
func (s *Sidebar) Draw(any, *scene.Scene, []string) {}
