//go:build ebiten

package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"starmesh/internal/scene"
)

// Sidebar lists scene objects and stored presets, with a create button
// pinned to the bottom. Clicking an object selects it for editing;
// clicking a preset applies it to the selection.
type Sidebar struct {
	pixel  *ebiten.Image
	bounds image.Rectangle
}

// NewSidebar constructs the sidebar renderer.
func NewSidebar() *Sidebar {
	return &Sidebar{pixel: newPixel()}
}

// SetBounds places the sidebar in screen coordinates.
func (s *Sidebar) SetBounds(r image.Rectangle) { s.bounds = r }

// Bounds returns the sidebar's screen rectangle.
func (s *Sidebar) Bounds() image.Rectangle { return s.bounds }

type sidebarLayout struct {
	objectsHeader int
	presetsHeader int
	objectRows    []image.Rectangle
	presetRows    []image.Rectangle
	createRect    image.Rectangle
}

// layout computes row rectangles for the given list sizes. Rows that do
// not fit are dropped rather than drawn over the create button.
func (s *Sidebar) layout(objects, presets int) sidebarLayout {
	l := sidebarLayout{
		createRect: image.Rect(
			s.bounds.Min.X+padding,
			s.bounds.Max.Y-padding-26,
			s.bounds.Max.X-padding,
			s.bounds.Max.Y-padding,
		),
	}
	limit := l.createRect.Min.Y - 8

	l.objectsHeader = s.bounds.Min.Y + padding + headerBaseline
	y := l.objectsHeader + 8
	for i := 0; i < objects; i++ {
		r := image.Rect(s.bounds.Min.X+4, y, s.bounds.Max.X-4, y+rowHeight)
		if r.Max.Y > limit {
			break
		}
		l.objectRows = append(l.objectRows, r)
		y = r.Max.Y
	}

	l.presetsHeader = y + padding + headerBaseline
	y = l.presetsHeader + 8
	for i := 0; i < presets; i++ {
		r := image.Rect(s.bounds.Min.X+4, y, s.bounds.Max.X-4, y+rowHeight)
		if r.Max.Y > limit {
			break
		}
		l.presetRows = append(l.presetRows, r)
		y = r.Max.Y
	}
	return l
}

// Hit reports what the point lands on and the row index where relevant.
func (s *Sidebar) Hit(x, y, objects, presets int) (SidebarHit, int) {
	if !image.Pt(x, y).In(s.bounds) {
		return SidebarHitNone, -1
	}
	l := s.layout(objects, presets)
	if pointInRect(x, y, l.createRect) {
		return SidebarHitCreate, -1
	}
	for i, r := range l.objectRows {
		if pointInRect(x, y, r) {
			return SidebarHitObject, i
		}
	}
	for i, r := range l.presetRows {
		if pointInRect(x, y, r) {
			return SidebarHitPreset, i
		}
	}
	return SidebarHitNone, -1
}

// Draw paints the sidebar.
func (s *Sidebar) Draw(screen *ebiten.Image, sc *scene.Scene, presets []string) {
	if s.bounds.Dx() <= 0 {
		return
	}
	fillRect(screen, s.pixel, s.bounds, panelBG)
	l := s.layout(len(sc.Objects), len(presets))

	drawText(screen, "Objects", s.bounds.Min.X+padding, l.objectsHeader, headerColor)
	selected := sc.SelectedIndex()
	for i, r := range l.objectRows {
		if i == selected {
			fillRect(screen, s.pixel, r, selectBG)
		}
		name := truncate(sc.Objects[i].Name, (r.Dx()-8)/7)
		drawText(screen, name, r.Min.X+4, r.Min.Y+16, labelColor)
	}
	if len(sc.Objects) == 0 {
		drawText(screen, "(empty)", s.bounds.Min.X+padding, l.objectsHeader+24, dimColor)
	}

	drawText(screen, "Presets", s.bounds.Min.X+padding, l.presetsHeader, headerColor)
	for i, r := range l.presetRows {
		name := truncate(presets[i], (r.Dx()-8)/7)
		drawText(screen, name, r.Min.X+4, r.Min.Y+16, labelColor)
	}
	if len(presets) == 0 {
		drawText(screen, "(none)", s.bounds.Min.X+padding, l.presetsHeader+24, dimColor)
	}

	drawButton(screen, s.pixel, l.createRect, "+ New Star", true)
}

func truncate(s string, max int) string {
	if max < 3 || len(s) <= max {
		return s
	}
	return s[:max-2] + ".."
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
