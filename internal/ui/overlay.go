//go:build ebiten

package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const helpLine = "N new star  F2 save preset  S save scene  Del remove  Tab sidebar  LMB-drag orbit  wheel zoom  Q quit"

// Overlay draws the status bar along the bottom edge: scene stats on the
// left, key hints on the right. F1 expands the hints to the full listing.
type Overlay struct {
	pixel    *ebiten.Image
	showHelp bool
}

// NewOverlay constructs the status bar.
func NewOverlay() *Overlay {
	return &Overlay{pixel: newPixel()}
}

// Update toggles the expanded help line.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the bar onto the bottom of the screen.
func (o *Overlay) Draw(screen *ebiten.Image, status string) {
	sb := screen.Bounds()
	bar := image.Rect(sb.Min.X, sb.Max.Y-OverlayHeight, sb.Max.X, sb.Max.Y)
	fillRect(screen, o.pixel, bar, panelBG)
	fillRect(screen, o.pixel, image.Rect(bar.Min.X, bar.Min.Y, bar.Max.X, bar.Min.Y+1), borderColor)

	baseline := bar.Min.Y + 15
	drawText(screen, status, bar.Min.X+padding, baseline, dimColor)

	hint := "F1 help"
	if o.showHelp {
		hint = helpLine
	}
	drawText(screen, hint, bar.Max.X-padding-textWidth(hint), baseline, dimColor)
}
