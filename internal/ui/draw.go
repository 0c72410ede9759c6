//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	padding        = 12
	headerBaseline = 18
	labelBaseline  = 24
	rowHeight      = 22
)

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	dialogBG    = color.RGBA{R: 24, G: 26, B: 34, A: 255}
	borderColor = color.RGBA{R: 70, G: 72, B: 82, A: 255}
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	buttonBG    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonBGOff = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonFG    = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonFGOff = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	selectBG    = color.RGBA{R: 66, G: 96, B: 158, A: 255}
	editBG      = color.RGBA{R: 30, G: 32, B: 40, A: 255}
	caretColor  = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	accentColor = color.RGBA{R: 232, G: 164, B: 96, A: 255}
)

func newPixel() *ebiten.Image {
	p := ebiten.NewImage(1, 1)
	p.Fill(color.White)
	return p
}

func fillRect(dst, pixel *ebiten.Image, rect image.Rectangle, col color.RGBA) {
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	dst.DrawImage(pixel, op)
}

func frameRect(dst, pixel *ebiten.Image, rect image.Rectangle, col color.RGBA) {
	fillRect(dst, pixel, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), col)
	fillRect(dst, pixel, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), col)
	fillRect(dst, pixel, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), col)
	fillRect(dst, pixel, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

func drawButton(dst, pixel *ebiten.Image, rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonBG, buttonFG
	if !enabled {
		bg, fg = buttonBGOff, buttonFGOff
	}
	fillRect(dst, pixel, rect, bg)
	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(dst, label, face, x, y, fg)
}

func textWidth(s string) int {
	return text.BoundString(basicfont.Face7x13, s).Dx()
}

func drawText(dst *ebiten.Image, s string, x, y int, col color.RGBA) {
	text.Draw(dst, s, basicfont.Face7x13, x, y, col)
}
