//go:build ebiten

package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"starmesh/internal/panel"
)

// PanelView renders an edit panel into its screen bounds.
type PanelView struct {
	pixel *ebiten.Image
}

// NewPanelView constructs the renderer.
func NewPanelView() *PanelView {
	return &PanelView{pixel: newPixel()}
}

// Draw paints the panel background, header, control rows, hint line, and
// the save dialog when it is up.
func (v *PanelView) Draw(screen *ebiten.Image, p *panel.EditPanel) {
	b := p.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return
	}
	fillRect(screen, v.pixel, b, panelBG)
	drawText(screen, "Edit "+p.Title(), b.Min.X+padding, b.Min.Y+padding+headerBaseline, accentColor)

	rows := p.Rows()
	for _, row := range rows {
		drawControlRow(screen, v.pixel, b.Min, row)
	}
	save, closeBtn := p.Buttons()
	drawButton(screen, v.pixel, save.Add(b.Min), "Save Preset", true)
	drawButton(screen, v.pixel, closeBtn.Add(b.Min), "Close", true)
	hintY := b.Min.Y + closeBtn.Max.Y + labelBaseline
	drawText(screen, "F2 preset  S scene", b.Min.X+padding, hintY, dimColor)

	if d := p.Dialog(); d.Open {
		v.drawDialog(screen, d)
	}
}

func drawControlRow(screen, pixel *ebiten.Image, origin image.Point, row panel.RowView) {
	baseline := origin.Y + row.Top + labelBaseline
	drawText(screen, row.Label, origin.X+padding, baseline, labelColor)

	valueRect := row.ValueRect.Add(origin)
	editing := row.Mode == panel.ModeAllSelected || row.Mode == panel.ModeCursorEdit
	switch row.Mode {
	case panel.ModeAllSelected:
		fillRect(screen, pixel, valueRect, selectBG)
	case panel.ModeCursorEdit:
		fillRect(screen, pixel, valueRect, editBG)
		frameRect(screen, pixel, valueRect, borderColor)
	case panel.ModeDragging:
		frameRect(screen, pixel, valueRect, borderColor)
	}

	valueX := valueRect.Max.X - panel.ValueTextInset - textWidth(row.Value)
	if editing {
		valueX = valueRect.Min.X + panel.ValueTextInset
	}
	drawText(screen, row.Value, valueX, baseline, labelColor)

	if row.Mode == panel.ModeCursorEdit {
		caretX := valueX + textWidth(string([]rune(row.Value)[:row.Cursor]))
		fillRect(screen, pixel, image.Rect(caretX, valueRect.Min.Y+3, caretX+1, valueRect.Max.Y-3), caretColor)
	}

	drawButton(screen, pixel, row.DecRect.Add(origin), "<", row.CanDec)
	drawButton(screen, pixel, row.IncRect.Add(origin), ">", row.CanInc)
}

func (v *PanelView) drawDialog(screen *ebiten.Image, d panel.DialogView) {
	sb := screen.Bounds()
	w, h := 280, 96
	box := image.Rect(
		sb.Min.X+(sb.Dx()-w)/2,
		sb.Min.Y+(sb.Dy()-h)/2,
		sb.Min.X+(sb.Dx()+w)/2,
		sb.Min.Y+(sb.Dy()+h)/2,
	)
	fillRect(screen, v.pixel, box, dialogBG)
	frameRect(screen, v.pixel, box, borderColor)
	drawText(screen, "Save Preset", box.Min.X+padding, box.Min.Y+padding+headerBaseline, headerColor)

	field := image.Rect(box.Min.X+padding, box.Min.Y+40, box.Max.X-padding, box.Min.Y+64)
	if d.Selected {
		fillRect(screen, v.pixel, field, selectBG)
	} else {
		fillRect(screen, v.pixel, field, editBG)
		frameRect(screen, v.pixel, field, borderColor)
	}
	textY := field.Min.Y + 17
	drawText(screen, d.Text, field.Min.X+4, textY, labelColor)
	if !d.Selected {
		caretX := field.Min.X + 4 + textWidth(string([]rune(d.Text)[:d.Cursor]))
		fillRect(screen, v.pixel, image.Rect(caretX, field.Min.Y+3, caretX+1, field.Max.Y-3), caretColor)
	}
	drawText(screen, "Enter saves, Esc cancels", box.Min.X+padding, box.Max.Y-10, dimColor)
}
