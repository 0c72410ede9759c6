//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"starmesh/internal/create"
	"starmesh/internal/panel"
)

const (
	formOptionLine = 26
	formButtonRow  = 40
	formCheckSize  = 16
	formCyclerSize = 18
)

// FormView draws the new-star dialog and maps clicks onto form actions.
// The dialog is modal: while it is up the app routes all pointer input
// through Hit and discards anything that lands outside the box.
type FormView struct {
	pixel *ebiten.Image
}

// NewFormView constructs the renderer.
func NewFormView() *FormView {
	return &FormView{pixel: newPixel()}
}

type formLayout struct {
	box image.Rectangle

	rows image.Rectangle

	line3D     image.Rectangle
	linePreset image.Rectangle
	lineCycler image.Rectangle
	lineName   image.Rectangle
	lineColl   image.Rectangle
	toggle3D   image.Rectangle
	togglePre  image.Rectangle
	presetPrev image.Rectangle
	presetNext image.Rectangle
	collPrev   image.Rectangle
	collNext   image.Rectangle
	createBtn  image.Rectangle
	cancelBtn  image.Rectangle
}

func formLayoutFor(screenW, screenH int, ctrl *panel.Controller) formLayout {
	w := ctrl.Width()
	h := ctrl.Height() + 5*formOptionLine + formButtonRow
	box := image.Rect((screenW-w)/2, (screenH-h)/2, (screenW+w)/2, (screenH+h)/2)

	l := formLayout{box: box}
	l.rows = image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+ctrl.Height())

	y := l.rows.Max.Y
	line := func() image.Rectangle {
		r := image.Rect(box.Min.X+padding, y, box.Max.X-padding, y+formOptionLine)
		y += formOptionLine
		return r
	}
	check := func(r image.Rectangle) image.Rectangle {
		top := r.Min.Y + (formOptionLine-formCheckSize)/2
		return image.Rect(r.Max.X-formCheckSize, top, r.Max.X, top+formCheckSize)
	}
	cycler := func(r image.Rectangle) (prev, next image.Rectangle) {
		top := r.Min.Y + (formOptionLine-formCyclerSize)/2
		next = image.Rect(r.Max.X-formCyclerSize, top, r.Max.X, top+formCyclerSize)
		prev = image.Rect(next.Min.X-96-formCyclerSize, top, next.Min.X-96, top+formCyclerSize)
		return prev, next
	}

	l.line3D = line()
	l.toggle3D = check(l.line3D)
	l.linePreset = line()
	l.togglePre = check(l.linePreset)
	l.lineCycler = line()
	l.presetPrev, l.presetNext = cycler(l.lineCycler)
	l.lineName = line()
	l.lineColl = line()
	l.collPrev, l.collNext = cycler(l.lineColl)

	bw := (box.Dx() - 3*padding) / 2
	l.createBtn = image.Rect(box.Min.X+padding, y+6, box.Min.X+padding+bw, y+34)
	l.cancelBtn = image.Rect(box.Max.X-padding-bw, y+6, box.Max.X-padding, y+34)
	return l
}

// Box returns the dialog rectangle for the given screen size. Presses
// reported as FormHitRows are forwarded to the form's controller after
// subtracting Box().Min.
func (v *FormView) Box(screenW, screenH int, ctrl *panel.Controller) image.Rectangle {
	return formLayoutFor(screenW, screenH, ctrl).box
}

// Hit classifies a click. Points outside the box come back as FormHitNone;
// the dialog is modal, so the app still consumes them.
func (v *FormView) Hit(x, y, screenW, screenH int, ctrl *panel.Controller) FormHit {
	l := formLayoutFor(screenW, screenH, ctrl)
	switch {
	case pointInRect(x, y, l.toggle3D):
		return FormHitToggle3D
	case pointInRect(x, y, l.togglePre):
		return FormHitTogglePreset
	case pointInRect(x, y, l.presetPrev):
		return FormHitPresetPrev
	case pointInRect(x, y, l.presetNext):
		return FormHitPresetNext
	case pointInRect(x, y, l.collPrev):
		return FormHitCollectionPrev
	case pointInRect(x, y, l.collNext):
		return FormHitCollectionNext
	case pointInRect(x, y, l.createBtn):
		return FormHitCreate
	case pointInRect(x, y, l.cancelBtn):
		return FormHitCancel
	case pointInRect(x, y, l.lineName):
		return FormHitName
	case pointInRect(x, y, l.rows):
		return FormHitRows
	}
	return FormHitNone
}

// Draw paints the scrim, the dialog box, the parameter rows, the shape and
// preset options, and the action buttons.
func (v *FormView) Draw(screen *ebiten.Image, f *create.Form, ctrl *panel.Controller) {
	sb := screen.Bounds()
	fillRect(screen, v.pixel, sb, color.RGBA{A: 140})

	l := formLayoutFor(sb.Dx(), sb.Dy(), ctrl)
	fillRect(screen, v.pixel, l.box, dialogBG)
	frameRect(screen, v.pixel, l.box, borderColor)
	drawText(screen, "New Star", l.box.Min.X+padding, l.box.Min.Y+padding+headerBaseline, headerColor)

	for _, row := range ctrl.Rows() {
		drawControlRow(screen, v.pixel, l.box.Min, row)
	}

	v.drawCheckLine(screen, l.line3D, l.toggle3D, "Solid (3D)", f.Is3D())
	v.drawCheckLine(screen, l.linePreset, l.togglePre, "From Preset", f.UsePreset())

	presetName, ok := f.PresetName()
	if !ok {
		presetName = "(none)"
	}
	v.drawCyclerLine(screen, l.lineCycler, l.presetPrev, l.presetNext, "Preset", presetName, f.UsePreset() && ok)
	v.drawNameLine(screen, l.lineName, f.NameView())
	v.drawCyclerLine(screen, l.lineColl, l.collPrev, l.collNext, "Collection", f.Collection(), true)

	canCreate := !f.UsePreset() || ok
	drawButton(screen, v.pixel, l.createBtn, "Create", canCreate)
	drawButton(screen, v.pixel, l.cancelBtn, "Cancel", true)
}

// drawNameLine renders the object-name pattern as a click-to-edit text
// field, reusing the save-dialog field style.
func (v *FormView) drawNameLine(screen *ebiten.Image, line image.Rectangle, nv create.NameView) {
	baseline := line.Min.Y + labelBaseline - 6
	drawText(screen, "Name", line.Min.X, baseline, labelColor)

	field := image.Rect(line.Min.X+72, line.Min.Y+2, line.Max.X, line.Max.Y-2)
	switch {
	case nv.Selected:
		fillRect(screen, v.pixel, field, selectBG)
	case nv.Editing:
		fillRect(screen, v.pixel, field, editBG)
	}
	frameRect(screen, v.pixel, field, borderColor)

	text := nv.Text
	if !nv.Editing {
		text = truncate(text, (field.Dx()-8)/7)
	}
	drawText(screen, text, field.Min.X+4, baseline, labelColor)
	if nv.Editing && !nv.Selected {
		caretX := field.Min.X + 4 + textWidth(string([]rune(nv.Text)[:nv.Cursor]))
		fillRect(screen, v.pixel, image.Rect(caretX, field.Min.Y+3, caretX+1, field.Max.Y-3), caretColor)
	}
}

func (v *FormView) drawCheckLine(screen *ebiten.Image, line, box image.Rectangle, label string, on bool) {
	drawText(screen, label, line.Min.X, line.Min.Y+labelBaseline-6, labelColor)
	frameRect(screen, v.pixel, box, borderColor)
	if on {
		fillRect(screen, v.pixel, box.Inset(3), selectBG)
	}
}

func (v *FormView) drawCyclerLine(screen *ebiten.Image, line, prev, next image.Rectangle, label, value string, enabled bool) {
	col := labelColor
	if !enabled {
		col = dimColor
	}
	drawText(screen, label, line.Min.X, line.Min.Y+labelBaseline-6, col)
	drawButton(screen, v.pixel, prev, "<", enabled)
	drawButton(screen, v.pixel, next, ">", enabled)

	value = truncate(value, (next.Min.X-prev.Max.X-4)/7)
	x := prev.Max.X + (next.Min.X-prev.Max.X-textWidth(value))/2
	drawText(screen, value, x, line.Min.Y+labelBaseline-6, col)
}
