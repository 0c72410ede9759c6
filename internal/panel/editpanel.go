package panel

import (
	"image"
	"strings"

	"github.com/sirupsen/logrus"

	"starmesh/internal/param"
	"starmesh/internal/preset"
	"starmesh/internal/regen"
)

// defaultPresetName seeds the save dialog; it comes up fully selected, so
// the first keystroke replaces it.
const defaultPresetName = "Preset"

// DialogView is the save dialog prepared for rendering.
type DialogView struct {
	Open     bool
	Text     string
	Cursor   int
	Selected bool
}

type saveDialog struct {
	widget Widget
}

// EditPanel is the live-edit surface for one selected star. It hands
// pointer and key input to the control rows, runs the save-preset dialog,
// and swallows outside clicks whenever an interaction is in progress so a
// stray click cannot both abandon an edit and reselect something else.
type EditPanel struct {
	ctrl  *Controller
	model *param.Model
	sched *regen.Scheduler
	store *preset.Store
	log   *logrus.Logger

	title    string
	bounds   image.Rectangle
	dialog   *saveDialog
	closeReq bool
}

// NewEditPanel wires a panel over one edit session. Draft edits arm the
// scheduler and drags hold it open.
func NewEditPanel(ctrl *Controller, model *param.Model, sched *regen.Scheduler, store *preset.Store, title string, log *logrus.Logger) *EditPanel {
	ctrl.OnEdit(sched.Arm)
	ctrl.OnDrag(sched.SetDragging)
	return &EditPanel{
		ctrl:  ctrl,
		model: model,
		sched: sched,
		store: store,
		log:   log,
		title: title,
	}
}

// SetBounds places the panel in screen coordinates. The app calls it on
// every layout pass.
func (p *EditPanel) SetBounds(r image.Rectangle) { p.bounds = r }

// Bounds returns the panel's screen rectangle.
func (p *EditPanel) Bounds() image.Rectangle { return p.bounds }

// Title returns the header line, normally the edited object's name.
func (p *EditPanel) Title() string { return p.title }

// Rows returns the control rows in panel-local coordinates.
func (p *EditPanel) Rows() []RowView { return p.ctrl.Rows() }

// Buttons returns the Save Preset and Close rects in panel-local
// coordinates, side by side under the control rows.
func (p *EditPanel) Buttons() (save, closeBtn image.Rectangle) {
	w := p.ctrl.Width()
	top := p.ctrl.Height()
	bw := (w - 3*panelPadding) / 2
	save = image.Rect(panelPadding, top, panelPadding+bw, top+buttonRowHeight)
	closeBtn = image.Rect(w-panelPadding-bw, top, w-panelPadding, top+buttonRowHeight)
	return save, closeBtn
}

// Dialog returns the save dialog state for rendering.
func (p *EditPanel) Dialog() DialogView {
	if p.dialog == nil {
		return DialogView{}
	}
	return DialogView{
		Open:     true,
		Text:     p.dialog.widget.Text(),
		Cursor:   p.dialog.widget.Cursor(),
		Selected: p.dialog.widget.Mode() == ModeAllSelected,
	}
}

// DialogOpen reports whether the save dialog is up.
func (p *EditPanel) DialogOpen() bool { return p.dialog != nil }

// Capturing reports whether the dialog or an editing row is taking typed
// text.
func (p *EditPanel) Capturing() bool { return p.dialog != nil || p.ctrl.Capturing() }

// OpenSaveDialog abandons any row edit and raises the save-preset dialog.
func (p *EditPanel) OpenSaveDialog() {
	p.ctrl.Deactivate()
	d := &saveDialog{}
	d.widget.Select(defaultPresetName)
	p.dialog = d
}

// PresetNames lists the stored presets in save order.
func (p *EditPanel) PresetNames() []string { return p.store.Names() }

// ApplyPreset loads a stored preset into the session and rebuilds the mesh
// immediately. Loading leaves the model clean, so waiting for a timer tick
// would never rebuild.
func (p *EditPanel) ApplyPreset(name string) bool {
	params, ok := p.store.Load(name)
	if !ok {
		return false
	}
	p.ctrl.Deactivate()
	p.model.LoadPreset(params)
	p.sched.Rebuild()
	p.log.WithField("preset", name).Info("preset applied")
	return true
}

// Press routes a mouse-down in screen coordinates. It reports whether the
// press was consumed; an unconsumed press is free to hit the viewport.
func (p *EditPanel) Press(x, y int, m Mods) bool {
	if p.dialog != nil {
		return true
	}
	if pointInRect(x, y, p.bounds) {
		lx, ly := x-p.bounds.Min.X, y-p.bounds.Min.Y
		save, cls := p.Buttons()
		switch {
		case pointInRect(lx, ly, save):
			p.OpenSaveDialog()
		case pointInRect(lx, ly, cls):
			p.ctrl.Deactivate()
			p.closeReq = true
		default:
			p.ctrl.Press(lx, ly, m)
		}
		return true
	}
	if p.ctrl.Busy() {
		p.ctrl.Deactivate()
		return true
	}
	return false
}

// TakeCloseRequest reports and clears a click on the Close button. The app
// owns the session, so the teardown happens there.
func (p *EditPanel) TakeCloseRequest() bool {
	req := p.closeReq
	p.closeReq = false
	return req
}

// Move routes pointer motion. Drags keep tracking after the pointer leaves
// the panel, so motion is always forwarded.
func (p *EditPanel) Move(x, y int, m Mods) {
	if p.dialog != nil {
		return
	}
	p.ctrl.Move(x-p.bounds.Min.X, y-p.bounds.Min.Y, m)
}

// Release routes a mouse-up.
func (p *EditPanel) Release(x, y int, m Mods) {
	if p.dialog != nil {
		return
	}
	p.ctrl.Release(x-p.bounds.Min.X, y-p.bounds.Min.Y, m)
}

// TypeRune routes a typed character to the dialog or the active row.
func (p *EditPanel) TypeRune(r rune) {
	if p.dialog != nil {
		p.dialog.widget.TypeRune(r)
		return
	}
	p.ctrl.TypeRune(r)
}

// Key routes an editing key and reports whether it was consumed. Keys fall
// through when nothing on the panel is active, so app shortcuts keep
// working.
func (p *EditPanel) Key(k Key, m Mods) bool {
	if p.dialog != nil {
		p.dialogKey(k)
		return true
	}
	if !p.ctrl.Busy() {
		return false
	}
	if err := p.ctrl.Key(k, m); err != nil {
		p.log.WithError(err).Warn("field input rejected")
	}
	return true
}

func (p *EditPanel) dialogKey(k Key) {
	d := p.dialog
	switch k {
	case KeyEnter:
		name := strings.TrimSpace(d.widget.Text())
		p.dialog = nil
		if name == "" {
			return
		}
		p.store.Save(name, p.model.Committed())
		p.log.WithField("preset", name).Info("preset saved")
	case KeyEscape:
		p.dialog = nil
	case KeyBackspace:
		d.widget.Backspace()
	case KeyDelete:
		d.widget.DeleteForward()
	case KeyLeft:
		d.widget.MoveCursor(-1)
	case KeyRight:
		d.widget.MoveCursor(1)
	case KeyHome:
		d.widget.Home()
	case KeyEnd:
		d.widget.End()
	}
}

// Deactivate abandons any row interaction without touching the timer. The
// app calls it before raising another modal surface.
func (p *EditPanel) Deactivate() { p.ctrl.Deactivate() }

// Close tears the panel down: edits in progress are abandoned, the dialog
// is dismissed, and the rebuild timer is stopped so no tick can arrive for
// a dead session.
func (p *EditPanel) Close() {
	p.ctrl.Deactivate()
	p.dialog = nil
	p.sched.Stop()
}
