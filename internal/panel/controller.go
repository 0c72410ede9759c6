package panel

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"starmesh/internal/param"
)

// Mods carries the modifier keys held during an interaction. Shift makes
// steps and drags ten times coarser, Ctrl ten times finer.
type Mods struct {
	Shift bool
	Ctrl  bool
}

func (m Mods) factor() float64 {
	f := 1.0
	if m.Shift {
		f *= 10
	}
	if m.Ctrl {
		f *= 0.1
	}
	return f
}

// Key identifies the editing keys the panel reacts to. The host maps its
// input backend onto these.
type Key int

const (
	KeyEnter Key = iota
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

const (
	panelPadding    = 12
	lineHeight      = 36
	buttonSize      = 24
	buttonGap       = 6
	headerBaseline  = 18
	labelBaseline   = 24
	controlsTop     = panelPadding + headerBaseline + 14
	labelColumn     = 96
	buttonRowHeight = 26

	// ValueTextInset is where value text starts inside its rect while
	// editing. The view draws with it and caret placement reverses it, so
	// the two must agree.
	ValueTextInset = 4

	// dragThreshold is the horizontal travel, in pixels, that turns a
	// press on a value into a drag instead of a click.
	dragThreshold = 4
	// intDragPixels is the horizontal travel per step when dragging an
	// integer field.
	intDragPixels = 10
)

type fieldState struct {
	spec   param.FieldSpec
	widget Widget

	top       int
	valueRect image.Rectangle
	decRect   image.Rectangle
	incRect   image.Rectangle
}

// RowView is one control row prepared for rendering.
type RowView struct {
	Label  string
	Value  string
	Mode   Mode
	Cursor int

	Top       int
	ValueRect image.Rectangle
	DecRect   image.Rectangle
	IncRect   image.Rectangle

	CanDec bool
	CanInc bool
}

// Controller routes pointer and key input for the parameter rows of one
// edit session. It owns the one-active-row rule: starting an interaction
// on any row abandons whatever edit another row had in progress.
type Controller struct {
	model   *param.Model
	fields  []fieldState
	width   int
	measure func(string) int

	active int // row currently selected or editing, -1 for none

	pressed   bool
	pressRow  int
	pressX    int
	repress   bool // press landed on the row already being edited
	dragging  bool
	dragStart float64

	onEdit func()
	onDrag func(bool)
}

// NewController builds the rows for the model's shape type and lays them
// out for the given panel width. Text is measured with the face the view
// draws with.
func NewController(model *param.Model, width int) *Controller {
	specs := param.Specs(model.Is3D())
	c := &Controller{
		model:   model,
		fields:  make([]fieldState, len(specs)),
		width:   width,
		measure: measureBasicfont,
		active:  -1,
	}
	for i, spec := range specs {
		c.fields[i] = fieldState{spec: spec}
	}
	c.layout()
	return c
}

func measureBasicfont(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func (c *Controller) layout() {
	for i := range c.fields {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		incRect := image.Rect(c.width-panelPadding-buttonSize, buttonY, c.width-panelPadding, buttonY+buttonSize)
		decRect := image.Rect(incRect.Min.X-buttonGap-buttonSize, buttonY, incRect.Min.X-buttonGap, buttonY+buttonSize)
		valueRect := image.Rect(panelPadding+labelColumn, buttonY, decRect.Min.X-buttonGap, buttonY+buttonSize)
		c.fields[i].top = top
		c.fields[i].valueRect = valueRect
		c.fields[i].decRect = decRect
		c.fields[i].incRect = incRect
	}
}

// OnEdit registers the callback run after every draft change.
func (c *Controller) OnEdit(fn func()) { c.onEdit = fn }

// OnDrag registers the callback run when a drag starts (true) and ends
// (false).
func (c *Controller) OnDrag(fn func(bool)) { c.onDrag = fn }

// Width returns the layout width the rows were computed for.
func (c *Controller) Width() int { return c.width }

// Height returns the vertical extent of the control rows.
func (c *Controller) Height() int {
	return controlsTop + len(c.fields)*lineHeight + panelPadding
}

// Busy reports whether any row holds a press, selection, text edit, or
// drag. The panel uses it to decide whether an outside click must be
// swallowed.
func (c *Controller) Busy() bool { return c.active >= 0 || c.dragging || c.pressed }

// Capturing reports whether a row is taking typed text. The app keeps its
// letter shortcuts disabled while it is true.
func (c *Controller) Capturing() bool {
	return c.active >= 0 && c.fields[c.active].widget.Editing()
}

// Rows returns render-ready snapshots of every control row.
func (c *Controller) Rows() []RowView {
	rows := make([]RowView, len(c.fields))
	for i := range c.fields {
		f := &c.fields[i]
		value := f.spec.Format(c.model.Value(f.spec.Field))
		if f.widget.Editing() {
			value = f.widget.Text()
		}
		rows[i] = RowView{
			Label:     f.spec.Label,
			Value:     value,
			Mode:      f.widget.Mode(),
			Cursor:    f.widget.Cursor(),
			Top:       f.top,
			ValueRect: f.valueRect,
			DecRect:   f.decRect,
			IncRect:   f.incRect,
			CanDec:    c.canStep(i, -1),
			CanInc:    c.canStep(i, 1),
		}
	}
	return rows
}

func (c *Controller) canStep(i, dir int) bool {
	f := &c.fields[i]
	target := c.model.Value(f.spec.Field) + float64(dir)*f.spec.Step
	if dir < 0 && target < f.spec.Min {
		return false
	}
	if dir > 0 && f.spec.HasMax && target > f.spec.Max {
		return false
	}
	return true
}

// Press handles a mouse-down at panel-local coordinates. The panel is
// opaque, so every press inside it is consumed.
func (c *Controller) Press(x, y int, m Mods) bool {
	for i := range c.fields {
		f := &c.fields[i]
		if pointInRect(x, y, f.decRect) {
			c.deactivate()
			c.step(i, -1, m)
			return true
		}
		if pointInRect(x, y, f.incRect) {
			c.deactivate()
			c.step(i, 1, m)
			return true
		}
		if pointInRect(x, y, f.valueRect) {
			c.repress = i == c.active && f.widget.Editing()
			if !c.repress {
				c.deactivate()
			}
			c.pressed = true
			c.pressRow = i
			c.pressX = x
			return true
		}
	}
	c.deactivate()
	return true
}

// Move handles pointer motion. A press turns into a drag once it travels
// dragThreshold pixels horizontally; vertical travel never starts one.
func (c *Controller) Move(x, y int, m Mods) {
	if !c.pressed {
		return
	}
	if !c.dragging {
		if abs(x-c.pressX) < dragThreshold {
			return
		}
		row := &c.fields[c.pressRow]
		c.dragging = true
		c.active = c.pressRow
		c.dragStart = c.model.Value(row.spec.Field)
		row.widget.BeginDrag()
		if c.onDrag != nil {
			c.onDrag(true)
		}
	}
	c.applyDrag(x, m)
}

func (c *Controller) applyDrag(x int, m Mods) {
	row := &c.fields[c.pressRow]
	delta := x - c.pressX
	var v float64
	if row.spec.Integer {
		v = c.dragStart + float64(delta/intDragPixels)*row.spec.Step*m.factor()
	} else {
		v = c.dragStart + float64(delta)*row.spec.DragScale*m.factor()
	}
	c.model.SetDraft(row.spec.Field, v)
	c.edited()
}

// Release ends a press. A drag returns its row to idle and leaves the last
// scrubbed value in the draft; a first click selects the whole value for
// typing; a click on a value already being edited collapses the selection
// to a caret under the pointer.
func (c *Controller) Release(x, y int, m Mods) {
	if !c.pressed {
		return
	}
	c.pressed = false
	if c.dragging {
		c.dragging = false
		c.fields[c.pressRow].widget.Reset()
		c.active = -1
		if c.onDrag != nil {
			c.onDrag(false)
		}
		return
	}
	row := &c.fields[c.pressRow]
	c.active = c.pressRow
	if c.repress && row.widget.Editing() {
		rel := x - (row.valueRect.Min.X + ValueTextInset)
		row.widget.PlaceCaret(c.caretIndex(row.widget.Text(), rel))
		return
	}
	row.widget.Select(row.spec.Format(c.model.Value(row.spec.Field)))
}

// caretIndex maps a pixel offset into text to the nearest rune boundary.
func (c *Controller) caretIndex(text string, rel int) int {
	runes := []rune(text)
	for i := 1; i <= len(runes); i++ {
		before := c.measure(string(runes[:i-1]))
		after := c.measure(string(runes[:i]))
		if rel < (before+after+1)/2 {
			return i - 1
		}
	}
	return len(runes)
}

// TypeRune feeds a typed character to the active row.
func (c *Controller) TypeRune(r rune) {
	if c.active < 0 || c.dragging {
		return
	}
	c.fields[c.active].widget.TypeRune(r)
}

// Key handles an editing key. Enter commits the text buffer through the
// model and reports a parse failure; Escape abandons the edit, or restores
// the pre-drag value when a drag is in flight.
func (c *Controller) Key(k Key, m Mods) error {
	if c.dragging {
		if k == KeyEscape {
			c.cancelDrag()
		}
		return nil
	}
	if c.active < 0 {
		return nil
	}
	row := &c.fields[c.active]
	switch k {
	case KeyEnter:
		return c.commitText()
	case KeyEscape:
		c.deactivate()
	case KeyBackspace:
		row.widget.Backspace()
	case KeyDelete:
		row.widget.DeleteForward()
	case KeyLeft:
		row.widget.MoveCursor(-1)
	case KeyRight:
		row.widget.MoveCursor(1)
	case KeyHome:
		row.widget.Home()
	case KeyEnd:
		row.widget.End()
	}
	return nil
}

// Deactivate abandons any interaction in progress without committing. An
// in-flight drag snaps back to its start value.
func (c *Controller) Deactivate() {
	if c.dragging {
		c.cancelDrag()
		return
	}
	c.pressed = false
	c.deactivate()
}

func (c *Controller) step(i, dir int, m Mods) {
	f := &c.fields[i]
	v := c.model.Value(f.spec.Field) + float64(dir)*f.spec.Step*m.factor()
	c.model.SetDraft(f.spec.Field, v)
	c.edited()
}

func (c *Controller) commitText() error {
	row := &c.fields[c.active]
	err := c.model.SetDraftText(row.spec.Field, row.widget.Text())
	c.deactivate()
	if err != nil {
		return err
	}
	c.edited()
	return nil
}

func (c *Controller) cancelDrag() {
	row := &c.fields[c.pressRow]
	c.model.SetDraft(row.spec.Field, c.dragStart)
	c.pressed = false
	c.dragging = false
	row.widget.Reset()
	c.active = -1
	if c.onDrag != nil {
		c.onDrag(false)
	}
	c.edited()
}

func (c *Controller) deactivate() {
	if c.active >= 0 {
		c.fields[c.active].widget.Reset()
		c.active = -1
	}
}

func (c *Controller) edited() {
	if c.onEdit != nil {
		c.onEdit()
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
