package panel

import "unicode"

// Mode is the interaction state of one numeric field.
type Mode int

const (
	// ModeIdle shows the current draft value.
	ModeIdle Mode = iota
	// ModeAllSelected shows the value fully highlighted; the next rune
	// replaces it wholesale.
	ModeAllSelected
	// ModeCursorEdit is free text editing with a caret.
	ModeCursorEdit
	// ModeDragging scrubs the value horizontally.
	ModeDragging
)

// Widget is the text-editing state machine behind one numeric field. It
// holds display state only; parsing and clamping stay in the parameter
// model, so an abandoned edit leaves no trace.
type Widget struct {
	mode   Mode
	buffer []rune
	cursor int
}

// Mode returns the current interaction state.
func (w *Widget) Mode() Mode { return w.mode }

// Editing reports whether the widget holds a text buffer.
func (w *Widget) Editing() bool {
	return w.mode == ModeAllSelected || w.mode == ModeCursorEdit
}

// Text returns the edit buffer.
func (w *Widget) Text() string { return string(w.buffer) }

// Cursor returns the caret position in runes. In ModeAllSelected the whole
// buffer is the selection and the caret is notional.
func (w *Widget) Cursor() int { return w.cursor }

// Select enters ModeAllSelected with the given display text as the buffer.
func (w *Widget) Select(text string) {
	w.mode = ModeAllSelected
	w.buffer = []rune(text)
	w.cursor = len(w.buffer)
}

// BeginDrag enters ModeDragging, dropping any text state.
func (w *Widget) BeginDrag() {
	w.mode = ModeDragging
	w.buffer = nil
	w.cursor = 0
}

// Reset returns the widget to ModeIdle, dropping any text state.
func (w *Widget) Reset() {
	w.mode = ModeIdle
	w.buffer = nil
	w.cursor = 0
}

// TypeRune feeds one typed character. In ModeAllSelected it replaces the
// selection and switches to ModeCursorEdit; in ModeCursorEdit it inserts at
// the caret. Non-printable runes and other modes are ignored. Validation
// waits for commit, so any printable text is accepted here.
func (w *Widget) TypeRune(r rune) {
	if !unicode.IsPrint(r) {
		return
	}
	switch w.mode {
	case ModeAllSelected:
		w.mode = ModeCursorEdit
		w.buffer = []rune{r}
		w.cursor = 1
	case ModeCursorEdit:
		w.buffer = append(w.buffer, 0)
		copy(w.buffer[w.cursor+1:], w.buffer[w.cursor:])
		w.buffer[w.cursor] = r
		w.cursor++
	}
}

// Backspace deletes the rune before the caret. In ModeAllSelected it
// clears the whole selection and leaves an empty ModeCursorEdit buffer,
// which commits to the field default.
func (w *Widget) Backspace() {
	switch w.mode {
	case ModeAllSelected:
		w.mode = ModeCursorEdit
		w.buffer = nil
		w.cursor = 0
	case ModeCursorEdit:
		if w.cursor > 0 {
			w.buffer = append(w.buffer[:w.cursor-1], w.buffer[w.cursor:]...)
			w.cursor--
		}
	}
}

// DeleteForward deletes the rune at the caret. In ModeAllSelected it acts
// like Backspace: the selection goes away.
func (w *Widget) DeleteForward() {
	switch w.mode {
	case ModeAllSelected:
		w.mode = ModeCursorEdit
		w.buffer = nil
		w.cursor = 0
	case ModeCursorEdit:
		if w.cursor < len(w.buffer) {
			w.buffer = append(w.buffer[:w.cursor], w.buffer[w.cursor+1:]...)
		}
	}
}

// PlaceCaret enters ModeCursorEdit with the caret at pos, clamped to the
// buffer. A second click on a selected value lands here: the selection
// collapses to a caret under the pointer. Outside the text modes it does
// nothing.
func (w *Widget) PlaceCaret(pos int) {
	if w.mode != ModeAllSelected && w.mode != ModeCursorEdit {
		return
	}
	w.mode = ModeCursorEdit
	if pos < 0 {
		pos = 0
	}
	if pos > len(w.buffer) {
		pos = len(w.buffer)
	}
	w.cursor = pos
}

// MoveCursor shifts the caret by delta runes, clamped to the buffer. In
// ModeAllSelected it collapses the selection to a caret at the matching
// end and enters ModeCursorEdit.
func (w *Widget) MoveCursor(delta int) {
	switch w.mode {
	case ModeAllSelected:
		w.mode = ModeCursorEdit
		if delta < 0 {
			w.cursor = 0
		} else {
			w.cursor = len(w.buffer)
		}
	case ModeCursorEdit:
		w.cursor += delta
		if w.cursor < 0 {
			w.cursor = 0
		}
		if w.cursor > len(w.buffer) {
			w.cursor = len(w.buffer)
		}
	}
}

// Home moves the caret to the start of the buffer.
func (w *Widget) Home() {
	if w.mode == ModeAllSelected {
		w.mode = ModeCursorEdit
	}
	if w.mode == ModeCursorEdit {
		w.cursor = 0
	}
}

// End moves the caret past the last rune.
func (w *Widget) End() {
	if w.mode == ModeAllSelected {
		w.mode = ModeCursorEdit
	}
	if w.mode == ModeCursorEdit {
		w.cursor = len(w.buffer)
	}
}
