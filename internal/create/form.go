package create

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"starmesh/internal/panel"
	"starmesh/internal/param"
	"starmesh/internal/preset"
	"starmesh/pkg/stargeom"
)

// DefaultNamePattern names new stars. "##" expands to the spike count
// zero-padded to two digits; "{spikes}" expands to the bare count.
const DefaultNamePattern = "Star_##"

// ErrNoPreset reports a resolve with "use preset" on while the store is
// empty or the selection is gone.
var ErrNoPreset = errors.New("no preset selected")

// Options is the resolved output of the form: everything the scene needs
// to create one star object.
type Options struct {
	Name       string
	Collection string
	Params     stargeom.Params
}

// Form collects the inputs for a new star: a parameter draft, the shape
// type, an optional preset to copy from, and the target collection. It is
// plain state; the UI layer draws it and feeds it input.
type Form struct {
	model *param.Model
	store *preset.Store

	is3D      bool
	usePreset bool
	presetIdx int

	collections   []string
	collectionIdx int

	pattern  string
	nameEdit panel.Widget
}

// NewForm starts a form with default parameters, targeting the first of
// the given collections.
func NewForm(store *preset.Store, collections []string) *Form {
	if len(collections) == 0 {
		collections = []string{"Collection"}
	}
	return &Form{
		model:       param.NewModel(stargeom.Default()),
		store:       store,
		collections: append([]string(nil), collections...),
		pattern:     DefaultNamePattern,
	}
}

// Model exposes the parameter draft for the form's control rows.
func (f *Form) Model() *param.Model { return f.model }

// Is3D reports the chosen shape type.
func (f *Form) Is3D() bool { return f.is3D }

// Toggle3D flips between flat and extruded output, rebuilding the draft
// rows so the thickness field appears only for solid stars.
func (f *Form) Toggle3D() {
	f.is3D = !f.is3D
	p := f.model.Commit()
	p.Is3D = f.is3D
	f.model = param.NewModel(p)
}

// UsePreset reports whether the new star copies a stored preset instead of
// the form's own draft.
func (f *Form) UsePreset() bool { return f.usePreset }

// ToggleUsePreset flips preset use.
func (f *Form) ToggleUsePreset() { f.usePreset = !f.usePreset }

// PresetName returns the currently cycled preset, if any exist.
func (f *Form) PresetName() (string, bool) {
	names := f.store.Names()
	if len(names) == 0 {
		return "", false
	}
	if f.presetIdx >= len(names) {
		f.presetIdx = 0
	}
	return names[f.presetIdx], true
}

// CyclePreset moves the preset selection forward or back, wrapping.
func (f *Form) CyclePreset(dir int) {
	n := f.store.Len()
	if n == 0 {
		return
	}
	f.presetIdx = ((f.presetIdx+dir)%n + n) % n
}

// Collection returns the target collection.
func (f *Form) Collection() string { return f.collections[f.collectionIdx] }

// CycleCollection moves the collection selection forward or back, wrapping.
func (f *Form) CycleCollection(dir int) {
	n := len(f.collections)
	f.collectionIdx = ((f.collectionIdx+dir)%n + n) % n
}

// SetPattern overrides the name pattern. Blank keeps the default.
func (f *Form) SetPattern(pattern string) {
	if strings.TrimSpace(pattern) != "" {
		f.pattern = pattern
	}
}

// NameView is the name line as the form view should draw it.
type NameView struct {
	Text     string
	Cursor   int
	Editing  bool
	Selected bool
}

// NameView reports the current state of the name line. Outside an edit it
// shows the pattern that Resolve will expand.
func (f *Form) NameView() NameView {
	if !f.nameEdit.Editing() {
		return NameView{Text: f.pattern}
	}
	return NameView{
		Text:     f.nameEdit.Text(),
		Cursor:   f.nameEdit.Cursor(),
		Editing:  true,
		Selected: f.nameEdit.Mode() == panel.ModeAllSelected,
	}
}

// NameEditing reports whether the name line holds the text focus.
func (f *Form) NameEditing() bool { return f.nameEdit.Editing() }

// BeginNameEdit focuses the name line with the pattern fully selected, so
// typing replaces it outright.
func (f *Form) BeginNameEdit() { f.nameEdit.Select(f.pattern) }

// CancelNameEdit abandons an in-progress name edit.
func (f *Form) CancelNameEdit() { f.nameEdit.Reset() }

// NameTypeRune feeds a typed character to the name line.
func (f *Form) NameTypeRune(r rune) { f.nameEdit.TypeRune(r) }

// NameKey applies an editing key to the name line. Enter commits the text
// as the new pattern (blank keeps the old one), Escape discards the edit.
func (f *Form) NameKey(k panel.Key) {
	switch k {
	case panel.KeyEnter:
		f.SetPattern(f.nameEdit.Text())
		f.nameEdit.Reset()
	case panel.KeyEscape:
		f.nameEdit.Reset()
	case panel.KeyBackspace:
		f.nameEdit.Backspace()
	case panel.KeyDelete:
		f.nameEdit.DeleteForward()
	case panel.KeyLeft:
		f.nameEdit.MoveCursor(-1)
	case panel.KeyRight:
		f.nameEdit.MoveCursor(1)
	case panel.KeyHome:
		f.nameEdit.Home()
	case panel.KeyEnd:
		f.nameEdit.End()
	}
}

// Resolve produces the creation options. With "use preset" on, parameters
// come from the stored preset, shape type included; otherwise the form's
// draft is committed and stamped with the chosen shape type.
func (f *Form) Resolve() (Options, error) {
	var params stargeom.Params
	if f.usePreset {
		name, ok := f.PresetName()
		if !ok {
			return Options{}, ErrNoPreset
		}
		stored, ok := f.store.Load(name)
		if !ok {
			return Options{}, ErrNoPreset
		}
		params = stored.Normalized()
	} else {
		params = f.model.Commit()
		params.Is3D = f.is3D
	}
	return Options{
		Name:       expandPattern(f.pattern, params.SpikeCount),
		Collection: f.Collection(),
		Params:     params,
	}, nil
}

func expandPattern(pattern string, spikes int) string {
	name := strings.ReplaceAll(pattern, "{spikes}", strconv.Itoa(spikes))
	name = strings.ReplaceAll(name, "##", fmt.Sprintf("%02d", spikes))
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Star_%02d", spikes)
	}
	return name
}
