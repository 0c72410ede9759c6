package param

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"starmesh/internal/preset"
	"starmesh/pkg/stargeom"
)

// ErrInvalidInput reports a text commit that could not be parsed into a
// field value. The draft is left untouched when it is returned.
var ErrInvalidInput = errors.New("invalid input")

// Model holds the committed and draft parameter sets for one edit session.
// Committed is the last value applied to the mesh; draft is the value under
// active edit. Both are always valid: edits are clamped on the way in.
type Model struct {
	committed stargeom.Params
	draft     stargeom.Params
}

// NewModel starts a model from the given parameters, normalized.
func NewModel(p stargeom.Params) *Model {
	p = p.Normalized()
	return &Model{committed: p, draft: p}
}

// Committed returns the last committed parameters.
func (m *Model) Committed() stargeom.Params { return m.committed }

// Draft returns the parameters under edit.
func (m *Model) Draft() stargeom.Params { return m.draft }

// Dirty reports whether the draft has diverged from the committed state.
func (m *Model) Dirty() bool { return m.draft != m.committed }

// Is3D reports whether this session edits an extruded star. The shape type
// is fixed at creation time and never edited, so committed is authoritative.
func (m *Model) Is3D() bool { return m.committed.Is3D }

// Value returns the draft value of one field.
func (m *Model) Value(f Field) float64 {
	switch f {
	case FieldSpikes:
		return float64(m.draft.SpikeCount)
	case FieldOuterRadius:
		return m.draft.OuterRadius
	case FieldInnerRadius:
		return m.draft.InnerRadius
	case FieldGlobalScale:
		return m.draft.GlobalScale
	case FieldThickness:
		return m.draft.Thickness
	}
	return 0
}

// SetDraft clamps v into the field's valid range and stores it in the
// draft. Violating values are corrected here, at the editing boundary;
// raw out-of-range values are never stored. Lowering the outer radius
// below the inner one pushes the inner radius down with it.
func (m *Model) SetDraft(f Field, v float64) {
	switch f {
	case FieldSpikes:
		n := int(math.Round(v))
		if n < stargeom.MinSpikes {
			n = stargeom.MinSpikes
		}
		if n > stargeom.MaxSpikes {
			n = stargeom.MaxSpikes
		}
		m.draft.SpikeCount = n
	case FieldOuterRadius:
		if v < stargeom.MinRadius {
			v = stargeom.MinRadius
		}
		m.draft.OuterRadius = v
		if m.draft.InnerRadius >= v {
			m.draft.InnerRadius = v * 0.5
		}
	case FieldInnerRadius:
		if v < stargeom.MinRadius {
			v = stargeom.MinRadius
		}
		if hi := m.draft.OuterRadius * stargeom.InnerCap; v > hi {
			v = hi
		}
		m.draft.InnerRadius = v
	case FieldGlobalScale:
		if v < stargeom.MinRadius {
			v = stargeom.MinRadius
		}
		m.draft.GlobalScale = v
	case FieldThickness:
		if v < 0 {
			v = 0
		}
		m.draft.Thickness = v
	}
}

// SetDraftText parses a text entry for one field. An empty or blank string
// resolves to the field's default value. Unparseable or non-finite text
// returns ErrInvalidInput and leaves draft and dirty state untouched.
func (m *Model) SetDraftText(f Field, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		m.SetDraft(f, Spec(f).Default)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidInput
	}
	m.SetDraft(f, v)
	return nil
}

// Commit normalizes the draft, promotes it to committed, and returns the
// committed parameters. The scheduler calls this right before a rebuild so
// the mesh never reflects a transiently invalid draft.
func (m *Model) Commit() stargeom.Params {
	m.draft = m.draft.Normalized()
	m.committed = m.draft
	return m.committed
}

// LoadPreset replaces committed and draft with the preset parameters.
func (m *Model) LoadPreset(p stargeom.Params) {
	p = p.Normalized()
	m.committed = p
	m.draft = p
}

// ToPreset copies the committed parameters into a named preset.
func (m *Model) ToPreset(name string) preset.Preset {
	return preset.Preset{Name: name, Params: m.committed}
}
