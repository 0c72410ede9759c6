package param

import (
	"math"
	"strconv"

	"starmesh/pkg/stargeom"
)

// Field identifies one editable star parameter.
type Field int

const (
	FieldSpikes Field = iota
	FieldOuterRadius
	FieldInnerRadius
	FieldGlobalScale
	FieldThickness

	fieldCount
)

// FieldSpec describes an editable parameter for the panel widgets. Bounds
// here mirror the clamps in Model.SetDraft; widgets use them to grey out
// step buttons, not to enforce validity.
type FieldSpec struct {
	Field   Field
	Key     string
	Label   string
	Integer bool

	Step    float64
	Min     float64
	Max     float64
	HasMax  bool
	Default float64

	// DragScale is the value change per horizontal drag pixel for float
	// fields. Integer fields advance one step per fixed pixel run instead.
	DragScale float64
}

var specs = func() [fieldCount]FieldSpec {
	def := stargeom.Default()
	return [fieldCount]FieldSpec{
		FieldSpikes: {
			Field:   FieldSpikes,
			Key:     "spikes",
			Label:   "Spikes",
			Integer: true,
			Step:    1,
			Min:     stargeom.MinSpikes,
			Max:     stargeom.MaxSpikes,
			HasMax:  true,
			Default: float64(def.SpikeCount),
		},
		FieldOuterRadius: {
			Field:     FieldOuterRadius,
			Key:       "outer_radius",
			Label:     "Outer Radius",
			Step:      0.01,
			Min:       stargeom.MinRadius,
			Default:   def.OuterRadius,
			DragScale: 0.002,
		},
		FieldInnerRadius: {
			Field:     FieldInnerRadius,
			Key:       "inner_radius",
			Label:     "Inner Radius",
			Step:      0.01,
			Min:       stargeom.MinRadius,
			Default:   def.InnerRadius,
			DragScale: 0.002,
		},
		FieldGlobalScale: {
			Field:     FieldGlobalScale,
			Key:       "global_scale",
			Label:     "Global Scale",
			Step:      0.01,
			Min:       stargeom.MinRadius,
			Default:   def.GlobalScale,
			DragScale: 0.002,
		},
		FieldThickness: {
			Field:     FieldThickness,
			Key:       "thickness",
			Label:     "Thickness",
			Step:      0.01,
			Min:       0,
			Default:   def.Thickness,
			DragScale: 0.002,
		},
	}
}()

// Spec returns the description of one field.
func Spec(f Field) FieldSpec { return specs[f] }

// Specs returns the panel fields in display order. Thickness only applies
// to extruded stars, so flat sessions omit it.
func Specs(is3D bool) []FieldSpec {
	out := []FieldSpec{
		specs[FieldSpikes],
		specs[FieldOuterRadius],
		specs[FieldInnerRadius],
		specs[FieldGlobalScale],
	}
	if is3D {
		out = append(out, specs[FieldThickness])
	}
	return out
}

// Format renders a value the way the panel displays it. Precision follows
// the step size.
func (s FieldSpec) Format(v float64) string {
	if s.Integer {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 2
	switch {
	case s.Step < 0.001:
		precision = 4
	case s.Step < 0.01:
		precision = 3
	case s.Step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
