package param

import (
	"errors"
	"testing"

	"starmesh/pkg/stargeom"
)

func TestDirtyTracking(t *testing.T) {
	m := NewModel(stargeom.Default())
	if m.Dirty() {
		t.Fatalf("fresh model reports dirty")
	}

	m.SetDraft(FieldSpikes, 9)
	if !m.Dirty() {
		t.Fatalf("draft edit did not mark model dirty")
	}
	if m.Committed().SpikeCount != 5 {
		t.Fatalf("draft edit leaked into committed: %+v", m.Committed())
	}

	m.Commit()
	if m.Dirty() {
		t.Fatalf("model still dirty after commit")
	}
	if m.Committed().SpikeCount != 9 {
		t.Fatalf("commit did not promote draft: %+v", m.Committed())
	}

	m.SetDraft(FieldSpikes, 9)
	if m.Dirty() {
		t.Fatalf("no-op edit marked model dirty")
	}
}

func TestSetDraftClampsSpikes(t *testing.T) {
	m := NewModel(stargeom.Default())

	m.SetDraft(FieldSpikes, 2)
	if got := m.Draft().SpikeCount; got != stargeom.MinSpikes {
		t.Fatalf("spikes below minimum stored as %d, want %d", got, stargeom.MinSpikes)
	}
	m.SetDraft(FieldSpikes, 1e9)
	if got := m.Draft().SpikeCount; got != stargeom.MaxSpikes {
		t.Fatalf("spikes above maximum stored as %d, want %d", got, stargeom.MaxSpikes)
	}
	m.SetDraft(FieldSpikes, 6.6)
	if got := m.Draft().SpikeCount; got != 7 {
		t.Fatalf("fractional spike count stored as %d, want rounded 7", got)
	}
}

func TestOuterRadiusPushesInnerDown(t *testing.T) {
	m := NewModel(stargeom.Default()) // outer 1.0, inner 0.5

	m.SetDraft(FieldOuterRadius, 0.4)
	d := m.Draft()
	if d.OuterRadius != 0.4 {
		t.Fatalf("OuterRadius = %v, want 0.4", d.OuterRadius)
	}
	if d.InnerRadius != 0.2 {
		t.Fatalf("InnerRadius = %v, want pushed to 0.2", d.InnerRadius)
	}

	m.SetDraft(FieldOuterRadius, 3)
	if got := m.Draft().InnerRadius; got != 0.2 {
		t.Fatalf("raising outer radius moved inner radius to %v", got)
	}
}

func TestInnerRadiusCappedBelowOuter(t *testing.T) {
	m := NewModel(stargeom.Default())

	m.SetDraft(FieldInnerRadius, 5)
	d := m.Draft()
	want := d.OuterRadius * stargeom.InnerCap
	if d.InnerRadius != want {
		t.Fatalf("InnerRadius = %v, want capped at %v", d.InnerRadius, want)
	}

	m.SetDraft(FieldInnerRadius, -1)
	if got := m.Draft().InnerRadius; got != stargeom.MinRadius {
		t.Fatalf("InnerRadius = %v, want floor %v", got, stargeom.MinRadius)
	}
}

func TestScaleAndThicknessFloors(t *testing.T) {
	m := NewModel(stargeom.Default())

	m.SetDraft(FieldGlobalScale, 0)
	if got := m.Draft().GlobalScale; got != stargeom.MinRadius {
		t.Fatalf("GlobalScale = %v, want floor %v", got, stargeom.MinRadius)
	}
	m.SetDraft(FieldThickness, -0.5)
	if got := m.Draft().Thickness; got != 0 {
		t.Fatalf("Thickness = %v, want clamped to 0", got)
	}
	m.SetDraft(FieldThickness, 0)
	if got := m.Draft().Thickness; got != 0 {
		t.Fatalf("zero thickness rejected: %v", got)
	}
}

func TestSetDraftTextEmptyRestoresDefault(t *testing.T) {
	m := NewModel(stargeom.Default())
	m.SetDraft(FieldOuterRadius, 2.5)

	for _, s := range []string{"", "   ", "\t"} {
		if err := m.SetDraftText(FieldOuterRadius, s); err != nil {
			t.Fatalf("SetDraftText(%q) returned %v", s, err)
		}
		if got := m.Draft().OuterRadius; got != Spec(FieldOuterRadius).Default {
			t.Fatalf("SetDraftText(%q) left OuterRadius %v, want default", s, got)
		}
		m.SetDraft(FieldOuterRadius, 2.5)
	}
}

func TestSetDraftTextRejectsGarbage(t *testing.T) {
	m := NewModel(stargeom.Default())
	m.SetDraft(FieldOuterRadius, 2.5)
	m.Commit()
	before := m.Draft()

	for _, s := range []string{"abc", "1.2.3", "--4", "NaN", "+Inf", "Infinity", "0x", "1e999999"} {
		err := m.SetDraftText(FieldOuterRadius, s)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("SetDraftText(%q) = %v, want ErrInvalidInput", s, err)
		}
		if m.Draft() != before {
			t.Fatalf("SetDraftText(%q) modified draft: %+v", s, m.Draft())
		}
		if m.Dirty() {
			t.Fatalf("SetDraftText(%q) dirtied the model", s)
		}
	}
}

func TestSetDraftTextParsesAndClamps(t *testing.T) {
	m := NewModel(stargeom.Default())

	if err := m.SetDraftText(FieldOuterRadius, " 1.75 "); err != nil {
		t.Fatalf("SetDraftText: %v", err)
	}
	if got := m.Draft().OuterRadius; got != 1.75 {
		t.Fatalf("OuterRadius = %v, want 1.75", got)
	}

	if err := m.SetDraftText(FieldSpikes, "500"); err != nil {
		t.Fatalf("SetDraftText: %v", err)
	}
	if got := m.Draft().SpikeCount; got != stargeom.MaxSpikes {
		t.Fatalf("SpikeCount = %d, want clamped to %d", got, stargeom.MaxSpikes)
	}
}

func TestCommitReturnsCommitted(t *testing.T) {
	m := NewModel(stargeom.Default())
	m.SetDraft(FieldSpikes, 12)
	m.SetDraft(FieldThickness, 0.3)

	got := m.Commit()
	if got != m.Committed() {
		t.Fatalf("Commit returned %+v, committed is %+v", got, m.Committed())
	}
	if got.SpikeCount != 12 || got.Thickness != 0.3 {
		t.Fatalf("Commit lost edits: %+v", got)
	}
}

func TestNewModelNormalizes(t *testing.T) {
	p := stargeom.Params{
		SpikeCount:  1,
		OuterRadius: -2,
		InnerRadius: 7,
		GlobalScale: 0,
	}
	m := NewModel(p)
	c := m.Committed()
	if c.SpikeCount != stargeom.MinSpikes {
		t.Fatalf("SpikeCount = %d, want %d", c.SpikeCount, stargeom.MinSpikes)
	}
	if c.InnerRadius >= c.OuterRadius {
		t.Fatalf("normalization kept inner %v >= outer %v", c.InnerRadius, c.OuterRadius)
	}
	if m.Dirty() {
		t.Fatalf("fresh model dirty after normalization")
	}
}

func TestLoadPreset(t *testing.T) {
	m := NewModel(stargeom.Default())
	m.SetDraft(FieldSpikes, 20)

	p := stargeom.Default()
	p.SpikeCount = 999 // out of range on purpose
	p.Is3D = true
	m.LoadPreset(p)

	if m.Dirty() {
		t.Fatalf("model dirty right after LoadPreset")
	}
	if got := m.Committed().SpikeCount; got != stargeom.MaxSpikes {
		t.Fatalf("preset spike count not normalized: %d", got)
	}
	if !m.Is3D() {
		t.Fatalf("preset shape type not applied")
	}
}

func TestToPreset(t *testing.T) {
	m := NewModel(stargeom.Default())
	m.SetDraft(FieldSpikes, 8)
	m.Commit()
	m.SetDraft(FieldSpikes, 11) // uncommitted edit must not leak

	p := m.ToPreset("eight")
	if p.Name != "eight" {
		t.Fatalf("preset name = %q", p.Name)
	}
	if p.Params.SpikeCount != 8 {
		t.Fatalf("preset captured draft instead of committed: %+v", p.Params)
	}
}

func TestValueReadsDraft(t *testing.T) {
	m := NewModel(stargeom.Default())
	m.SetDraft(FieldInnerRadius, 0.33)

	if got := m.Value(FieldInnerRadius); got != 0.33 {
		t.Fatalf("Value(inner) = %v, want 0.33", got)
	}
	if got := m.Value(FieldSpikes); got != 5 {
		t.Fatalf("Value(spikes) = %v, want 5", got)
	}
}
