package preset

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"starmesh/pkg/stargeom"
)

type memSlot struct {
	value string
	ok    bool
	sets  int
}

func (m *memSlot) Get() (string, bool) { return m.value, m.ok }

func (m *memSlot) Set(value string) {
	m.value = value
	m.ok = true
	m.sets++
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSaveLoadRoundTrip(t *testing.T) {
	slot := &memSlot{}
	store := NewStore(slot, quietLogger())

	p := stargeom.Default()
	p.SpikeCount = 8
	p.Is3D = true
	p.Thickness = 0.35
	store.Save("eight-point", p)

	got, ok := store.Load("eight-point")
	if !ok {
		t.Fatalf("Load(eight-point) reported missing after Save")
	}
	if got != p {
		t.Fatalf("Load returned %+v, want %+v", got, p)
	}
	if slot.sets != 1 {
		t.Fatalf("Save wrote slot %d times, want 1", slot.sets)
	}
}

func TestSaveOverwritesInPlace(t *testing.T) {
	slot := &memSlot{}
	store := NewStore(slot, quietLogger())

	a := stargeom.Default()
	a.SpikeCount = 5
	b := stargeom.Default()
	b.SpikeCount = 7

	store.Save("first", a)
	store.Save("second", a)
	store.Save("first", b)

	if store.Len() != 2 {
		t.Fatalf("Len = %d after overwrite, want 2", store.Len())
	}
	names := store.Names()
	if names[0] != "first" || names[1] != "second" {
		t.Fatalf("overwrite reordered names: %v", names)
	}
	got, _ := store.Load("first")
	if got.SpikeCount != 7 {
		t.Fatalf("overwritten preset has SpikeCount %d, want 7", got.SpikeCount)
	}
}

func TestPersistsAcrossStores(t *testing.T) {
	slot := &memSlot{}
	first := NewStore(slot, quietLogger())

	p := stargeom.Default()
	p.OuterRadius = 2.5
	p.InnerRadius = 1.25
	first.Save("wide", p)
	first.Save("narrow", stargeom.Default())

	second := NewStore(slot, quietLogger())
	if second.Len() != 2 {
		t.Fatalf("reloaded store has %d presets, want 2", second.Len())
	}
	names := second.Names()
	if names[0] != "wide" || names[1] != "narrow" {
		t.Fatalf("reloaded store lost order: %v", names)
	}
	got, ok := second.Load("wide")
	if !ok || got != p {
		t.Fatalf("reloaded Load(wide) = %+v ok=%v, want %+v", got, ok, p)
	}
}

func TestEmptySlotStartsEmpty(t *testing.T) {
	store := NewStore(&memSlot{}, quietLogger())
	if store.Len() != 0 {
		t.Fatalf("empty slot produced %d presets", store.Len())
	}
	if _, ok := store.Load("anything"); ok {
		t.Fatalf("Load on empty store reported a preset")
	}
}

func TestCorruptDocumentStartsEmpty(t *testing.T) {
	for _, raw := range []string{
		"not json at all",
		`{"truncated": {"spikeCount": 5`,
		`["wrong", "shape"]`,
		`{"entry": "not an object"}`,
	} {
		slot := &memSlot{value: raw, ok: true}
		store := NewStore(slot, quietLogger())
		if store.Len() != 0 {
			t.Fatalf("corrupt document %q produced %d presets", raw, store.Len())
		}
		store.Save("fresh", stargeom.Default())
		if store.Len() != 1 {
			t.Fatalf("store unusable after corrupt document %q", raw)
		}
	}
}

func TestReadsOlderDocuments(t *testing.T) {
	slot := &memSlot{
		value: `{"old": {"spikeCount": 9, "futureField": true}}`,
		ok:    true,
	}
	store := NewStore(slot, quietLogger())

	got, ok := store.Load("old")
	if !ok {
		t.Fatalf("older document entry did not load")
	}
	if got.SpikeCount != 9 {
		t.Fatalf("SpikeCount = %d, want 9 from document", got.SpikeCount)
	}
	def := stargeom.Default()
	if got.OuterRadius != def.OuterRadius || got.InnerRadius != def.InnerRadius {
		t.Fatalf("missing fields not defaulted: %+v", got)
	}
}

func TestDocumentShape(t *testing.T) {
	slot := &memSlot{}
	store := NewStore(slot, quietLogger())

	p := stargeom.Default()
	p.Is3D = true
	store.Save("shape", p)

	var doc map[string]map[string]any
	if err := json.Unmarshal([]byte(slot.value), &doc); err != nil {
		t.Fatalf("slot does not hold a flat JSON object: %v", err)
	}
	entry, ok := doc["shape"]
	if !ok {
		t.Fatalf("document missing preset name key: %s", slot.value)
	}
	for _, key := range []string{
		"is3D", "spikeCount", "outerRadius", "innerRadius", "globalScale", "thickness",
	} {
		if _, ok := entry[key]; !ok {
			t.Fatalf("document entry missing %q: %s", key, slot.value)
		}
	}
	if len(entry) != 6 {
		t.Fatalf("document entry has %d keys, want 6: %s", len(entry), slot.value)
	}
}
