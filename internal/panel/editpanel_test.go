package panel

import (
	"image"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"starmesh/internal/param"
	"starmesh/internal/preset"
	"starmesh/internal/regen"
	"starmesh/pkg/stargeom"
)

type stubTicker struct {
	requests int
	cancels  int
}

func (s *stubTicker) Request(time.Duration) { s.requests++ }
func (s *stubTicker) Cancel()               { s.cancels++ }

type stubSink struct {
	meshes []stargeom.MeshBuffers
}

func (s *stubSink) Replace(m stargeom.MeshBuffers) { s.meshes = append(s.meshes, m) }

type stubRedrawer struct{ count int }

func (s *stubRedrawer) RequestRedraw() { s.count++ }

type stubSlot struct {
	value string
	ok    bool
}

func (s *stubSlot) Get() (string, bool) { return s.value, s.ok }
func (s *stubSlot) Set(v string)        { s.value, s.ok = v, true }

type panelFixture struct {
	panel  *EditPanel
	model  *param.Model
	store  *preset.Store
	ticker *stubTicker
	sink   *stubSink
}

func newTestPanel(t *testing.T) *panelFixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	model := param.NewModel(stargeom.Default())
	ctrl := NewController(model, 240)
	ticker := &stubTicker{}
	sink := &stubSink{}
	sched := regen.NewScheduler(model, ticker, sink, &stubRedrawer{}, log)
	store := preset.NewStore(&stubSlot{}, log)

	p := NewEditPanel(ctrl, model, sched, store, "Star_05", log)
	p.SetBounds(image.Rect(400, 0, 640, 480))
	return &panelFixture{panel: p, model: model, store: store, ticker: ticker, sink: sink}
}

// clickValue presses and releases the center of a row's value rect, in
// screen coordinates.
func (f *panelFixture) clickValue(row int) {
	r := f.panel.Rows()[row].ValueRect.Add(f.panel.Bounds().Min)
	x, y := center(r)
	f.panel.Press(x, y, Mods{})
	f.panel.Release(x, y, Mods{})
}

func TestPanelPressTranslatesCoordinates(t *testing.T) {
	f := newTestPanel(t)

	f.clickValue(rowOuter)
	if f.panel.Rows()[rowOuter].Mode != ModeAllSelected {
		t.Fatalf("click through panel bounds did not select the row")
	}
}

func TestEditsArmTheScheduler(t *testing.T) {
	f := newTestPanel(t)

	r := f.panel.Rows()[rowSpikes].IncRect.Add(f.panel.Bounds().Min)
	x, y := center(r)
	f.panel.Press(x, y, Mods{})
	if f.ticker.requests != 1 {
		t.Fatalf("step issued %d timer requests, want 1", f.ticker.requests)
	}
	if got := f.model.Draft().SpikeCount; got != 6 {
		t.Fatalf("step set spikes %d, want 6", got)
	}
}

func TestOutsideClickSwallowedWhileBusy(t *testing.T) {
	f := newTestPanel(t)

	f.clickValue(rowOuter)
	if !f.panel.Press(10, 10, Mods{}) {
		t.Fatalf("outside click not swallowed while a row was selected")
	}
	if f.panel.Rows()[rowOuter].Mode != ModeIdle {
		t.Fatalf("swallowed click did not abandon the edit")
	}
	if f.model.Dirty() {
		t.Fatalf("swallowed click had side effects on the draft")
	}

	if f.panel.Press(10, 10, Mods{}) {
		t.Fatalf("idle panel consumed an outside click")
	}
}

func TestKeysFallThroughWhenIdle(t *testing.T) {
	f := newTestPanel(t)
	if f.panel.Key(KeyEnter, Mods{}) {
		t.Fatalf("idle panel consumed Enter")
	}
	if f.panel.Key(KeyEscape, Mods{}) {
		t.Fatalf("idle panel consumed Escape")
	}
}

func TestSaveButtonOpensDialog(t *testing.T) {
	f := newTestPanel(t)

	save, _ := f.panel.Buttons()
	x, y := center(save.Add(f.panel.Bounds().Min))
	if !f.panel.Press(x, y, Mods{}) {
		t.Fatalf("save button press not consumed")
	}
	if !f.panel.DialogOpen() {
		t.Fatalf("save button did not raise the dialog")
	}
	if f.panel.TakeCloseRequest() {
		t.Fatalf("save button latched a close request")
	}
}

func TestCloseButtonLatchesRequest(t *testing.T) {
	f := newTestPanel(t)

	f.clickValue(rowOuter)
	_, closeBtn := f.panel.Buttons()
	x, y := center(closeBtn.Add(f.panel.Bounds().Min))
	f.panel.Press(x, y, Mods{})
	if !f.panel.TakeCloseRequest() {
		t.Fatalf("close button did not latch a request")
	}
	if f.panel.TakeCloseRequest() {
		t.Fatalf("close request not cleared after the take")
	}
	if f.panel.Rows()[rowOuter].Mode != ModeIdle {
		t.Fatalf("close press left the row editing")
	}
}

func TestSaveDialogStoresPreset(t *testing.T) {
	f := newTestPanel(t)
	f.model.SetDraft(param.FieldSpikes, 8)
	f.model.Commit()

	f.panel.OpenSaveDialog()
	d := f.panel.Dialog()
	if !d.Open || d.Text != "Preset" || !d.Selected {
		t.Fatalf("dialog did not open seeded and selected: %+v", d)
	}

	for _, r := range "Spiky" {
		f.panel.TypeRune(r)
	}
	if got := f.panel.Dialog().Text; got != "Spiky" {
		t.Fatalf("dialog text = %q", got)
	}
	if !f.panel.Key(KeyEnter, Mods{}) {
		t.Fatalf("dialog did not consume Enter")
	}
	if f.panel.DialogOpen() {
		t.Fatalf("dialog still open after save")
	}

	got, ok := f.store.Load("Spiky")
	if !ok {
		t.Fatalf("preset not stored")
	}
	if got.SpikeCount != 8 {
		t.Fatalf("stored preset has %d spikes, want committed 8", got.SpikeCount)
	}
}

func TestSaveDialogBlankNameClosesSilently(t *testing.T) {
	f := newTestPanel(t)

	f.panel.OpenSaveDialog()
	f.panel.Key(KeyBackspace, Mods{})
	f.panel.Key(KeyEnter, Mods{})

	if f.panel.DialogOpen() {
		t.Fatalf("dialog still open")
	}
	if f.store.Len() != 0 {
		t.Fatalf("blank name saved a preset")
	}
}

func TestSaveDialogEscapeCancels(t *testing.T) {
	f := newTestPanel(t)

	f.panel.OpenSaveDialog()
	f.panel.Key(KeyEscape, Mods{})
	if f.panel.DialogOpen() || f.store.Len() != 0 {
		t.Fatalf("escape did not cancel the dialog cleanly")
	}
}

func TestDialogIsModal(t *testing.T) {
	f := newTestPanel(t)

	f.panel.OpenSaveDialog()
	if !f.panel.Press(10, 10, Mods{}) {
		t.Fatalf("dialog let a press through")
	}
	if !f.panel.Key(KeyLeft, Mods{}) {
		t.Fatalf("dialog let a key through")
	}
	f.clickValue(rowOuter)
	if f.panel.Rows()[rowOuter].Mode != ModeIdle {
		t.Fatalf("row interaction ran behind the dialog")
	}
}

func TestApplyPresetRebuildsImmediately(t *testing.T) {
	f := newTestPanel(t)

	p := stargeom.Default()
	p.SpikeCount = 7
	f.store.Save("seven", p)

	if !f.panel.ApplyPreset("seven") {
		t.Fatalf("ApplyPreset reported missing preset")
	}
	if got := f.model.Committed().SpikeCount; got != 7 {
		t.Fatalf("preset not committed: %d spikes", got)
	}
	if f.model.Dirty() {
		t.Fatalf("model dirty after preset load")
	}
	if len(f.sink.meshes) != 1 {
		t.Fatalf("preset load produced %d meshes, want immediate 1", len(f.sink.meshes))
	}
	if got := f.sink.meshes[0].VertexCount(); got != 15 {
		t.Fatalf("rebuilt mesh has %d vertices, want 15", got)
	}

	if f.panel.ApplyPreset("missing") {
		t.Fatalf("ApplyPreset invented a preset")
	}
}

func TestCloseStopsScheduler(t *testing.T) {
	f := newTestPanel(t)

	r := f.panel.Rows()[rowSpikes].IncRect.Add(f.panel.Bounds().Min)
	x, y := center(r)
	f.panel.Press(x, y, Mods{})
	f.panel.Close()

	if f.ticker.cancels != 1 {
		t.Fatalf("close cancelled the timer %d times, want 1", f.ticker.cancels)
	}
}
