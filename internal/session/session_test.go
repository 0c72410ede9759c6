package session

import (
	"image"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"starmesh/internal/panel"
	"starmesh/internal/preset"
	"starmesh/internal/scene"
	"starmesh/pkg/stargeom"
)

type stubTicker struct {
	requests int
	cancels  int
}

func (s *stubTicker) Request(time.Duration) { s.requests++ }
func (s *stubTicker) Cancel()               { s.cancels++ }

type stubRedrawer struct{ count int }

func (s *stubRedrawer) RequestRedraw() { s.count++ }

type sessionFixture struct {
	scene  *scene.Scene
	store  *preset.Store
	ticker *stubTicker
	redraw *stubRedrawer
	log    *logrus.Logger
}

func newFixture(t *testing.T) *sessionFixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	sc := scene.New()
	return &sessionFixture{
		scene:  sc,
		store:  preset.NewStore(sc.PropSlot(preset.SlotKey), log),
		ticker: &stubTicker{},
		redraw: &stubRedrawer{},
		log:    log,
	}
}

func (f *sessionFixture) open(obj *scene.Object) *EditSession {
	s := Open(obj, f.store, f.ticker, f.redraw, Options{}, f.log)
	s.Panel().SetBounds(image.Rect(0, 0, 240, 480))
	return s
}

func pressIncSpikes(p *panel.EditPanel) {
	r := p.Rows()[0].IncRect.Add(p.Bounds().Min)
	x := (r.Min.X + r.Max.X) / 2
	y := (r.Min.Y + r.Max.Y) / 2
	p.Press(x, y, panel.Mods{})
}

func TestEditFlowsToObject(t *testing.T) {
	f := newFixture(t)
	obj := f.scene.AddObject("Star_05", "", stargeom.Default())
	versionBefore := obj.MeshVersion()

	s := f.open(obj)
	pressIncSpikes(s.Panel())
	if f.ticker.requests != 1 {
		t.Fatalf("edit issued %d timer requests, want 1", f.ticker.requests)
	}
	if obj.Params.SpikeCount != 5 {
		t.Fatalf("edit reached the object before the tick")
	}

	s.Tick()
	if obj.Params.SpikeCount != 6 {
		t.Fatalf("object params = %+v, want 6 spikes committed", obj.Params)
	}
	if got := obj.Mesh.VertexCount(); got != 13 {
		t.Fatalf("object mesh has %d vertices, want 13", got)
	}
	if obj.MeshVersion() != versionBefore+1 {
		t.Fatalf("mesh version did not advance")
	}
	if f.redraw.count != 1 {
		t.Fatalf("tick requested %d redraws, want 1", f.redraw.count)
	}
}

func TestAbandonedDraftNeverReachesObject(t *testing.T) {
	f := newFixture(t)
	obj := f.scene.AddObject("Star_05", "", stargeom.Default())

	s := f.open(obj)
	pressIncSpikes(s.Panel())
	s.Close()

	if obj.Params.SpikeCount != 5 {
		t.Fatalf("closed session leaked a draft: %+v", obj.Params)
	}
	if f.ticker.cancels != 1 {
		t.Fatalf("close cancelled the timer %d times, want 1", f.ticker.cancels)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t)
	a := f.scene.AddObject("a", "", stargeom.Default())
	b := f.scene.AddObject("b", "", stargeom.Default())

	sa := f.open(a)
	pressIncSpikes(sa.Panel())
	sa.Close()

	sb := f.open(b)
	if sb.Panel().Rows()[0].Value != "5" {
		t.Fatalf("new session inherited state: %q", sb.Panel().Rows()[0].Value)
	}
	sb.Tick() // idle tick: nothing dirty on a fresh session
	if b.MeshVersion() != 1 {
		t.Fatalf("fresh session rebuilt an untouched object")
	}
}

func TestPresetsCrossSessions(t *testing.T) {
	f := newFixture(t)
	a := f.scene.AddObject("a", "", stargeom.Default())
	p := stargeom.Default()
	p.SpikeCount = 9
	b := f.scene.AddObject("b", "", p)

	sb := f.open(b)
	sb.Panel().OpenSaveDialog()
	sb.Panel().Key(panel.KeyEnter, panel.Mods{}) // keeps the seeded name
	sb.Close()

	sa := f.open(a)
	if !sa.Panel().ApplyPreset("Preset") {
		t.Fatalf("preset saved in one session not visible in another")
	}
	if a.Params.SpikeCount != 9 {
		t.Fatalf("applied preset did not reach the object: %+v", a.Params)
	}
	if got := a.Mesh.VertexCount(); got != 19 {
		t.Fatalf("object mesh has %d vertices, want 19", got)
	}
}
