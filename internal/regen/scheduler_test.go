package regen

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"starmesh/internal/param"
	"starmesh/pkg/stargeom"
)

type fakeTicker struct {
	requests []time.Duration
	cancels  int
}

func (f *fakeTicker) Request(d time.Duration) { f.requests = append(f.requests, d) }
func (f *fakeTicker) Cancel()                 { f.cancels++ }

type fakeSink struct {
	meshes []stargeom.MeshBuffers
}

func (f *fakeSink) Replace(m stargeom.MeshBuffers) { f.meshes = append(f.meshes, m) }

type fakeRedrawer struct {
	count int
}

func (f *fakeRedrawer) RequestRedraw() { f.count++ }

func newTestScheduler() (*Scheduler, *param.Model, *fakeTicker, *fakeSink, *fakeRedrawer) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	model := param.NewModel(stargeom.Default())
	ticker := &fakeTicker{}
	sink := &fakeSink{}
	redraw := &fakeRedrawer{}
	return NewScheduler(model, ticker, sink, redraw, log), model, ticker, sink, redraw
}

func TestTickRebuildsDirtyDraft(t *testing.T) {
	sched, model, ticker, sink, redraw := newTestScheduler()

	model.SetDraft(param.FieldSpikes, 6)
	sched.Arm()
	if len(ticker.requests) != 1 || ticker.requests[0] != DefaultInterval {
		t.Fatalf("Arm requested %v, want one request at %v", ticker.requests, DefaultInterval)
	}

	sched.Tick()
	if model.Dirty() {
		t.Fatalf("tick left the model dirty")
	}
	if len(sink.meshes) != 1 {
		t.Fatalf("tick produced %d meshes, want 1", len(sink.meshes))
	}
	if redraw.count != 1 {
		t.Fatalf("tick requested %d redraws, want 1", redraw.count)
	}
	// 6 spikes flat: 12 ring vertices + center, 12 triangles.
	if got := sink.meshes[0].VertexCount(); got != 13 {
		t.Fatalf("rebuilt mesh has %d vertices, want 13", got)
	}
	if got := sink.meshes[0].TriangleCount(); got != 12 {
		t.Fatalf("rebuilt mesh has %d triangles, want 12", got)
	}
}

func TestTickIdleCancelsTimer(t *testing.T) {
	sched, _, ticker, sink, redraw := newTestScheduler()

	sched.Arm()
	sched.Tick()
	if ticker.cancels != 1 {
		t.Fatalf("idle tick cancelled %d times, want 1", ticker.cancels)
	}
	if sched.Armed() {
		t.Fatalf("scheduler still armed after idle tick")
	}
	if len(sink.meshes) != 0 || redraw.count != 0 {
		t.Fatalf("idle tick rebuilt: %d meshes, %d redraws", len(sink.meshes), redraw.count)
	}
}

func TestTimerSurvivesQuietDrag(t *testing.T) {
	sched, _, ticker, sink, _ := newTestScheduler()

	sched.SetDragging(true)
	if !sched.Armed() {
		t.Fatalf("drag start did not arm the timer")
	}

	sched.Tick()
	sched.Tick()
	if ticker.cancels != 0 {
		t.Fatalf("tick cancelled the timer mid-drag")
	}
	if len(sink.meshes) != 0 {
		t.Fatalf("quiet drag tick rebuilt %d meshes", len(sink.meshes))
	}

	sched.SetDragging(false)
	sched.Tick()
	if ticker.cancels != 1 || sched.Armed() {
		t.Fatalf("timer not released after drag: cancels=%d armed=%v", ticker.cancels, sched.Armed())
	}
}

func TestDragRebuildsPerTick(t *testing.T) {
	sched, model, _, sink, redraw := newTestScheduler()

	sched.SetDragging(true)
	model.SetDraft(param.FieldOuterRadius, 1.2)
	sched.Tick()
	model.SetDraft(param.FieldOuterRadius, 1.4)
	sched.Tick()

	if len(sink.meshes) != 2 {
		t.Fatalf("two dirty ticks produced %d meshes, want 2", len(sink.meshes))
	}
	if redraw.count != 2 {
		t.Fatalf("two dirty ticks requested %d redraws, want 2", redraw.count)
	}
	if got := model.Committed().OuterRadius; got != 1.4 {
		t.Fatalf("committed OuterRadius = %v, want 1.4", got)
	}
}

func TestArmIsIdempotent(t *testing.T) {
	sched, model, ticker, _, _ := newTestScheduler()

	model.SetDraft(param.FieldSpikes, 7)
	sched.Arm()
	sched.Arm()
	sched.Arm()
	if len(ticker.requests) != 1 {
		t.Fatalf("repeated Arm issued %d requests, want 1", len(ticker.requests))
	}
}

func TestCoalescesEditsBetweenTicks(t *testing.T) {
	sched, model, _, sink, _ := newTestScheduler()

	sched.Arm()
	model.SetDraft(param.FieldSpikes, 6)
	model.SetDraft(param.FieldSpikes, 9)
	model.SetDraft(param.FieldSpikes, 12)
	sched.Tick()

	if len(sink.meshes) != 1 {
		t.Fatalf("burst of edits produced %d meshes, want 1", len(sink.meshes))
	}
	if got := model.Committed().SpikeCount; got != 12 {
		t.Fatalf("committed SpikeCount = %d, want last edit 12", got)
	}
}

func TestStopCancelsAndClearsDrag(t *testing.T) {
	sched, _, ticker, _, _ := newTestScheduler()

	sched.SetDragging(true)
	sched.Stop()
	if ticker.cancels != 1 {
		t.Fatalf("Stop cancelled %d times, want 1", ticker.cancels)
	}
	if sched.Armed() || sched.Dragging() {
		t.Fatalf("Stop left state behind: armed=%v dragging=%v", sched.Armed(), sched.Dragging())
	}

	sched.Stop()
	if ticker.cancels != 1 {
		t.Fatalf("second Stop cancelled again: %d", ticker.cancels)
	}
}

func TestRebuildRunsWhenClean(t *testing.T) {
	sched, model, ticker, sink, redraw := newTestScheduler()

	p := stargeom.Default()
	p.SpikeCount = 7
	model.LoadPreset(p)
	sched.Rebuild()

	if len(sink.meshes) != 1 || redraw.count != 1 {
		t.Fatalf("Rebuild produced %d meshes, %d redraws", len(sink.meshes), redraw.count)
	}
	if got := sink.meshes[0].VertexCount(); got != 15 {
		t.Fatalf("rebuilt mesh has %d vertices, want 15 for 7 flat spikes", got)
	}
	if len(ticker.requests) != 0 {
		t.Fatalf("Rebuild touched the timer: %v", ticker.requests)
	}
}

func TestSetIntervalAppliesOnArm(t *testing.T) {
	sched, _, ticker, _, _ := newTestScheduler()

	sched.SetInterval(50 * time.Millisecond)
	sched.Arm()
	if ticker.requests[0] != 50*time.Millisecond {
		t.Fatalf("Arm requested %v, want 50ms", ticker.requests[0])
	}

	sched.SetInterval(0) // ignored
	sched.Stop()
	sched.Arm()
	if ticker.requests[1] != 50*time.Millisecond {
		t.Fatalf("zero interval overrode cadence: %v", ticker.requests[1])
	}
}
