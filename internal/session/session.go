package session

import (
	"time"

	"github.com/sirupsen/logrus"

	"starmesh/internal/panel"
	"starmesh/internal/param"
	"starmesh/internal/preset"
	"starmesh/internal/regen"
	"starmesh/internal/scene"
	"starmesh/pkg/stargeom"
)

// EditSession binds the live-edit machinery to one scene object. Opening a
// session builds fresh model, scheduler, and panel state; nothing is
// shared between sessions, so stale timers or text buffers cannot leak
// across object switches.
type EditSession struct {
	object *scene.Object
	model  *param.Model
	sched  *regen.Scheduler
	panel  *panel.EditPanel
}

// objectSink writes committed parameters and rebuilt geometry back to the
// bound object in one step.
type objectSink struct {
	object *scene.Object
	model  *param.Model
}

func (s objectSink) Replace(m stargeom.MeshBuffers) {
	s.object.Params = s.model.Committed()
	s.object.ReplaceMesh(m)
}

// Options adjust a session beyond its defaults.
type Options struct {
	PanelWidth int
	Interval   time.Duration
}

// Open starts an edit session on obj.
func Open(obj *scene.Object, store *preset.Store, ticker regen.TickRequester, redraw regen.Redrawer, opt Options, log *logrus.Logger) *EditSession {
	width := opt.PanelWidth
	if width <= 0 {
		width = 240
	}
	model := param.NewModel(obj.Params)
	sched := regen.NewScheduler(model, ticker, objectSink{object: obj, model: model}, redraw, log)
	if opt.Interval > 0 {
		sched.SetInterval(opt.Interval)
	}
	ctrl := panel.NewController(model, width)
	pnl := panel.NewEditPanel(ctrl, model, sched, store, obj.Name, log)
	return &EditSession{object: obj, model: model, sched: sched, panel: pnl}
}

// Object returns the bound object.
func (s *EditSession) Object() *scene.Object { return s.object }

// Panel returns the session's edit panel.
func (s *EditSession) Panel() *panel.EditPanel { return s.panel }

// Tick runs one scheduler tick; the host calls it when its timer fires.
func (s *EditSession) Tick() { s.sched.Tick() }

// Close tears the session down and stops its timer.
func (s *EditSession) Close() { s.panel.Close() }
