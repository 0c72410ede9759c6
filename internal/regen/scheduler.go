package regen

import (
	"time"

	"github.com/sirupsen/logrus"

	"starmesh/internal/param"
	"starmesh/pkg/stargeom"
)

// DefaultInterval is the rebuild cadence while an edit session is live.
const DefaultInterval = 100 * time.Millisecond

// MeshSink receives rebuilt geometry. Replace swaps the object's mesh in
// one step; callers never see a partially updated buffer.
type MeshSink interface {
	Replace(mesh stargeom.MeshBuffers)
}

// Redrawer schedules one repaint of the viewport.
type Redrawer interface {
	RequestRedraw()
}

// TickRequester arms and cancels the host's repeating timer. Request on an
// already armed timer only updates the interval.
type TickRequester interface {
	Request(interval time.Duration)
	Cancel()
}

// Scheduler coalesces draft edits into periodic mesh rebuilds. Edits arm
// the timer; each tick commits the draft, rebuilds once, and requests one
// redraw. The timer stays armed only while there is work: the first tick
// that finds a clean model and no drag cancels it.
type Scheduler struct {
	model  *param.Model
	ticker TickRequester
	sink   MeshSink
	redraw Redrawer
	log    *logrus.Logger

	interval time.Duration
	armed    bool
	dragging bool
}

// NewScheduler wires a scheduler to one edit session's model and host
// capabilities.
func NewScheduler(model *param.Model, ticker TickRequester, sink MeshSink, redraw Redrawer, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		model:    model,
		ticker:   ticker,
		sink:     sink,
		redraw:   redraw,
		log:      log,
		interval: DefaultInterval,
	}
}

// SetInterval overrides the rebuild cadence. It applies from the next Arm.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Arm starts the timer if it is not already running. Widgets call this
// after every draft edit; repeated calls while armed are no-ops.
func (s *Scheduler) Arm() {
	if s.armed {
		return
	}
	s.ticker.Request(s.interval)
	s.armed = true
}

// SetDragging marks a drag in progress. The timer is kept armed for the
// whole drag even across ticks that find no new edits, so release never
// races the cancel.
func (s *Scheduler) SetDragging(dragging bool) {
	s.dragging = dragging
	if dragging {
		s.Arm()
	}
}

// Dragging reports whether a drag is holding the timer open.
func (s *Scheduler) Dragging() bool { return s.dragging }

// Armed reports whether the timer is currently requested.
func (s *Scheduler) Armed() bool { return s.armed }

// Tick runs one timer callback. Idle sessions cancel the timer; dirty ones
// commit the draft, rebuild the mesh, and request a single redraw.
func (s *Scheduler) Tick() {
	if !s.model.Dirty() && !s.dragging {
		if s.armed {
			s.ticker.Cancel()
			s.armed = false
		}
		return
	}
	if !s.model.Dirty() {
		return
	}
	s.Rebuild()
}

// Rebuild commits the draft and rebuilds the mesh right now, outside the
// timer. Ticks use it for dirty drafts; preset loads use it directly, since
// loading leaves the model clean and a tick would find nothing to do.
func (s *Scheduler) Rebuild() {
	p := s.model.Commit()
	mesh := stargeom.Build(p)
	s.sink.Replace(mesh)
	s.redraw.RequestRedraw()
	s.log.WithFields(logrus.Fields{
		"spikes":    p.SpikeCount,
		"vertices":  mesh.VertexCount(),
		"triangles": mesh.TriangleCount(),
	}).Debug("mesh rebuilt")
}

// Stop cancels the timer regardless of state. Sessions call it on close so
// no tick can arrive for a torn-down panel.
func (s *Scheduler) Stop() {
	s.dragging = false
	if s.armed {
		s.ticker.Cancel()
		s.armed = false
	}
}
