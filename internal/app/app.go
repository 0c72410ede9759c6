//go:build ebiten

package app

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"starmesh/internal/create"
	"starmesh/internal/panel"
	"starmesh/internal/preset"
	"starmesh/internal/regen"
	"starmesh/internal/render"
	"starmesh/internal/scene"
	"starmesh/internal/session"
	"starmesh/internal/ui"
)

const (
	sidebarWidth = 200
	panelWidth   = 240
	formWidth    = 280

	// orbitSpeed converts pointer travel to camera radians per pixel.
	orbitSpeed = 0.01
)

// editKeys maps the ebiten keys the panels care about. Order matters only
// for determinism when several keys land on one frame.
var editKeys = []struct {
	key   ebiten.Key
	panel panel.Key
}{
	{ebiten.KeyEnter, panel.KeyEnter},
	{ebiten.KeyNumpadEnter, panel.KeyEnter},
	{ebiten.KeyEscape, panel.KeyEscape},
	{ebiten.KeyBackspace, panel.KeyBackspace},
	{ebiten.KeyDelete, panel.KeyDelete},
	{ebiten.KeyArrowLeft, panel.KeyLeft},
	{ebiten.KeyArrowRight, panel.KeyRight},
	{ebiten.KeyHome, panel.KeyHome},
	{ebiten.KeyEnd, panel.KeyEnd},
}

// Game adapts the scene, the edit session, and the views to the
// ebiten.Game interface.
type Game struct {
	log *logrus.Logger
	set Settings

	scene     *scene.Scene
	scenePath string
	store     *preset.Store

	viewport  *render.Viewport
	sidebar   *ui.Sidebar
	panelView *ui.PanelView
	formView  *ui.FormView
	overlay   *ui.Overlay

	clock   *regen.Clock
	session *session.EditSession

	form         *create.Form
	formCtrl     *panel.Controller
	formRowsHeld bool

	width         int
	height        int
	sidebarHidden bool

	orbiting   bool
	orbitMoved bool
	lastX      int
	lastY      int
}

// New constructs a Game around a scene. The preset store rides in the
// scene's property table, so presets persist with the document.
func New(sc *scene.Scene, scenePath string, set Settings, log *logrus.Logger) *Game {
	g := &Game{
		log:       log,
		set:       set,
		scene:     sc,
		scenePath: scenePath,
		store:     preset.NewStore(sc.PropSlot(preset.SlotKey), log),
		viewport:  render.NewViewport(),
		sidebar:   ui.NewSidebar(),
		panelView: ui.NewPanelView(),
		formView:  ui.NewFormView(),
		overlay:   ui.NewOverlay(),
		clock:     regen.NewClock(),
		width:     set.Window.Width,
		height:    set.Window.Height,
	}
	g.layout()
	return g
}

func (g *Game) layout() {
	contentH := g.height - ui.OverlayHeight
	left := sidebarWidth
	if g.sidebarHidden {
		left = 0
	}
	g.sidebar.SetBounds(image.Rect(0, 0, left, contentH))
	right := g.width
	if g.session != nil {
		g.session.Panel().SetBounds(image.Rect(g.width-panelWidth, 0, g.width, contentH))
		right = g.width - panelWidth
	}
	g.viewport.SetBounds(image.Rect(left, 0, right, contentH))
}

// Update handles one frame of input and fires the rebuild clock.
func (g *Game) Update() error {
	g.layout()
	g.overlay.Update()

	x, y := ebiten.CursorPosition()
	mods := readMods()

	if g.form != nil {
		g.updateForm(x, y, mods)
	} else {
		if err := g.updateKeys(mods); err != nil {
			return err
		}
		g.updatePointer(x, y, mods)
		if g.session != nil && g.session.Panel().TakeCloseRequest() {
			g.selectObject(-1)
		}
	}

	if g.clock.Fire() && g.session != nil {
		g.session.Tick()
	}
	g.lastX, g.lastY = x, y
	return nil
}

func (g *Game) updateKeys(mods panel.Mods) error {
	var pnl *panel.EditPanel
	if g.session != nil {
		pnl = g.session.Panel()
	}

	consumed := map[panel.Key]bool{}
	if pnl != nil {
		for _, r := range ebiten.AppendInputChars(nil) {
			pnl.TypeRune(r)
		}
		for _, m := range editKeys {
			if inpututil.IsKeyJustPressed(m.key) && pnl.Key(m.panel, mods) {
				consumed[m.panel] = true
			}
		}
		if pnl.Capturing() {
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !consumed[panel.KeyEscape] {
		if g.scene.SelectedIndex() >= 0 {
			g.selectObject(-1)
		} else {
			return ebiten.Termination
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.sidebarHidden = !g.sidebarHidden
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.openForm()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveScene()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) && pnl != nil {
		pnl.OpenSaveDialog()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) && !consumed[panel.KeyDelete] {
		g.removeSelected()
	}
	return nil
}

func (g *Game) updatePointer(x, y int, mods panel.Mods) {
	if _, wy := ebiten.Wheel(); wy != 0 && image.Pt(x, y).In(g.viewport.Bounds()) {
		g.viewport.Camera().Zoom(float32(wy))
		g.viewport.RequestRedraw()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.press(x, y, mods)
	}

	if g.orbiting {
		if x != g.lastX || y != g.lastY {
			g.viewport.Camera().Orbit(float32(x-g.lastX)*orbitSpeed, float32(y-g.lastY)*orbitSpeed)
			g.viewport.RequestRedraw()
			g.orbitMoved = true
		}
	} else if g.session != nil {
		g.session.Panel().Move(x, y, mods)
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.release(x, y, mods)
	}
}

func (g *Game) press(x, y int, mods panel.Mods) {
	if g.session != nil && g.session.Panel().Press(x, y, mods) {
		return
	}
	if hit, idx := g.sidebar.Hit(x, y, len(g.scene.Objects), g.store.Len()); hit != ui.SidebarHitNone {
		switch hit {
		case ui.SidebarHitObject:
			g.selectObject(idx)
		case ui.SidebarHitPreset:
			g.applyPreset(idx)
		case ui.SidebarHitCreate:
			g.openForm()
		}
		return
	}
	if image.Pt(x, y).In(g.viewport.Bounds()) {
		if idx := g.viewport.Pick(x, y, g.scene); idx >= 0 {
			g.selectObject(idx)
			return
		}
		g.orbiting = true
		g.orbitMoved = false
		g.lastX, g.lastY = x, y
	}
}

func (g *Game) release(x, y int, mods panel.Mods) {
	if g.orbiting {
		g.orbiting = false
		if !g.orbitMoved {
			g.selectObject(-1)
		}
		return
	}
	if g.session != nil {
		g.session.Panel().Release(x, y, mods)
	}
}

func (g *Game) updateForm(x, y int, mods panel.Mods) {
	if g.form.NameEditing() {
		for _, r := range ebiten.AppendInputChars(nil) {
			g.form.NameTypeRune(r)
		}
		for _, m := range editKeys {
			if inpututil.IsKeyJustPressed(m.key) {
				g.form.NameKey(m.panel)
			}
		}
	} else {
		for _, r := range ebiten.AppendInputChars(nil) {
			g.formCtrl.TypeRune(r)
		}
		for _, m := range editKeys {
			if !inpututil.IsKeyJustPressed(m.key) {
				continue
			}
			if m.panel == panel.KeyEscape && !g.formCtrl.Busy() {
				g.closeForm()
				return
			}
			if m.panel == panel.KeyEnter && !g.formCtrl.Capturing() {
				g.createFromForm()
				return
			}
			if err := g.formCtrl.Key(m.panel, mods); err != nil {
				g.log.WithError(err).Warn("field input rejected")
			}
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.formPress(x, y, mods)
	}
	if g.form == nil {
		return
	}
	box := g.formView.Box(g.width, g.height, g.formCtrl)
	if g.formRowsHeld {
		g.formCtrl.Move(x-box.Min.X, y-box.Min.Y, mods)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.formRowsHeld {
		g.formRowsHeld = false
		g.formCtrl.Release(x-box.Min.X, y-box.Min.Y, mods)
	}
}

func (g *Game) formPress(x, y int, mods panel.Mods) {
	hit := g.formView.Hit(x, y, g.width, g.height, g.formCtrl)
	if hit != ui.FormHitName && g.form.NameEditing() {
		g.form.CancelNameEdit()
	}
	switch hit {
	case ui.FormHitName:
		g.formCtrl.Deactivate()
		g.form.BeginNameEdit()
	case ui.FormHitToggle3D:
		g.form.Toggle3D()
		g.formCtrl = panel.NewController(g.form.Model(), formWidth)
	case ui.FormHitTogglePreset:
		g.form.ToggleUsePreset()
	case ui.FormHitPresetPrev:
		if g.form.UsePreset() {
			g.form.CyclePreset(-1)
		}
	case ui.FormHitPresetNext:
		if g.form.UsePreset() {
			g.form.CyclePreset(1)
		}
	case ui.FormHitCollectionPrev:
		g.form.CycleCollection(-1)
	case ui.FormHitCollectionNext:
		g.form.CycleCollection(1)
	case ui.FormHitCreate:
		g.createFromForm()
	case ui.FormHitCancel:
		g.closeForm()
	case ui.FormHitRows:
		box := g.formView.Box(g.width, g.height, g.formCtrl)
		g.formCtrl.Press(x-box.Min.X, y-box.Min.Y, mods)
		g.formRowsHeld = true
	}
}

func (g *Game) openForm() {
	if g.session != nil {
		g.session.Panel().Deactivate()
	}
	g.form = create.NewForm(g.store, g.scene.Collections)
	g.form.SetPattern(g.set.Create.NamePattern)
	g.formCtrl = panel.NewController(g.form.Model(), formWidth)
}

func (g *Game) closeForm() {
	g.form = nil
	g.formCtrl = nil
	g.formRowsHeld = false
}

func (g *Game) createFromForm() {
	opts, err := g.form.Resolve()
	if err != nil {
		g.log.WithError(err).Warn("create failed")
		return
	}
	g.closeForm()
	obj := g.scene.AddObject(opts.Name, opts.Collection, opts.Params)
	g.log.WithFields(logrus.Fields{
		"object":     obj.Name,
		"collection": obj.Collection,
		"spikes":     obj.Params.SpikeCount,
	}).Info("star created")
	g.selectObject(g.scene.SelectedIndex())
}

// selectObject switches the edit session to object i; i < 0 deselects.
// The old session is torn down first so its timer and edit state die with
// it.
func (g *Game) selectObject(i int) {
	if g.session != nil {
		g.session.Close()
		g.session = nil
	}
	if i < 0 {
		g.scene.Deselect()
		g.viewport.RequestRedraw()
		return
	}
	g.scene.Select(i)
	obj := g.scene.Selected()
	if obj == nil {
		g.viewport.RequestRedraw()
		return
	}
	g.session = session.Open(obj, g.store, g.clock, g.viewport, session.Options{
		PanelWidth: panelWidth,
		Interval:   g.set.Interval(),
	}, g.log)
	g.layout()
	g.viewport.RequestRedraw()
}

func (g *Game) applyPreset(i int) {
	names := g.store.Names()
	if i < 0 || i >= len(names) {
		return
	}
	if g.session == nil {
		g.log.WithField("preset", names[i]).Debug("preset click ignored, no object selected")
		return
	}
	g.session.Panel().ApplyPreset(names[i])
}

func (g *Game) removeSelected() {
	obj := g.scene.Selected()
	if obj == nil {
		return
	}
	if g.session != nil {
		g.session.Close()
		g.session = nil
	}
	g.scene.RemoveSelected()
	g.viewport.RequestRedraw()
	g.log.WithField("object", obj.Name).Info("object removed")
}

func (g *Game) saveScene() {
	if err := g.scene.SaveFile(g.scenePath); err != nil {
		g.log.WithError(err).Error("scene save failed")
		return
	}
	g.log.WithField("path", g.scenePath).Info("scene saved")
}

func (g *Game) status() string {
	s := fmt.Sprintf("%d stars  %d presets", len(g.scene.Objects), g.store.Len())
	if obj := g.scene.Selected(); obj != nil {
		s += "  [" + obj.Name + "]"
	}
	return s
}

// Draw renders the viewport, the sidebar, the edit panel when a session is
// open, the status bar, and the create dialog on top.
func (g *Game) Draw(screen *ebiten.Image) {
	g.viewport.Draw(screen, g.scene)
	if !g.sidebarHidden {
		g.sidebar.Draw(screen, g.scene, g.store.Names())
	}
	if g.session != nil {
		g.panelView.Draw(screen, g.session.Panel())
	}
	g.overlay.Draw(screen, g.status())
	if g.form != nil {
		g.formView.Draw(screen, g.form, g.formCtrl)
	}
}

// Layout reports the logical screen size and tracks window resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func readMods() panel.Mods {
	return panel.Mods{
		Shift: ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight),
	}
}
