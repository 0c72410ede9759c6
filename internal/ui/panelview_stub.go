//go:build !ebiten

package ui

import "starmesh/internal/panel"

// PanelView is a no-op placeholder for headless builds.
type PanelView struct{}

// NewPanelView constructs a stub renderer.
func NewPanelView() *PanelView { return &PanelView{} }

// Draw is a no-op in the headless build.
func (v *PanelView) Draw(any, *panel.EditPanel) {}
