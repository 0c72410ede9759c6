//go:build !ebiten

package ui

import (
	"image"

	"starmesh/internal/create"
	"starmesh/internal/panel"
)

// FormView is a no-op placeholder for headless builds.
type FormView struct{}

// NewFormView constructs a stub renderer.
func NewFormView() *FormView { return &FormView{} }

// Box returns the zero rectangle in the headless build.
func (v *FormView) Box(int, int, *panel.Controller) image.Rectangle { return image.Rectangle{} }

// Hit reports nothing in the headless build.
func (v *FormView) Hit(int, int, int, int, *panel.Controller) FormHit { return FormHitNone }

// Draw is a no-op in the headless build.
func (v *FormView) Draw(any, *create.Form, *panel.Controller) {}
