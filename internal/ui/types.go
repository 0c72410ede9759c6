package ui

// OverlayHeight is the pixel height of the bottom status bar.
const OverlayHeight = 22

// SidebarHit identifies what a sidebar click landed on.
type SidebarHit int

const (
	SidebarHitNone SidebarHit = iota
	SidebarHitObject
	SidebarHitPreset
	SidebarHitCreate
)

// FormHit identifies what a create-form click landed on.
type FormHit int

const (
	FormHitNone FormHit = iota
	FormHitRows
	FormHitName
	FormHitToggle3D
	FormHitTogglePreset
	FormHitPresetPrev
	FormHitPresetNext
	FormHitCollectionPrev
	FormHitCollectionNext
	FormHitCreate
	FormHitCancel
)
