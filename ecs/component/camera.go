package component

import "github.com/milk9111/platformer/common"

// Camera is the world point at the center of the screen.
type Camera struct {
	Center common.Vec2
	Zoom   float64
	// Smoothness is the fraction of the distance to the target covered per
	// tick. Zero snaps.
	Smoothness float64
	// Limits clamps the view to the level; a zero box means unbounded.
	Limits common.Box
	// Snap moves straight to the target on the next update, e.g. after a
	// respawn.
	Snap bool
}

var CameraComponent = NewComponent[Camera]()
