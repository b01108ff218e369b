package component

import (
	"image/color"

	"github.com/milk9111/platformer/common"
)

// Particle is a short-lived cosmetic square in world space.
type Particle struct {
	Pos     common.Vec2
	Vel     common.Vec2
	Size    float64
	Gravity float64
	Color   color.Color
	// Shrink is subtracted from Size every tick.
	Shrink float64
}

var ParticleComponent = NewComponent[Particle]()
