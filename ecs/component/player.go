package component

import (
	"image/color"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/juice"
)

// Kinematic wraps the platformer controller that moves an entity.
type Kinematic struct {
	Controller *controller.Controller
}

var KinematicComponent = NewComponent[Kinematic]()

// Spawn is where an entity is put back after falling out of the level.
type Spawn struct {
	Position common.Vec2
}

var SpawnComponent = NewComponent[Spawn]()

// Juice holds cosmetic state driven by the controller's pulses.
type Juice struct {
	State   *juice.State
	Reactor juice.Reactor
	// DustColor tints the particles spawned for this entity.
	DustColor color.Color
}

var JuiceComponent = NewComponent[Juice]()

// Body is the drawn rectangle of a controller-driven entity.
type Body struct {
	Color color.Color
}

var BodyComponent = NewComponent[Body]()
