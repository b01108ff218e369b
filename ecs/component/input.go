package component

import (
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/input"
)

// Input holds the sampler for an entity and the intent it produced this
// frame.
type Input struct {
	Sampler input.Sampler
	Frame   controller.FrameInput
}

var InputComponent = NewComponent[Input]()
