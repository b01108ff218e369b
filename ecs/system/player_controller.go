package system

import (
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ControllerSystem owns the frame clock and steps every controller with
// its entity's input.
type ControllerSystem struct {
	clock controller.Clock
	dt    float64
}

// NewControllerSystem steps controllers by dt seconds per update.
func NewControllerSystem(dt float64) *ControllerSystem {
	return &ControllerSystem{dt: dt}
}

func (s *ControllerSystem) Clock() controller.Clock { return s.clock }

func (s *ControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.clock = s.clock.Advance(s.dt)
	ecs.ForEach2(w, component.KinematicComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, k *component.Kinematic, in *component.Input) {
		if k.Controller == nil {
			return
		}
		k.Controller.Update(in.Frame, s.clock)
	})
}
