package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/input"
)

// InputSystem samples input for every entity with an Input component once
// per frame.
type InputSystem struct {
	read func() input.Raw
}

// NewInputSystem polls the real keyboard and gamepad.
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// NewInputSystemFrom reads from src instead of the real devices.
func NewInputSystemFrom(src func() input.Raw) *InputSystem {
	return &InputSystem{read: src}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		if i.read == nil {
			in.Frame = in.Sampler.Poll()
			return
		}
		in.Frame = in.Sampler.Sample(i.read())
	})
}

// Reset adopts the current device state on every sampler so a jump held
// across a pause does not fire on resume.
func (i *InputSystem) Reset(w *ecs.World) {
	if w == nil {
		return
	}
	raw := i.raw()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Sampler.ResetTo(raw)
		in.Frame = in.Sampler.Sample(raw)
	})
}

func (i *InputSystem) raw() input.Raw {
	if i.read == nil {
		return input.ReadDevices()
	}
	return i.read()
}
