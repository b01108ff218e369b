package system

import (
	"log"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// RespawnSystem puts controllers that fell below KillY back on their spawn
// point.
type RespawnSystem struct {
	KillY float64
}

func NewRespawnSystem(killY float64) *RespawnSystem { return &RespawnSystem{KillY: killY} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.KinematicComponent.Kind(), component.SpawnComponent.Kind(), func(e ecs.Entity, k *component.Kinematic, sp *component.Spawn) {
		if k.Controller == nil || k.Controller.Position().Y >= s.KillY {
			return
		}
		log.Printf("respawn: entity %s fell to y=%.2f", e, k.Controller.Position().Y)
		Respawn(w, e)
	})
}

// Respawn resets e's controller to its spawn point and snaps the camera.
func Respawn(w *ecs.World, e ecs.Entity) {
	k, ok := ecs.Get(w, e, component.KinematicComponent.Kind())
	if !ok || k.Controller == nil {
		return
	}
	sp, ok := ecs.Get(w, e, component.SpawnComponent.Kind())
	if !ok {
		return
	}
	k.Controller.Reset(sp.Position)
	if _, cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		cam.Snap = true
	}
}
