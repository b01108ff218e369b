package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ParticleSystem integrates particle motion. Particles do not collide.
type ParticleSystem struct {
	dt float64
}

func NewParticleSystem(dt float64) *ParticleSystem {
	return &ParticleSystem{dt: dt}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.ParticleComponent.Kind(), func(e ecs.Entity, p *component.Particle) {
		p.Vel.Y -= p.Gravity * s.dt
		p.Pos = p.Pos.Add(p.Vel.Scale(s.dt))
		p.Size = common.Clamp(p.Size-p.Shrink, 0, p.Size)
		if p.Size == 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
