package system

import (
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/juice"
)

const (
	particleGravity = 30.0
	particleTTL     = 40
	trailEvery      = 6
)

// burst describes how many particles an effect kind spawns and how fast
// they leave.
type burst struct {
	count  int
	speed  float64
	spread float64
	size   float64
}

var bursts = map[string]burst{
	"dust":  {count: 10, speed: 6, spread: math.Pi / 2, size: 0.25},
	"ring":  {count: 16, speed: 9, spread: math.Pi, size: 0.2},
	"puff":  {count: 6, speed: 3, spread: math.Pi / 3, size: 0.2},
	"burst": {count: 8, speed: 5, spread: math.Pi / 2.5, size: 0.22},
	"spark": {count: 3, speed: 2, spread: math.Pi / 4, size: 0.15},
	"trail": {count: 1, speed: 1, spread: math.Pi / 6, size: 0.15},
}

// JuiceSystem polls every controller's pulses, asks the entity's reactor
// for effects and spawns the particles for them.
type JuiceSystem struct {
	dt    float64
	rng   *rand.Rand
	ticks int
}

func NewJuiceSystem(dt float64) *JuiceSystem {
	return &JuiceSystem{dt: dt, rng: rand.New(rand.NewSource(1))}
}

func (s *JuiceSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.ticks++
	ecs.ForEach2(w, component.KinematicComponent.Kind(), component.JuiceComponent.Kind(), func(e ecs.Entity, k *component.Kinematic, j *component.Juice) {
		if k.Controller == nil || j.State == nil {
			return
		}
		var fallback juice.DefaultReactor
		for _, ev := range j.State.Update(k.Controller, s.dt) {
			reactor := j.Reactor
			if reactor == nil {
				reactor = fallback
			}
			effects, err := reactor.React(ev, j.State)
			if err != nil {
				log.Printf("juice: entity %s %s: %v", e, ev.Kind, err)
				effects, _ = fallback.React(ev, j.State)
			}
			for _, fx := range effects {
				s.spawn(w, fx, j)
			}
		}

		if j.State.Running && k.Controller.Input().Horizontal != 0 && s.ticks%trailEvery == 0 {
			b := k.Controller.Bounds()
			s.spawn(w, juice.Effect{Kind: "trail", Pos: common.V(b.Center.X, b.Min().Y), Scale: 1}, j)
		}
	})
}

func (s *JuiceSystem) spawn(w *ecs.World, fx juice.Effect, j *component.Juice) {
	b, ok := bursts[fx.Kind]
	if !ok || fx.Scale <= 0 {
		return
	}
	var tint color.Color = color.White
	if j.DustColor != nil {
		tint = j.DustColor
	}

	n := int(math.Ceil(float64(b.count) * fx.Scale))
	for i := 0; i < n; i++ {
		angle := math.Pi/2 + (s.rng.Float64()*2-1)*b.spread
		speed := b.speed * fx.Scale * (0.5 + s.rng.Float64()*0.5)
		p := &component.Particle{
			Pos:     fx.Pos,
			Vel:     common.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Size:    b.size,
			Gravity: particleGravity,
			Color:   tint,
			Shrink:  b.size / particleTTL,
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.ParticleComponent.Kind(), p); err != nil {
			log.Printf("juice: spawn particle: %v", err)
			ecs.DestroyEntity(w, e)
			return
		}
		if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: particleTTL}); err != nil {
			log.Printf("juice: spawn particle ttl: %v", err)
			ecs.DestroyEntity(w, e)
			return
		}
	}
}
