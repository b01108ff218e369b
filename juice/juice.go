// Package juice turns the controller's one-frame pulses into cosmetic
// reactions: facing, tilt, idle speed and particle requests.
package juice

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
)

// Pulses is the read-only view of a controller that juice polls each frame.
type Pulses interface {
	JumpingThisFrame() bool
	LandingThisFrame() bool
	Grounded() bool
	RawMovement() common.Vec2
	Input() controller.FrameInput
	Bounds() common.Box
}

type EventKind string

const (
	EventLand     EventKind = "land"
	EventJump     EventKind = "jump"
	EventLaunch   EventKind = "launch"
	EventRunStart EventKind = "run_start"
	EventRunStop  EventKind = "run_stop"
)

// Event is raised at most once per kind per frame.
type Event struct {
	Kind EventKind
	// Pos is the bottom center of the body.
	Pos common.Vec2
	// FallRatio is how hard the body hit the ground, in [0,1]. Only set for
	// EventLand.
	FallRatio float64
}

// Effect is a request for a cosmetic burst at Pos.
type Effect struct {
	Kind  string
	Pos   common.Vec2
	Scale float64
}

type Config struct {
	// MaxTilt is the lean in radians at full horizontal input.
	MaxTilt   float64
	TiltSpeed float64
	// MaxIdleSpeed is the idle animation rate at full input, in [1,3].
	MaxIdleSpeed float64
	// MaxParticleFallSpeed is the (negative) fall speed that produces the
	// largest landing burst.
	MaxParticleFallSpeed float64
}

func DefaultConfig() Config {
	return Config{
		MaxTilt:              0.1,
		TiltSpeed:            1,
		MaxIdleSpeed:         2,
		MaxParticleFallSpeed: -40,
	}
}

// State is the per-body cosmetic state.
type State struct {
	cfg Config

	Facing    float64
	Tilt      float64
	IdleSpeed float64
	// Running is true while the body is on the ground; trail particles are
	// spawned only then.
	Running bool

	movement common.Vec2
}

func NewState(cfg Config) *State {
	return &State{cfg: cfg, Facing: 1, IdleSpeed: 1}
}

func (s *State) SetConfig(cfg Config) { s.cfg = cfg }
func (s *State) Config() Config       { return s.cfg }

// Update polls p once and returns the events of this frame.
func (s *State) Update(p Pulses, dt float64) []Event {
	in := p.Input()
	if in.Horizontal != 0 {
		s.Facing = common.Sign(in.Horizontal)
	}

	target := common.Lerp(-s.cfg.MaxTilt, s.cfg.MaxTilt, common.InverseLerp(-1, 1, in.Horizontal))
	s.Tilt = common.MoveTowards(s.Tilt, target, s.cfg.TiltSpeed*dt)
	s.IdleSpeed = common.Lerp(1, s.cfg.MaxIdleSpeed, math.Abs(in.Horizontal))

	b := p.Bounds()
	feet := common.V(b.Center.X, b.Min().Y)

	var events []Event
	if p.LandingThisFrame() {
		// the previous frame's speed is the impact speed
		ratio := common.InverseLerp(0, s.cfg.MaxParticleFallSpeed, s.movement.Y)
		events = append(events, Event{Kind: EventLand, Pos: feet, FallRatio: ratio})
	}
	if p.JumpingThisFrame() {
		events = append(events, Event{Kind: EventJump, Pos: feet})
		if p.Grounded() {
			events = append(events, Event{Kind: EventLaunch, Pos: feet})
		}
	}

	switch grounded := p.Grounded(); {
	case grounded && !s.Running:
		s.Running = true
		events = append(events, Event{Kind: EventRunStart, Pos: feet})
	case !grounded && s.Running:
		s.Running = false
		events = append(events, Event{Kind: EventRunStop, Pos: feet})
	}

	s.movement = p.RawMovement()
	return events
}

// Reactor maps an event to the effects it should spawn.
type Reactor interface {
	React(ev Event, s *State) ([]Effect, error)
}

// DefaultReactor is the built-in mapping used when no script is loaded.
type DefaultReactor struct{}

func (DefaultReactor) React(ev Event, s *State) ([]Effect, error) {
	switch ev.Kind {
	case EventLand:
		if ev.FallRatio <= 0 {
			return nil, nil
		}
		return []Effect{{Kind: "dust", Pos: ev.Pos, Scale: ev.FallRatio}}, nil
	case EventJump:
		return []Effect{{Kind: "puff", Pos: ev.Pos, Scale: 0.5}}, nil
	case EventLaunch:
		return []Effect{{Kind: "burst", Pos: ev.Pos, Scale: 1}}, nil
	default:
		return nil, nil
	}
}
