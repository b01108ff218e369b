package controller

import (
	"fmt"
	"math"

	"github.com/milk9111/platformer/common"
)

// JumpState classifies the jump rules that apply on the current frame.
type JumpState int

const (
	Grounded JumpState = iota
	Airborne
	CoyoteWindow
	JumpBuffered
)

func (s JumpState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	case CoyoteWindow:
		return "coyote"
	case JumpBuffered:
		return "buffered"
	default:
		return fmt.Sprintf("JumpState(%d)", int(s))
	}
}

// Controller is a kinematic platformer body. It is stepped once per frame
// by Update and is not safe for concurrent use.
type Controller struct {
	ground Ground
	tuning Tuning

	pos     common.Vec2
	lastPos common.Vec2

	velocity    common.Vec2
	rawMovement common.Vec2
	input       FrameInput
	now         float64

	adj    Adjacency
	rays   Rays
	motion motionState

	jumpingThisFrame bool
	landingThisFrame bool

	started    bool
	active     bool
	activateAt float64
}

// New creates a controller whose bounds are centered on pos plus the
// tuning offset.
func New(ground Ground, pos common.Vec2, t Tuning) (*Controller, error) {
	if ground == nil {
		return nil, ErrNilGround
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{ground: ground, tuning: t}
	c.Reset(pos)
	return c, nil
}

// Update advances the controller by one frame.
func (c *Controller) Update(in FrameInput, clk Clock) {
	if !c.started {
		c.started = true
		c.activateAt = clk.Now + c.tuning.ActivationDelay
	}
	if !c.active {
		if clk.Now < c.activateAt {
			return
		}
		c.active = true
		c.lastPos = c.pos
	}

	c.now = clk.Now
	if clk.Dt > 0 {
		c.velocity = c.pos.Sub(c.lastPos).Scale(1 / clk.Dt)
	}
	c.lastPos = c.pos

	c.input = in
	if in.JumpPressed {
		c.motion.lastJumpPressed = clk.Now
	}

	c.runCollisionChecks(clk.Now)

	c.calculateWalk(in, clk.Dt)
	c.calculateJumpApex()
	c.calculateGravity(clk.Dt)
	c.calculateJump(in, clk.Now)

	c.move(clk.Dt)
}

// SetTuning swaps the designer constants. Motion state is kept so a hot
// reload does not interrupt a jump in progress.
func (c *Controller) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.tuning = t
	return nil
}

// Reset teleports the controller to pos and clears all motion state. The
// activation delay is not replayed.
func (c *Controller) Reset(pos common.Vec2) {
	c.pos = pos
	c.lastPos = pos
	c.velocity = common.Vec2{}
	c.rawMovement = common.Vec2{}
	c.input = FrameInput{}
	c.adj = Adjacency{}
	c.rays = rayRanges(c.Bounds(), c.tuning.RayBuffer)
	c.motion = newMotionState()
	c.motion.lastGroundedTime = math.Inf(-1)
	c.motion.lastJumpPressed = math.Inf(-1)
	c.jumpingThisFrame = false
	c.landingThisFrame = false
}

// Velocity is the measured displacement per second, derived from the
// position change over the previous frame.
func (c *Controller) Velocity() common.Vec2 { return c.velocity }

// RawMovement is the solved speed before collision resolution.
func (c *Controller) RawMovement() common.Vec2 { return c.rawMovement }

func (c *Controller) JumpingThisFrame() bool { return c.jumpingThisFrame }
func (c *Controller) LandingThisFrame() bool { return c.landingThisFrame }
func (c *Controller) Grounded() bool         { return c.adj.Down }
func (c *Controller) Position() common.Vec2  { return c.pos }
func (c *Controller) Adjacency() Adjacency   { return c.adj }
func (c *Controller) Input() FrameInput      { return c.input }
func (c *Controller) Rays() Rays             { return c.rays }
func (c *Controller) Tuning() Tuning         { return c.tuning }
func (c *Controller) Active() bool           { return c.active }

// Bounds is the collision box at the current position.
func (c *Controller) Bounds() common.Box {
	return c.boundsAt(c.pos)
}

func (c *Controller) boundsAt(p common.Vec2) common.Box {
	return common.Box{Center: p.Add(c.tuning.Offset), Size: c.tuning.Size}
}

// State reports which jump rule a press would hit on the last frame.
func (c *Controller) State() JumpState {
	switch {
	case c.hasBufferedJump(c.now):
		return JumpBuffered
	case c.adj.Down:
		return Grounded
	case c.canUseCoyote(c.now):
		return CoyoteWindow
	default:
		return Airborne
	}
}
