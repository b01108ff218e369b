package controller

import (
	"math"

	"github.com/milk9111/platformer/common"
)

// motionState is mutated every frame by the velocity solver.
type motionState struct {
	horizontalSpeed float64
	verticalSpeed   float64
	// apexFactor becomes 1 at the top of a jump.
	apexFactor       float64
	fallSpeed        float64
	endedJumpEarly   bool
	coyoteUsable     bool
	lastGroundedTime float64
	lastJumpPressed  float64
	jumpInputCount   int
	// pressLatched is set by a press and cleared, together with
	// jumpInputCount, once grounding is confirmed.
	pressLatched bool
}

func newMotionState() motionState {
	return motionState{endedJumpEarly: true}
}

func (c *Controller) calculateWalk(in FrameInput, dt float64) {
	m := &c.motion
	t := &c.tuning
	if in.Horizontal != 0 {
		m.horizontalSpeed += in.Horizontal * t.Acceleration * dt
		m.horizontalSpeed = common.Clamp(m.horizontalSpeed, -t.MoveClamp, t.MoveClamp)

		// more air control near the top of a jump
		bonus := common.Sign(in.Horizontal) * t.ApexBonus * m.apexFactor
		m.horizontalSpeed += bonus * dt
	} else {
		m.horizontalSpeed = common.MoveTowards(m.horizontalSpeed, 0, t.DeAcceleration*dt)
	}

	if m.horizontalSpeed > 0 && c.adj.Right || m.horizontalSpeed < 0 && c.adj.Left {
		m.horizontalSpeed = 0
	}
}

func (c *Controller) calculateJumpApex() {
	m := &c.motion
	if c.adj.Down {
		m.apexFactor = 0
		return
	}
	m.apexFactor = common.InverseLerp(c.tuning.JumpApexThreshold, 0, math.Abs(m.verticalSpeed))
	m.fallSpeed = common.Lerp(c.tuning.MinFallSpeed, c.tuning.MaxFallSpeed, m.apexFactor)
}

func (c *Controller) calculateGravity(dt float64) {
	m := &c.motion
	if c.adj.Down {
		if m.verticalSpeed < 0 {
			m.verticalSpeed = 0
		}
		return
	}

	fall := m.fallSpeed
	if m.endedJumpEarly && m.verticalSpeed > 0 {
		fall *= c.tuning.JumpEndEarlyGravityModifier
	}
	m.verticalSpeed -= fall * dt
	if m.verticalSpeed < c.tuning.FallClamp {
		m.verticalSpeed = c.tuning.FallClamp
	}
}

func (c *Controller) canUseCoyote(now float64) bool {
	m := &c.motion
	return m.coyoteUsable && !c.adj.Down && m.lastGroundedTime+c.tuning.CoyoteTimeThreshold > now
}

func (c *Controller) hasBufferedJump(now float64) bool {
	m := &c.motion
	return c.adj.Down && m.jumpInputCount > 0 && m.lastJumpPressed+c.tuning.JumpBuffer > now
}

func (c *Controller) calculateJump(in FrameInput, now float64) {
	m := &c.motion
	if in.JumpPressed {
		m.pressLatched = true
		m.jumpInputCount++
	}

	if (in.JumpPressed && c.canUseCoyote(now)) || c.hasBufferedJump(now) {
		m.verticalSpeed = c.tuning.JumpHeight
		m.endedJumpEarly = false
		m.coyoteUsable = false
		m.lastGroundedTime = math.Inf(-1)
		c.jumpingThisFrame = true
	} else {
		c.jumpingThisFrame = false
	}

	if c.adj.Down && m.pressLatched {
		m.pressLatched = false
		m.jumpInputCount = 0
	}

	if !c.adj.Down && in.JumpReleased && !m.endedJumpEarly && m.verticalSpeed > 0 {
		m.endedJumpEarly = true
	}

	if c.adj.Up && m.verticalSpeed > 0 {
		m.verticalSpeed = 0
	}
}
