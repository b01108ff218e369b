package controller

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/platformer/common"
)

const frame = 1.0 / 60

// standing returns a controller whose feet hover 0.05 above a floor at y=0
// and has run one frame, so it is grounded with coyote enabled.
func standing(t *testing.T) (*Controller, *boxGround, Clock) {
	t.Helper()
	g := &boxGround{boxes: []common.Box{floorAt(0)}}
	c, err := New(g, common.V(0, 1.05), DefaultTuning())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clk := Clock{Now: 1}
	c.Update(FrameInput{}, clk)
	if !c.Grounded() || !c.LandingThisFrame() {
		t.Fatalf("expected grounded landing frame, got grounded=%v landing=%v", c.Grounded(), c.LandingThisFrame())
	}
	return c, g, clk
}

func TestNew(t *testing.T) {
	bad := DefaultTuning()
	bad.DetectorCount = 1
	thin := DefaultTuning()
	thin.RayBuffer = 0.5

	cases := []struct {
		name    string
		ground  Ground
		tuning  Tuning
		wantErr error
	}{
		{"ok", &boxGround{}, DefaultTuning(), nil},
		{"nil_ground", nil, DefaultTuning(), ErrNilGround},
		{"one_detector", &boxGround{}, bad, ErrInvalidTuning},
		{"buffer_too_wide", &boxGround{}, thin, ErrInvalidTuning},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.ground, common.Vec2{}, c.tuning)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("New error = %v, want %v", err, c.wantErr)
			}
		})
	}
}

func TestDecelerationReachesZeroWithoutOvershoot(t *testing.T) {
	for _, start := range []float64{5, -7.5, 13} {
		c, _, clk := standing(t)
		c.motion.horizontalSpeed = start
		prev := math.Abs(start)
		for i := 0; i < 120; i++ {
			clk = clk.Advance(frame)
			c.Update(FrameInput{}, clk)
			hs := c.motion.horizontalSpeed
			if hs != 0 && math.Signbit(hs) != math.Signbit(start) {
				t.Fatalf("start %v: speed crossed zero to %v", start, hs)
			}
			if prev > 0 && math.Abs(hs) >= prev {
				t.Fatalf("start %v: |speed| %v did not decrease from %v", start, math.Abs(hs), prev)
			}
			if prev == 0 && hs != 0 {
				t.Fatalf("start %v: speed left zero: %v", start, hs)
			}
			prev = math.Abs(hs)
		}
		if prev != 0 {
			t.Fatalf("start %v: speed %v never reached zero", start, prev)
		}
	}
}

func TestGroundedClampsDownwardSpeed(t *testing.T) {
	c, _, clk := standing(t)
	for i := 0; i < 30; i++ {
		c.motion.verticalSpeed = -float64(i)
		clk = clk.Advance(frame)
		c.Update(FrameInput{}, clk)
		if !c.Grounded() {
			t.Fatalf("frame %d: lost ground", i)
		}
		if c.motion.verticalSpeed < 0 {
			t.Fatalf("frame %d: vertical speed %v < 0 while grounded", i, c.motion.verticalSpeed)
		}
	}
}

func TestSingleJumpPulsePerPress(t *testing.T) {
	c, _, clk := standing(t)
	pulses := 0
	landings := 0
	for i := 0; i < 240; i++ {
		clk = clk.Advance(frame)
		c.Update(FrameInput{JumpPressed: i == 0}, clk)
		if c.JumpingThisFrame() {
			pulses++
		}
		if c.LandingThisFrame() {
			landings++
		}
	}
	if pulses != 1 {
		t.Fatalf("jump pulses = %d, want 1", pulses)
	}
	if landings != 1 {
		t.Fatalf("landing pulses = %d, want 1", landings)
	}
	if !c.Grounded() {
		t.Fatalf("expected to be back on the ground")
	}
}

func TestGroundedJumpImpulse(t *testing.T) {
	c, _, clk := standing(t)
	c.Update(FrameInput{JumpPressed: true}, clk.Advance(frame))

	if c.motion.verticalSpeed != 30 {
		t.Fatalf("vertical speed = %v, want 30", c.motion.verticalSpeed)
	}
	if !c.JumpingThisFrame() {
		t.Fatalf("JumpingThisFrame = false on the jump frame")
	}
	if c.motion.coyoteUsable {
		t.Fatalf("coyoteUsable still set after jumping")
	}
	if got := c.RawMovement().Y; got != 30 {
		t.Fatalf("RawMovement.Y = %v, want 30", got)
	}
}

func TestCoyoteWindow(t *testing.T) {
	const eps = 1e-3
	cases := []struct {
		name  string
		after float64
		want  bool
	}{
		{"inside", 0.1 - eps, true},
		{"outside", 0.1 + eps, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, g, clk := standing(t)

			// pull the floor away; this frame records the time we left
			g.boxes = nil
			clk = clk.Advance(frame)
			left := clk.Now
			c.Update(FrameInput{}, clk)
			if c.Grounded() {
				t.Fatalf("still grounded without a floor")
			}
			if c.motion.lastGroundedTime != left {
				t.Fatalf("lastGroundedTime = %v, want %v", c.motion.lastGroundedTime, left)
			}
			if c.State() != CoyoteWindow {
				t.Fatalf("state = %v, want %v", c.State(), CoyoteWindow)
			}

			c.Update(FrameInput{JumpPressed: true}, Clock{Now: left + tc.after, Dt: tc.after})
			if c.JumpingThisFrame() != tc.want {
				t.Fatalf("jumped = %v, want %v", c.JumpingThisFrame(), tc.want)
			}
		})
	}
}

func TestJumpBuffer(t *testing.T) {
	const eps = 1e-3
	cases := []struct {
		name  string
		after float64
		want  bool
	}{
		{"inside", 0.1 - eps, true},
		{"outside", 0.1 + eps, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &boxGround{}
			c, err := New(g, common.V(0, 10), DefaultTuning())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			pressed := 2.0
			c.Update(FrameInput{JumpPressed: true}, Clock{Now: pressed, Dt: frame})
			if c.JumpingThisFrame() {
				t.Fatalf("jumped in mid air without coyote")
			}

			// slide a floor under the feet right before the landing frame
			g.boxes = []common.Box{floorAt(c.Bounds().Min().Y - 0.05)}
			c.Update(FrameInput{}, Clock{Now: pressed + tc.after, Dt: tc.after})
			if !c.LandingThisFrame() {
				t.Fatalf("expected a landing frame")
			}
			if c.JumpingThisFrame() != tc.want {
				t.Fatalf("jumped = %v, want %v", c.JumpingThisFrame(), tc.want)
			}
			if c.motion.jumpInputCount != 0 {
				t.Fatalf("jumpInputCount = %d after landing, want 0", c.motion.jumpInputCount)
			}
		})
	}
}

func TestEarlyReleaseSteepensGravity(t *testing.T) {
	run := func(release bool) float64 {
		c, _, clk := standing(t)
		clk = clk.Advance(frame)
		c.Update(FrameInput{JumpPressed: true}, clk)
		clk = clk.Advance(frame)
		c.Update(FrameInput{JumpReleased: release}, clk)
		if c.motion.endedJumpEarly != release {
			t.Fatalf("endedJumpEarly = %v, want %v", c.motion.endedJumpEarly, release)
		}
		clk = clk.Advance(frame)
		c.Update(FrameInput{}, clk)
		return c.motion.verticalSpeed
	}
	held, cut := run(false), run(true)
	if cut >= held {
		t.Fatalf("released jump speed %v should be below held jump speed %v", cut, held)
	}
}

func TestCeilingStopsAscent(t *testing.T) {
	c, g, clk := standing(t)
	top := c.Bounds().Max().Y
	g.boxes = append(g.boxes, common.Box{Center: common.V(0, top+0.05+0.5), Size: common.V(10, 1)})

	c.Update(FrameInput{JumpPressed: true}, clk.Advance(frame))
	if !c.Adjacency().Up {
		t.Fatalf("ceiling not detected")
	}
	if c.motion.verticalSpeed != 0 {
		t.Fatalf("vertical speed = %v under a ceiling, want 0", c.motion.verticalSpeed)
	}
}

func TestWalkScenario(t *testing.T) {
	c, err := New(&boxGround{}, common.Vec2{}, DefaultTuning())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.motion.horizontalSpeed = 5
	c.calculateWalk(FrameInput{Horizontal: 1}, 0.1)
	if got := c.motion.horizontalSpeed; got != 13 {
		t.Fatalf("horizontal speed = %v, want 13", got)
	}
}

func TestWallStop(t *testing.T) {
	c, g, clk := standing(t)
	right := c.Bounds().Max().X
	g.boxes = append(g.boxes, common.Box{Center: common.V(right+0.05+0.5, 2), Size: common.V(1, 6)})

	c.Update(FrameInput{Horizontal: 1}, clk.Advance(frame))
	if !c.Adjacency().Right {
		t.Fatalf("wall not detected")
	}
	if c.motion.horizontalSpeed != 0 {
		t.Fatalf("horizontal speed = %v into a wall, want 0", c.motion.horizontalSpeed)
	}
}

func TestActivationDelay(t *testing.T) {
	tun := DefaultTuning()
	tun.ActivationDelay = 0.5
	c, err := New(&boxGround{}, common.V(0, 5), tun)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clk := Clock{Now: 3}
	for clk.Now < 3.5-frame/2 {
		c.Update(FrameInput{JumpPressed: true}, clk)
		if c.Active() || c.Position() != common.V(0, 5) || c.JumpingThisFrame() {
			t.Fatalf("controller moved before activation at t=%v", clk.Now)
		}
		clk = clk.Advance(frame)
	}
	c.Update(FrameInput{}, Clock{Now: 3.5, Dt: frame})
	if !c.Active() {
		t.Fatalf("controller inactive after the delay")
	}
	if c.Position().Y >= 5 {
		t.Fatalf("controller did not start falling")
	}
}

func TestVelocityFromPositionDelta(t *testing.T) {
	c, err := New(&boxGround{}, common.Vec2{}, DefaultTuning())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clk := Clock{Now: 0, Dt: frame}
	c.Update(FrameInput{}, clk)
	moved := c.Position()
	c.Update(FrameInput{}, clk.Advance(0.5))
	want := moved.Scale(1 / 0.5)
	if got := c.Velocity(); got != want {
		t.Fatalf("Velocity = %v, want %v", got, want)
	}
}

func TestReset(t *testing.T) {
	c, _, clk := standing(t)
	c.Update(FrameInput{JumpPressed: true, Horizontal: 1}, clk.Advance(frame))
	c.Reset(common.V(4, 4))
	if c.Position() != common.V(4, 4) || c.RawMovement() != (common.Vec2{}) || c.JumpingThisFrame() || c.Grounded() {
		t.Fatalf("Reset left state behind: pos=%v raw=%v", c.Position(), c.RawMovement())
	}
	if !c.motion.endedJumpEarly || c.motion.jumpInputCount != 0 {
		t.Fatalf("motion state not cleared: %+v", c.motion)
	}
}

func TestSetTuningRejectsInvalid(t *testing.T) {
	c, _, _ := standing(t)
	bad := DefaultTuning()
	bad.DetectionRayLength = 0
	if err := c.SetTuning(bad); !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("SetTuning error = %v, want ErrInvalidTuning", err)
	}
	if c.Tuning().DetectionRayLength != DefaultTuning().DetectionRayLength {
		t.Fatalf("invalid tuning was applied")
	}
}

func TestJumpStateString(t *testing.T) {
	names := map[JumpState]string{
		Grounded:      "grounded",
		Airborne:      "airborne",
		CoyoteWindow:  "coyote",
		JumpBuffered:  "buffered",
		JumpState(42): "JumpState(42)",
	}
	for s, want := range names {
		if got := s.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}
