// Package input turns held buttons into the per-frame controller intent.
package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
)

const stickDeadzone = 0.2

// Raw is the device state for one frame.
type Raw struct {
	Left, Right bool
	Jump        bool
	// StickX is the analog horizontal axis; it wins over the keys when
	// outside the deadzone.
	StickX float64
}

// Sampler derives edge pulses from consecutive Raw states.
type Sampler struct {
	jumpHeld bool
}

// Sample returns the intent for this frame. Press and release pulses are
// true for exactly one call.
func (s *Sampler) Sample(r Raw) controller.FrameInput {
	x := 0.0
	if r.Left {
		x -= 1
	}
	if r.Right {
		x += 1
	}
	if math.Abs(r.StickX) > stickDeadzone {
		x = r.StickX
	}

	in := controller.FrameInput{
		Horizontal:   common.Clamp(x, -1, 1),
		JumpPressed:  r.Jump && !s.jumpHeld,
		JumpReleased: !r.Jump && s.jumpHeld,
	}
	s.jumpHeld = r.Jump
	return in
}

// ResetTo adopts r as the held state without raising pulses, e.g. after the
// game was paused. A jump still held in r does not press again.
func (s *Sampler) ResetTo(r Raw) {
	s.jumpHeld = r.Jump
}

// Poll reads the keyboard and first gamepad and samples them.
func (s *Sampler) Poll() controller.FrameInput {
	return s.Sample(ReadDevices())
}

// ReadDevices reads A/D, the arrow keys and space, plus the left stick and
// bottom face button of the first standard gamepad.
func ReadDevices() Raw {
	r := Raw{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:  ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
	}
	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			r.StickX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			r.Jump = r.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
			r.Left = r.Left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
			r.Right = r.Right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		}
	}
	return r
}
