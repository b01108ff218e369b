package controller

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/platformer/common"
)

var (
	ErrInvalidTuning = errors.New("controller: invalid tuning")
	ErrNilGround     = errors.New("controller: ground is nil")
)

// Tuning holds the designer constants of the controller. Units are world
// units and seconds.
type Tuning struct {
	// Collision
	Size               common.Vec2
	Offset             common.Vec2
	DetectorCount      int
	DetectionRayLength float64
	RayBuffer          float64

	// Walking
	Acceleration   float64
	MoveClamp      float64
	DeAcceleration float64
	ApexBonus      float64

	// Gravity. FallClamp is negative: the terminal vertical speed.
	FallClamp    float64
	MinFallSpeed float64
	MaxFallSpeed float64

	// Jumping
	JumpHeight                  float64
	JumpApexThreshold           float64
	CoyoteTimeThreshold         float64
	JumpBuffer                  float64
	JumpEndEarlyGravityModifier float64

	// Move. Raising FreeColliderIterations increases collision accuracy at
	// the cost of more overlap queries on colliding frames.
	FreeColliderIterations int

	// ActivationDelay keeps the controller idle for this many seconds after
	// its first update.
	ActivationDelay float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Size:               common.V(1, 2),
		DetectorCount:      3,
		DetectionRayLength: 0.1,
		RayBuffer:          0.1,

		Acceleration:   90,
		MoveClamp:      13,
		DeAcceleration: 60,
		ApexBonus:      2,

		FallClamp:    -40,
		MinFallSpeed: 80,
		MaxFallSpeed: 120,

		JumpHeight:                  30,
		JumpApexThreshold:           10,
		CoyoteTimeThreshold:         0.1,
		JumpBuffer:                  0.1,
		JumpEndEarlyGravityModifier: 3,

		FreeColliderIterations: 10,
	}
}

// Validate checks the invariants the prober depends on. Movement constants
// are not checked; odd values only change the feel.
func (t Tuning) Validate() error {
	if t.DetectorCount < 2 {
		return fmt.Errorf("%w: detector count %d < 2", ErrInvalidTuning, t.DetectorCount)
	}
	if t.Size.X <= 0 || t.Size.Y <= 0 {
		return fmt.Errorf("%w: bounds size %vx%v must be positive", ErrInvalidTuning, t.Size.X, t.Size.Y)
	}
	if t.DetectionRayLength <= 0 {
		return fmt.Errorf("%w: detection ray length %v must be positive", ErrInvalidTuning, t.DetectionRayLength)
	}
	if t.RayBuffer < 0 || t.RayBuffer >= math.Min(t.Size.X, t.Size.Y)/2 {
		return fmt.Errorf("%w: ray buffer %v outside [0, %v)", ErrInvalidTuning, t.RayBuffer, math.Min(t.Size.X, t.Size.Y)/2)
	}
	return nil
}
