package controller

// FrameInput is the directional and jump intent for a single frame.
type FrameInput struct {
	// Horizontal is in [-1, 1]; 0 means no input.
	Horizontal float64
	// JumpPressed is true only on the frame the jump button went down.
	JumpPressed bool
	// JumpReleased is true only on the frame the jump button came up.
	JumpReleased bool
}

// Clock is the frame clock supplied once per frame by the host loop.
type Clock struct {
	// Now is monotonic time in seconds.
	Now float64
	// Dt is the number of seconds since the previous frame.
	Dt float64
}

// Advance returns the clock for the next frame, dt seconds later.
func (c Clock) Advance(dt float64) Clock {
	return Clock{Now: c.Now + dt, Dt: dt}
}
