package controller

import "github.com/milk9111/platformer/common"

var (
	dirUp    = common.V(0, 1)
	dirDown  = common.V(0, -1)
	dirLeft  = common.V(-1, 0)
	dirRight = common.V(1, 0)
)

// RayRange is the edge segment one side's detectors are spread along.
type RayRange struct {
	Start common.Vec2
	End   common.Vec2
	Dir   common.Vec2
}

// Adjacency records which sides of the bounds touch solid ground.
type Adjacency struct {
	Up, Down, Left, Right bool
}

// Rays is the frame's probe layout, kept for debug drawing.
type Rays struct {
	Up, Down, Left, Right RayRange
}

// All returns the ranges in up, right, down, left order.
func (r Rays) All() [4]RayRange {
	return [4]RayRange{r.Up, r.Right, r.Down, r.Left}
}

// rayRanges lays out the four detector edges around a box. The vertical
// faces are inset so side rays do not graze the floor or ceiling, and the
// horizontal faces are inset so floor rays do not catch walls.
func rayRanges(b common.Box, buffer float64) Rays {
	lo, hi := b.Min(), b.Max()
	return Rays{
		Down:  RayRange{Start: common.V(lo.X+buffer, lo.Y), End: common.V(hi.X-buffer, lo.Y), Dir: dirDown},
		Up:    RayRange{Start: common.V(lo.X+buffer, hi.Y), End: common.V(hi.X-buffer, hi.Y), Dir: dirUp},
		Left:  RayRange{Start: common.V(lo.X, lo.Y+buffer), End: common.V(lo.X, hi.Y-buffer), Dir: dirLeft},
		Right: RayRange{Start: common.V(hi.X, lo.Y+buffer), End: common.V(hi.X, hi.Y-buffer), Dir: dirRight},
	}
}

// SamplePoints returns count evenly spaced points from Start to End,
// both inclusive.
func (r RayRange) SamplePoints(count int) []common.Vec2 {
	if count < 2 {
		return []common.Vec2{r.Start}
	}
	pts := make([]common.Vec2, count)
	for i := range pts {
		t := float64(i) / float64(count-1)
		pts[i] = common.LerpVec(r.Start, r.End, t)
	}
	return pts
}

// detect is true when any detector on the range hits ground.
func (c *Controller) detect(r RayRange) bool {
	for _, p := range r.SamplePoints(c.tuning.DetectorCount) {
		if _, hit := c.ground.Raycast(p, r.Dir, c.tuning.DetectionRayLength); hit {
			return true
		}
	}
	return false
}

func (c *Controller) runCollisionChecks(now float64) {
	c.rays = rayRanges(c.Bounds(), c.tuning.RayBuffer)

	c.landingThisFrame = false
	grounded := c.detect(c.rays.Down)
	if c.adj.Down && !grounded {
		// only when first leaving
		c.motion.lastGroundedTime = now
	} else if !c.adj.Down && grounded {
		c.motion.coyoteUsable = true
		c.landingThisFrame = true
	}
	c.adj.Down = grounded

	c.adj.Up = c.detect(c.rays.Up)
	c.adj.Left = c.detect(c.rays.Left)
	c.adj.Right = c.detect(c.rays.Right)
}
