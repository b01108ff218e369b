package controller

import "github.com/milk9111/platformer/common"

// Ground is the read-only collision layer the controller probes and moves
// against. Implementations must be safe for concurrent readers.
type Ground interface {
	// Raycast reports the first solid hit along dir (unit length) within
	// length units of origin. A ray starting inside a solid hits at
	// distance 0.
	Raycast(origin, dir common.Vec2, length float64) (RayHit, bool)
	// Overlap reports a solid whose interior intersects box. Touching edges
	// are not an overlap.
	Overlap(box common.Box) (Hit, bool)
}

type RayHit struct {
	Point    common.Vec2
	Distance float64
}

// Hit describes a solid found by an overlap query.
type Hit struct {
	// Center of the obstacle; the corner nudge pushes away from it.
	Center common.Vec2
}
