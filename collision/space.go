package collision

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
)

const groundCategory uint = 1 << 0

// groundFilter matches only shapes on the ground category.
var groundFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, groundCategory)

// Space is a ground layer backed by a Chipmunk space holding one static box
// per solid. Nothing is ever stepped; the space is only queried.
type Space struct {
	space  *cp.Space
	shapes []*cp.Shape
}

func NewSpace(boxes []common.Box) *Space {
	space := cp.NewSpace()
	s := &Space{space: space}
	for _, b := range boxes {
		lo, hi := b.Min(), b.Max()
		shape := cp.NewBox2(space.StaticBody, cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}, 0)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, groundCategory, cp.ALL_CATEGORIES))
		space.AddShape(shape)
		s.shapes = append(s.shapes, shape)
	}
	space.ReindexStatic()
	return s
}

func (s *Space) Len() int { return len(s.shapes) }

// Raycast implements controller.Ground.
func (s *Space) Raycast(origin, dir common.Vec2, length float64) (controller.RayHit, bool) {
	if s == nil || length <= 0 {
		return controller.RayHit{}, false
	}
	// polygon segment queries ignore a start point inside the shape
	if s.solidAt(origin) {
		return controller.RayHit{Point: origin}, true
	}

	end := origin.Add(dir.Scale(length))
	info := s.space.SegmentQueryFirst(toVector(origin), toVector(end), 0, groundFilter)
	if info.Shape == nil {
		return controller.RayHit{}, false
	}
	return controller.RayHit{
		Point:    common.V(info.Point.X, info.Point.Y),
		Distance: info.Alpha * length,
	}, true
}

// Overlap implements controller.Ground. The broadphase is inclusive, so
// candidates are filtered again with a strict box test.
func (s *Space) Overlap(box common.Box) (controller.Hit, bool) {
	if s == nil {
		return controller.Hit{}, false
	}
	lo, hi := box.Min(), box.Max()
	var (
		hit   controller.Hit
		found bool
	)
	s.space.BBQuery(cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}, groundFilter, func(shape *cp.Shape, _ interface{}) {
		if found {
			return
		}
		solid := boxOf(shape.BB())
		if solid.Overlaps(box) {
			hit = controller.Hit{Center: solid.Center}
			found = true
		}
	}, nil)
	return hit, found
}

func (s *Space) solidAt(p common.Vec2) bool {
	inside := false
	s.space.BBQuery(cp.BB{L: p.X, B: p.Y, R: p.X, T: p.Y}, groundFilter, func(shape *cp.Shape, _ interface{}) {
		bb := shape.BB()
		if p.X >= bb.L && p.X <= bb.R && p.Y >= bb.B && p.Y <= bb.T {
			inside = true
		}
	}, nil)
	return inside
}

func toVector(v common.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func boxOf(bb cp.BB) common.Box {
	return common.BoxFromMinMax(
		common.V(math.Min(bb.L, bb.R), math.Min(bb.B, bb.T)),
		common.V(math.Max(bb.L, bb.R), math.Max(bb.B, bb.T)),
	)
}
