package controller

import (
	"math"

	"github.com/milk9111/platformer/common"
)

// boxGround is a brute-force ground layer for tests.
type boxGround struct {
	boxes []common.Box
}

func (g *boxGround) Raycast(origin, dir common.Vec2, length float64) (RayHit, bool) {
	best := math.Inf(1)
	for _, b := range g.boxes {
		if d, ok := slab(origin, dir, length, b); ok && d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return RayHit{}, false
	}
	return RayHit{Point: origin.Add(dir.Scale(best)), Distance: best}, true
}

func (g *boxGround) Overlap(box common.Box) (Hit, bool) {
	for _, b := range g.boxes {
		if b.Overlaps(box) {
			return Hit{Center: b.Center}, true
		}
	}
	return Hit{}, false
}

func slab(o, d common.Vec2, length float64, b common.Box) (float64, bool) {
	lo, hi := b.Min(), b.Max()
	tmin, tmax := 0.0, length
	for _, ax := range [2][4]float64{
		{o.X, d.X, lo.X, hi.X},
		{o.Y, d.Y, lo.Y, hi.Y},
	} {
		p, v, l, h := ax[0], ax[1], ax[2], ax[3]
		if v == 0 {
			if p < l || p > h {
				return 0, false
			}
			continue
		}
		t1, t2 := (l-p)/v, (h-p)/v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// floorAt returns a wide slab whose top face is at y.
func floorAt(y float64) common.Box {
	return common.Box{Center: common.V(0, y-0.5), Size: common.V(200, 1)}
}
