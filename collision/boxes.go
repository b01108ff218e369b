package collision

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
)

// DefaultCellSize is the broadphase bucket width in world units.
const DefaultCellSize = 4.0

type cell struct{ x, y int }

// Boxes is an immutable set of solid rectangles indexed by a uniform grid.
// All queries are read-only, so one Boxes can serve many controllers.
type Boxes struct {
	boxes    []common.Box
	cellSize float64
	grid     map[cell][]int
}

// NewBoxes indexes boxes with the given bucket size. A non-positive size
// falls back to DefaultCellSize.
func NewBoxes(boxes []common.Box, cellSize float64) *Boxes {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	b := &Boxes{
		boxes:    append([]common.Box(nil), boxes...),
		cellSize: cellSize,
		grid:     make(map[cell][]int),
	}
	for i, box := range b.boxes {
		lo, hi := b.cellRange(box.Min(), box.Max())
		for y := lo.y; y <= hi.y; y++ {
			for x := lo.x; x <= hi.x; x++ {
				c := cell{x, y}
				b.grid[c] = append(b.grid[c], i)
			}
		}
	}
	return b
}

func (b *Boxes) Len() int { return len(b.boxes) }

// All returns a copy of the indexed boxes.
func (b *Boxes) All() []common.Box {
	return append([]common.Box(nil), b.boxes...)
}

func (b *Boxes) cellOf(p common.Vec2) cell {
	return cell{int(math.Floor(p.X / b.cellSize)), int(math.Floor(p.Y / b.cellSize))}
}

func (b *Boxes) cellRange(lo, hi common.Vec2) (cell, cell) {
	return b.cellOf(lo), b.cellOf(hi)
}

// candidates returns the indices of boxes whose buckets touch [lo, hi],
// each at most once.
func (b *Boxes) candidates(lo, hi common.Vec2) []int {
	clo, chi := b.cellRange(lo, hi)
	var out []int
	seen := make(map[int]struct{})
	for y := clo.y; y <= chi.y; y++ {
		for x := clo.x; x <= chi.x; x++ {
			for _, i := range b.grid[cell{x, y}] {
				if _, ok := seen[i]; ok {
					continue
				}
				seen[i] = struct{}{}
				out = append(out, i)
			}
		}
	}
	return out
}

// Raycast implements controller.Ground.
func (b *Boxes) Raycast(origin, dir common.Vec2, length float64) (controller.RayHit, bool) {
	if b == nil || length <= 0 {
		return controller.RayHit{}, false
	}
	end := origin.Add(dir.Scale(length))
	lo := common.V(math.Min(origin.X, end.X), math.Min(origin.Y, end.Y))
	hi := common.V(math.Max(origin.X, end.X), math.Max(origin.Y, end.Y))

	d := end.Sub(origin)
	closest := math.Inf(1)
	for _, i := range b.candidates(lo, hi) {
		bmin, bmax := b.boxes[i].Min(), b.boxes[i].Max()
		if hit, t := segmentAABBHit(origin, d, bmin, bmax); hit && t < closest {
			closest = t
		}
	}
	if math.IsInf(closest, 1) {
		return controller.RayHit{}, false
	}
	return controller.RayHit{Point: origin.Add(d.Scale(closest)), Distance: closest * length}, true
}

// Overlap implements controller.Ground. Touching edges are not reported.
func (b *Boxes) Overlap(box common.Box) (controller.Hit, bool) {
	if b == nil {
		return controller.Hit{}, false
	}
	for _, i := range b.candidates(box.Min(), box.Max()) {
		if b.boxes[i].Overlaps(box) {
			return controller.Hit{Center: b.boxes[i].Center}, true
		}
	}
	return controller.Hit{}, false
}

// segmentAABBHit clips the segment o + d*t, t in [0,1], against the box
// slabs. A segment starting inside the box hits at t = 0.
func segmentAABBHit(o, d, bmin, bmax common.Vec2) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if d.X != 0 {
		invD := 1.0 / d.X
		t1 := (bmin.X - o.X) * invD
		t2 := (bmax.X - o.X) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if o.X < bmin.X || o.X > bmax.X {
		return false, 0
	}

	if d.Y != 0 {
		invD := 1.0 / d.Y
		t1 := (bmin.Y - o.Y) * invD
		t2 := (bmax.Y - o.Y) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if o.Y < bmin.Y || o.Y > bmax.Y {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
