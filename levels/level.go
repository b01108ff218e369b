package levels

import "github.com/milk9111/platformer/common"

// Solids merges the filled cells of every physics layer into as few
// rectangles as possible and returns them in world space, where one tile is
// one unit and y points up.
func (l *Level) Solids() []common.Box {
	var out []common.Box
	for i, layer := range l.Layers {
		if !l.LayerMeta[i].Physics {
			continue
		}
		for _, r := range mergeRects(layer, l.Width, l.Height) {
			out = append(out, l.cellsToWorld(r))
		}
	}
	return out
}

// rect is a run of tiles [x, x+w) by [y, y+h) in grid coordinates.
type rect struct{ x, y, w, h int }

// mergeRects greedily grows each unvisited solid tile right, then down.
func mergeRects(layer []int, width, height int) []rect {
	var rects []rect
	processed := make([]bool, width*height)
	solid := func(x, y int) bool {
		idx := y*width + x
		return !processed[idx] && layer[idx] != 0
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(x, y) {
				processed[y*width+x] = true
				continue
			}

			w := 1
			for x+w < width && solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
			rects = append(rects, rect{x, y, w, h})
		}
	}
	return rects
}

func (l *Level) cellsToWorld(r rect) common.Box {
	top := float64(l.Height - r.y)
	return common.BoxFromMinMax(
		common.V(float64(r.x), top-float64(r.h)),
		common.V(float64(r.x+r.w), top),
	)
}

// Spawn is the world point at the bottom center of the first spawn
// entity's cell. Without one it is the top center of the level.
func (l *Level) Spawn() common.Vec2 {
	for _, e := range l.Entities {
		if e.Type == "spawn" {
			return common.V(float64(e.X)+0.5, float64(l.Height-1-e.Y))
		}
	}
	return common.V(float64(l.Width)/2, float64(l.Height))
}

// Bounds is the level rectangle in world space.
func (l *Level) Bounds() common.Box {
	return common.BoxFromMinMax(common.Vec2{}, common.V(float64(l.Width), float64(l.Height)))
}
