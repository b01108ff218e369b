package common

// Box is an axis-aligned rectangle described by its center and full size.
type Box struct {
	Center Vec2
	Size   Vec2
}

func BoxFromMinMax(min, max Vec2) Box {
	return Box{
		Center: Vec2{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2},
		Size:   Vec2{X: max.X - min.X, Y: max.Y - min.Y},
	}
}

func (b Box) Min() Vec2 {
	return Vec2{X: b.Center.X - b.Size.X/2, Y: b.Center.Y - b.Size.Y/2}
}

func (b Box) Max() Vec2 {
	return Vec2{X: b.Center.X + b.Size.X/2, Y: b.Center.Y + b.Size.Y/2}
}

func (b Box) Translate(d Vec2) Box {
	b.Center = b.Center.Add(d)
	return b
}

// Overlaps reports whether the interiors of b and o intersect. Boxes that
// only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	bmin, bmax := b.Min(), b.Max()
	omin, omax := o.Min(), o.Max()
	return bmin.X < omax.X &&
		bmax.X > omin.X &&
		bmin.Y < omax.Y &&
		bmax.Y > omin.Y
}
