package controller

// move applies the frame displacement. When the target overlaps ground it
// walks forward along the segment and stops at the last free sample.
func (c *Controller) move(dt float64) {
	m := &c.motion
	c.rawMovement.X, c.rawMovement.Y = m.horizontalSpeed, m.verticalSpeed
	disp := c.rawMovement.Scale(dt)
	start := c.pos
	target := start.Add(disp)

	hit, blocked := c.ground.Overlap(c.boundsAt(target))
	if !blocked {
		c.pos = target
		return
	}

	safe := start
	n := c.tuning.FreeColliderIterations
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		try := start.Add(disp.Scale(t))
		if _, overlaps := c.ground.Overlap(c.boundsAt(try)); !overlaps {
			safe = try
			continue
		}

		c.pos = safe
		if i == 1 {
			// corner or ledge; nudge away from the obstacle
			if m.verticalSpeed < 0 {
				m.verticalSpeed = 0
			}
			away := c.pos.Sub(hit.Center).Normalized()
			c.pos = c.pos.Add(away.Scale(disp.Len()))
		}
		return
	}
	c.pos = safe
}
