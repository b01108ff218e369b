package collision

import (
	"math"
	"testing"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
)

// layout is a floor with a wall on the right and a floating platform.
func layout() []common.Box {
	return []common.Box{
		common.BoxFromMinMax(common.V(-20, -1), common.V(20, 0)),
		common.BoxFromMinMax(common.V(6, 0), common.V(7, 10)),
		common.BoxFromMinMax(common.V(-3, 4), common.V(3, 4.5)),
	}
}

func grounds() map[string]controller.Ground {
	return map[string]controller.Ground{
		"boxes": NewBoxes(layout(), 0),
		"space": NewSpace(layout()),
	}
}

func TestRaycast(t *testing.T) {
	cases := []struct {
		name     string
		origin   common.Vec2
		dir      common.Vec2
		length   float64
		wantHit  bool
		wantDist float64
	}{
		{"down_to_floor", common.V(0, 0.05), common.V(0, -1), 0.1, true, 0.05},
		{"down_short", common.V(0, 0.2), common.V(0, -1), 0.1, false, 0},
		{"right_to_wall", common.V(5.95, 2), common.V(1, 0), 0.1, true, 0.05},
		{"left_of_wall_away", common.V(5.95, 2), common.V(-1, 0), 0.1, false, 0},
		{"up_to_platform", common.V(1, 3.95), common.V(0, 1), 0.1, true, 0.05},
		{"starts_inside", common.V(0, -0.5), common.V(0, -1), 0.1, true, 0},
		{"resting_on_edge", common.V(0, 0), common.V(0, -1), 0.1, true, 0},
		{"far_cell", common.V(100, 100), common.V(0, -1), 0.1, false, 0},
	}
	for gname, g := range grounds() {
		for _, c := range cases {
			t.Run(gname+"/"+c.name, func(t *testing.T) {
				hit, ok := g.Raycast(c.origin, c.dir, c.length)
				if ok != c.wantHit {
					t.Fatalf("hit = %v, want %v", ok, c.wantHit)
				}
				if ok && math.Abs(hit.Distance-c.wantDist) > 1e-9 {
					t.Fatalf("distance = %v, want %v", hit.Distance, c.wantDist)
				}
			})
		}
	}
}

func TestOverlapIsStrict(t *testing.T) {
	cases := []struct {
		name       string
		box        common.Box
		want       bool
		wantCenter common.Vec2
	}{
		{"resting_on_floor", common.Box{Center: common.V(0, 1), Size: common.V(1, 2)}, false, common.Vec2{}},
		{"sunk_into_floor", common.Box{Center: common.V(0, 0.9), Size: common.V(1, 2)}, true, common.V(0, -0.5)},
		{"touching_wall", common.Box{Center: common.V(5.5, 2), Size: common.V(1, 2)}, false, common.Vec2{}},
		{"inside_wall", common.Box{Center: common.V(5.6, 2), Size: common.V(1, 2)}, true, common.V(6.5, 5)},
		{"open_air", common.Box{Center: common.V(0, 2), Size: common.V(1, 2)}, false, common.Vec2{}},
		{"head_in_platform", common.Box{Center: common.V(0, 3.2), Size: common.V(1, 2)}, true, common.V(0, 4.25)},
	}
	for gname, g := range grounds() {
		for _, c := range cases {
			t.Run(gname+"/"+c.name, func(t *testing.T) {
				hit, ok := g.Overlap(c.box)
				if ok != c.want {
					t.Fatalf("overlap = %v, want %v", ok, c.want)
				}
				if ok && hit.Center != c.wantCenter {
					t.Fatalf("center = %v, want %v", hit.Center, c.wantCenter)
				}
			})
		}
	}
}

func TestBoxesBroadphaseSpansCells(t *testing.T) {
	// one long box crossing many buckets must be reported once and found
	// from any of them
	long := common.BoxFromMinMax(common.V(-50, 0), common.V(50, 1))
	b := NewBoxes([]common.Box{long}, 2)
	for _, x := range []float64{-49, -10, 0, 33, 49} {
		if _, ok := b.Overlap(common.Box{Center: common.V(x, 0.5), Size: common.V(0.5, 0.5)}); !ok {
			t.Fatalf("no overlap at x=%v", x)
		}
	}
	if got := len(b.candidates(common.V(-50, 0), common.V(50, 1))); got != 1 {
		t.Fatalf("candidates = %d, want 1", got)
	}
}

func TestControllerLandsOnBothBackends(t *testing.T) {
	for gname, g := range grounds() {
		t.Run(gname, func(t *testing.T) {
			c, err := controller.New(g, common.V(-10, 5), controller.DefaultTuning())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			clk := controller.Clock{Now: 0, Dt: 1.0 / 60}
			for i := 0; i < 180 && !c.Grounded(); i++ {
				c.Update(controller.FrameInput{}, clk)
				clk = clk.Advance(1.0 / 60)
			}
			if !c.Grounded() {
				t.Fatalf("never landed, at %v", c.Position())
			}
			if _, hit := g.Overlap(c.Bounds()); hit {
				t.Fatalf("landed inside the floor at %v", c.Position())
			}
		})
	}
}
