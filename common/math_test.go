package common

import "testing"

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name                   string
		current, target, delta float64
		want                   float64
	}{
		{"step_down", 5, 0, 2, 3},
		{"step_up", -5, 0, 2, -3},
		{"snap_without_overshoot", 1, 0, 2, 0},
		{"exact", 2, 0, 2, 0},
		{"already_there", 0, 0, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveTowards(c.current, c.target, c.delta); got != c.want {
				t.Fatalf("MoveTowards(%v, %v, %v) = %v, want %v", c.current, c.target, c.delta, got, c.want)
			}
		})
	}
}

func TestInverseLerp(t *testing.T) {
	cases := []struct {
		name    string
		a, b, v float64
		want    float64
	}{
		{"reversed_range_at_apex", 10, 0, 0, 1},
		{"reversed_range_midway", 10, 0, 5, 0.5},
		{"clamped_above", 10, 0, 15, 0},
		{"clamped_below", 0, 10, -3, 0},
		{"degenerate", 4, 4, 4, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InverseLerp(c.a, c.b, c.v); got != c.want {
				t.Fatalf("InverseLerp(%v, %v, %v) = %v, want %v", c.a, c.b, c.v, got, c.want)
			}
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	ground := BoxFromMinMax(V(0, 0), V(10, 1))
	cases := []struct {
		name string
		box  Box
		want bool
	}{
		{"resting_on_top", Box{Center: V(5, 2), Size: V(1, 2)}, false},
		{"sunk_in", Box{Center: V(5, 1.9), Size: V(1, 2)}, true},
		{"beside", Box{Center: V(10.5, 0.5), Size: V(1, 1)}, false},
		{"far", Box{Center: V(50, 50), Size: V(1, 1)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.box.Overlaps(ground); got != c.want {
				t.Fatalf("Overlaps = %v, want %v", got, c.want)
			}
		})
	}
}
