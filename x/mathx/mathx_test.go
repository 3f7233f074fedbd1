package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 10, 0, 5}, // swapped bounds
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestMapU16(t *testing.T) {
	cases := []struct {
		x, inMin, inMax, outMin, outMax, want uint16
	}{
		{50, 0, 100, 0, 1000, 500},
		{0, 0, 100, 0, 1000, 0},
		{100, 0, 100, 0, 1000, 1000},
		{200, 0, 100, 0, 1000, 1000}, // clamped
		{7, 7, 7, 3, 9, 3},           // degenerate input range
	}
	for _, c := range cases {
		if got := MapU16(c.x, c.inMin, c.inMax, c.outMin, c.outMax); got != c.want {
			t.Errorf("MapU16(%d) = %d, want %d", c.x, got, c.want)
		}
	}
}
