package lookup

import (
	"math"
	"sort"
)

// Bracket locates v on the axis. It returns the index i of the interval
// [a[i], a[i+1]] to use and the fractional position t of v within it.
//
// A value equal to a breakpoint starts that breakpoint's interval (t = 0);
// the last breakpoint maps to the last interval with t = 1. Outside the
// axis the nearest boundary interval is used: with clamp set, t is pinned
// to 0 or 1 so the boundary value is returned, otherwise t falls outside
// [0, 1] and the caller extrapolates on that interval's slope.
func Bracket(a Axis, v float64, clamp bool) (int, float64) {
	n := len(a)
	// first breakpoint strictly greater than v
	i := sort.Search(n, func(k int) bool { return a[k] > v }) - 1
	if i < 0 {
		i = 0
	} else if i > n-2 {
		i = n - 2
	}

	t := (v - a[i]) / (a[i+1] - a[i])
	if clamp {
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return i, t
}

// lerp returns exactly a at t = 0 and exactly b at t = 1. For t within
// [0, 1] the result never leaves [min(a, b), max(a, b)], so flat intervals
// stay flat.
func lerp(a, b, t float64) float64 {
	if a == b {
		return a
	}
	if t == 1 {
		return b
	}
	v := a + t*(b-a)
	if t < 0 || t > 1 {
		return v
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(hi, math.Max(lo, v))
}

// Interp evaluates the table at x. With clamp set, queries outside the
// axis return the boundary value; otherwise they extrapolate linearly.
func (t *Table1D) Interp(x float64, clamp bool) float64 {
	i, f := Bracket(t.axis, x, clamp)
	return lerp(t.values[i], t.values[i+1], f)
}

// Interp evaluates the table at (x, y, z) by trilinear interpolation. Each
// axis has its own clamp flag with the same meaning as in Table1D.Interp.
//
// The eight cell corners are combined along X first (four edges), then
// along Y (two edges), then along Z.
func (t *Table3D) Interp(x, y, z float64, clampX, clampY, clampZ bool) float64 {
	i, fx := Bracket(t.x, x, clampX)
	j, fy := Bracket(t.y, y, clampY)
	k, fz := Bracket(t.z, z, clampZ)

	nx := len(t.x)
	nxy := nx * len(t.y)
	p := t.index(i, j, k)
	v := t.values

	// corners: c<dy><dz>, each pair spanning X
	c00 := lerp(v[p], v[p+1], fx)
	c10 := lerp(v[p+nx], v[p+nx+1], fx)
	c01 := lerp(v[p+nxy], v[p+nxy+1], fx)
	c11 := lerp(v[p+nxy+nx], v[p+nxy+nx+1], fx)

	c0 := lerp(c00, c10, fy)
	c1 := lerp(c01, c11, fy)

	return lerp(c0, c1, fz)
}
