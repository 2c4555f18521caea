package lookup

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

var (
	iceAxis   = []float64{0, 4, 8, 10, 12}
	iceValues = []float64{0, -0.03, -0.21, -0.37, -0.39}
)

func TestNewAxis_Errors(t *testing.T) {
	tests := []struct {
		name   string
		points []float64
		want   error
	}{
		{"empty", nil, ErrShortAxis},
		{"single", []float64{1}, ErrShortAxis},
		{"decreasing", []float64{0, 2, 1}, ErrNotMonotonic},
		{"repeated", []float64{0, 1, 1, 2}, ErrNotMonotonic},
		{"nan", []float64{0, math.NaN()}, ErrNonFinite},
		{"inf", []float64{math.Inf(-1), 0}, ErrNonFinite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAxis(tc.points...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("NewAxis(%v) error = %v; want %v", tc.points, err, tc.want)
			}
		})
	}
}

func TestNewAxis_Copies(t *testing.T) {
	src := []float64{0, 1, 2}
	a, err := NewAxis(src...)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 99
	if a[0] != 0 {
		t.Errorf("axis aliases its input: a[0] = %g", a[0])
	}
	if a.Min() != 0 || a.Max() != 2 || a.Len() != 3 {
		t.Errorf("Min/Max/Len = %g/%g/%d", a.Min(), a.Max(), a.Len())
	}
}

func TestNewTable_SizeMismatch(t *testing.T) {
	if _, err := NewTable1D([]float64{0, 1}, []float64{1}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("1D mismatch: err = %v", err)
	}
	if _, err := NewTable3D([]float64{0, 1}, []float64{0, 1}, []float64{0, 1}, make([]float64, 7)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("3D mismatch: err = %v", err)
	}
	if _, err := NewTable3D([]float64{0, 1}, []float64{1, 0}, []float64{0, 1}, make([]float64, 8)); !errors.Is(err, ErrNotMonotonic) {
		t.Errorf("3D bad y axis: err = %v", err)
	}
	if _, err := NewTable1D([]float64{0, 1}, []float64{0, math.NaN()}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("1D NaN value: err = %v", err)
	}
}

func TestMustTable_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTable1D did not panic on a short axis")
		}
	}()
	MustTable1D([]float64{0}, []float64{0})
}

func TestBracket(t *testing.T) {
	a := Axis{-8, -4, 0, 4, 8}
	tests := []struct {
		v     float64
		clamp bool
		i     int
		t     float64
	}{
		{-8, false, 0, 0},
		{-6, false, 0, 0.5},
		{0, false, 2, 0},
		{2, false, 2, 0.5},
		{8, false, 3, 1},
		{-12, false, 0, -1},
		{12, false, 3, 2},
		{-12, true, 0, 0},
		{12, true, 3, 1},
	}
	for _, tc := range tests {
		i, f := Bracket(a, tc.v, tc.clamp)
		if i != tc.i || f != tc.t {
			t.Errorf("Bracket(%g, %v) = (%d, %g); want (%d, %g)", tc.v, tc.clamp, i, f, tc.i, tc.t)
		}
	}
}

func TestTable1D_ExactAtBreakpoints(t *testing.T) {
	tbl := MustTable1D(iceAxis, iceValues)
	for i, x := range iceAxis {
		for _, clamp := range []bool{true, false} {
			if got := tbl.Interp(x, clamp); got != iceValues[i] {
				t.Errorf("Interp(%g, %v) = %v; want exactly %v", x, clamp, got, iceValues[i])
			}
		}
	}
}

func TestTable1D_Between(t *testing.T) {
	tbl := MustTable1D(iceAxis, iceValues)
	for i := 0; i+1 < len(iceAxis); i++ {
		lo, hi := iceValues[i], iceValues[i+1]
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, f := range []float64{0.1, 0.25, 0.5, 0.9} {
			x := iceAxis[i] + f*(iceAxis[i+1]-iceAxis[i])
			got := tbl.Interp(x, true)
			if got < lo-tolerance || got > hi+tolerance {
				t.Errorf("Interp(%g) = %g; outside [%g, %g]", x, got, lo, hi)
			}
		}
	}
	if got := tbl.Interp(6, true); !near(got, -0.12) {
		t.Errorf("Interp(6) = %g; want -0.12", got)
	}
}

func TestTable1D_Clamp(t *testing.T) {
	tbl := MustTable1D(iceAxis, iceValues)
	for _, d := range []float64{0.001, 1, 100, 1e9} {
		if got := tbl.Interp(iceAxis[0]-d, true); got != iceValues[0] {
			t.Errorf("below by %g: got %g; want %g", d, got, iceValues[0])
		}
		if got := tbl.Interp(iceAxis[4]+d, true); got != iceValues[4] {
			t.Errorf("above by %g: got %g; want %g", d, got, iceValues[4])
		}
	}
}

func TestTable1D_Extrapolate(t *testing.T) {
	tbl := MustTable1D(iceAxis, iceValues)
	slope0 := (iceValues[1] - iceValues[0]) / (iceAxis[1] - iceAxis[0])
	slopeN := (iceValues[4] - iceValues[3]) / (iceAxis[4] - iceAxis[3])
	for _, d := range []float64{0.01, 0.5, 2} {
		want := iceValues[0] - d*slope0
		if got := tbl.Interp(iceAxis[0]-d, false); !near(got, want) {
			t.Errorf("below by %g: got %.15g; want %.15g", d, got, want)
		}
		want = iceValues[4] + d*slopeN
		if got := tbl.Interp(iceAxis[4]+d, false); !near(got, want) {
			t.Errorf("above by %g: got %.15g; want %.15g", d, got, want)
		}
	}
}

// f(x, y, z) = 1 + 2x + 3y + 4z is reproduced exactly (up to rounding) by
// trilinear interpolation anywhere, including when extrapolating.
func linearTable(t *testing.T) *Table3D {
	t.Helper()
	x := []float64{0, 1, 3}
	y := []float64{-1, 0, 2, 5}
	z := []float64{0, 10}
	values := make([]float64, 0, len(x)*len(y)*len(z))
	for _, zv := range z {
		for _, yv := range y {
			for _, xv := range x {
				values = append(values, 1+2*xv+3*yv+4*zv)
			}
		}
	}
	tbl, err := NewTable3D(x, y, z, values)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestTable3D_Layout(t *testing.T) {
	tbl := linearTable(t)
	x, y, z := tbl.Axes()
	for k := range z {
		for j := range y {
			for i := range x {
				want := 1 + 2*x[i] + 3*y[j] + 4*z[k]
				if got := tbl.At(i, j, k); got != want {
					t.Errorf("At(%d,%d,%d) = %g; want %g", i, j, k, got, want)
				}
				if got := tbl.Interp(x[i], y[j], z[k], false, false, false); got != want {
					t.Errorf("Interp at grid (%d,%d,%d) = %g; want exactly %g", i, j, k, got, want)
				}
			}
		}
	}
}

func TestTable3D_Linear(t *testing.T) {
	tbl := linearTable(t)
	points := [][3]float64{
		{0.5, -0.5, 5},
		{2, 1, 2.5},
		{2.9, 4.2, 9.9},
		{-1, -2, -3},
		{4, 7, 12},
	}
	for _, p := range points {
		want := 1 + 2*p[0] + 3*p[1] + 4*p[2]
		got := tbl.Interp(p[0], p[1], p[2], false, false, false)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Interp%v = %g; want %g", p, got, want)
		}
	}
}

func TestTable3D_PerAxisClamp(t *testing.T) {
	tbl := linearTable(t)
	// x clamped to 3, y extrapolated to 7, z clamped to 0
	got := tbl.Interp(10, 7, -5, true, false, true)
	want := 1 + 2*3.0 + 3*7.0 + 4*0.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("mixed clamp = %g; want %g", got, want)
	}
	// all clamped, far outside
	got = tbl.Interp(-100, -100, 100, true, true, true)
	if want := tbl.At(0, 0, 1); got != want {
		t.Errorf("fully clamped corner = %g; want %g", got, want)
	}
}

func TestTable3D_Stateless(t *testing.T) {
	tbl := linearTable(t)
	a := tbl.Interp(1.5, 0.5, 3, false, false, false)
	tbl.Interp(-4, 9, 20, false, false, false)
	if b := tbl.Interp(1.5, 0.5, 3, false, false, false); a != b {
		t.Errorf("repeated query differs: %v vs %v", a, b)
	}
}

func TestTable1D_FlatInterval(t *testing.T) {
	for _, v := range []float64{0.1, -0.37, 1.19, 0.35, 1e-9, -2.5, 3} {
		tbl := MustTable1D([]float64{0, 1}, []float64{v, v})
		for i := 1; i < 1000; i++ {
			x := float64(i) / 1000
			if got := tbl.Interp(x, true); got != v {
				t.Fatalf("flat %g at x=%g: got %.17g", v, x, got)
			}
		}
	}
}

func TestTable1D_NoOvershoot(t *testing.T) {
	// a nearly flat interval followed by a steep one
	tbl := MustTable1D([]float64{0, 0.3, 1}, []float64{0.1, 0.1 + 1e-16, 0.7})
	for i := 1; i < 1000; i++ {
		x := float64(i) / 1000
		got := tbl.Interp(x, true)
		if got < 0.1 || got > 0.7 {
			t.Fatalf("Interp(%g) = %.17g; outside [0.1, 0.7]", x, got)
		}
	}
}

func TestTable3D_Between(t *testing.T) {
	// monotone in every axis, with one flat X interval
	x := []float64{0, 4, 8}
	y := []float64{0, 0.2}
	z := []float64{0, 100}
	values := []float64{
		0.35, 0.70, 0.70,
		0.42, 0.80, 0.80,

		0.85, 1.24, 1.24,
		1.02, 1.42, 1.42,
	}
	tbl := MustTable3D(x, y, z, values)

	for i := 0; i+1 < len(x); i++ {
		for _, fx := range []float64{0.013, 0.25, 0.5, 0.77, 0.999} {
			for _, fy := range []float64{0, 0.3, 0.9} {
				for _, fz := range []float64{0, 0.41, 1} {
					px := x[i] + fx*(x[i+1]-x[i])
					py := y[0] + fy*(y[1]-y[0])
					pz := z[0] + fz*(z[1]-z[0])
					lo, hi := tbl.At(i, 0, 0), tbl.At(i+1, 1, 1)
					got := tbl.Interp(px, py, pz, true, true, true)
					if got < lo || got > hi {
						t.Errorf("Interp(%g, %g, %g) = %.17g; outside cell [%g, %g]", px, py, pz, got, lo, hi)
					}
				}
			}
		}
	}

	// the flat X interval stays exactly flat on the grid planes
	for _, px := range []float64{4.001, 5.5, 7.999} {
		if got := tbl.Interp(px, 0.2, 100, false, false, false); got != 1.42 {
			t.Errorf("flat interval at x=%g: got %.17g; want 1.42", px, got)
		}
	}
}
