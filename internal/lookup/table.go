// Package lookup provides immutable lookup tables over irregular,
// axis-aligned grids and the linear/trilinear interpolation used to
// evaluate them.
package lookup

import (
	"errors"
	"fmt"
	"math"

	"github.com/davecgh/go-spew/spew"
)

// Table definition errors. These are data-authoring mistakes and are only
// ever returned while building a table, never while evaluating one.
var (
	ErrShortAxis    = errors.New("lookup: axis needs at least 2 breakpoints")
	ErrNotMonotonic = errors.New("lookup: axis is not strictly increasing")
	ErrNonFinite    = errors.New("lookup: non-finite value")
	ErrSizeMismatch = errors.New("lookup: value count does not match axes")
)

// Axis is a strictly increasing sequence of breakpoints.
type Axis []float64

// NewAxis validates and copies the given breakpoints.
func NewAxis(points ...float64) (Axis, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrShortAxis, len(points))
	}
	for i, p := range points {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: breakpoint %d of %s", ErrNonFinite, i, spew.Sdump(points))
		}
		if i > 0 && p <= points[i-1] {
			return nil, fmt.Errorf("%w: breakpoint %d (%g <= %g) of %s",
				ErrNotMonotonic, i, p, points[i-1], spew.Sdump(points))
		}
	}
	a := make(Axis, len(points))
	copy(a, points)
	return a, nil
}

// Len returns the number of breakpoints.
func (a Axis) Len() int { return len(a) }

// Min returns the first breakpoint.
func (a Axis) Min() float64 { return a[0] }

// Max returns the last breakpoint.
func (a Axis) Max() float64 { return a[len(a)-1] }

// Table1D samples a function of one variable at the breakpoints of an axis.
type Table1D struct {
	axis   Axis
	values []float64
}

// NewTable1D builds a 1-D table. len(values) must equal len(axis).
func NewTable1D(axis, values []float64) (*Table1D, error) {
	a, err := NewAxis(axis...)
	if err != nil {
		return nil, err
	}
	if len(values) != len(a) {
		return nil, fmt.Errorf("%w: %d values for %d breakpoints", ErrSizeMismatch, len(values), len(a))
	}
	v, err := copyFinite(values)
	if err != nil {
		return nil, err
	}
	return &Table1D{axis: a, values: v}, nil
}

// MustTable1D is like NewTable1D but panics on a definition error. It is
// meant for tables compiled into the program.
func MustTable1D(axis, values []float64) *Table1D {
	t, err := NewTable1D(axis, values)
	if err != nil {
		panic(err)
	}
	return t
}

// Axis returns the table's axis. Callers must not modify it.
func (t *Table1D) Axis() Axis { return t.axis }

// At returns the stored value at breakpoint i.
func (t *Table1D) At(i int) float64 { return t.values[i] }

// Table3D samples a function of three variables. Values are flattened
// with X varying fastest, then Y, then Z:
//
//	index = i + len(X)*(j + len(Y)*k)
type Table3D struct {
	x, y, z Axis
	values  []float64
}

// NewTable3D builds a 3-D table. len(values) must equal
// len(x)*len(y)*len(z).
func NewTable3D(x, y, z, values []float64) (*Table3D, error) {
	ax, err := NewAxis(x...)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	ay, err := NewAxis(y...)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}
	az, err := NewAxis(z...)
	if err != nil {
		return nil, fmt.Errorf("z axis: %w", err)
	}
	if n := len(ax) * len(ay) * len(az); len(values) != n {
		return nil, fmt.Errorf("%w: %d values for %dx%dx%d grid",
			ErrSizeMismatch, len(values), len(ax), len(ay), len(az))
	}
	v, err := copyFinite(values)
	if err != nil {
		return nil, err
	}
	return &Table3D{x: ax, y: ay, z: az, values: v}, nil
}

// MustTable3D is like NewTable3D but panics on a definition error.
func MustTable3D(x, y, z, values []float64) *Table3D {
	t, err := NewTable3D(x, y, z, values)
	if err != nil {
		panic(err)
	}
	return t
}

// Axes returns the table's three axes. Callers must not modify them.
func (t *Table3D) Axes() (x, y, z Axis) { return t.x, t.y, t.z }

// At returns the stored value at grid point (i, j, k).
func (t *Table3D) At(i, j, k int) float64 {
	return t.values[t.index(i, j, k)]
}

func (t *Table3D) index(i, j, k int) int {
	return i + len(t.x)*(j+len(t.y)*k)
}

func copyFinite(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %d", ErrNonFinite, i)
		}
		out[i] = v
	}
	return out, nil
}
