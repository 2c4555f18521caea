// Package aero evaluates aerodynamic coefficients from a per-frame input
// snapshot using table lookups plus closed-form increments.
package aero

import (
	"errors"
	"fmt"
	"reflect"
)

// Coefficient is implemented by every aerodynamic coefficient model.
// Compute reads in, publishes its results into out, and returns the
// aggregate coefficient and whether it is valid.
type Coefficient interface {
	Name() string
	Compute(in *Snapshot, out *Outputs) (float64, bool)
}

// Breakdown is implemented by models that can report their individual
// terms. Terms are appended to dst, which is returned.
type Breakdown interface {
	Breakdown(dst []Term) []Term
}

var ErrDuplicateModel = errors.New("aero: duplicate coefficient model")

// Schedule runs coefficient models in a fixed order once per frame.
//
// Order is the dependency contract between models: a model may read an
// output written by any model before it in the same frame. The lift model
// reads CoeffInputs.CmElev, so the pitching moment model that produces it
// must run earlier, and writes Outputs.ClStar for models that run after it.
type Schedule struct {
	models []Coefficient
}

// NewSchedule returns a schedule running models in the given order.
func NewSchedule(models ...Coefficient) (*Schedule, error) {
	seen := make(map[string]bool, len(models))
	for i, m := range models {
		if isNil(m) {
			return nil, fmt.Errorf("aero: model %d is nil", i)
		}
		if seen[m.Name()] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateModel, m.Name())
		}
		seen[m.Name()] = true
	}
	return &Schedule{models: append([]Coefficient(nil), models...)}, nil
}

// isNil also catches a nil pointer stored in a non-nil interface, such as
// a (*Lift)(nil).
func isNil(m Coefficient) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Len returns the number of scheduled models.
func (s *Schedule) Len() int { return len(s.models) }

// Run computes every model in order and appends one Result per model to
// results, which is returned. It reports whether all models succeeded.
func (s *Schedule) Run(in *Snapshot, out *Outputs, results []Result) ([]Result, bool) {
	ok := true
	for _, m := range s.models {
		v, valid := m.Compute(in, out)
		results = append(results, Result{Name: m.Name(), Value: v, OK: valid})
		ok = ok && valid
	}
	return results, ok
}

// Breakdown appends the terms of every model that reports them.
func (s *Schedule) Breakdown(dst []Term) []Term {
	for _, m := range s.models {
		if b, ok := m.(Breakdown); ok {
			dst = b.Breakdown(dst)
		}
	}
	return dst
}
