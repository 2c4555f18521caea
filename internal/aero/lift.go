package aero

import (
	"errors"
	"math"
)

// LiftTerms are the individual contributions to the lift coefficient from
// the last Compute.
type LiftTerms struct {
	Base         float64 `json:"base"`         // basic rigid airplane
	Dynamic      float64 `json:"dynamic"`      // alpha rate and pitch rate
	Elevator     float64 `json:"elevator"`     // elevator deflection
	AsymThrust   float64 `json:"asymThrust"`   // asymmetric thrust
	GroundEffect float64 `json:"groundEffect"` // ground proximity
	FlapFailure  float64 `json:"flapFailure"`  // split flap
	Icing        float64 `json:"icing"`        // ice accretion
	Bias         float64 `json:"bias"`         // flight test matching
}

// Lift computes the aircraft lift coefficient.
type Lift struct {
	tables *LiftTables
	cfg    Config

	terms LiftTerms
	coeff float64
}

// NewLift returns a lift model with all terms zeroed. It fails if the
// tables are missing or cfg does not validate, so Compute never sees
// constants that would make a term undefined.
func NewLift(tables *LiftTables, cfg Config) (*Lift, error) {
	if tables == nil || tables.Basic == nil || tables.Ice == nil {
		return nil, errors.New("aero: lift tables not built")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Lift{tables: tables, cfg: cfg}, nil
}

func (l *Lift) Name() string { return "lift" }

// Compute evaluates every lift term, publishes CLift and ClStar to out and
// returns the total. It never fails.
func (l *Lift) Compute(in *Snapshot, out *Outputs) (float64, bool) {
	fs := &in.Flight
	cd := &in.Coeff
	c := &l.cfg
	t := &l.terms

	// Basic lift from alpha, symmetric thrust and flap, extrapolated
	// outside the data on every axis.
	// 90E1624 AS, pp. A-1, A-6, A-7
	t.Base = l.tables.Basic.Interp(fs.AlphaDeg, cd.Tcx, fs.FlapPct, false, false, false)

	// 90E1624 AS, p. A-1
	t.Dynamic = (c.CLAlphaDot*fs.AlphaDotRps + c.CLQ*fs.PitchRateRps) * cd.CHat

	// CmElev comes from the pitching moment model, which uses it again for Cm.
	// 90E1624 AS, p. A-2
	t.Elevator = -cd.CmElev * c.TailArmRatio

	// 90E1624 AS, p. A-2
	t.AsymThrust = (c.CLAsymThrust0 + c.CLAsymThrustAlpha*fs.AlphaDeg + c.CLAsymThrustFlap*fs.FlapPct/100) *
		(math.Abs(cd.Tcd) / c.AsymThrustRef)

	// Full strength on the ground, gone at half a span.
	// 90E1624 AS, p. A-3
	ge := math.Min(1, math.Max(0, 1-2*cd.HGear/c.WingSpanFt))
	t.GroundEffect = c.CLGroundEffect * ge

	// 90E1624 AS, p. A-3
	split := (fs.FlapAvgPct - fs.FlapPct) * c.FlapFailGain
	t.FlapFailure = (c.CLFlapFail0 + c.CLFlapFailAlpha*fs.AlphaDeg) * split

	// 90E1624 AS, pp. A-4, A-8
	t.Icing = l.tables.Ice.Interp(fs.AlphaDeg, true) * fs.IceFactor

	t.Bias = c.Bias

	// summation order is fixed
	l.coeff = t.Base +
		t.Dynamic +
		t.Elevator +
		t.AsymThrust +
		t.GroundEffect +
		t.FlapFailure +
		t.Icing +
		t.Bias

	out.ClStar = t.Base + t.Dynamic
	out.CLift = l.coeff

	return l.coeff, true
}

// Coeff returns the lift coefficient from the last Compute.
func (l *Lift) Coeff() float64 { return l.coeff }

// Terms returns the individual terms from the last Compute.
func (l *Lift) Terms() LiftTerms { return l.terms }

// Breakdown appends the lift terms to dst.
func (l *Lift) Breakdown(dst []Term) []Term {
	t := &l.terms
	return append(dst,
		Term{"lift.base", t.Base},
		Term{"lift.dynamic", t.Dynamic},
		Term{"lift.elevator", t.Elevator},
		Term{"lift.asymThrust", t.AsymThrust},
		Term{"lift.groundEffect", t.GroundEffect},
		Term{"lift.flapFailure", t.FlapFailure},
		Term{"lift.icing", t.Icing},
		Term{"lift.bias", t.Bias},
	)
}
