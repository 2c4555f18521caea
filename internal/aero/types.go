package aero

// FlightState is the flight-state part of the per-frame input snapshot.
// Coefficient models only read it.
type FlightState struct {
	AlphaDeg     float64 `json:"alphaDeg"`     // angle of attack, deg
	AlphaDotRps  float64 `json:"alphaDotRps"`  // angle of attack rate, rad/s
	PitchRateRps float64 `json:"pitchRateRps"` // q, rad/s
	FlapPct      float64 `json:"flapPct"`      // flap deflection, %
	FlapAvgPct   float64 `json:"flapAvgPct"`   // average of left/right flap deflection, %
	IceFactor    float64 `json:"iceFactor"`    // icing severity, 0..1

	// Used by environment effects, not by the coefficients.
	AltitudeFt      float64 `json:"altitudeFt"`
	TrueAirspeedKts float64 `json:"trueAirspeedKts"`
}

// CoeffInputs holds values produced by other models earlier in the frame.
type CoeffInputs struct {
	Tcx    float64 `json:"tcx"`    // symmetric thrust coefficient
	Tcd    float64 `json:"tcd"`    // asymmetric thrust difference coefficient
	CmElev float64 `json:"cmElev"` // pitching moment increment due to elevator
	CHat   float64 `json:"cHat"`   // c/2V
	HGear  float64 `json:"hGear"`  // gear height above ground, ft
}

// Snapshot is everything a coefficient model may read in one frame.
type Snapshot struct {
	Flight FlightState `json:"flight"`
	Coeff  CoeffInputs `json:"coeff"`
}

// Outputs is the shared output state written by coefficient models.
type Outputs struct {
	CLift  float64 `json:"cLift"`
	ClStar float64 `json:"clStar"` // basic + dynamic lift, read by the pitching moment model
}

// Term is one named contribution to a coefficient.
type Term struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result is the outcome of one coefficient model in a frame.
type Result struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	OK    bool    `json:"ok"`
}
