package aero

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
)

// Config holds the aircraft constants used by the lift increments.
type Config struct {
	CLAlphaDot float64 `json:"clAlphaDot"` // lift per alpha rate
	CLQ        float64 `json:"clq"`        // lift per pitch rate

	TailArmRatio float64 `json:"tailArmRatio"` // mean chord / horizontal tail arm

	CLAsymThrust0     float64 `json:"clAsymThrust0"`
	CLAsymThrustAlpha float64 `json:"clAsymThrustAlpha"` // per deg
	CLAsymThrustFlap  float64 `json:"clAsymThrustFlap"`  // per unit flap (0..1)
	AsymThrustRef     float64 `json:"asymThrustRef"`     // Tcd normalization

	WingSpanFt     float64 `json:"wingSpanFt"`
	CLGroundEffect float64 `json:"clGroundEffect"` // increment at zero gear height

	CLFlapFail0     float64 `json:"clFlapFail0"`
	CLFlapFailAlpha float64 `json:"clFlapFailAlpha"` // per deg
	FlapFailGain    float64 `json:"flapFailGain"`    // per % of flap split

	Bias float64 `json:"bias"`
}

// DefaultConfig returns the constants of the built-in twin turboprop.
func DefaultConfig() Config {
	return Config{
		CLAlphaDot:        1.7,
		CLQ:               4.5,
		TailArmRatio:      0.34,
		CLAsymThrust0:     0.02,
		CLAsymThrustAlpha: 0.004,
		CLAsymThrustFlap:  0.05,
		AsymThrustRef:     0.4,
		WingSpanFt:        50.25,
		CLGroundEffect:    0.1,
		CLFlapFail0:       0.01,
		CLFlapFailAlpha:   0.002,
		FlapFailGain:      0.04,
	}
}

// LoadConfig reads a JSON file over the defaults. Fields missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("aero config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("aero config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the constants for values that would make the increments
// undefined.
func (c Config) Validate() error {
	v := reflect.ValueOf(c)
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i).Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("aero config: %s is not finite", v.Type().Field(i).Name)
		}
	}
	if c.WingSpanFt <= 0 {
		return fmt.Errorf("aero config: wing span must be positive, got %g", c.WingSpanFt)
	}
	if c.AsymThrustRef <= 0 {
		return fmt.Errorf("aero config: asymmetric thrust reference must be positive, got %g", c.AsymThrustRef)
	}
	return nil
}
