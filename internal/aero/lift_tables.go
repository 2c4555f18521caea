package aero

import (
	"fmt"

	"lift-simulator/internal/lookup"
)

// Icing effects. 90E1624 AS, pp. A-4, A-8
var (
	iceAlphaDeg = []float64{0, 4, 8, 10, 12}
	iceCL       = []float64{0, -0.03, -0.21, -0.37, -0.39}
)

// Basic lift. 90E1624 AS, pp. A-1, A-6, A-7
//
// Rows run over alpha; four rows per flap block, one per Tcx.
var (
	basicAlphaDeg = []float64{-8, -4, 0, 4, 8, 10, 12, 14, 16, 20}
	basicTcx      = []float64{0, 0.1, 0.2, 0.6}
	basicFlapPct  = []float64{0, 100}

	basicCL = []float64{
		// flaps up
		-0.52, -0.08, 0.35, 0.70, 1.06, 1.14, 1.20, 1.21, 1.12, 1.04,
		-0.49, -0.04, 0.40, 0.76, 1.13, 1.27, 1.38, 1.39, 1.34, 1.24,
		-0.47, -0.03, 0.42, 0.80, 1.19, 1.35, 1.47, 1.48, 1.44, 1.33,
		-0.46, 0.00, 0.44, 0.86, 1.26, 1.44, 1.58, 1.62, 1.60, 1.50,

		// flaps down
		0.07, 0.46, 0.85, 1.24, 1.50, 1.55, 1.53, 1.40, 1.22, 1.05,
		0.14, 0.54, 0.95, 1.34, 1.60, 1.66, 1.67, 1.54, 1.38, 1.24,
		0.17, 0.60, 1.02, 1.42, 1.71, 1.77, 1.80, 1.70, 1.57, 1.38,
		0.32, 0.78, 1.23, 1.62, 1.93, 1.99, 2.02, 1.96, 1.84, 1.61,
	}
)

// LiftTables are the lookup tables of the lift model. They are immutable
// once built and may be shared by any number of Lift instances.
type LiftTables struct {
	Basic *lookup.Table3D // alpha deg x Tcx x flap %
	Ice   *lookup.Table1D // alpha deg
}

// NewLiftTables builds the lift tables from the reference data. It must be
// called once during setup; an error means the data is malformed.
func NewLiftTables() (*LiftTables, error) {
	basic, err := lookup.NewTable3D(basicAlphaDeg, basicTcx, basicFlapPct, basicCL)
	if err != nil {
		return nil, fmt.Errorf("basic lift table: %w", err)
	}
	ice, err := lookup.NewTable1D(iceAlphaDeg, iceCL)
	if err != nil {
		return nil, fmt.Errorf("icing lift table: %w", err)
	}
	return &LiftTables{Basic: basic, Ice: ice}, nil
}
