package sim

import (
	"time"

	"lift-simulator/internal/aero"
)

// Frame is the published result of one simulation frame.
type Frame struct {
	Seq uint64    `json:"seq"`
	TS  time.Time `json:"ts"`

	// Inputs as seen by the coefficient models, after environment effects.
	Inputs  aero.Snapshot `json:"inputs"`
	Outputs aero.Outputs  `json:"outputs"`

	Results []aero.Result `json:"results,omitempty"`
	Terms   []aero.Term   `json:"terms,omitempty"`

	Frozen  bool   `json:"frozen,omitempty"`
	Warning string `json:"warning,omitempty"`
}
