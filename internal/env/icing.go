package env

import (
	"math"

	"lift-simulator/internal/aero"
)

// Icing accumulates ice over time. In cloud the severity grows at
// AccretionPerSec, otherwise it decays at SheddingPerSec, always staying
// within [0, 1]. The snapshot's icing factor becomes the larger of its
// own value and the accumulated severity.
//
// Icing carries state between frames and must be used as a pointer.
type Icing struct {
	InCloud         bool
	AccretionPerSec float64
	SheddingPerSec  float64

	severity float64
}

// warnSeverity is the severity above which Apply reports a warning.
const warnSeverity = 0.5

// Apply advances the accumulated severity by dt and applies it.
func (i *Icing) Apply(dt float64, s *aero.Snapshot) string {
	if i.InCloud {
		i.severity += i.AccretionPerSec * dt
	} else {
		i.severity -= i.SheddingPerSec * dt
	}
	i.severity = math.Min(1, math.Max(0, i.severity))

	k := math.Max(s.Flight.IceFactor, i.severity)
	s.Flight.IceFactor = math.Min(1, k)

	if s.Flight.IceFactor > warnSeverity {
		return "icing: severe accretion"
	}
	return ""
}

// Severity returns the accumulated severity.
func (i *Icing) Severity() float64 { return i.severity }

// Reset clears the accumulated ice.
func (i *Icing) Reset() { i.severity = 0 }
