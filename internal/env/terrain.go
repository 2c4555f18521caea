package env

import (
	"lift-simulator/internal/aero"
)

// Terrain derives the gear height used by the ground effect increment
// from the aircraft altitude.
type Terrain struct {
	// GroundElevationFt is the field elevation under the aircraft in feet
	GroundElevationFt float64
	// GearOffsetFt is the height of the altitude reference above the gear
	// with the aircraft on the ground
	GearOffsetFt float64
}

// GearHeight returns the height of the gear above the ground for the
// given altitude. It is negative when the gear would be below the surface.
func (t Terrain) GearHeight(altitudeFt float64) float64 {
	return altitudeFt - t.GroundElevationFt - t.GearOffsetFt
}

// Apply sets the gear height. A gear height below the surface is clipped
// to zero and reported. A zero altitude means no altitude was supplied, and
// the snapshot's HGear is left as the client set it.
func (t Terrain) Apply(dt float64, s *aero.Snapshot) string {
	if s.Flight.AltitudeFt == 0 {
		return ""
	}
	h := t.GearHeight(s.Flight.AltitudeFt)
	if h < 0 {
		s.Coeff.HGear = 0
		return "terrain-floor: gear height clipped to ground"
	}
	s.Coeff.HGear = h
	return ""
}

// DefaultTerrain returns a sea level field for a light twin.
func DefaultTerrain() Terrain {
	return Terrain{
		GroundElevationFt: 0,
		GearOffsetFt:      5, // reference point 5 ft above the wheels
	}
}
