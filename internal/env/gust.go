package env

import (
	"math"

	"lift-simulator/internal/aero"
)

const ktsToFps = 1.6878098571

// Gust represents a steady vertical air mass velocity.
// Positive values are updrafts, in feet per second.
type Gust struct {
	VerticalFps float64
}

// Apply adds the angle of attack change seen by the wing when flying
// through the vertical gust at the current true airspeed.
func (g Gust) Apply(dt float64, s *aero.Snapshot) string {
	v := s.Flight.TrueAirspeedKts * ktsToFps
	if v <= 0 || g.VerticalFps == 0 {
		return ""
	}
	s.Flight.AlphaDeg += math.Atan2(g.VerticalFps, v) * 180 / math.Pi
	return ""
}

// Calm returns a Gust with zero velocity.
func Calm() Gust {
	return Gust{}
}

// FromSpeedAndAngle creates a Gust from a total air mass speed (ft/s) and
// its flight path angle (degrees, positive up).
func FromSpeedAndAngle(speedFps, angleDeg float64) Gust {
	rad := angleDeg * math.Pi / 180
	return Gust{VerticalFps: speedFps * math.Sin(rad)}
}
