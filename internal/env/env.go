package env

import (
	"lift-simulator/internal/aero"
)

// Environment is an interface for environmental effects that derive
// coefficient inputs each frame. Each implementation can modify the input
// snapshot based on factors like terrain, gusts or icing conditions.
type Environment interface {
	// Apply updates the snapshot in place and returns an optional warning
	// message. The dt parameter is the time step in seconds since the last
	// update.
	Apply(dt float64, s *aero.Snapshot) string
}

// Chain is a composite environment that applies multiple environment effects in sequence.
type Chain struct {
	Effects []Environment
}

// Apply applies all environment effects in the chain, in order.
// Each effect sees the snapshot as left by the previous one.
// The last non-empty warning message is returned.
func (c *Chain) Apply(dt float64, s *aero.Snapshot) string {
	var warning string
	for _, effect := range c.Effects {
		if w := effect.Apply(dt, s); w != "" {
			warning = w
		}
	}
	return warning
}

// NoOp is an environment that does nothing.
var NoOp Environment = noOpEnv{}

type noOpEnv struct{}

func (noOpEnv) Apply(dt float64, s *aero.Snapshot) string {
	return ""
}

// Reset clears the state of every effect in the chain that keeps any.
func (c *Chain) Reset() {
	for _, effect := range c.Effects {
		if r, ok := effect.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
}
