package shop

import (
	"fmt"
	"math"
)

// Limits applied by Config.Clamp.
const (
	MaxPeriods   = 10000
	MaxDepth     = 64
	MinResources = 1.0
)

// Config holds the parameters of one generation cycle. It is treated as
// immutable once a cycle starts.
type Config struct {
	Archetype Archetype `json:"archetype" yaml:"archetype"`
	Periods   int       `json:"periods" yaml:"periods"`     // number of operations
	Resources float64   `json:"resources" yaml:"resources"` // resource base
	Depth     int       `json:"depth" yaml:"depth"`         // dependency window

	// Threshold and Complexity are carried for the control surface only.
	// Neither feeds the generation or metrics formulas.
	Threshold  float64 `json:"threshold" yaml:"threshold"`
	Complexity float64 `json:"complexity" yaml:"complexity"`
}

// DefaultConfig returns the starting configuration.
func DefaultConfig() Config {
	return Config{
		Archetype:  ArchEfficient,
		Periods:    50,
		Resources:  100,
		Depth:      3,
		Threshold:  0.3,
		Complexity: 2.0,
	}
}

// Validate rejects configurations that cannot drive synthesis.
// Out-of-range but finite values are left to Clamp.
func (c Config) Validate() error {
	if !c.Archetype.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidArchetype, uint8(c.Archetype))
	}
	for name, v := range map[string]float64{
		"resources":  c.Resources,
		"threshold":  c.Threshold,
		"complexity": c.Complexity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Clamp returns a copy with every parameter pulled into range. Threshold
// is bounded to [0, 1].
func (c Config) Clamp() Config {
	c.Periods = clampInt(c.Periods, 0, MaxPeriods)
	c.Depth = clampInt(c.Depth, 0, MaxDepth)
	if c.Resources < MinResources {
		c.Resources = MinResources
	}
	c.Threshold = math.Max(0, math.Min(1, c.Threshold))
	return c
}

// StructuralChange reports whether moving from c to next requires a full
// regeneration. Threshold changes only need a metrics recompute; complexity
// changes regenerate only for the fractal archetype.
func (c Config) StructuralChange(next Config) bool {
	if c.Archetype != next.Archetype ||
		c.Periods != next.Periods ||
		c.Resources != next.Resources ||
		c.Depth != next.Depth {
		return true
	}
	return next.Archetype == ArchFractal && c.Complexity != next.Complexity
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
