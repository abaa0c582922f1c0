package shop

import (
	"fmt"
	"math/rand"

	"github.com/talgya/ghost-cookies/internal/entropy"
	"github.com/talgya/ghost-cookies/internal/fractal"
)

// Operation is one synthetic record on the shop's time axis.
type Operation struct {
	Index      int     `json:"index"`
	Cost       float64 `json:"cost"`
	Efficiency float64 `json:"efficiency"`
	Resources  float64 `json:"resources"`
}

// band is a half-open uniform range [Min, Min+Span).
type band struct {
	Min  float64
	Span float64
}

func (b band) draw(rng *rand.Rand) float64 {
	return b.Min + rng.Float64()*b.Span
}

// uniformProfiles holds the cost/efficiency bands of the table-driven archetypes.
var uniformProfiles = map[Archetype]struct {
	Cost       band
	Efficiency band
}{
	ArchEfficient: {
		Cost:       band{Min: 0.2, Span: 0.1},
		Efficiency: band{Min: 0.85, Span: 0.1},
	},
	ArchInefficient: {
		Cost:       band{Min: 0.6, Span: 0.3},
		Efficiency: band{Min: 0.3, Span: 0.2},
	},
}

// Fractal archetype shaping.
const (
	hiddenGainThreshold = 0.7
	hiddenGainBonus     = 0.15
)

// resourceJitter is the multiplicative band applied to the resource base.
var resourceJitter = band{Min: 0.9, Span: 0.2}

// Synthesizer generates operation sequences from a seeded source.
type Synthesizer struct {
	rng  *rand.Rand
	seed int64
}

// NewSynthesizer creates a synthesizer. A zero seed draws a fresh one.
func NewSynthesizer(seed int64) *Synthesizer {
	seed = entropy.Resolve(seed)
	return &Synthesizer{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the synthesizer was created with.
func (s *Synthesizer) Seed() int64 {
	return s.seed
}

// Synthesize produces cfg.Periods operations with dense indices [0, Periods).
func (s *Synthesizer) Synthesize(cfg Config) ([]Operation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clamp()

	ops := make([]Operation, 0, cfg.Periods)
	for i := 0; i < cfg.Periods; i++ {
		op, err := s.operation(cfg, i)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (s *Synthesizer) operation(cfg Config, index int) (Operation, error) {
	var cost, efficiency float64

	switch cfg.Archetype {
	case ArchEfficient, ArchInefficient:
		p := uniformProfiles[cfg.Archetype]
		cost = p.Cost.draw(s.rng)
		efficiency = p.Efficiency.draw(s.rng)
	case ArchFractal:
		c := fractal.Signal(float64(index) / float64(cfg.Periods))
		cost = 0.3 + c*0.5
		efficiency = 0.4 + (1-c)*0.4
		if c > hiddenGainThreshold {
			efficiency += hiddenGainBonus
		}
	default:
		return Operation{}, fmt.Errorf("%w: %d", ErrInvalidArchetype, uint8(cfg.Archetype))
	}

	return Operation{
		Index:      index,
		Cost:       cost,
		Efficiency: efficiency,
		Resources:  cfg.Resources * resourceJitter.draw(s.rng),
	}, nil
}
