package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/ghost-cookies/internal/fractal"
	"github.com/talgya/ghost-cookies/internal/metrics"
	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/render"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// Session holds the current shop, its derived metrics, the camera and the
// input state. It is not safe for concurrent use.
type Session struct {
	View  projection.ViewState
	Input *Input

	cfg       shop.Config
	gen       *Generation
	metrics   metrics.Metrics
	narrative string

	synth *shop.Synthesizer
	grid  fractal.Grid
}

// NewSession validates cfg and runs the first generation cycle. A zero seed
// draws a fresh one.
func NewSession(cfg shop.Config, seed int64) (*Session, error) {
	s := &Session{
		View:  projection.DefaultView(),
		Input: NewInput(),
		synth: shop.NewSynthesizer(seed),
		grid:  fractal.DefaultGrid(),
	}
	if err := s.Regenerate(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Seed returns the seed driving synthesis.
func (s *Session) Seed() int64 { return s.synth.Seed() }

// Config returns the active configuration.
func (s *Session) Config() shop.Config { return s.cfg }

// Generation returns the current generation.
func (s *Session) Generation() *Generation { return s.gen }

// Scene returns the renderer's view of the current generation.
func (s *Session) Scene() *render.Scene { return s.gen.Scene() }

// Metrics returns the metrics of the current generation.
func (s *Session) Metrics() metrics.Metrics { return s.metrics }

// Narrative returns the second-order commentary of the current generation.
func (s *Session) Narrative() string { return s.narrative }

// Regenerate runs a full generation cycle for next and swaps it in. On error
// the previous generation stays active.
func (s *Session) Regenerate(next shop.Config) error {
	gen, err := Generate(next, s.synth, s.grid)
	if err != nil {
		return err
	}
	s.gen = gen
	s.cfg = gen.Config
	s.updateMetrics()

	slog.Info("shop generated",
		"id", gen.ID,
		"archetype", gen.Config.Archetype,
		"periods", len(gen.Operations),
		"depth", gen.Config.Depth,
		"samples", len(gen.Samples),
	)
	return nil
}

// Apply moves the session to next, clamped into range. Structural changes
// regenerate; anything else only recomputes metrics. It reports whether a
// regeneration ran.
func (s *Session) Apply(next shop.Config) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}
	next = next.Clamp()
	if s.cfg.StructuralChange(next) {
		return true, s.Regenerate(next)
	}
	s.cfg = next
	s.updateMetrics()
	return false, nil
}

// SetThreshold changes the inefficiency threshold and recomputes metrics.
// The value is clamped to [0, 1].
func (s *Session) SetThreshold(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: threshold is not finite", shop.ErrInvalidConfig)
	}
	s.cfg.Threshold = math.Max(0, math.Min(1, t))
	s.updateMetrics()
	return nil
}

func (s *Session) updateMetrics() {
	g := s.gen
	s.metrics = metrics.Compute(g.Operations, g.Blankets, len(g.Samples))
	s.narrative = metrics.Narrative(g.Config.Archetype, g.Operations)
}
