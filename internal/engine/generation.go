// Package engine owns the simulation session and drives it frame by frame.
// All session state is touched from a single goroutine: the frame loop's.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/ghost-cookies/internal/fractal"
	"github.com/talgya/ghost-cookies/internal/graph"
	"github.com/talgya/ghost-cookies/internal/render"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// Generation is the output of one generation cycle. It is never modified
// after Generate returns; regeneration builds a new one and swaps it in.
type Generation struct {
	ID         uuid.UUID
	Config     shop.Config // clamped
	Operations []shop.Operation
	Blankets   []graph.Blanket
	Samples    []fractal.Sample // fractal archetype only
	CreatedAt  time.Time
}

// Generate runs a full cycle: synthesis, dependency graph and, for the
// fractal archetype, the escape-time grid scan.
func Generate(cfg shop.Config, synth *shop.Synthesizer, grid fractal.Grid) (*Generation, error) {
	ops, err := synth.Synthesize(cfg)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	cfg = cfg.Clamp()

	gen := &Generation{
		ID:         uuid.New(),
		Config:     cfg,
		Operations: ops,
		Blankets:   graph.Build(ops, cfg.Depth),
		CreatedAt:  time.Now(),
	}
	if cfg.Archetype == shop.ArchFractal {
		gen.Samples = fractal.Scan(grid)
	}
	return gen, nil
}

// Scene returns the renderer's view of the generation.
func (g *Generation) Scene() *render.Scene {
	return &render.Scene{
		Archetype:  g.Config.Archetype,
		Operations: g.Operations,
		Blankets:   g.Blankets,
		Samples:    g.Samples,
	}
}
