package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ghost-cookies/internal/fractal"
)

func synthesize(t *testing.T, cfg Config) []Operation {
	t.Helper()
	ops, err := NewSynthesizer(7).Synthesize(cfg)
	require.NoError(t, err)
	return ops
}

func TestSynthesizeDenseIndices(t *testing.T) {
	for _, arch := range Archetypes() {
		for _, n := range []int{1, 2, 17, 50} {
			cfg := DefaultConfig()
			cfg.Archetype = arch
			cfg.Periods = n

			ops := synthesize(t, cfg)
			require.Len(t, ops, n, "%s/%d", arch, n)
			for i, op := range ops {
				require.Equal(t, i, op.Index)
			}
		}
	}
}

func TestSynthesizeBands(t *testing.T) {
	tests := []struct {
		arch             Archetype
		costLo, costHi   float64
		effLo, effHi     float64
	}{
		{ArchEfficient, 0.2, 0.3, 0.85, 0.95},
		{ArchInefficient, 0.6, 0.9, 0.3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.arch.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Archetype = tt.arch
			cfg.Periods = 500

			for _, op := range synthesize(t, cfg) {
				assert.GreaterOrEqual(t, op.Cost, tt.costLo)
				assert.Less(t, op.Cost, tt.costHi)
				assert.GreaterOrEqual(t, op.Efficiency, tt.effLo)
				assert.Less(t, op.Efficiency, tt.effHi)
			}
		})
	}
}

func TestSynthesizeResources(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resources = 200
	cfg.Periods = 300

	for _, op := range synthesize(t, cfg) {
		assert.GreaterOrEqual(t, op.Resources, 180.0)
		assert.Less(t, op.Resources, 220.0)
	}
}

func TestSynthesizeFractal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Archetype = ArchFractal
	cfg.Periods = 40

	for _, op := range synthesize(t, cfg) {
		c := fractal.Signal(float64(op.Index) / 40)
		assert.InDelta(t, 0.3+0.5*c, op.Cost, 1e-12)

		want := 0.4 + 0.4*(1-c)
		if c > 0.7 {
			want += 0.15
		}
		assert.InDelta(t, want, op.Efficiency, 1e-12, "index %d", op.Index)
	}
}

func TestSynthesizeSeeded(t *testing.T) {
	cfg := DefaultConfig()
	a, err := NewSynthesizer(99).Synthesize(cfg)
	require.NoError(t, err)
	b, err := NewSynthesizer(99).Synthesize(cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSynthesizer(100).Synthesize(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSynthesizeZeroSeed(t *testing.T) {
	s := NewSynthesizer(0)
	assert.NotZero(t, s.Seed())
}

func TestSynthesizeRejectsUnknownArchetype(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Archetype = Archetype(9)

	ops, err := NewSynthesizer(1).Synthesize(cfg)
	require.ErrorIs(t, err, ErrInvalidArchetype)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, ops)
}

func TestSynthesizeEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Periods = 0
	assert.Empty(t, synthesize(t, cfg))

	cfg.Periods = -5
	assert.Empty(t, synthesize(t, cfg))
}
