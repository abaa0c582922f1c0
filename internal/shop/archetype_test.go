package shop

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseArchetype(t *testing.T) {
	tests := map[string]Archetype{
		"efficient":    ArchEfficient,
		"Inefficient":  ArchInefficient,
		"fractal":      ArchFractal,
		" mandelbrot ": ArchFractal,
	}
	for tag, want := range tests {
		got, err := ParseArchetype(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}

	_, err := ParseArchetype("chaotic")
	assert.ErrorIs(t, err, ErrInvalidArchetype)
}

func TestArchetypeString(t *testing.T) {
	assert.Equal(t, "efficient", ArchEfficient.String())
	assert.Equal(t, "fractal", ArchFractal.String())
	assert.Equal(t, "Archetype(7)", Archetype(7).String())
	assert.False(t, Archetype(7).Valid())
}

func TestArchetypeText(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(`{"archetype":"mandelbrot","periods":10}`), &cfg))
	assert.Equal(t, ArchFractal, cfg.Archetype)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"archetype":"fractal"`)

	require.NoError(t, yaml.Unmarshal([]byte("archetype: inefficient\n"), &cfg))
	assert.Equal(t, ArchInefficient, cfg.Archetype)

	err = json.Unmarshal([]byte(`{"archetype":"bogus"}`), &cfg)
	assert.ErrorIs(t, err, ErrInvalidArchetype)

	_, err = json.Marshal(Config{Archetype: Archetype(5)})
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Resources = math.NaN()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Archetype = archetypeCount
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidArchetype)
}

func TestConfigClamp(t *testing.T) {
	cfg := Config{Periods: -3, Depth: 999, Resources: -10}.Clamp()
	assert.Equal(t, 0, cfg.Periods)
	assert.Equal(t, MaxDepth, cfg.Depth)
	assert.Equal(t, MinResources, cfg.Resources)

	cfg = Config{Periods: MaxPeriods + 1}.Clamp()
	assert.Equal(t, MaxPeriods, cfg.Periods)

	assert.Equal(t, 1.0, Config{Threshold: 7}.Clamp().Threshold)
	assert.Zero(t, Config{Threshold: -0.5}.Clamp().Threshold)
	assert.Equal(t, 0.4, Config{Threshold: 0.4}.Clamp().Threshold)
}

func TestConfigStructuralChange(t *testing.T) {
	base := DefaultConfig()

	next := base
	next.Threshold = 0.9
	assert.False(t, base.StructuralChange(next), "threshold is metrics-only")

	next = base
	next.Complexity = 4
	assert.False(t, base.StructuralChange(next), "complexity ignored outside fractal")

	base.Archetype = ArchFractal
	next = base
	next.Complexity = 4
	assert.True(t, base.StructuralChange(next))

	for _, mutate := range []func(*Config){
		func(c *Config) { c.Periods++ },
		func(c *Config) { c.Resources++ },
		func(c *Config) { c.Depth++ },
		func(c *Config) { c.Archetype = ArchInefficient },
	} {
		next = base
		mutate(&next)
		assert.True(t, base.StructuralChange(next))
	}
}
