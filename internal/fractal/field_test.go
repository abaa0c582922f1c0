package fractal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	t.Run("origin never escapes", func(t *testing.T) {
		assert.Equal(t, 50, Escape(0, 0, 50, EscapeRadius))
	})

	t.Run("far point escapes immediately", func(t *testing.T) {
		// z1 = c, |c| = 3 ≥ 2 after one step.
		assert.Equal(t, 1, Escape(3, 0, 50, EscapeRadius))
	})

	t.Run("c = 1 escapes after two steps", func(t *testing.T) {
		// 0 → 1 → 2, and |2| reaches the radius.
		assert.Equal(t, 2, Escape(1, 0, 50, EscapeRadius))
	})

	t.Run("zero bound", func(t *testing.T) {
		assert.Equal(t, 0, Escape(0.3, 0.3, 0, EscapeRadius))
	})
}

func TestSignalRange(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		v := Signal(float64(i) / 1000)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestSignalPeriodic(t *testing.T) {
	for _, tt := range []float64{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.9375} {
		assert.Equal(t, Signal(tt), Signal(tt+1), "t=%v", tt)
		assert.Equal(t, Signal(tt), Signal(tt+3), "t=%v", tt)
	}
}

func TestSignalNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, Signal(math.NaN()))
	assert.Equal(t, 0.0, Signal(math.Inf(1)))
}

func TestCurvePoint(t *testing.T) {
	cx, cy := CurvePoint(0)
	assert.InDelta(t, -0.75, cx, 1e-12)
	assert.InDelta(t, 0.5, cy, 1e-12)

	cx, cy = CurvePoint(0.25)
	assert.InDelta(t, -0.25, cx, 1e-12)
	assert.InDelta(t, 0, cy, 1e-12)
}
