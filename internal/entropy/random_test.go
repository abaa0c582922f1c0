package entropy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeedNonZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.NotZero(t, Seed())
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, int64(42), Resolve(42))
	assert.NotZero(t, Resolve(0))
}

func TestClockSeed(t *testing.T) {
	orig := now
	t.Cleanup(func() { now = orig })

	now = func() time.Time { return time.Unix(0, 0) }
	assert.Equal(t, int64(1), clockSeed())

	now = func() time.Time { return time.Unix(0, 12345) }
	assert.Equal(t, int64(12345), clockSeed())
}
