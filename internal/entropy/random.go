// Package entropy provides seeds for the pseudo-random sources threaded through
// synthesis. Seeds come from crypto/rand, falling back to the wall clock.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"
)

// now is swapped in tests.
var now = time.Now

// Seed returns a fresh non-zero seed. Zero is reserved to mean "pick one for me"
// throughout the codebase, so it is never returned.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		slog.Debug("crypto seed unavailable, using clock", "error", err)
		return clockSeed()
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		return clockSeed()
	}
	return seed
}

// Resolve returns seed unchanged unless it is zero, in which case a fresh seed is drawn.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return Seed()
}

func clockSeed() int64 {
	seed := now().UnixNano()
	if seed == 0 {
		seed = 1
	}
	return seed
}
