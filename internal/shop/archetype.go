// Package shop provides the shop configuration, the three behavioural archetypes,
// and the operation synthesizer that turns a configuration into a time-ordered
// sequence of synthetic operations.
package shop

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is returned for configurations that cannot drive a generation cycle.
	ErrInvalidConfig = errors.New("invalid shop config")

	// ErrInvalidArchetype is returned for an unrecognized archetype tag.
	ErrInvalidArchetype = fmt.Errorf("%w: unknown archetype", ErrInvalidConfig)
)

// Archetype is the behavioural profile governing operation synthesis.
type Archetype uint8

const (
	ArchEfficient   Archetype = iota // low cost, high efficiency
	ArchInefficient                  // high cost, low efficiency
	ArchFractal                      // escape-time driven, hidden second-order gain

	archetypeCount
)

// archetypeNames maps each archetype to its canonical tag.
var archetypeNames = [archetypeCount]string{
	ArchEfficient:   "efficient",
	ArchInefficient: "inefficient",
	ArchFractal:     "fractal",
}

// archetypeAliases holds alternative tags accepted by ParseArchetype.
var archetypeAliases = map[string]Archetype{
	"mandelbrot": ArchFractal,
}

// Archetypes returns every archetype in declaration order.
func Archetypes() []Archetype {
	return []Archetype{ArchEfficient, ArchInefficient, ArchFractal}
}

// ParseArchetype resolves a tag (case-insensitive) to an Archetype.
func ParseArchetype(tag string) (Archetype, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for a, name := range archetypeNames {
		if name == tag {
			return Archetype(a), nil
		}
	}
	if a, ok := archetypeAliases[tag]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidArchetype, tag)
}

// Valid reports whether a is one of the declared archetypes.
func (a Archetype) Valid() bool {
	return a < archetypeCount
}

func (a Archetype) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Archetype(%d)", uint8(a))
	}
	return archetypeNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidArchetype, uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
