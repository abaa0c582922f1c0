package render

import (
	"log/slog"
	"strings"

	"github.com/gogpu/gg"
)

// Theme is the user-facing colour scheme as hex strings.
type Theme struct {
	Background string `json:"background" yaml:"background"`
	Foreground string `json:"foreground" yaml:"foreground"`
	Accent     string `json:"accent" yaml:"accent"`
	Grid       string `json:"grid" yaml:"grid"`
}

// DefaultTheme is the green-on-black terminal scheme.
func DefaultTheme() Theme {
	return Theme{
		Background: "#000000",
		Foreground: "#00FF88",
		Accent:     "#005522",
		Grid:       "#003311",
	}
}

// Palette is a resolved Theme.
type Palette struct {
	Background gg.RGBA
	Foreground gg.RGBA
	Accent     gg.RGBA
	Grid       gg.RGBA
}

// Palette resolves the theme. A missing or malformed colour falls back to the
// default for that field alone.
func (t Theme) Palette() Palette {
	def := DefaultTheme()
	return Palette{
		Background: resolveColor("background", t.Background, def.Background),
		Foreground: resolveColor("foreground", t.Foreground, def.Foreground),
		Accent:     resolveColor("accent", t.Accent, def.Accent),
		Grid:       resolveColor("grid", t.Grid, def.Grid),
	}
}

// DefaultPalette returns the resolved default theme.
func DefaultPalette() Palette {
	return DefaultTheme().Palette()
}

func resolveColor(field, value, fallback string) gg.RGBA {
	if value == "" {
		return gg.Hex(fallback)
	}
	if !ValidHex(value) {
		slog.Warn("invalid theme colour, using default", "field", field, "value", value, "default", fallback)
		return gg.Hex(fallback)
	}
	return gg.Hex(value)
}

// ValidHex reports whether s is a #RGB, #RGBA, #RRGGBB or #RRGGBBAA colour.
// The leading '#' is optional.
func ValidHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isHex := ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}
