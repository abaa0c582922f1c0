package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ghost-cookies/internal/render"
	"github.com/talgya/ghost-cookies/internal/shop"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ghost.yaml", `
theme:
  foreground: "#FF0000"
shop:
  archetype: mandelbrot
  periods: 20
view:
  fps: 30
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.Theme.Foreground)
	assert.Equal(t, render.DefaultTheme().Background, cfg.Theme.Background)
	assert.Equal(t, shop.ArchFractal, cfg.Shop.Archetype)
	assert.Equal(t, 20, cfg.Shop.Periods)
	assert.Equal(t, 3, cfg.Shop.Depth, "unset fields keep defaults")
	assert.Equal(t, 30, cfg.View.FPS)
	assert.Equal(t, 1280, cfg.View.Width)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadAcceptsJSONThemeFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{
  "theme": {
    "background": "#101010",
    "foreground": "#00FF88",
    "accent": "#005522",
    "grid": "#003311"
  }
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, gg.Hex("#101010"), cfg.Palette().Background)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeFile(t, dir, "bad.yaml", "theme: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("unknown archetype", func(t *testing.T) {
		_, err := Load(writeFile(t, dir, "arch.yaml", "shop:\n  archetype: chaotic\n"))
		assert.ErrorIs(t, err, shop.ErrInvalidArchetype)
	})
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "{{{{")
	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOrDefaultRejectsUnknownArchetype(t *testing.T) {
	path := writeFile(t, t.TempDir(), "arch.yaml", `
theme:
  foreground: "#FF0000"
shop:
  archetype: bogus
  periods: 10
`)
	cfg, err := LoadOrDefault(path)
	assert.ErrorIs(t, err, shop.ErrInvalidArchetype)
	assert.Nil(t, cfg, "an invalid archetype must not fall back to the defaults")
}

func TestLoadNormalizesUnusableValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "zero.yaml", "view:\n  width: 0\n  fps: -5\nserver:\n  addr: \"\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().View, cfg.View)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvAddr, "127.0.0.1:9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range cases {
		cfg := Default()
		cfg.Logging.Level = name
		assert.Equal(t, want, cfg.LogLevel(), name)
	}
}

func TestWatchThemeReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "theme.yaml", "theme:\n  background: \"#000000\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	palettes := make(chan render.Palette, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- WatchTheme(ctx, path, func(p render.Palette) {
			select {
			case palettes <- p:
			default:
			}
		})
	}()

	// Keep rewriting until a reload lands; the watcher may not be registered yet.
	want := gg.Hex("#112233")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()

	for got := false; !got; {
		select {
		case p := <-palettes:
			if p.Background == want {
				got = true
			}
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("theme:\n  background: \"#112233\"\n"), 0o644))
		case <-deadline:
			t.Fatal("theme was not reloaded")
		}
	}

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchThemeMissingDirectory(t *testing.T) {
	err := WatchTheme(context.Background(), filepath.Join(t.TempDir(), "nope", "theme.yaml"), func(render.Palette) {})
	assert.Error(t, err)
}
