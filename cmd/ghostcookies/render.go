package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/ghost-cookies/internal/engine"
	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/render"
)

var (
	renderFrames int
	renderOut    string
	renderPaused bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write animation frames as PNG files",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&renderFrames, "frames", "n", 1, "number of frames to write")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "frames", "output directory")
	renderCmd.Flags().BoolVar(&renderPaused, "paused", false, "hold time still between frames")
}

// stepScheduler holds the pending frame until the caller steps it.
type stepScheduler struct {
	pending func()
}

func (s *stepScheduler) Schedule(frame func()) { s.pending = frame }
func (s *stepScheduler) Cancel() { s.pending = nil }

func (s *stepScheduler) step() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if renderFrames < 1 {
		return fmt.Errorf("--frames must be at least 1")
	}
	if err := os.MkdirAll(renderOut, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	sess, err := engine.NewSession(cfg.Shop, seed)
	if err != nil {
		return err
	}

	canvas, err := render.NewCanvas(cfg.View.Width, cfg.View.Height)
	if err != nil {
		return err
	}
	defer canvas.Close()

	out := &frameWriter{
		renderer: render.NewRenderer(cfg.Palette(), sess.Seed()),
		canvas:   canvas,
		dir:      renderOut,
	}
	sched := &stepScheduler{}
	driver := engine.NewDriver(sess, sched, out)
	if renderPaused {
		driver.Toggle()
	}

	driver.Start()
	for out.written < renderFrames && out.err == nil {
		if !sched.step() {
			// Paused: time stands still, so every further frame is identical.
			driver.RequestRender()
		}
	}
	if out.err != nil {
		return out.err
	}

	slog.Info("frames written",
		"dir", renderOut,
		"frames", out.written,
		"size", humanize.Bytes(out.bytes),
		"archetype", sess.Config().Archetype,
		"seed", sess.Seed(),
	)
	return nil
}

// frameWriter renders each presented frame and saves it as a numbered PNG.
type frameWriter struct {
	renderer *render.Renderer
	canvas   *render.Canvas
	dir      string

	written int
	bytes   uint64
	err     error
}

func (w *frameWriter) Present(sc *render.Scene, view projection.ViewState) {
	if w.err != nil {
		return
	}
	w.renderer.Render(w.canvas, sc, view)
	if err := w.canvas.Err(); err != nil {
		w.err = fmt.Errorf("render frame %d: %w", w.written, err)
		return
	}

	path := filepath.Join(w.dir, fmt.Sprintf("frame-%04d.png", w.written))
	if err := w.canvas.SavePNG(path); err != nil {
		w.err = fmt.Errorf("save %s: %w", path, err)
		return
	}
	if info, err := os.Stat(path); err == nil {
		w.bytes += uint64(info.Size())
	}
	w.written++
	slog.Debug("frame written", "path", path, "time", view.Time)
}

var _ engine.Presenter = (*frameWriter)(nil)
