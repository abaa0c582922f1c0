package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/talgya/ghost-cookies/internal/api"
	"github.com/talgya/ghost-cookies/internal/config"
	"github.com/talgya/ghost-cookies/internal/engine"
	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/render"
)

// heartbeatFrames is how often the serve loop logs its frame count.
const heartbeatFrames = 3600

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the animated session behind the HTTP control API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := engine.NewSession(cfg.Shop, seed)
	if err != nil {
		return err
	}
	slog.Info("GHOST COOKIES session ready",
		"seed", sess.Seed(),
		"archetype", sess.Config().Archetype,
		"samples", humanize.Comma(int64(len(sess.Generation().Samples))),
	)

	loop := engine.NewLoop(cfg.View.FPS)
	var frames uint64
	heartbeat := engine.PresenterFunc(func(sc *render.Scene, view projection.ViewState) {
		frames++
		if frames%heartbeatFrames == 0 {
			slog.Debug("frame heartbeat", "frames", humanize.Comma(int64(frames)), "time", view.Time)
		}
	})
	driver := engine.NewDriver(sess, loop, heartbeat)
	driver.Start()

	renderer := render.NewRenderer(cfg.Palette(), sess.Seed())
	srv := api.New(loop, driver, renderer, api.Options{
		Addr:            cfg.Server.Addr,
		Width:           cfg.View.Width,
		Height:          cfg.View.Height,
		FramesPerMinute: cfg.Server.FramesPerMinute,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	if configPath != "" {
		g.Go(func() error {
			watchTheme(gctx, srv)
			return nil
		})
	}
	return g.Wait()
}

// watchTheme pushes theme reloads into the server. A watcher that cannot
// start is logged and otherwise ignored.
func watchTheme(ctx context.Context, srv *api.Server) {
	err := config.WatchTheme(ctx, configPath, func(p render.Palette) {
		if err := srv.SetPalette(ctx, p); err != nil {
			slog.Warn("theme not applied", "error", err)
		}
	})
	if err != nil {
		slog.Warn("theme watcher disabled", "path", configPath, "error", err)
	}
}
