// Command ghostcookies generates synthetic shop operation data, analyzes it
// for hidden inefficiency and renders it as an animated 3D scene.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/talgya/ghost-cookies/internal/config"
	"github.com/talgya/ghost-cookies/internal/shop"
)

var (
	// Global flags
	configPath string
	archetype  string
	periods    int
	resources  float64
	depth      int
	seed       int64
	verbose    bool

	logLevel = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   "ghostcookies",
	Short: "Ghost Cookies - shop inefficiency and fraud visualization",
	Long: `Ghost Cookies synthesizes operation sequences for three shop archetypes
(efficient, inefficient, fractal), stacks dependency costs across a sliding
window, scores fraud risk and renders the result as a navigable 3D scene.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
		if verbose {
			logLevel.Set(slog.LevelDebug)
			gg.SetLogger(logger)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML or JSON config file")
	pf.StringVarP(&archetype, "archetype", "a", "", "shop archetype: efficient, inefficient, fractal (alias mandelbrot)")
	pf.IntVarP(&periods, "periods", "p", 0, "number of operations")
	pf.Float64VarP(&resources, "resources", "r", 0, "resource base")
	pf.IntVarP(&depth, "depth", "d", 0, "dependency depth")
	pf.Int64Var(&seed, "seed", 0, "generation seed (0 draws a fresh one)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(metricsCmd)
}

func main() {
	if err := gg.RegisterAccelerator(&gg.SDFAccelerator{}); err != nil {
		slog.Warn("sdf accelerator unavailable", "error", err)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if !verbose {
		logLevel.Set(cfg.LogLevel())
	}

	flags := cmd.Flags()
	if flags.Changed("archetype") {
		a, err := shop.ParseArchetype(archetype)
		if err != nil {
			return nil, err
		}
		cfg.Shop.Archetype = a
	}
	if flags.Changed("periods") {
		cfg.Shop.Periods = periods
	}
	if flags.Changed("resources") {
		cfg.Shop.Resources = resources
	}
	if flags.Changed("depth") {
		cfg.Shop.Depth = depth
	}
	if err := cfg.Shop.Validate(); err != nil {
		return nil, fmt.Errorf("shop config: %w", err)
	}
	return cfg, nil
}
