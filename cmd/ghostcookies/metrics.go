package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/ghost-cookies/internal/engine"
	"github.com/talgya/ghost-cookies/internal/metrics"
)

var metricsJSON bool

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Generate a shop and print its metrics and narrative",
	RunE:  runMetrics,
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "print JSON instead of a table")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := engine.NewSession(cfg.Shop, seed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if metricsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			ID        string          `json:"generation"`
			Seed      int64           `json:"seed"`
			Metrics   metrics.Metrics `json:"metrics"`
			Narrative string          `json:"narrative"`
		}{sess.Generation().ID.String(), sess.Seed(), sess.Metrics(), sess.Narrative()})
	}
	return printMetrics(out, sess)
}

func printMetrics(out io.Writer, sess *engine.Session) error {
	m := sess.Metrics()
	gen := sess.Generation()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "generation\t%s\n", gen.ID)
	fmt.Fprintf(tw, "archetype\t%s\n", gen.Config.Archetype)
	fmt.Fprintf(tw, "seed\t%d\n", sess.Seed())
	fmt.Fprintf(tw, "operations\t%s\n", humanize.Comma(int64(m.Operations)))
	if m.NoData {
		fmt.Fprintf(tw, "metrics\tno data\n")
	} else {
		fmt.Fprintf(tw, "efficiency\t%.1f%%\n", m.MeanEfficiency*100)
		fmt.Fprintf(tw, "cost density\t%.3f\n", m.MeanCost)
		fmt.Fprintf(tw, "blanket height\t%.3f\n", m.MaxStackedCost)
		fmt.Fprintf(tw, "fractal dimension\t%.2f (%s samples)\n", m.FractalDimension, humanize.Comma(int64(len(gen.Samples))))
		fmt.Fprintf(tw, "fraud probability\t%.1f%% (%s)\n", m.FraudProbability*100, m.FraudLevel)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%s\n", sess.Narrative())
	return err
}
