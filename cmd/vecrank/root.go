package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/vecrank"
	"github.com/hupe1980/vecrank/codec"
	"github.com/hupe1980/vecrank/internal/config"
	"github.com/hupe1980/vecrank/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// commonFlags are shared by every ranking subcommand.
type commonFlags struct {
	configPath  string
	inputPath   string
	outputPath  string
	metricsPath string
	top         int
	damping     float64
	iterations  int
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&f.inputPath, "input", "i", "", "Dataset file (.json, .yaml, optionally .zst or .lz4)")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Write ranks to this file instead of stdout")
	cmd.Flags().StringVar(&f.metricsPath, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	cmd.Flags().IntVarP(&f.top, "top", "n", 0, "Only output the n best ranked items (0 for all)")
	cmd.Flags().Float64Var(&f.damping, "damping", config.DefaultDamping, "Damping factor within [0, 1]")
	cmd.Flags().IntVar(&f.iterations, "iterations", config.DefaultIterations, "Number of propagation rounds")
	_ = cmd.MarkFlagRequired("input")
}

// load resolves the configuration and applies flags the user set explicitly.
func (f *commonFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, errs := config.Load(f.configPath)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	if cmd.Flags().Changed("damping") {
		cfg.Damping = f.damping
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = f.iterations
	}

	return cfg, nil
}

// run holds the per-invocation collaborators.
type run struct {
	cfg       *config.Config
	logger    *vecrank.Logger
	collector *prometheus.Collector
	registry  *prom.Registry
}

func newRun(cmd *cobra.Command, cfg *config.Config) (*run, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	level, _ := cfg.SlogLevel()
	r := &run{
		cfg: cfg,
		logger: vecrank.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		})),
		collector: prometheus.NewCollector(),
		registry:  prom.NewRegistry(),
	}

	if err := r.collector.Register(r.registry); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *run) options() []vecrank.Option {
	opts := []vecrank.Option{
		vecrank.WithLogger(r.logger),
		vecrank.WithMetricsCollector(r.collector),
		vecrank.WithWorkers(r.cfg.Workers),
		vecrank.WithEFSearch(r.cfg.EFSearch),
		vecrank.WithOverQuery(r.cfg.OverQuery),
		vecrank.WithZeroMassPolicy(r.cfg.ZeroMassPolicy()),
	}
	if r.cfg.Seed != 0 {
		opts = append(opts, vecrank.WithRandomSeed(r.cfg.Seed))
	}
	return opts
}

// rankRecord is one line of the ranking output.
type rankRecord struct {
	ID   string  `json:"id" yaml:"id"`
	Rank float64 `json:"rank" yaml:"rank"`
}

func (r *run) write(cmd *cobra.Command, f *commonFlags, result *vecrank.Result[string]) error {
	top := result.Top(f.top)
	records := make([]rankRecord, len(top))
	for i, s := range top {
		records[i] = rankRecord{ID: s.ID, Rank: s.Rank}
	}

	if err := writeRecords(cmd.OutOrStdout(), f.outputPath, records); err != nil {
		return err
	}

	if f.metricsPath != "" {
		if err := prom.WriteToTextfile(f.metricsPath, r.registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func writeRecords(stdout io.Writer, path string, records []rankRecord) error {
	if path == "" {
		data, err := codec.GoJSON{Indent: "  "}.Marshal(records)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	c, err := codec.ForPath(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vecrank",
		Short: "vecrank - similarity and time-decay ranking",
		Long: `vecrank ranks items with a damped random walk.

The similarity command walks the approximate nearest-neighbour graph of the
item embeddings, weighted by popularity and observed transitions. The
temporal command walks an explicit interaction graph where each source's
influence decays with the hours since its last interaction.

Configuration is read from --config and VECRANK_* environment variables.`,
		SilenceUsage: true,
	}

	root.AddCommand(newSimilarityCmd(), newTemporalCmd())
	return root
}
