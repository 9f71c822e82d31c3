package main

import (
	"github.com/hupe1980/vecrank"
	"github.com/hupe1980/vecrank/dataset"
	"github.com/hupe1980/vecrank/internal/config"
	"github.com/spf13/cobra"
)

func newTemporalCmd() *cobra.Command {
	var (
		flags       commonFlags
		decayLambda float64
	)

	cmd := &cobra.Command{
		Use:   "temporal",
		Short: "Rank items over an interaction graph with time decay",
		Long: `Rank items over an explicit interaction graph with time decay.

Nodes without hours_since_interaction are treated as last seen 24 hours ago.

Examples:
  vecrank temporal -i events.yaml
  vecrank temporal -i events.json.lz4 --decay-lambda 0.05 --top 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("decay-lambda") {
				cfg.DecayLambda = decayLambda
			}

			r, err := newRun(cmd, cfg)
			if err != nil {
				return err
			}

			data, err := dataset.LoadTemporal(flags.inputPath)
			if err != nil {
				return err
			}

			values, err := vecrank.RankTemporal(data.Input(cfg.Damping, cfg.DecayLambda, cfg.Iterations), r.options()...)
			if err != nil {
				return err
			}

			return r.write(cmd, &flags, vecrank.NewResult(data.IDs, values))
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&decayLambda, "decay-lambda", config.DefaultDecayLambda, "Exponential decay per hour since last interaction")

	return cmd
}
