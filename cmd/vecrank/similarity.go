package main

import (
	"github.com/hupe1980/vecrank"
	"github.com/hupe1980/vecrank/dataset"
	"github.com/hupe1980/vecrank/internal/config"
	"github.com/spf13/cobra"
)

func newSimilarityCmd() *cobra.Command {
	var (
		flags     commonFlags
		neighbors int
	)

	cmd := &cobra.Command{
		Use:   "similarity",
		Short: "Rank items over their nearest-neighbour graph",
		Long: `Rank items over their approximate nearest-neighbour graph.

Examples:
  vecrank similarity -i items.json
  vecrank similarity -i items.json.zst --neighbors 5 --top 10
  VECRANK_SEED=42 vecrank similarity -i items.yaml -o ranks.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("neighbors") {
				cfg.Neighbors = neighbors
			}

			r, err := newRun(cmd, cfg)
			if err != nil {
				return err
			}

			data, err := dataset.LoadSimilarity(flags.inputPath)
			if err != nil {
				return err
			}

			result, err := vecrank.RankSimilarity(data.Input(cfg.Neighbors, cfg.Damping, cfg.Iterations), r.options()...)
			if err != nil {
				return err
			}

			return r.write(cmd, &flags, result)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&neighbors, "neighbors", "m", config.DefaultNeighbors, "Nearest neighbours per item")

	return cmd
}
