package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vchandela/btree/internal/stress"
	"github.com/vchandela/btree/internal/workload"
)

func newStressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Insert, verify, then delete and reinsert every key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := workload.ParseMode(a.cfg.Mode)
			if err != nil {
				return err
			}
			cfg := stress.Config{
				Degree:     a.cfg.Degree,
				MaxNodes:   a.cfg.MaxNodes,
				CheckEvery: a.cfg.CheckEvery,
				RandomOps:  a.cfg.RandomOps,
				Seed:       a.cfg.Seed,
			}

			var report stress.Report
			if mode == workload.Words {
				keys, err := workload.Strings(a.cfg.Keys)
				if err != nil {
					return err
				}
				report, err = stress.Run(cmd.Context(), cfg, keys, a.log)
				if err != nil {
					return fmt.Errorf("stress run: %w", err)
				}
			} else {
				keys, err := workload.Ints(mode, a.cfg.Keys, a.cfg.Seed)
				if err != nil {
					return err
				}
				report, err = stress.Run(cmd.Context(), cfg, keys, a.log)
				if err != nil {
					return fmt.Errorf("stress run: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"keys=%d ops=%d checks=%d height=%d max_height=%d nodes=%d took=%s\n",
				report.Keys, report.Ops, report.Checks, report.Height,
				report.MaxHeight, report.Nodes, report.Duration)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&a.cfg.Keys, "keys", a.cfg.Keys, "number of distinct keys")
	flags.IntVar(&a.cfg.CheckEvery, "check-every", a.cfg.CheckEvery, "full verification interval in operations, 0 for phase ends only")
	flags.IntVar(&a.cfg.RandomOps, "random-ops", a.cfg.RandomOps, "length of the mixed insert/delete phase")
	flags.StringVar(&a.cfg.Mode, "mode", a.cfg.Mode, "key order: sequential, reverse, shuffled or words")
	flags.Int64Var(&a.cfg.Seed, "seed", a.cfg.Seed, "seed for shuffled order and the mixed phase")
	return cmd
}
