package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vchandela/btree/btree"
	"github.com/vchandela/btree/internal/config"
	"github.com/vchandela/btree/internal/logging"
)

// app carries what every subcommand shares once flags are parsed.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.LoadFromEnv(config.EnvPrefix), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:          "btree",
		Short:        "In-memory B-tree playground and stress driver",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			log, closeLog, err := logging.New(logging.Options{
				Level:  a.cfg.LogLevel,
				Format: a.cfg.LogFormat,
				File:   a.cfg.LogFile,
				Out:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a.log, a.closeLog = log, closeLog
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&a.cfg.Degree, "degree", a.cfg.Degree, "minimum degree M; nodes hold M-1..2M-1 keys")
	flags.IntVar(&a.cfg.MaxNodes, "max-nodes", a.cfg.MaxNodes, "cap on live nodes, 0 for unlimited")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "trace, debug, info, warn or error")
	flags.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "console or json")
	flags.StringVar(&a.cfg.LogFile, "log-file", a.cfg.LogFile, "also write rotated JSON logs to this file")

	root.AddCommand(newReplCmd(a), newStressCmd(a), newVersionCmd())
	return root
}

func (a *app) treeOptions() []btree.Option {
	opts := []btree.Option{
		btree.WithDegree(a.cfg.Degree),
		btree.WithLogger(a.log),
	}
	if a.cfg.MaxNodes > 0 {
		opts = append(opts, btree.WithMaxNodes(a.cfg.MaxNodes))
	}
	return opts
}
