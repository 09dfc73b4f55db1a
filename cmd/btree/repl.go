package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/vchandela/btree/btree"
	"github.com/vchandela/btree/internal/repl"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell over an int64 tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := btree.New[int64](a.treeOptions()...)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			demo := repl.NewCli(scanner, cmd.OutOrStdout(), tree, a.log)
			demo.Start()
			return nil
		},
	}
}
