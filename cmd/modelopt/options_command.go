package main

import (
	"github.com/spf13/cobra"

	"modelopt/internal/catalog"
)

func newOptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the optimization pass options accepted by mo-optimize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			passes := catalog.Optimizations()
			rows := make([][]string, 0, passes.Len())
			for _, name := range passes.Names() {
				opt, _ := passes.Lookup(name)
				rows = append(rows, []string{opt.Name, opt.Help})
			}
			printRows(cmd.OutOrStdout(), []string{"Option", "Description"}, rows, nil)
			return nil
		},
	}
}
