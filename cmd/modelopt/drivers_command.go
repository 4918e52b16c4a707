package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"modelopt/internal/drivers"
)

func newDriversCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List import drivers discovered in the toolchain directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Paths.ToolchainDir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no toolchain directory configured; drivers resolve through PATH")
				return nil
			}

			result, err := drivers.NewScanner(cfg.Paths.ToolchainDir).Scan(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(result.Drivers))
			for _, d := range result.Drivers {
				rows = append(rows, []string{d.Section, d.Name})
			}
			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no import drivers found in %s\n", cfg.Paths.ToolchainDir)
			} else {
				printRows(cmd.OutOrStdout(), []string{"Section", "Driver"}, rows, nil)
			}

			for _, skip := range result.Skips {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s: %s\n", skip.Name, skip.Reason)
			}
			return nil
		},
	}
}
