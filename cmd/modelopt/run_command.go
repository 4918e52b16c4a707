package main

import (
	"errors"

	"github.com/spf13/cobra"

	"modelopt/internal/history"
	"modelopt/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the toolchain described by a run configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolchain(cmd, ctx)
		},
	}
}

func runToolchain(cmd *cobra.Command, ctx *commandContext) error {
	if *ctx.configFlag == "" {
		return errors.New("run configuration required: pass -C/--config")
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	manager, err := workflow.NewManager(cfg, logger, workflow.WithHistory(store))
	if err != nil {
		return err
	}
	return manager.Run(cmd.Context(), workflow.RunRequest{
		ConfigPath: *ctx.configFlag,
		Section:    *ctx.sectionFlag,
		Verbose:    *ctx.verboseFlag,
	})
}
