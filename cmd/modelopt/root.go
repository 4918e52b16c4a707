package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var settingsFlag string
	var configFlag string
	var sectionFlag string
	var verboseFlag bool

	ctx := newCommandContext(&settingsFlag, &configFlag, &sectionFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "modelopt",
		Short:         "Driver for the model-optimization toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Invoking the binary with just -C mirrors the classic
			// single-command usage; without it, show help.
			if configFlag == "" {
				return cmd.Help()
			}
			return runToolchain(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "Path to the modelopt settings file")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "C", "", "Run with the given configuration file")
	rootCmd.PersistentFlags().StringVarP(&sectionFlag, "section", "S", "", "Group section to run from the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "V", false, "Forward --verbose to every driver")
	_ = rootCmd.PersistentFlags().MarkHidden("section")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newDriversCommand(ctx))
	rootCmd.AddCommand(newOptionsCommand())
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
