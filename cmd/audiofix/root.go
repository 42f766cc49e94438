package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)
	repairOpts := &repairFlags{}

	rootCmd := &cobra.Command{
		Use:           "audiofix",
		Short:         "Relink dialogue catalog entries to voice-over files",
		Long:          repairLongHelp,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, ctx, *repairOpts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.root, "root", "", "Repository root (default: search upward from the working directory)")
	pf.StringVar(&flags.catalog, "catalog", "", "Dialogue catalog path (overrides config)")
	pf.StringVar(&flags.voices, "voices", "", "Voices directory (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	repairOpts.bind(rootCmd)

	rootCmd.AddCommand(newRepairCommand(ctx))
	rootCmd.AddCommand(newInventoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
