package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var verboseFlag bool
	var debugFlag bool
	var configFlag string

	ctx := newCommandContext(&verboseFlag, &debugFlag, &configFlag)
	return newRootCommandWithContext(ctx)
}

func newRootCommandWithContext(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ds1054z",
		Short:         "Control a Rigol DS1054Z-family oscilloscope over the network",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			errOut := cmd.ErrOrStderr()
			if len(args) > 0 {
				fmt.Fprintf(errOut, "unknown action %q\n\n", args[0])
			}
			fmt.Fprint(errOut, cmd.UsageString())
			return errNoAction
		},
	}

	rootCmd.PersistentFlags().BoolVarP(ctx.verboseFlag, "verbose", "v", false, "Verbose output formatting")
	rootCmd.PersistentFlags().BoolVar(ctx.debugFlag, "debug", false, "Enable diagnostic logging")
	rootCmd.PersistentFlags().StringVarP(ctx.configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newDiscoverCommand(ctx))
	rootCmd.AddCommand(newCmdCommand(ctx))
	rootCmd.AddCommand(newSaveScreenCommand(ctx))
	rootCmd.AddCommand(newPropertiesCommand(ctx))
	for _, cmd := range newControlCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newShellCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
