package main

import (
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ds1054z/internal/dso"
	"ds1054z/internal/shell"
)

func newShellCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [device]",
		Short: "Enter an interactive SCPI shell",
		Long: `Open an interactive SCPI session. Lines containing '?' are queries whose
response is printed; other lines are plain writes. Type quit or exit (or
press Ctrl-C / Ctrl-D) to leave.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDevice(cmd, optionalDevice(args), func(scope *dso.Device) error {
				shellCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()

				opts := shell.Options{}
				if file, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(file.Fd()) {
					opts.Prompt = "DS1054Z> "
				}
				return shell.Run(shellCtx, scope, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			})
		},
	}
}
