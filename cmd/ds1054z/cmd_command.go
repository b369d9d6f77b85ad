package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ds1054z/internal/dso"
)

func newCmdCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cmd <scpi-command> [device]",
		Short: "Send an SCPI command (response printed when it is a query)",
		Long: `Send a single SCPI command to the scope.

Commands containing the query marker '?' are sent through the query path and
their response is printed; anything else is a plain write with no output.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(args[0])
			device := ""
			if len(args) == 2 {
				device = args[1]
			}
			return ctx.withDevice(cmd, device, func(scope *dso.Device) error {
				if !strings.Contains(text, "?") {
					return scope.Write(text)
				}
				response, err := scope.Query(text)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), response)
				return nil
			})
		},
	}
}
