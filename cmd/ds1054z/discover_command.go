package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List oscilloscopes found on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := ctx.discoveryBrowse(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, record := range records {
				fmt.Fprintf(out, "Found a %s with the IP Address %s.\n", record.Model, record.IP)
			}
			return nil
		},
	}
}
