package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ds1054z/internal/dso"
)

func newPropertiesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "properties <name,name,...> [device]",
		Short: "Print instrument properties",
		Long: `Print the requested instrument properties, one per line, in the order
given. With --verbose each line is prefixed with the property name.

Known properties: ` + strings.Join(dso.PropertyNames(), ", ") + `.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := splitPropertyList(args[0])
			if len(names) == 0 {
				return fmt.Errorf("no property names given")
			}
			device := ""
			if len(args) == 2 {
				device = args[1]
			}
			return ctx.withDevice(cmd, device, func(scope *dso.Device) error {
				out := cmd.OutOrStdout()
				for _, name := range names {
					values, err := scope.Property(name)
					if err != nil {
						return err
					}
					joined := strings.Join(values, " ")
					if ctx.verbose() {
						fmt.Fprintf(out, "%s: %s\n", name, joined)
					} else {
						fmt.Fprintln(out, joined)
					}
				}
				return nil
			})
		},
	}
}

func splitPropertyList(list string) []string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
