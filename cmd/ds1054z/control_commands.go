package main

import (
	"github.com/spf13/cobra"

	"ds1054z/internal/dso"
)

// newControlCommands builds the four zero-argument acquisition controls.
func newControlCommands(ctx *commandContext) []*cobra.Command {
	controls := []struct {
		use   string
		short string
		call  func(*dso.Device) error
	}{
		{"run", "Start continuous acquisition", (*dso.Device).Run},
		{"stop", "Stop acquisition", (*dso.Device).Stop},
		{"single", "Arm a single-shot acquisition", (*dso.Device).Single},
		{"tforce", "Force a trigger event", (*dso.Device).TForce},
	}

	commands := make([]*cobra.Command, 0, len(controls))
	for _, control := range controls {
		call := control.call
		commands = append(commands, &cobra.Command{
			Use:   control.use + " [device]",
			Short: control.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withDevice(cmd, optionalDevice(args), call)
			},
		})
	}
	return commands
}
