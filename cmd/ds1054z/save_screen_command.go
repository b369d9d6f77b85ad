package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ds1054z/internal/dso"
	"ds1054z/internal/screenshot"
)

func newSaveScreenCommand(ctx *commandContext) *cobra.Command {
	var filenameFlag string
	var overlayFlag float64

	cmd := &cobra.Command{
		Use:   "save-screen [device]",
		Short: "Save a screenshot of the scope display",
		Long: `Capture the scope display and save it as a PNG with a dimming overlay.

The filename template may contain {ts}, replaced with a local timestamp
formatted ` + screenshot.TimestampLayout + `. The overlay ratio is clamped to [0, 1].`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			template := filenameFlag
			if template == "" {
				template = cfg.Screenshot.Filename
			}
			ratio := cfg.Screenshot.OverlayRatio
			if cmd.Flags().Changed("overlay") {
				ratio = overlayFlag
			}

			return ctx.withDevice(cmd, optionalDevice(args), func(scope *dso.Device) error {
				data, err := scope.DisplayData()
				if err != nil {
					return err
				}
				composed, err := screenshot.Compose(data, ratio)
				if err != nil {
					return err
				}
				path, err := screenshot.Save(composed, template, time.Now())
				if err != nil {
					return err
				}
				if ctx.verbose() {
					fmt.Fprintf(cmd.OutOrStdout(), "Saved screenshot to %s\n", path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filenameFlag, "filename", "", "Filename template for the screenshot ({ts} placeholder)")
	cmd.Flags().Float64Var(&overlayFlag, "overlay", 0.5, "Dimming overlay ratio, clamped to [0, 1]")
	return cmd
}
