package main

import (
	"github.com/spf13/cobra"

	"printsize/printsize"
	"printsize/report"
	"printsize/types"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert pixel dimensions to print size at a DPI",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().Int("width-px", 0, "Width in pixels")
	cmd.Flags().Int("height-px", 0, "Height in pixels")
	cmd.Flags().Float64("dpi-x", types.DefaultDPI, "Horizontal resolution")
	cmd.Flags().Float64("dpi-y", types.DefaultDPI, "Vertical resolution (default: --dpi-x)")
	cmd.MarkFlagRequired("width-px")
	cmd.MarkFlagRequired("height-px")

	cmd.RunE = runE(func(cmd *cobra.Command, args []string) error {
		widthPx, _ := cmd.Flags().GetInt("width-px")
		heightPx, _ := cmd.Flags().GetInt("height-px")
		dpiX, _ := cmd.Flags().GetFloat64("dpi-x")
		dpiY, _ := cmd.Flags().GetFloat64("dpi-y")
		if !cmd.Flags().Changed("dpi-y") {
			dpiY = dpiX
		}

		ps, err := printsize.Convert(widthPx, heightPx, dpiX, dpiY)
		if err != nil {
			return err
		}
		report.PrintSize(cmd.OutOrStdout(), ps)
		return nil
	})
	return cmd
}
