package main

import (
	"github.com/spf13/cobra"

	"printsize/imageprocessor"
	"printsize/report"
	"printsize/types"
	"printsize/utils"
)

func newInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info PATH...",
		Short: "Print the physical print size of images from their DPI metadata",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = runE(func(cmd *cobra.Command, args []string) error {
		paths, err := utils.ExpandPaths(args)
		if err != nil {
			return err
		}

		metrics := make([]types.ImageMetrics, 0, len(paths))
		for _, path := range paths {
			m, err := imageprocessor.AnalyzeImage(path, a.loadOptions())
			if err != nil {
				return err
			}
			metrics = append(metrics, m)
		}
		report.ImageSizes(cmd.OutOrStdout(), metrics)
		return nil
	})
	return cmd
}
