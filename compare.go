package main

import (
	"github.com/spf13/cobra"

	"printsize/imageprocessor"
	"printsize/logging"
	"printsize/quality"
	"printsize/report"
	"printsize/utils"
)

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare an original image against a resized version",
		Long: `Compare prints the metrics of both images, the PSNR between them and a
print quality assessment. A candidate of a different size is resampled to the
original's dimensions before the PSNR is computed.`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().String("original", "", "Original image file")
	cmd.Flags().String("candidate", "", "Resized image file")
	cmd.MarkFlagRequired("original")
	cmd.MarkFlagRequired("candidate")

	cmd.RunE = runE(func(cmd *cobra.Command, args []string) error {
		originalPath, _ := cmd.Flags().GetString("original")
		candidatePath, _ := cmd.Flags().GetString("candidate")

		paths, err := utils.ExpandPaths([]string{originalPath, candidatePath})
		if err != nil {
			return err
		}
		resampler, err := a.resampler()
		if err != nil {
			return err
		}

		original, err := imageprocessor.LoadImage(paths[0], a.loadOptions())
		if err != nil {
			return err
		}
		candidate, err := imageprocessor.LoadImage(paths[1], a.loadOptions())
		if err != nil {
			return err
		}

		logging.LogInfo("Comparing %s (%dx%d) against %s (%dx%d)",
			paths[0], original.Metrics.Width, original.Metrics.Height,
			paths[1], candidate.Metrics.Width, candidate.Metrics.Height)

		res, err := quality.Compare(original.Image, candidate.Image, resampler)
		if err != nil {
			return err
		}
		report.Quality(cmd.OutOrStdout(), quality.Report(original.Metrics, candidate.Metrics, res))
		return nil
	})
	return cmd
}
