package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"printsize/imageprocessor"
	"printsize/report"
	"printsize/utils"
)

func newResizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Resize an image to a print size and embed the DPI",
		Long: `Resize resamples the input to exactly width-in x height-in inches at the
given DPI using a Lanczos filter and writes it as JPEG or PNG with the DPI
stored in the file. The aspect ratio is not preserved.`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringP("input", "i", "", "Input image file")
	cmd.Flags().StringP("output", "o", "", "Output image file (.jpg or .png)")
	cmd.Flags().Float64("width-in", 0, "Target width in inches")
	cmd.Flags().Float64("height-in", 0, "Target height in inches")
	cmd.Flags().Float64("dpi", 0, "Target resolution")
	cmd.Flags().Int("quality", 0, "JPEG quality 1-100 (default: PRINTSIZE_JPEG_QUALITY or 95)")
	for _, name := range []string{"input", "output", "width-in", "height-in", "dpi"} {
		cmd.MarkFlagRequired(name)
	}

	cmd.RunE = runE(func(cmd *cobra.Command, args []string) error {
		inputPath, _ := cmd.Flags().GetString("input")
		outputPath, _ := cmd.Flags().GetString("output")
		widthIn, _ := cmd.Flags().GetFloat64("width-in")
		heightIn, _ := cmd.Flags().GetFloat64("height-in")
		dpi, _ := cmd.Flags().GetFloat64("dpi")
		jpegQuality := a.cfg.JPEGQuality
		if cmd.Flags().Changed("quality") {
			jpegQuality, _ = cmd.Flags().GetInt("quality")
			if jpegQuality < 1 || jpegQuality > 100 {
				return fmt.Errorf("%w: %d (must be 1-100)", imageprocessor.ErrInvalidQuality, jpegQuality)
			}
		}

		inputPath, err := utils.ExpandPath(inputPath)
		if err != nil {
			return err
		}
		outputPath, err = utils.ExpandPath(outputPath)
		if err != nil {
			return err
		}
		resampler, err := a.resampler()
		if err != nil {
			return err
		}

		res, err := imageprocessor.ResizeForPrint(imageprocessor.ResizeOptions{
			InputPath:  inputPath,
			OutputPath: outputPath,
			WidthIn:    widthIn,
			HeightIn:   heightIn,
			DPI:        dpi,
			Quality:    jpegQuality,
			Resampler:  resampler,
			Load:       a.loadOptions(),
		})
		if err != nil {
			return err
		}
		report.Resize(cmd.OutOrStdout(), res.Input, res.Output)
		return nil
	})
	return cmd
}
