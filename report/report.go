// Package report renders results as the human-readable console text the CLI prints.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"printsize/types"
)

const separator = "=================================================="

// PrintSize writes a converted print size
func PrintSize(w io.Writer, ps types.PrintSize) {
	fmt.Fprintf(w, "Dimensions: %.2f\" × %.2f\"\n", ps.WidthIn, ps.HeightIn)
	fmt.Fprintf(w, "Resolution: %.0f × %.0f DPI\n", ps.DPIX, ps.DPIY)
	fmt.Fprintf(w, "Pixel dimensions: %d × %d pixels\n", ps.WidthPx, ps.HeightPx)
}

// ImageSize writes the print size of one image under a title
func ImageSize(w io.Writer, title string, m types.ImageMetrics) {
	fmt.Fprintf(w, "%s:\n", title)
	switch {
	case m.DPIPartlyAssumed():
		axis := "horizontal"
		if m.DPIYAssumed {
			axis = "vertical"
		}
		fmt.Fprintf(w, "Note: %s DPI information not usable in image, assuming %.0f DPI\n", axis, types.DefaultDPI)
	case m.DPIAssumed():
		fmt.Fprintf(w, "Note: DPI information not found in image, assuming %.0f DPI\n", types.DefaultDPI)
	}
	PrintSize(w, m.PrintSize())
}

// ImageSizes writes several images separated by a rule
func ImageSizes(w io.Writer, metrics []types.ImageMetrics) {
	for i, m := range metrics {
		if i > 0 {
			fmt.Fprintf(w, "\n%s\n\n", separator)
		}
		ImageSize(w, m.Path, m)
	}
}

// Resize writes where the resized image came from and went to
func Resize(w io.Writer, input, output types.ImageMetrics) {
	fmt.Fprintf(w, "Original image loaded from: %s\n", input.Path)
	fmt.Fprintf(w, "Resized image saved as: %s\n", output.Path)
	fmt.Fprintf(w, "Pixel dimensions: %d × %d -> %d × %d pixels\n", input.Width, input.Height, output.Width, output.Height)
	ps := output.PrintSize()
	fmt.Fprintf(w, "Print size: %.2f\" × %.2f\" at %.0f DPI\n", ps.WidthIn, ps.HeightIn, output.DPIX)
}

// Metrics writes the analysis block of one image
func Metrics(w io.Writer, title string, m types.ImageMetrics) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	fmt.Fprintf(w, "Dimensions: %d × %d pixels\n", m.Width, m.Height)
	fmt.Fprintf(w, "Resolution: %.0f × %.0f DPI\n", m.DPIX, m.DPIY)
	fmt.Fprintf(w, "Effective PPI: %.1f\n", m.EffectivePPI())
	fmt.Fprintf(w, "File Size: %.1f KB (%s)\n", m.FileSizeKB, humanize.IBytes(uint64(math.Round(m.FileSizeKB*1024))))
	fmt.Fprintf(w, "Color Depth: %d bits per pixel\n", m.BitsPerPixel)
	fmt.Fprintf(w, "Total Pixels: %s\n", humanize.Comma(int64(m.TotalPixels())))
	fmt.Fprintf(w, "Color Mode: %s\n", m.ColorMode)
}

// FormatPSNR renders a PSNR value; +Inf means the images are identical
func FormatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf dB (identical)"
	}
	return fmt.Sprintf("%.2f dB", psnr)
}

// Quality writes the full comparison report
func Quality(w io.Writer, r types.QualityReport) {
	Metrics(w, "Original Image Analysis", r.Original)
	fmt.Fprintln(w)
	Metrics(w, "Resized Image Analysis", r.Comparison)

	fmt.Fprintf(w, "\n=== Quality Comparison ===\n")
	fmt.Fprintf(w, "PSNR (Peak Signal-to-Noise Ratio): %s\n", FormatPSNR(r.PSNR))
	if r.Resampled {
		fmt.Fprintf(w, "Note: resized image was resampled to %d × %d before comparison\n", r.Original.Width, r.Original.Height)
	}

	a := r.Assessment
	fmt.Fprintf(w, "\n=== Quality Assessment ===\n")
	fmt.Fprintf(w, "Resolution Quality: %s\n", check(a.HigherResolution,
		"Resized image has higher resolution",
		"Original image has higher resolution"))
	fmt.Fprintf(w, "Print Quality: %s\n", check(a.BetterPrintDPI,
		"Resized image has better print quality (higher DPI)",
		"Original image has better print quality"))
	fmt.Fprintf(w, "Storage Efficiency: %s\n", check(a.BetterStorageEfficiency,
		"Resized image has better storage efficiency",
		"Original image has better storage efficiency"))

	fmt.Fprintf(w, "\n=== Recommendation ===\n")
	fmt.Fprintln(w, Recommendation(a.Recommendation))
}

// Recommendation returns the advice text for a verdict
func Recommendation(rec types.Recommendation) string {
	switch rec {
	case types.RecommendHighQualityPrint:
		return "The resized image is better for high-quality printing and detailed viewing."
	case types.RecommendOriginalSufficient:
		return "The original image might be sufficient for most purposes while being more storage efficient."
	default:
		return strings.Join([]string{
			"Choose based on your specific needs:",
			"- Use resized image for high-quality printing",
			"- Use original image for web/screen display or storage efficiency",
		}, "\n")
	}
}

func check(ok bool, yes, no string) string {
	if ok {
		return "✓ " + yes
	}
	return "✗ " + no
}
