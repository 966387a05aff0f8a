package quality

import "printsize/types"

const (
	// HighQualityPrintDPI is the resolution at which a print is considered high quality
	HighQualityPrintDPI = 300.0
	// AdequatePrintDPI is enough for most prints viewed at arm's length
	AdequatePrintDPI = 150.0
)

// Assess checks whether candidate improves on original for printing.
// Print quality is judged on the horizontal DPI only.
func Assess(original, candidate types.ImageMetrics) types.Assessment {
	a := types.Assessment{
		HigherResolution:        candidate.TotalPixels() > original.TotalPixels(),
		BetterPrintDPI:          candidate.DPIX > original.DPIX,
		BetterStorageEfficiency: candidate.PixelsPerKB() > original.PixelsPerKB(),
	}

	switch {
	case candidate.DPIX >= HighQualityPrintDPI && a.HigherResolution:
		a.Recommendation = types.RecommendHighQualityPrint
	case original.FileSizeKB < candidate.FileSizeKB && original.DPIX >= AdequatePrintDPI:
		a.Recommendation = types.RecommendOriginalSufficient
	default:
		a.Recommendation = types.RecommendDependsOnUse
	}
	return a
}

// Report combines two images' metrics and their comparison into a QualityReport
func Report(original, candidate types.ImageMetrics, res Result) types.QualityReport {
	return types.QualityReport{
		PSNR:       res.PSNR,
		MSE:        res.MSE,
		Resampled:  res.Resampled,
		Original:   original,
		Comparison: candidate,
		Assessment: Assess(original, candidate),
	}
}
