package types

import "math"

// DefaultDPI is assumed on any axis whose resolution metadata is missing
const DefaultDPI = 96.0

// DPISource records where an image's resolution came from
type DPISource string

const (
	DPISourceJFIF     DPISource = "jfif"
	DPISourceEXIF     DPISource = "exif"
	DPISourcePNG      DPISource = "png"
	DPISourceBMP      DPISource = "bmp"
	DPISourceExiftool DPISource = "exiftool"
	DPISourceDefault  DPISource = "default"
)

// ImageMetrics holds the read-only metrics of a loaded image
type ImageMetrics struct {
	Path         string    `json:"path"`
	Width        int       `json:"width_px"`
	Height       int       `json:"height_px"`
	DPIX         float64   `json:"dpi_x"`
	DPIY         float64   `json:"dpi_y"`
	DPISource    DPISource `json:"dpi_source"`
	DPIXAssumed  bool      `json:"dpi_x_assumed"`
	DPIYAssumed  bool      `json:"dpi_y_assumed"`
	FileSizeKB   float64   `json:"file_size_kb"`
	BitsPerPixel int       `json:"bits_per_pixel"`
	ColorMode    string    `json:"color_mode"`
	Format       string    `json:"format"`
}

// TotalPixels returns width * height
func (m ImageMetrics) TotalPixels() int {
	return m.Width * m.Height
}

// DPIAssumed reports whether either axis fell back to DefaultDPI
func (m ImageMetrics) DPIAssumed() bool {
	return m.DPISource == DPISourceDefault || m.DPIXAssumed || m.DPIYAssumed
}

// DPIPartlyAssumed reports whether metadata was found but one axis was unusable
func (m ImageMetrics) DPIPartlyAssumed() bool {
	return m.DPISource != DPISourceDefault && m.DPIXAssumed != m.DPIYAssumed
}

// PrintSize returns the physical size implied by the image's DPI
func (m ImageMetrics) PrintSize() PrintSize {
	return PrintSize{
		WidthIn:  float64(m.Width) / m.DPIX,
		HeightIn: float64(m.Height) / m.DPIY,
		DPIX:     m.DPIX,
		DPIY:     m.DPIY,
		WidthPx:  m.Width,
		HeightPx: m.Height,
	}
}

// EffectivePPI is the diagonal pixel count divided by the diagonal print size
func (m ImageMetrics) EffectivePPI() float64 {
	w, h := float64(m.Width), float64(m.Height)
	wi, hi := w/m.DPIX, h/m.DPIY
	return math.Sqrt((w*w + h*h) / (wi*wi + hi*hi))
}

// PixelsPerKB is the storage efficiency of the file
func (m ImageMetrics) PixelsPerKB() float64 {
	if m.FileSizeKB <= 0 {
		return 0
	}
	return float64(m.TotalPixels()) / m.FileSizeKB
}

// PrintSize is a pixel size paired with its physical size in inches
type PrintSize struct {
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	DPIX     float64 `json:"dpi_x"`
	DPIY     float64 `json:"dpi_y"`
	WidthPx  int     `json:"width_px"`
	HeightPx int     `json:"height_px"`
}

// Recommendation is the overall verdict of a comparison
type Recommendation int

const (
	RecommendDependsOnUse Recommendation = iota
	RecommendHighQualityPrint
	RecommendOriginalSufficient
)

// Assessment holds the pass/fail checks of a comparison
type Assessment struct {
	HigherResolution        bool
	BetterPrintDPI          bool
	BetterStorageEfficiency bool
	Recommendation          Recommendation
}

// QualityReport is the result of comparing an original against a candidate
type QualityReport struct {
	PSNR       float64
	MSE        float64
	Resampled  bool
	Original   ImageMetrics
	Comparison ImageMetrics
	Assessment Assessment
}

// Identical reports whether PSNR hit the +Inf sentinel
func (r QualityReport) Identical() bool {
	return math.IsInf(r.PSNR, 1)
}
