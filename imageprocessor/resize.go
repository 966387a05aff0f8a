package imageprocessor

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"printsize/logging"
	"printsize/printsize"
	"printsize/quality"
	"printsize/types"
)

// ResizeOptions defines the options for resizing to a print size
type ResizeOptions struct {
	InputPath  string
	OutputPath string
	WidthIn    float64
	HeightIn   float64
	DPI        float64
	Quality    int
	Resampler  quality.Resampler
	Load       LoadOptions
}

// ResizeResult holds the metrics of the source and of the written file
type ResizeResult struct {
	Input  types.ImageMetrics
	Output types.ImageMetrics
}

// ResizeForPrint resamples the input to WidthIn x HeightIn inches at DPI and
// writes it to OutputPath with the DPI embedded. The aspect ratio is not preserved.
func ResizeForPrint(opts ResizeOptions) (*ResizeResult, error) {
	if err := printsize.ValidateDPI(opts.DPI); err != nil {
		return nil, err
	}
	width, height, err := printsize.TargetPixels(opts.WidthIn, opts.HeightIn, opts.DPI)
	if err != nil {
		return nil, err
	}
	if !IsWritableFormat(GetFileFormat(opts.OutputPath)) {
		return nil, fmt.Errorf("%w: output %s (use %s)", ErrUnsupportedFormat, opts.OutputPath, WritableExtensions())
	}
	if opts.Quality == 0 {
		opts.Quality = DefaultJPEGQuality
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, opts.Quality)
	}
	if opts.Resampler == nil {
		return nil, errors.New("no resampler configured")
	}

	src, err := LoadImage(opts.InputPath, opts.Load)
	if err != nil {
		return nil, err
	}

	logging.LogInfo("Resizing %s from %dx%d to %dx%d (%.2f x %.2f in at %.0f DPI)",
		opts.InputPath, src.Metrics.Width, src.Metrics.Height, width, height, opts.WidthIn, opts.HeightIn, opts.DPI)

	resized, err := opts.Resampler.Resample(src.Image, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quality.ErrDimensionMismatchAfterResize, err)
	}
	if b := resized.Bounds(); b.Dx() != width || b.Dy() != height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			quality.ErrDimensionMismatchAfterResize, b.Dx(), b.Dy(), width, height)
	}

	if quality.LayoutOf(src.Image) == quality.LayoutGray {
		resized = toGray(resized)
	}

	if err := SaveImage(opts.OutputPath, resized, opts.DPI, opts.Quality); err != nil {
		return nil, err
	}

	out, err := AnalyzeImage(opts.OutputPath, opts.Load)
	if err != nil {
		return nil, fmt.Errorf("reading back %s: %w", opts.OutputPath, err)
	}

	return &ResizeResult{Input: src.Metrics, Output: out}, nil
}

// toGray keeps single-channel sources single-channel after resampling
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
