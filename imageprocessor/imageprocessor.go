// Package imageprocessor loads images with their print metadata and writes resized copies.
package imageprocessor

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	"printsize/logging"
	"printsize/printsize"
	"printsize/types"
)

var (
	// ErrFileNotFound is returned when an input path does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned for files that cannot be decoded or written
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// LoadOptions controls metadata lookup
type LoadOptions struct {
	// Exiftool enables the exiftool fallback when no built-in reader finds a resolution
	Exiftool bool
}

// LoadedImage is a decoded image with its metrics
type LoadedImage struct {
	Image   image.Image
	Metrics types.ImageMetrics
}

var registry = NewImageLoaderRegistry()

// LoadImage reads, decodes and measures the image at path
func LoadImage(path string, opts LoadOptions) (*LoadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	format := DetectFormat(path, data)
	loader := registry.GetLoader(format)
	if loader == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	img, err := loader.LoadImage(data)
	if err != nil {
		logging.LogImageProcessed(path, false, err.Error())
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
	}

	res, ok := loader.ReadResolution(data)
	if !ok && opts.Exiftool {
		if x, y, found := readDPIWithExiftool(path); found {
			res, ok = Resolution{X: x, Y: y, Source: types.DPISourceExiftool}, true
		}
	}
	if ok && printsize.ValidateDPI(res.X) != nil && printsize.ValidateDPI(res.Y) != nil {
		logging.LogWarning("Ignoring unusable resolution %v x %v in %s", res.X, res.Y, path)
		ok = false
	}

	dpiX, dpiY := printsize.ResolveDPI(res.X, res.Y, ok)
	xAssumed := !ok || printsize.ValidateDPI(res.X) != nil
	yAssumed := !ok || printsize.ValidateDPI(res.Y) != nil
	source := res.Source
	if !ok {
		source = types.DPISourceDefault
		logging.LogInfo("DPI information not found in %s, assuming %.0f DPI", path, types.DefaultDPI)
	} else if xAssumed || yAssumed {
		logging.LogWarning("Unusable resolution %v x %v (%s) in %s, assuming %.0f DPI on that axis",
			res.X, res.Y, res.Source, path, types.DefaultDPI)
	}

	mode, bands := colorMode(img)
	if format == FormatPNG {
		if m, b, found := pngColorMode(data); found {
			mode, bands = m, b
		}
	}

	b := img.Bounds()
	metrics := types.ImageMetrics{
		Path:         path,
		Width:        b.Dx(),
		Height:       b.Dy(),
		DPIX:         dpiX,
		DPIY:         dpiY,
		DPISource:    source,
		DPIXAssumed:  xAssumed,
		DPIYAssumed:  yAssumed,
		FileSizeKB:   float64(len(data)) / 1024,
		BitsPerPixel: bands * 8,
		ColorMode:    mode,
		Format:       format.String(),
	}

	logging.DebugLog("Loaded %s: %dx%d %s %s, %.2f x %.2f DPI (%s)",
		path, metrics.Width, metrics.Height, metrics.Format, mode, dpiX, dpiY, source)
	logging.LogImageProcessed(path, true, "")

	return &LoadedImage{Image: img, Metrics: metrics}, nil
}

// AnalyzeImage returns only the metrics of the image at path
func AnalyzeImage(path string, opts LoadOptions) (types.ImageMetrics, error) {
	loaded, err := LoadImage(path, opts)
	if err != nil {
		return types.ImageMetrics{}, err
	}
	return loaded.Metrics, nil
}

// colorMode names the decoded pixel layout and its band count
func colorMode(img image.Image) (string, int) {
	switch img.(type) {
	case *image.Gray:
		return "L", 1
	case *image.Gray16:
		return "I;16", 1
	case *image.Paletted:
		return "P", 1
	case *image.CMYK:
		return "CMYK", 4
	case *image.YCbCr:
		return "RGB", 3
	case *image.NYCbCrA:
		return "RGBA", 4
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return "RGB", 3
	}
	return "RGBA", 4
}
