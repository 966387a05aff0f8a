package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	// register decoders with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"printsize/types"
)

// Resolution is the DPI read from a file's metadata, and where it was found
type Resolution struct {
	X, Y   float64
	Source types.DPISource
}

// ImageLoader interface defines methods for image loading
type ImageLoader interface {
	// CanLoad determines if this loader can handle the given format
	CanLoad(format FormatType) bool

	// LoadImage decodes the file content
	LoadImage(data []byte) (image.Image, error)

	// ReadResolution extracts DPI metadata, reporting false when there is none
	ReadResolution(data []byte) (Resolution, bool)
}

// BaseImageLoader provides common functionality for all image loaders
type BaseImageLoader struct {
	// Formats this loader can handle
	SupportedFormats []FormatType
}

// CanLoad checks if this loader supports the format
func (l *BaseImageLoader) CanLoad(format FormatType) bool {
	for _, supported := range l.SupportedFormats {
		if format == supported {
			return true
		}
	}
	return false
}

// LoadImage decodes with the registered standard decoders
func (l *BaseImageLoader) LoadImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ReadResolution reports no metadata
func (l *BaseImageLoader) ReadResolution([]byte) (Resolution, bool) {
	return Resolution{}, false
}

// StandardImageLoader handles formats without resolution metadata we can parse
type StandardImageLoader struct {
	BaseImageLoader
}

// NewStandardImageLoader creates a new loader for GIF and WEBP
func NewStandardImageLoader() *StandardImageLoader {
	return &StandardImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{FormatGIF, FormatWEBP},
		},
	}
}

// BMPImageLoader reads the pixels-per-metre fields of the info header
type BMPImageLoader struct {
	BaseImageLoader
}

// NewBMPImageLoader creates a new BMP loader
func NewBMPImageLoader() *BMPImageLoader {
	return &BMPImageLoader{
		BaseImageLoader: BaseImageLoader{SupportedFormats: []FormatType{FormatBMP}},
	}
}

// ReadResolution implements ImageLoader
func (l *BMPImageLoader) ReadResolution(data []byte) (Resolution, bool) {
	if x, y, ok := readBMPResolution(data); ok {
		return Resolution{X: x, Y: y, Source: types.DPISourceBMP}, true
	}
	return Resolution{}, false
}

// JPEGImageLoader reads JFIF density, then EXIF resolution
type JPEGImageLoader struct {
	BaseImageLoader
}

// NewJPEGImageLoader creates a new JPEG loader
func NewJPEGImageLoader() *JPEGImageLoader {
	return &JPEGImageLoader{
		BaseImageLoader: BaseImageLoader{SupportedFormats: []FormatType{FormatJPEG}},
	}
}

// ReadResolution implements ImageLoader
func (l *JPEGImageLoader) ReadResolution(data []byte) (Resolution, bool) {
	if x, y, ok := readJFIFDensity(data); ok {
		return Resolution{X: x, Y: y, Source: types.DPISourceJFIF}, true
	}
	if x, y, ok := readEXIFResolution(data); ok {
		return Resolution{X: x, Y: y, Source: types.DPISourceEXIF}, true
	}
	return Resolution{}, false
}

// PNGImageLoader reads the pHYs chunk
type PNGImageLoader struct {
	BaseImageLoader
}

// NewPNGImageLoader creates a new PNG loader
func NewPNGImageLoader() *PNGImageLoader {
	return &PNGImageLoader{
		BaseImageLoader: BaseImageLoader{SupportedFormats: []FormatType{FormatPNG}},
	}
}

// ReadResolution implements ImageLoader
func (l *PNGImageLoader) ReadResolution(data []byte) (Resolution, bool) {
	if x, y, ok := readPNGPhys(data); ok {
		return Resolution{X: x, Y: y, Source: types.DPISourcePNG}, true
	}
	return Resolution{}, false
}

// TiffImageLoader reads resolution from the TIFF IFD
type TiffImageLoader struct {
	BaseImageLoader
}

// NewTiffImageLoader creates a new TIFF image loader
func NewTiffImageLoader() *TiffImageLoader {
	return &TiffImageLoader{
		BaseImageLoader: BaseImageLoader{SupportedFormats: []FormatType{FormatTIFF}},
	}
}

// ReadResolution implements ImageLoader
func (l *TiffImageLoader) ReadResolution(data []byte) (Resolution, bool) {
	if x, y, ok := readEXIFResolution(data); ok {
		return Resolution{X: x, Y: y, Source: types.DPISourceEXIF}, true
	}
	return Resolution{}, false
}
