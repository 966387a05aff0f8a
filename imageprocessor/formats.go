package imageprocessor

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FormatType represents a known image format type
type FormatType string

// Known image format constants
const (
	FormatUnknown FormatType = "unknown"
	FormatJPEG    FormatType = "jpeg"
	FormatPNG     FormatType = "png"
	FormatGIF     FormatType = "gif"
	FormatTIFF    FormatType = "tiff"
	FormatBMP     FormatType = "bmp"
	FormatWEBP    FormatType = "webp"
)

// Map of extensions to format types
var formatExtensions = map[string]FormatType{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".jpe":  FormatJPEG,
	".png":  FormatPNG,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".webp": FormatWEBP,
}

// Map of sniffed MIME types to format types
var formatMIMETypes = map[string]FormatType{
	"image/jpeg": FormatJPEG,
	"image/png":  FormatPNG,
	"image/gif":  FormatGIF,
	"image/tiff": FormatTIFF,
	"image/bmp":  FormatBMP,
	"image/webp": FormatWEBP,
}

// writableFormats are the formats that can carry an embedded DPI on output
var writableFormats = map[FormatType]bool{
	FormatJPEG: true,
	FormatPNG:  true,
}

// String returns the conventional upper-case name, e.g. "JPEG"
func (f FormatType) String() string {
	return strings.ToUpper(string(f))
}

// GetFileFormat returns the format type based on file extension
func GetFileFormat(path string) FormatType {
	ext := strings.ToLower(filepath.Ext(path))
	format, exists := formatExtensions[ext]
	if !exists {
		return FormatUnknown
	}
	return format
}

// DetectFormat sniffs the file content and falls back to the extension
// when the content is not recognized.
func DetectFormat(path string, data []byte) FormatType {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if f, ok := formatMIMETypes[m.String()]; ok {
			return f
		}
	}
	return GetFileFormat(path)
}

// IsWritableFormat reports whether output can be written in format with DPI metadata
func IsWritableFormat(format FormatType) bool {
	return writableFormats[format]
}

// WritableExtensions lists the canonical extensions of the writable formats, e.g. ".jpg, .png"
func WritableExtensions() string {
	exts := make([]string, 0, len(writableFormats))
	for f := range writableFormats {
		exts = append(exts, FormatToExtension(f))
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// FormatToExtension returns a canonical file extension for a format
func FormatToExtension(format FormatType) string {
	switch format {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatGIF:
		return ".gif"
	case FormatTIFF:
		return ".tiff"
	case FormatBMP:
		return ".bmp"
	case FormatWEBP:
		return ".webp"
	default:
		return ""
	}
}
