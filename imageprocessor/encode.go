package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"printsize/logging"
	"printsize/printsize"
	"printsize/signalhandler"
)

const (
	// DefaultJPEGQuality is used when no quality is configured
	DefaultJPEGQuality = 95

	defaultOutputMode os.FileMode = 0o644
)

// ErrInvalidQuality is returned for JPEG qualities outside 1-100
var ErrInvalidQuality = errors.New("invalid JPEG quality")

// EncodeWithDPI writes img in format with its resolution set to dpi on both axes
func EncodeWithDPI(w io.Writer, img image.Image, format FormatType, dpi float64, quality int) error {
	if err := printsize.ValidateDPI(dpi); err != nil {
		return err
	}

	var buf bytes.Buffer
	var out []byte

	switch format {
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			return fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
		}
		density := math.Round(dpi)
		if density < 1 || density > math.MaxUint16 {
			return fmt.Errorf("%w: %v does not fit a JFIF density", printsize.ErrInvalidDPI, dpi)
		}
		if err := jpeg.Encode(&buf, flattenOnWhite(img), &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encoding jpeg: %w", err)
		}
		d := uint16(density)
		data, err := setJFIFDensity(buf.Bytes(), d, d)
		if err != nil {
			return fmt.Errorf("writing JFIF density: %w", err)
		}
		out = data

	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
		data, err := setPNGPhys(buf.Bytes(), dpi, dpi)
		if err != nil {
			return fmt.Errorf("writing pHYs chunk: %w", err)
		}
		out = data

	default:
		return fmt.Errorf("%w: cannot write %s with DPI metadata", ErrUnsupportedFormat, format)
	}

	_, err := w.Write(out)
	return err
}

// SaveImage writes img to path, choosing the format from the extension.
// The file is written to a temporary name and renamed into place.
func SaveImage(path string, img image.Image, dpi float64, quality int) error {
	format := GetFileFormat(path)
	if !IsWritableFormat(format) {
		return fmt.Errorf("%w: output %s (use %s)", ErrUnsupportedFormat, path, WritableExtensions())
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".printsize-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	tmpName := tmp.Name()
	untrack := signalhandler.TrackFile(tmpName)
	defer untrack()

	if err := EncodeWithDPI(tmp, img, format, dpi, quality); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Chmod(tmpName, outputMode(path)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("moving output into place: %w", err)
	}

	logging.LogInfo("Wrote %s at %.0f DPI", path, dpi)
	return nil
}

// outputMode keeps the permissions of a file being replaced; new files get 0644
func outputMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return defaultOutputMode
}

// flattenOnWhite composites translucent images over white, since JPEG has no alpha
func flattenOnWhite(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
