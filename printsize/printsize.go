// Package printsize converts between pixel dimensions and physical print size.
package printsize

import (
	"errors"
	"fmt"
	"math"

	"printsize/types"
)

var (
	// ErrInvalidDPI is returned for a resolution that is not a positive finite number
	ErrInvalidDPI = errors.New("invalid DPI")
	// ErrInvalidDimension is returned for negative sizes or targets that round to zero pixels
	ErrInvalidDimension = errors.New("invalid dimension")
)

// ValidateDPI checks that dpi can be divided by
func ValidateDPI(dpi float64) error {
	if math.IsNaN(dpi) || math.IsInf(dpi, 0) || dpi <= 0 {
		return fmt.Errorf("%w: %v (must be > 0)", ErrInvalidDPI, dpi)
	}
	return nil
}

// ResolveDPI applies the default resolution to each axis independently.
// Values that are missing or not positive count as absent.
func ResolveDPI(x, y float64, ok bool) (float64, float64) {
	if !ok {
		return types.DefaultDPI, types.DefaultDPI
	}
	if ValidateDPI(x) != nil {
		x = types.DefaultDPI
	}
	if ValidateDPI(y) != nil {
		y = types.DefaultDPI
	}
	return x, y
}

// PixelsToInches returns px / dpi
func PixelsToInches(px int, dpi float64) (float64, error) {
	if err := ValidateDPI(dpi); err != nil {
		return 0, err
	}
	if px < 0 {
		return 0, fmt.Errorf("%w: %d pixels", ErrInvalidDimension, px)
	}
	return float64(px) / dpi, nil
}

// InchesToPixels returns round(inches * dpi)
func InchesToPixels(inches, dpi float64) (int, error) {
	if err := ValidateDPI(dpi); err != nil {
		return 0, err
	}
	if math.IsNaN(inches) || math.IsInf(inches, 0) || inches < 0 {
		return 0, fmt.Errorf("%w: %v inches", ErrInvalidDimension, inches)
	}
	return int(math.Round(inches * dpi)), nil
}

// Convert computes the print size of a widthPx x heightPx image
func Convert(widthPx, heightPx int, dpiX, dpiY float64) (types.PrintSize, error) {
	w, err := PixelsToInches(widthPx, dpiX)
	if err != nil {
		return types.PrintSize{}, fmt.Errorf("width: %w", err)
	}
	h, err := PixelsToInches(heightPx, dpiY)
	if err != nil {
		return types.PrintSize{}, fmt.Errorf("height: %w", err)
	}

	return types.PrintSize{
		WidthIn:  w,
		HeightIn: h,
		DPIX:     dpiX,
		DPIY:     dpiY,
		WidthPx:  widthPx,
		HeightPx: heightPx,
	}, nil
}

// TargetPixels returns the pixel dimensions needed to print widthIn x heightIn at dpi
func TargetPixels(widthIn, heightIn, dpi float64) (int, int, error) {
	w, err := InchesToPixels(widthIn, dpi)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err := InchesToPixels(heightIn, dpi)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("%w: %.3gx%.3g in at %v DPI is %dx%d pixels", ErrInvalidDimension, widthIn, heightIn, dpi, w, h)
	}
	return w, h, nil
}
