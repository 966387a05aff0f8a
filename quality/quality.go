// Package quality compares an image against a reference using PSNR.
package quality

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"printsize/logging"
)

// MaxPixelValue is the peak value of an 8-bit channel
const MaxPixelValue = 255.0

var (
	// ErrDimensionMismatchAfterResize is returned when the candidate cannot be brought to the original's size
	ErrDimensionMismatchAfterResize = errors.New("dimension mismatch after resize")
	// ErrUnsupportedColorMode is returned when the two images' channels cannot be aligned
	ErrUnsupportedColorMode = errors.New("unsupported color mode")
	// ErrEmptyImage is returned when an image has no pixels
	ErrEmptyImage = errors.New("empty image")
)

// Resampler scales an image to exactly width x height
type Resampler interface {
	Resample(img image.Image, width, height int) (image.Image, error)
}

// Result holds the raw comparison numbers
type Result struct {
	MSE       float64
	PSNR      float64
	Resampled bool
}

// Compare computes PSNR of candidate against original. A candidate of a
// different size is first resampled to the original's exact dimensions, so
// the score includes resampling error as well as compression loss.
func Compare(original, candidate image.Image, r Resampler) (Result, error) {
	ob, cb := original.Bounds(), candidate.Bounds()
	if ob.Empty() || cb.Empty() {
		return Result{}, ErrEmptyImage
	}

	ol, cl := LayoutOf(original), LayoutOf(candidate)
	if ol != cl {
		return Result{}, fmt.Errorf("%w: %s vs %s", ErrUnsupportedColorMode, ol, cl)
	}

	resampled := false
	if ob.Dx() != cb.Dx() || ob.Dy() != cb.Dy() {
		if r == nil {
			return Result{}, fmt.Errorf("%w: no resampler for %dx%d -> %dx%d",
				ErrDimensionMismatchAfterResize, cb.Dx(), cb.Dy(), ob.Dx(), ob.Dy())
		}

		logging.DebugLog("Resampling candidate %dx%d to %dx%d", cb.Dx(), cb.Dy(), ob.Dx(), ob.Dy())
		out, err := r.Resample(candidate, ob.Dx(), ob.Dy())
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrDimensionMismatchAfterResize, err)
		}
		rb := out.Bounds()
		if rb.Dx() != ob.Dx() || rb.Dy() != ob.Dy() {
			return Result{}, fmt.Errorf("%w: resampler returned %dx%d, want %dx%d",
				ErrDimensionMismatchAfterResize, rb.Dx(), rb.Dy(), ob.Dx(), ob.Dy())
		}
		candidate = out
		resampled = true
	}

	mse := meanSquaredError(original, candidate, ol)
	return Result{
		MSE:       mse,
		PSNR:      PSNR(mse),
		Resampled: resampled,
	}, nil
}

// MeanSquaredError averages the squared channel differences of two same-sized images
func MeanSquaredError(a, b image.Image) (float64, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Empty() || bb.Empty() {
		return 0, ErrEmptyImage
	}
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatchAfterResize, ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}
	la, lb := LayoutOf(a), LayoutOf(b)
	if la != lb {
		return 0, fmt.Errorf("%w: %s vs %s", ErrUnsupportedColorMode, la, lb)
	}
	return meanSquaredError(a, b, la), nil
}

// PSNR converts a mean squared error to decibels; zero error is +Inf
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(MaxPixelValue/math.Sqrt(mse))
}

func meanSquaredError(a, b image.Image, l Layout) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	w, h := ab.Dx(), ab.Dy()

	var va, vb [4]uint8
	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := l.sample(a.At(ab.Min.X+x, ab.Min.Y+y), &va)
			l.sample(b.At(bb.Min.X+x, bb.Min.Y+y), &vb)
			for c := 0; c < n; c++ {
				d := float64(va[c]) - float64(vb[c])
				sum += d * d
			}
		}
	}
	return sum / float64(w*h*l.Channels())
}

// Layout is the channel arrangement pixels are compared in
type Layout int

const (
	LayoutGray Layout = iota
	LayoutRGB
	LayoutRGBA
)

func (l Layout) String() string {
	switch l {
	case LayoutGray:
		return "L"
	case LayoutRGB:
		return "RGB"
	default:
		return "RGBA"
	}
}

// Channels returns the number of compared channels
func (l Layout) Channels() int {
	switch l {
	case LayoutGray:
		return 1
	case LayoutRGB:
		return 3
	default:
		return 4
	}
}

// LayoutOf picks the layout for img: gray models compare one channel,
// fully opaque images three, everything else four.
func LayoutOf(img image.Image) Layout {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return LayoutGray
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return LayoutRGB
	}
	return LayoutRGBA
}

func (l Layout) sample(c color.Color, dst *[4]uint8) int {
	if l == LayoutGray {
		dst[0] = color.GrayModel.Convert(c).(color.Gray).Y
		return 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	dst[0], dst[1], dst[2], dst[3] = n.R, n.G, n.B, n.A
	return l.Channels()
}
