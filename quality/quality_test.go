package quality

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printsize/types"
)

// nearestResampler is a minimal Resampler so alignment can be tested without a real filter
type nearestResampler struct{}

func (nearestResampler) Resample(img image.Image, width, height int) (image.Image, error) {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := b.Min.X + x*b.Dx()/width
			sy := b.Min.Y + y*b.Dy()/height
			dst.Set(x, y, img.At(sx, sy))
		}
	}
	return dst, nil
}

type failingResampler struct{}

func (failingResampler) Resample(image.Image, int, int) (image.Image, error) {
	return nil, errors.New("backend exploded")
}

type shortResampler struct{}

func (shortResampler) Resample(_ image.Image, width, height int) (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, width-1, height)), nil
}

func gradient(w, h int, offset uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*7)%200) + offset,
				G: uint8((y*5)%200) + offset,
				B: uint8(((x+y)*3)%200) + offset,
				A: 255,
			})
		}
	}
	return img
}

func uniform(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPSNRIdenticalIsInfinite(t *testing.T) {
	img := gradient(64, 48, 0)

	res, err := Compare(img, img, nearestResampler{})
	require.NoError(t, err)
	assert.Zero(t, res.MSE)
	assert.True(t, math.IsInf(res.PSNR, 1))
	assert.False(t, res.Resampled)
}

func TestUniformOffsetClosedForm(t *testing.T) {
	for _, delta := range []uint8{1, 5, 17, 50} {
		a := gradient(40, 30, 0)
		b := gradient(40, 30, delta)

		res, err := Compare(a, b, nil)
		require.NoError(t, err)
		d := float64(delta)
		assert.InDelta(t, d*d, res.MSE, 1e-9, "delta=%d", delta)
		assert.InDelta(t, 20*math.Log10(255/d), res.PSNR, 1e-9, "delta=%d", delta)
	}
}

func TestPSNRKnownValue(t *testing.T) {
	a := uniform(8, 8, color.RGBA{100, 100, 100, 255})
	b := uniform(8, 8, color.RGBA{105, 105, 105, 255})

	res, err := Compare(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, res.MSE, 1e-12)
	assert.InDelta(t, 34.1514, res.PSNR, 1e-4)
}

func TestCompareResamplesCandidate(t *testing.T) {
	c := color.RGBA{10, 20, 30, 255}
	orig := uniform(10, 10, c)
	cand := uniform(36, 45, c)

	res, err := Compare(orig, cand, nearestResampler{})
	require.NoError(t, err)
	assert.True(t, res.Resampled)
	assert.True(t, math.IsInf(res.PSNR, 1))
}

func TestCompareResampledNonIdenticalIsFinite(t *testing.T) {
	orig := gradient(10, 10, 0)
	cand := gradient(36, 45, 3)

	res, err := Compare(orig, cand, nearestResampler{})
	require.NoError(t, err)
	assert.False(t, math.IsInf(res.PSNR, 0))
	assert.False(t, math.IsNaN(res.PSNR))
	assert.Greater(t, res.MSE, 0.0)
}

func TestCompareResamplerFailure(t *testing.T) {
	_, err := Compare(gradient(10, 10, 0), gradient(20, 20, 0), failingResampler{})
	assert.ErrorIs(t, err, ErrDimensionMismatchAfterResize)
	assert.Contains(t, err.Error(), "backend exploded")

	_, err = Compare(gradient(10, 10, 0), gradient(20, 20, 0), shortResampler{})
	assert.ErrorIs(t, err, ErrDimensionMismatchAfterResize)

	_, err = Compare(gradient(10, 10, 0), gradient(20, 20, 0), nil)
	assert.ErrorIs(t, err, ErrDimensionMismatchAfterResize)
}

func TestCompareGrayAgainstColor(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	_, err := Compare(gray, gradient(8, 8, 0), nearestResampler{})
	assert.ErrorIs(t, err, ErrUnsupportedColorMode)
}

func TestCompareGrayResampled(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 4, 4))
	b := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range a.Pix {
		a.Pix[i] = 120
	}
	for i := range b.Pix {
		b.Pix[i] = 124
	}

	res, err := Compare(a, b, nearestResampler{})
	require.NoError(t, err)
	assert.True(t, res.Resampled)
	assert.InDelta(t, 16.0, res.MSE, 1e-12)
}

func TestCompareTranslucentAgainstOpaque(t *testing.T) {
	translucent := uniform(4, 4, color.NRGBA{10, 10, 10, 128})
	_, err := Compare(translucent, gradient(4, 4, 0), nil)
	assert.ErrorIs(t, err, ErrUnsupportedColorMode)
}

func TestCompareEmpty(t *testing.T) {
	_, err := Compare(image.NewRGBA(image.Rect(0, 0, 0, 0)), gradient(2, 2, 0), nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestMeanSquaredErrorOffsetBounds(t *testing.T) {
	a := gradient(6, 6, 0)
	b := image.NewRGBA(image.Rect(10, 10, 16, 16))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			b.Set(10+x, 10+y, a.At(x, y))
		}
	}

	mse, err := MeanSquaredError(a, b)
	require.NoError(t, err)
	assert.Zero(t, mse)

	_, err = MeanSquaredError(a, gradient(5, 6, 0))
	assert.ErrorIs(t, err, ErrDimensionMismatchAfterResize)
}

func TestLayoutOf(t *testing.T) {
	assert.Equal(t, LayoutGray, LayoutOf(image.NewGray(image.Rect(0, 0, 1, 1))))
	assert.Equal(t, LayoutGray, LayoutOf(image.NewGray16(image.Rect(0, 0, 1, 1))))
	assert.Equal(t, LayoutRGB, LayoutOf(gradient(2, 2, 0)))
	assert.Equal(t, LayoutRGB, LayoutOf(image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420)))
	assert.Equal(t, LayoutRGBA, LayoutOf(image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	assert.Equal(t, 3, LayoutRGB.Channels())
}

func TestAssess(t *testing.T) {
	orig := types.ImageMetrics{Width: 1000, Height: 1000, DPIX: 96, DPIY: 96, FileSizeKB: 200}
	resized := types.ImageMetrics{Width: 3600, Height: 4500, DPIX: 300, DPIY: 300, FileSizeKB: 2400}

	a := Assess(orig, resized)
	assert.True(t, a.HigherResolution)
	assert.True(t, a.BetterPrintDPI)
	// 16.2M/2400 = 6750 px/KB vs 5000 px/KB
	assert.True(t, a.BetterStorageEfficiency)
	assert.Equal(t, types.RecommendHighQualityPrint, a.Recommendation)
}

func TestAssessOriginalSufficient(t *testing.T) {
	orig := types.ImageMetrics{Width: 2000, Height: 2000, DPIX: 200, DPIY: 200, FileSizeKB: 500}
	cand := types.ImageMetrics{Width: 1000, Height: 1000, DPIX: 100, DPIY: 100, FileSizeKB: 800}

	a := Assess(orig, cand)
	assert.False(t, a.HigherResolution)
	assert.False(t, a.BetterPrintDPI)
	assert.False(t, a.BetterStorageEfficiency)
	assert.Equal(t, types.RecommendOriginalSufficient, a.Recommendation)
}

func TestAssessDependsOnUse(t *testing.T) {
	orig := types.ImageMetrics{Width: 100, Height: 100, DPIX: 72, DPIY: 72, FileSizeKB: 50}
	cand := types.ImageMetrics{Width: 100, Height: 100, DPIX: 72, DPIY: 72, FileSizeKB: 50}

	assert.Equal(t, types.RecommendDependsOnUse, Assess(orig, cand).Recommendation)
}

func TestReport(t *testing.T) {
	orig := types.ImageMetrics{Width: 10, Height: 10, DPIX: 96, DPIY: 96}
	r := Report(orig, orig, Result{MSE: 0, PSNR: math.Inf(1)})
	assert.True(t, r.Identical())
	assert.Equal(t, orig, r.Original)
	assert.Equal(t, orig, r.Comparison)
}
