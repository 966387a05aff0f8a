package printsize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printsize/types"
)

func TestPixelsToInchesRoundTrip(t *testing.T) {
	dpis := []float64{1, 72, 96, 150, 299.5, 300, 600, 1200}
	pixels := []int{1, 7, 100, 1000, 3600, 4500, 12345}

	for _, d := range dpis {
		for _, p := range pixels {
			in, err := PixelsToInches(p, d)
			require.NoError(t, err)
			assert.InDelta(t, float64(p), in*d, 1e-9, "px=%d dpi=%v", p, d)
		}
	}
}

func TestInchesToPixelsRounds(t *testing.T) {
	px, err := InchesToPixels(12, 300)
	require.NoError(t, err)
	assert.Equal(t, 3600, px)

	px, err = InchesToPixels(8.5, 72)
	require.NoError(t, err)
	assert.Equal(t, 612, px)

	// 0.333 * 300 = 99.9
	px, err = InchesToPixels(0.333, 300)
	require.NoError(t, err)
	assert.Equal(t, 100, px)
}

func TestTargetPixels(t *testing.T) {
	w, h, err := TargetPixels(12, 15, 300)
	require.NoError(t, err)
	assert.Equal(t, 3600, w)
	assert.Equal(t, 4500, h)
}

func TestTargetPixelsRoundsToZero(t *testing.T) {
	_, _, err := TargetPixels(0.001, 5, 100)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestInvalidDPI(t *testing.T) {
	for _, d := range []float64{0, -1, -300, math.NaN(), math.Inf(1)} {
		_, err := PixelsToInches(100, d)
		assert.ErrorIs(t, err, ErrInvalidDPI, "dpi=%v", d)

		_, err = InchesToPixels(1, d)
		assert.ErrorIs(t, err, ErrInvalidDPI, "dpi=%v", d)
	}

	_, err := Convert(100, 100, 300, 0)
	assert.ErrorIs(t, err, ErrInvalidDPI)
	assert.Contains(t, err.Error(), "height")
}

func TestNegativeDimensions(t *testing.T) {
	_, err := PixelsToInches(-5, 96)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = InchesToPixels(-1, 96)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestConvert(t *testing.T) {
	ps, err := Convert(1920, 1080, 96, 72)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, ps.WidthIn, 1e-12)
	assert.InDelta(t, 15.0, ps.HeightIn, 1e-12)
	assert.Equal(t, 1920, ps.WidthPx)
	assert.Equal(t, 1080, ps.HeightPx)
}

func TestResolveDPI(t *testing.T) {
	x, y := ResolveDPI(0, 0, false)
	assert.Equal(t, 96.0, x)
	assert.Equal(t, 96.0, y)

	x, y = ResolveDPI(300, 0, true)
	assert.Equal(t, 300.0, x)
	assert.Equal(t, types.DefaultDPI, y)

	x, y = ResolveDPI(-72, 150, true)
	assert.Equal(t, types.DefaultDPI, x)
	assert.Equal(t, 150.0, y)
}
