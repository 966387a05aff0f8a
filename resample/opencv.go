//go:build opencv

package resample

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"printsize/logging"
)

// OpenCVBackend is the registry name of the OpenCV resampler
const OpenCVBackend = "opencv"

// OpenCV resamples with OpenCV's 8x8 Lanczos kernel
type OpenCV struct{}

func init() {
	defaultRegistry.Register(OpenCVBackend, OpenCV{})
}

// Resample implements quality.Resampler
func (OpenCV) Resample(img image.Image, width, height int) (image.Image, error) {
	if err := checkTarget(img, width, height); err != nil {
		return nil, err
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("converting image to Mat: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Resize(src, &dst, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationLanczos4)
	if dst.Empty() {
		return nil, fmt.Errorf("OpenCV resize to %dx%d produced an empty image", width, height)
	}
	logging.DebugLog("OpenCV resized %dx%d to %dx%d", src.Cols(), src.Rows(), dst.Cols(), dst.Rows())

	out, err := dst.ToImage()
	if err != nil {
		return nil, fmt.Errorf("converting Mat to image: %w", err)
	}
	return out, nil
}
