package imageprocessor

import (
	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"printsize/logging"
)

const exifUnitCm = 3

// readEXIFResolution returns XResolution/YResolution from the EXIF root IFD in DPI
func readEXIFResolution(data []byte) (float64, float64, bool) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 0, 0, false
	}

	im := exifcommon.NewIfdMapping()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		logging.LogWarning("Failed to load standard EXIF IFDs: %v", err)
		return 0, 0, false
	}
	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		logging.DebugLog("EXIF collect failed: %v", err)
		return 0, 0, false
	}
	if index.RootIfd == nil {
		return 0, 0, false
	}

	x, okX := exifRational(index.RootIfd, "XResolution")
	y, okY := exifRational(index.RootIfd, "YResolution")
	if !okX || !okY {
		return 0, 0, false
	}

	if exifShort(index.RootIfd, "ResolutionUnit") == exifUnitCm {
		x *= 2.54
		y *= 2.54
	}
	return x, y, true
}

func exifRational(ifd *exif.Ifd, name string) (float64, bool) {
	tags, err := ifd.FindTagWithName(name)
	if err != nil || len(tags) == 0 {
		return 0, false
	}
	val, err := tags[0].Value()
	if err != nil {
		return 0, false
	}
	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 {
		return 0, false
	}
	return float64(rats[0].Numerator) / float64(rats[0].Denominator), true
}

func exifShort(ifd *exif.Ifd, name string) uint16 {
	tags, err := ifd.FindTagWithName(name)
	if err != nil || len(tags) == 0 {
		return 0
	}
	val, err := tags[0].Value()
	if err != nil {
		return 0
	}
	switch v := val.(type) {
	case []uint16:
		if len(v) > 0 {
			return v[0]
		}
	case uint16:
		return v
	}
	return 0
}
