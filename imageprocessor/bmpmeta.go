package imageprocessor

import (
	"encoding/binary"
)

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpXPelsOffset    = bmpFileHeaderSize + 24
	bmpYPelsOffset    = bmpFileHeaderSize + 28
)

// readBMPResolution returns the info header's pixels per metre in DPI.
// Zero means unset; OS/2 core headers have no resolution fields.
func readBMPResolution(data []byte) (float64, float64, bool) {
	if len(data) < bmpFileHeaderSize+bmpInfoHeaderSize || data[0] != 'B' || data[1] != 'M' {
		return 0, 0, false
	}
	if binary.LittleEndian.Uint32(data[bmpFileHeaderSize:]) < bmpInfoHeaderSize {
		return 0, 0, false
	}

	xppm := int32(binary.LittleEndian.Uint32(data[bmpXPelsOffset:]))
	yppm := int32(binary.LittleEndian.Uint32(data[bmpYPelsOffset:]))
	if xppm <= 0 && yppm <= 0 {
		return 0, 0, false
	}
	return float64(xppm) / inchesPerMetre, float64(yppm) / inchesPerMetre, true
}
