package imageprocessor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"printsize/printsize"
)

const (
	pngUnitMetre   = 1
	inchesPerMetre = 1 / 0.0254
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ErrNotPNG is returned when data does not start with the PNG signature
var ErrNotPNG = errors.New("not a png")

type pngChunk struct {
	typ    string
	offset int // offset of the length field
	data   []byte
}

func walkPNGChunks(data []byte, fn func(c pngChunk) bool) error {
	if !bytes.HasPrefix(data, pngSignature) {
		return ErrNotPNG
	}

	i := len(pngSignature)
	for i+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[i:]))
		end := i + 8 + length + 4
		if length < 0 || end > len(data) {
			return errors.New("truncated png chunk")
		}
		c := pngChunk{typ: string(data[i+4 : i+8]), offset: i, data: data[i+8 : i+8+length]}
		if !fn(c) || c.typ == "IEND" {
			return nil
		}
		i = end
	}
	return nil
}

// readPNGPhys returns the pHYs resolution in DPI when its unit is the metre
func readPNGPhys(data []byte) (float64, float64, bool) {
	var x, y float64
	found := false

	_ = walkPNGChunks(data, func(c pngChunk) bool {
		if c.typ == "IDAT" {
			return false
		}
		if c.typ != "pHYs" || len(c.data) < 9 {
			return true
		}
		if c.data[8] == pngUnitMetre {
			x = float64(binary.BigEndian.Uint32(c.data[0:])) / inchesPerMetre
			y = float64(binary.BigEndian.Uint32(c.data[4:])) / inchesPerMetre
			found = true
		}
		return false
	})

	return x, y, found
}

// pngColorMode maps the IHDR colour type and bit depth to a mode name and band count
func pngColorMode(data []byte) (string, int, bool) {
	mode, bands, found := "", 0, false

	_ = walkPNGChunks(data, func(c pngChunk) bool {
		if c.typ != "IHDR" || len(c.data) < 13 {
			return false
		}
		depth, colorType := c.data[8], c.data[9]
		switch colorType {
		case 0:
			mode, bands = "L", 1
			if depth == 1 {
				mode = "1"
			} else if depth == 16 {
				mode = "I;16"
			}
		case 2:
			mode, bands = "RGB", 3
		case 3:
			mode, bands = "P", 1
		case 4:
			mode, bands = "LA", 2
		case 6:
			mode, bands = "RGBA", 4
		default:
			return false
		}
		found = true
		return false
	})

	return mode, bands, found
}

// setPNGPhys writes a pHYs chunk with the given DPI, replacing any existing one.
// The chunk is placed immediately before the first IDAT.
func setPNGPhys(data []byte, dpiX, dpiY float64) ([]byte, error) {
	ppmX, err := pixelsPerMetre(dpiX)
	if err != nil {
		return nil, err
	}
	ppmY, err := pixelsPerMetre(dpiY)
	if err != nil {
		return nil, err
	}

	phys := make([]byte, 9)
	binary.BigEndian.PutUint32(phys[0:], ppmX)
	binary.BigEndian.PutUint32(phys[4:], ppmY)
	phys[8] = pngUnitMetre

	out := bytes.NewBuffer(make([]byte, 0, len(data)+21))
	out.Write(pngSignature)
	written := false

	err = walkPNGChunks(data, func(c pngChunk) bool {
		if c.typ == "pHYs" {
			return true
		}
		if c.typ == "IDAT" && !written {
			writePNGChunk(out, "pHYs", phys)
			written = true
		}
		out.Write(data[c.offset : c.offset+12+len(c.data)])
		return true
	})
	if err != nil {
		return nil, err
	}
	if !written {
		return nil, errors.New("png has no image data")
	}
	return out.Bytes(), nil
}

// pixelsPerMetre converts dpi to the pHYs unit, rejecting values a uint32 cannot hold
func pixelsPerMetre(dpi float64) (uint32, error) {
	ppm := math.Round(dpi * inchesPerMetre)
	if math.IsNaN(ppm) || ppm < 1 || ppm > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %v does not fit a pHYs density", printsize.ErrInvalidDPI, dpi)
	}
	return uint32(ppm), nil
}

func writePNGChunk(buf *bytes.Buffer, typ string, payload []byte) {
	_ = binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(payload)
	buf.WriteString(typ)
	buf.Write(payload)
	_ = binary.Write(buf, binary.BigEndian, crc.Sum32())
}
