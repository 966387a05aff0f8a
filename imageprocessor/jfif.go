package imageprocessor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// JFIF density units
const (
	jfifUnitsInch  = 1
	jfifUnitsCm    = 2
	markerPrefix   = 0xFF
	markerSOI      = 0xD8
	markerEOI      = 0xD9
	markerSOS      = 0xDA
	markerAPP0     = 0xE0
	markerTEM      = 0x01
	markerRST0     = 0xD0
	markerRST7     = 0xD7
	jfifHeaderSize = 14
)

var jfifIdent = []byte("JFIF\x00")

// ErrNotJPEG is returned when data does not start with an SOI marker
var ErrNotJPEG = errors.New("not a jpeg")

type jpegSegment struct {
	marker byte
	offset int // offset of the payload after the length field
	data   []byte
}

// walkJPEGSegments calls fn for each marker segment before the first scan.
// Returning false from fn stops the walk.
func walkJPEGSegments(data []byte, fn func(seg jpegSegment) bool) error {
	if len(data) < 4 || data[0] != markerPrefix || data[1] != markerSOI {
		return ErrNotJPEG
	}

	i := 2
	for i+1 < len(data) {
		if data[i] != markerPrefix {
			return fmt.Errorf("expected marker at offset %d", i)
		}
		// skip fill bytes
		for i < len(data) && data[i] == markerPrefix {
			i++
		}
		if i >= len(data) {
			return nil
		}
		m := data[i]
		i++

		if m == markerTEM || (m >= markerRST0 && m <= markerRST7) {
			continue
		}
		if m == markerEOI || m == markerSOS {
			return nil
		}
		if i+2 > len(data) {
			return fmt.Errorf("truncated segment length at offset %d", i)
		}
		length := int(binary.BigEndian.Uint16(data[i:]))
		if length < 2 || i+length > len(data) {
			return fmt.Errorf("bad segment length %d at offset %d", length, i)
		}
		if !fn(jpegSegment{marker: m, offset: i + 2, data: data[i+2 : i+length]}) {
			return nil
		}
		i += length
	}
	return nil
}

// readJFIFDensity returns the pixel density of the JFIF APP0 segment in DPI
func readJFIFDensity(data []byte) (float64, float64, bool) {
	var x, y float64
	found := false

	_ = walkJPEGSegments(data, func(seg jpegSegment) bool {
		if seg.marker != markerAPP0 || !bytes.HasPrefix(seg.data, jfifIdent) || len(seg.data) < 12 {
			return true
		}
		units := seg.data[7]
		xd := float64(binary.BigEndian.Uint16(seg.data[8:]))
		yd := float64(binary.BigEndian.Uint16(seg.data[10:]))

		switch units {
		case jfifUnitsInch:
			x, y, found = xd, yd, true
		case jfifUnitsCm:
			x, y, found = xd*2.54, yd*2.54, true
		}
		return false
	})

	return x, y, found
}

// setJFIFDensity sets the JFIF APP0 density to dpi, inserting the segment
// directly after SOI when the file has none.
func setJFIFDensity(data []byte, dpiX, dpiY uint16) ([]byte, error) {
	patchAt := -1
	err := walkJPEGSegments(data, func(seg jpegSegment) bool {
		if seg.marker == markerAPP0 && bytes.HasPrefix(seg.data, jfifIdent) && len(seg.data) >= 12 {
			patchAt = seg.offset
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	if patchAt >= 0 {
		out := make([]byte, len(data))
		copy(out, data)
		seg := out[patchAt:]
		seg[7] = jfifUnitsInch
		binary.BigEndian.PutUint16(seg[8:], dpiX)
		binary.BigEndian.PutUint16(seg[10:], dpiY)
		return out, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(data)+jfifHeaderSize+4))
	buf.Write(data[:2])
	buf.Write([]byte{markerPrefix, markerAPP0})
	_ = binary.Write(buf, binary.BigEndian, uint16(jfifHeaderSize+2))
	buf.Write(jfifIdent)
	buf.Write([]byte{0x01, 0x02}) // version 1.02
	buf.WriteByte(jfifUnitsInch)
	_ = binary.Write(buf, binary.BigEndian, dpiX)
	_ = binary.Write(buf, binary.BigEndian, dpiY)
	buf.Write([]byte{0, 0}) // no thumbnail
	buf.Write(data[2:])
	return buf.Bytes(), nil
}
