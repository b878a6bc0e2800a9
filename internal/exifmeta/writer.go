package exifmeta

import (
	"bytes"
	"encoding/binary"
)

// WriteFields is the encode-side counterpart to Decode. goexif only reads
// TIFF/EXIF streams, so this builds the minimal little-endian single-IFD
// TIFF container the original wrote through MicroExif::toByteArray: just
// enough tags for orientation and resolution to round-trip, never a full
// tag set.
type WriteFields struct {
	Orientation    int
	XResolution    float64
	YResolution    float64
	ResolutionUnit int
}

const (
	tagOrientation     = 0x0112
	tagXResolution     = 0x011A
	tagYResolution     = 0x011B
	tagResolutionUnit  = 0x0128

	typeShort    = 3
	typeRational = 5
)

type ifdEntry struct {
	tag      uint16
	typ      uint16
	count    uint32
	value    uint32 // inline value, or offset into the value area when the payload doesn't fit in 4 bytes
	extra    []byte // payload written to the value area when non-nil
}

// ToByteArray serializes the given fields into a minimal TIFF stream,
// mirroring MicroExif::fromImage(...).toByteArray(): only non-zero fields
// are emitted, and an empty WriteFields produces an empty result.
func ToByteArray(f WriteFields) []byte {
	var entries []ifdEntry

	if f.Orientation != 0 {
		entries = append(entries, ifdEntry{tag: tagOrientation, typ: typeShort, count: 1, value: uint32(f.Orientation)})
	}
	if f.XResolution > 0 {
		entries = append(entries, ifdEntry{tag: tagXResolution, typ: typeRational, count: 1, extra: rational(f.XResolution)})
	}
	if f.YResolution > 0 {
		entries = append(entries, ifdEntry{tag: tagYResolution, typ: typeRational, count: 1, extra: rational(f.YResolution)})
	}
	if f.ResolutionUnit != 0 {
		entries = append(entries, ifdEntry{tag: tagResolutionUnit, typ: typeShort, count: 1, value: uint32(f.ResolutionUnit)})
	}
	if len(entries) == 0 {
		return nil
	}

	var buf bytes.Buffer
	buf.Write([]byte{'I', 'I', 42, 0})
	binary.Write(&buf, binary.LittleEndian, uint32(8))

	valueAreaOffset := uint32(8) + 2 + uint32(len(entries))*12 + 4
	extras := make([][]byte, len(entries))
	offset := valueAreaOffset
	for i, e := range entries {
		if e.extra != nil {
			extras[i] = e.extra
			entries[i].value = offset
			offset += uint32(len(e.extra))
		}
	}

	binary.Write(&buf, binary.LittleEndian, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(&buf, binary.LittleEndian, e.tag)
		binary.Write(&buf, binary.LittleEndian, e.typ)
		binary.Write(&buf, binary.LittleEndian, e.count)
		binary.Write(&buf, binary.LittleEndian, e.value)
	}
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // next IFD offset
	for _, extra := range extras {
		if extra != nil {
			buf.Write(extra)
		}
	}
	return buf.Bytes()
}

func rational(v float64) []byte {
	const denom = 10000
	num := uint32(v * denom)
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:4], num)
	binary.LittleEndian.PutUint32(b[4:8], denom)
	return b
}

// WrapBox prepends the 4-byte zero TIFF-header-offset field the ISOBMFF Exif
// box format requires before the box's TIFF payload.
func WrapBox(tiffData []byte) []byte {
	if len(tiffData) == 0 {
		return nil
	}
	out := make([]byte, 4+len(tiffData))
	copy(out[4:], tiffData)
	return out
}
