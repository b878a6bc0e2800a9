package exifmeta

import (
	"bytes"
	"errors"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

var (
	tiffHeaderBE = []byte{'M', 'M', 0, 42}
	tiffHeaderLE = []byte{'I', 'I', 42, 0}
)

// ErrNoTIFFHeader is returned when a raw "Exif" box does not contain a
// recognizable TIFF byte-order marker anywhere in its payload.
var ErrNoTIFFHeader = errors.New("exifmeta: box has no TIFF header")

// TrimToTIFFHeader locates the earliest TIFF byte-order marker ("II*\x00" or
// "MM\x00*") inside a raw Exif box payload and returns the slice starting
// there, discarding the leading offset field that precedes it.
func TrimToTIFFHeader(box []byte) ([]byte, error) {
	be := bytes.Index(box, tiffHeaderBE)
	le := bytes.Index(box, tiffHeaderLE)
	switch {
	case le != -1 && be != -1:
		if le <= be {
			return box[le:], nil
		}
		return box[be:], nil
	case le != -1:
		return box[le:], nil
	case be != -1:
		return box[be:], nil
	default:
		return nil, ErrNoTIFFHeader
	}
}

// Metadata is the subset of EXIF fields the codec surfaces, mirroring the
// resolution and orientation lookups the original ran against MicroExif.
type Metadata struct {
	Orientation       int
	XResolution       float64
	YResolution       float64
	ResolutionUnit    int
	HasResolution     bool
}

// Decode parses a TIFF/EXIF byte stream (already trimmed to its header) via
// goexif and extracts the fields this codec acts on.
func Decode(tiffData []byte) (Metadata, error) {
	x, err := exif.Decode(bytes.NewReader(tiffData))
	if err != nil {
		return Metadata{}, err
	}
	var m Metadata
	if tag, err := x.Get(exif.Orientation); err == nil {
		if v, err := tag.Int(0); err == nil {
			m.Orientation = v
		}
	}
	if tag, err := x.Get(exif.XResolution); err == nil {
		if v, err := tag.Rat(0); err == nil {
			m.XResolution, _ = v.Float64()
			m.HasResolution = true
		}
	}
	if tag, err := x.Get(exif.YResolution); err == nil {
		if v, err := tag.Rat(0); err == nil {
			m.YResolution, _ = v.Float64()
			m.HasResolution = true
		}
	}
	if tag, err := x.Get(exif.ResolutionUnit); err == nil {
		if v, err := tag.Int(0); err == nil {
			m.ResolutionUnit = v
		}
	}
	return m, nil
}

// Walker collects every decodable tag as a name/value pair, used by
// diagnostics tooling rather than the decode path proper.
type Walker struct {
	Fields map[string]string
}

func NewWalker() *Walker { return &Walker{Fields: make(map[string]string)} }

func (w *Walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.Fields[string(name)] = tag.String()
	return nil
}

// DecodeAll runs a Walker over the full tag set, for cmd/jxlinfo's -exif flag.
func DecodeAll(tiffData []byte) (map[string]string, error) {
	x, err := exif.Decode(bytes.NewReader(tiffData))
	if err != nil {
		return nil, err
	}
	w := NewWalker()
	if err := x.Walk(w); err != nil {
		return nil, err
	}
	return w.Fields, nil
}
