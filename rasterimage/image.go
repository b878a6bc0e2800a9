// Package rasterimage is the pixel-buffer stand-in for the host image
// framework's QImage: a tagged raw buffer plus the handful of format
// conversions the JPEG XL and PFM codecs need on the way in and out of the
// external decode/encode calls.
package rasterimage

import (
	"fmt"

	"github.com/jxlimg/codecs/colorspace"
)

// Format enumerates every pixel layout the codecs read, write, or convert
// through. It mirrors the host framework's QImage::Format subset the
// original jxl.cpp switches on.
type Format int

const (
	FormatInvalid Format = iota
	Gray8
	Gray16
	RGB8
	RGB32   // packed 4-byte-per-pixel RGB, alpha byte unused
	RGBA8
	ARGB32
	RGBA64
	RGBX64  // packed 4-channel 16-bit storage, alpha channel unused
	RGBA16F
	RGBX16F
	RGBA32F
	RGBX32F
	CMYK8
)

// BytesPerPixel returns the storage stride of one pixel under f.
func (f Format) BytesPerPixel() int {
	switch f {
	case Gray8:
		return 1
	case Gray16:
		return 2
	case RGB8:
		return 3
	case RGB32, ARGB32:
		return 4
	case RGBA8:
		return 4
	case CMYK8:
		return 4
	case RGBA64, RGBX64:
		return 8
	case RGBA16F, RGBX16F:
		return 8
	case RGBA32F, RGBX32F:
		return 16
	default:
		return 0
	}
}

// HasAlpha reports whether f carries a live alpha channel (as opposed to an
// unused pad channel, e.g. RGB32/RGBX64).
func (f Format) HasAlpha() bool {
	switch f {
	case RGBA8, ARGB32, RGBA64, RGBA16F, RGBA32F:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	switch f {
	case Gray8:
		return "Gray8"
	case Gray16:
		return "Gray16"
	case RGB8:
		return "RGB8"
	case RGB32:
		return "RGB32"
	case RGBA8:
		return "RGBA8"
	case ARGB32:
		return "ARGB32"
	case RGBA64:
		return "RGBA64"
	case RGBX64:
		return "RGBX64"
	case RGBA16F:
		return "RGBA16F"
	case RGBX16F:
		return "RGBX16F"
	case RGBA32F:
		return "RGBA32F"
	case RGBX32F:
		return "RGBX32F"
	case CMYK8:
		return "CMYK8"
	default:
		return "Invalid"
	}
}

// Image is a tightly-packed raster buffer: Width*Height*Format.BytesPerPixel()
// bytes, row-major, no padding between scanlines. Handler code that needs
// scanline alignment for a libjxl out-buffer allocates its own byte slice
// instead of going through Image.
type Image struct {
	Width, Height int
	Format        Format
	Pix           []byte
	Profile       colorspace.Profile

	// Metadata holds text metadata entries attached from container boxes,
	// e.g. the XMP payload keyed "XML:com.adobe.xmp".
	Metadata []MetadataEntry

	// Exif-derived fields, applied by the Exif helper collaborator when a
	// source stream carries an Exif box.
	ExifOrientation int
	XResolution     float64
	YResolution     float64
}

// MetadataEntry is one key/value text metadata pair attached to an Image.
type MetadataEntry struct {
	Key   string
	Value []byte
}

// New allocates a zeroed Image of the given format and dimensions.
func New(format Format, width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]byte, width*height*format.BytesPerPixel()),
	}
}

// Stride returns the byte length of one scanline.
func (img *Image) Stride() int { return img.Width * img.Format.BytesPerPixel() }

func (img *Image) String() string {
	return fmt.Sprintf("rasterimage.Image{%dx%d %s}", img.Width, img.Height, img.Format)
}
