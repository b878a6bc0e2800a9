package jxl

import (
	stdimage "image"
	"image/color"

	"github.com/jxlimg/codecs/imagecodec"
	"github.com/jxlimg/codecs/rasterimage"
)

var _ imagecodec.MultiImageReader = (*Handler)(nil)

// Read implements the §4.2.5 read entry point: if the cache is fresh for
// the current index, the cached image is returned and the cursor advances
// without decoding; otherwise a decode is performed.
func (h *Handler) Read() (stdimage.Image, error) {
	if err := h.ensureAllCounted(); err != nil {
		return nil, err
	}
	if h.state == stateError {
		return nil, ErrDecoderInit
	}

	if h.cache == cacheFresh {
		img := h.currentImage
		if err := h.jumpToNextImage(); err != nil {
			return nil, err
		}
		return toStdImage(img), nil
	}

	if err := h.decodeOneFrame(); err != nil {
		return nil, err
	}
	return toStdImage(h.currentImage), nil
}

// ExifPayload returns the trimmed TIFF stream extracted from an "Exif" box,
// or nil if the stream had none or box decoding is disabled.
func (h *Handler) ExifPayload() []byte {
	if err := h.ensureAllCounted(); err != nil {
		return nil
	}
	return h.exif
}

// ImageCount implements imagecodec.MultiImageReader.
func (h *Handler) ImageCount() int {
	if err := h.ensureAllCounted(); err != nil {
		return 0
	}
	return len(h.frameDelays)
}

// LoopCount implements imagecodec.MultiImageReader.
func (h *Handler) LoopCount() int {
	if err := h.ensureAllCounted(); err != nil {
		return 0
	}
	return int(h.basicInfo.Animation.NumLoops)
}

// CurrentImageNumber implements imagecodec.MultiImageReader.
func (h *Handler) CurrentImageNumber() int {
	if h.state == stateNotParsed || h.state == stateError {
		return -1
	}
	return h.currentIndex
}

// NextImageDelay implements imagecodec.MultiImageReader.
func (h *Handler) NextImageDelay() int {
	if err := h.ensureAllCounted(); err != nil {
		return 0
	}
	if h.currentIndex >= len(h.frameDelays) {
		return 0
	}
	return h.frameDelays[h.currentIndex]
}

// JumpToImage implements imagecodec.MultiImageReader.
func (h *Handler) JumpToImage(n int) error {
	if err := h.ensureAllCounted(); err != nil {
		return err
	}
	return h.jumpToImage(n)
}

// JumpToNextImage implements imagecodec.MultiImageReader.
func (h *Handler) JumpToNextImage() error {
	if err := h.ensureAllCounted(); err != nil {
		return err
	}
	return h.jumpToNextImage()
}

// toStdImage adapts a rasterimage.Image to the standard image.Image
// interface for callers using the plain image.RegisterFormat surface.
func toStdImage(img *rasterimage.Image) stdimage.Image {
	return &stdImageAdapter{img: img}
}

// stdImageAdapter implements image.Image by indexing into the tightly
// packed rasterimage.Image buffer; it does not copy pixel data.
type stdImageAdapter struct{ img *rasterimage.Image }

func (a *stdImageAdapter) ColorModel() color.Model {
	switch a.img.Format {
	case rasterimage.Gray8, rasterimage.Gray16:
		return color.GrayModel
	default:
		return color.RGBAModel
	}
}

func (a *stdImageAdapter) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, a.img.Width, a.img.Height)
}

func (a *stdImageAdapter) At(x, y int) color.Color {
	img := a.img
	stride := img.Stride()
	bpp := img.Format.BytesPerPixel()
	off := y*stride + x*bpp
	switch img.Format {
	case rasterimage.Gray8:
		return color.Gray{Y: img.Pix[off]}
	case rasterimage.Gray16:
		return color.Gray16{Y: uint16(img.Pix[off])<<8 | uint16(img.Pix[off+1])}
	case rasterimage.RGBA8:
		return color.RGBA{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: img.Pix[off+3]}
	case rasterimage.ARGB32:
		a, r, g, b := rasterimage.ReadARGB32(img.Pix[off : off+4])
		return color.RGBA{R: r, G: g, B: b, A: a}
	case rasterimage.RGB32:
		_, r, g, b := rasterimage.ReadARGB32(img.Pix[off : off+4])
		return color.RGBA{R: r, G: g, B: b, A: 255}
	case rasterimage.RGB8:
		return color.RGBA{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: 255}
	case rasterimage.CMYK8:
		c, m, y2, k := img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3]
		return color.CMYK{C: c, M: m, Y: y2, K: k}
	default:
		return color.RGBA{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: 255}
	}
}
