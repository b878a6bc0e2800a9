package jxl

import (
	stdimage "image"
	"io"

	"github.com/jxlimg/codecs/colorspace"
	"github.com/jxlimg/codecs/imagecodec"
	"github.com/jxlimg/codecs/rasterimage"
)

var _ imagecodec.Writer = (*Handler)(nil)

// Write implements imagecodec.Writer by adapting a standard image.Image
// into a rasterimage.Image and delegating to Encode.
func (h *Handler) Write(w io.Writer, img stdimage.Image) error {
	src, err := fromStdImage(img)
	if err != nil {
		return err
	}
	if err := Encode(w, src, EncodeOptions{Quality: h.quality, Transformation: h.transformation}); err != nil {
		return h.fail(err, "")
	}
	return nil
}

// fromStdImage converts a subset of the standard library's concrete image
// types into a rasterimage.Image. Gray and RGBA results are tagged with the
// sRGB structured profile; a CMYK8 result carries no profile, so Encode
// rejects it with ErrEncoderConfig.
func fromStdImage(src stdimage.Image) (*rasterimage.Image, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch im := src.(type) {
	case *stdimage.Gray:
		out := rasterimage.New(rasterimage.Gray8, width, height)
		copy(out.Pix, im.Pix)
		out.Profile = colorspace.SRGB(true)
		return out, nil
	case *stdimage.Gray16:
		out := rasterimage.New(rasterimage.Gray16, width, height)
		copy(out.Pix, im.Pix)
		out.Profile = colorspace.SRGB(true)
		return out, nil
	case *stdimage.CMYK:
		out := rasterimage.New(rasterimage.CMYK8, width, height)
		copy(out.Pix, im.Pix)
		return out, nil // no profile: Encode's CMYK path requires an ICC profile
	default:
		out := rasterimage.New(rasterimage.RGBA8, width, height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				off := y*out.Stride() + x*4
				out.Pix[off+0] = byte(r >> 8)
				out.Pix[off+1] = byte(g >> 8)
				out.Pix[off+2] = byte(b >> 8)
				out.Pix[off+3] = byte(a >> 8)
			}
		}
		out.Profile = colorspace.SRGB(false)
		return out, nil
	}
}
