package jxl

import (
	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

// decodeCMYKFrame allocates a CMY plane, a K plane, and (when present) an A
// plane, registers them as the main out-buffer and extra-channel buffers,
// runs to FULL_IMAGE, then interleaves and ink-inverts into a CMYK8 image.
// When alpha is present the result is converted straight to ARGB32, with
// the alpha byte overwritten from the decoded A plane.
func (h *Handler) decodeCMYKFrame() (*rasterimage.Image, error) {
	width, height := int(h.basicInfo.Xsize), int(h.basicInfo.Ysize)
	n := width * height

	pool := rasterimage.SharedPool()
	cmy := pool.Get(n * 3)
	k := pool.Get(n)
	var alpha []byte

	cmyFormat := jxlengine.PixelFormat{NumChannels: 3, DataType: jxlengine.TypeU8, Align: width * 3}
	if err := h.dec.SetImageOutBuffer(cmyFormat, cmy); err != nil {
		return nil, h.fail(ErrAllocFailure, err.Error())
	}
	kFormat := jxlengine.PixelFormat{NumChannels: 1, DataType: jxlengine.TypeU8, Align: width}
	if err := h.dec.SetExtraChannelBuffer(kFormat, k, h.cmyk.blackChannelID); err != nil {
		return nil, h.fail(ErrAllocFailure, err.Error())
	}
	if h.cmyk.hasAlpha {
		alpha = pool.Get(n)
		aFormat := jxlengine.PixelFormat{NumChannels: 1, DataType: jxlengine.TypeU8, Align: width}
		if err := h.dec.SetExtraChannelBuffer(aFormat, alpha, h.cmyk.alphaChannelID); err != nil {
			return nil, h.fail(ErrAllocFailure, err.Error())
		}
	}

	if err := h.runToFullImage(); err != nil {
		return nil, err
	}
	h.dec.ReleaseOutBuffers()

	cmykImg := rasterimage.InterleaveCMYK(cmy, k, alpha, width, height)
	cmykImg.Profile = h.profile
	pool.Put(cmy)
	pool.Put(k)

	if h.cmyk.hasAlpha {
		out := rasterimage.CMYKToARGB(cmykImg, alpha)
		pool.Put(alpha)
		return out, nil
	}
	return cmykImg, nil
}
