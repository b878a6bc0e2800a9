package jxl

import (
	"github.com/jxlimg/codecs/internal/exifmeta"
	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

const xmpMetadataKey = "XML:com.adobe.xmp"

// decodeOneFrame emits the next frame into h.currentImage. Precondition:
// state is stateBasicInfoParsed or beyond and ensureAllCounted has run.
func (h *Handler) decodeOneFrame() error {
	var img *rasterimage.Image
	var err error
	if h.cmyk.isCMYK {
		img, err = h.decodeCMYKFrame()
	} else {
		img, err = h.decodeSimpleFrame()
	}
	if err != nil {
		return err
	}

	if len(h.xmp) > 0 {
		img.Metadata = append(img.Metadata, rasterimage.MetadataEntry{Key: xmpMetadataKey, Value: h.xmp})
	}
	if len(h.exif) > 0 {
		if meta, err := exifmeta.Decode(h.exif); err == nil {
			img.ExifOrientation = meta.Orientation
			img.XResolution = meta.XResolution
			img.YResolution = meta.YResolution
		}
	}

	h.currentImage = img
	h.advanceCursor()
	return nil
}

// decodeSimpleFrame allocates an image of plan.Input dimensions, hands the
// decoder its backing buffer with align=stride, and converts to the
// presentation format if the two differ.
func (h *Handler) decodeSimpleFrame() (*rasterimage.Image, error) {
	width, height := int(h.basicInfo.Xsize), int(h.basicInfo.Ysize)
	buf := &rasterimage.Image{
		Width:  width,
		Height: height,
		Format: h.plan.Input,
		Pix:    rasterimage.SharedPool().Get(width * height * h.plan.Input.BytesPerPixel()),
	}
	wire := h.plan.Wire
	wire.Align = buf.Stride()

	if err := h.dec.SetImageOutBuffer(wire, buf.Pix); err != nil {
		return nil, h.fail(ErrAllocFailure, err.Error())
	}

	if err := h.runToFullImage(); err != nil {
		return nil, err
	}
	h.dec.ReleaseOutBuffers()

	buf.Profile = h.profile
	if h.plan.Presentation != h.plan.Input {
		out := rasterimage.ToPresentation(buf, h.plan.Presentation)
		rasterimage.SharedPool().Put(buf.Pix)
		return out, nil
	}
	return buf, nil
}

// runToFullImage drives ProcessInput until FULL_IMAGE, translating
// NEED_MORE_INPUT into ErrTruncated.
func (h *Handler) runToFullImage() error {
	for {
		status := h.dec.ProcessInput()
		switch status {
		case jxlengine.StatusFullImage:
			return nil
		case jxlengine.StatusNeedMoreInput:
			return h.fail(ErrTruncated, "need more input before full image")
		case jxlengine.StatusFrame:
			continue
		default:
			return h.fail(ErrDecoderInit, "unexpected status while decoding frame")
		}
	}
}

// advanceCursor records the just-decoded index as fresh and advances the
// cursor, latching Finished on wrap-around (rewinding first) or after any
// static-image decode, and Success otherwise.
func (h *Handler) advanceCursor() {
	h.cache = cacheFresh
	if !h.basicInfo.HaveAnimation {
		h.state = stateFinished
		return
	}
	if h.currentIndex+1 >= len(h.frameDelays) {
		h.rewind()
		h.state = stateFinished
		return
	}
	h.currentIndex++
	h.cache = cacheStale
	h.state = stateSuccess
}
