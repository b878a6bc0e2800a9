package jxl

import (
	"github.com/jxlimg/codecs/imagecodec"
	"github.com/jxlimg/codecs/internal/jxlengine"
)

// clampQuality maps any integer into 0..100: negative resets to the
// default 90, values above 100 clamp to 100 (lossless).
func clampQuality(q int) int {
	switch {
	case q < 0:
		return 90
	case q > 100:
		return 100
	default:
		return q
	}
}

// orientationToJxl maps the eight Transformation values to their
// JxlOrientation codes.
func orientationToJxl(t imagecodec.Transformation) jxlengine.Orientation {
	switch t {
	case imagecodec.TransformationFlipHorizontal:
		return jxlengine.OrientFlipHorizontal
	case imagecodec.TransformationRotate180:
		return jxlengine.OrientRotate180
	case imagecodec.TransformationFlipVertical:
		return jxlengine.OrientFlipVertical
	case imagecodec.TransformationTranspose:
		return jxlengine.OrientTranspose
	case imagecodec.TransformationRotate90:
		return jxlengine.OrientRotate90CW
	case imagecodec.TransformationTransposeFlip:
		return jxlengine.OrientAntiTranspose
	case imagecodec.TransformationRotate270:
		return jxlengine.OrientRotate90CCW
	default:
		return jxlengine.OrientIdentity
	}
}

// orientationFromJxl is the read-side inverse of orientationToJxl.
func orientationFromJxl(o jxlengine.Orientation) imagecodec.Transformation {
	switch o {
	case jxlengine.OrientFlipHorizontal:
		return imagecodec.TransformationFlipHorizontal
	case jxlengine.OrientRotate180:
		return imagecodec.TransformationRotate180
	case jxlengine.OrientFlipVertical:
		return imagecodec.TransformationFlipVertical
	case jxlengine.OrientTranspose:
		return imagecodec.TransformationTranspose
	case jxlengine.OrientRotate90CW:
		return imagecodec.TransformationRotate90
	case jxlengine.OrientAntiTranspose:
		return imagecodec.TransformationTransposeFlip
	case jxlengine.OrientRotate90CCW:
		return imagecodec.TransformationRotate270
	default:
		return imagecodec.TransformationNone
	}
}

// Option implements imagecodec.OptionSource.
func (h *Handler) Option(name string) (any, bool) {
	switch name {
	case imagecodec.OptionQuality:
		return h.quality, true
	case imagecodec.OptionSize:
		if err := h.ensureParsed(); err != nil {
			return nil, false
		}
		return [2]int{int(h.basicInfo.Xsize), int(h.basicInfo.Ysize)}, true
	case imagecodec.OptionAnimation:
		if err := h.ensureParsed(); err != nil {
			return nil, false
		}
		return h.basicInfo.HaveAnimation, true
	case imagecodec.OptionImageTransformation:
		return int(orientationFromJxl(h.basicInfo.Orientation)), true
	default:
		return nil, false
	}
}

// SetOption implements imagecodec.OptionSource.
func (h *Handler) SetOption(name string, value any) error {
	switch name {
	case imagecodec.OptionQuality:
		q, ok := value.(int)
		if !ok {
			return imagecodec.ErrUnsupportedOption
		}
		h.quality = clampQuality(q)
		return nil
	case imagecodec.OptionImageTransformation:
		t, ok := value.(imagecodec.Transformation)
		if !ok {
			return imagecodec.ErrUnsupportedOption
		}
		h.transformation = t
		return nil
	default:
		return imagecodec.ErrUnsupportedOption
	}
}

// SupportsOption implements imagecodec.OptionSource.
func (h *Handler) SupportsOption(name string) bool {
	switch name {
	case imagecodec.OptionQuality, imagecodec.OptionSize, imagecodec.OptionAnimation, imagecodec.OptionImageTransformation:
		return true
	default:
		return false
	}
}
