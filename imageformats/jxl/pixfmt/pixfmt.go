// Package pixfmt maps a decoded JPEG XL basic-info record to the internal
// libjxl out-buffer layout and the image format the codec presents to its
// host, and the reverse mapping used when planning an encode.
package pixfmt

import (
	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

// Plan is the outcome of planning a decode: how libjxl should be asked to
// deliver pixels, and what the handler presents to callers once decoded.
type Plan struct {
	Wire        jxlengine.PixelFormat
	Input       rasterimage.Format // format allocated for the out-buffer
	Presentation rasterimage.Format // format returned to the caller
}

// HDRMode controls whether float/half-float branches are considered live,
// standing in for the original's build-time HDR_PRESERVATION switch.
type HDRMode bool

const (
	HDRDisabled HDRMode = false
	HDREnabled  HDRMode = true
)

// PlanDecode derives the decode-side pixel-format plan from a basic-info record,
// implementing the table in the governing design's ensureAllCounted
// section. gray is true when the source has one color channel and no
// alpha.
func PlanDecode(info jxlengine.BasicInfo, hdr HDRMode) Plan {
	hasAlpha := info.AlphaBits > 0
	gray := info.NumColorChannels == 1 && !hasAlpha

	if gray {
		if info.BitsPerSample <= 8 {
			return Plan{
				Wire:         jxlengine.PixelFormat{NumChannels: 1, DataType: jxlengine.TypeU8},
				Input:        rasterimage.Gray8,
				Presentation: rasterimage.Gray8,
			}
		}
		return Plan{
			Wire:         jxlengine.PixelFormat{NumChannels: 1, DataType: jxlengine.TypeU16},
			Input:        rasterimage.Gray16,
			Presentation: rasterimage.Gray16,
		}
	}

	isHDRCandidate := bool(hdr) && info.ExponentBitsPerSample > 0 && info.NumColorChannels == 3

	switch {
	case info.BitsPerSample <= 8:
		if hasAlpha {
			return Plan{
				Wire:         jxlengine.PixelFormat{NumChannels: 4, DataType: jxlengine.TypeU8},
				Input:        rasterimage.RGBA8,
				Presentation: rasterimage.RGBA8,
			}
		}
		return Plan{
			Wire:         jxlengine.PixelFormat{NumChannels: 3, DataType: jxlengine.TypeU8},
			Input:        rasterimage.RGB8,
			Presentation: rasterimage.RGB32,
		}
	case isHDRCandidate && info.BitsPerSample <= 16:
		return Plan{
			Wire:         jxlengine.PixelFormat{NumChannels: 4, DataType: jxlengine.TypeFloat16},
			Input:        rasterimage.RGBA16F,
			Presentation: presentationOrPad(rasterimage.RGBA16F, rasterimage.RGBX16F, hasAlpha),
		}
	case isHDRCandidate:
		return Plan{
			Wire:         jxlengine.PixelFormat{NumChannels: 4, DataType: jxlengine.TypeFloat},
			Input:        rasterimage.RGBA32F,
			Presentation: presentationOrPad(rasterimage.RGBA32F, rasterimage.RGBX32F, hasAlpha),
		}
	default:
		return Plan{
			Wire:         jxlengine.PixelFormat{NumChannels: 4, DataType: jxlengine.TypeU16},
			Input:        rasterimage.RGBA64,
			Presentation: presentationOrPad(rasterimage.RGBA64, rasterimage.RGBX64, hasAlpha),
		}
	}
}

func presentationOrPad(withAlpha, padded rasterimage.Format, hasAlpha bool) rasterimage.Format {
	if hasAlpha {
		return withAlpha
	}
	return padded
}
