package pixfmt

import (
	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

// EncodePlan is the outcome of planning an encode from a source format:
// which intermediate rasterimage.Format the source is converted to, the
// wire pixel format libjxl receives, and the basic-info depth/float pair.
type EncodePlan struct {
	Intermediate rasterimage.Format
	Wire         jxlengine.PixelFormat
	SaveDepth    uint32
	SaveFloat    bool
	Gray         bool
}

// PlanEncode implements the §4.3.2 depth-selection table: given a source
// format, choose the intermediate presentation and wire layout the encoder
// submits to libjxl.
func PlanEncode(source rasterimage.Format) (EncodePlan, bool) {
	switch source {
	case rasterimage.RGBA32F, rasterimage.RGBX32F:
		return EncodePlan{
			Intermediate: rasterimage.RGBA32F,
			Wire:         jxlengine.PixelFormat{NumChannels: 3, DataType: jxlengine.TypeFloat},
			SaveDepth:    32,
			SaveFloat:    true,
		}, true
	case rasterimage.RGBA16F, rasterimage.RGBX16F:
		return EncodePlan{
			Intermediate: rasterimage.RGBA16F,
			Wire:         jxlengine.PixelFormat{NumChannels: 3, DataType: jxlengine.TypeFloat16},
			SaveDepth:    16,
			SaveFloat:    true,
		}, true
	case rasterimage.RGBA64, rasterimage.RGBX64:
		return EncodePlan{
			Intermediate: rasterimage.RGBA64,
			Wire:         jxlengine.PixelFormat{NumChannels: 3, DataType: jxlengine.TypeU16},
			SaveDepth:    16,
		}, true
	case rasterimage.Gray16:
		return EncodePlan{
			Intermediate: rasterimage.Gray16,
			Wire:         jxlengine.PixelFormat{NumChannels: 1, DataType: jxlengine.TypeU16},
			SaveDepth:    16,
			Gray:         true,
		}, true
	case rasterimage.Gray8:
		return EncodePlan{
			Intermediate: rasterimage.Gray8,
			Wire:         jxlengine.PixelFormat{NumChannels: 1, DataType: jxlengine.TypeU8},
			SaveDepth:    8,
			Gray:         true,
		}, true
	case rasterimage.RGB8, rasterimage.RGB32, rasterimage.RGBA8, rasterimage.ARGB32:
		return EncodePlan{
			Intermediate: rasterimage.RGBA8,
			Wire:         jxlengine.PixelFormat{NumChannels: 3, DataType: jxlengine.TypeU8},
			SaveDepth:    8,
		}, true
	default:
		return EncodePlan{}, false
	}
}
