package pixfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

func TestPlanDecodeGray8(t *testing.T) {
	p := PlanDecode(jxlengine.BasicInfo{NumColorChannels: 1, BitsPerSample: 8}, HDRDisabled)
	assert.Equal(t, rasterimage.Gray8, p.Presentation)
	assert.Equal(t, jxlengine.TypeU8, p.Wire.DataType)
}

func TestPlanDecodeGray16(t *testing.T) {
	p := PlanDecode(jxlengine.BasicInfo{NumColorChannels: 1, BitsPerSample: 16}, HDRDisabled)
	assert.Equal(t, rasterimage.Gray16, p.Presentation)
}

func TestPlanDecodeRGB8NoAlphaPadsToRGB32(t *testing.T) {
	p := PlanDecode(jxlengine.BasicInfo{NumColorChannels: 3, BitsPerSample: 8}, HDRDisabled)
	assert.Equal(t, rasterimage.RGB8, p.Input)
	assert.Equal(t, rasterimage.RGB32, p.Presentation)
	assert.Equal(t, 3, p.Wire.NumChannels)
}

func TestPlanDecodeRGBA8(t *testing.T) {
	p := PlanDecode(jxlengine.BasicInfo{NumColorChannels: 3, BitsPerSample: 8, AlphaBits: 8}, HDRDisabled)
	assert.Equal(t, rasterimage.RGBA8, p.Presentation)
	assert.Equal(t, 4, p.Wire.NumChannels)
}

func TestPlanDecodeHDRRequiresEnabledAndExponentBits(t *testing.T) {
	info := jxlengine.BasicInfo{NumColorChannels: 3, BitsPerSample: 32, ExponentBitsPerSample: 8}
	disabled := PlanDecode(info, HDRDisabled)
	assert.Equal(t, jxlengine.TypeU16, disabled.Wire.DataType, "HDR disabled should fall back to integer output")

	enabled := PlanDecode(info, HDREnabled)
	assert.Equal(t, jxlengine.TypeFloat, enabled.Wire.DataType)
	assert.Equal(t, rasterimage.RGBX32F, enabled.Presentation, "no alpha should pad to RGBX32F")

	noExponent := PlanDecode(jxlengine.BasicInfo{NumColorChannels: 3, BitsPerSample: 32}, HDREnabled)
	assert.Equal(t, jxlengine.TypeU16, noExponent.Wire.DataType, "no exponent bits should stay integer")
}

func TestPlanDecodeHDRWithAlphaKeepsAlphaChannel(t *testing.T) {
	info := jxlengine.BasicInfo{NumColorChannels: 3, BitsPerSample: 32, ExponentBitsPerSample: 8, AlphaBits: 32}
	p := PlanDecode(info, HDREnabled)
	assert.Equal(t, rasterimage.RGBA32F, p.Presentation)
}

func TestPlanDecodeInt16Bit(t *testing.T) {
	info := jxlengine.BasicInfo{NumColorChannels: 3, BitsPerSample: 16}
	p := PlanDecode(info, HDRDisabled)
	assert.Equal(t, jxlengine.TypeU16, p.Wire.DataType)
	assert.Equal(t, rasterimage.RGBX64, p.Presentation)
}

func TestPlanEncodeKnownFormats(t *testing.T) {
	cases := []struct {
		src       rasterimage.Format
		saveDepth uint32
		saveFloat bool
		gray      bool
	}{
		{rasterimage.RGBA32F, 32, true, false},
		{rasterimage.RGBA16F, 16, true, false},
		{rasterimage.RGBA64, 16, false, false},
		{rasterimage.Gray16, 16, false, true},
		{rasterimage.Gray8, 8, false, true},
		{rasterimage.RGBA8, 8, false, false},
	}
	for _, c := range cases {
		plan, ok := PlanEncode(c.src)
		assert.True(t, ok, c.src.String())
		assert.Equal(t, c.saveDepth, plan.SaveDepth, c.src.String())
		assert.Equal(t, c.saveFloat, plan.SaveFloat, c.src.String())
		assert.Equal(t, c.gray, plan.Gray, c.src.String())
	}
}

func TestPlanEncodeUnknownFormat(t *testing.T) {
	_, ok := PlanEncode(rasterimage.CMYK8)
	assert.False(t, ok, "CMYK8 has its own dedicated encode path")
}
