package jxl

import (
	"github.com/jxlimg/codecs/colorspace"
	"github.com/jxlimg/codecs/imagecodec"
	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

// encodeCMYK implements §4.3.1: CMYK writing is always lossless, requires a
// valid ICC profile, and splits the source into an inverted CMY plane and
// K plane before handoff.
func encodeCMYK(enc encoderBackend, img *rasterimage.Image, transform imagecodec.Transformation) error {
	if img.Profile.Kind != colorspace.KindICC || len(img.Profile.ICC) == 0 {
		return ErrEncoderConfig
	}

	info := jxlengine.BasicInfo{
		Xsize:               uint32(img.Width),
		Ysize:               uint32(img.Height),
		BitsPerSample:       8,
		NumColorChannels:    3,
		NumExtraChannels:    1,
		UsesOriginalProfile: true,
		Orientation:         orientationToJxl(transform),
		Animation:           jxlengine.Animation{TpsNumerator: 10, TpsDenominator: 1},
	}
	if err := enc.SetBasicInfo(info); err != nil {
		return err
	}
	if err := enc.SetBlackExtraChannelInfo(8, 0); err != nil {
		return err
	}
	if err := enc.SetICCProfile(img.Profile.ICC); err != nil {
		return err
	}

	emitMetadataBoxes(enc, buildExifTIFF(img), firstXMP(img))
	enc.CloseBoxes()

	enc.NewFrameSettings()
	enc.SetFrameLossless()

	cmy, k := rasterimage.SplitCMYK(img)
	cmyFormat := jxlengine.PixelFormat{NumChannels: 3, DataType: jxlengine.TypeU8, Align: img.Width * 3}
	if err := enc.AddImageFrame(cmyFormat, cmy); err != nil {
		return err
	}
	kFormat := jxlengine.PixelFormat{NumChannels: 1, DataType: jxlengine.TypeU8, Align: img.Width}
	if err := enc.SetExtraChannelBuffer(kFormat, k, 0); err != nil {
		return err
	}
	enc.CloseFrames()
	return nil
}

func firstXMP(img *rasterimage.Image) []byte {
	for _, m := range img.Metadata {
		if m.Key == xmpMetadataKey {
			return m.Value
		}
	}
	return nil
}
