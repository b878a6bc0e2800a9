package jxl

import (
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/jxlimg/codecs/colorspace"
	"github.com/jxlimg/codecs/imagecodec"
	"github.com/jxlimg/codecs/imageformats/jxl/pixfmt"
	"github.com/jxlimg/codecs/internal/exifmeta"
	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

// EncodeOptions configures Encode. Quality is clamped into 0..100 by
// clampQuality; Transformation selects one of the eight orientation codes.
type EncodeOptions struct {
	Quality        int
	Transformation imagecodec.Transformation
}

// Encode writes img as a JPEG XL container to w. Every CMYK8 image goes to
// the CMYK-specific path, which returns ErrEncoderConfig unless img carries
// an ICC profile; every other format goes to the RGB/grayscale path.
func Encode(w io.Writer, img *rasterimage.Image, opts EncodeOptions) error {
	if img.Width <= 0 || img.Height <= 0 {
		return ErrEncoderConfig
	}
	if dimensionsExceedCap(uint32(img.Width), uint32(img.Height)) {
		return ErrOutOfRange
	}
	quality := clampQuality(opts.Quality)

	enc, err := newEncoderBackend()
	if err != nil {
		return ErrEncoderConfig
	}
	defer enc.Close()

	if numThreads := writeThreadCount(); numThreads > 1 {
		if err := enc.AttachParallelRunner(numThreads); err != nil {
			log.Warnf("jxl: encoder parallel runner attach failed: %v", err)
		}
	}
	enc.UseContainerAndBoxes()

	if img.Format == rasterimage.CMYK8 {
		if err := encodeCMYK(enc, img, opts.Transformation); err != nil {
			return err
		}
	} else {
		if err := encodeRGBOrGray(enc, img, quality, opts.Transformation); err != nil {
			return err
		}
	}

	out, err := enc.ProcessOutput()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// encodeRGBOrGray implements §4.3.2: plan the intermediate format, emit
// basic info, color encoding, metadata boxes, and the single frame.
func encodeRGBOrGray(enc encoderBackend, img *rasterimage.Image, quality int, transform imagecodec.Transformation) error {
	plan, ok := pixfmt.PlanEncode(img.Format)
	if !ok {
		return ErrEncoderConfig
	}

	info := jxlengine.BasicInfo{
		Xsize:                 uint32(img.Width),
		Ysize:                 uint32(img.Height),
		BitsPerSample:         plan.SaveDepth,
		NumColorChannels:      1,
		UsesOriginalProfile:   quality == 100,
		Orientation:           orientationToJxl(transform),
		Animation:             jxlengine.Animation{TpsNumerator: 10, TpsDenominator: 1},
	}
	if !plan.Gray {
		info.NumColorChannels = 3
	}
	if plan.SaveFloat {
		info.ExponentBitsPerSample = 8
	}
	if img.Format.HasAlpha() {
		info.AlphaBits = 8
		if plan.SaveFloat {
			info.AlphaBits = plan.SaveDepth
		}
	}
	if err := enc.SetBasicInfo(info); err != nil {
		return err
	}

	if err := emitColorEncoding(enc, img.Profile, plan.Gray, quality); err != nil {
		return err
	}
	emitMetadataBoxes(enc, buildExifTIFF(img), firstXMP(img))
	enc.CloseBoxes()

	enc.NewFrameSettings()
	if quality == 100 {
		enc.SetFrameLossless()
	} else {
		enc.SetFrameDistance(quality)
	}

	pixels := rasterimage.PackRGBXToRGB(img)
	wire := plan.Wire
	if wire.Align == 0 {
		wire.Align = img.Stride()
	}
	if err := enc.AddImageFrame(wire, pixels); err != nil {
		return err
	}
	enc.CloseFrames()
	return nil
}

// emitColorEncoding implements the "quality==100 keeps the source ICC
// profile; otherwise try structured encoding first, fall back to ICC"
// rule.
func emitColorEncoding(enc encoderBackend, profile colorspace.Profile, gray bool, quality int) error {
	if quality == 100 {
		if profile.Kind == colorspace.KindICC && len(profile.ICC) > 0 {
			return enc.SetICCProfile(profile.ICC)
		}
		return enc.SetColorEncoding(jxlengine.ColorEncoding{
			ColorSpace: grayOrRGB(gray),
			WhitePoint: jxlengine.WhitePointD65,
			Primaries:  jxlengine.PrimariesSRGB,
			Transfer:   jxlengine.TransferSRGB,
		}, gray)
	}

	ce, ok := structuredFromProfile(profile, gray)
	if ok {
		return enc.SetColorEncoding(ce, gray)
	}
	if profile.Kind == colorspace.KindICC && len(profile.ICC) > 0 {
		return enc.SetICCProfile(profile.ICC)
	}
	return enc.SetColorEncoding(jxlengine.ColorEncoding{
		ColorSpace: grayOrRGB(gray),
		WhitePoint: jxlengine.WhitePointD65,
		Primaries:  jxlengine.PrimariesSRGB,
		Transfer:   jxlengine.TransferSRGB,
	}, gray)
}

func grayOrRGB(gray bool) jxlengine.ColorSpace {
	if gray {
		return jxlengine.ColorSpaceGray
	}
	return jxlengine.ColorSpaceRGB
}

// structuredFromProfile maps a structured colorspace.Profile onto libjxl's
// structured JxlColorEncoding, or reports ok=false when the profile is an
// opaque ICC blob or its transfer function can't be expressed structurally.
func structuredFromProfile(p colorspace.Profile, gray bool) (jxlengine.ColorEncoding, bool) {
	if p.Kind != colorspace.KindStructured {
		return jxlengine.ColorEncoding{}, false
	}
	ce := jxlengine.ColorEncoding{ColorSpace: grayOrRGB(gray), WhitePoint: jxlengine.WhitePointD65}
	switch p.Primaries {
	case colorspace.PrimariesSRGB:
		ce.Primaries = jxlengine.PrimariesSRGB
	case colorspace.PrimariesDCIP3D65:
		ce.Primaries = jxlengine.PrimariesP3
	case colorspace.PrimariesBT2020:
		ce.Primaries = jxlengine.Primaries2100
	case colorspace.PrimariesAdobeRGB, colorspace.PrimariesProPhotoRGB:
		// libjxl has no enumerated JXL_PRIMARIES_* for these gamuts; encode
		// their standard chromaticities directly via JXL_PRIMARIES_CUSTOM,
		// matching the original's explicit primaries_*_xy assignment.
		red, green, blue, ok := colorspace.StandardPrimaries(p.Primaries)
		if !ok {
			return jxlengine.ColorEncoding{}, false
		}
		ce.Primaries = jxlengine.PrimariesCustom
		ce.PrimariesRedXY = [2]float64{red.X, red.Y}
		ce.PrimariesGreenXY = [2]float64{green.X, green.Y}
		ce.PrimariesBlueXY = [2]float64{blue.X, blue.Y}
	default:
		return jxlengine.ColorEncoding{}, false
	}
	switch p.Transfer {
	case colorspace.TransferLinear:
		ce.Transfer = jxlengine.TransferLinear
	case colorspace.TransferSRGB:
		ce.Transfer = jxlengine.TransferSRGB
	case colorspace.TransferGamma:
		if p.Gamma <= 0 {
			return jxlengine.ColorEncoding{}, false
		}
		ce.Transfer = jxlengine.TransferGamma
		ce.Gamma = p.Gamma
	default:
		ce.Transfer = jxlengine.TransferSRGB
	}
	return ce, true
}

// buildExifTIFF constructs a minimal TIFF stream from an image's Exif
// fields, or nil if none are set.
func buildExifTIFF(img *rasterimage.Image) []byte {
	return exifmeta.ToByteArray(exifmeta.WriteFields{
		Orientation: img.ExifOrientation,
		XResolution: img.XResolution,
		YResolution: img.YResolution,
	})
}

// emitMetadataBoxes attaches Exif (with its 4-byte zero offset prefix) and
// raw XMP boxes, both with the "do-not-compress" flag AddBox already sets.
func emitMetadataBoxes(enc encoderBackend, exifTIFF, xmp []byte) {
	if len(exifTIFF) > 0 {
		if err := enc.AddBox("Exif", exifmeta.WrapBox(exifTIFF)); err != nil {
			log.Warnf("jxl: failed to add Exif box: %v", err)
		}
	}
	if len(xmp) > 0 {
		if err := enc.AddBox("xml ", xmp); err != nil {
			log.Warnf("jxl: failed to add XMP box: %v", err)
		}
	}
}
