package jxl

import (
	log "github.com/sirupsen/logrus"

	"github.com/jxlimg/codecs/colorspace"
	"github.com/jxlimg/codecs/imageformats/jxl/pixfmt"
	"github.com/jxlimg/codecs/internal/jxlengine"
)

// ensureAllCounted drives the decoder from BASIC_INFO through the color
// encoding event and every frame header, populating frameDelays, the
// color profile, the CMYK plan, and (when boxDecoding is enabled) exif/xmp,
// then rewinds so the first decodeOneFrame starts from frame 0 and latches
// stateSuccess, so later calls return immediately.
func (h *Handler) ensureAllCounted() error {
	if err := h.ensureParsed(); err != nil {
		return err
	}
	if h.state != stateBasicInfoParsed {
		return nil
	}

	simple := !h.basicInfo.UsesOriginalProfile && !h.basicInfo.HaveAnimation
	if simple {
		gray := h.basicInfo.NumColorChannels == 1 && h.basicInfo.AlphaBits == 0
		if err := h.dec.SetPreferredColorProfile(gray); err != nil {
			log.Warnf("jxl: SetPreferredColorProfile failed: %v", err)
		}
	}
	if !h.dec.SetDefaultCms() {
		log.Warn("jxl: no default CMS available, continuing without one")
	}

	status := h.dec.ProcessInput()
	if status != jxlengine.StatusColorEncoding {
		return h.fail(ErrDecoderInit, "expected color encoding event")
	}
	h.profile = h.extractColorProfile()

	h.plan = pixfmt.PlanDecode(h.basicInfo, pixfmt.HDRMode(h.hdrPreservation))
	h.detectCMYK()

	if err := h.countFrames(); err != nil {
		return err
	}

	if h.boxDecoding && h.basicInfo.HaveContainer {
		if err := h.scanContainer(); err != nil {
			log.Warnf("jxl: container box scan failed: %v", err)
		}
	}

	if err := h.rewind(); err != nil {
		return err
	}
	h.state = stateSuccess
	return nil
}

// extractColorProfile prefers a structured sRGB match over an ICC blob,
// per the "prefer a structured sRGB match" rule.
func (h *Handler) extractColorProfile() colorspace.Profile {
	ce, ok := h.dec.GetColorEncoding()
	if ok && isStructuredSRGB(ce) {
		return colorspace.SRGB(ce.ColorSpace == jxlengine.ColorSpaceGray)
	}
	icc, err := h.dec.GetICCProfile()
	if err != nil || len(icc) == 0 {
		if err != nil {
			log.Warnf("jxl: ICC profile fetch failed: %v", err)
		}
		return colorspace.SRGB(false)
	}
	return colorspace.FromICC(icc)
}

func isStructuredSRGB(ce jxlengine.ColorEncoding) bool {
	if ce.ColorSpace == jxlengine.ColorSpaceGray {
		return ce.WhitePoint == jxlengine.WhitePointD65 && ce.Transfer == jxlengine.TransferSRGB
	}
	return ce.WhitePoint == jxlengine.WhitePointD65 &&
		ce.Primaries == jxlengine.PrimariesSRGB &&
		ce.Transfer == jxlengine.TransferSRGB
}

// countFrames loops on JXL_DEC_FRAME events, recording per-frame delays
// until a frame header marks IsLast.
func (h *Handler) countFrames() error {
	h.frameDelays = h.frameDelays[:0]
	for {
		status := h.dec.ProcessInput()
		switch status {
		case jxlengine.StatusFrame:
			fh, err := h.dec.GetFrameHeader()
			if err != nil {
				return h.fail(ErrDecoderInit, err.Error())
			}
			h.frameDelays = append(h.frameDelays, delayMillis(fh.Duration, h.basicInfo.Animation))
			if fh.IsLast {
				goto done
			}
		case jxlengine.StatusNeedMoreInput:
			return h.fail(ErrTruncated, "need more input while counting frames")
		default:
			return h.fail(ErrDecoderInit, "unexpected status while counting frames")
		}
	}
done:
	if len(h.frameDelays) == 0 {
		h.frameDelays = append(h.frameDelays, 0)
	}
	if len(h.frameDelays) == 1 {
		h.frameDelays[0] = 0
		h.basicInfo.HaveAnimation = false
	}
	return nil
}

// delayMillis implements round(1000 * duration * tps_denominator / tps_numerator),
// zero when tps_numerator == 0.
func delayMillis(duration uint32, anim jxlengine.Animation) int {
	if anim.TpsNumerator == 0 {
		return 0
	}
	num := 1000.0 * float64(duration) * float64(anim.TpsDenominator)
	return int(num/float64(anim.TpsNumerator) + 0.5)
}

// detectCMYK scans extra-channel infos for the first BLACK channel under an
// RGB basic-info with a CMYK colorspace (invariant 5: is_cmyk implies the
// color profile's model is CMYK). A BLACK-without-CMYK or CMYK-without-BLACK
// mismatch is logged and treated as "not CMYK", never a fatal error.
func (h *Handler) detectCMYK() {
	var blackID uint32 = ^uint32(0)
	var alphaID uint32
	hasAlpha := false
	for i := uint32(0); i < h.basicInfo.NumExtraChannels; i++ {
		info, err := h.dec.GetExtraChannelInfo(i)
		if err != nil {
			log.Warnf("jxl: extra channel info fetch failed: %v", err)
			continue
		}
		if info.Type == jxlengine.ChannelBlack && blackID == ^uint32(0) {
			blackID = i
		}
		if info.Type == jxlengine.ChannelAlpha && !hasAlpha && blackID != ^uint32(0) && i > blackID {
			alphaID = i
			hasAlpha = true
		}
	}
	hasBlack := blackID != ^uint32(0)
	isCMYKColorspace := h.basicInfo.NumColorChannels == 3 &&
		h.basicInfo.UsesOriginalProfile &&
		h.profile.Model == colorspace.ModelCMYK

	switch {
	case hasBlack && !isCMYKColorspace:
		log.Warnf("jxl: BLACK extra channel present but color profile is not CMYK, ignoring")
		return
	case !hasBlack && isCMYKColorspace:
		log.Warnf("jxl: color profile is CMYK but no BLACK extra channel present, ignoring")
		return
	case !hasBlack:
		return
	}

	h.cmyk = cmykPlan{
		isCMYK:         true,
		blackChannelID: blackID,
		alphaChannelID: alphaID,
		hasAlpha:       hasAlpha,
	}
}
