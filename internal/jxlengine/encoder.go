package jxlengine

/*
#cgo pkg-config: libjxl libjxl_threads
#include <stdlib.h>
#include <jxl/encode.h>
#include <jxl/thread_parallel_runner.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

// Encoder wraps a *JxlEncoder plus the frame-settings object created for
// the single frame this codec ever encodes (spec.md covers single-frame
// writing only, per §4.3's note on the animation defaults).
type Encoder struct {
	ptr      *C.JxlEncoder
	settings *C.JxlEncoderFrameSettings
	runner   *ParallelRunner
}

// NewEncoder allocates a JxlEncoder. Returns ErrCreate on failure.
func NewEncoder() (*Encoder, error) {
	ptr := C.JxlEncoderCreate(nil)
	if ptr == nil {
		return nil, ErrCreate
	}
	return &Encoder{ptr: ptr}, nil
}

// AttachParallelRunner mirrors the write-side pool sizing policy,
// clamp(cores, 1, 64); a pool is only installed when numThreads > 1.
func (e *Encoder) AttachParallelRunner(numThreads int) error {
	if numThreads <= 1 {
		return nil
	}
	r, err := newParallelRunner(numThreads)
	if err != nil {
		return err
	}
	if C.JxlEncoderSetParallelRunner(e.ptr, C.JxlParallelRunner(C.JxlThreadParallelRunner), r.ptr) != C.JXL_ENC_SUCCESS {
		r.Close()
		return errors.New("jxlengine: JxlEncoderSetParallelRunner failed")
	}
	e.runner = r
	return nil
}

// UseContainerAndBoxes mirrors JxlEncoderUseContainer + JxlEncoderUseBoxes,
// always enabled per spec.md §4.3 so Exif/XMP boxes can be attached.
func (e *Encoder) UseContainerAndBoxes() {
	C.JxlEncoderUseContainer(e.ptr, C.JXL_TRUE)
	C.JxlEncoderUseBoxes(e.ptr)
}

// SetBasicInfo mirrors JxlEncoderInitBasicInfo + JxlEncoderSetBasicInfo.
func (e *Encoder) SetBasicInfo(info BasicInfo) error {
	var ci C.JxlBasicInfo
	C.JxlEncoderInitBasicInfo(&ci)
	ci.xsize = C.uint32_t(info.Xsize)
	ci.ysize = C.uint32_t(info.Ysize)
	ci.bits_per_sample = C.uint32_t(info.BitsPerSample)
	ci.exponent_bits_per_sample = C.uint32_t(info.ExponentBitsPerSample)
	ci.num_color_channels = C.uint32_t(info.NumColorChannels)
	ci.alpha_bits = C.uint32_t(info.AlphaBits)
	ci.alpha_exponent_bits = C.uint32_t(info.AlphaExponentBits)
	ci.num_extra_channels = C.uint32_t(info.NumExtraChannels)
	ci.uses_original_profile = boolToC(info.UsesOriginalProfile)
	ci.have_container = C.JXL_TRUE
	ci.orientation = C.JxlOrientation(info.Orientation)
	ci.animation.tps_numerator = C.uint32_t(info.Animation.TpsNumerator)
	ci.animation.tps_denominator = C.uint32_t(info.Animation.TpsDenominator)
	ci.animation.num_loops = C.uint32_t(info.Animation.NumLoops)
	if C.JxlEncoderSetBasicInfo(e.ptr, &ci) != C.JXL_ENC_SUCCESS {
		return errors.New("jxlengine: JxlEncoderSetBasicInfo failed")
	}
	return nil
}

// SetBlackExtraChannelInfo mirrors JxlEncoderInitExtraChannelInfo(JXL_CHANNEL_BLACK, ...)
// + JxlEncoderSetExtraChannelInfo for the sole extra channel a CMYK write
// declares.
func (e *Encoder) SetBlackExtraChannelInfo(bitsPerSample, exponentBits uint32) error {
	var ci C.JxlExtraChannelInfo
	C.JxlEncoderInitExtraChannelInfo(C.JXL_CHANNEL_BLACK, &ci)
	ci.bits_per_sample = C.uint32_t(bitsPerSample)
	ci.exponent_bits_per_sample = C.uint32_t(exponentBits)
	if C.JxlEncoderSetExtraChannelInfo(e.ptr, 0, &ci) != C.JXL_ENC_SUCCESS {
		return errors.New("jxlengine: JxlEncoderSetExtraChannelInfo failed")
	}
	return nil
}

// SetICCProfile mirrors JxlEncoderSetICCProfile.
func (e *Encoder) SetICCProfile(icc []byte) error {
	if len(icc) == 0 {
		return errors.New("jxlengine: empty ICC profile")
	}
	if C.JxlEncoderSetICCProfile(e.ptr, (*C.uint8_t)(unsafe.Pointer(&icc[0])), C.size_t(len(icc))) != C.JXL_ENC_SUCCESS {
		return errors.New("jxlengine: JxlEncoderSetICCProfile failed")
	}
	return nil
}

// SetColorEncoding mirrors JxlEncoderSetColorEncoding.
func (e *Encoder) SetColorEncoding(enc ColorEncoding, gray bool) error {
	var ce C.JxlColorEncoding
	C.JxlColorEncodingSetToSRGB(&ce, boolToC(gray))
	ce.white_point = C.JxlWhitePoint(enc.WhitePoint)
	ce.primaries = C.JxlPrimaries(enc.Primaries)
	ce.transfer_function = C.JxlTransferFunction(enc.Transfer)
	ce.gamma = C.double(enc.Gamma)
	if enc.WhitePoint == WhitePointCustom {
		ce.white_point_xy[0] = C.double(enc.WhitePointXY[0])
		ce.white_point_xy[1] = C.double(enc.WhitePointXY[1])
	}
	if enc.Primaries == PrimariesCustom {
		ce.primaries_red_xy[0] = C.double(enc.PrimariesRedXY[0])
		ce.primaries_red_xy[1] = C.double(enc.PrimariesRedXY[1])
		ce.primaries_green_xy[0] = C.double(enc.PrimariesGreenXY[0])
		ce.primaries_green_xy[1] = C.double(enc.PrimariesGreenXY[1])
		ce.primaries_blue_xy[0] = C.double(enc.PrimariesBlueXY[0])
		ce.primaries_blue_xy[1] = C.double(enc.PrimariesBlueXY[1])
	}
	if C.JxlEncoderSetColorEncoding(e.ptr, &ce) != C.JXL_ENC_SUCCESS {
		return errors.New("jxlengine: JxlEncoderSetColorEncoding failed")
	}
	return nil
}

// AddBox mirrors JxlEncoderAddBox. compress=false always ("do-not-compress"
// per spec.md §4.3.1/§4.3.2).
func (e *Encoder) AddBox(boxType string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	ct := C.CString(boxType)
	defer C.free(unsafe.Pointer(ct))
	if C.JxlEncoderAddBox(e.ptr, ct, (*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)), C.JXL_FALSE) != C.JXL_ENC_SUCCESS {
		return errors.New("jxlengine: JxlEncoderAddBox failed")
	}
	return nil
}

// CloseBoxes mirrors JxlEncoderCloseBoxes.
func (e *Encoder) CloseBoxes() { C.JxlEncoderCloseBoxes(e.ptr) }

// NewFrameSettings mirrors JxlEncoderFrameSettingsCreate(encoder, nil).
func (e *Encoder) NewFrameSettings() {
	e.settings = C.JxlEncoderFrameSettingsCreate(e.ptr, nil)
}

// SetFrameLossless mirrors JxlEncoderSetFrameDistance + JxlEncoderSetFrameLossless.
func (e *Encoder) SetFrameLossless() {
	C.JxlEncoderSetFrameDistance(e.settings, 0)
	C.JxlEncoderSetFrameLossless(e.settings, C.JXL_TRUE)
}

// SetFrameDistance mirrors setting a lossy JxlEncoderSetFrameDistance,
// computed from quality via DistanceFromQuality.
func (e *Encoder) SetFrameDistance(quality int) {
	d := C.JxlEncoderDistanceFromQuality(C.float(quality))
	C.JxlEncoderSetFrameDistance(e.settings, d)
	C.JxlEncoderSetFrameLossless(e.settings, C.JXL_FALSE)
}

// AddImageFrame mirrors JxlEncoderAddImageFrame.
func (e *Encoder) AddImageFrame(format PixelFormat, buf []byte) error {
	if len(buf) == 0 {
		return errors.New("jxlengine: empty frame buffer")
	}
	cf := toCPixelFormat(format)
	if C.JxlEncoderAddImageFrame(e.settings, &cf, unsafe.Pointer(&buf[0]), C.size_t(len(buf))) == C.JXL_ENC_ERROR {
		return errors.New("jxlengine: JxlEncoderAddImageFrame failed")
	}
	return nil
}

// SetExtraChannelBuffer mirrors JxlEncoderSetExtraChannelBuffer, used for
// the K plane of a CMYK write.
func (e *Encoder) SetExtraChannelBuffer(format PixelFormat, buf []byte, channelIndex uint32) error {
	if len(buf) == 0 {
		return errors.New("jxlengine: empty extra channel buffer")
	}
	cf := toCPixelFormat(format)
	if C.JxlEncoderSetExtraChannelBuffer(e.settings, &cf, (*C.uint8_t)(unsafe.Pointer(&buf[0])),
		C.size_t(len(buf)), C.uint32_t(channelIndex)) == C.JXL_ENC_ERROR {
		return errors.New("jxlengine: JxlEncoderSetExtraChannelBuffer failed")
	}
	return nil
}

// CloseFrames mirrors JxlEncoderCloseFrames.
func (e *Encoder) CloseFrames() { C.JxlEncoderCloseFrames(e.ptr) }

// ProcessOutput mirrors the grow-and-retry JxlEncoderProcessOutput loop
// from spec.md §4.3: preallocate 4 KiB, double on NEED_MORE_OUTPUT.
func (e *Encoder) ProcessOutput() ([]byte, error) {
	buf := make([]byte, 4096)
	offset := 0
	for {
		nextOut := (*C.uint8_t)(unsafe.Pointer(&buf[offset]))
		availOut := C.size_t(len(buf) - offset)
		status := C.JxlEncoderProcessOutput(e.ptr, &nextOut, &availOut)
		written := len(buf) - offset - int(availOut)
		offset += written
		switch status {
		case C.JXL_ENC_SUCCESS:
			return buf[:offset], nil
		case C.JXL_ENC_NEED_MORE_OUTPUT:
			grown := make([]byte, len(buf)*2)
			copy(grown, buf[:offset])
			buf = grown
		case C.JXL_ENC_ERROR:
			return nil, errors.New("jxlengine: JxlEncoderProcessOutput failed")
		default:
			return nil, errors.New("jxlengine: unexpected JxlEncoderProcessOutput status")
		}
	}
}

// Close destroys the parallel runner (if any) and then the encoder,
// mirroring the original's destruction order.
func (e *Encoder) Close() {
	if e.runner != nil {
		e.runner.Close()
		e.runner = nil
	}
	if e.ptr != nil {
		C.JxlEncoderDestroy(e.ptr)
		e.ptr = nil
	}
}
