package jxlengine

/*
#cgo pkg-config: libjxl libjxl_threads libjxl_cms
#include <stdlib.h>
#include <string.h>
#include <jxl/decode.h>
#include <jxl/cms.h>
#include <jxl/thread_parallel_runner.h>

static JxlDecoderStatus go_jxl_dec_set_input(JxlDecoder *dec, const uint8_t *buf, size_t len) {
	return JxlDecoderSetInput(dec, buf, len);
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

// ErrCreate is returned when libjxl fails to allocate a decoder, runner or
// equivalent internal resource (spec.md's AllocFailure / DecoderInit).
var ErrCreate = errors.New("jxlengine: allocation failed")

// Decoder wraps a *JxlDecoder. It owns the C object and any parallel runner
// attached to it; Close must be called exactly once.
type Decoder struct {
	ptr    *C.JxlDecoder
	runner *ParallelRunner
	// pinned keeps the byte slices passed to SetImageOutBuffer /
	// SetExtraChannelBuffer alive for cgo's pointer-passing rules for the
	// duration of the call that uses them.
	pinned [][]byte
}

// NewDecoder allocates a JxlDecoder. Returns ErrCreate on failure.
func NewDecoder() (*Decoder, error) {
	ptr := C.JxlDecoderCreate(nil)
	if ptr == nil {
		return nil, ErrCreate
	}
	return &Decoder{ptr: ptr}, nil
}

// SetKeepOrientation mirrors JxlDecoderSetKeepOrientation.
func (d *Decoder) SetKeepOrientation(keep bool) {
	C.JxlDecoderSetKeepOrientation(d.ptr, boolToC(keep))
}

// AttachParallelRunner creates and installs a thread-parallel runner sized
// to numThreads, matching spec.md §4.2.1's clamp(cores/2, 2, 64) policy
// (the caller computes numThreads; this method just wires it in).
func (d *Decoder) AttachParallelRunner(numThreads int) error {
	r, err := newParallelRunner(numThreads)
	if err != nil {
		return err
	}
	if C.JxlDecoderSetParallelRunner(d.ptr, C.JxlParallelRunner(C.JxlThreadParallelRunner), r.ptr) != C.JXL_DEC_SUCCESS {
		r.Close()
		return errors.New("jxlengine: JxlDecoderSetParallelRunner failed")
	}
	d.runner = r
	return nil
}

// SetInput mirrors JxlDecoderSetInput + JxlDecoderCloseInput. buf must stay
// alive and unchanged until the decoder is done with it (the caller keeps a
// reference for the handler's lifetime, matching the original's m_rawData).
func (d *Decoder) SetInput(buf []byte) error {
	if len(buf) == 0 {
		return errors.New("jxlengine: empty input")
	}
	if C.go_jxl_dec_set_input(d.ptr, (*C.uint8_t)(unsafe.Pointer(&buf[0])), C.size_t(len(buf))) != C.JXL_DEC_SUCCESS {
		return errors.New("jxlengine: JxlDecoderSetInput failed")
	}
	C.JxlDecoderCloseInput(d.ptr)
	return nil
}

// ReleaseInput mirrors JxlDecoderReleaseInput.
func (d *Decoder) ReleaseInput() {
	C.JxlDecoderReleaseInput(d.ptr)
}

// Rewind mirrors JxlDecoderRewind.
func (d *Decoder) Rewind() {
	C.JxlDecoderRewind(d.ptr)
}

// SubscribeEvents mirrors JxlDecoderSubscribeEvents.
func (d *Decoder) SubscribeEvents(mask EventMask) error {
	if C.JxlDecoderSubscribeEvents(d.ptr, C.int(mask)) == C.JXL_DEC_ERROR {
		return errors.New("jxlengine: JxlDecoderSubscribeEvents failed")
	}
	return nil
}

// SetDecompressBoxes mirrors JxlDecoderSetDecompressBoxes.
func (d *Decoder) SetDecompressBoxes(decompress bool) error {
	if C.JxlDecoderSetDecompressBoxes(d.ptr, boolToC(decompress)) != C.JXL_DEC_SUCCESS {
		return errors.New("jxlengine: JxlDecoderSetDecompressBoxes failed")
	}
	return nil
}

// ProcessInput mirrors JxlDecoderProcessInput.
func (d *Decoder) ProcessInput() Status {
	return Status(C.JxlDecoderProcessInput(d.ptr))
}

// GetBasicInfo mirrors JxlDecoderGetBasicInfo.
func (d *Decoder) GetBasicInfo() (BasicInfo, error) {
	var ci C.JxlBasicInfo
	if C.JxlDecoderGetBasicInfo(d.ptr, &ci) != C.JXL_DEC_SUCCESS {
		return BasicInfo{}, errors.New("jxlengine: JxlDecoderGetBasicInfo failed")
	}
	info := BasicInfo{
		Xsize:                 uint32(ci.xsize),
		Ysize:                 uint32(ci.ysize),
		BitsPerSample:         uint32(ci.bits_per_sample),
		ExponentBitsPerSample: uint32(ci.exponent_bits_per_sample),
		NumColorChannels:      uint32(ci.num_color_channels),
		AlphaBits:             uint32(ci.alpha_bits),
		AlphaExponentBits:     uint32(ci.alpha_exponent_bits),
		NumExtraChannels:      uint32(ci.num_extra_channels),
		UsesOriginalProfile:   ci.uses_original_profile != 0,
		HaveAnimation:         ci.have_animation != 0,
		HaveContainer:         ci.have_container != 0,
		Orientation:           Orientation(ci.orientation),
	}
	info.Animation.TpsNumerator = uint32(ci.animation.tps_numerator)
	info.Animation.TpsDenominator = uint32(ci.animation.tps_denominator)
	info.Animation.NumLoops = uint32(ci.animation.num_loops)
	return info, nil
}

// SetPreferredColorProfile mirrors JxlDecoderSetPreferredColorProfile.
func (d *Decoder) SetPreferredColorProfile(gray bool) error {
	var ce C.JxlColorEncoding
	C.JxlColorEncodingSetToSRGB(&ce, boolToC(gray))
	if C.JxlDecoderSetPreferredColorProfile(d.ptr, &ce) != C.JXL_DEC_SUCCESS {
		return errors.New("jxlengine: JxlDecoderSetPreferredColorProfile failed")
	}
	return nil
}

// SetDefaultCms mirrors JxlGetDefaultCms + JxlDecoderSetCms. A missing CMS
// is a warning, not an error, per spec.md §5's "tolerate null" rule; the
// caller logs it.
func (d *Decoder) SetDefaultCms() (ok bool) {
	cms := C.JxlGetDefaultCms()
	if cms == nil {
		return false
	}
	return C.JxlDecoderSetCms(d.ptr, *cms) == C.JXL_DEC_SUCCESS
}

// GetColorEncoding mirrors JxlDecoderGetColorAsEncodedProfile with target
// JXL_COLOR_PROFILE_TARGET_DATA.
func (d *Decoder) GetColorEncoding() (ColorEncoding, bool) {
	var ce C.JxlColorEncoding
	if C.JxlDecoderGetColorAsEncodedProfile(d.ptr, C.JXL_COLOR_PROFILE_TARGET_DATA, &ce) != C.JXL_DEC_SUCCESS {
		return ColorEncoding{}, false
	}
	out := ColorEncoding{
		ColorSpace: ColorSpace(ce.color_space),
		WhitePoint: WhitePoint(ce.white_point),
		Primaries:  Primaries(ce.primaries),
		Transfer:   TransferFunction(ce.transfer_function),
		Gamma:      float64(ce.gamma),
	}
	return out, true
}

// GetICCProfile mirrors the size-then-fill JxlDecoderGetICCProfileSize /
// JxlDecoderGetColorAsICCProfile pair.
func (d *Decoder) GetICCProfile() ([]byte, error) {
	var size C.size_t
	if C.JxlDecoderGetICCProfileSize(d.ptr, C.JXL_COLOR_PROFILE_TARGET_DATA, &size) != C.JXL_DEC_SUCCESS {
		return nil, errors.New("jxlengine: JxlDecoderGetICCProfileSize failed")
	}
	if size == 0 {
		return nil, nil
	}
	buf := make([]byte, uint64(size))
	if C.JxlDecoderGetColorAsICCProfile(d.ptr, C.JXL_COLOR_PROFILE_TARGET_DATA,
		(*C.uint8_t)(unsafe.Pointer(&buf[0])), size) != C.JXL_DEC_SUCCESS {
		return nil, errors.New("jxlengine: JxlDecoderGetColorAsICCProfile failed")
	}
	return buf, nil
}

// GetFrameHeader mirrors JxlDecoderGetFrameHeader.
func (d *Decoder) GetFrameHeader() (FrameHeader, error) {
	var fh C.JxlFrameHeader
	if C.JxlDecoderGetFrameHeader(d.ptr, &fh) != C.JXL_DEC_SUCCESS {
		return FrameHeader{}, errors.New("jxlengine: JxlDecoderGetFrameHeader failed")
	}
	return FrameHeader{Duration: uint32(fh.duration), IsLast: fh.is_last != 0}, nil
}

// GetExtraChannelInfo mirrors JxlDecoderGetExtraChannelInfo.
func (d *Decoder) GetExtraChannelInfo(index uint32) (ExtraChannelInfo, error) {
	var ci C.JxlExtraChannelInfo
	if C.JxlDecoderGetExtraChannelInfo(d.ptr, C.size_t(index), &ci) != C.JXL_DEC_SUCCESS {
		return ExtraChannelInfo{}, errors.New("jxlengine: JxlDecoderGetExtraChannelInfo failed")
	}
	return ExtraChannelInfo{
		Type:          ChannelType(ci._type),
		BitsPerSample: uint32(ci.bits_per_sample),
		ExponentBits:  uint32(ci.exponent_bits_per_sample),
	}, nil
}

// SetImageOutBuffer mirrors JxlDecoderSetImageOutBuffer. buf is pinned for
// the duration of the following ProcessInput call by the caller retaining
// the slice.
func (d *Decoder) SetImageOutBuffer(format PixelFormat, buf []byte) error {
	if len(buf) == 0 {
		return errors.New("jxlengine: empty output buffer")
	}
	cf := toCPixelFormat(format)
	if C.JxlDecoderSetImageOutBuffer(d.ptr, &cf, unsafe.Pointer(&buf[0]), C.size_t(len(buf))) != C.JXL_DEC_SUCCESS {
		return errors.New("jxlengine: JxlDecoderSetImageOutBuffer failed")
	}
	d.pinned = append(d.pinned, buf)
	return nil
}

// SetExtraChannelBuffer mirrors JxlDecoderSetExtraChannelBuffer.
func (d *Decoder) SetExtraChannelBuffer(format PixelFormat, buf []byte, channelIndex uint32) error {
	if len(buf) == 0 {
		return errors.New("jxlengine: empty extra channel buffer")
	}
	cf := toCPixelFormat(format)
	if C.JxlDecoderSetExtraChannelBuffer(d.ptr, &cf, (*C.uint8_t)(unsafe.Pointer(&buf[0])),
		C.size_t(len(buf)), C.uint32_t(channelIndex)) != C.JXL_DEC_SUCCESS {
		return errors.New("jxlengine: JxlDecoderSetExtraChannelBuffer failed")
	}
	d.pinned = append(d.pinned, buf)
	return nil
}

// ReleaseOutBuffers drops references pinned by SetImageOutBuffer /
// SetExtraChannelBuffer once a frame has been fully decoded.
func (d *Decoder) ReleaseOutBuffers() {
	d.pinned = d.pinned[:0]
}

// GetBoxType mirrors JxlDecoderGetBoxType with decompressed=JXL_TRUE.
func (d *Decoder) GetBoxType() (BoxType, error) {
	var bt C.JxlBoxType
	if C.JxlDecoderGetBoxType(d.ptr, &bt[0], C.JXL_TRUE) != C.JXL_DEC_SUCCESS {
		return BoxType{}, errors.New("jxlengine: JxlDecoderGetBoxType failed")
	}
	var out BoxType
	for i := 0; i < 4; i++ {
		out[i] = byte(bt[i])
	}
	return out, nil
}

// GetBoxSizeRaw mirrors JxlDecoderGetBoxSizeRaw.
func (d *Decoder) GetBoxSizeRaw() (uint64, error) {
	var sz C.uint64_t
	if C.JxlDecoderGetBoxSizeRaw(d.ptr, &sz) != C.JXL_DEC_SUCCESS {
		return 0, errors.New("jxlengine: JxlDecoderGetBoxSizeRaw failed")
	}
	return uint64(sz), nil
}

// SetBoxBuffer mirrors JxlDecoderSetBoxBuffer.
func (d *Decoder) SetBoxBuffer(buf []byte) error {
	if len(buf) == 0 {
		return errors.New("jxlengine: empty box buffer")
	}
	if C.JxlDecoderSetBoxBuffer(d.ptr, (*C.uint8_t)(unsafe.Pointer(&buf[0])), C.size_t(len(buf))) != C.JXL_DEC_SUCCESS {
		return errors.New("jxlengine: JxlDecoderSetBoxBuffer failed")
	}
	d.pinned = append(d.pinned, buf)
	return nil
}

// ReleaseBoxBuffer mirrors JxlDecoderReleaseBoxBuffer, returning the number
// of bytes in the buffer that were not filled.
func (d *Decoder) ReleaseBoxBuffer() uint64 {
	d.pinned = d.pinned[:0]
	return uint64(C.JxlDecoderReleaseBoxBuffer(d.ptr))
}

// SkipFrames mirrors JxlDecoderSkipFrames.
func (d *Decoder) SkipFrames(n int) {
	C.JxlDecoderSkipFrames(d.ptr, C.size_t(n))
}

// Close releases the parallel runner (if any) and then the decoder itself,
// matching the destructor order in the original: runner before decoder.
func (d *Decoder) Close() {
	if d.runner != nil {
		d.runner.Close()
		d.runner = nil
	}
	if d.ptr != nil {
		C.JxlDecoderDestroy(d.ptr)
		d.ptr = nil
	}
}

func toCPixelFormat(f PixelFormat) C.JxlPixelFormat {
	return C.JxlPixelFormat{
		num_channels: C.uint32_t(f.NumChannels),
		data_type:    C.JxlDataType(f.DataType),
		endianness:   C.JxlEndianness(f.Endianness),
		align:        C.size_t(f.Align),
	}
}

func boolToC(b bool) C.int {
	if b {
		return C.JXL_TRUE
	}
	return C.JXL_FALSE
}
