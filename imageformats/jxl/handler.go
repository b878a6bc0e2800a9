// Package jxl implements a pluggable JPEG XL image.RegisterFormat handler:
// a two-phase state machine over libjxl's event-driven decoder/encoder,
// covering animation, HDR, CMYK, orientation, and embedded Exif/XMP
// metadata.
package jxl

import (
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/jxlimg/codecs/colorspace"
	"github.com/jxlimg/codecs/imagecodec"
	"github.com/jxlimg/codecs/imageformats/jxl/pixfmt"
	"github.com/jxlimg/codecs/internal/jxlengine"
	"github.com/jxlimg/codecs/rasterimage"
)

// parseState is the handler's coarse progress marker. It only moves forward,
// except that an animated stream goes from Finished back to Success when
// decoding resumes after a wrap-around rewind.
type parseState int

const (
	stateNotParsed parseState = iota
	stateBasicInfoParsed
	stateSuccess
	stateFinished
	stateError
)

// cmykPlan records the extra-channel bookkeeping needed to decode a CMYK
// image.
type cmykPlan struct {
	isCMYK         bool
	blackChannelID uint32
	alphaChannelID uint32
	hasAlpha       bool
}

// Handler is the per-stream JPEG XL decode/encode state machine. It is not
// safe for concurrent use, matching the "one handler serves one stream in
// one calling thread" scheduling model.
type Handler struct {
	state   parseState
	rawData []byte
	dec     decoderBackend

	basicInfo   jxlengine.BasicInfo
	frameDelays []int
	currentIndex int
	cache       frameCacheState
	currentImage *rasterimage.Image
	profile     colorspace.Profile
	plan        pixfmt.Plan
	cmyk        cmykPlan
	exif        []byte
	xmp         []byte

	quality        int
	transformation imagecodec.Transformation

	hdrPreservation bool
	boxDecoding     bool
}

// Option configures a Handler at construction time.
type Option func(*Handler)

// WithHDRPreservation controls whether float/half-float HDR branches are
// live during decode planning. It realizes the original's compile-time
// JXL_HDR_PRESERVATION_DISABLED switch as a runtime option.
func WithHDRPreservation(enabled bool) Option {
	return func(h *Handler) { h.hdrPreservation = enabled }
}

// WithBoxDecoding controls whether container box scanning (Exif/XMP) runs
// during ensureAllCounted. It realizes the original's compile-time
// JXL_DECODE_BOXES_DISABLED switch as a runtime option.
func WithBoxDecoding(enabled bool) Option {
	return func(h *Handler) { h.boxDecoding = enabled }
}

// NewHandler constructs a Handler over the full contents of a JPEG XL
// stream. The decoder is not fed data yet; that happens lazily in
// ensureParsed.
func NewHandler(data []byte, opts ...Option) *Handler {
	h := &Handler{
		rawData:         data,
		quality:         90,
		hdrPreservation: true,
		boxDecoding:     true,
		currentIndex:    0,
		cache:           cacheEmpty,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// fail transitions the handler into the absorbing Error state, releasing
// any external resources, and returns the wrapped error. Every failure
// path in this package should route through fail so the error state and
// resource release stay coupled the way a scoped-acquisition pattern would
// enforce in a language with destructors.
func (h *Handler) fail(sentinel error, detail string) error {
	h.release()
	h.state = stateError
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// release tears down the decoder handle, matching the "release on any
// transition into Error, and on teardown" invariant.
func (h *Handler) release() {
	if h.dec != nil {
		h.dec.Close()
		h.dec = nil
	}
}

// Close releases the handler's external resources. Safe to call multiple
// times.
func (h *Handler) Close() { h.release() }

const (
	pixelCap64      = 1 << 28
	dimCap64        = 262144
	dimCap32        = 32767
)

func dimensionCap() int {
	if is32BitPlatform() {
		return dimCap32
	}
	return dimCap64
}

func is32BitPlatform() bool {
	return ^uint(0)>>63 == 0
}

func dimensionsExceedCap(width, height uint32) bool {
	cap := dimensionCap()
	if int64(width) > int64(cap) || int64(height) > int64(cap) {
		return true
	}
	return uint64(width)*uint64(height) > pixelCap64
}

// ensureParsed drives the decoder to BASIC_INFO, latching stateBasicInfoParsed
// on success. Idempotent: a handler already past this stage returns nil
// immediately, and one in stateError returns the absorbing error.
func (h *Handler) ensureParsed() error {
	switch h.state {
	case stateError:
		return ErrDecoderInit
	case stateNotParsed:
		// fall through to parse below
	default:
		return nil
	}

	if len(h.rawData) == 0 {
		return h.fail(ErrNotThisFormat, "empty input")
	}
	sig := jxlengine.CheckSignature(h.rawData)
	if sig != jxlengine.SigCodestream && sig != jxlengine.SigContainer {
		return h.fail(ErrNotThisFormat, "signature mismatch")
	}

	dec, err := newDecoderBackend()
	if err != nil {
		return h.fail(ErrDecoderInit, err.Error())
	}
	h.dec = dec

	// Host framework compatibility: keep the embedded orientation tag
	// rather than have libjxl rotate pixels itself, so ImageTransformation
	// reports the source tag verbatim.
	h.dec.SetKeepOrientation(true)

	if numThreads := readThreadCount(); numThreads > 1 {
		if err := h.dec.AttachParallelRunner(numThreads); err != nil {
			log.Warnf("jxl: parallel runner attach failed, continuing single-threaded: %v", err)
		}
	}

	// FULL_IMAGE is deliberately left unsubscribed here: requesting it
	// without an out-buffer installed stalls the decoder on
	// NEED_IMAGE_OUT_BUFFER. ensureAllCounted only needs BASIC_INFO,
	// COLOR_ENCODING, and FRAME headers; rewind() re-subscribes with
	// FULL_IMAGE once an actual decode pass begins.
	if err := h.dec.SubscribeEvents(jxlengine.EventBasicInfo | jxlengine.EventColorEncoding | jxlengine.EventFrame); err != nil {
		return h.fail(ErrDecoderInit, err.Error())
	}
	if err := h.dec.SetInput(h.rawData); err != nil {
		return h.fail(ErrDecoderInit, err.Error())
	}

	status := h.dec.ProcessInput()
	if status == jxlengine.StatusNeedMoreInput {
		return h.fail(ErrTruncated, "need more input before basic info")
	}
	if status != jxlengine.StatusBasicInfo {
		return h.fail(ErrDecoderInit, "unexpected status before basic info")
	}
	info, err := h.dec.GetBasicInfo()
	if err != nil {
		return h.fail(ErrDecoderInit, err.Error())
	}
	if info.Xsize == 0 || info.Ysize == 0 {
		return h.fail(ErrOutOfRange, "zero dimensions")
	}
	if dimensionsExceedCap(info.Xsize, info.Ysize) {
		return h.fail(ErrOutOfRange, "dimensions exceed platform cap")
	}

	h.basicInfo = info
	h.state = stateBasicInfoParsed
	return nil
}

// readThreadCount implements the read-side pool sizing policy:
// clamp(cores/2, 2, 64), gated on cores >= 4.
func readThreadCount() int {
	cores := runtime.NumCPU()
	if cores < 4 {
		return 1
	}
	return jxlengine.Clamp(cores/2, 2, 64)
}

// writeThreadCount implements the write-side pool sizing policy:
// clamp(cores, 1, 64).
func writeThreadCount() int {
	return jxlengine.Clamp(runtime.NumCPU(), 1, 64)
}
