package jxl

import "errors"

// Sentinel errors realize the "error kinds" outcome taxonomy and are safe to
// test with errors.Is after wrapping with %w. A Handler method that returns
// one has latched the handler into the error state through fail; the
// package-level Probe and Encode return them without touching any handler.
var (
	// ErrNotThisFormat means the signature probe rejected the stream; the
	// caller should try another codec.
	ErrNotThisFormat = errors.New("jxl: not a JPEG XL stream")
	// ErrDecoderInit covers allocator, subscribe, or basic-info failures
	// during ensureParsed.
	ErrDecoderInit = errors.New("jxl: decoder initialization failed")
	// ErrTruncated means the decoder reported NEED_MORE_INPUT with no more
	// input available.
	ErrTruncated = errors.New("jxl: truncated stream")
	// ErrUnsupported names the unsupported-configuration outcome; no path in
	// this package returns it. With HDR preservation disabled, float sources
	// decode to 16-bit integer output instead.
	ErrUnsupported = errors.New("jxl: unsupported configuration")
	// ErrOutOfRange covers oversized dimensions, box sizes, and seek
	// indices.
	ErrOutOfRange = errors.New("jxl: value out of range")
	// ErrAllocFailure covers any output buffer allocation failure.
	ErrAllocFailure = errors.New("jxl: allocation failure")
	// ErrEncoderConfig covers CMYK-without-ICC and unsupported source pixel
	// formats on write.
	ErrEncoderConfig = errors.New("jxl: invalid encoder configuration")
)
