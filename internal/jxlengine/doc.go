// Package jxlengine binds libjxl, the JPEG XL reference C library, through
// cgo. It is the "external library" collaborator that spec.md and
// SPEC_FULL.md assume: the JPEG XL bitstream format itself is not
// reimplemented here, only the event-driven decode/encode protocol that
// libjxl exposes over jxl/decode.h, jxl/encode.h,
// jxl/thread_parallel_runner.h and jxl/cms.h.
//
// Callers outside this package should not need to import it directly;
// imageformats/jxl talks to it through the decoderBackend/encoderBackend
// interfaces so that the state-machine logic can be exercised against a
// fake in tests without a libjxl build available.
package jxlengine
