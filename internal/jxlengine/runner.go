package jxlengine

/*
#cgo pkg-config: libjxl_threads
#include <jxl/thread_parallel_runner.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

// ParallelRunner wraps a JxlThreadParallelRunner instance. It is created
// per operation (decode or encode) and destroyed with it, never shared
// across Decoder/Encoder instances, per spec.md §5's "no shared resources"
// rule.
type ParallelRunner struct {
	ptr unsafe.Pointer
}

func newParallelRunner(numThreads int) (*ParallelRunner, error) {
	ptr := C.JxlThreadParallelRunnerCreate(nil, C.size_t(numThreads))
	if ptr == nil {
		return nil, errors.New("jxlengine: JxlThreadParallelRunnerCreate failed")
	}
	return &ParallelRunner{ptr: ptr}, nil
}

// Close destroys the runner. Safe to call once; the owning Decoder/Encoder
// nils its reference after calling it.
func (r *ParallelRunner) Close() {
	if r.ptr != nil {
		C.JxlThreadParallelRunnerDestroy(r.ptr)
		r.ptr = nil
	}
}

// Clamp implements spec.md's clamp(n, lo, hi) helper used for both the
// read-side (cores/2, bounded [2,64], gated on cores>=4) and write-side
// (cores, bounded [1,64]) thread pool sizing policies.
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
