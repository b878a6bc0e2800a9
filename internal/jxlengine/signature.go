package jxlengine

/*
#include <jxl/decode.h>
*/
import "C"

import "unsafe"

// CheckSignature mirrors JxlSignatureCheck: a stateless peek at up to the
// first bytes of a stream that classifies it as a bare codestream, an
// ISOBMFF container, not-yet-enough-bytes, or definitively not JPEG XL.
func CheckSignature(buf []byte) Signature {
	if len(buf) == 0 {
		return SigNotEnoughBytes
	}
	return Signature(C.JxlSignatureCheck((*C.uint8_t)(unsafe.Pointer(&buf[0])), C.size_t(len(buf))))
}
