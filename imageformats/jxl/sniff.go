package jxl

import "github.com/jxlimg/codecs/internal/jxlengine"

// PFM streams (pfm.PrefixColor, pfm.PrefixGray) are recognized by the
// sibling pfm package's Probe; jxl's own probe only needs to tell "this looks like JPEG XL"
// from "it doesn't", which CheckSignature already does without consuming
// bytes.

// Probe classifies buf (the first up-to-32 bytes of a stream) as a JPEG XL
// codestream, container, or "not this format". It never fails
// destructively: too few bytes reports ErrNotThisFormat rather than
// panicking, matching §4.1's "insufficient bytes -> not this format" rule.
func Probe(buf []byte) error {
	switch jxlengine.CheckSignature(buf) {
	case jxlengine.SigCodestream, jxlengine.SigContainer:
		return nil
	default:
		return ErrNotThisFormat
	}
}
