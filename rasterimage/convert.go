package rasterimage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ToPresentation converts an internal decode buffer into its
// host-presentable counterpart. Most planned pairs (RGBA16F/RGBX16F,
// RGBA32F/RGBX32F, RGBA64/RGBX64) share the same byte width and channel
// layout — the trailing channel just changes from live alpha to unused
// padding — so those are copied verbatim. RGB8 -> RGB32 is the one pair
// that widens the pixel (3 bytes -> 4), so it is repacked explicitly into
// Qt's native-endian Format_RGB32 layout. It is a no-op when in == out
// already. Any other pair is copied byte for byte when both formats have the
// same pixel width, and panics when they do not.
func ToPresentation(img *Image, target Format) *Image {
	if img.Format == target {
		return img
	}
	if img.Format == RGB8 && target == RGB32 {
		return rgb8ToRGB32(img)
	}
	if img.Format.BytesPerPixel() != target.BytesPerPixel() {
		panic(fmt.Sprintf("rasterimage: ToPresentation: unsupported %s -> %s conversion", img.Format, target))
	}
	out := New(target, img.Width, img.Height)
	copy(out.Pix, img.Pix)
	out.Profile = img.Profile
	return out
}

// rgb8ToRGB32 expands a tight 3-byte-per-pixel RGB8 buffer into RGB32's
// packed 4-byte native-endian layout (the same B,G,R,pad-on-little-endian
// order writeARGB uses for ARGB32), with the unused pad byte set to 0xFF
// to match Qt's Format_RGB32 convention.
func rgb8ToRGB32(img *Image) *Image {
	out := New(RGB32, img.Width, img.Height)
	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		r, g, b := img.Pix[i*3+0], img.Pix[i*3+1], img.Pix[i*3+2]
		writeARGB(out.Pix[i*4:i*4+4], 0xFF, r, g, b)
	}
	out.Profile = img.Profile
	return out
}

// InvertBytes flips every byte v -> 255-v in place, the ink-inversion
// libjxl's CMYK convention requires on both the decode and encode paths.
func InvertBytes(buf []byte) {
	for i, v := range buf {
		buf[i] = 255 - v
	}
}

// PackRGBXToRGB drops the padding channel from a 4-channel padded format
// (RGBX32F, RGBX64, RGBX16F) into a tight 3-channel buffer of the matching
// bit depth, the shape libjxl's image-frame out-buffer requires on encode.
func PackRGBXToRGB(img *Image) []byte {
	var channelBytes int
	switch img.Format {
	case RGBX32F:
		channelBytes = 4
	case RGBX64, RGBX16F:
		channelBytes = 2
	default:
		return img.Pix
	}
	out := make([]byte, img.Width*img.Height*3*channelBytes)
	srcStride := 4 * channelBytes
	dstStride := 3 * channelBytes
	for row := 0; row < img.Height; row++ {
		srcRow := img.Pix[row*img.Width*srcStride:]
		dstRow := out[row*img.Width*dstStride:]
		for col := 0; col < img.Width; col++ {
			copy(dstRow[col*dstStride:col*dstStride+dstStride], srcRow[col*srcStride:col*srcStride+dstStride])
		}
	}
	return out
}

// InterleaveCMYK builds a tight CMYK8 image from an interleaved CMY plane
// and a K plane, inverting every ink byte along the way per libjxl's
// convention. The a plane is not used: CMYK8 has no alpha storage, and
// CMYKToARGB applies alpha.
func InterleaveCMYK(cmy, k, a []byte, width, height int) *Image {
	img := New(CMYK8, width, height)
	n := width * height
	for i := 0; i < n; i++ {
		img.Pix[i*4+0] = 255 - cmy[i*3+0]
		img.Pix[i*4+1] = 255 - cmy[i*3+1]
		img.Pix[i*4+2] = 255 - cmy[i*3+2]
		img.Pix[i*4+3] = 255 - k[i]
	}
	_ = a
	return img
}

// SplitCMYK is the encode-side inverse of InterleaveCMYK: it produces a
// tight CMY plane and a K plane from a CMYK8 image, inverting ink bytes
// back to libjxl's convention.
func SplitCMYK(img *Image) (cmy, k []byte) {
	n := img.Width * img.Height
	cmy = make([]byte, n*3)
	k = make([]byte, n)
	for i := 0; i < n; i++ {
		cmy[i*3+0] = 255 - img.Pix[i*4+0]
		cmy[i*3+1] = 255 - img.Pix[i*4+1]
		cmy[i*3+2] = 255 - img.Pix[i*4+2]
		k[i] = 255 - img.Pix[i*4+3]
	}
	return cmy, k
}

// CMYKToARGB converts a CMYK8 image (already ink-restored, i.e. after
// InterleaveCMYK) to ARGB32 using the naive subtractive formula
// R=(1-C)(1-K) and friends. A full ICC/CMS-driven conversion is the
// external collaborator's job; this direct formula is the fallback the
// codec uses when no CMS transform is wired in, matching libjxl's own
// "tolerate a missing CMS" policy.
func CMYKToARGB(img *Image, alpha []byte) *Image {
	out := New(ARGB32, img.Width, img.Height)
	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		c := float64(img.Pix[i*4+0]) / 255
		m := float64(img.Pix[i*4+1]) / 255
		y := float64(img.Pix[i*4+2]) / 255
		k := float64(img.Pix[i*4+3]) / 255
		r := clamp255((1 - c) * (1 - k) * 255)
		g := clamp255((1 - m) * (1 - k) * 255)
		b := clamp255((1 - y) * (1 - k) * 255)
		a := byte(255)
		if alpha != nil {
			a = alpha[i]
		}
		writeARGB(out.Pix[i*4:i*4+4], a, r, g, b)
	}
	return out
}

func clamp255(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(math.Round(v))
}

// writeARGB writes a pixel in native host byte order: alpha is the last
// byte on little-endian hosts, the first byte on big-endian hosts, matching
// the original's byte-order-dependent alpha overwrite.
func writeARGB(dst []byte, a, r, g, b byte) {
	if isLittleEndian() {
		dst[0], dst[1], dst[2], dst[3] = b, g, r, a
	} else {
		dst[0], dst[1], dst[2], dst[3] = a, r, g, b
	}
}

// ReadARGB32 is writeARGB's inverse: it decodes a 4-byte ARGB32/RGB32
// pixel in native host byte order, for callers (e.g. the standard
// image.Image adapter) that read ARGB32/RGB32 pixels back out.
func ReadARGB32(pix []byte) (a, r, g, b byte) {
	if isLittleEndian() {
		b, g, r, a = pix[0], pix[1], pix[2], pix[3]
	} else {
		a, r, g, b = pix[0], pix[1], pix[2], pix[3]
	}
	return
}

func isLittleEndian() bool {
	var x uint16 = 1
	buf := make([]byte, 2)
	binary.NativeEndian.PutUint16(buf, x)
	return buf[0] == 1
}
