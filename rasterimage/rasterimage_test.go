package rasterimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytesPerPixel(t *testing.T) {
	assert.Equal(t, 1, Gray8.BytesPerPixel())
	assert.Equal(t, 2, Gray16.BytesPerPixel())
	assert.Equal(t, 4, RGB32.BytesPerPixel())
	assert.Equal(t, 4, RGBA8.BytesPerPixel())
	assert.Equal(t, 8, RGBA64.BytesPerPixel())
	assert.Equal(t, 16, RGBA32F.BytesPerPixel())
}

func TestFormatHasAlpha(t *testing.T) {
	assert.True(t, RGBA8.HasAlpha())
	assert.True(t, ARGB32.HasAlpha())
	assert.False(t, RGB32.HasAlpha())
	assert.False(t, RGBX64.HasAlpha())
}

func TestNewImageAllocatesExactSize(t *testing.T) {
	img := New(RGBA8, 3, 2)
	assert.Len(t, img.Pix, 3*2*4)
	assert.Equal(t, 12, img.Stride())
}

func TestInvertBytes(t *testing.T) {
	buf := []byte{0, 255, 128, 10}
	InvertBytes(buf)
	assert.Equal(t, []byte{255, 0, 127, 245}, buf)
}

func TestInterleaveAndSplitCMYKRoundTrip(t *testing.T) {
	width, height := 2, 1
	// libjxl-convention inverted planes: 0 = full ink.
	cmy := []byte{0, 0, 0, 255, 255, 255}
	k := []byte{0, 255}

	img := InterleaveCMYK(cmy, k, nil, width, height)
	require.Equal(t, CMYK8, img.Format)
	assert.Equal(t, byte(255), img.Pix[0]) // full ink restored to 255
	assert.Equal(t, byte(255), img.Pix[3])
	assert.Equal(t, byte(0), img.Pix[4])
	assert.Equal(t, byte(0), img.Pix[7])

	gotCMY, gotK := SplitCMYK(img)
	assert.Equal(t, cmy, gotCMY)
	assert.Equal(t, k, gotK)
}

func TestPackRGBXToRGBDropsPadChannel(t *testing.T) {
	img := New(RGBX64, 2, 1)
	// one 16-bit padding channel per pixel; every byte is distinct so the
	// drop is observable.
	for i := range img.Pix {
		img.Pix[i] = byte(i + 1)
	}
	packed := PackRGBXToRGB(img)
	assert.Len(t, packed, 2*1*3*2)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14}, packed)
}

func TestCMYKToARGBFullInkIsBlack(t *testing.T) {
	img := New(CMYK8, 1, 1)
	img.Pix = []byte{0, 0, 0, 255} // no C/M/Y, full K -> black
	out := CMYKToARGB(img, nil)
	assert.Equal(t, ARGB32, out.Format)
	// R, G, B all clamp to 0 for full black; alpha defaults to opaque.
	for _, v := range out.Pix {
		if v != 0 {
			assert.Equal(t, byte(255), v, "only the alpha byte should be non-zero")
		}
	}
}

func TestToPresentationExpandsRGB8ToRGB32(t *testing.T) {
	img := New(RGB8, 2, 1)
	img.Pix = []byte{10, 20, 30, 40, 50, 60}

	out := ToPresentation(img, RGB32)
	require.Equal(t, RGB32, out.Format)
	require.Len(t, out.Pix, 2*4)

	a, r, g, b := ReadARGB32(out.Pix[0:4])
	assert.Equal(t, [4]byte{255, 10, 20, 30}, [4]byte{a, r, g, b})
	a, r, g, b = ReadARGB32(out.Pix[4:8])
	assert.Equal(t, [4]byte{255, 40, 50, 60}, [4]byte{a, r, g, b})
}

func TestToPresentationIsNoopWhenFormatsMatch(t *testing.T) {
	img := New(RGBA8, 1, 1)
	img.Pix = []byte{1, 2, 3, 4}
	out := ToPresentation(img, RGBA8)
	assert.Same(t, img, out)
}

func TestToPresentationCopiesSameWidthPaddedFormats(t *testing.T) {
	img := New(RGBA64, 1, 1)
	for i := range img.Pix {
		img.Pix[i] = byte(i + 1)
	}
	out := ToPresentation(img, RGBX64)
	require.Equal(t, RGBX64, out.Format)
	assert.Equal(t, img.Pix, out.Pix)
}

func TestCMYKToARGBNoInkIsWhite(t *testing.T) {
	img := New(CMYK8, 1, 1)
	img.Pix = []byte{0, 0, 0, 0} // no ink at all -> white
	out := CMYKToARGB(img, []byte{200})
	for i, v := range out.Pix {
		if v == 200 {
			continue // the alpha byte we supplied
		}
		assert.Equal(t, byte(255), v, "pixel byte %d should be white", i)
	}
}

func TestBufferPoolGetReturnsExactSizeZeroed(t *testing.T) {
	p := &BufferPool{}
	buf := p.Get(8)
	assert.Len(t, buf, 8)
	for _, v := range buf {
		assert.Equal(t, byte(0), v)
	}
	hits, misses := p.Metrics()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(1), misses)
}

func TestBufferPoolPutRecyclesBuffer(t *testing.T) {
	p := &BufferPool{}
	buf := p.Get(4)
	for i := range buf {
		buf[i] = 0xFF
	}
	p.Put(buf)

	recycled := p.Get(4)
	assert.Len(t, recycled, 4)
	for _, v := range recycled {
		assert.Equal(t, byte(0), v, "recycled buffer must be zeroed before reuse")
	}
	hits, misses := p.Metrics()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestSharedPoolIsProcessWide(t *testing.T) {
	assert.Same(t, SharedPool(), SharedPool())
}
