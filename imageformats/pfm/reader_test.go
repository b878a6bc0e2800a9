package pfm

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxlimg/codecs/colorspace"
	"github.com/jxlimg/codecs/rasterimage"
)

func floatsLE(vals ...float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func pixelAt(img *rasterimage.Image, x, y int) (r, g, b, a float32) {
	off := y*img.Stride() + x*16
	r = math.Float32frombits(binary.LittleEndian.Uint32(img.Pix[off:]))
	g = math.Float32frombits(binary.LittleEndian.Uint32(img.Pix[off+4:]))
	b = math.Float32frombits(binary.LittleEndian.Uint32(img.Pix[off+8:]))
	a = math.Float32frombits(binary.LittleEndian.Uint32(img.Pix[off+12:]))
	return
}

func TestDecodeGIMPVariantSingleRow(t *testing.T) {
	data := append([]byte("PF\n2 1\n-1.0\n"), floatsLE(1, 2, 3, 4, 5, 6)...)

	img, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.Equal(t, rasterimage.RGBX32F, img.Format)
	assert.Equal(t, colorspace.LinearSRGB(), img.Profile)

	r0, g0, b0, a0 := pixelAt(img, 0, 0)
	assert.Equal(t, [4]float32{1, 2, 3, 1}, [4]float32{r0, g0, b0, a0})
	r1, g1, b1, a1 := pixelAt(img, 1, 0)
	assert.Equal(t, [4]float32{4, 5, 6, 1}, [4]float32{r1, g1, b1, a1})
}

func TestDecodeGIMPVariantFlipsRowOrderAcrossMultipleRows(t *testing.T) {
	// Two 1-pixel rows: file order is bottom-up, so the first scanline in
	// the stream lands at the bottom of the decoded image (row 1).
	data := append([]byte("PF\n1 2\n-1.0\n"), floatsLE(9, 9, 9)...)
	data = append(data, floatsLE(1, 1, 1)...)

	img, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bottomRow := 1
	topRow := 0
	r, _, _, _ := pixelAt(img, 0, bottomRow)
	assert.Equal(t, float32(9), r, "first file row is the bottom of the image")
	r, _, _, _ = pixelAt(img, 0, topRow)
	assert.Equal(t, float32(1), r, "second file row is the top of the image")
}

func TestDecodePhotoshopVariantIsTopDown(t *testing.T) {
	data := []byte("PF\n1\n2\n1.0\n")
	data = append(data, floatsBE(9, 9, 9)...)
	data = append(data, floatsBE(1, 1, 1)...)

	img, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	r, _, _, _ := pixelAt(img, 0, 0)
	assert.Equal(t, float32(9), r, "Photoshop variant keeps file row order top-down")
	r, _, _, _ = pixelAt(img, 0, 1)
	assert.Equal(t, float32(1), r)
}

func floatsBE(vals ...float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func TestDecodeGrayscaleBroadcastsToRGB(t *testing.T) {
	data := append([]byte("Pf\n1 1\n-1.0\n"), floatsLE(0.5)...)

	img, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, b, a := pixelAt(img, 0, 0)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, [4]float32{r, g, b, a})
}

func TestDecodeRejectsZeroScale(t *testing.T) {
	data := []byte("PF\n1 1\n0.0\n")
	_, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidScale)
}

func TestDecodeRejectsNonPFMMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a pfm file at all")))
	assert.ErrorIs(t, err, ErrNotThisFormat)
}

func TestDecodeRejectsMalformedDimensions(t *testing.T) {
	data := []byte("PF\nabc def\n-1.0\n")
	_, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeRejectsTruncatedPixelData(t *testing.T) {
	data := append([]byte("PF\n2 2\n-1.0\n"), floatsLE(1, 2, 3)...)
	_, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestProbeRecognizesBothVariants(t *testing.T) {
	assert.NoError(t, Probe([]byte("PF\n1 1\n1.0\n")))
	assert.NoError(t, Probe([]byte("Pf\n1 1\n1.0\n")))
	assert.ErrorIs(t, Probe([]byte("junk")), ErrNotThisFormat)
}
