package pfm

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/jxlimg/codecs/colorspace"
	"github.com/jxlimg/codecs/rasterimage"
)

// Decode reads a full PFM stream and returns it as a linear-sRGB RGBX32F
// image: grayscale sources are broadcast across R, G, and B, alpha is
// always 1.0, and GIMP's bottom-up row order is flipped into the
// top-down layout every other rasterimage.Image uses.
func Decode(r io.Reader) (*rasterimage.Image, error) {
	br := bufio.NewReader(r)
	header, err := parseHeader(br)
	if err != nil {
		return nil, err
	}

	channels := 3
	if header.Gray {
		channels = 1
	}
	order := binary.ByteOrder(binary.LittleEndian)
	if header.BigEndian {
		order = binary.BigEndian
	}

	img := rasterimage.New(rasterimage.RGBX32F, header.Width, header.Height)
	img.Profile = colorspace.LinearSRGB()

	rowBytes := header.Width * channels * 4
	row := make([]byte, rowBytes)
	for fileRow := 0; fileRow < header.Height; fileRow++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, ErrTruncated
		}
		dstRow := fileRow
		if header.Variant == VariantGIMP {
			dstRow = header.Height - 1 - fileRow
		}
		writeRow(img, dstRow, row, channels, order)
	}
	return img, nil
}

// writeRow decodes one scanline of raw floats into img's RGBX32F storage,
// broadcasting a grayscale sample to all three color channels and always
// setting alpha to 1.0.
func writeRow(img *rasterimage.Image, dstRow int, row []byte, channels int, order binary.ByteOrder) {
	stride := img.Stride()
	one := math.Float32bits(1.0)
	for col := 0; col < img.Width; col++ {
		off := dstRow*stride + col*16
		var r, g, b float32
		if channels == 1 {
			v := readFloat32(row, col*4, order)
			r, g, b = v, v, v
		} else {
			base := col * 12
			r = readFloat32(row, base, order)
			g = readFloat32(row, base+4, order)
			b = readFloat32(row, base+8, order)
		}
		binary.LittleEndian.PutUint32(img.Pix[off:], math.Float32bits(r))
		binary.LittleEndian.PutUint32(img.Pix[off+4:], math.Float32bits(g))
		binary.LittleEndian.PutUint32(img.Pix[off+8:], math.Float32bits(b))
		binary.LittleEndian.PutUint32(img.Pix[off+12:], one)
	}
}

func readFloat32(buf []byte, off int, order binary.ByteOrder) float32 {
	return math.Float32frombits(order.Uint32(buf[off : off+4]))
}
