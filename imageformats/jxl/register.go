package jxl

import (
	stdimage "image"
	"image/color"
	"io"
)

// jxlCodestreamMagic is the two-byte bare-codestream signature.
const jxlCodestreamMagic = "\xFF\x0A"

// jxlContainerMagic is the twelve-byte ISOBMFF container signature.
const jxlContainerMagic = "\x00\x00\x00\x0C\x4A\x58\x4C\x20\x0D\x0A\x87\x0A"

func init() {
	stdimage.RegisterFormat("jxl", jxlCodestreamMagic, Decode, DecodeConfig)
	stdimage.RegisterFormat("jxl", jxlContainerMagic, Decode, DecodeConfig)
}

// Decode implements image.RegisterFormat's decode hook: it reads the full
// stream (the decoder is always fed the entire file, per the governing
// design's "no streaming into the lib" rule), decodes the first frame, and
// returns it.
func Decode(r io.Reader) (stdimage.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h := NewHandler(data)
	return h.Read()
}

// DecodeConfig implements image.RegisterFormat's config hook: it parses
// just enough to report dimensions and an approximate color model, without
// decoding pixels.
func DecodeConfig(r io.Reader) (stdimage.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return stdimage.Config{}, err
	}
	h := NewHandler(data)
	if err := h.ensureParsed(); err != nil {
		return stdimage.Config{}, err
	}
	return stdimage.Config{
		ColorModel: colorModelFor(h.basicInfo.NumColorChannels),
		Width:      int(h.basicInfo.Xsize),
		Height:     int(h.basicInfo.Ysize),
	}, nil
}

func colorModelFor(numColorChannels uint32) color.Model {
	if numColorChannels == 1 {
		return color.GrayModel
	}
	return color.RGBAModel
}
