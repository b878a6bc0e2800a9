// Package imagecodec declares the capability surface a pluggable image
// handler exposes to its host, standing in for the polymorphic
// QImageIOHandler interface the original codecs implemented. Go's own
// image.RegisterFormat mechanism covers plain decode/decode-config; this
// package covers the richer multi-image, option, and seek surface that
// image.RegisterFormat has no room for.
package imagecodec

import (
	"errors"
	"image"
	"io"
)

// ErrUnsupportedOption is returned by SetOption when the option name is not
// settable or the value has the wrong type. Option reports an unrecognized
// name with ok=false instead.
var ErrUnsupportedOption = errors.New("imagecodec: unsupported option")

// Option names understood by the option surface below, matching §6 of the
// governing design: Quality, Size, Animation, ImageTransformation.
const (
	OptionQuality             = "Quality"
	OptionSize                = "Size"
	OptionAnimation           = "Animation"
	OptionImageTransformation = "ImageTransformation"
)

// Transformation is one of the eight orientation codes a handler can apply
// or report, matching the eight JxlOrientation values.
type Transformation int

const (
	TransformationNone Transformation = iota
	TransformationFlipHorizontal
	TransformationRotate180
	TransformationFlipVertical
	TransformationTranspose
	TransformationRotate90
	TransformationTransposeFlip
	TransformationRotate270
)

// MultiImageReader is implemented by handlers that decode more than one
// logical image per stream (JPEG XL animations). image.RegisterFormat's
// Decode/DecodeConfig only ever see the first frame; callers that need
// every frame use a codec's own handler type (for JPEG XL, the *jxl.Handler
// returned by jxl.NewHandler), which implements this interface.
type MultiImageReader interface {
	// Read decodes the current frame into an image.Image.
	Read() (image.Image, error)
	// ImageCount reports the total number of frames, 1 for static images.
	ImageCount() int
	// LoopCount reports the animation loop count, 0 meaning infinite.
	LoopCount() int
	// CurrentImageNumber reports the zero-based index of the frame Read
	// will return next, or -1 before the first successful parse.
	CurrentImageNumber() int
	// NextImageDelay reports the millisecond delay before the frame at
	// CurrentImageNumber should be displayed.
	NextImageDelay() int
	// JumpToImage moves the cursor to frame n, or returns an error if n is
	// out of range.
	JumpToImage(n int) error
	// JumpToNextImage advances the cursor by one frame, wrapping to 0.
	JumpToNextImage() error
}

// OptionSource is implemented by handlers exposing the host option surface
// (Quality, Size, Animation, ImageTransformation).
type OptionSource interface {
	Option(name string) (any, bool)
	SetOption(name string, value any) error
	SupportsOption(name string) bool
}

// Writer is implemented by handlers that also encode, mirroring the write
// half of QImageIOHandler.
type Writer interface {
	Write(w io.Writer, img image.Image) error
}
