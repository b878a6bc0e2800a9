package jxlengine

/*
#cgo pkg-config: libjxl libjxl_threads libjxl_cms
#include <jxl/decode.h>
#include <jxl/encode.h>
#include <jxl/types.h>
#include <jxl/color_encoding.h>
*/
import "C"

// Status mirrors JxlDecoderStatus / JxlEncoderStatus. The two enums are
// numerically distinct in libjxl; this package only ever compares Status
// values returned by the call that produced them, so a single Go type is
// enough to keep the decoder and encoder call sites symmetrical.
type Status int

const (
	StatusSuccess            Status = C.JXL_DEC_SUCCESS
	StatusError              Status = C.JXL_DEC_ERROR
	StatusNeedMoreInput      Status = C.JXL_DEC_NEED_MORE_INPUT
	StatusNeedImageOutBuffer Status = C.JXL_DEC_NEED_IMAGE_OUT_BUFFER
	StatusBasicInfo          Status = C.JXL_DEC_BASIC_INFO
	StatusColorEncoding      Status = C.JXL_DEC_COLOR_ENCODING
	StatusFrame              Status = C.JXL_DEC_FRAME
	StatusFullImage          Status = C.JXL_DEC_FULL_IMAGE
	StatusBox                Status = C.JXL_DEC_BOX
	StatusBoxComplete        Status = C.JXL_DEC_BOX_COMPLETE
	StatusBoxNeedMoreOutput  Status = C.JXL_DEC_BOX_NEED_MORE_OUTPUT
)

// EventMask is the OR of JXL_DEC_* subscription flags.
type EventMask int

const (
	EventBasicInfo     EventMask = C.JXL_DEC_BASIC_INFO
	EventColorEncoding EventMask = C.JXL_DEC_COLOR_ENCODING
	EventFrame         EventMask = C.JXL_DEC_FRAME
	EventFullImage     EventMask = C.JXL_DEC_FULL_IMAGE
	EventBox           EventMask = C.JXL_DEC_BOX
	EventBoxComplete   EventMask = C.JXL_DEC_BOX_COMPLETE
)

// Signature mirrors JxlSignature.
type Signature int

const (
	SigNotEnoughBytes Signature = C.JXL_SIG_NOT_ENOUGH_BYTES
	SigInvalid        Signature = C.JXL_SIG_INVALID
	SigCodestream     Signature = C.JXL_SIG_CODESTREAM
	SigContainer      Signature = C.JXL_SIG_CONTAINER
)

// DataType mirrors JxlDataType.
type DataType int

const (
	TypeU8     DataType = C.JXL_TYPE_UINT8
	TypeU16    DataType = C.JXL_TYPE_UINT16
	TypeFloat  DataType = C.JXL_TYPE_FLOAT
	TypeFloat16 DataType = C.JXL_TYPE_FLOAT16
)

// Endianness mirrors JxlEndianness.
type Endianness int

const (
	EndianNative Endianness = C.JXL_NATIVE_ENDIAN
	EndianLittle Endianness = C.JXL_LITTLE_ENDIAN
	EndianBig    Endianness = C.JXL_BIG_ENDIAN
)

// PixelFormat mirrors JxlPixelFormat.
type PixelFormat struct {
	NumChannels int
	DataType    DataType
	Endianness  Endianness
	Align       int
}

// ChannelType mirrors JxlExtraChannelType (the subset this codec cares
// about).
type ChannelType int

const (
	ChannelAlpha ChannelType = C.JXL_CHANNEL_ALPHA
	ChannelBlack ChannelType = C.JXL_CHANNEL_BLACK
)

// ExtraChannelInfo mirrors the fields of JxlExtraChannelInfo this codec
// reads.
type ExtraChannelInfo struct {
	Type            ChannelType
	BitsPerSample   uint32
	ExponentBits    uint32
}

// Animation mirrors JxlAnimationHeader.
type Animation struct {
	TpsNumerator   uint32
	TpsDenominator uint32
	NumLoops       uint32
}

// BasicInfo mirrors the fields of JxlBasicInfo this codec reads or writes.
type BasicInfo struct {
	Xsize                  uint32
	Ysize                  uint32
	BitsPerSample          uint32
	ExponentBitsPerSample  uint32
	NumColorChannels       uint32
	AlphaBits              uint32
	AlphaExponentBits      uint32
	NumExtraChannels       uint32
	UsesOriginalProfile    bool
	HaveAnimation          bool
	HaveContainer          bool
	Orientation            Orientation
	Animation              Animation
}

// Orientation mirrors JxlOrientation.
type Orientation int

const (
	OrientIdentity        Orientation = C.JXL_ORIENT_IDENTITY
	OrientFlipHorizontal  Orientation = C.JXL_ORIENT_FLIP_HORIZONTAL
	OrientRotate180       Orientation = C.JXL_ORIENT_ROTATE_180
	OrientFlipVertical    Orientation = C.JXL_ORIENT_FLIP_VERTICAL
	OrientTranspose       Orientation = C.JXL_ORIENT_TRANSPOSE
	OrientRotate90CW      Orientation = C.JXL_ORIENT_ROTATE_90_CW
	OrientAntiTranspose   Orientation = C.JXL_ORIENT_ANTI_TRANSPOSE
	OrientRotate90CCW     Orientation = C.JXL_ORIENT_ROTATE_90_CCW
)

// FrameHeader mirrors the fields of JxlFrameHeader this codec reads.
type FrameHeader struct {
	Duration uint32
	IsLast   bool
}

// ColorSpace mirrors JxlColorSpace.
type ColorSpace int

const (
	ColorSpaceRGB   ColorSpace = C.JXL_COLOR_SPACE_RGB
	ColorSpaceGray  ColorSpace = C.JXL_COLOR_SPACE_GRAY
)

// WhitePoint mirrors JxlWhitePoint.
type WhitePoint int

const (
	WhitePointD65    WhitePoint = C.JXL_WHITE_POINT_D65
	WhitePointCustom WhitePoint = C.JXL_WHITE_POINT_CUSTOM
)

// Primaries mirrors JxlPrimaries.
type Primaries int

const (
	PrimariesSRGB   Primaries = C.JXL_PRIMARIES_SRGB
	PrimariesCustom Primaries = C.JXL_PRIMARIES_CUSTOM
	Primaries2100   Primaries = C.JXL_PRIMARIES_2100
	PrimariesP3     Primaries = C.JXL_PRIMARIES_P3
)

// TransferFunction mirrors JxlTransferFunction.
type TransferFunction int

const (
	TransferSRGB   TransferFunction = C.JXL_TRANSFER_FUNCTION_SRGB
	TransferLinear TransferFunction = C.JXL_TRANSFER_FUNCTION_LINEAR
	TransferGamma  TransferFunction = C.JXL_TRANSFER_FUNCTION_GAMMA
)

// ColorEncoding mirrors JxlColorEncoding.
type ColorEncoding struct {
	ColorSpace      ColorSpace
	WhitePoint      WhitePoint
	WhitePointXY    [2]float64
	Primaries       Primaries
	PrimariesRedXY  [2]float64
	PrimariesGreenXY [2]float64
	PrimariesBlueXY [2]float64
	Transfer        TransferFunction
	Gamma           float64
}

// BoxType is a 4-byte ASCII ISOBMFF box tag, e.g. "Exif" or "xml ".
type BoxType [4]byte

func (b BoxType) String() string { return string(b[:]) }
