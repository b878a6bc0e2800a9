package jxl

import "github.com/jxlimg/codecs/internal/jxlengine"

// decoderBackend is the subset of *jxlengine.Decoder the state machine in
// this package calls. It exists so tests can exercise ensureParsed,
// ensureAllCounted, decodeOneFrame, and the seek operations against an
// in-memory fake instead of a cgo build of libjxl.
type decoderBackend interface {
	SetKeepOrientation(keep bool)
	AttachParallelRunner(numThreads int) error
	SetInput(buf []byte) error
	ReleaseInput()
	Rewind()
	SubscribeEvents(mask jxlengine.EventMask) error
	SetDecompressBoxes(decompress bool) error
	ProcessInput() jxlengine.Status
	GetBasicInfo() (jxlengine.BasicInfo, error)
	SetPreferredColorProfile(gray bool) error
	SetDefaultCms() bool
	GetColorEncoding() (jxlengine.ColorEncoding, bool)
	GetICCProfile() ([]byte, error)
	GetFrameHeader() (jxlengine.FrameHeader, error)
	GetExtraChannelInfo(index uint32) (jxlengine.ExtraChannelInfo, error)
	SetImageOutBuffer(format jxlengine.PixelFormat, buf []byte) error
	SetExtraChannelBuffer(format jxlengine.PixelFormat, buf []byte, channelIndex uint32) error
	ReleaseOutBuffers()
	GetBoxType() (jxlengine.BoxType, error)
	GetBoxSizeRaw() (uint64, error)
	SetBoxBuffer(buf []byte) error
	ReleaseBoxBuffer() uint64
	SkipFrames(n int)
	Close()
}

// encoderBackend is the subset of *jxlengine.Encoder the encode path calls.
type encoderBackend interface {
	AttachParallelRunner(numThreads int) error
	UseContainerAndBoxes()
	SetBasicInfo(info jxlengine.BasicInfo) error
	SetBlackExtraChannelInfo(bitsPerSample, exponentBits uint32) error
	SetICCProfile(icc []byte) error
	SetColorEncoding(enc jxlengine.ColorEncoding, gray bool) error
	AddBox(boxType string, data []byte) error
	CloseBoxes()
	NewFrameSettings()
	SetFrameLossless()
	SetFrameDistance(quality int)
	AddImageFrame(format jxlengine.PixelFormat, buf []byte) error
	SetExtraChannelBuffer(format jxlengine.PixelFormat, buf []byte, channelIndex uint32) error
	CloseFrames()
	ProcessOutput() ([]byte, error)
	Close()
}

var (
	_ decoderBackend = (*jxlengine.Decoder)(nil)
	_ encoderBackend = (*jxlengine.Encoder)(nil)
)

// newDecoderBackend and newEncoderBackend are var-bound factories so tests
// can substitute a fake constructor; production code leaves them at their
// default (real cgo-backed) implementation.
var (
	newDecoderBackend = func() (decoderBackend, error) { return jxlengine.NewDecoder() }
	newEncoderBackend = func() (encoderBackend, error) { return jxlengine.NewEncoder() }
)
