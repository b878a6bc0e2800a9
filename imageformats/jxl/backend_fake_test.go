package jxl

import (
	"fmt"

	"github.com/jxlimg/codecs/internal/jxlengine"
)

// fakeFrame is one entry in a fakeDecoder's scripted frame timeline.
type fakeFrame struct {
	duration     uint32
	isLast       bool
	pixels       []byte
	extraPixels  map[uint32][]byte
}

// fakeBox is one entry in a fakeDecoder's scripted container box timeline.
type fakeBox struct {
	typ  string
	data []byte
}

const (
	fakeModeNone = iota
	fakeModeInitial
	fakeModeBoxScan
	fakeModeDecode
)

// fakeDecoder is an in-memory stand-in for *jxlengine.Decoder driven by a
// small scripted timeline (basic info, color encoding, frame headers, boxes,
// pixel payloads), letting the state machine in this package be exercised
// without a cgo build of libjxl.
type fakeDecoder struct {
	info          jxlengine.BasicInfo
	colorEncoding jxlengine.ColorEncoding
	structuredCE  bool
	icc           []byte
	extraChannels []jxlengine.ExtraChannelInfo
	frames        []fakeFrame
	boxes         []fakeBox

	defaultCmsOK bool

	// truncateAtBasicInfo makes the very first ProcessInput report
	// NEED_MORE_INPUT instead of BASIC_INFO.
	truncateAtBasicInfo bool
	// truncateAtFrame makes counting stall with NEED_MORE_INPUT once it
	// reaches this frame index; -1 disables it.
	truncateAtFrame int

	mode   int
	closed bool

	// modeInitial state
	parsePos          int
	curFrameForHeader int

	// modeBoxScan state
	boxPos              int
	awaitingBoxComplete bool
	boxBuf              []byte
	boxUnused           uint64
	boxScanExhausted    bool

	// modeDecode state
	subscribed                jxlengine.EventMask
	colorEncodingDoneForDecode bool
	decodeSubPhase             int
	decodeFrameIdx             int

	outBuf     []byte
	extraBufs  map[uint32][]byte

	rewindCount int
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{
		defaultCmsOK:    true,
		truncateAtFrame: -1,
	}
}

func (f *fakeDecoder) SetKeepOrientation(keep bool)          {}
func (f *fakeDecoder) AttachParallelRunner(n int) error      { return nil }
func (f *fakeDecoder) SetInput(buf []byte) error             { return nil }
func (f *fakeDecoder) ReleaseInput()                         {}

func (f *fakeDecoder) Rewind() {
	f.rewindCount++
	f.mode = fakeModeNone
	f.decodeFrameIdx = 0
	f.decodeSubPhase = 0
	f.colorEncodingDoneForDecode = false
	f.boxPos = 0
	f.awaitingBoxComplete = false
	f.boxScanExhausted = false
}

func (f *fakeDecoder) SubscribeEvents(mask jxlengine.EventMask) error {
	f.subscribed = mask
	switch {
	case mask&jxlengine.EventBasicInfo != 0:
		f.mode = fakeModeInitial
		f.parsePos = 0
	case mask&jxlengine.EventBox != 0:
		f.mode = fakeModeBoxScan
	case mask&jxlengine.EventFullImage != 0:
		f.mode = fakeModeDecode
	}
	return nil
}

func (f *fakeDecoder) SetDecompressBoxes(decompress bool) error { return nil }

func (f *fakeDecoder) ProcessInput() jxlengine.Status {
	switch f.mode {
	case fakeModeInitial:
		return f.processInitial()
	case fakeModeBoxScan:
		return f.processBoxScan()
	case fakeModeDecode:
		return f.processDecode()
	default:
		return jxlengine.StatusSuccess
	}
}

func (f *fakeDecoder) processInitial() jxlengine.Status {
	switch f.parsePos {
	case 0:
		f.parsePos++
		if f.truncateAtBasicInfo {
			return jxlengine.StatusNeedMoreInput
		}
		return jxlengine.StatusBasicInfo
	case 1:
		f.parsePos++
		return jxlengine.StatusColorEncoding
	default:
		idx := f.parsePos - 2
		if idx >= len(f.frames) {
			return jxlengine.StatusSuccess
		}
		if idx == f.truncateAtFrame {
			return jxlengine.StatusNeedMoreInput
		}
		f.curFrameForHeader = idx
		f.parsePos++
		return jxlengine.StatusFrame
	}
}

func (f *fakeDecoder) processBoxScan() jxlengine.Status {
	if f.awaitingBoxComplete {
		box := f.boxes[f.boxPos]
		n := copy(f.boxBuf, box.data)
		f.boxUnused = uint64(len(f.boxBuf) - n)
		f.awaitingBoxComplete = false
		f.boxPos++
		return jxlengine.StatusBoxComplete
	}
	if f.boxPos >= len(f.boxes) {
		f.boxScanExhausted = true
		return jxlengine.StatusSuccess
	}
	return jxlengine.StatusBox
}

func (f *fakeDecoder) processDecode() jxlengine.Status {
	simple := f.subscribed&jxlengine.EventColorEncoding != 0
	if simple && !f.colorEncodingDoneForDecode {
		f.colorEncodingDoneForDecode = true
		return jxlengine.StatusColorEncoding
	}
	if f.decodeFrameIdx >= len(f.frames) {
		return jxlengine.StatusSuccess
	}
	if f.decodeSubPhase == 0 {
		f.decodeSubPhase = 1
		return jxlengine.StatusFrame
	}
	frame := f.frames[f.decodeFrameIdx]
	if f.outBuf != nil {
		copy(f.outBuf, frame.pixels)
	}
	for ch, buf := range f.extraBufs {
		if data, ok := frame.extraPixels[ch]; ok {
			copy(buf, data)
		}
	}
	f.decodeSubPhase = 0
	f.decodeFrameIdx++
	return jxlengine.StatusFullImage
}

func (f *fakeDecoder) GetBasicInfo() (jxlengine.BasicInfo, error) { return f.info, nil }

func (f *fakeDecoder) SetPreferredColorProfile(gray bool) error { return nil }
func (f *fakeDecoder) SetDefaultCms() bool                      { return f.defaultCmsOK }

func (f *fakeDecoder) GetColorEncoding() (jxlengine.ColorEncoding, bool) {
	return f.colorEncoding, f.structuredCE
}

func (f *fakeDecoder) GetICCProfile() ([]byte, error) { return f.icc, nil }

func (f *fakeDecoder) GetFrameHeader() (jxlengine.FrameHeader, error) {
	fr := f.frames[f.curFrameForHeader]
	return jxlengine.FrameHeader{Duration: fr.duration, IsLast: fr.isLast}, nil
}

func (f *fakeDecoder) GetExtraChannelInfo(index uint32) (jxlengine.ExtraChannelInfo, error) {
	if int(index) >= len(f.extraChannels) {
		return jxlengine.ExtraChannelInfo{}, fmt.Errorf("fake: no extra channel %d", index)
	}
	return f.extraChannels[index], nil
}

func (f *fakeDecoder) SetImageOutBuffer(format jxlengine.PixelFormat, buf []byte) error {
	f.outBuf = buf
	return nil
}

func (f *fakeDecoder) SetExtraChannelBuffer(format jxlengine.PixelFormat, buf []byte, channelIndex uint32) error {
	if f.extraBufs == nil {
		f.extraBufs = make(map[uint32][]byte)
	}
	f.extraBufs[channelIndex] = buf
	return nil
}

func (f *fakeDecoder) ReleaseOutBuffers() {
	f.outBuf = nil
	f.extraBufs = nil
}

func (f *fakeDecoder) GetBoxType() (jxlengine.BoxType, error) {
	if f.boxPos >= len(f.boxes) {
		return jxlengine.BoxType{}, fmt.Errorf("fake: no box at %d", f.boxPos)
	}
	var bt jxlengine.BoxType
	copy(bt[:], f.boxes[f.boxPos].typ)
	return bt, nil
}

func (f *fakeDecoder) GetBoxSizeRaw() (uint64, error) {
	if f.boxPos >= len(f.boxes) {
		return 0, fmt.Errorf("fake: no box at %d", f.boxPos)
	}
	return uint64(len(f.boxes[f.boxPos].data)), nil
}

func (f *fakeDecoder) SetBoxBuffer(buf []byte) error {
	f.boxBuf = buf
	f.awaitingBoxComplete = true
	return nil
}

func (f *fakeDecoder) ReleaseBoxBuffer() uint64 { return f.boxUnused }

func (f *fakeDecoder) SkipFrames(n int) { f.decodeFrameIdx += n }

func (f *fakeDecoder) Close() { f.closed = true }

// fakeEncoder records the calls the encode path makes, so tests can assert
// on dispatch (CMYK vs RGB path, structured vs ICC color encoding, quality
// handling) without a cgo build of libjxl.
type fakeEncoder struct {
	basicInfo      jxlengine.BasicInfo
	blackBits      uint32
	icc            []byte
	colorEncoding  jxlengine.ColorEncoding
	colorEncodingSet bool
	boxes          []fakeBox
	lossless       bool
	distance       int
	frames         [][]byte
	extraFrames    map[uint32][]byte
	output         []byte
	closed         bool
}

func newFakeEncoder() *fakeEncoder {
	return &fakeEncoder{output: []byte("fake-jxl-output")}
}

func (e *fakeEncoder) AttachParallelRunner(n int) error { return nil }
func (e *fakeEncoder) UseContainerAndBoxes()            {}

func (e *fakeEncoder) SetBasicInfo(info jxlengine.BasicInfo) error {
	e.basicInfo = info
	return nil
}

func (e *fakeEncoder) SetBlackExtraChannelInfo(bitsPerSample, exponentBits uint32) error {
	e.blackBits = bitsPerSample
	return nil
}

func (e *fakeEncoder) SetICCProfile(icc []byte) error {
	e.icc = icc
	return nil
}

func (e *fakeEncoder) SetColorEncoding(enc jxlengine.ColorEncoding, gray bool) error {
	e.colorEncoding = enc
	e.colorEncodingSet = true
	return nil
}

func (e *fakeEncoder) AddBox(boxType string, data []byte) error {
	e.boxes = append(e.boxes, fakeBox{typ: boxType, data: data})
	return nil
}

func (e *fakeEncoder) CloseBoxes() {}

func (e *fakeEncoder) NewFrameSettings() {}
func (e *fakeEncoder) SetFrameLossless() { e.lossless = true }
func (e *fakeEncoder) SetFrameDistance(quality int) { e.distance = quality }

func (e *fakeEncoder) AddImageFrame(format jxlengine.PixelFormat, buf []byte) error {
	e.frames = append(e.frames, buf)
	return nil
}

func (e *fakeEncoder) SetExtraChannelBuffer(format jxlengine.PixelFormat, buf []byte, channelIndex uint32) error {
	if e.extraFrames == nil {
		e.extraFrames = make(map[uint32][]byte)
	}
	e.extraFrames[channelIndex] = buf
	return nil
}

func (e *fakeEncoder) CloseFrames() {}

func (e *fakeEncoder) ProcessOutput() ([]byte, error) { return e.output, nil }

func (e *fakeEncoder) Close() { e.closed = true }

var (
	_ decoderBackend = (*fakeDecoder)(nil)
	_ encoderBackend = (*fakeEncoder)(nil)
)
