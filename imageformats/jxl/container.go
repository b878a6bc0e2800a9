package jxl

import (
	log "github.com/sirupsen/logrus"

	"github.com/jxlimg/codecs/internal/exifmeta"
	"github.com/jxlimg/codecs/internal/jxlengine"
)

const (
	boxGrowIncrement = 16 * 1024
	boxSizeCap       = 4 * 1024 * 1024
)

// scanContainer rewinds the decoder, subscribes to box events, and walks
// container boxes until both Exif and XMP are found or the stream ends.
func (h *Handler) scanContainer() error {
	h.dec.Rewind()
	h.dec.ReleaseInput()
	if err := h.dec.SetInput(h.rawData); err != nil {
		return err
	}
	if err := h.dec.SubscribeEvents(jxlengine.EventBox | jxlengine.EventBoxComplete); err != nil {
		return err
	}
	if err := h.dec.SetDecompressBoxes(true); err != nil {
		log.Warnf("jxl: decompress-boxes setup failed: %v", err)
	}

	foundExif, foundXMP := false, false
	for !(foundExif && foundXMP) {
		status := h.dec.ProcessInput()
		switch status {
		case jxlengine.StatusBox:
			bt, err := h.dec.GetBoxType()
			if err != nil {
				return err
			}
			isExif := bt.String() == "Exif" && !foundExif
			isXMP := bt.String() == "xml " && !foundXMP
			if !isExif && !isXMP {
				continue
			}
			data, err := h.extractBox()
			if err != nil {
				log.Warnf("jxl: box extraction failed: %v", err)
				continue
			}
			if isExif {
				foundExif = true
				h.applyExifBox(data)
			} else {
				foundXMP = true
				h.xmp = data
			}
		case jxlengine.StatusNeedMoreInput, jxlengine.StatusSuccess:
			return nil
		default:
			return nil
		}
	}
	return nil
}

// extractBox reads one box's payload with a growing buffer: initial size
// is the raw box size (rejected if it exceeds the container length), then
// grown by boxGrowIncrement on BOX_NEED_MORE_OUTPUT up to boxSizeCap.
func (h *Handler) extractBox() ([]byte, error) {
	rawSize, err := h.dec.GetBoxSizeRaw()
	if err != nil {
		return nil, err
	}
	if rawSize > uint64(len(h.rawData)) {
		return nil, ErrOutOfRange
	}
	size := rawSize
	if size == 0 {
		size = boxGrowIncrement
	}
	buf := make([]byte, size)
	if err := h.dec.SetBoxBuffer(buf); err != nil {
		return nil, err
	}
	for {
		status := h.dec.ProcessInput()
		switch status {
		case jxlengine.StatusBoxComplete:
			unused := h.dec.ReleaseBoxBuffer()
			return buf[:uint64(len(buf))-unused], nil
		case jxlengine.StatusBoxNeedMoreOutput:
			unused := h.dec.ReleaseBoxBuffer()
			written := uint64(len(buf)) - unused
			if uint64(len(buf))+boxGrowIncrement > boxSizeCap {
				return nil, ErrOutOfRange
			}
			grown := make([]byte, len(buf)+boxGrowIncrement)
			copy(grown, buf[:written])
			buf = grown
			if err := h.dec.SetBoxBuffer(buf[written:]); err != nil {
				return nil, err
			}
		default:
			return nil, ErrDecoderInit
		}
	}
}

// applyExifBox trims the raw Exif box to its TIFF header and stores it, or
// warns and discards it when no header is found.
func (h *Handler) applyExifBox(box []byte) {
	trimmed, err := exifmeta.TrimToTIFFHeader(box)
	if err != nil {
		log.Warn("jxl: Exif box in JPEG XL file doesn't have a TIFF header")
		return
	}
	h.exif = trimmed
}
