package jxl

import (
	log "github.com/sirupsen/logrus"

	"github.com/jxlimg/codecs/internal/jxlengine"
)

// rewind releases and resets the decoder, reattaches the parallel runner,
// re-feeds the raw buffer, and re-subscribes to the minimum events needed
// for the next decode pass: COLOR_ENCODING|FULL_IMAGE for simple images
// (those that get the preferred sRGB profile re-applied), FULL_IMAGE alone
// for original-profile or animated streams.
func (h *Handler) rewind() error {
	h.dec.Rewind()
	h.dec.ReleaseInput()

	if numThreads := readThreadCount(); numThreads > 1 {
		if err := h.dec.AttachParallelRunner(numThreads); err != nil {
			log.Warnf("jxl: parallel runner reattach failed: %v", err)
		}
	}

	simple := !h.basicInfo.UsesOriginalProfile && !h.basicInfo.HaveAnimation
	events := jxlengine.EventFullImage
	if simple {
		events |= jxlengine.EventColorEncoding
	}
	if err := h.dec.SubscribeEvents(events); err != nil {
		return h.fail(ErrDecoderInit, err.Error())
	}
	if err := h.dec.SetInput(h.rawData); err != nil {
		return h.fail(ErrDecoderInit, err.Error())
	}

	if simple {
		gray := h.basicInfo.NumColorChannels == 1 && h.basicInfo.AlphaBits == 0
		status := h.dec.ProcessInput()
		if status == jxlengine.StatusColorEncoding {
			if err := h.dec.SetPreferredColorProfile(gray); err != nil {
				log.Warnf("jxl: SetPreferredColorProfile on rewind failed: %v", err)
			}
		}
	}

	h.currentIndex = 0
	h.cache = cacheStale
	return nil
}

// jumpToNextImage advances the cursor by one frame, wrapping to 0 via a
// full rewind; otherwise it asks the decoder to skip one frame ahead.
func (h *Handler) jumpToNextImage() error {
	if h.currentIndex+1 >= len(h.frameDelays) {
		return h.rewind()
	}
	h.currentIndex++
	h.dec.SkipFrames(1)
	h.cache = cacheStale
	return nil
}

// jumpToImage moves the cursor to frame n: a no-op if already there,
// forward-skip if n is ahead of the cursor, rewind-then-forward-skip
// otherwise. Rejects out-of-range indices.
func (h *Handler) jumpToImage(n int) error {
	if n < 0 || n >= len(h.frameDelays) {
		return h.fail(ErrOutOfRange, "frame index out of range")
	}
	if n == h.currentIndex {
		return nil
	}
	if n > h.currentIndex {
		h.dec.SkipFrames(n - h.currentIndex)
		h.currentIndex = n
		h.cache = cacheStale
		return nil
	}
	if err := h.rewind(); err != nil {
		return err
	}
	if n > 0 {
		h.dec.SkipFrames(n)
		h.currentIndex = n
	}
	h.cache = cacheStale
	return nil
}
