package jxl

// frameCacheState replaces the twin current_index/previous_index sentinel
// trick (-1 meaning "not yet decoded") with an explicit three-state enum,
// per the governing design's recommendation: unsigned index arithmetic
// around a -1 sentinel is a hazard, and "not decoded yet" and "different
// frame" are semantically distinct even though the original encoded both
// as index inequality.
type frameCacheState int

const (
	// cacheEmpty means no frame has been decoded yet; the next Read must
	// decode.
	cacheEmpty frameCacheState = iota
	// cacheFresh means currentImage holds the frame at currentIndex and a
	// Read for that same index can be served from cache.
	cacheFresh
	// cacheStale means currentImage no longer corresponds to currentIndex
	// (the cursor moved via seek); the next Read must decode.
	cacheStale
)

func (s frameCacheState) String() string {
	switch s {
	case cacheEmpty:
		return "Empty"
	case cacheFresh:
		return "Fresh"
	case cacheStale:
		return "Stale"
	default:
		return "Unknown"
	}
}
