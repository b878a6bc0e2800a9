package rasterimage

import (
	"sync"
	"sync/atomic"
)

// BufferPool recycles the scanline-aligned byte buffers the decode path
// hands to libjxl as out-buffers, keyed by exact size since alignment and
// pixel format both change the required length frame to frame.
type BufferPool struct {
	pools sync.Map // int(size) -> *sync.Pool

	hits   atomic.Int64
	misses atomic.Int64
}

var sharedPool = &BufferPool{}

// SharedPool is the process-wide buffer pool. Handlers never share decoder
// or encoder state, but a plain byte buffer pool carries no such
// constraint and benefits every stream in the process equally.
func SharedPool() *BufferPool { return sharedPool }

// Get returns a zeroed []byte of exactly size bytes, from the pool when
// available.
func (p *BufferPool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	v, ok := p.pools.Load(size)
	if !ok {
		p.misses.Add(1)
		return make([]byte, size)
	}
	pool := v.(*sync.Pool)
	buf, ok := pool.Get().([]byte)
	if !ok || buf == nil {
		p.misses.Add(1)
		return make([]byte, size)
	}
	p.hits.Add(1)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Put returns buf to the pool for reuse by future Get calls of the same
// size.
func (p *BufferPool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	size := len(buf)
	v, _ := p.pools.LoadOrStore(size, &sync.Pool{})
	v.(*sync.Pool).Put(buf)
}

// Metrics reports pool hit/miss counters for diagnostics.
func (p *BufferPool) Metrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}
