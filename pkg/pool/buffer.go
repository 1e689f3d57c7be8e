package pool

import (
	"sync"
)

// BufferPool manages a pool of fixed size read buffers.
type BufferPool struct {
	size int       // Length of each buffer.
	pool sync.Pool // Thread-safe pool of *[]byte.
}

// Creates a new buffer pool handing out buffers of exactly size bytes.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Size returns the length of the buffers handed out by the pool.
func (bp *BufferPool) Size() int {
	return bp.size
}

// Retrieves a buffer from the pool. Its contents are unspecified.
func (bp *BufferPool) Get() *[]byte {
	buf := bp.pool.Get().(*[]byte)
	*buf = (*buf)[:bp.size]
	return buf
}

// Returns a buffer to the pool.
func (bp *BufferPool) Put(buf *[]byte) {
	// Don't pool buffers that were not handed out by this pool.
	if buf == nil || cap(*buf) != bp.size {
		return
	}
	bp.pool.Put(buf)
}
