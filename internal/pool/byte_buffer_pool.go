package pool

import (
	"io"
	"sync"
)

const (
	EntryBufferDefaultSize  = 1024 * 64        // 64KiB
	EntryBufferMaxThreshold = 1024 * 1024 * 64 // 64MiB
	ChunkBufferSize         = 1024 * 32        // 32KiB
)

// ByteBuffer is a growable byte slice that implements io.Writer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by EntryBufferDefaultSize; larger buffers grow by 25% of their
// capacity, and never by less than requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := EntryBufferDefaultSize
	if cap(bb.B) > 4*EntryBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	if err == nil && n < len(bb.B) {
		err = io.ErrShortWrite
	}

	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers. Buffers whose capacity exceeds
// maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and returns it to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	entryPool = NewByteBufferPool(EntryBufferDefaultSize, EntryBufferMaxThreshold)
	chunkPool = NewByteBufferPool(ChunkBufferSize, ChunkBufferSize)
)

// GetEntryBuffer retrieves a buffer for encoding one archive entry.
func GetEntryBuffer() *ByteBuffer {
	return entryPool.Get()
}

// PutEntryBuffer returns an entry buffer to the pool.
func PutEntryBuffer(bb *ByteBuffer) {
	entryPool.Put(bb)
}

// GetChunkBuffer retrieves a fixed-size scratch buffer of ChunkBufferSize bytes
// capacity, used for byte-order conversion.
func GetChunkBuffer() *ByteBuffer {
	return chunkPool.Get()
}

// PutChunkBuffer returns a scratch buffer to the pool.
func PutChunkBuffer(bb *ByteBuffer) {
	chunkPool.Put(bb)
}
