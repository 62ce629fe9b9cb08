package encoding

import (
	"io"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/internal/pool"
)

// RawWriter writes array payloads to an underlying writer in a fixed byte order.
type RawWriter struct {
	w       io.Writer
	order   endian.Order
	written int64
}

// NewRawWriter creates a RawWriter emitting elements in byte order order.
func NewRawWriter(w io.Writer, order endian.Order) *RawWriter {
	return &RawWriter{w: w, order: order}
}

// Written returns the number of payload bytes written so far.
func (rw *RawWriter) Written() int64 {
	return rw.written
}

// NeedsSwap reports whether payloads of type typ must be byte-swapped to be
// written in the output order.
func (rw *RawWriter) NeedsSwap(typ dtype.Type) bool {
	return typ.OrderMatters() && typ.Order != rw.order
}

// Write writes data, holding elements of type typ, to the underlying writer.
//
// The data slice is never modified.
func (rw *RawWriter) Write(typ dtype.Type, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if !rw.NeedsSwap(typ) {
		return rw.writeFull(data)
	}

	unit := typ.SwapUnit()
	chunk := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(chunk)

	step := max(pool.ChunkBufferSize/unit, 1) * unit
	chunk.Grow(step)

	for off := 0; off < len(data); off += step {
		end := min(off+step, len(data))

		chunk.Reset()
		_, _ = chunk.Write(data[off:end])
		endian.SwapInPlace(chunk.Bytes(), unit)

		if err := rw.writeFull(chunk.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

func (rw *RawWriter) writeFull(p []byte) error {
	n, err := rw.w.Write(p)
	rw.written += int64(n)
	if err != nil {
		return err
	}
	if n < len(p) {
		return io.ErrShortWrite
	}

	return nil
}
