package npy

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/encoding"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/internal/options"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/section"
)

// Encoder writes arrays in the NPY format.
//
// An Encoder holds no per-array state and is safe for concurrent use.
type Encoder struct {
	*EncoderConfig
}

// NewEncoder creates an Encoder with the given options.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: config}, nil
}

// Header returns the header Encode writes for a.
//
// Returns:
//   - errs.ErrUnsupportedType if the element type has no descriptor
//   - errs.ErrInvalidShape or errs.ErrDataSizeMismatch if a is malformed
func (e *Encoder) Header(a *ndarray.Array) (*section.Header, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrEncoding)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	typ := a.Type()
	if typ.OrderMatters() {
		typ = typ.WithOrder(e.order)
	}

	descr, err := typ.Descr()
	if err != nil {
		return nil, err
	}

	h := section.NewHeader(descr, true, a.Shape())
	if err := h.Validate(); err != nil {
		return nil, err
	}

	return h, nil
}

// Size returns the number of bytes Encode writes for a without stream compression.
func (e *Encoder) Size(a *ndarray.Array) (int, error) {
	h, err := e.Header(a)
	if err != nil {
		return 0, err
	}

	hs, err := h.Size()
	if err != nil {
		return 0, err
	}

	return hs + a.ByteSize(), nil
}

// Encode writes a to w: the header, then the element bytes in column-major
// order. Element bytes are written without copying when the output byte order
// matches the array's.
//
// Shape and type problems are detected before anything is written to w.
func (e *Encoder) Encode(w io.Writer, a *ndarray.Array) error {
	preamble, err := e.preamble(a)
	if err != nil {
		return err
	}

	return e.write(w, preamble, a)
}

// Marshal returns the encoded form of a.
func (e *Encoder) Marshal(a *ndarray.Array) ([]byte, error) {
	var buf bytes.Buffer
	if size, err := e.Size(a); err == nil && e.streamType == format.CompressionNone {
		buf.Grow(size)
	}

	if err := e.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *Encoder) preamble(a *ndarray.Array) ([]byte, error) {
	h, err := e.Header(a)
	if err != nil {
		return nil, err
	}

	return h.Bytes()
}

// write emits a prepared preamble and the payload of a, through the stream
// codec when one is configured.
func (e *Encoder) write(w io.Writer, preamble []byte, a *ndarray.Array) error {
	if e.streamType == format.CompressionNone {
		return e.writeRaw(w, preamble, a)
	}

	cw, err := compress.NewWriter(w, e.streamType, e.streamLevel)
	if err != nil {
		return err
	}
	if err := e.writeRaw(cw, preamble, a); err != nil {
		_ = cw.Close()
		return err
	}

	return cw.Close()
}

func (e *Encoder) writeRaw(w io.Writer, preamble []byte, a *ndarray.Array) error {
	n, err := w.Write(preamble)
	if err != nil {
		return err
	}
	if n < len(preamble) {
		return io.ErrShortWrite
	}

	rw := encoding.NewRawWriter(w, e.order)
	if err := rw.Write(a.Type(), a.Data()); err != nil {
		return err
	}
	if rw.Written() != int64(a.ByteSize()) {
		return fmt.Errorf("payload wrote %d of %d bytes: %w", rw.Written(), a.ByteSize(), io.ErrShortWrite)
	}

	return nil
}

// Encode writes a to w using an Encoder configured with opts.
func Encode(w io.Writer, a *ndarray.Array, opts ...EncoderOption) error {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return err
	}

	return enc.Encode(w, a)
}

// Marshal returns the encoded form of a using an Encoder configured with opts.
func Marshal(a *ndarray.Array, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Marshal(a)
}
