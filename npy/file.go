package npy

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/internal/pool"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/sink"
)

// WriteFile encodes a into the file at path, creating it or truncating an
// existing file. No extension is appended to path.
//
// Encoding problems are reported before the file is touched. Failures to
// create, write or close the file wrap errs.ErrDestination; a partially
// written file is left in place.
func (e *Encoder) WriteFile(path string, a *ndarray.Array) error {
	preamble, err := e.preamble(a)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.Destination(path, err)
	}

	return errs.Destination(path, e.writeAndClose(f, preamble, a))
}

// WriteTo encodes a into the object called name created by s.
//
// Error semantics match WriteFile.
func (e *Encoder) WriteTo(ctx context.Context, s sink.Sink, name string, a *ndarray.Array) error {
	preamble, err := e.preamble(a)
	if err != nil {
		return err
	}

	wc, err := s.Create(ctx, name)
	if err != nil {
		return errs.Destination(name, err)
	}

	return errs.Destination(name, e.writeAndClose(wc, preamble, a))
}

// writeAndClose writes through a buffered writer and always closes wc.
func (e *Encoder) writeAndClose(wc io.WriteCloser, preamble []byte, a *ndarray.Array) error {
	bw := bufio.NewWriterSize(wc, pool.EntryBufferDefaultSize)

	err := e.write(bw, preamble, a)
	if err == nil {
		err = bw.Flush()
	}

	return errors.Join(err, wc.Close())
}

// WriteFile encodes a into the file at path using an Encoder configured with opts.
func WriteFile(path string, a *ndarray.Array, opts ...EncoderOption) error {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return err
	}

	return enc.WriteFile(path, a)
}

// WriteTo encodes a into the object called name created by s, using an
// Encoder configured with opts.
func WriteTo(ctx context.Context, s sink.Sink, name string, a *ndarray.Array, opts ...EncoderOption) error {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return err
	}

	return enc.WriteTo(ctx, s, name, a)
}
