package compress

import (
	"io"

	"github.com/arloliu/npyz/format"
)

// NoOpCodec passes bytes through unchanged.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// Type returns format.CompressionNone.
func (NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// NewWriter returns w wrapped so that Close does not close w. The level is ignored.
func (NoOpCodec) NewWriter(w io.Writer, _ int) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// NewReader returns r wrapped with a no-op Close.
func (NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
