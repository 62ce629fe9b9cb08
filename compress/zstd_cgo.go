//go:build gozstd && cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

const gozstdDefaultLevel = 3

// NewWriter returns a zstd frame writer backed by libzstd.
func (c ZstdCodec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if err := ValidateZstdLevel(level); err != nil {
		return nil, err
	}
	if level == LevelDefault {
		level = gozstdDefaultLevel
	}

	return &gozstdWriter{zw: gozstd.NewWriterLevel(w, level)}, nil
}

// NewReader returns a zstd frame reader backed by libzstd.
func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{zr: gozstd.NewReader(r)}, nil
}

type gozstdWriter struct {
	zw *gozstd.Writer
}

func (w *gozstdWriter) Write(p []byte) (int, error) {
	return w.zw.Write(p)
}

func (w *gozstdWriter) Close() error {
	err := w.zw.Close()
	w.zw.Release()

	return err
}

type gozstdReader struct {
	zr *gozstd.Reader
}

func (r *gozstdReader) Read(p []byte) (int, error) {
	return r.zr.Read(p)
}

func (r *gozstdReader) Close() error {
	r.zr.Release()
	return nil
}
