//go:build !gozstd || !cgo

package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewWriter returns a zstd frame writer.
func (c ZstdCodec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if err := ValidateZstdLevel(level); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstdEncoderLevel(level)),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	return enc, nil
}

// NewReader returns a zstd frame reader.
func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return dec.IOReadCloser(), nil
}
