package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/npyz/format"
)

// S2 levels.
const (
	S2LevelFast   = 1
	S2LevelBetter = 2
	S2LevelBest   = 3
)

// S2Codec provides S2 stream compression.
type S2Codec struct{}

var _ Codec = S2Codec{}

// Type returns format.CompressionS2.
func (S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// NewWriter returns an S2 stream writer.
func (S2Codec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	opts := []s2.WriterOption{s2.WriterConcurrency(1)}
	switch level {
	case LevelDefault, S2LevelFast:
	case S2LevelBetter:
		opts = append(opts, s2.WriterBetterCompression())
	case S2LevelBest:
		opts = append(opts, s2.WriterBestCompression())
	default:
		return nil, invalidLevel(format.CompressionS2, level)
	}

	return s2.NewWriter(w, opts...), nil
}

// NewReader returns an S2 stream reader.
func (S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
