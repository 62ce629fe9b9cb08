package compress

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/npyz/format"
)

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4Codec provides LZ4 frame compression.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// Type returns format.CompressionLZ4.
func (LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

// NewWriter returns an LZ4 frame writer. LevelDefault selects the fast mode.
func (LZ4Codec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	cl := lz4.Fast
	if level != LevelDefault {
		if level < 1 || level > len(lz4Levels) {
			return nil, invalidLevel(format.CompressionLZ4, level)
		}
		cl = lz4Levels[level-1]
	}

	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(cl), lz4.ConcurrencyOption(1)); err != nil {
		return nil, fmt.Errorf("lz4 writer: %w", err)
	}

	return zw, nil
}

// NewReader returns an LZ4 frame reader.
func (LZ4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
