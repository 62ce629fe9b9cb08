package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
)

// LevelDefault selects the default level of a codec.
const LevelDefault = -1

// Codec wraps byte streams with a single compression algorithm.
//
// Writers returned by NewWriter must be closed to flush the final frame. Closing
// them never closes the wrapped writer. Readers returned by NewReader release
// their decoder state on Close and never close the wrapped reader.
type Codec interface {
	// Type returns the compression algorithm implemented by the codec.
	Type() format.CompressionType

	// NewWriter returns a writer compressing into w at the given level.
	NewWriter(w io.Writer, level int) (io.WriteCloser, error)

	// NewReader returns a reader decompressing from r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:    NoOpCodec{},
	format.CompressionZstd:    ZstdCodec{},
	format.CompressionS2:      S2Codec{},
	format.CompressionLZ4:     LZ4Codec{},
	format.CompressionDeflate: DeflateCodec{},
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type %s", errs.ErrInvalidCompression, compressionType)
}

// NewWriter wraps w with the codec for compressionType.
func NewWriter(w io.Writer, compressionType format.CompressionType, level int) (io.WriteCloser, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.NewWriter(w, level)
}

// NewReader wraps r with the codec for compressionType.
func NewReader(r io.Reader, compressionType format.CompressionType) (io.ReadCloser, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.NewReader(r)
}

// CompressionStats describes the effect of compressing one payload.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression. It returns 0.0 if the
// original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

func invalidLevel(t format.CompressionType, level int) error {
	return fmt.Errorf("%w: level %d is out of range for %s", errs.ErrInvalidCompression, level, t)
}
