package compress

import (
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/arloliu/npyz/format"
)

// DeflateCodec produces raw DEFLATE streams (RFC 1951) without a container.
type DeflateCodec struct{}

var _ Codec = DeflateCodec{}

// Type returns format.CompressionDeflate.
func (DeflateCodec) Type() format.CompressionType {
	return format.CompressionDeflate
}

// NewWriter returns a DEFLATE writer. Levels follow the flate package, from
// flate.HuffmanOnly (-2) to flate.BestCompression (9).
func (DeflateCodec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if err := ValidateDeflateLevel(level); err != nil {
		return nil, err
	}

	fw, err := flate.NewWriter(w, level)
	if err != nil {
		return nil, err
	}

	return fw, nil
}

// NewReader returns a DEFLATE reader.
func (DeflateCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}

// ValidateDeflateLevel checks that level is accepted by the DEFLATE encoder.
func ValidateDeflateLevel(level int) error {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return invalidLevel(format.CompressionDeflate, level)
	}

	return nil
}
