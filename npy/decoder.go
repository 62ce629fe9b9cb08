package npy

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/encoding"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/internal/options"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/section"
)

// DecoderConfig holds the settings of Decode.
type DecoderConfig struct {
	streamType format.CompressionType
}

// DecoderOption configures Decode.
type DecoderOption = options.Option[*DecoderConfig]

// WithStreamDecompression reads files written with WithStreamCompression(ct, ...).
func WithStreamDecompression(ct format.CompressionType) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.streamType = ct

		return nil
	})
}

func newDecoderConfig(opts []DecoderOption) (*DecoderConfig, error) {
	config := &DecoderConfig{streamType: format.CompressionNone}
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return config, nil
}

// open wraps r with the configured stream codec.
func (c *DecoderConfig) open(r io.Reader) (io.ReadCloser, error) {
	return compress.NewReader(r, c.streamType)
}

// Decode reads one array from r.
//
// Arrays stored in C order are reordered into column-major order. The payload
// keeps the byte order declared by the file; use Array.WithOrder or
// ndarray.Values to convert.
func Decode(r io.Reader, opts ...DecoderOption) (*ndarray.Array, error) {
	config, err := newDecoderConfig(opts)
	if err != nil {
		return nil, err
	}

	sr, err := config.open(r)
	if err != nil {
		return nil, err
	}
	defer sr.Close()

	h, err := section.ReadHeader(sr)
	if err != nil {
		return nil, err
	}

	return decodePayload(sr, h)
}

func decodePayload(r io.Reader, h *section.Header) (*ndarray.Array, error) {
	typ, err := dtype.Parse(h.Descr)
	if err != nil {
		return nil, err
	}

	n, err := ndarray.Size(h.Shape)
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt/typ.Width {
		return nil, fmt.Errorf("%w: shape %v is too large", errs.ErrInvalidPayload, h.Shape)
	}

	data, err := encoding.ReadPayload(r, n*typ.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}

	if h.FortranOrder {
		return ndarray.FromBytes(typ, h.Shape, data)
	}

	return ndarray.FromRowMajor(typ, h.Shape, data)
}

// Unmarshal decodes an array from data.
func Unmarshal(data []byte, opts ...DecoderOption) (*ndarray.Array, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// ReadFile decodes the array stored in the file at path.
func ReadFile(path string, opts ...DecoderOption) (*ndarray.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(bufio.NewReader(f), opts...)
}

// ReadHeader reads only the header of the array stored at path.
func ReadHeader(path string, opts ...DecoderOption) (*section.Header, error) {
	config, err := newDecoderConfig(opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sr, err := config.open(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	defer sr.Close()

	return section.ReadHeader(sr)
}
