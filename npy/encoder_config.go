package npy

import (
	"fmt"
	"io"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/internal/options"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	order       endian.Order
	streamType  format.CompressionType
	streamLevel int
}

// NewEncoderConfig returns the default configuration: host byte order and no
// stream compression.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		order:       endian.Native(),
		streamType:  format.CompressionNone,
		streamLevel: compress.LevelDefault,
	}
}

// Order returns the output byte order.
func (c *EncoderConfig) Order() endian.Order {
	return c.order
}

// StreamCompression returns the stream compression type and level.
func (c *EncoderConfig) StreamCompression() (format.CompressionType, int) {
	return c.streamType, c.streamLevel
}

func (c *EncoderConfig) setStreamCompression(ct format.CompressionType, level int) error {
	// build a throwaway codec writer so bad types and levels fail at configuration time
	w, err := compress.NewWriter(io.Discard, ct, level)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}

	c.streamType = ct
	c.streamLevel = level

	return nil
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian writes multi-byte elements in little-endian order ('<').
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.order = endian.Little
	})
}

// WithBigEndian writes multi-byte elements in big-endian order ('>').
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.order = endian.Big
	})
}

// WithNativeEndian writes multi-byte elements in the host byte order.
// It is the default option.
func WithNativeEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.order = endian.Native()
	})
}

// WithStreamCompression compresses the whole encoded file with the given codec.
// Use compress.LevelDefault for the codec's default level.
func WithStreamCompression(ct format.CompressionType, level int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setStreamCompression(ct, level)
	})
}
