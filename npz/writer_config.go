package npz

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/internal/logger"
	"github.com/arloliu/npyz/internal/options"
	"github.com/arloliu/npyz/npy"
)

// WriterConfig holds the settings of a Writer.
type WriterConfig struct {
	compressed bool
	method     format.CompressionType
	level      int
	logger     *logger.Logger
	modTime    time.Time
	encOpts    []npy.EncoderOption
}

// DefaultModTime is the modification time stamped on entries unless
// WithModTime is used. It is the earliest time a ZIP header can hold, so
// identical array sets produce identical archives.
var DefaultModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewWriterConfig returns the default configuration: stored (uncompressed)
// entries, DEFLATE as the method used once compression is enabled, the codec's
// default level, DefaultModTime and the slog default logger.
func NewWriterConfig() *WriterConfig {
	return &WriterConfig{
		method:  format.CompressionDeflate,
		level:   compress.LevelDefault,
		logger:  logger.Default(),
		modTime: DefaultModTime,
	}
}

// Compressed reports whether entries are compressed.
func (c *WriterConfig) Compressed() bool {
	return c.compressed
}

// Method returns the compression applied to entries: format.CompressionNone
// when compression is disabled.
func (c *WriterConfig) Method() format.CompressionType {
	if !c.compressed {
		return format.CompressionNone
	}

	return c.method
}

// ModTime returns the modification time stamped on every entry.
func (c *WriterConfig) ModTime() time.Time {
	return c.modTime
}

// Level returns the compression level.
func (c *WriterConfig) Level() int {
	return c.level
}

func (c *WriterConfig) validate() error {
	if err := compress.ValidateZipLevel(c.Method(), c.level); err != nil {
		return err
	}

	enc, err := npy.NewEncoder(c.encOpts...)
	if err != nil {
		return err
	}
	if ct, _ := enc.StreamCompression(); ct != format.CompressionNone {
		return fmt.Errorf("%w: stream compression %s cannot be used for archive entries",
			errs.ErrInvalidCompression, ct)
	}

	return nil
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*WriterConfig]

// WithCompression enables or disables entry compression. Disabled by default.
func WithCompression(enabled bool) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.compressed = enabled
	})
}

// WithCompressionLevel sets the compression level of compressed entries.
// DEFLATE accepts -2 to 9, zstd accepts 1 to 22; compress.LevelDefault selects
// the method's default.
func WithCompressionLevel(level int) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.level = level
	})
}

// WithCompressionMethod selects the entry compression method and enables
// compression, unless ct is format.CompressionNone, which disables it. Only
// DEFLATE and zstd have ZIP method identifiers.
func WithCompressionMethod(ct format.CompressionType) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if ct == format.CompressionNone {
			c.compressed = false
			return nil
		}
		if _, err := compress.ZipMethod(ct); err != nil {
			return err
		}
		c.method = ct
		c.compressed = true

		return nil
	})
}

// WithModTime sets the modification time stamped on every entry, for example
// time.Now(). A zero time selects DefaultModTime.
func WithModTime(t time.Time) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if t.IsZero() {
			t = DefaultModTime
		}
		c.modTime = t
	})
}

// WithLogger sets the logger used for diagnostics such as the empty archive
// warning. A nil logger selects slog.Default().
func WithLogger(l *slog.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.logger = logger.From(l)
	})
}

// WithEncoderOptions sets the options of the NPY encoder used for each entry.
// Stream compression is rejected; use entry compression instead.
func WithEncoderOptions(opts ...npy.EncoderOption) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.encOpts = append(c.encOpts, opts...)
	})
}
