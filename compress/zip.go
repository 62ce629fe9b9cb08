package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
)

// ZipMethodZstd is the ZIP method identifier for Zstandard entries.
const ZipMethodZstd = zstd.ZipMethodWinZip

// ZipMethod returns the ZIP method used to store entries compressed with t.
// Only Store, Deflate and Zstd have ZIP method identifiers.
func ZipMethod(t format.CompressionType) (uint16, error) {
	switch t { //nolint: exhaustive
	case format.CompressionNone:
		return zip.Store, nil
	case format.CompressionDeflate:
		return zip.Deflate, nil
	case format.CompressionZstd:
		return ZipMethodZstd, nil
	default:
		return 0, fmt.Errorf("%w: %s has no ZIP method", errs.ErrInvalidCompression, t)
	}
}

// MethodType is the inverse of ZipMethod.
func MethodType(method uint16) (format.CompressionType, bool) {
	switch method {
	case zip.Store:
		return format.CompressionNone, true
	case zip.Deflate:
		return format.CompressionDeflate, true
	case ZipMethodZstd:
		return format.CompressionZstd, true
	default:
		return 0, false
	}
}

// ValidateZipLevel checks that level is usable for entries compressed with t.
func ValidateZipLevel(t format.CompressionType, level int) error {
	switch t { //nolint: exhaustive
	case format.CompressionNone:
		return nil
	case format.CompressionDeflate:
		return ValidateDeflateLevel(level)
	case format.CompressionZstd:
		return ValidateZstdLevel(level)
	default:
		_, err := ZipMethod(t)
		return err
	}
}

// RegisterZipCompressors installs the Deflate and Zstd compressors on zw
// using the given level.
func RegisterZipCompressors(zw *zip.Writer, level int) {
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		fw, err := flate.NewWriter(out, level)
		if err != nil {
			return nil, err
		}

		return fw, nil
	})
	zw.RegisterCompressor(ZipMethodZstd, zstd.ZipCompressor(
		zstd.WithEncoderLevel(zstdEncoderLevel(level)),
		zstd.WithEncoderConcurrency(1),
	))
}

// RegisterZipDecompressors installs the Zstd decompressor on zr. Store and
// Deflate are built into the zip package.
func RegisterZipDecompressors(zr *zip.Reader) {
	zr.RegisterDecompressor(ZipMethodZstd, zstd.ZipDecompressor())
}
