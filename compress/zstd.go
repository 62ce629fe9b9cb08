package compress

import (
	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/npyz/format"
)

// ZstdCodec provides Zstandard frame compression.
//
// The stream implementation is selected at build time, see the package
// documentation.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// Type returns format.CompressionZstd.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}

// ValidateZstdLevel checks that level is LevelDefault or a zstd level in [1, 22].
func ValidateZstdLevel(level int) error {
	if level != LevelDefault && (level < 1 || level > 22) {
		return invalidLevel(format.CompressionZstd, level)
	}

	return nil
}

// zstdEncoderLevel maps a numeric zstd level onto the speed tiers of the
// pure Go encoder.
func zstdEncoderLevel(level int) zstd.EncoderLevel {
	if level == LevelDefault {
		return zstd.SpeedDefault
	}

	return zstd.EncoderLevelFromZstd(level)
}
