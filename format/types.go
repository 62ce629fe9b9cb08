package format

type (
	Kind            uint8
	CompressionType uint8
)

const (
	KindInvalid Kind = 0x0
	KindInt     Kind = 0x1 // KindInt represents signed two's complement integers.
	KindUint    Kind = 0x2 // KindUint represents unsigned integers.
	KindFloat   Kind = 0x3 // KindFloat represents IEEE 754 floating point numbers.
	KindComplex Kind = 0x4 // KindComplex represents a pair of IEEE 754 floats (real, imag).
	KindBool    Kind = 0x5 // KindBool represents one-byte booleans.
	KindBytes   Kind = 0x6 // KindBytes represents fixed-width byte strings.
	KindUnicode Kind = 0x7 // KindUnicode represents fixed-width UCS-4 strings.

	CompressionNone    CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
	CompressionDeflate CompressionType = 0x5 // CompressionDeflate represents raw DEFLATE compression.
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat:
		return "Float"
	case KindComplex:
		return "Complex"
	case KindBool:
		return "Bool"
	case KindBytes:
		return "Bytes"
	case KindUnicode:
		return "Unicode"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDeflate:
		return "Deflate"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a lower-case name such as "zstd" or "deflate" to its
// CompressionType. The second return value is false for unknown names.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "", "none", "store":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "deflate":
		return CompressionDeflate, true
	default:
		return 0, false
	}
}
