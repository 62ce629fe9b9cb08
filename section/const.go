package section

import "math"

// Magic is the fixed 6-byte tag that starts every NPY stream.
var Magic = [6]byte{0x93, 'N', 'U', 'M', 'P', 'Y'}

const (
	// Alignment is the byte boundary the full preamble is padded to.
	Alignment = 64

	MagicSize      = len("\x93NUMPY")
	VersionSize    = 2
	LengthSizeV1   = 2 // uint16 header length (version 1.0)
	LengthSizeV2   = 4 // uint32 header length (version 2.0 and 3.0)
	PrefixSizeV1   = MagicSize + VersionSize + LengthSizeV1
	PrefixSizeV2   = MagicSize + VersionSize + LengthSizeV2
	MaxHeaderLenV1 = math.MaxUint16
	MaxHeaderLenV2 = math.MaxUint32
	maxHeaderRead  = 1 << 20 // upper bound accepted when decoding
)

// Version is an NPY format version.
type Version struct {
	Major uint8
	Minor uint8
}

var (
	V1 = Version{Major: 1, Minor: 0}
	V2 = Version{Major: 2, Minor: 0}
	V3 = Version{Major: 3, Minor: 0}
)

// lengthSize returns the width of the header length field for v.
func (v Version) lengthSize() int {
	if v.Major == 1 {
		return LengthSizeV1
	}

	return LengthSizeV2
}

func (v Version) String() string {
	return string([]byte{'0' + v.Major, '.', '0' + v.Minor})
}
