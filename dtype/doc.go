// Package dtype resolves element types to NPY type descriptor strings.
//
// A Type is a closed tagged variant of {kind, width, byte order}. It is resolved
// once per array and never through open-ended dynamic dispatch:
//
//	t := dtype.Of[float64]()       // host order, 8 bytes
//	descr, err := t.Descr()        // "<f8" on little-endian hosts
//
//	s := dtype.Bytes(16)           // "|S16"
//	u := dtype.Unicode(8)          // "<U8", 32 bytes per element
//
// Descriptor strings are built from three parts: a byte order marker ('<' little,
// '>' big, '|' when order is irrelevant), a kind letter and a width. Parse is the
// inverse of Descr and is used when decoding NPY headers.
package dtype
