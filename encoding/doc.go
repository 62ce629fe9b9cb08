// Package encoding writes and reads the raw element payload that follows an
// NPY header.
//
// The payload is the array's elements in column-major linear order with no
// separators. RawWriter emits it in a requested byte order: when the order
// already matches the array's, the payload is handed to the destination in a
// single write without copying; otherwise elements are byte-swapped through a
// pooled chunk buffer so that memory use stays bounded regardless of the
// array size.
//
// ReadPayload is the inverse. It reads exactly the number of bytes implied by
// the header and grows its buffer as data arrives, so a corrupt header that
// claims a huge shape fails with io.ErrUnexpectedEOF instead of allocating the
// claimed size up front.
package encoding
