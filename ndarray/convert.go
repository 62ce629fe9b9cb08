package ndarray

import (
	"bytes"
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
)

// Values returns a copy of the elements of a as a []T in host byte order.
// The element type of a must match T in kind and width.
func Values[T dtype.Element](a *Array) ([]T, error) {
	want := dtype.Of[T]()
	if a.typ.Kind != want.Kind || a.typ.Width != want.Width {
		return nil, fmt.Errorf("%w: cannot read %s as %s", errs.ErrUnsupportedType, a.typ, want)
	}

	out := make([]T, a.Len())
	if len(out) == 0 {
		return out, nil
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(out))), len(a.data))
	copy(dst, a.data)
	if a.typ.OrderMatters() && a.typ.Order != endian.Native() {
		endian.SwapInPlace(dst, a.typ.SwapUnit())
	}

	return out, nil
}

// FromStrings creates a fixed-width byte string Array ("|S<width>"). Shorter
// values are padded with NUL bytes. A width of 0 or less selects the length
// of the longest value, with a minimum of 1.
func FromStrings(shape []int, values []string, width int) (*Array, error) {
	if width <= 0 {
		width = 1
		for _, v := range values {
			width = max(width, len(v))
		}
	}

	n, err := Size(shape)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", errs.ErrDataSizeMismatch, shape, n, len(values))
	}

	data := make([]byte, n*width)
	for i, v := range values {
		if len(v) > width {
			return nil, fmt.Errorf("%w: value %d is %d bytes, width is %d", errs.ErrDataSizeMismatch, i, len(v), width)
		}
		copy(data[i*width:], v)
	}

	return &Array{typ: dtype.Bytes(width), shape: append([]int{}, shape...), data: data}, nil
}

// FromUnicode creates a fixed-width UCS-4 string Array ("<U<chars>") in host
// byte order. A chars value of 0 or less selects the rune count of the
// longest value, with a minimum of 1.
func FromUnicode(shape []int, values []string, chars int) (*Array, error) {
	if chars <= 0 {
		chars = 1
		for _, v := range values {
			chars = max(chars, utf8.RuneCountInString(v))
		}
	}

	n, err := Size(shape)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", errs.ErrDataSizeMismatch, shape, n, len(values))
	}

	typ := dtype.Unicode(chars)
	engine := typ.Order.Engine()
	data := make([]byte, n*typ.Width)
	for i, v := range values {
		if utf8.RuneCountInString(v) > chars {
			return nil, fmt.Errorf("%w: value %d exceeds %d characters", errs.ErrDataSizeMismatch, i, chars)
		}

		off := i * typ.Width
		for _, r := range v {
			engine.PutUint32(data[off:], uint32(r))
			off += 4
		}
	}

	return &Array{typ: typ, shape: append([]int{}, shape...), data: data}, nil
}

// Strings returns the elements of a byte string or unicode Array with
// trailing NULs removed.
func (a *Array) Strings() ([]string, error) {
	width := a.typ.Width
	out := make([]string, 0, a.Len())

	switch a.typ.Kind { //nolint: exhaustive
	case format.KindBytes:
		for off := 0; off < len(a.data); off += width {
			out = append(out, string(bytes.TrimRight(a.data[off:off+width], "\x00")))
		}
	case format.KindUnicode:
		engine := a.typ.Order.Engine()
		runes := make([]rune, 0, width/4)
		for off := 0; off < len(a.data); off += width {
			runes = runes[:0]
			for c := off; c < off+width; c += 4 {
				r := rune(engine.Uint32(a.data[c:]))
				if r == 0 {
					break
				}
				runes = append(runes, r)
			}
			out = append(out, string(runes))
		}
	default:
		return nil, fmt.Errorf("%w: %s is not a string type", errs.ErrUnsupportedType, a.typ)
	}

	return out, nil
}

// Index returns the column-major linear index of the element at idx.
func (a *Array) Index(idx ...int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d indices for %d dimensions", errs.ErrInvalidShape, len(idx), len(a.shape))
	}

	linear := 0
	for d := len(a.shape) - 1; d >= 0; d-- {
		if idx[d] < 0 || idx[d] >= a.shape[d] {
			return 0, fmt.Errorf("%w: index %d out of range for dimension %d", errs.ErrInvalidShape, idx[d], d)
		}
		linear = linear*a.shape[d] + idx[d]
	}

	return linear, nil
}

// FromRowMajor creates a column-major Array from a row-major (C order)
// payload. The payload is copied and reordered.
func FromRowMajor(typ dtype.Type, shape []int, data []byte) (*Array, error) {
	a, err := FromBytes(typ, shape, data)
	if err != nil {
		return nil, err
	}
	if len(shape) < 2 {
		a.data = bytes.Clone(data)
		return a, nil
	}

	a.data = reorder(data, shape, typ.Width)

	return a, nil
}

// reorder converts a row-major payload into column-major order.
func reorder(src []byte, shape []int, width int) []byte {
	dst := make([]byte, len(src))
	if len(src) == 0 {
		return dst
	}

	ndim := len(shape)
	rowStrides := make([]int, ndim)
	stride := width
	for d := ndim - 1; d >= 0; d-- {
		rowStrides[d] = stride
		stride *= shape[d]
	}

	idx := make([]int, ndim)
	srcOff := 0
	for dstOff := 0; dstOff < len(dst); dstOff += width {
		copy(dst[dstOff:dstOff+width], src[srcOff:srcOff+width])

		// advance the column-major multi-index, first dimension fastest
		for d := 0; d < ndim; d++ {
			idx[d]++
			srcOff += rowStrides[d]
			if idx[d] < shape[d] {
				break
			}
			srcOff -= idx[d] * rowStrides[d]
			idx[d] = 0
		}
	}

	return dst
}
