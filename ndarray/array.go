package ndarray

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"unsafe"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/errs"
)

// Array is a homogeneous multi-dimensional array stored in column-major order.
type Array struct {
	typ   dtype.Type
	shape []int
	data  []byte
}

// Size returns the number of elements described by shape. A zero-dimensional
// shape describes a scalar and has size 1.
func Size(shape []int) (int, error) {
	n := 1
	for i, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: dimension %d has negative extent %d", errs.ErrInvalidShape, i, d)
		}
		if d != 0 && n > math.MaxInt/d {
			return 0, fmt.Errorf("%w: element count overflows", errs.ErrInvalidShape)
		}
		n *= d
	}

	return n, nil
}

// FromSlice creates an Array viewing values, which must hold the elements in
// column-major order. The payload shares memory with values.
func FromSlice[T dtype.Element](shape []int, values []T) (*Array, error) {
	typ := dtype.Of[T]()

	n, err := Size(shape)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", errs.ErrDataSizeMismatch, shape, n, len(values))
	}

	var data []byte
	if n > 0 {
		data = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), n*typ.Width)
	}

	return &Array{typ: typ, shape: append([]int{}, shape...), data: data}, nil
}

// Scalar creates a zero-dimensional Array holding v.
func Scalar[T dtype.Element](v T) *Array {
	a, _ := FromSlice(nil, []T{v})
	return a
}

// FromBytes creates an Array from a raw column-major payload encoded with typ.
// The payload is not copied.
func FromBytes(typ dtype.Type, shape []int, data []byte) (*Array, error) {
	if err := typ.Validate(); err != nil {
		return nil, err
	}

	n, err := Size(shape)
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt/typ.Width || len(data) != n*typ.Width {
		return nil, fmt.Errorf("%w: shape %v of %s needs %d bytes, got %d",
			errs.ErrDataSizeMismatch, shape, typ, n*typ.Width, len(data))
	}

	return &Array{typ: typ, shape: append([]int{}, shape...), data: data}, nil
}

// Type returns the element type.
func (a *Array) Type() dtype.Type {
	return a.typ
}

// Shape returns a copy of the dimension extents.
func (a *Array) Shape() []int {
	return append([]int{}, a.shape...)
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a.typ.Width == 0 {
		return 0
	}

	return len(a.data) / a.typ.Width
}

// Data returns the raw column-major payload. The returned slice must not be modified.
func (a *Array) Data() []byte {
	return a.data
}

// ByteSize returns the payload size in bytes.
func (a *Array) ByteSize() int {
	return len(a.data)
}

// Validate checks that the element type is supported and that the payload
// length matches the shape.
func (a *Array) Validate() error {
	if err := a.typ.Validate(); err != nil {
		return err
	}

	n, err := Size(a.shape)
	if err != nil {
		return err
	}
	if len(a.data) != n*a.typ.Width {
		return fmt.Errorf("%w: shape %v of %s needs %d bytes, got %d",
			errs.ErrDataSizeMismatch, a.shape, a.typ, n*a.typ.Width, len(a.data))
	}

	return nil
}

// WithOrder returns an Array whose payload uses byte order o. It returns a
// itself when no conversion is needed.
func (a *Array) WithOrder(o endian.Order) *Array {
	if !a.typ.OrderMatters() || a.typ.Order == o {
		return a
	}

	data := bytes.Clone(a.data)
	endian.SwapInPlace(data, a.typ.SwapUnit())

	return &Array{typ: a.typ.WithOrder(o), shape: a.shape, data: data}
}

// Equal reports whether a and b hold the same type, shape and element values.
// Payloads in different byte orders compare by value.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.typ.Equal(b.typ.WithOrder(a.typ.Order)) || !slices.Equal(a.shape, b.shape) {
		return false
	}

	return bytes.Equal(a.data, b.WithOrder(a.typ.Order).data)
}

// String returns a short description such as "<f8[2 3]".
func (a *Array) String() string {
	return fmt.Sprintf("%s%v", a.typ, a.shape)
}
