package dtype

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
)

// Type describes the element type of an array.
type Type struct {
	Kind  format.Kind
	Width int // bytes per element
	Order endian.Order
}

// Element is the set of Go types that map directly to an NPY element type.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~complex64 | ~complex128 |
		~bool
}

// New returns a Type with the given kind and width in host byte order.
func New(kind format.Kind, width int) Type {
	return Type{Kind: kind, Width: width, Order: endian.Native()}
}

// Of returns the Type of the Go element type T in host byte order.
// Named types such as "type Celsius float64" resolve by their underlying kind.
func Of[T Element]() Type {
	switch reflect.TypeFor[T]().Kind() { //nolint: exhaustive
	case reflect.Int8:
		return New(format.KindInt, 1)
	case reflect.Int16:
		return New(format.KindInt, 2)
	case reflect.Int32:
		return New(format.KindInt, 4)
	case reflect.Int64:
		return New(format.KindInt, 8)
	case reflect.Uint8:
		return New(format.KindUint, 1)
	case reflect.Uint16:
		return New(format.KindUint, 2)
	case reflect.Uint32:
		return New(format.KindUint, 4)
	case reflect.Uint64:
		return New(format.KindUint, 8)
	case reflect.Float32:
		return New(format.KindFloat, 4)
	case reflect.Float64:
		return New(format.KindFloat, 8)
	case reflect.Complex64:
		return New(format.KindComplex, 8)
	case reflect.Complex128:
		return New(format.KindComplex, 16)
	case reflect.Bool:
		return New(format.KindBool, 1)
	default:
		return Type{}
	}
}

// Bytes returns a fixed-width byte string type of n bytes ("|Sn").
func Bytes(n int) Type {
	return New(format.KindBytes, n)
}

// Unicode returns a fixed-width UCS-4 string type of n characters ("<Un").
func Unicode(n int) Type {
	return New(format.KindUnicode, n*4)
}

// WithOrder returns a copy of t using byte order o.
func (t Type) WithOrder(o endian.Order) Type {
	t.Order = o
	return t
}

// OrderMatters reports whether the byte order of t affects its encoding.
func (t Type) OrderMatters() bool {
	return t.SwapUnit() > 1
}

// SwapUnit returns the size of the words whose bytes are reversed when
// converting t between byte orders. It is 1 for order-independent types.
func (t Type) SwapUnit() int {
	switch t.Kind {
	case format.KindInt, format.KindUint, format.KindFloat:
		return t.Width
	case format.KindComplex:
		return t.Width / 2
	case format.KindUnicode:
		return 4
	default:
		return 1
	}
}

// Validate checks that t is a supported kind and width combination.
func (t Type) Validate() error {
	ok := false
	switch t.Kind {
	case format.KindInt, format.KindUint:
		ok = t.Width == 1 || t.Width == 2 || t.Width == 4 || t.Width == 8
	case format.KindFloat:
		ok = t.Width == 4 || t.Width == 8
	case format.KindComplex:
		ok = t.Width == 8 || t.Width == 16
	case format.KindBool:
		ok = t.Width == 1
	case format.KindBytes:
		ok = t.Width >= 1
	case format.KindUnicode:
		ok = t.Width >= 4 && t.Width%4 == 0
	}
	if !ok {
		return fmt.Errorf("%w: %s of width %d", errs.ErrUnsupportedType, t.Kind, t.Width)
	}

	return nil
}

// Descr returns the NPY descriptor string for t, e.g. "<f8", "|b1" or "|S10".
func (t Type) Descr() (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	marker := byte('|')
	if t.OrderMatters() {
		marker = t.Order.Marker()
	}

	var letter byte
	size := t.Width
	switch t.Kind {
	case format.KindInt:
		letter = 'i'
	case format.KindUint:
		letter = 'u'
	case format.KindFloat:
		letter = 'f'
	case format.KindComplex:
		letter = 'c'
	case format.KindBool:
		letter = 'b'
	case format.KindBytes:
		letter = 'S'
	case format.KindUnicode:
		letter = 'U'
		size = t.Width / 4
	}

	buf := make([]byte, 0, 8)
	buf = append(buf, marker, letter)
	buf = strconv.AppendInt(buf, int64(size), 10)

	return string(buf), nil
}

// String returns the descriptor of t, or a diagnostic form for unsupported types.
func (t Type) String() string {
	descr, err := t.Descr()
	if err != nil {
		return fmt.Sprintf("%s%d(unsupported)", t.Kind, t.Width)
	}

	return descr
}

// Equal reports whether t and o describe the same encoding. Byte order is
// ignored for order-independent types.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Width != o.Width {
		return false
	}

	return !t.OrderMatters() || t.Order == o.Order
}

// Parse parses an NPY descriptor string into a Type.
//
// Accepted byte order markers are '<', '>', '|' and '=' (native). A missing
// marker means native order.
func Parse(descr string) (Type, error) {
	if descr == "" {
		return Type{}, fmt.Errorf("%w: empty descriptor", errs.ErrUnsupportedType)
	}

	order := endian.Native()
	s := descr
	switch s[0] {
	case '<':
		order = endian.Little
		s = s[1:]
	case '>':
		order = endian.Big
		s = s[1:]
	case '|', '=':
		s = s[1:]
	}

	if len(s) < 2 {
		return Type{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedType, descr)
	}

	size, err := strconv.Atoi(s[1:])
	if err != nil || size < 0 {
		return Type{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedType, descr)
	}

	t := Type{Width: size, Order: order}
	switch s[0] {
	case 'i':
		t.Kind = format.KindInt
	case 'u':
		t.Kind = format.KindUint
	case 'f':
		t.Kind = format.KindFloat
	case 'c':
		t.Kind = format.KindComplex
	case 'b':
		t.Kind = format.KindBool
	case 'S', 'a':
		t.Kind = format.KindBytes
	case 'U':
		t.Kind = format.KindUnicode
		t.Width = size * 4
	default:
		return Type{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedType, descr)
	}

	if err := t.Validate(); err != nil {
		return Type{}, fmt.Errorf("%w (descriptor %q)", err, descr)
	}
	if !t.OrderMatters() {
		t.Order = endian.Native()
	}

	return t, nil
}
