package ndarray

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
)

func TestSize(t *testing.T) {
	n, err := Size(nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = Size([]int{2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 24, n)

	n, err = Size([]int{5, 0, 7})
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = Size([]int{2, -3})
	require.ErrorIs(t, err, errs.ErrInvalidShape)

	_, err = Size([]int{1 << 40, 1 << 40})
	require.ErrorIs(t, err, errs.ErrInvalidShape)
}

func TestFromSlice(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	a, err := FromSlice([]int{2, 3}, values)
	require.NoError(t, err)

	require.Equal(t, dtype.Of[float64](), a.Type())
	require.Equal(t, []int{2, 3}, a.Shape())
	require.Equal(t, 2, a.NDim())
	require.Equal(t, 6, a.Len())
	require.Equal(t, 48, a.ByteSize())
	require.NoError(t, a.Validate())

	// zero-copy view
	values[0] = 42
	got, err := Values[float64](a)
	require.NoError(t, err)
	require.Equal(t, 42.0, got[0])

	// Shape returns a copy
	shape := a.Shape()
	shape[0] = 99
	require.Equal(t, []int{2, 3}, a.Shape())
}

func TestFromSlice_Errors(t *testing.T) {
	_, err := FromSlice([]int{2, 3}, []int32{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrDataSizeMismatch)

	_, err = FromSlice([]int{-1}, []int32{})
	require.ErrorIs(t, err, errs.ErrInvalidShape)
}

func TestFromSlice_Empty(t *testing.T) {
	a, err := FromSlice([]int{0, 4}, []uint16{})
	require.NoError(t, err)
	require.Equal(t, 0, a.Len())
	require.Empty(t, a.Data())
}

func TestScalar(t *testing.T) {
	a := Scalar(int32(-7))
	require.Equal(t, []int{}, a.Shape())
	require.Equal(t, 0, a.NDim())
	require.Equal(t, 1, a.Len())
	require.Equal(t, 4, a.ByteSize())

	got, err := Values[int32](a)
	require.NoError(t, err)
	require.Equal(t, []int32{-7}, got)
}

func TestShape_NeverNil(t *testing.T) {
	a, err := FromSlice(nil, []float64{1})
	require.NoError(t, err)
	require.NotNil(t, a.Shape())

	b, err := FromBytes(a.Type(), nil, a.Data())
	require.NoError(t, err)
	require.NotNil(t, b.Shape())

	c, err := FromRowMajor(a.Type(), nil, a.Data())
	require.NoError(t, err)
	require.NotNil(t, c.Shape())

	require.Equal(t, a.Shape(), b.Shape())
	require.Equal(t, []int{}, c.WithOrder(endian.Big).Shape())
}

func TestFromBytes(t *testing.T) {
	typ := dtype.Of[int16]().WithOrder(endian.Big)
	a, err := FromBytes(typ, []int{2}, []byte{0x01, 0x02, 0xff, 0xfe})
	require.NoError(t, err)

	got, err := Values[int16](a)
	require.NoError(t, err)
	require.Equal(t, []int16{0x0102, -2}, got)

	_, err = FromBytes(typ, []int{3}, []byte{1, 2})
	require.ErrorIs(t, err, errs.ErrDataSizeMismatch)

	_, err = FromBytes(dtype.Type{Kind: format.KindFloat, Width: 2}, []int{1}, []byte{1, 2})
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestValues_TypeMismatch(t *testing.T) {
	a := Scalar(float32(1))
	_, err := Values[float64](a)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)

	_, err = Values[int32](a)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestValues_AllTypes(t *testing.T) {
	checkRoundTrip(t, []int8{-1, 0, 1})
	checkRoundTrip(t, []int64{-1 << 40, 0, 1 << 40})
	checkRoundTrip(t, []uint8{0, 128, 255})
	checkRoundTrip(t, []uint32{0, 1 << 31})
	checkRoundTrip(t, []float32{1.5, -2.25})
	checkRoundTrip(t, []complex64{complex(1, -1), complex(0.5, 2)})
	checkRoundTrip(t, []complex128{complex(1e100, -1e-100)})
	checkRoundTrip(t, []bool{true, false, true})
}

func checkRoundTrip[T dtype.Element](t *testing.T, values []T) {
	t.Helper()

	a, err := FromSlice([]int{len(values)}, values)
	require.NoError(t, err)

	got, err := Values[T](a)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestWithOrderAndEqual(t *testing.T) {
	a, err := FromSlice([]int{3}, []uint32{1, 2, 0xdeadbeef})
	require.NoError(t, err)

	other := endian.Big
	if endian.Native() == endian.Big {
		other = endian.Little
	}

	swapped := a.WithOrder(other)
	require.Equal(t, other, swapped.Type().Order)
	require.NotEqual(t, a.Data(), swapped.Data())
	require.True(t, a.Equal(swapped))
	require.True(t, swapped.Equal(a))

	got, err := Values[uint32](swapped)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 0xdeadbeef}, got)

	// order-independent types are returned as-is
	b := Scalar(uint8(3))
	require.Same(t, b, b.WithOrder(other))
}

func TestEqual_Differences(t *testing.T) {
	a, _ := FromSlice([]int{2, 2}, []int32{1, 2, 3, 4})
	b, _ := FromSlice([]int{4}, []int32{1, 2, 3, 4})
	c, _ := FromSlice([]int{2, 2}, []uint32{1, 2, 3, 4})
	d, _ := FromSlice([]int{2, 2}, []int32{1, 2, 3, 5})

	require.False(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(d))
	require.False(t, a.Equal(nil))
	require.True(t, (*Array)(nil).Equal(nil))
}

func TestString(t *testing.T) {
	a, _ := FromSlice([]int{2, 3}, make([]float64, 6))
	require.Contains(t, a.String(), "[2 3]")
}
