package ndarray

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
)

func TestFromStrings(t *testing.T) {
	a, err := FromStrings([]int{3}, []string{"a", "bcd", ""}, 0)
	require.NoError(t, err)
	require.Equal(t, format.KindBytes, a.Type().Kind)
	require.Equal(t, 3, a.Type().Width)
	require.Equal(t, []byte("a\x00\x00bcd\x00\x00\x00"), a.Data())

	got, err := a.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "bcd", ""}, got)

	_, err = FromStrings([]int{1}, []string{"toolong"}, 3)
	require.ErrorIs(t, err, errs.ErrDataSizeMismatch)

	_, err = FromStrings([]int{2}, []string{"a"}, 3)
	require.ErrorIs(t, err, errs.ErrDataSizeMismatch)

	empty, err := FromStrings([]int{1}, []string{""}, 0)
	require.NoError(t, err)
	require.Equal(t, 1, empty.Type().Width)
}

func TestFromUnicode(t *testing.T) {
	a, err := FromUnicode([]int{2}, []string{"héllo", "ok"}, 0)
	require.NoError(t, err)
	require.Equal(t, format.KindUnicode, a.Type().Kind)
	require.Equal(t, 20, a.Type().Width)
	require.Equal(t, 40, a.ByteSize())

	got, err := a.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"héllo", "ok"}, got)

	_, err = FromUnicode([]int{1}, []string{"héllo"}, 2)
	require.ErrorIs(t, err, errs.ErrDataSizeMismatch)
}

func TestStrings_NotString(t *testing.T) {
	_, err := Scalar(1.0).Strings()
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestIndex(t *testing.T) {
	a, err := FromSlice([]int{2, 3, 4}, make([]int8, 24))
	require.NoError(t, err)

	idx, err := a.Index(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	idx, err = a.Index(1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	idx, err = a.Index(0, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 2, idx)

	idx, err = a.Index(1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 23, idx)

	_, err = a.Index(2, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidShape)

	_, err = a.Index(0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidShape)

	idx, err = Scalar(1.0).Index()
	require.NoError(t, err)
	require.Equal(t, 0, idx)
}

func TestFromRowMajor(t *testing.T) {
	// row-major [[1, 2, 3], [4, 5, 6]]
	rowMajor, _ := FromSlice([]int{6}, []int32{1, 2, 3, 4, 5, 6})

	a, err := FromRowMajor(dtype.Of[int32](), []int{2, 3}, rowMajor.Data())
	require.NoError(t, err)

	got, err := Values[int32](a)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 4, 2, 5, 3, 6}, got)
}

func TestFromRowMajor_3D(t *testing.T) {
	shape := []int{2, 3, 4}
	n := 24

	// element value encodes its (i, j, k) position
	row := make([]int16, n)
	for i := range 2 {
		for j := range 3 {
			for k := range 4 {
				row[(i*3+j)*4+k] = int16(i*100 + j*10 + k)
			}
		}
	}
	src, _ := FromSlice([]int{n}, row)

	a, err := FromRowMajor(dtype.Of[int16](), shape, src.Data())
	require.NoError(t, err)

	got, err := Values[int16](a)
	require.NoError(t, err)
	for i := range 2 {
		for j := range 3 {
			for k := range 4 {
				idx, err := a.Index(i, j, k)
				require.NoError(t, err)
				require.Equal(t, int16(i*100+j*10+k), got[idx])
			}
		}
	}
}

func TestFromRowMajor_Vector(t *testing.T) {
	src, _ := FromSlice([]int{3}, []float32{1, 2, 3})

	a, err := FromRowMajor(dtype.Of[float32](), []int{3}, src.Data())
	require.NoError(t, err)
	require.True(t, a.Equal(src))

	_, err = FromRowMajor(dtype.Of[float32](), []int{4}, src.Data())
	require.ErrorIs(t, err, errs.ErrDataSizeMismatch)
}
