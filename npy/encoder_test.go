package npy

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/section"
)

func mustArray[T dtype.Element](t *testing.T, shape []int, values []T) *ndarray.Array {
	t.Helper()

	a, err := ndarray.FromSlice(shape, values)
	require.NoError(t, err)

	return a
}

func TestEncode_Float64Matrix(t *testing.T) {
	// column-major [[1, 2, 3], [4, 5, 6]]
	a := mustArray(t, []int{2, 3}, []float64{1, 4, 2, 5, 3, 6})

	data, err := Marshal(a, WithLittleEndian())
	require.NoError(t, err)

	dict := "{'descr': '<f8', 'fortran_order': True, 'shape': (2, 3), }"
	require.Equal(t, 128+48, len(data))
	require.Equal(t, []byte("\x93NUMPY\x01\x00"), data[:8])
	require.Equal(t, uint16(118), endian.GetLittleEndianEngine().Uint16(data[8:10]))
	require.Equal(t, dict, string(data[10:10+len(dict)]))
	require.Equal(t, byte('\n'), data[127])

	payload := data[128:]
	le := endian.GetLittleEndianEngine()
	for i, want := range []uint64{1, 4, 2, 5, 3, 6} {
		require.Equal(t, float64(want), math.Float64frombits(le.Uint64(payload[i*8:])))
	}
}

func TestEncode_HeaderAlignment(t *testing.T) {
	shapes := [][]int{nil, {0}, {1}, {7}, {3, 4}, {2, 3, 4}, {1, 1, 1, 1, 1, 1, 1}, {100000, 3}}

	for _, shape := range shapes {
		n, err := ndarray.Size(shape)
		require.NoError(t, err)

		a := mustArray(t, shape, make([]int16, n))
		data, err := Marshal(a)
		require.NoError(t, err)

		h, err := section.ReadHeader(bytes.NewReader(data))
		require.NoError(t, err)
		size, err := h.Size()
		require.NoError(t, err)
		require.Zero(t, size%section.Alignment, "shape %v", shape)
		require.Equal(t, size+2*n, len(data))
		require.True(t, h.FortranOrder)
	}
}

func TestEncode_ByteOrder(t *testing.T) {
	a := mustArray(t, []int{2}, []uint32{1, 0x01020304})

	little, err := Marshal(a, WithLittleEndian())
	require.NoError(t, err)
	big, err := Marshal(a, WithBigEndian())
	require.NoError(t, err)

	require.Contains(t, string(little), "'descr': '<u4'")
	require.Contains(t, string(big), "'descr': '>u4'")
	require.Equal(t, []byte{1, 0, 0, 0, 4, 3, 2, 1}, little[len(little)-8:])
	require.Equal(t, []byte{0, 0, 0, 1, 1, 2, 3, 4}, big[len(big)-8:])

	native, err := Marshal(a)
	require.NoError(t, err)
	if endian.Native() == endian.Little {
		require.Equal(t, little, native)
	} else {
		require.Equal(t, big, native)
	}
}

func TestEncode_Descriptors(t *testing.T) {
	tests := []struct {
		name  string
		array *ndarray.Array
		descr string
	}{
		{"int8", ndarray.Scalar(int8(1)), "|i1"},
		{"uint8", ndarray.Scalar(uint8(1)), "|u1"},
		{"bool", ndarray.Scalar(true), "|b1"},
		{"int64", ndarray.Scalar(int64(1)), "<i8"},
		{"float32", ndarray.Scalar(float32(1)), "<f4"},
		{"complex128", ndarray.Scalar(complex(1, 2)), "<c16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder(WithLittleEndian())
			require.NoError(t, err)

			h, err := enc.Header(tt.array)
			require.NoError(t, err)
			require.Equal(t, tt.descr, h.Descr)
			require.Empty(t, h.Shape)
		})
	}

	strs, err := ndarray.FromStrings([]int{2}, []string{"ab", "cdefghijkl"}, 0)
	require.NoError(t, err)
	h, err := (&Encoder{EncoderConfig: NewEncoderConfig()}).Header(strs)
	require.NoError(t, err)
	require.Equal(t, "|S10", h.Descr)

	uni, err := ndarray.FromUnicode([]int{1}, []string{"hey"}, 0)
	require.NoError(t, err)
	enc, err := NewEncoder(WithBigEndian())
	require.NoError(t, err)
	h, err = enc.Header(uni)
	require.NoError(t, err)
	require.Equal(t, ">U3", h.Descr)
}

func TestEncode_Scalar(t *testing.T) {
	data, err := Marshal(ndarray.Scalar(2.5), WithLittleEndian())
	require.NoError(t, err)
	require.Contains(t, string(data), "'shape': (), }")
	require.Len(t, data, 128+8)
}

func TestEncode_EmptyArray(t *testing.T) {
	a := mustArray(t, []int{0, 5}, []float32{})
	data, err := Marshal(a)
	require.NoError(t, err)
	require.Len(t, data, 128)
	require.Contains(t, string(data), "'shape': (0, 5), }")
}

func TestEncode_Errors(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.ErrorIs(t, enc.Encode(&buf, nil), errs.ErrEncoding)
	require.Zero(t, buf.Len())

	_, err = ndarray.FromBytes(dtype.Type{Kind: format.KindFloat, Width: 16}, []int{1}, make([]byte, 16))
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

// inflatingWriter claims one byte more than it was given.
type inflatingWriter struct{ bytes.Buffer }

func (w *inflatingWriter) Write(p []byte) (int, error) {
	n, err := w.Buffer.Write(p)
	return n + 1, err
}

func TestEncode_PayloadCountMismatch(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	err = enc.Encode(&inflatingWriter{}, mustArray(t, []int{2}, []int32{1, 2}))
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestEncoder_Size(t *testing.T) {
	a := mustArray(t, []int{10}, make([]complex64, 10))
	enc, err := NewEncoder()
	require.NoError(t, err)

	size, err := enc.Size(a)
	require.NoError(t, err)

	data, err := enc.Marshal(a)
	require.NoError(t, err)
	require.Equal(t, size, len(data))
}

func TestWithStreamCompression_Invalid(t *testing.T) {
	_, err := NewEncoder(WithStreamCompression(format.CompressionType(99), compress.LevelDefault))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = NewEncoder(WithStreamCompression(format.CompressionDeflate, 42))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	enc, err := NewEncoder(WithStreamCompression(format.CompressionLZ4, 5))
	require.NoError(t, err)
	ct, level := enc.StreamCompression()
	require.Equal(t, format.CompressionLZ4, ct)
	require.Equal(t, 5, level)
}
