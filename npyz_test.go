package npyz

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/npy"
	"github.com/arloliu/npyz/npz"
)

func matrix(t *testing.T) *ndarray.Array {
	t.Helper()

	a, err := ndarray.FromSlice([]int{2, 3}, []float64{1, 4, 2, 5, 3, 6})
	require.NoError(t, err)

	return a
}

func TestWriteArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")
	a := matrix(t)

	require.NoError(t, WriteArray(path, a))

	got, err := npy.ReadFile(path)
	require.NoError(t, err)
	require.True(t, a.Equal(got))
}

func TestWriteArray_NilArray(t *testing.T) {
	err := WriteArray(filepath.Join(t.TempDir(), "m.npy"), nil)
	require.ErrorIs(t, err, errs.ErrEncoding)
}

func TestWriteArchive(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "data.npz")
		a := matrix(t)
		b := ndarray.Scalar(int64(7))

		err := WriteArchive(path, map[string]*ndarray.Array{"m": a, "k": b}, compressed, compress.LevelDefault)
		require.NoError(t, err)

		r, err := npz.Open(path)
		require.NoError(t, err)
		require.Equal(t, []string{"k", "m"}, r.Names())

		got, err := r.Array("m")
		require.NoError(t, err)
		require.True(t, a.Equal(got))

		st, err := r.Stat("k")
		require.NoError(t, err)
		require.Equal(t, compressed, st.Method != 0)
		require.NoError(t, r.Close())
	}
}

func TestWriteArchive_InvalidLevel(t *testing.T) {
	for _, level := range []int{-3, 10, 99} {
		path := filepath.Join(t.TempDir(), "data.npz")
		err := WriteArchive(path, nil, true, level)
		require.ErrorIs(t, err, errs.ErrInvalidCompression, "level %d", level)
		require.NoFileExists(t, path)
	}

	for _, level := range []int{-2, compress.LevelDefault, 0, 9} {
		err := WriteArchive(filepath.Join(t.TempDir(), "data.npz"), nil, true, level)
		require.NoError(t, err, "level %d", level)
	}

	// level is ignored without compression
	err := WriteArchive(filepath.Join(t.TempDir(), "data.npz"), nil, false, 99)
	require.NoError(t, err)
}

func TestWriteArchiveArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.npz")
	a := matrix(t)
	b := ndarray.Scalar(float32(1.5))

	err := WriteArchiveArgs(path, []*ndarray.Array{a, a}, true, 6, map[string]*ndarray.Array{"arr_1": b})
	require.NoError(t, err)

	r, err := npz.Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, []string{"arr_0", "arr_1"}, r.Names())
	got, err := r.Array("arr_1")
	require.NoError(t, err)
	require.True(t, b.Equal(got))
}
