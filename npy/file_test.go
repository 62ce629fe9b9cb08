package npy

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/sink"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.npy")
	a := mustArray(t, []int{2, 3}, []int64{1, 2, 3, 4, 5, 6})

	require.NoError(t, WriteFile(path, a))

	back, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, a.Equal(back))

	h, err := ReadHeader(path)
	require.NoError(t, err)
	require.True(t, h.FortranOrder)
	require.Equal(t, []int{2, 3}, h.Shape)
}

func TestWriteFile_NoExtensionAppended(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noext")

	require.NoError(t, WriteFile(path, ndarray.Scalar(1.0)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "noext", entries[0].Name())
}

func TestWriteFile_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.npy")

	big := mustArray(t, []int{1000}, make([]float64, 1000))
	require.NoError(t, WriteFile(path, big))

	small := ndarray.Scalar(uint8(7))
	require.NoError(t, WriteFile(path, small))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 129)

	back, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, small.Equal(back))
}

func TestWriteFile_DestinationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "x.npy")

	err := WriteFile(path, ndarray.Scalar(1.0))
	require.ErrorIs(t, err, errs.ErrDestination)
	require.ErrorIs(t, err, os.ErrNotExist)

	var pathErr *os.PathError
	require.ErrorAs(t, err, &pathErr)
}

func TestWriteFile_EncodingErrorLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.npy")

	a, err := ndarray.FromBytes(dtype.Bytes(2), []int{1}, []byte("ab"))
	require.NoError(t, err)
	require.NoError(t, WriteFile(path, a))
	require.NoError(t, os.Remove(path))

	err = WriteFile(path, nil)
	require.ErrorIs(t, err, errs.ErrEncoding)
	require.NotErrorIs(t, err, errs.ErrDestination)

	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)

	_, err = NewEncoder(WithStreamCompression(format.CompressionS2, 7))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestWriteTo_Memory(t *testing.T) {
	mem := sink.NewMemory()
	a := mustArray(t, []int{3}, []uint16{1, 2, 3})

	require.NoError(t, WriteTo(context.Background(), mem, "vec.npy", a))

	data, ok := mem.Object("vec.npy")
	require.True(t, ok)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.True(t, a.Equal(back))
}

type failingSink struct {
	createErr error
	closeErr  error
}

func (s failingSink) Create(context.Context, string) (io.WriteCloser, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}

	return failingCloser{err: s.closeErr}, nil
}

type failingCloser struct {
	err error
}

func (failingCloser) Write(p []byte) (int, error) { return len(p), nil }
func (c failingCloser) Close() error              { return c.err }

func TestWriteTo_Errors(t *testing.T) {
	a := ndarray.Scalar(1.0)
	errOffline := errors.New("store offline")

	err := WriteTo(context.Background(), failingSink{createErr: errOffline}, "a.npy", a)
	require.ErrorIs(t, err, errs.ErrDestination)
	require.ErrorIs(t, err, errOffline)

	err = WriteTo(context.Background(), failingSink{closeErr: errOffline}, "a.npy", a)
	require.ErrorIs(t, err, errs.ErrDestination)
	require.ErrorIs(t, err, errOffline)
}
