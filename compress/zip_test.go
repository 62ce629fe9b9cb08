package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/format"
)

func TestZipMethod(t *testing.T) {
	m, err := ZipMethod(format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, zip.Store, m)

	m, err = ZipMethod(format.CompressionDeflate)
	require.NoError(t, err)
	require.Equal(t, zip.Deflate, m)

	m, err = ZipMethod(format.CompressionZstd)
	require.NoError(t, err)
	require.Equal(t, uint16(93), m)

	_, err = ZipMethod(format.CompressionS2)
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionDeflate, format.CompressionZstd} {
		m, _ := ZipMethod(ct)
		back, ok := MethodType(m)
		require.True(t, ok)
		require.Equal(t, ct, back)
	}

	_, ok := MethodType(12)
	require.False(t, ok)
}

func TestValidateZipLevel(t *testing.T) {
	require.NoError(t, ValidateZipLevel(format.CompressionNone, 100))
	require.NoError(t, ValidateZipLevel(format.CompressionDeflate, 9))
	require.NoError(t, ValidateZipLevel(format.CompressionZstd, LevelDefault))
	require.ErrorIs(t, ValidateZipLevel(format.CompressionDeflate, 11), errs.ErrInvalidCompression)
	require.ErrorIs(t, ValidateZipLevel(format.CompressionLZ4, 1), errs.ErrInvalidCompression)
}

func TestZipCompressors_RoundTrip(t *testing.T) {
	data := samplePayload()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	RegisterZipCompressors(zw, 6)

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionDeflate, format.CompressionZstd} {
		method, err := ZipMethod(ct)
		require.NoError(t, err)

		fw, err := zw.CreateHeader(&zip.FileHeader{Name: ct.String() + ".npy", Method: method})
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	RegisterZipDecompressors(zr)

	require.Len(t, zr.File, 3)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		out, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		require.Equal(t, data, out, f.Name)

		if f.Method != zip.Store {
			require.Less(t, f.CompressedSize64, f.UncompressedSize64, f.Name)
		}
	}
}
