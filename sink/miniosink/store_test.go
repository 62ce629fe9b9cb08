package miniosink

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	bucket  string
	key     string
	size    int64
	opts    minio.PutObjectOptions
	payload []byte
	err     error
}

func (f *fakeClient) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader,
	objectSize int64, opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	f.bucket, f.key, f.size, f.opts = bucketName, objectName, objectSize, opts
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.payload = data

	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func TestStore_Create(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client, "arrays", "runs/42")

	w, err := store.Create(context.Background(), "out.npz")
	require.NoError(t, err)
	_, err = w.Write([]byte("PK\x03\x04"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Equal(t, "arrays", client.bucket)
	require.Equal(t, "runs/42/out.npz", client.key)
	require.Equal(t, int64(-1), client.size)
	require.Equal(t, ContentType, client.opts.ContentType)
	require.Equal(t, []byte("PK\x03\x04"), client.payload)
}

func TestStore_Key(t *testing.T) {
	require.Equal(t, "x.npy", NewStore(&fakeClient{}, "b", "").Key("x.npy"))
	require.Equal(t, "p/x.npy", NewStore(&fakeClient{}, "b", "p/").Key("x.npy"))
}

func TestStore_UploadError(t *testing.T) {
	errDenied := errors.New("access denied")
	store := NewStore(&fakeClient{err: errDenied}, "arrays", "")

	w, err := store.Create(context.Background(), "out.npz")
	require.NoError(t, err)

	_, _ = w.Write([]byte("data"))
	require.ErrorIs(t, w.Close(), errDenied)
}
