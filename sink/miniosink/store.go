// Package miniosink streams encoded files into MinIO or any S3-compatible
// bucket through minio-go.
package miniosink

import (
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/arloliu/npyz/sink"
)

// ContentType is the content type set on uploaded objects.
const ContentType = "application/octet-stream"

// ObjectPutter is the subset of *minio.Client used by Store.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader,
		objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Store writes objects into one bucket under an optional key prefix.
type Store struct {
	client ObjectPutter
	bucket string
	prefix string
}

var _ sink.Sink = (*Store)(nil)

// NewStore creates a MinIO sink. rootPrefix is prepended to all keys
// (e.g. "arrays/").
func NewStore(client ObjectPutter, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

// Key returns the object key used for name.
func (s *Store) Key(name string) string {
	return path.Join(s.prefix, name)
}

// Create starts a streaming upload of unknown size. The object exists once
// the returned writer is closed without error.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := s.Key(name)

	return sink.Upload(ctx, func(ctx context.Context, body io.Reader) error {
		_, err := s.client.PutObject(ctx, s.bucket, key, body, -1, minio.PutObjectOptions{
			ContentType: ContentType,
		})

		return err
	}), nil
}
