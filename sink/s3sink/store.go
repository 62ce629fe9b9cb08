// Package s3sink streams encoded files into Amazon S3 using the multipart
// upload manager of aws-sdk-go-v2.
package s3sink

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/arloliu/npyz/sink"
)

// Uploader is the subset of *manager.Uploader used by Store.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// UploadConfig configures the multipart uploader created by NewStore.
type UploadConfig struct {
	// PartSize is the minimum part size for multipart uploads.
	PartSize int64

	// Concurrency is the number of concurrent part uploads.
	Concurrency int
}

// DefaultUploadConfig returns 8MiB parts uploaded five at a time.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: 5,
	}
}

// Store writes objects into one bucket under an optional key prefix.
type Store struct {
	uploader Uploader
	bucket   string
	prefix   string
}

var _ sink.Sink = (*Store)(nil)

// NewStore creates an S3 sink backed by a manager.Uploader for client.
func NewStore(client manager.UploadAPIClient, bucket, rootPrefix string, cfg UploadConfig) *Store {
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSize > 0 {
			u.PartSize = cfg.PartSize
		}
		if cfg.Concurrency > 0 {
			u.Concurrency = cfg.Concurrency
		}
	})

	return NewStoreWithUploader(uploader, bucket, rootPrefix)
}

// NewStoreWithUploader creates an S3 sink using an existing uploader.
func NewStoreWithUploader(uploader Uploader, bucket, rootPrefix string) *Store {
	return &Store{
		uploader: uploader,
		bucket:   bucket,
		prefix:   rootPrefix,
	}
}

// Key returns the object key used for name.
func (s *Store) Key(name string) string {
	return path.Join(s.prefix, name)
}

// Create starts a streaming upload. The object exists once the returned
// writer is closed without error.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := s.Key(name)

	return sink.Upload(ctx, func(ctx context.Context, body io.Reader) error {
		_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        body,
			ContentType: aws.String("application/octet-stream"),
		})

		return err
	}), nil
}
