package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/npyz/sink"
	"github.com/arloliu/npyz/sink/miniosink"
	"github.com/arloliu/npyz/sink/s3sink"
)

func destinationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "prefix", Usage: "key prefix for object store destinations", Sources: cli.EnvVars("NPYZ_PREFIX")},
		&cli.StringFlag{Name: "s3-bucket", Usage: "write the output to this S3 bucket", Sources: cli.EnvVars("NPYZ_S3_BUCKET")},
		&cli.StringFlag{Name: "s3-region", Usage: "S3 region (defaults to the AWS configuration)", Sources: cli.EnvVars("NPYZ_S3_REGION")},
		&cli.StringFlag{Name: "s3-endpoint", Usage: "custom S3 endpoint URL", Sources: cli.EnvVars("NPYZ_S3_ENDPOINT")},
		&cli.StringFlag{Name: "minio-endpoint", Usage: "write the output to this MinIO endpoint (host:port)", Sources: cli.EnvVars("NPYZ_MINIO_ENDPOINT")},
		&cli.StringFlag{Name: "minio-bucket", Usage: "MinIO bucket", Sources: cli.EnvVars("NPYZ_MINIO_BUCKET")},
		&cli.StringFlag{Name: "minio-access-key", Usage: "MinIO access key", Sources: cli.EnvVars("NPYZ_MINIO_ACCESS_KEY")},
		&cli.StringFlag{Name: "minio-secret-key", Usage: "MinIO secret key", Sources: cli.EnvVars("NPYZ_MINIO_SECRET_KEY")},
		&cli.BoolFlag{Name: "minio-secure", Usage: "use HTTPS for MinIO", Sources: cli.EnvVars("NPYZ_MINIO_SECURE")},
	}
}

var errDestinationFlags = errors.New("--s3-bucket and --minio-endpoint are mutually exclusive")

// openSink returns the destination selected by the flags: an S3 bucket, a
// MinIO bucket or the local file system.
func openSink(ctx context.Context, cmd *cli.Command) (sink.Sink, error) {
	bucket := cmd.String("s3-bucket")
	endpoint := cmd.String("minio-endpoint")

	switch {
	case bucket != "" && endpoint != "":
		return nil, errDestinationFlags
	case bucket != "":
		return newS3Sink(ctx, bucket, cmd.String("prefix"), cmd.String("s3-region"), cmd.String("s3-endpoint"))
	case endpoint != "":
		mb := cmd.String("minio-bucket")
		if mb == "" {
			return nil, errors.New("--minio-bucket is required with --minio-endpoint")
		}

		return newMinioSink(endpoint, mb, cmd.String("prefix"),
			cmd.String("minio-access-key"), cmd.String("minio-secret-key"), cmd.Bool("minio-secure"))
	default:
		return sink.Local{}, nil
	}
}

func newS3Sink(ctx context.Context, bucket, prefix, region, endpoint string) (sink.Sink, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return s3sink.NewStore(client, bucket, prefix, s3sink.DefaultUploadConfig()), nil
}

func newMinioSink(endpoint, bucket, prefix, accessKey, secretKey string, secure bool) (sink.Sink, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("create MinIO client: %w", err)
	}

	return miniosink.NewStore(client, bucket, prefix), nil
}
