// internal/photos/s3.go
package photos

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store uploads photos to an S3 bucket under <prefix>/<inspectionID>/ and
// returns the object URL. Credentials come from the default AWS chain (env,
// shared config, instance role) unless a static key pair is configured.
type S3Store struct {
	bucket   string
	region   string
	prefix   string
	uploader *manager.Uploader
}

func NewS3Store(bucket, region, prefix, accessKey, secretKey string) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		bucket:   bucket,
		region:   region,
		prefix:   strings.Trim(prefix, "/"),
		uploader: manager.NewUploader(client),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, inspectionID, filename string, r io.Reader, _ int64) (string, error) {
	key := uuid.NewString() + safeExt(filename)
	if s.prefix != "" {
		key = path.Join(s.prefix, inspectionID, key)
	} else {
		key = path.Join(inspectionID, key)
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentTypeFor(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo to s3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func contentTypeFor(filename string) string {
	switch safeExt(filename) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}
