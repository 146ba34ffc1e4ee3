package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MaxImageSize is the per-file upload limit.
const MaxImageSize = 10 << 20 // 10MB

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

type S3Store struct {
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

// NewS3Store creates an image store backed by S3 honoring env configuration
// for MinIO. Env support: AWS_REGION, AWS_ENDPOINT_URL_S3, AWS_S3_FORCE_PATH_STYLE.
func NewS3Store(ctx context.Context, bucket, publicURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if ep := os.Getenv("AWS_ENDPOINT_URL_S3"); ep != "" {
			o.BaseEndpoint = aws.String(ep)
		}
		if strings.EqualFold(os.Getenv("AWS_S3_FORCE_PATH_STYLE"), "true") {
			o.UsePathStyle = true
		}
	})
	return &S3Store{
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// ObjectKey builds the storage key for one upload: a randomized name under
// the caller-chosen folder, keeping the original extension.
func ObjectKey(folder, filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return "", fmt.Errorf("image folder is required")
	}
	return folder + "/" + uuid.NewString() + ext, nil
}

func (s *S3Store) Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (string, error) {
	if size > MaxImageSize {
		return "", fmt.Errorf("image %q exceeds the 10MB limit", filename)
	}

	key, err := ObjectKey(folder, filename)
	if err != nil {
		return "", err
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return s.publicURL + "/" + s.bucket + "/" + key, nil
}
