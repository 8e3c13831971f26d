package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/viewtube/user-service/internal/config"
	"github.com/viewtube/user-service/internal/logger"
)

// s3Uploader stores media objects in an S3-compatible bucket (AWS S3 or
// MinIO behind a custom endpoint).
type s3Uploader struct {
	client *s3.Client
	cfg    config.S3
	logger *logger.Logger
}

// NewS3Uploader builds the S3 client from static credentials and the
// optional custom endpoint in cfg.
func NewS3Uploader(ctx context.Context, cfg config.S3, log *logger.Logger) (Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	log.Debug().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("s3 media uploader created")

	return &s3Uploader{
		client: client,
		cfg:    cfg,
		logger: log,
	}, nil
}

// Upload puts the file at localPath under a fresh date-partitioned key and
// returns the public URL of the stored object.
func (u *s3Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	log := logger.FromContext(ctx)

	file, err := os.Open(localPath)
	if err != nil {
		log.Err(err).Str("path", localPath).Msg("error opening local media file")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer file.Close()

	key := storageKey() + strings.ToLower(filepath.Ext(localPath))
	contentType := mime.TypeByExtension(filepath.Ext(localPath))

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		log.Err(err).Str("key", key).Msg("error putting media object")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	url := u.objectURL(key)
	log.Debug().Str("key", key).Str("url", url).Msg("media object stored")
	return url, nil
}

// objectURL derives the externally reachable URL of a stored object. A
// configured PublicBaseURL (e.g. a CDN) takes precedence over the canonical
// AWS virtual-hosted form.
func (u *s3Uploader) objectURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.BaseEndpoint != "" {
		return strings.TrimSuffix(u.cfg.BaseEndpoint, "/") + "/" + u.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
