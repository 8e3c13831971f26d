package media

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/viewtube/user-service/internal/config"
	"github.com/viewtube/user-service/internal/logger"
)

// NewUploader constructs the media store implementation selected by
// cfg.Backend: "s3" or "gateway".
func NewUploader(ctx context.Context, cfg config.Media, log *logger.Logger) (Uploader, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Uploader(ctx, cfg.S3, log)
	case "gateway":
		return NewGatewayUploader(cfg.Gateway, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// storageKey returns a date-partitioned, collision-free object key,
// e.g. "media/2026/9/1/2f1e…". Partitioning by day keeps bucket listings
// manageable for operators.
func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%d/%d/%v", d.Year(), int(d.Month()), d.Day(), uuid.New())
}
