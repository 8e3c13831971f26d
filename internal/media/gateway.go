package media

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/viewtube/user-service/internal/config"
	"github.com/viewtube/user-service/internal/logger"
)

const defaultGatewayTimeout = 30 * time.Second

// gatewayUploader pushes media files to a hosted upload API over HTTP.
// The gateway accepts a multipart POST with a "file" part and responds with
// a JSON document carrying the durable URL of the stored object.
type gatewayUploader struct {
	client *resty.Client
	cfg    config.Gateway
	logger *logger.Logger
}

// gatewayUploadResponse is the success payload returned by the upload API.
type gatewayUploadResponse struct {
	URL string `json:"url"`
}

// NewGatewayUploader constructs an [Uploader] backed by the hosted media API
// described in cfg.
func NewGatewayUploader(cfg config.Gateway, log *logger.Logger) Uploader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultGatewayTimeout
	}

	client := resty.New().SetTimeout(timeout)
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	log.Debug().Str("upload_url", cfg.UploadURL).Msg("gateway media uploader created")

	return &gatewayUploader{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

// Upload sends the file at localPath to the gateway and returns the URL the
// gateway assigned to it.
func (u *gatewayUploader) Upload(ctx context.Context, localPath string) (string, error) {
	log := logger.FromContext(ctx)

	var result gatewayUploadResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetFile("file", localPath).
		SetResult(&result).
		Post(u.cfg.UploadURL)
	if err != nil {
		log.Err(err).Str("path", localPath).Msg("error posting media file to gateway")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("gateway rejected media file")
		return "", fmt.Errorf("%w: gateway returned status %d", ErrUploadFailed, resp.StatusCode())
	}

	if result.URL == "" {
		return "", fmt.Errorf("%w: gateway returned no url", ErrUploadFailed)
	}

	log.Debug().Str("url", result.URL).Msg("media file stored via gateway")
	return result.URL, nil
}
