package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"cityfeed/internal/config"
	"cityfeed/internal/models"
	"cityfeed/internal/observability"

	"resty.dev/v3"
)

// allowedImageTypes are the MIME types the remote image host accepts.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaService forwards uploaded binaries to a remote image-hosting service
// and hands back the hosted URL. No transcoding happens locally.
type MediaService struct {
	client     *resty.Client
	maxBytes   int64
	configured bool
}

type hostedImageResponse struct {
	URL string `json:"url"`
}

func NewMediaService(cfg *config.Config) *MediaService {
	configured := cfg.ImageHostURL != ""
	client := resty.New().
		SetBaseURL(cfg.ImageHostURL).
		SetHeader("X-API-Key", cfg.ImageHostAPIKey)

	return &MediaService{
		client:     client,
		maxBytes:   int64(cfg.ImageMaxUploadSizeMB) * 1024 * 1024,
		configured: configured,
	}
}

func (s *MediaService) Close() error {
	return s.client.Close()
}

// Upload sends the image to the remote host and returns the hosted URL.
func (s *MediaService) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if !s.configured {
		return "", models.NewValidationError("Image uploads are not enabled")
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		observability.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return "", models.NewValidationError("Unsupported image type (use jpeg, png, gif or webp)")
	}
	if int64(len(data)) > s.maxBytes {
		observability.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return "", models.NewValidationError(fmt.Sprintf("Image exceeds the %dMB upload limit", s.maxBytes/(1024*1024)))
	}
	if len(data) == 0 {
		observability.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return "", models.NewValidationError("Image file is empty")
	}

	var result hostedImageResponse
	res, err := s.client.R().
		WithContext(ctx).
		SetFileReader("image", filename, bytes.NewReader(data)).
		SetResult(&result).
		Post("/upload")
	if err != nil {
		observability.MediaUploadsTotal.WithLabelValues("error").Inc()
		return "", models.NewInternalError(err)
	}
	if res.IsError() {
		observability.MediaUploadsTotal.WithLabelValues("error").Inc()
		return "", models.NewInternalError(fmt.Errorf("image host returned status %d", res.StatusCode()))
	}
	if result.URL == "" {
		observability.MediaUploadsTotal.WithLabelValues("error").Inc()
		return "", models.NewInternalError(fmt.Errorf("image host returned no URL"))
	}

	observability.MediaUploadsTotal.WithLabelValues("ok").Inc()
	return result.URL, nil
}
