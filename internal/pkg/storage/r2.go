package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Config for the R2 media storage service
type Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string // CDN URL prefix
}

// Service stores storefront media (game banners, logos, user avatars) in
// Cloudflare R2 through the S3-compatible API.
type Service struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// AllowedImageTypes for upload validation
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MaxFileSize in bytes (5MB, avatars and banners, nothing bigger)
const MaxFileSize = 5 * 1024 * 1024

// NewService creates the media storage service.
// Returns nil if config is incomplete (uploads disabled).
func NewService(cfg Config) *Service {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.BucketName == "" {
		log.Warn().Msg("R2 config incomplete, media uploads disabled")
		return nil
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.AccessKeySecret,
			"",
		)),
		config.WithRegion("auto"),
		config.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create R2 client config")
		return nil
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://pub-%s.r2.dev", cfg.AccountID)
	}

	log.Info().Str("bucket", cfg.BucketName).Str("public_url", publicURL).Msg("R2 media storage initialized")

	return &Service{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Put uploads the given bytes under a generated key and returns the public URL.
// prefix groups objects by purpose: "avatars", "banners", "logos".
func (s *Service) Put(ctx context.Context, prefix string, ownerID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	if s == nil {
		return "", fmt.Errorf("media storage not configured")
	}

	if !AllowedImageTypes[contentType] {
		return "", fmt.Errorf("invalid file type: %s (allowed: jpeg, png, webp, gif)", contentType)
	}
	if int64(len(data)) > MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d MB)", len(data), MaxFileSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/%s/%s/%s%s",
		prefix,
		time.Now().Format("2006/01"),
		ownerID.String(),
		uuid.New().String(),
		ext,
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// Delete removes a previously uploaded object by its public URL.
func (s *Service) Delete(ctx context.Context, publicURL string) error {
	if s == nil {
		return nil
	}

	key := strings.TrimPrefix(publicURL, s.publicURL+"/")
	if key == publicURL {
		// not one of ours
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// IsConfigured returns true if the service is ready
func (s *Service) IsConfigured() bool {
	return s != nil
}
