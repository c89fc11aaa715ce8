package imagestorage

import (
	"errors"

	"github.com/franhub/franhub/internal/pkg/env"
)

// Config holds listing image storage configuration. With S3 disabled,
// images are written to the local uploads directory instead.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // CDN or bucket URL images are served from
	Enabled         bool
}

// LoadConfig loads image storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-west-001"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
		Enabled:         env.GetEnv("S3_STORAGE_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when S3 storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when S3 storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when S3 storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled reports whether S3-backed storage is configured.
func (c *Config) IsEnabled() bool {
	return c.Enabled
}
