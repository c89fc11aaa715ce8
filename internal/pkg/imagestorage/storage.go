// Package imagestorage persists listing and banner images. It writes to
// an S3-compatible bucket when configured and falls back to the local
// uploads directory otherwise, so development needs no cloud account.
package imagestorage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"

	"github.com/franhub/franhub/internal/pkg/constants"
)

// Storage stores image bytes under a key and serves back a public URL.
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

var (
	defaultStorage Storage
	setupOnce      sync.Once
)

// Get returns the process-wide storage, building it from the
// environment on first use.
func Get() Storage {
	setupOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			log.Errorf("[ImageStorage] config invalid, using local storage: %v", err)
			defaultStorage = NewLocalStorage("uploads")
			return
		}
		if !cfg.IsEnabled() {
			defaultStorage = NewLocalStorage("uploads")
			return
		}
		s3Store, err := NewS3Storage(cfg)
		if err != nil {
			log.Errorf("[ImageStorage] S3 unavailable, using local storage: %v", err)
			defaultStorage = NewLocalStorage("uploads")
			return
		}
		defaultStorage = s3Store
	})
	return defaultStorage
}

// S3Storage stores images in an S3-compatible bucket.
type S3Storage struct {
	client *s3.Client
	cfg    *Config
}

// NewS3Storage creates a new S3-backed image store.
func NewS3Storage(cfg *Config) (*S3Storage, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible services (Backblaze, MinIO) need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	store := &S3Storage{client: client, cfg: cfg}

	// Verify bucket access up front so boot fails loudly, not the first upload.
	if _, err := client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(cfg.BucketName),
	}); err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", cfg.BucketName, err)
	}

	log.Infof("[ImageStorage] Using S3 bucket %s", cfg.BucketName)
	return store, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) PublicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	if s.cfg.EndpointURL != "" {
		return strings.TrimRight(s.cfg.EndpointURL, "/") + "/" + s.cfg.BucketName + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.BucketName, s.cfg.Region, key)
}

// LocalStorage writes images to the local uploads directory, served by
// the static file handler.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (l *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	fullPath := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	return l.PublicURL(key), nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *LocalStorage) PublicURL(key string) string {
	return path.Join(constants.UploadsRoute, key)
}
