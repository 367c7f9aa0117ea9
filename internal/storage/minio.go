// Package storage adapts MinIO as the blob store for uploaded materials.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/autumnrose0910/class-notes-project/internal/config"
)

// MinIOStore is a thin wrapper around the minio client used by the coordinators.
type MinIOStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
	timeout    time.Duration
}

// NewMinIOStore creates a MinIO client and ensures the bucket exists.
func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}

	s := &MinIOStore{
		client:     mc,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(base, "/"),
		timeout:    cfg.Timeout,
	}

	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Put writes the blob under key and returns its durable public URL.
func (s *MinIOStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", s.bucket, err)
	}
	return s.PublicURL(key), nil
}

// Remove deletes the blob under key. Removing a missing key is not an error.
func (s *MinIOStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("minio remove %s: %w", s.bucket, err)
	}
	return nil
}

// PublicURL returns the externally resolvable URL for a stored key.
func (s *MinIOStore) PublicURL(key string) string {
	return s.publicBase + "/" + s.bucket + "/" + url.PathEscape(key)
}
