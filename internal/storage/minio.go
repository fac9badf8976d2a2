// Package storage provides an optional object-storage archive for accepted
// uploads. Archive failures are reported to the caller but the gateway treats
// them as non-fatal.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AudioStore archives raw audio payloads under a generated key.
type AudioStore interface {
	Put(ctx context.Context, name, mimeType string, data []byte) (string, error)
}

// MinioStore implements AudioStore using a MinIO (or S3-compatible) bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// Config carries the connection settings for a MinIO store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStore connects to the configured endpoint and ensures the bucket
// exists.
func NewMinioStore(ctx context.Context, cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads the payload and returns the object key.
func (s *MinioStore) Put(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	key := path.Join(
		time.Now().UTC().Format("2006/01/02"),
		uuid.New().String()+"_"+path.Base(name),
	)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	return key, nil
}
