package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store wraps an S3-compatible object store. The service only needs two
// capabilities: issue a time-limited PUT URL for the client upload, and
// fetch the uploaded object's bytes for ingestion.
type Store interface {
	PresignUpload(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
	Fetch(ctx context.Context, objectKey string) ([]byte, error)
}

type minioStore struct {
	client *minio.Client
	bucket string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewMinioStore(cfg Config) (Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &minioStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (s *minioStore) PresignUpload(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, expiry)
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", objectKey, err)
	}
	return u.String(), nil
}

func (s *minioStore) Fetch(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", objectKey, err)
	}
	return data, nil
}

// ObjectKey returns the canonical upload location for a session's document.
func ObjectKey(sessionId string) string {
	return fmt.Sprintf("uploads/%s.pdf", url.PathEscape(sessionId))
}
