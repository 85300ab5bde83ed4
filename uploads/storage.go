// Package uploads stores member file uploads in S3-compatible object
// storage. Uploads are optional: an unconfigured deployment simply has the
// surface disabled.
package uploads

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/chapterhq/portal-server/internal/config"
)

const presignExpiry = 15 * time.Minute

type Storage struct {
	client *minio.Client
	bucket string
}

// New builds upload storage from config. Returns (nil, nil) when no endpoint
// is configured, which callers treat as "uploads disabled".
func New(cfg config.UploadConfig) (*Storage, error) {
	if cfg.GetS3Endpoint() == "" {
		return nil, nil
	}
	client, err := minio.New(cfg.GetS3Endpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetS3AccessKey(), cfg.GetS3SecretKey(), ""),
		Secure: cfg.GetS3UseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}
	return &Storage{client: client, bucket: cfg.GetS3Bucket()}, nil
}

// Put streams an upload into the bucket and returns its object key. Keys are
// uuid-prefixed so repeated filenames never collide.
func (s *Storage) Put(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
	key := uuid.New().String() + "-" + sanitizeFilename(filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("store upload %q: %w", key, err)
	}
	return key, nil
}

// PresignedURL returns a short-lived download URL for an object key.
func (s *Storage) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", key, err)
	}
	return u.String(), nil
}

// sanitizeFilename keeps object keys flat and url-safe.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
