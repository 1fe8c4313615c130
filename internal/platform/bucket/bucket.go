package bucket

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

// ObjectStore is the slice of the object-store signer this backend needs:
// put, delete, and time-limited signed GET URLs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(key string, validity time.Duration) (string, error)
}

type Config struct {
	BucketName      string
	CredentialsFile string
}

type gcsStore struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
}

func New(log *logger.Logger, cfg Config) (ObjectStore, error) {
	serviceLog := log.With("service", "ObjectStore")
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name required")
	}

	ctx := context.Background()
	var client *storage.Client
	var err error
	if cfg.CredentialsFile != "" {
		client, err = storage.NewClient(ctx,
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(storage.ScopeReadWrite),
		)
	} else {
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info("Object storage initialized", "bucket", cfg.BucketName)
	return &gcsStore{
		log:    serviceLog,
		client: client,
		bucket: cfg.BucketName,
	}, nil
}

func (s *gcsStore) Upload(ctx context.Context, key string, data io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "private, max-age=0"
	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish object %q: %w", key, err)
	}
	return nil
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	o := s.client.Bucket(s.bucket).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

func (s *gcsStore) SignedURL(key string, validity time.Duration) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(validity),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %q: %w", key, err)
	}
	return url, nil
}
