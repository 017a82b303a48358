package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
	"voyago/pkg/utils"
)

// ObjectStore keeps public blobs. Put overwrites an existing key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
}

type gcsObjectStore struct {
	objects *storage.ObjectsService
	bucket  string
	logger  *zap.Logger
}

type disabledObjectStore struct{}

func (disabledObjectStore) Put(context.Context, string, string, []byte) (string, error) {
	return "", utils.ErrStorageUnavailable
}

// NewObjectStore falls back to a store that rejects every write when no bucket is configured.
func NewObjectStore(ctx context.Context, cfg GCSConfig, logger *zap.Logger) (ObjectStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Bucket == "" {
		logger.Warn("GCS_BUCKET not set, uploads are disabled")
		return disabledObjectStore{}, nil
	}

	opts := []option.ClientOption{option.WithScopes(storage.DevstorageReadWriteScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &gcsObjectStore{objects: svc.Objects, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *gcsObjectStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	obj := &storage.Object{
		Name:         key,
		ContentType:  contentType,
		CacheControl: "no-cache, max-age=0",
	}
	_, err := s.objects.Insert(s.bucket, obj).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		PredefinedAcl("publicRead").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("object upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %w", utils.ErrStorageUnavailable, err)
	}
	return PublicObjectURL(s.bucket, key), nil
}

func PublicObjectURL(bucket, key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.Join(parts, "/"))
}
