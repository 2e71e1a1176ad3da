package di

import (
	"context"

	"users_backend/internal/platform/config"
	"users_backend/internal/platform/storage"
)

// NewStorageProvider creates the blob-store provider selected by
// configuration: "s3" for S3/MinIO, anything else local disk.
func NewStorageProvider(ctx context.Context, cfg *config.Config) (storage.Provider, error) {
	if cfg.Storage.Provider == "s3" {
		return storage.NewS3(ctx, storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			BaseURL:   cfg.Storage.PublicBaseURL,
		})
	}
	return storage.NewLocal(cfg.Storage.LocalRoot, cfg.Storage.PublicBaseURL), nil
}
