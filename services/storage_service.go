package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService keeps product images in object storage and hands back the
// public URL the catalog stores.
type StorageService struct {
	logger *gecho.Logger
	cfg    *structs.StorageConfig
	client *minio.Client
}

func NewStorageService(logger *gecho.Logger, cfg *structs.StorageConfig) (*StorageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &StorageService{
		logger: logger,
		cfg:    cfg,
		client: client,
	}, nil
}

// EnsureBucket creates the image bucket if it does not exist yet.
func (ss *StorageService) EnsureBucket(ctx context.Context) error {
	exists, err := ss.client.BucketExists(ctx, ss.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := ss.client.MakeBucket(ctx, ss.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	ss.logger.Info("Created image bucket", gecho.Field("bucket", ss.cfg.Bucket))
	return nil
}

// UploadProductImage stores the image under a generated key and returns the
// public URL.
func (ss *StorageService) UploadProductImage(ctx context.Context, productID int64, filename, contentType string, reader io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("products/%d/%d-%s%s",
		productID,
		time.Now().Unix(),
		uuid.New().String()[:8],
		path.Ext(filename),
	)

	_, err := ss.client.PutObject(ctx, ss.cfg.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		ss.logger.Error("Failed to upload product image", gecho.Field("error", err), gecho.Field("key", key))
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", ss.cfg.PublicBaseURL, ss.cfg.Bucket, key), nil
}

// DeleteImage removes an object by key.
func (ss *StorageService) DeleteImage(ctx context.Context, key string) error {
	return ss.client.RemoveObject(ctx, ss.cfg.Bucket, key, minio.RemoveObjectOptions{})
}
