package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// MediaStorage stores lesson thumbnails and geo-point media under one bucket,
// serving presigned GET URLs to readers.
type MediaStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewMediaStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*MediaStorage, error) {
	exists, err := storage.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = storage.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MediaStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

// Upload stores one media object under "<kind>/<ownerID>/<name><ext>" and
// returns the object key.
func (s *MediaStorage) Upload(
	ctx context.Context,
	kind string,
	ownerID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}

	objectKey := fmt.Sprintf("%s/%s/%s%s", kind, ownerID.String(), uuid.NewString(), ext)

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err := s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *MediaStorage) URL(ctx context.Context, objectKey string) (string, error) {
	reqParams := make(url.Values)
	u, err := s.storage.client.PresignedGetObject(ctx, s.bucket, objectKey, s.presignedTTL, reqParams)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *MediaStorage) Delete(ctx context.Context, objectKey string) error {
	return s.storage.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
