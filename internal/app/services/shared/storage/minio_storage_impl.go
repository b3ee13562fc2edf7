package storage

import (
	"context"
	"io"
	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

// NewMinioStorage binds the storage service to a single bucket. Uploaded
// triage exports are retained there until their dataset is deleted.
func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.ObjectStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return exceptions.ErrStorageUpload(err)
	}
	return nil
}

func (m *minioStorage) DownloadObject(ctx context.Context, objectKey string) ([]byte, error) {
	object, err := m.MinioClient.GetObject(ctx, m.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrStorageDownload(err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, exceptions.ErrStorageDownload(err)
	}
	return data, nil
}

func (m *minioStorage) RemoveObject(ctx context.Context, objectKey string) error {
	err := m.MinioClient.RemoveObject(ctx, m.BucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrStorageRemove(err)
	}
	return nil
}
