package contracts

import (
	"context"
	"io"
)

type ObjectStorage interface {
	UploadObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error
	DownloadObject(ctx context.Context, objectKey string) ([]byte, error)
	RemoveObject(ctx context.Context, objectKey string) error
}
