package storage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// ObjectPutter is the subset of *minio.Client used by the code image archive.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}
