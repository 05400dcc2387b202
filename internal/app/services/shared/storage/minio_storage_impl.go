package storage

import (
	"bytes"
	"context"
	"email-attestation-service/internal/app/contracts"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	MinioClient ObjectPutter
	BucketName  string
	Log         *zap.Logger
}

func NewMinioStorage(minioClient ObjectPutter, bucketName string, logger *zap.Logger) contracts.CodeImageArchive {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
	}
}

func (m *minioStorage) StoreCodeImage(ctx context.Context, objectName string, png []byte) (string, error) {
	requestID := utils.GetRequestID(ctx)
	m.Log.Info("minioStorage.StoreCodeImage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, m.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingCodeImageSizeBytesKey, len(png)),
	)

	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(png),
		int64(len(png)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEImagePNG,
		},
	)
	if err != nil {
		m.Log.Error("minioStorage.StoreCodeImage error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, m.BucketName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return objectName, nil
}
