package storage

import (
	"context"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockObjectPutter struct {
	mock.Mock
}

func (m *MockObjectPutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func TestMinioStorage_StoreCodeImage(t *testing.T) {
	png := []byte("png-bytes")

	t.Run("stores the image as png", func(t *testing.T) {
		putter := new(MockObjectPutter)
		var stored []byte
		putter.On("PutObject", mock.Anything, "email-requests", "requests/abc.png", mock.Anything, int64(len(png)),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == constvars.MIMEImagePNG })).
			Run(func(args mock.Arguments) {
				stored, _ = io.ReadAll(args.Get(3).(io.Reader))
			}).
			Return(minio.UploadInfo{Key: "requests/abc.png"}, nil).Once()

		archive := NewMinioStorage(putter, "email-requests", zap.NewNop())
		name, err := archive.StoreCodeImage(context.Background(), "requests/abc.png", png)
		require.NoError(t, err)
		assert.Equal(t, "requests/abc.png", name)
		assert.Equal(t, png, stored)
		putter.AssertExpectations(t)
	})

	t.Run("put failure is wrapped with the bucket name", func(t *testing.T) {
		putter := new(MockObjectPutter)
		putter.On("PutObject", mock.Anything, "email-requests", "requests/abc.png", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("access denied")).Once()

		archive := NewMinioStorage(putter, "email-requests", zap.NewNop())
		name, err := archive.StoreCodeImage(context.Background(), "requests/abc.png", png)
		require.Error(t, err)
		assert.Empty(t, name)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Contains(t, customErr.DevMessage, "email-requests")
	})
}
