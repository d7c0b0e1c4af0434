package sync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fleet-console/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestArchiveObjectName(t *testing.T) {
	client := &mocks.Client{}
	archiver := NewArchiver(client, "fleet-archive", zap.NewNop())

	payload := []byte(`{"agents":[]}`)
	object := fmt.Sprintf("sync/%s/ray-123.json", time.Now().UTC().Format("2006-01-02"))

	client.On("PutObject", mock.Anything, "fleet-archive", object,
		mock.Anything, int64(len(payload)), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	archiver.Archive(context.Background(), "ray-123", payload)

	client.AssertExpectations(t)
}

func TestArchiveGeneratesRayID(t *testing.T) {
	client := &mocks.Client{}
	archiver := NewArchiver(client, "fleet-archive", zap.NewNop())

	var object string
	client.On("PutObject", mock.Anything, "fleet-archive",
		mock.MatchedBy(func(name string) bool {
			object = name
			return true
		}),
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	archiver.Archive(context.Background(), "", []byte(`{}`))

	client.AssertExpectations(t)
	assert.Regexp(t, `^sync/\d{4}-\d{2}-\d{2}/[0-9a-f-]{36}\.json$`, object)
}

func TestArchiveSwallowsStorageFailure(t *testing.T) {
	client := &mocks.Client{}
	archiver := NewArchiver(client, "fleet-archive", zap.NewNop())

	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	assert.NotPanics(t, func() {
		archiver.Archive(context.Background(), "ray-456", []byte(`{}`))
	})
	client.AssertExpectations(t)
}
