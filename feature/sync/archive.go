package sync

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"fleet-console/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes raw sync payloads to object storage so a batch can be
// replayed when debugging a producer. Archiving is best-effort by
// design: a storage outage must never fail a sync call.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates an archiver writing into the given bucket.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

// Archive stores one payload under sync/<date>/<rayid>.json.
func (a *Archiver) Archive(ctx context.Context, rayID string, payload []byte) {
	if rayID == "" {
		rayID = uuid.NewString()
	}
	object := fmt.Sprintf("sync/%s/%s.json", time.Now().UTC().Format("2006-01-02"), rayID)

	_, err := a.client.PutObject(ctx, a.bucket, object,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		a.logger.Warn("Failed to archive sync batch",
			zap.String("object", object),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("Archived sync batch", zap.String("object", object))
}
