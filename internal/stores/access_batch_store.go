package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"usage-counter/internal/models"
	"usage-counter/internal/shared/filestorages"
)

var (
	ErrAccessBatchAlreadyExist = errors.New("access batch already exists")
)

// AccessBatchStore simulates S3's atomic PUT operations for deduplication.
// Put performs an atomic "create-if-not-exists" operation, similar to S3's
// conditional PUT behavior.
//
// Example scenario (similar to S3 conditional PUT):
//   - Request A and Request B both try to store batch "batch-123" simultaneously
//   - Request A's Put succeeds → batch stored
//   - Request B's Put fails → ErrAccessBatchAlreadyExist returned (duplicate detected)
//   - This enables idempotent batch ingestion: resubmitted batches are detected and rejected
//
//go:generate mockgen -source=access_batch_store.go -destination=./mocks/access_batch_store_mock.go -package=mocks
type AccessBatchStore interface {
	Put(ctx context.Context, batch *models.AccessBatch) error
}

type accessBatchStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewAccessBatchStore(fileStorage filestorages.FileStorage) AccessBatchStore {
	return &accessBatchStore{fileStorage: fileStorage, dir: "access-batches"}
}

func (s *accessBatchStore) Put(ctx context.Context, batch *models.AccessBatch) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal access batch: %w", err)
	}
	reader := bytes.NewReader(jsonData)

	key := fmt.Sprintf("%s/%s/%s.json", s.dir, batch.Collection, batch.BatchID)

	_, err = s.fileStorage.Put(ctx, key, reader, filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrAccessBatchAlreadyExist
		}
		return fmt.Errorf("failed to put access batch: %w", err)
	}
	return nil
}
