package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"usage-counter/internal/models"
	"usage-counter/internal/shared/filestorages"
)

// HitLogStore keeps the deduplicated hits that went into each daily report,
// per originating batch. The log is an audit trail: reports can be checked or
// rebuilt from it without re-ingesting raw accesses.
//
//go:generate mockgen -source=hit_log_store.go -destination=./mocks/hit_log_store_mock.go -package=mocks
type HitLogStore interface {
	Put(ctx context.Context, collection, day, batchID string, hits []*models.Hit) error
}

type hitLogStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewHitLogStore(fileStorage filestorages.FileStorage) HitLogStore {
	return &hitLogStore{fileStorage: fileStorage, dir: "hit-logs"}
}

func (s *hitLogStore) Put(ctx context.Context, collection, day, batchID string, hits []*models.Hit) error {
	jsonData, err := json.Marshal(hits)
	if err != nil {
		return fmt.Errorf("failed to marshal hit log: %w", err)
	}
	reader := bytes.NewReader(jsonData)

	key := fmt.Sprintf("%s/%s/%s/%s.json", s.dir, collection, day, batchID)

	// Reprocessing a batch rewrites the same hits, so overwrite is safe.
	_, err = s.fileStorage.Put(ctx, key, reader, filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put hit log: %w", err)
	}
	return nil
}
