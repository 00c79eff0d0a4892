package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"usage-counter/internal/models"
	"usage-counter/internal/shared/filestorages"
)

//go:generate mockgen -source=usage_report_store.go -destination=./mocks/usage_report_store_mock.go -package=mocks
type UsageReportStore interface {
	Upsert(ctx context.Context, report *models.UsageReport) error
	Get(ctx context.Context, collection, day string) (*models.UsageReport, error)
}

type usageReportStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewUsageReportStore(fileStorage filestorages.FileStorage) UsageReportStore {
	return &usageReportStore{fileStorage: fileStorage, dir: "usage-reports"}
}

func (s *usageReportStore) Upsert(ctx context.Context, report *models.UsageReport) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal usage report: %w", err)
	}
	reader := bytes.NewReader(jsonData)
	key := s.getKey(report.Collection, report.Day)
	_, err = s.fileStorage.Put(ctx, key, reader, filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put usage report: %w", err)
	}
	return nil
}

// Get returns the stored report for the collection and day, or an empty one
// when no report has been written yet.
func (s *usageReportStore) Get(ctx context.Context, collection, day string) (*models.UsageReport, error) {
	key := s.getKey(collection, day)
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return models.NewEmptyUsageReport(collection, day), nil
		}
		return nil, fmt.Errorf("failed to get usage report: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage report: %w", err)
	}
	var report models.UsageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage report: %w", err)
	}
	return &report, nil
}

func (s *usageReportStore) getKey(collection, day string) string {
	return fmt.Sprintf("%s/%s/%s.json", s.dir, collection, day)
}
