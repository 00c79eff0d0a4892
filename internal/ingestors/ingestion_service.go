package ingestors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
	"usage-counter/internal/shared/metrics"
	"usage-counter/internal/shared/ulid"
	"usage-counter/internal/stores"
	"usage-counter/internal/streams"
)

const (
	maxBatchBytes   = 2 * 1024 * 1024
	maxTargetLen    = 2048
	maxUserAgentLen = 1024
)

const (
	FormatJSON = "json"
)

// IngestResult represents the result of a batch ingestion operation.
type IngestResult struct {
	BatchID     string
	StoredCount int
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestBatch processes a batch of raw access records from JSON format.
	IngestBatch(ctx context.Context, collection string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	hitEnricher         HitEnricher
	batchStore          stores.AccessBatchStore
	accessBatchProducer streams.AccessBatchProducer
}

func NewIngestionService(hitEnricher HitEnricher, batchStore stores.AccessBatchStore, accessBatchProducer streams.AccessBatchProducer) IngestionService {
	return &ingestionService{
		hitEnricher:         hitEnricher,
		batchStore:          batchStore,
		accessBatchProducer: accessBatchProducer,
	}
}

func (s *ingestionService) IngestBatch(ctx context.Context, collection string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting access batch with collection: %s, idempotency key: %s, format: %s", collection, idempotencyKey, format)

	records, err := s.validateAccessBatch(collection, format, r)
	if err != nil {
		return nil, err
	}

	batchID := strings.TrimSpace(idempotencyKey)
	if batchID == "" {
		batchID = ulid.NewULID()
	}

	batch := &models.AccessBatch{
		BatchID:    batchID,
		Collection: collection,
		Records:    records,
	}

	// Store the access batch
	err = s.batchStore.Put(ctx, batch)
	if err != nil {
		if errors.Is(err, stores.ErrAccessBatchAlreadyExist) {
			svcError := errAccessBatchAlreadyProcessed(err)
			metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		return nil, errInternalAccessBatchStoreFailed(err)
	}

	// classify the records and publish per-day events
	hits := s.hitEnricher.Enrich(batch)

	err = s.accessBatchProducer.Produce(ctx, batchID, collection, hits)
	if err != nil {
		return nil, errInternalAccessBatchPublisherFailed(err)
	}

	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return &IngestResult{BatchID: batchID, StoredCount: len(records)}, nil
}

func (s *ingestionService) validateAccessBatch(collection string, format string, r io.Reader) ([]*models.RawAccessRecord, error) {
	if collection == "" {
		return nil, errValidationFailed("collection is required", nil)
	}

	// Handle nil reader
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	// Read with size limit
	buf, err := s.readWithLimit(r, maxBatchBytes)
	if err != nil {
		return nil, errValidationFailed("batch too large: must be <= 2MB", nil)
	}

	// Normalize format to lowercase for comparison
	formatLower := strings.ToLower(format)

	// Parse based on format (using contains for flexible matching)
	var records []*models.RawAccessRecord
	if strings.Contains(formatLower, FormatJSON) {
		records, err = s.parseJSON(buf)
		if err != nil {
			return nil, err
		}
	} else {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	// Validate that records are not empty
	if len(records) == 0 {
		return nil, errValidationFailed("access records cannot be empty", nil)
	}

	return records, nil
}

// readWithLimit reads the full body up to max+1 bytes and checks if it
// exceeds max. Bodies arrive in arbitrary chunks, so the read must drain the
// reader rather than stop at the first chunk.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, err
	}

	// If we read more than max bytes, the batch is too large
	if len(buf) > max {
		return nil, errValidationFailed("batch too large", nil)
	}

	return buf, nil
}

// parseJSON parses buf as a JSON array of objects into RawAccessRecord slice.
func (s *ingestionService) parseJSON(buf []byte) ([]*models.RawAccessRecord, error) {
	var arr []map[string]any
	if err := json.Unmarshal(buf, &arr); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}

	records := make([]*models.RawAccessRecord, 0, len(arr))
	for i, item := range arr {
		record, err := s.jsonObjectToRecord(item, i)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// jsonObjectToRecord converts a JSON object map to RawAccessRecord.
//
// ip and timestamp are mandatory: a record that cannot be placed or
// sessionized is unusable. Geolocation, the action target and the user agent
// may be empty; the counting gates decide their fate later.
func (s *ingestionService) jsonObjectToRecord(obj map[string]any, index int) (*models.RawAccessRecord, error) {
	record := &models.RawAccessRecord{Era: models.EraClassic}

	ip, err := s.requiredString(obj, "ip", index)
	if err != nil {
		return record, err
	}
	record.IP = ip

	timestampStr, err := s.requiredString(obj, "timestamp", index)
	if err != nil {
		return record, err
	}
	record.Timestamp, err = s.parseTime(timestampStr, index)
	if err != nil {
		return record, err
	}

	record.Latitude, err = s.optionalFloat(obj, "latitude", index)
	if err != nil {
		return record, err
	}
	record.Longitude, err = s.optionalFloat(obj, "longitude", index)
	if err != nil {
		return record, err
	}

	record.UserAgent, err = s.optionalString(obj, "userAgent", index)
	if err != nil {
		return record, err
	}
	record.ActionTarget, err = s.optionalString(obj, "actionTarget", index)
	if err != nil {
		return record, err
	}
	record.Host, err = s.optionalString(obj, "host", index)
	if err != nil {
		return record, err
	}

	eraStr, err := s.optionalString(obj, "era", index)
	if err != nil {
		return record, err
	}
	if eraStr != "" {
		era, err := models.NewSiteEraFromString(strings.ToLower(eraStr))
		if err != nil {
			return record, errValidationFailed(fmt.Sprintf("item at index %d: invalid era: %q", index, eraStr), nil)
		}
		record.Era = era
	}

	s.normalizeRecord(record)
	if err := s.validateRecord(record, index); err != nil {
		return record, err
	}
	return record, nil
}

func (s *ingestionService) requiredString(obj map[string]any, field string, index int) (string, error) {
	val, ok := obj[field]
	if !ok {
		return "", errValidationFailed(fmt.Sprintf("item at index %d: missing %s", index, field), nil)
	}
	str, ok := val.(string)
	if !ok {
		return "", errValidationFailed(fmt.Sprintf("item at index %d: %s must be a string", index, field), nil)
	}
	return str, nil
}

func (s *ingestionService) optionalString(obj map[string]any, field string, index int) (string, error) {
	val, ok := obj[field]
	if !ok {
		return "", nil
	}
	str, ok := val.(string)
	if !ok {
		return "", errValidationFailed(fmt.Sprintf("item at index %d: %s must be a string", index, field), nil)
	}
	return str, nil
}

func (s *ingestionService) optionalFloat(obj map[string]any, field string, index int) (*float64, error) {
	val, ok := obj[field]
	if !ok || val == nil {
		return nil, nil
	}
	num, ok := val.(float64)
	if !ok {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: %s must be a number", index, field), nil)
	}
	return &num, nil
}

func (s *ingestionService) normalizeRecord(record *models.RawAccessRecord) {
	record.IP = strings.TrimSpace(record.IP)
	record.ActionTarget = strings.TrimSpace(record.ActionTarget)
	record.UserAgent = strings.TrimSpace(record.UserAgent)
	record.Host = strings.ToLower(strings.TrimSpace(record.Host))
}

func (s *ingestionService) validateRecord(record *models.RawAccessRecord, index int) error {
	if record.IP == "" {
		return errValidationFailed(fmt.Sprintf("item at index %d: ip cannot be blank", index), nil)
	}
	if len(record.ActionTarget) > maxTargetLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: actionTarget too long: max %d characters", index, maxTargetLen), nil)
	}
	if len(record.UserAgent) > maxUserAgentLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: userAgent too long: max %d characters", index, maxUserAgentLen), nil)
	}
	return nil
}

// parseTime parses a time string in RFC3339 or ISO-8601 format.
func (s *ingestionService) parseTime(timeStr string, index int) (time.Time, error) {

	// Try ISO-8601 with milliseconds
	t, err := time.Parse("2006-01-02T15:04:05.000Z", timeStr)
	if err == nil {
		return t, nil
	}

	// Try ISO-8601 without milliseconds
	t, err = time.Parse("2006-01-02T15:04:05Z07:00", timeStr)
	if err == nil {
		return t, nil
	}

	return time.Time{}, errValidationFailed(fmt.Sprintf("item at index %d: invalid time format: %s", index, timeStr), nil)
}
