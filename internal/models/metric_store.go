package models

import (
	"encoding/json"
	"sort"
)

// MetricBucket holds the four COUNTER R5 figures for one resource on one day.
type MetricBucket struct {
	TotalItemRequests        int64 `json:"totalItemRequests"`
	UniqueItemRequests       int64 `json:"uniqueItemRequests"`
	TotalItemInvestigations  int64 `json:"totalItemInvestigations"`
	UniqueItemInvestigations int64 `json:"uniqueItemInvestigations"`
}

// Add accumulates other into b. Bucket addition is commutative and
// associative, so partial stores may be merged in any order.
func (b *MetricBucket) Add(other MetricBucket) {
	b.TotalItemRequests += other.TotalItemRequests
	b.UniqueItemRequests += other.UniqueItemRequests
	b.TotalItemInvestigations += other.TotalItemInvestigations
	b.UniqueItemInvestigations += other.UniqueItemInvestigations
}

// MetricStore maps resource key -> calendar date (YYYY-MM-DD) -> metric
// bucket. A store is owned by exactly one writer while it is being populated
// and is handed off read-only to exporters afterwards. Resource/day pairs
// with no qualifying hits never appear: there are no explicit zero rows.
type MetricStore struct {
	byResource map[ResourceKey]map[string]*MetricBucket
}

func NewMetricStore() *MetricStore {
	return &MetricStore{byResource: make(map[ResourceKey]map[string]*MetricBucket)}
}

// Bucket returns the bucket for (key, day), creating it when absent.
func (s *MetricStore) Bucket(key ResourceKey, day string) *MetricBucket {
	days, ok := s.byResource[key]
	if !ok {
		days = make(map[string]*MetricBucket)
		s.byResource[key] = days
	}
	bucket, ok := days[day]
	if !ok {
		bucket = &MetricBucket{}
		days[day] = bucket
	}
	return bucket
}

// Get returns a copy of the bucket for (key, day), if present.
func (s *MetricStore) Get(key ResourceKey, day string) (MetricBucket, bool) {
	if days, ok := s.byResource[key]; ok {
		if bucket, ok := days[day]; ok {
			return *bucket, true
		}
	}
	return MetricBucket{}, false
}

// Resources returns all resource keys present in the store.
func (s *MetricStore) Resources() []ResourceKey {
	keys := make([]ResourceKey, 0, len(s.byResource))
	for key := range s.byResource {
		keys = append(keys, key)
	}
	return keys
}

// Days returns the dates present for a resource key, sorted ascending.
func (s *MetricStore) Days(key ResourceKey) []string {
	days := make([]string, 0, len(s.byResource[key]))
	for day := range s.byResource[key] {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Len returns the number of (resource, day) rows in the store.
func (s *MetricStore) Len() int {
	n := 0
	for _, days := range s.byResource {
		n += len(days)
	}
	return n
}

// Merge sums other into s bucket-wise. Safe for combining partial stores
// produced by parallel aggregation passes.
func (s *MetricStore) Merge(other *MetricStore) {
	if other == nil {
		return
	}
	for key, days := range other.byResource {
		for day, bucket := range days {
			s.Bucket(key, day).Add(*bucket)
		}
	}
}

// metricRow is the serialized form of one (resource, day) entry. The store's
// map is keyed by struct, so JSON round-trips through a flat row list.
type metricRow struct {
	Key    ResourceKey  `json:"key"`
	Date   string       `json:"date"`
	Bucket MetricBucket `json:"bucket"`
}

func (s *MetricStore) MarshalJSON() ([]byte, error) {
	rows := make([]metricRow, 0, s.Len())
	for key, days := range s.byResource {
		for day, bucket := range days {
			rows = append(rows, metricRow{Key: key, Date: day, Bucket: *bucket})
		}
	}
	// Deterministic output for stable report files.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Key.PID != rows[j].Key.PID {
			return rows[i].Key.PID < rows[j].Key.PID
		}
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].Key.Format != rows[j].Key.Format {
			return rows[i].Key.Format < rows[j].Key.Format
		}
		return rows[i].Key.Language < rows[j].Key.Language
	})
	return json.Marshal(rows)
}

func (s *MetricStore) UnmarshalJSON(data []byte) error {
	var rows []metricRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	s.byResource = make(map[ResourceKey]map[string]*MetricBucket, len(rows))
	for _, row := range rows {
		s.Bucket(row.Key, row.Date).Add(row.Bucket)
	}
	return nil
}

// UsageReport is one collection's COUNTER figures for one reporting day, the
// unit the report store persists and exporters consume.
type UsageReport struct {
	Collection string       `json:"collection"`
	Day        string       `json:"day"`
	Metrics    *MetricStore `json:"metrics"`
}

func NewEmptyUsageReport(collection, day string) *UsageReport {
	return &UsageReport{Collection: collection, Day: day, Metrics: NewMetricStore()}
}

// IsNewReport reports whether the report carries no figures yet.
func (r *UsageReport) IsNewReport() bool {
	return r.Metrics == nil || r.Metrics.Len() == 0
}
