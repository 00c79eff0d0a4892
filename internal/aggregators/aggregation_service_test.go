package aggregators

import (
	"context"
	"errors"
	"testing"
	"time"

	"usage-counter/internal/events"
	"usage-counter/internal/models"
	"usage-counter/internal/sessions"
	"usage-counter/internal/stores/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceFixture struct {
	service     AggregationService
	reportStore *mocks.MockUsageReportStore
	hitLogStore *mocks.MockHitLogStore
}

func newServiceFixture(t *testing.T, includeNonArticle bool) *serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	reportStore := mocks.NewMockUsageReportStore(ctrl)
	hitLogStore := mocks.NewMockHitLogStore(ctrl)
	service := NewAggregationService(
		includeNonArticle,
		sessions.NewDeduplicator(zerolog.Nop()),
		NewCounterAggregator(),
		reportStore,
		hitLogStore,
	)

	return &serviceFixture{service: service, reportStore: reportStore, hitLogStore: hitLogStore}
}

func batchEvent(hits ...*models.Hit) *events.AccessBatchEvent {
	return &events.AccessBatchEvent{
		BatchID:    "batch-123",
		Collection: "scl",
		Day:        "2024-05-10",
		Hits:       hits,
	}
}

func TestAggregationService_Aggregate_CreatesNewReport(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, false)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	event := batchEvent(
		countableHit("s1", models.ContentFullText, models.FormatHTML, base),
		countableHit("s2", models.ContentFullText, models.FormatHTML, base.Add(time.Minute)),
	)

	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Len(2)).
		Return(nil)
	f.reportStore.EXPECT().
		Get(ctx, "scl", "2024-05-10").
		Return(models.NewEmptyUsageReport("scl", "2024-05-10"), nil)
	f.reportStore.EXPECT().
		Upsert(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, report *models.UsageReport) error {
			require.Equal(t, 1, report.Metrics.Len())
			key := report.Metrics.Resources()[0]
			bucket, ok := report.Metrics.Get(key, "2024-05-10")
			require.True(t, ok)
			assert.Equal(t, int64(2), bucket.TotalItemRequests)
			assert.Equal(t, int64(2), bucket.UniqueItemRequests)
			assert.Equal(t, int64(2), bucket.TotalItemInvestigations)
			assert.Equal(t, int64(2), bucket.UniqueItemInvestigations)
			return nil
		})

	svcErr := f.service.Aggregate(ctx, event)
	assert.Nil(t, svcErr)
}

func TestAggregationService_Aggregate_MergesIntoExistingReport(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, false)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	hit := countableHit("s1", models.ContentFullText, models.FormatHTML, base)

	existing := models.NewEmptyUsageReport("scl", "2024-05-10")
	existing.Metrics.Bucket(hit.ResourceKey(), "2024-05-10").Add(models.MetricBucket{
		TotalItemRequests:        3,
		UniqueItemRequests:       2,
		TotalItemInvestigations:  5,
		UniqueItemInvestigations: 3,
	})

	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Len(1)).
		Return(nil)
	f.reportStore.EXPECT().
		Get(ctx, "scl", "2024-05-10").
		Return(existing, nil)
	f.reportStore.EXPECT().
		Upsert(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, report *models.UsageReport) error {
			bucket, ok := report.Metrics.Get(hit.ResourceKey(), "2024-05-10")
			require.True(t, ok)
			assert.Equal(t, int64(4), bucket.TotalItemRequests)
			assert.Equal(t, int64(3), bucket.UniqueItemRequests)
			assert.Equal(t, int64(6), bucket.TotalItemInvestigations)
			assert.Equal(t, int64(4), bucket.UniqueItemInvestigations)
			return nil
		})

	svcErr := f.service.Aggregate(ctx, batchEvent(hit))
	assert.Nil(t, svcErr)
}

func TestAggregationService_Aggregate_DoubleClickIsSuppressed(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, false)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	event := batchEvent(
		countableHit("s1", models.ContentFullText, models.FormatHTML, base),
		countableHit("s1", models.ContentFullText, models.FormatHTML, base.Add(10*time.Second)),
	)

	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Len(1)).
		Return(nil)
	f.reportStore.EXPECT().
		Get(ctx, "scl", "2024-05-10").
		Return(models.NewEmptyUsageReport("scl", "2024-05-10"), nil)
	f.reportStore.EXPECT().
		Upsert(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, report *models.UsageReport) error {
			key := report.Metrics.Resources()[0]
			bucket, ok := report.Metrics.Get(key, "2024-05-10")
			require.True(t, ok)
			assert.Equal(t, int64(1), bucket.TotalItemRequests)
			assert.Equal(t, int64(1), bucket.UniqueItemRequests)
			return nil
		})

	svcErr := f.service.Aggregate(ctx, event)
	assert.Nil(t, svcErr)
}

func TestAggregationService_Aggregate_DroppedHitsDoNotFailTheBatch(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, false)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	noGeo := countableHit("s1", models.ContentFullText, models.FormatHTML, base)
	noGeo.Latitude = nil
	noGeo.Longitude = nil

	journal := countableHit("s1", models.ContentJournalHome, models.FormatHTML, base)
	journal.HitType = models.HitTypeJournal
	journal.PID = ""

	// Every hit is dropped: the empty set is still logged, but no report is
	// touched.
	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Len(0)).
		Return(nil)

	svcErr := f.service.Aggregate(ctx, batchEvent(noGeo, journal))
	assert.Nil(t, svcErr)
}

func TestAggregationService_Aggregate_IncludeNonArticleCountsJournalHits(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, true)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	journal := countableHit("s1", models.ContentJournalHome, models.FormatHTML, base)
	journal.HitType = models.HitTypeJournal
	journal.PID = ""
	journal.Format = ""

	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Len(1)).
		Return(nil)
	f.reportStore.EXPECT().
		Get(ctx, "scl", "2024-05-10").
		Return(models.NewEmptyUsageReport("scl", "2024-05-10"), nil)
	f.reportStore.EXPECT().
		Upsert(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, report *models.UsageReport) error {
			bucket, ok := report.Metrics.Get(journal.ResourceKey(), "2024-05-10")
			require.True(t, ok)
			assert.Zero(t, bucket.TotalItemRequests, "a journal home page is not an item request")
			assert.Equal(t, int64(1), bucket.TotalItemInvestigations)
			return nil
		})

	svcErr := f.service.Aggregate(ctx, batchEvent(journal))
	assert.Nil(t, svcErr)
}

func TestAggregationService_Aggregate_HitLogStoreError(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, false)
	ctx := context.Background()

	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Any()).
		Return(errors.New("storage error"))

	svcErr := f.service.Aggregate(ctx, batchEvent())
	require.NotNil(t, svcErr)
	assert.Equal(t, codeInternalHitLogStoreFailed, svcErr.Code)
	assert.Equal(t, 500, svcErr.HttpStatusCode)
}

func TestAggregationService_Aggregate_ReportGetError(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, false)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Any()).
		Return(nil)
	f.reportStore.EXPECT().
		Get(ctx, "scl", "2024-05-10").
		Return(nil, errors.New("storage error"))

	svcErr := f.service.Aggregate(ctx, batchEvent(countableHit("s1", models.ContentFullText, models.FormatHTML, base)))
	require.NotNil(t, svcErr)
	assert.Equal(t, codeInternalUsageReportStoreFailed, svcErr.Code)
}

func TestAggregationService_Aggregate_ReportUpsertError(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, false)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	f.hitLogStore.EXPECT().
		Put(ctx, "scl", "2024-05-10", "batch-123", gomock.Any()).
		Return(nil)
	f.reportStore.EXPECT().
		Get(ctx, "scl", "2024-05-10").
		Return(models.NewEmptyUsageReport("scl", "2024-05-10"), nil)
	f.reportStore.EXPECT().
		Upsert(ctx, gomock.Any()).
		Return(errors.New("storage error"))

	svcErr := f.service.Aggregate(ctx, batchEvent(countableHit("s1", models.ContentFullText, models.FormatHTML, base)))
	require.NotNil(t, svcErr)
	assert.Equal(t, codeInternalUsageReportStoreFailed, svcErr.Code)
}
