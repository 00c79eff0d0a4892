package aggregators

import (
	"context"

	"usage-counter/internal/events"
	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
	"usage-counter/internal/shared/svcerrors"
	"usage-counter/internal/stores"
)

// HitDeduplicator removes double-click artifacts from a batch of hits.
// Satisfied by sessions.Deduplicator.
type HitDeduplicator interface {
	Deduplicate(hits []*models.Hit) []*models.Hit
}

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	Aggregate(ctx context.Context, accessBatchEvent *events.AccessBatchEvent) *svcerrors.ServiceError
}

type aggregationService struct {
	includeNonArticle bool
	deduplicator      HitDeduplicator
	counterAggregator CounterAggregator
	usageReportStore  stores.UsageReportStore
	hitLogStore       stores.HitLogStore
}

func NewAggregationService(
	includeNonArticle bool,
	deduplicator HitDeduplicator,
	counterAggregator CounterAggregator,
	usageReportStore stores.UsageReportStore,
	hitLogStore stores.HitLogStore,
) AggregationService {
	return &aggregationService{
		includeNonArticle: includeNonArticle,
		deduplicator:      deduplicator,
		counterAggregator: counterAggregator,
		usageReportStore:  usageReportStore,
		hitLogStore:       hitLogStore,
	}
}

// Aggregate merges one batch event into its day's usage report. Events are
// partitioned by collection and day, so this method is never invoked
// concurrently for the same report; the read-merge-write below is safe.
func (s *aggregationService) Aggregate(ctx context.Context, accessBatchEvent *events.AccessBatchEvent) *svcerrors.ServiceError {
	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldBatchID, accessBatchEvent.BatchID).
		Str(loggers.FieldCollection, accessBatchEvent.Collection).
		Str(loggers.FieldDay, accessBatchEvent.Day).
		Msg("started aggregating access batch event")

	countable := s.filterCountable(ctx, accessBatchEvent.Hits)
	deduped := s.deduplicator.Deduplicate(countable)

	err := s.hitLogStore.Put(ctx, accessBatchEvent.Collection, accessBatchEvent.Day, accessBatchEvent.BatchID, deduped)
	if err != nil {
		return errInternalHitLogStoreFailed(err)
	}

	if len(deduped) == 0 {
		logger.Debug().
			Str(loggers.FieldBatchID, accessBatchEvent.BatchID).
			Msg("no countable hits in access batch event")
		return nil
	}

	report, err := s.usageReportStore.Get(ctx, accessBatchEvent.Collection, accessBatchEvent.Day)
	if err != nil {
		return errInternalUsageReportStoreFailed(err)
	}
	isNewReport := report.IsNewReport()

	report.Metrics.Merge(s.counterAggregator.Aggregate(deduped))

	err = s.usageReportStore.Upsert(ctx, report)
	if err != nil {
		return errInternalUsageReportStoreFailed(err)
	}

	if isNewReport {
		metricUsageReportCreatedTotal.WithLabelValues(accessBatchEvent.Collection).Inc()
	}

	return nil
}

// filterCountable applies the two counting gates. Hits failing a gate are
// logged with their drop reason and excluded; they never fail the batch.
func (s *aggregationService) filterCountable(ctx context.Context, hits []*models.Hit) []*models.Hit {
	logger := loggers.Ctx(ctx)

	countable := make([]*models.Hit, 0, len(hits))
	for _, hit := range hits {
		ok, reason := hit.IsValid()
		if ok {
			ok, reason = hit.IsTrackable(s.includeNonArticle)
		}
		if !ok {
			metricHitsDroppedTotal.WithLabelValues(string(reason)).Inc()
			logger.Debug().
				Str(loggers.FieldDropReason, string(reason)).
				Str("action_target", hit.ActionTarget).
				Msg("hit dropped")
			continue
		}
		countable = append(countable, hit)
	}
	return countable
}
