package streams

import (
	"context"
	"sort"

	"usage-counter/internal/events"
	"usage-counter/internal/models"
)

// AccessBatchProducer splits a batch's enriched hits by calendar day and
// publishes one AccessBatchEvent per day to a partitioned queue.
//
// Partition Strategy for Race Condition Prevention, and achieving parallelism:
//
// The producer uses a partition key derived from the daily report identity:
//
//	partitionKey = "<collection>|<day>"
//
// Example: hits for collection "scl" on 2024-05-10 → partitionKey = "scl|2024-05-10"
//
// Events with the same partition key are routed to the same partition in the
// queue. Since the consumer processes each partition with a single worker
// goroutine, all events targeting the same daily report are processed
// sequentially, eliminating race conditions on the report's read-merge-write.
//
// This single-writer-per-partition guarantee ensures that:
//   - Multiple batches touching the same day are merged in order
//   - No concurrent writes occur on the same usage report (race condition prevention)
//   - Data integrity is maintained without requiring distributed locking
//   - Maximum parallelism is achieved across different collections and days
//
//go:generate mockgen -source=access_batch_producer.go -destination=./mocks/access_batch_producer_mock.go -package=mocks
type AccessBatchProducer interface {
	Produce(ctx context.Context, batchID, collection string, hits []*models.Hit) error
}

type accessBatchProducer struct {
	queue *PartitionedQueue[events.AccessBatchEvent]
}

func NewAccessBatchProducer(queue *PartitionedQueue[events.AccessBatchEvent]) AccessBatchProducer {
	return &accessBatchProducer{
		queue: queue,
	}
}

func (producer *accessBatchProducer) Produce(ctx context.Context, batchID, collection string, hits []*models.Hit) error {
	byDay := make(map[string][]*models.Hit)
	for _, hit := range hits {
		day := hit.Day()
		byDay[day] = append(byDay[day], hit)
	}

	// Deterministic publish order; map iteration order is not.
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		event := events.AccessBatchEvent{
			BatchID:    batchID,
			Collection: collection,
			Day:        day,
			Hits:       byDay[day],
		}

		if err := producer.publishAccessBatchEvent(ctx, event); err != nil {
			return err
		}
		metricAccessBatchProducedTotal.WithLabelValues(streamAccessBatch).Inc()
	}

	return nil
}

func (producer *accessBatchProducer) publishAccessBatchEvent(ctx context.Context, event events.AccessBatchEvent) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Partition by report identity (single-writer guarantee).
	producer.queue.Publish(event.PartitionKey(), event)
	return nil
}
