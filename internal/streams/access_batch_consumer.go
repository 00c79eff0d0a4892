package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"usage-counter/internal/aggregators"
	"usage-counter/internal/events"
	"usage-counter/internal/shared/loggers"
	"usage-counter/internal/shared/metrics"
	"usage-counter/internal/shared/svcerrors"
	"usage-counter/internal/shared/ulid"
)

//go:generate mockgen -source=access_batch_consumer.go -destination=./mocks/access_batch_consumer_mock.go -package=mocks
type AccessBatchConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type accessBatchConsumer struct {
	queue              *PartitionedQueue[events.AccessBatchEvent]
	aggregationService aggregators.AggregationService

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewAccessBatchConsumer(queue *PartitionedQueue[events.AccessBatchEvent], aggregationService aggregators.AggregationService, logger loggers.Logger) AccessBatchConsumer {
	return &accessBatchConsumer{
		queue:              queue,
		aggregationService: aggregationService,
		stopCh:             make(chan struct{}),
		logger:             logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is a single-writer lane for daily reports routed by the producer.
func (consumer *accessBatchConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *accessBatchConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *accessBatchConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.AccessBatchEvent) {

	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			// Handle panic recovery to prevent worker goroutine from crashing
			func() {
				defer func() {
					if r := recover(); r != nil {
						// Log panic details
						loggers.Ctx(ctx).Error().
							Bytes(loggers.FieldErrorStack, debug.Stack()).
							Msg("consumer panic recovered")

						// Convert panic value to error
						var panicErr error
						if err, ok := r.(error); ok {
							panicErr = err
						} else {
							panicErr = fmt.Errorf("%v", r)
						}

						// Increment metric with panic error code
						svcErr := svcerrors.NewInternalErrorPanic(panicErr)
						metricAccessBatchConsumedTotal.WithLabelValues(streamAccessBatch, svcErr.Code).Inc()
					}
				}()

				// Per-event context: the worker's ctx must not grow a
				// wrapper per consumed event.
				eventCtx := consumer.logger.With().
					Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
					Str(loggers.FieldRequestID, ulid.NewULID()).
					Logger().WithContext(ctx)
				svcError := consumer.aggregationService.Aggregate(eventCtx, &event)
				if svcError != nil {
					metricAccessBatchConsumedTotal.WithLabelValues(streamAccessBatch, svcError.Code).Inc()
				} else {
					metricAccessBatchConsumedTotal.WithLabelValues(streamAccessBatch, metrics.ValueNoError).Inc()
				}
			}()
		}
	}
}
