package streams

import (
	"usage-counter/internal/shared/metrics"
)

var (
	streamAccessBatch              = "access_batch"
	metricAccessBatchProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "access_batch_published_total",
		},
		[]string{"stream_id"},
	)

	metricAccessBatchConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "access_batch_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
