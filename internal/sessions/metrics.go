package sessions

import (
	"usage-counter/internal/shared/metrics"
)

var (
	// metricHitsExaminedTotal counts hits passed through deduplication.
	metricHitsExaminedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSession,
			Name:      "hits_examined_total",
		},
		[]string{},
	).WithLabelValues()

	// metricDoubleClicksSuppressedTotal counts hits removed as double clicks.
	metricDoubleClicksSuppressedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSession,
			Name:      "double_clicks_suppressed_total",
		},
		[]string{},
	).WithLabelValues()
)
