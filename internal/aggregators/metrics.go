package aggregators

import (
	"usage-counter/internal/shared/metrics"
)

var (
	// metricHitsCountedTotal counts hits that survived both gates and
	// deduplication and entered a usage report, by collection and hit type.
	metricHitsCountedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "hits_counted_total",
		},
		[]string{"collection", "hit_type"},
	)

	// metricHitsDroppedTotal counts hits excluded by a counting gate, by
	// drop reason. Drops are expected and never fail a batch; this metric is
	// the only aggregate view of how much of the traffic is countable.
	metricHitsDroppedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "hits_dropped_total",
		},
		[]string{"reason"},
	)

	// metricUsageReportCreatedTotal counts daily usage reports created.
	//
	// This metric is incremented when a batch event is merged into a report
	// for the first time (i.e., when the report is newly created, not
	// updated). Subsequent events for the same collection and day update the
	// existing report and do NOT increment this metric.
	metricUsageReportCreatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "usage_report_created_total",
		},
		[]string{"collection"},
	)
)
