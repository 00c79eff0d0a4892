package resolvers

import (
	"usage-counter/internal/shared/metrics"
)

var (
	// metricResolvedTotal counts accesses whose identity was resolved, by era
	// and resulting hit type.
	metricResolvedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolution,
			Name:      "access_resolved_total",
		},
		[]string{"era", "hit_type"},
	)

	// metricUnresolvedTotal counts accesses that resolved to nothing usable.
	metricUnresolvedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolution,
			Name:      "access_unresolved_total",
		},
		[]string{"era"},
	)

	// metricMultiISSNPIDTotal counts data-quality warnings for PIDs observed
	// under more than two distinct ISSNs within one run.
	metricMultiISSNPIDTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolution,
			Name:      "pid_multi_issn_total",
		},
		[]string{},
	).WithLabelValues()
)
