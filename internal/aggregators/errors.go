package aggregators

import (
	"fmt"

	"usage-counter/internal/shared/svcerrors"
)

const (
	codeInternalUsageReportStoreFailed = "AGG_9000"
	codeInternalHitLogStoreFailed      = "AGG_9001"
)

// errInternalUsageReportStoreFailed returns an error when a usage report store operation fails.
func errInternalUsageReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalUsageReportStoreFailed, fmt.Errorf("usageReportStoreFailed: %w", cause))
}

// errInternalHitLogStoreFailed returns an error when a hit log store operation fails.
func errInternalHitLogStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalHitLogStoreFailed, fmt.Errorf("hitLogStoreFailed: %w", cause))
}
