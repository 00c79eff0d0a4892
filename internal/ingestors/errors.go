package ingestors

import (
	"fmt"

	"usage-counter/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed      = "ACC_1000"
	codeBatchAlreadyProcessed = "ACC_1001"

	codeInternalAccessBatchStoreFailed     = "ACC_9000"
	codeInternalAccessBatchPublisherFailed = "ACC_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errAccessBatchAlreadyProcessed returns an error when an access batch has already been processed.
func errAccessBatchAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeBatchAlreadyProcessed, "access batch already processed", cause)
}

// errInternalAccessBatchStoreFailed returns an error when an access batch store operation fails.
func errInternalAccessBatchStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAccessBatchStoreFailed, fmt.Errorf("accessBatchStoreFailed: %w", cause))
}

// errInternalAccessBatchPublisherFailed returns an error when an access batch publisher operation fails.
func errInternalAccessBatchPublisherFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAccessBatchPublisherFailed, fmt.Errorf("accessBatchPublisherFailed: %w", cause))
}
