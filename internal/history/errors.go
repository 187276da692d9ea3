package history

import "codeberg.org/mutker/healthtrack/internal/errors"

const (
	// Storage Errors
	ErrStorageUnavailable = errors.ErrorCode("history_storage_unavailable")
	ErrPersistFailed      = errors.ErrorCode("history_persist_failed")
	ErrNoBackends         = errors.ErrorCode("history_no_backends")

	// Store Errors
	ErrRunNumberDecreased = errors.ErrorCode("history_run_number_decreased")
)
