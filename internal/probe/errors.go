package probe

import "codeberg.org/mutker/healthtrack/internal/errors"

const (
	ErrInvalidRoot     = errors.ErrorCode("probe_invalid_root")
	ErrProbeCancelled  = errors.ErrorCode("probe_cancelled")
	ErrUsageUnreadable = errors.ErrorCode("probe_usage_unreadable")
)
