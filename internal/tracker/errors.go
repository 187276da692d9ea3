package tracker

import "codeberg.org/mutker/healthtrack/internal/errors"

const (
	ErrNoHistory     = errors.ErrorCode("tracker_no_history")
	ErrCollectFailed = errors.ErrorCode("tracker_collect_failed")
)
