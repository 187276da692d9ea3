package tracker

import (
	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/trend"
)

// SaveResult describes the outcome of SaveSnapshot.
type SaveResult struct {
	// Saved is true only when the history file was written
	Saved     bool
	RunNumber uint32
	// Count is the number of snapshots on record after the save
	Count    int
	Location string
}

// Review is the latest snapshot and its comparison with the one before it.
type Review struct {
	Location string
	Count    int
	Latest   history.Record
	// Trend is nil when only one snapshot is on record
	Trend *trend.Report
}
