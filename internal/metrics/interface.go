package metrics

import (
	"context"

	"codeberg.org/mutker/healthtrack/internal/history"
)

// Mirror copies saved snapshots into a queryable database. The history
// file remains the source of truth.
type Mirror interface {
	Record(ctx context.Context, entry *Entry) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Repository defines the interface for mirrored snapshot storage
type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Entry is one mirrored snapshot and where its history file lives.
type Entry struct {
	Location string
	Snapshot history.Record
}
