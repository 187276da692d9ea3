package probe

import (
	"context"

	"codeberg.org/mutker/healthtrack/internal/history"
)

// Prober gathers the metrics bundle for one snapshot.
type Prober interface {
	Collect(ctx context.Context) (history.Metrics, error)
}

// Usage is a filesystem's block and inode consumption.
type Usage struct {
	BlocksTotal uint64
	BlocksUsed  uint64
	InodesTotal uint64
	InodesUsed  uint64
}
