package trend

import (
	"fmt"

	"codeberg.org/mutker/healthtrack/internal/history"
)

var _ RecordSource = (*history.Store)(nil)

// TimelineLength is the number of most recent snapshots shown in a timeline.
const TimelineLength = 10

// Timeline returns up to TimelineLength of the newest snapshots, oldest
// first. A single snapshot has nothing to compare and yields no rows.
func Timeline(src RecordSource) []Row {
	records := src.Records()
	if len(records) <= 1 {
		return nil
	}

	start := max(len(records)-TimelineLength, 0)
	rows := make([]Row, 0, len(records)-start)
	for _, rec := range records[start:] {
		rows = append(rows, Row{
			RunNumber:    rec.RunNumber,
			ClustersUsed: rec.ClustersUsed,
			InodesUsed:   rec.InodesUsed,
			HealthScore:  rec.HealthScore,
		})
	}

	return rows
}

// HealthKnown reports whether the row carries a measured score.
func (r Row) HealthKnown() bool {
	return r.HealthScore != history.UnknownHealth
}

// ScoreText formats the health score, rendering the unknown sentinel as "n/a".
func (r Row) ScoreText() string {
	if !r.HealthKnown() {
		return "n/a"
	}
	return fmt.Sprintf("%d/100", r.HealthScore)
}
