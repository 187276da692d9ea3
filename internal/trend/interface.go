package trend

import "codeberg.org/mutker/healthtrack/internal/history"

// RecordSource exposes stored snapshots oldest first.
type RecordSource interface {
	Records() []history.Record
}

// Direction is the classified change of one metric between two snapshots.
type Direction int

const (
	Unchanged Direction = iota
	Worse
	Improved
)

func (d Direction) String() string {
	switch d {
	case Worse:
		return "worse"
	case Improved:
		return "improved"
	default:
		return "unchanged"
	}
}

// Metric names a compared snapshot field.
type Metric string

const (
	MetricClustersUsed  Metric = "clusters_used"
	MetricInodesUsed    Metric = "inodes_used"
	MetricHealthScore   Metric = "health_score"
	MetricFirmwareTotal Metric = "firmware_total"
	MetricFirmwareStub  Metric = "firmware_stub"
)

// Change is the classified comparison of one metric.
type Change struct {
	Metric    Metric
	Label     string
	Previous  int64
	Current   int64
	Direction Direction
}

// AlertKind identifies an alert rule.
type AlertKind string

const (
	AlertUsageGrowth      AlertKind = "usage_growth"
	AlertHealthRegression AlertKind = "health_regression"
	AlertNewStub          AlertKind = "new_stub"
)

// Severity ranks how an alert is presented.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Alert is a fired regression rule with advice for the user.
type Alert struct {
	Kind     AlertKind
	Severity Severity
	Message  string
	Hint     string
}

// Report compares the two most recent snapshots.
type Report struct {
	Previous history.Record
	Current  history.Record
	Changes  []Change
	Alerts   []Alert
}

// Row is one line of the snapshot timeline.
type Row struct {
	RunNumber    uint32
	ClustersUsed uint32
	InodesUsed   uint32
	HealthScore  int32
}
