package trend

import "codeberg.org/mutker/healthtrack/internal/history"

const (
	// usageGrowthLimit is the cluster growth between runs that raises an alert.
	usageGrowthLimit = 100

	// healthDropLimit is the score drop between runs tolerated without an alert.
	healthDropLimit = 10
)

// Classify compares two values of a metric with the given polarity.
func Classify(previous, current int64, higherIsWorse bool) Direction {
	if previous == current {
		return Unchanged
	}
	if (current > previous) == higherIsWorse {
		return Worse
	}
	return Improved
}

// Analyze classifies each tracked metric and evaluates the alert rules.
// The health score is only compared when both snapshots measured it.
func Analyze(previous, current history.Record) Report {
	healthComparable := previous.HealthKnown() && current.HealthKnown()

	r := Report{Previous: previous, Current: current}

	r.add(MetricClustersUsed, "Clusters Used", int64(previous.ClustersUsed), int64(current.ClustersUsed), true)
	r.add(MetricInodesUsed, "Inodes Used", int64(previous.InodesUsed), int64(current.InodesUsed), true)
	if healthComparable {
		r.add(MetricHealthScore, "Health Score", int64(previous.HealthScore), int64(current.HealthScore), false)
	}
	r.add(MetricFirmwareTotal, "Total Firmware", int64(previous.FirmwareTotal), int64(current.FirmwareTotal), false)
	r.add(MetricFirmwareStub, "Stub Firmware", int64(previous.FirmwareStub), int64(current.FirmwareStub), true)

	if uint64(current.ClustersUsed) > uint64(previous.ClustersUsed)+usageGrowthLimit {
		r.Alerts = append(r.Alerts, Alert{
			Kind:     AlertUsageGrowth,
			Severity: SeverityWarning,
			Message:  "Storage usage increased significantly since last run!",
			Hint:     "Check if new channels or save data are consuming space.",
		})
	}

	if healthComparable && int64(current.HealthScore) < int64(previous.HealthScore)-healthDropLimit {
		r.Alerts = append(r.Alerts, Alert{
			Kind:     AlertHealthRegression,
			Severity: SeverityError,
			Message:  "Health score dropped significantly!",
			Hint:     "Run System Checkup for detailed recommendations.",
		})
	}

	if current.FirmwareStub > previous.FirmwareStub {
		r.Alerts = append(r.Alerts, Alert{
			Kind:     AlertNewStub,
			Severity: SeverityWarning,
			Message:  "More stub firmware detected than before.",
			Hint:     "A system update or tool may have stubbed firmware slots.",
		})
	}

	return r
}

func (r *Report) add(metric Metric, label string, previous, current int64, higherIsWorse bool) {
	r.Changes = append(r.Changes, Change{
		Metric:    metric,
		Label:     label,
		Previous:  previous,
		Current:   current,
		Direction: Classify(previous, current, higherIsWorse),
	})
}

// Change returns the classification of metric, if it was compared.
func (r Report) Change(metric Metric) (Change, bool) {
	for _, c := range r.Changes {
		if c.Metric == metric {
			return c, true
		}
	}
	return Change{}, false
}

// HasAlert reports whether the given rule fired.
func (r Report) HasAlert(kind AlertKind) bool {
	for _, a := range r.Alerts {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
