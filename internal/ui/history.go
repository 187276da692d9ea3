package ui

import (
	"fmt"

	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/tracker"
	"codeberg.org/mutker/healthtrack/internal/trend"
	"github.com/fatih/color"
)

// Health score bands.
const (
	goodHealth = 80
	fairHealth = 50
)

func (p *Printer) healthColor(score int32) *color.Color {
	switch {
	case score >= goodHealth:
		return p.good
	case score >= fairHealth:
		return p.fair
	default:
		return p.bad
	}
}

func (p *Printer) directionColor(d trend.Direction) *color.Color {
	switch d {
	case trend.Worse:
		return p.bad
	case trend.Improved:
		return p.good
	default:
		return p.plain
	}
}

// SaveResult reports the outcome of a snapshot save.
func (p *Printer) SaveResult(res tracker.SaveResult) {
	if !res.Saved {
		p.Err(fmt.Sprintf("Snapshot #%d could not be written to %s", res.RunNumber, res.Location))
		return
	}
	p.OK(fmt.Sprintf("Snapshot #%d saved (%d total on record)", res.RunNumber, res.Count))
}

// Review prints the latest snapshot summary and its changes since the
// previous run.
func (p *Printer) Review(rev tracker.Review, capacityClusters, capacityInodes uint32) {
	p.Info(fmt.Sprintf("%d snapshot(s) on record", rev.Count))
	p.Info("File: " + rev.Location)

	latest := rev.Latest
	p.Section(fmt.Sprintf("Latest Snapshot (#%d)", latest.RunNumber))
	p.KV("Snapshot", fmt.Sprintf("Run #%d", latest.RunNumber))
	p.KV("Storage Clusters", fmt.Sprintf("%d / %d (%.1f%%)",
		latest.ClustersUsed, capacityClusters,
		history.UsagePercent(latest.ClustersUsed, capacityClusters)))
	p.KV("Storage Inodes", fmt.Sprintf("%d / %d", latest.InodesUsed, capacityInodes))
	if latest.HealthKnown() {
		p.kv("Health Score", p.healthColor(latest.HealthScore), fmt.Sprintf("%d / 100", latest.HealthScore))
	} else {
		p.kv("Health Score", p.plain, "n/a")
	}
	p.KV("Firmware", fmt.Sprintf("%d total, %d stubs, %d custom",
		latest.FirmwareTotal, latest.FirmwareStub, latest.FirmwareCustom))
	p.KV("Devices", fmt.Sprintf("Primary: %s  Secondary: %s",
		yesNo(latest.HasPrimaryDevice), yesNo(latest.HasSecondaryDevice)))

	if rev.Trend == nil {
		p.Blank()
		p.Info("Only 1 snapshot recorded. Run diagnostics again later")
		p.Info("to start seeing trends and comparisons.")
		return
	}

	p.Trend(*rev.Trend)
}

// Trend prints per-metric changes followed by any fired alerts.
func (p *Printer) Trend(r trend.Report) {
	p.Section("Changes Since Previous Run")
	p.Info(fmt.Sprintf("Run #%d vs Run #%d", r.Previous.RunNumber, r.Current.RunNumber))
	p.Blank()

	for _, c := range r.Changes {
		p.kv(c.Label, p.directionColor(c.Direction),
			fmt.Sprintf("%d -> %d (%s)", c.Previous, c.Current, directionText(c.Direction)))
	}

	p.Blank()
	for _, a := range r.Alerts {
		if a.Severity == trend.SeverityError {
			p.Err(a.Message)
		} else {
			p.Warn(a.Message)
		}
		p.Info(a.Hint)
	}
}

// Timeline prints the compact table of recent snapshots.
func (p *Printer) Timeline(rows []trend.Row) {
	if len(rows) == 0 {
		return
	}

	p.Section("Health Score Timeline")
	fmt.Fprintln(p.out, p.section.Sprintf("   %-6s %-12s %-10s %-10s", "Run", "Clusters", "Inodes", "Score"))
	fmt.Fprintln(p.out, p.plain.Sprint("   ------ ------------ ---------- ----------"))

	for _, row := range rows {
		c := p.plain
		if row.HealthKnown() {
			c = p.healthColor(row.HealthScore)
		}
		fmt.Fprintf(p.out, "   %-6d %-12d %-10d %s\n",
			row.RunNumber, row.ClustersUsed, row.InodesUsed, c.Sprint(row.ScoreText()))
	}
}

func directionText(d trend.Direction) string {
	if d == trend.Worse {
		return "WORSE"
	}
	return d.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
