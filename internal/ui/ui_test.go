package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/tracker"
	"codeberg.org/mutker/healthtrack/internal/trend"
	"codeberg.org/mutker/healthtrack/internal/ui"
	"github.com/stretchr/testify/assert"
)

func TestKVPadsLabel(t *testing.T) {
	var buf bytes.Buffer
	ui.New(&buf, true).KV("Snapshot", "Run #3")

	assert.Equal(t, "   Snapshot "+strings.Repeat(".", 22)+" Run #3\n", buf.String())
}

func TestSaveResult(t *testing.T) {
	var buf bytes.Buffer
	p := ui.New(&buf, true)

	p.SaveResult(tracker.SaveResult{Saved: true, RunNumber: 4, Count: 4})
	p.SaveResult(tracker.SaveResult{RunNumber: 5, Location: "/media/sd/h.dat"})

	out := buf.String()
	assert.Contains(t, out, "[OK] Snapshot #4 saved (4 total on record)")
	assert.Contains(t, out, "[XX] Snapshot #5 could not be written to /media/sd/h.dat")
}

func TestReviewWithTrend(t *testing.T) {
	prev := history.Record{RunNumber: 1, ClustersUsed: 500, HealthScore: 80, FirmwareStub: 1}
	curr := history.Record{RunNumber: 2, ClustersUsed: 650, HealthScore: 69, FirmwareStub: 1}
	report := trend.Analyze(prev, curr)

	var buf bytes.Buffer
	ui.New(&buf, true).Review(tracker.Review{
		Location: "/media/sd/h.dat",
		Count:    2,
		Latest:   curr,
		Trend:    &report,
	}, 2048, 6143)

	out := buf.String()
	assert.Contains(t, out, "2 snapshot(s) on record")
	assert.Contains(t, out, "650 / 2048 (31.7%)")
	assert.Contains(t, out, "69 / 100")
	assert.Contains(t, out, "Run #1 vs Run #2")
	assert.Contains(t, out, "500 -> 650 (WORSE)")
	assert.Contains(t, out, "80 -> 69 (WORSE)")
	assert.Contains(t, out, "[XX] Health score dropped significantly!")
	assert.Contains(t, out, "[!!] Storage usage increased significantly since last run!")
}

func TestReviewSingleSnapshot(t *testing.T) {
	var buf bytes.Buffer
	ui.New(&buf, true).Review(tracker.Review{
		Count:  1,
		Latest: history.Record{RunNumber: 1, HealthScore: history.UnknownHealth},
	}, 2048, 6143)

	out := buf.String()
	assert.Contains(t, out, "Only 1 snapshot recorded")
	assert.Contains(t, out, "n/a")
	assert.NotContains(t, out, "Changes Since Previous Run")
}

func TestTimeline(t *testing.T) {
	var buf bytes.Buffer
	ui.New(&buf, true).Timeline([]trend.Row{
		{RunNumber: 6, ClustersUsed: 600, InodesUsed: 60, HealthScore: 95},
		{RunNumber: 7, ClustersUsed: 700, InodesUsed: 70, HealthScore: history.UnknownHealth},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines[0], "Health Score Timeline")
	assert.Equal(t, "   6      600          60         95/100", lines[len(lines)-2])
	assert.Equal(t, "   7      700          70         n/a", lines[len(lines)-1])
}

func TestTimelineEmpty(t *testing.T) {
	var buf bytes.Buffer
	ui.New(&buf, true).Timeline(nil)
	assert.Empty(t, buf.String())
}
