package tracker_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/metrics"
	"codeberg.org/mutker/healthtrack/internal/tracker"
	"codeberg.org/mutker/healthtrack/internal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	bundles []history.Metrics
	calls   int
	err     error
}

func (f *fakeProber) Collect(_ context.Context) (history.Metrics, error) {
	if f.err != nil {
		return history.Metrics{}, f.err
	}
	m := f.bundles[min(f.calls, len(f.bundles)-1)]
	f.calls++
	return m, nil
}

type fakeMirror struct {
	entries []*metrics.Entry
	err     error
}

func (f *fakeMirror) Record(_ context.Context, e *metrics.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeMirror) Count(_ context.Context) (int, error) { return len(f.entries), nil }
func (f *fakeMirror) Close() error                         { return nil }

// brokenBackend holds a readable history file that can no longer be written.
type brokenBackend struct {
	data []byte
}

func (b *brokenBackend) Name() string { return "broken" }
func (b *brokenBackend) Exists() bool { return true }

func (b *brokenBackend) OpenRead() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func (b *brokenBackend) OpenWrite() (io.WriteCloser, error) {
	return nil, fmt.Errorf("device removed")
}

func bundle(clusters uint32, stubs uint32) history.Metrics {
	return history.Metrics{
		UsageReadable:    true,
		ClustersUsed:     clusters,
		InodesUsed:       1000,
		CapacityClusters: 2048,
		CapacityInodes:   6143,
		FirmwareTotal:    40,
		FirmwareStub:     stubs,
	}
}

func newLocator(t *testing.T) *history.Locator {
	t.Helper()
	dir := t.TempDir()
	return history.NewLocator(history.FileBackends([]string{
		filepath.Join(dir, "missing", history.DefaultFileName),
		filepath.Join(dir, history.DefaultFileName),
	})...)
}

func TestSaveSnapshotSequence(t *testing.T) {
	ctx := context.Background()
	mirror := &fakeMirror{}
	svc := tracker.NewService(newLocator(t), &fakeProber{bundles: []history.Metrics{bundle(500, 2)}}, mirror)

	for i := 1; i <= 3; i++ {
		res, err := svc.SaveSnapshot(ctx)
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.Equal(t, uint32(i), res.RunNumber)
		assert.Equal(t, i, res.Count)
	}

	assert.Len(t, mirror.entries, 3)
	assert.Equal(t, uint32(3), mirror.entries[2].Snapshot.RunNumber)
}

func TestSaveSnapshotEvictsAtCapacity(t *testing.T) {
	ctx := context.Background()
	svc := tracker.NewService(newLocator(t), &fakeProber{bundles: []history.Metrics{bundle(500, 2)}}, nil)

	for i := 0; i < 53; i++ {
		_, err := svc.SaveSnapshot(ctx)
		require.NoError(t, err)
	}

	review, err := svc.LatestWithTrend(ctx)
	require.NoError(t, err)
	assert.Equal(t, history.MaxSnapshots, review.Count)
	assert.Equal(t, uint32(53), review.Latest.RunNumber)

	rows, err := svc.Timeline(ctx)
	require.NoError(t, err)
	require.Len(t, rows, trend.TimelineLength)
	assert.Equal(t, uint32(44), rows[0].RunNumber)
	assert.Equal(t, uint32(53), rows[len(rows)-1].RunNumber)
}

func TestLatestWithTrend(t *testing.T) {
	ctx := context.Background()
	prober := &fakeProber{bundles: []history.Metrics{bundle(500, 2), bundle(1950, 3)}}
	svc := tracker.NewService(newLocator(t), prober, nil)

	_, err := svc.SaveSnapshot(ctx)
	require.NoError(t, err)

	review, err := svc.LatestWithTrend(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, review.Count)
	assert.Nil(t, review.Trend)

	_, err = svc.SaveSnapshot(ctx)
	require.NoError(t, err)

	review, err = svc.LatestWithTrend(ctx)
	require.NoError(t, err)
	require.NotNil(t, review.Trend)
	assert.Equal(t, uint32(1), review.Trend.Previous.RunNumber)
	assert.Equal(t, uint32(2), review.Trend.Current.RunNumber)
	assert.True(t, review.Trend.HasAlert(trend.AlertUsageGrowth))
	assert.True(t, review.Trend.HasAlert(trend.AlertHealthRegression))
	assert.True(t, review.Trend.HasAlert(trend.AlertNewStub))
}

func TestReviewEmptyHistory(t *testing.T) {
	svc := tracker.NewService(newLocator(t), &fakeProber{}, nil)

	_, err := svc.LatestWithTrend(context.Background())
	assert.True(t, errors.HasCode(err, tracker.ErrNoHistory))

	rows, err := svc.Timeline(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	locator := history.NewLocator(history.NewFileBackend(filepath.Join(dir, "absent", "h.dat")))
	svc := tracker.NewService(locator, &fakeProber{bundles: []history.Metrics{bundle(1, 0)}}, nil)

	_, err := svc.SaveSnapshot(context.Background())
	assert.True(t, errors.HasCode(err, history.ErrStorageUnavailable))

	_, err = svc.LatestWithTrend(context.Background())
	assert.True(t, errors.HasCode(err, history.ErrStorageUnavailable))
}

func TestSavePersistFailure(t *testing.T) {
	existing := history.Encode([]history.Record{{RunNumber: 7, HealthScore: 90}})
	mirror := &fakeMirror{}
	svc := tracker.NewService(
		history.NewLocator(&brokenBackend{data: existing}),
		&fakeProber{bundles: []history.Metrics{bundle(500, 0)}},
		mirror,
	)

	res, err := svc.SaveSnapshot(context.Background())
	assert.True(t, errors.HasCode(err, history.ErrPersistFailed))
	assert.False(t, res.Saved)
	assert.Equal(t, uint32(8), res.RunNumber)
	assert.Empty(t, mirror.entries)
}

func TestSaveCollectFailure(t *testing.T) {
	svc := tracker.NewService(newLocator(t), &fakeProber{err: fmt.Errorf("probe down")}, nil)

	res, err := svc.SaveSnapshot(context.Background())
	assert.True(t, errors.HasCode(err, tracker.ErrCollectFailed))
	assert.False(t, res.Saved)
}

func TestMirrorFailureDoesNotFailSave(t *testing.T) {
	svc := tracker.NewService(newLocator(t),
		&fakeProber{bundles: []history.Metrics{bundle(500, 0)}},
		&fakeMirror{err: fmt.Errorf("disk full")})

	res, err := svc.SaveSnapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Saved)
}
