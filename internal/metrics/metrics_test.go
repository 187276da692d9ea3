package metrics_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/logger"
	"codeberg.org/mutker/healthtrack/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledConfig(t *testing.T) metrics.Config {
	t.Helper()
	dir := t.TempDir()
	return metrics.Config{
		DBPath:    filepath.Join(dir, "db", "snapshots.db"),
		BackupDir: filepath.Join(dir, "backups"),
		Enabled:   true,
	}
}

func TestDisabledMirrorIsNoop(t *testing.T) {
	m, err := metrics.NewService(metrics.DefaultConfig(), logger.Default())
	require.NoError(t, err)

	require.NoError(t, m.Record(context.Background(), &metrics.Entry{}))
	n, err := m.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, m.Close())
}

func TestInvalidConfig(t *testing.T) {
	_, err := metrics.NewService(metrics.Config{Enabled: true}, logger.Default())
	assert.True(t, errors.HasCode(err, metrics.ErrInvalidDBPath))
}

func TestMirrorRecordsSnapshots(t *testing.T) {
	cfg := enabledConfig(t)
	m, err := metrics.NewService(cfg, logger.Default())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	ctx := context.Background()
	for run := uint32(1); run <= 3; run++ {
		entry := &metrics.Entry{
			Location: "/media/sd/history.dat",
			Snapshot: history.Record{
				RunNumber:        run,
				ClustersUsed:     1000,
				HealthScore:      history.UnknownHealth,
				HasPrimaryDevice: true,
				InputCountA:      2,
			},
		}
		require.NoError(t, m.Record(ctx, entry))
	}

	n, err := m.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.True(t, errors.HasCode(m.Record(ctx, nil), metrics.ErrMirrorSnapshot))
}

func TestMirrorRejectsCancelledContext(t *testing.T) {
	m, err := metrics.NewService(enabledConfig(t), logger.Default())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = m.Record(ctx, &metrics.Entry{})
	assert.True(t, errors.HasCode(err, metrics.ErrOperationTimeout))
}

func TestSchemaMismatchBacksUpAndRecreates(t *testing.T) {
	cfg := enabledConfig(t)
	ctx := context.Background()

	m, err := metrics.NewService(cfg, logger.Default())
	require.NoError(t, err)
	require.NoError(t, m.Record(ctx, &metrics.Entry{Location: "x", Snapshot: history.Record{RunNumber: 1}}))
	require.NoError(t, m.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE schema_versions SET version = 99`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	m, err = metrics.NewService(cfg, logger.Default())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	n, err := m.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	backups, err := os.ReadDir(cfg.BackupDir)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
