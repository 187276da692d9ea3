package metrics

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewRepository(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL")
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(db, cfg.backupDir(), log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Debug().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Snapshot repository initialized")

	return &repository{
		db:     db,
		logger: log,
		now:    time.Now,
	}, nil
}

func (r *repository) Insert(ctx context.Context, entry *Entry) error {
	s := entry.Snapshot

	_, err := r.db.ExecContext(ctx, insertSnapshotSQL,
		r.now().Unix(),
		entry.Location,
		int64(s.RunNumber),
		int64(s.ClustersUsed),
		int64(s.InodesUsed),
		int64(s.HealthScore),
		int64(s.FirmwareTotal),
		int64(s.FirmwareStub),
		int64(s.FirmwareCustom),
		int64(s.HWRevision),
		int64(s.BootloaderVersion),
		boolToInt(s.HasPrimaryDevice),
		boolToInt(s.HasSecondaryDevice),
		int64(s.InputCountA),
		int64(s.InputCountB),
	)
	if err != nil {
		return errors.New().Wrap(ErrStorageAccess, err)
	}

	r.logger.Debug().
		Uint32("run_number", s.RunNumber).
		Str("location", entry.Location).
		Msg("Snapshot mirrored")

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countSnapshotsSQL).Scan(&n); err != nil {
		return 0, errors.New().Wrap(ErrStorageAccess, err)
	}
	return n, nil
}

func (r *repository) Close() error {
	errFactory := errors.New()

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := r.db.Close(); err != nil {
		return errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	r.logger.Debug().Msg("Snapshot repository closed")

	return nil
}
