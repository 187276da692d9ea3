package metrics

import (
	"database/sql"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/logger"
)

const (
	SchemaVersion = 1

	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS snapshots (
	       id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	       recorded_at        INTEGER NOT NULL,
	       location           TEXT NOT NULL,
	       run_number         INTEGER NOT NULL CHECK (typeof(run_number) = 'integer'),
	       clusters_used      INTEGER NOT NULL CHECK (typeof(clusters_used) = 'integer'),
	       inodes_used        INTEGER NOT NULL CHECK (typeof(inodes_used) = 'integer'),
	       health_score       INTEGER NOT NULL CHECK (health_score BETWEEN -1 AND 100),
	       firmware_total     INTEGER NOT NULL,
	       firmware_stub      INTEGER NOT NULL,
	       firmware_custom    INTEGER NOT NULL,
	       hw_revision        INTEGER NOT NULL,
	       bootloader_version INTEGER NOT NULL,
	       primary_device     INTEGER NOT NULL CHECK (primary_device IN (0, 1)),
	       secondary_device   INTEGER NOT NULL CHECK (secondary_device IN (0, 1)),
	       input_count_a      INTEGER NOT NULL CHECK (input_count_a BETWEEN 0 AND 4),
	       input_count_b      INTEGER NOT NULL CHECK (input_count_b BETWEEN 0 AND 4)
	   );
	   CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots (location, run_number);`

	insertSnapshotSQL = `
    INSERT INTO snapshots (
        recorded_at, location, run_number,
        clusters_used, inodes_used, health_score,
        firmware_total, firmware_stub, firmware_custom,
        hw_revision, bootloader_version,
        primary_device, secondary_device,
        input_count_a, input_count_b
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	countSnapshotsSQL = `SELECT COUNT(*) FROM snapshots`
)

// InitSchema creates a new database schema with the current version
func InitSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	log.Debug().Msg("Creating database...")

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	// Track transaction state
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				if !errors.Is(err, sql.ErrTxDone) {
					log.Debug().Err(err).Msg("Failed to rollback transaction")
				}
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			SQL   string
		}{
			Error: err.Error(),
			SQL:   createTablesSQL,
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "record_version",
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Info().
		Int("version", SchemaVersion).
		Msg("Schema initialized successfully")

	return nil
}

// GetSchemaVersion returns the current schema version, 0 for a new database
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "get_version",
			Error: err.Error(),
		})
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	errFactory := errors.New()
	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Table string
			Error string
		}{
			Phase: "check_table_exists",
			Table: tableName,
			Error: err.Error(),
		})
	}
	return exists, nil
}
