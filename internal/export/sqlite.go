package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// OpenSQLite opens a SQLite database at dsn with WAL mode and a 5s busy
// timeout, and creates the records table when missing.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1)

	statements := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		`CREATE TABLE IF NOT EXISTS records (
			module      TEXT    NOT NULL,
			crmid       INTEGER NOT NULL,
			data        TEXT    NOT NULL,
			exported_at DATETIME NOT NULL,
			PRIMARY KEY (module, crmid)
		)`,
	}

	for _, statement := range statements {
		_, err = db.ExecContext(ctx, statement)
		if err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("preparing database: %w", err)
		}
	}

	return db, nil
}

// SQLiteWriter upserts records into the records table, one row per module
// and crmid with the record stored as JSON. Re-exporting replaces rows.
type SQLiteWriter struct {
	db     *sql.DB
	module string
	now    func() time.Time
	tx     *sql.Tx
	stmt   *sql.Stmt
	count  int
}

// NewSQLiteWriter opens dsn and starts a transaction for module.
func NewSQLiteWriter(ctx context.Context, dsn string, module opencrm.Module) (*SQLiteWriter, error) {
	db, err := OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("beginning export: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (module, crmid, data, exported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (module, crmid) DO UPDATE SET data = excluded.data, exported_at = excluded.exported_at`)
	if err != nil {
		_ = tx.Rollback()
		_ = db.Close()

		return nil, fmt.Errorf("preparing insert: %w", err)
	}

	return &SQLiteWriter{db: db, module: module.Name, now: time.Now, tx: tx, stmt: stmt}, nil
}

// Write stores one record. A record without a crmid is keyed by its
// record_id; one with neither is rejected with ErrMissingCRMID.
func (w *SQLiteWriter) Write(ctx context.Context, record opencrm.Record) error {
	id := record.CRMID()
	if id <= 0 {
		id, _ = record.Int(constants.FieldRecordID)
	}

	if id <= 0 {
		return fmt.Errorf("storing %s record: %w", w.module, ErrMissingCRMID)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record %d: %w", id, err)
	}

	_, err = w.stmt.ExecContext(ctx, w.module, id, string(data), w.now().UTC())
	if err != nil {
		return fmt.Errorf("storing record %d: %w", id, err)
	}

	w.count++

	return nil
}

// Count returns the number of records written.
func (w *SQLiteWriter) Count() int {
	return w.count
}

// Close commits the export and closes the database.
func (w *SQLiteWriter) Close() error {
	_ = w.stmt.Close()

	err := w.tx.Commit()
	if err != nil {
		_ = w.db.Close()

		return fmt.Errorf("committing export: %w", err)
	}

	return w.db.Close()
}
