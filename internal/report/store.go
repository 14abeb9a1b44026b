package report

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"svgvault/internal/integrity"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump it when the schema
// changes; stale databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists validation runs in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the report database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("report store: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure report db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// RecordRun stores the run row plus one report row per file in a single
// transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, result integrity.BatchResult) error {
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin run tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx,
			`INSERT INTO validation_runs (
                id, containers_dir, originals_dir, started_at, finished_at,
                processed, valid, errored
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.ContainersDir,
			nullableString(run.OriginalsDir),
			run.StartedAt.Format(time.RFC3339Nano),
			run.FinishedAt.Format(time.RFC3339Nano),
			result.Totals.Processed,
			result.Totals.Valid,
			result.Totals.Errored,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, name := range result.Files {
			rep := result.Reports[name]
			errorsJSON, warningsJSON, marshalErr := marshalNotes(rep)
			if marshalErr != nil {
				return marshalErr
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO validation_reports (
                    run_id, filename, format_detected, extraction_successful,
                    size_match, checksum_match, data_integrity_valid,
                    extracted_size, original_size, errors, warnings
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID,
				name,
				nullableString(rep.FormatDetected),
				boolInt(rep.ExtractionSuccessful),
				boolInt(rep.SizeMatch),
				boolInt(rep.ChecksumMatch),
				boolInt(rep.DataIntegrityValid),
				rep.ExtractedSize,
				rep.OriginalSize,
				errorsJSON,
				warningsJSON,
			)
			if err != nil {
				return fmt.Errorf("insert report for %s: %w", name, err)
			}
		}
		return tx.Commit()
	})
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, containers_dir, COALESCE(originals_dir, ''), started_at, finished_at,
                processed, valid, errored
         FROM validation_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.ContainersDir, &run.OriginalsDir,
			&started, &finished,
			&run.Totals.Processed, &run.Totals.Valid, &run.Totals.Errored); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunReports returns the per-file reports of one run ordered by filename.
func (s *Store) RunReports(ctx context.Context, runID string) ([]integrity.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT filename, COALESCE(format_detected, ''), extraction_successful,
                size_match, checksum_match, data_integrity_valid,
                extracted_size, original_size, errors, warnings
         FROM validation_reports WHERE run_id = ? ORDER BY filename`, runID)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []integrity.Report
	for rows.Next() {
		var rep integrity.Report
		var extraction, sizeMatch, checksumMatch, valid int
		var errorsJSON, warningsJSON string
		if err := rows.Scan(&rep.Path, &rep.FormatDetected, &extraction,
			&sizeMatch, &checksumMatch, &valid,
			&rep.ExtractedSize, &rep.OriginalSize, &errorsJSON, &warningsJSON); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rep.ExtractionSuccessful = extraction != 0
		rep.SizeMatch = sizeMatch != 0
		rep.ChecksumMatch = checksumMatch != 0
		rep.DataIntegrityValid = valid != 0
		if err := json.Unmarshal([]byte(errorsJSON), &rep.Errors); err != nil {
			return nil, fmt.Errorf("decode errors for %s: %w", rep.Path, err)
		}
		if err := json.Unmarshal([]byte(warningsJSON), &rep.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings for %s: %w", rep.Path, err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func marshalNotes(rep integrity.Report) (string, string, error) {
	errorsJSON, err := json.Marshal(emptySlice(rep.Errors))
	if err != nil {
		return "", "", fmt.Errorf("marshal errors: %w", err)
	}
	warningsJSON, err := json.Marshal(emptySlice(rep.Warnings))
	if err != nil {
		return "", "", fmt.Errorf("marshal warnings: %w", err)
	}
	return string(errorsJSON), string(warningsJSON), nil
}

func emptySlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
