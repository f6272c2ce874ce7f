// Package history persists one row per audit iteration to SQLite so past
// runs can be compared. Persistence is advisory: the audit loop works the
// same with history disabled, and a history failure never fails a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/grovehealth/appaudit/internal/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS iterations (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	iteration     INTEGER NOT NULL,
	state         TEXT NOT NULL,
	pass_rate     REAL NOT NULL,
	critical      INTEGER NOT NULL,
	high          INTEGER NOT NULL,
	medium        INTEGER NOT NULL,
	low           INTEGER NOT NULL,
	files_scanned INTEGER NOT NULL,
	started_at    TIMESTAMP NOT NULL,
	duration_ms   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_iterations_run ON iterations(run_id, iteration);
`

// Record is one persisted iteration.
type Record struct {
	ID           int64
	RunID        string
	Iteration    int
	State        string
	PassRate     float64
	Critical     int
	High         int
	Medium       int
	Low          int
	FilesScanned int
	StartedAt    time.Time
	Duration     time.Duration
}

// Store is a SQLite-backed iteration log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path, initializing the
// schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordIteration stores one iteration's outcome.
func (s *Store) RecordIteration(ctx context.Context, iteration int, state string, result *audit.Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO iterations
			(run_id, iteration, state, pass_rate, critical, high, medium, low,
			 files_scanned, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		iteration,
		state,
		result.PassRate,
		result.Count(audit.SeverityCritical),
		result.Count(audit.SeverityHigh),
		result.Count(audit.SeverityMedium),
		result.Count(audit.SeverityLow),
		result.FilesScanned,
		result.StartedAt,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording iteration: %w", err)
	}
	return nil
}

// Prune deletes iterations older than the retention window, returning the
// number of rows removed. A retention of zero or less is a no-op: history
// then grows without bound.
func (s *Store) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM iterations WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned rows: %w", err)
	}
	return removed, nil
}

// Recent returns up to limit iterations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, iteration, state, pass_rate, critical, high, medium,
		       low, files_scanned, started_at, duration_ms
		FROM iterations
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		var durationMS int64
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.Iteration, &rec.State, &rec.PassRate,
			&rec.Critical, &rec.High, &rec.Medium, &rec.Low,
			&rec.FilesScanned, &rec.StartedAt, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return records, nil
}
