// CLAUDE:SUMMARY SQLite audit log of schedule import runs: one row per parse with digest, counts and warnings; never the records.
// CLAUDE:DEPENDS importlog/schema.go, importlog/db.go
// CLAUDE:EXPORTS Run, Log, New, Open, ErrNotFound
package importlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("import run not found")

// Run is one parse invocation.
type Run struct {
	RunID        string    `json:"runId"`
	ImportType   string    `json:"importType"`
	SourceKind   string    `json:"sourceKind"`
	FileName     string    `json:"fileName,omitempty"`
	SHA256       string    `json:"sha256"`
	ByteSize     int64     `json:"byteSize"`
	PageCount    int       `json:"pageCount"`
	RawItemCount int       `json:"rawItemCount"`
	RecordCount  int       `json:"recordCount"`
	Warnings     []string  `json:"warnings"`
	Cached       bool      `json:"cached"`
	Transport    string    `json:"transport,omitempty"`
	RequestID    string    `json:"requestId,omitempty"`
	DurationMs   int64     `json:"durationMs"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Log reads and writes import_runs.
type Log struct {
	db    *sql.DB
	newID func() string
	now   func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithIDGenerator replaces the default "run_" + UUIDv7 ids.
func WithIDGenerator(gen func() string) Option {
	return func(l *Log) { l.newID = gen }
}

// New wraps an opened database. The schema must already exist (Open
// applies it).
func New(db *sql.DB, opts ...Option) *Log {
	l := &Log{
		db: db,
		newID: func() string {
			return "run_" + uuid.Must(uuid.NewV7()).String()
		},
		now: time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// DB exposes the underlying handle.
func (l *Log) DB() *sql.DB { return l.db }

// Record inserts run, filling RunID and CreatedAt when empty.
func (l *Log) Record(ctx context.Context, run *Run) error {
	if run.RunID == "" {
		run.RunID = l.newID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = l.now()
	}
	if run.Warnings == nil {
		run.Warnings = []string{}
	}
	warnings, err := json.Marshal(run.Warnings)
	if err != nil {
		return fmt.Errorf("importlog: marshal warnings: %w", err)
	}

	_, err = execRetry(ctx, l.db, `
		INSERT INTO import_runs (
			run_id, import_type, source_kind, file_name, sha256, byte_size,
			page_count, raw_item_count, record_count, warnings, cached,
			transport, request_id, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.ImportType, run.SourceKind, run.FileName, run.SHA256, run.ByteSize,
		run.PageCount, run.RawItemCount, run.RecordCount, string(warnings), boolInt(run.Cached),
		run.Transport, run.RequestID, run.DurationMs, run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("importlog: insert run: %w", err)
	}
	return nil
}

const selectRun = `
	SELECT run_id, import_type, source_kind, file_name, sha256, byte_size,
	       page_count, raw_item_count, record_count, warnings, cached,
	       transport, request_id, duration_ms, created_at
	FROM import_runs`

// Recent returns the latest runs, newest first. limit defaults to 50 and
// is capped at 500.
func (l *Log) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	rows, err := l.db.QueryContext(ctx, selectRun+` ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("importlog: query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Get returns one run by id.
func (l *Log) Get(ctx context.Context, runID string) (*Run, error) {
	row := l.db.QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

// Cleanup deletes runs older than maxAge and returns how many went.
func (l *Log) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := l.now().Add(-maxAge).UnixMilli()
	res, err := execRetry(ctx, l.db, `DELETE FROM import_runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("importlog: cleanup: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		run       Run
		warnings  string
		cached    int
		createdAt int64
	)
	err := s.Scan(&run.RunID, &run.ImportType, &run.SourceKind, &run.FileName, &run.SHA256, &run.ByteSize,
		&run.PageCount, &run.RawItemCount, &run.RecordCount, &warnings, &cached,
		&run.Transport, &run.RequestID, &run.DurationMs, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("importlog: scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &run.Warnings); err != nil {
		return nil, fmt.Errorf("importlog: run %s warnings: %w", run.RunID, err)
	}
	run.Cached = cached != 0
	run.CreatedAt = time.UnixMilli(createdAt)
	return &run, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
