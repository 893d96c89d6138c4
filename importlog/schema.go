package importlog

import (
	"database/sql"
	"fmt"
)

// Schema holds the DDL of the run log. One row per parse invocation; the
// extracted records themselves are never stored.
const Schema = `
CREATE TABLE IF NOT EXISTS import_runs (
    run_id TEXT PRIMARY KEY,
    import_type TEXT NOT NULL,
    source_kind TEXT NOT NULL,
    file_name TEXT NOT NULL DEFAULT '',
    sha256 TEXT NOT NULL,
    byte_size INTEGER NOT NULL,
    page_count INTEGER NOT NULL DEFAULT 0,
    raw_item_count INTEGER NOT NULL DEFAULT 0,
    record_count INTEGER NOT NULL DEFAULT 0,
    warnings TEXT NOT NULL DEFAULT '[]',
    cached INTEGER NOT NULL DEFAULT 0,
    transport TEXT NOT NULL DEFAULT '',
    request_id TEXT NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_import_runs_created
    ON import_runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_import_runs_sha
    ON import_runs(sha256);
`

// Init applies Schema. It is idempotent.
func Init(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("importlog: init schema: %w", err)
	}
	return nil
}
