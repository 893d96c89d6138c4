package importlog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	l := openTestLog(t)

	run := &Run{
		ImportType:   "indycar-schedule",
		SourceKind:   "pdf",
		FileName:     "weekend.pdf",
		SHA256:       "abc123",
		ByteSize:     2048,
		PageCount:    2,
		RawItemCount: 40,
		RecordCount:  12,
		Warnings:     []string{"Page(s) 2 contain only images."},
		Transport:    "http",
		RequestID:    "req_1",
		DurationMs:   15,
	}
	if err := l.Record(ctx, run); err != nil {
		t.Fatalf("record: %v", err)
	}
	if !strings.HasPrefix(run.RunID, "run_") {
		t.Errorf("run id = %q, want run_ prefix", run.RunID)
	}

	got, err := l.Get(ctx, run.RunID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FileName != "weekend.pdf" || got.RecordCount != 12 || got.Cached || got.Transport != "http" {
		t.Errorf("got = %+v", got)
	}
	if len(got.Warnings) != 1 || got.Warnings[0] != run.Warnings[0] {
		t.Errorf("warnings = %q", got.Warnings)
	}
	if got.CreatedAt.UnixMilli() != run.CreatedAt.UnixMilli() {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestGet_NotFound(t *testing.T) {
	l := openTestLog(t)
	if _, err := l.Get(context.Background(), "run_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRecent_OrderAndLimit(t *testing.T) {
	ctx := context.Background()
	l := openTestLog(t)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := range 5 {
		err := l.Record(ctx, &Run{
			RunID:      fmt.Sprintf("run_%d", i),
			ImportType: "department-schedule",
			SourceKind: "spreadsheet",
			SHA256:     "x",
			Cached:     i%2 == 0,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	runs, err := l.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("runs = %d, want 3", len(runs))
	}
	if runs[0].RunID != "run_4" || runs[2].RunID != "run_2" {
		t.Errorf("order = %s..%s, want run_4..run_2", runs[0].RunID, runs[2].RunID)
	}
	if !runs[0].Cached || runs[1].Cached {
		t.Errorf("cached flags = %v,%v", runs[0].Cached, runs[1].Cached)
	}
	if runs[1].Warnings == nil {
		t.Error("warnings must decode to an empty slice")
	}
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	l := openTestLog(t)
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Record(ctx, &Run{RunID: "old", ImportType: "t", SourceKind: "pdf", SHA256: "x", CreatedAt: now.Add(-48 * time.Hour)})
	l.Record(ctx, &Run{RunID: "new", ImportType: "t", SourceKind: "pdf", SHA256: "x", CreatedAt: now.Add(-time.Hour)})

	n, err := l.Cleanup(ctx, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if _, err := l.Get(ctx, "new"); err != nil {
		t.Errorf("recent run removed: %v", err)
	}
}

func TestOpen_File(t *testing.T) {
	// WHAT: Open creates parent directories and the schema is idempotent.
	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestWithIDGenerator(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	l := New(db, WithIDGenerator(func() string { return "fixed" }))
	run := &Run{ImportType: "t", SourceKind: "pdf", SHA256: "x"}
	if err := l.Record(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	if run.RunID != "fixed" {
		t.Errorf("run id = %q", run.RunID)
	}
}

func TestIsBusy(t *testing.T) {
	if isBusy(nil) {
		t.Error("nil is not busy")
	}
	if !isBusy(errors.New("database is locked (5) (SQLITE_BUSY)")) {
		t.Error("locked error not detected")
	}
	if isBusy(errors.New("no such table")) {
		t.Error("unrelated error flagged busy")
	}
}
