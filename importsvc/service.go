// CLAUDE:SUMMARY Import preview service: resolves the source kind, dispatches to the track or department parser, caches results by content digest, records every run.
// CLAUDE:DEPENDS schedparse, resultcache, importlog, kit
// CLAUDE:EXPORTS Service, New, Open, Request, Preview, ErrUnknownImportType, ErrUnsupportedFormat
package importsvc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/schedimport/importlog"
	"github.com/hazyhaar/schedimport/kit"
	"github.com/hazyhaar/schedimport/resultcache"
	"github.com/hazyhaar/schedimport/schedparse"
)

var (
	// ErrUnknownImportType is returned for an import type other than the
	// track and department schedules.
	ErrUnknownImportType = errors.New("unknown import type")
	// ErrUnsupportedFormat is returned when the document kind does not fit
	// the import type (e.g. a spreadsheet for a track schedule).
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Request is one uploaded document to preview.
type Request struct {
	ImportType schedparse.ImportType
	FileName   string
	// Kind overrides detection from FileName and content.
	Kind schedparse.SourceKind
	Data []byte
}

// Preview is the parse outcome shown before anything is committed.
// Exactly one of Track and Department is set.
type Preview struct {
	RunID      string                       `json:"runId,omitempty"`
	ImportType schedparse.ImportType        `json:"importType"`
	Kind       schedparse.SourceKind        `json:"kind"`
	FileName   string                       `json:"fileName,omitempty"`
	SHA256     string                       `json:"sha256"`
	Cached     bool                         `json:"cached"`
	Track      *schedparse.TrackResult      `json:"track,omitempty"`
	Department *schedparse.DepartmentResult `json:"department,omitempty"`
}

// Warnings returns the warnings of whichever result is set.
func (p *Preview) Warnings() []string {
	switch {
	case p.Track != nil:
		return p.Track.Warnings
	case p.Department != nil:
		return p.Department.Warnings
	}
	return nil
}

// Records returns the number of extracted events or items.
func (p *Preview) Records() int {
	switch {
	case p.Track != nil:
		return len(p.Track.Events)
	case p.Department != nil:
		return len(p.Department.Items)
	}
	return 0
}

func (p *Preview) counts() (pages, raw int) {
	switch {
	case p.Track != nil:
		return p.Track.PageCount, p.Track.RawItemCount
	case p.Department != nil:
		return p.Department.PageCount, p.Department.RawItemCount
	}
	return 0, 0
}

// Service runs previews. It is safe for concurrent use.
type Service struct {
	cfg         Config
	parser      *schedparse.Parser
	cache       resultcache.Cache
	runs        *importlog.Log
	logger      *slog.Logger
	fingerprint []byte
	closers     []func() error
}

// Option configures a Service built with New.
type Option func(*Service)

// WithCache sets the result cache. nil disables caching.
func WithCache(c resultcache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRunLog sets the run log. nil disables run recording.
func WithRunLog(l *importlog.Log) Option {
	return func(s *Service) { s.runs = l }
}

// New creates a Service with an in-process cache and no run log unless
// options say otherwise.
func New(cfg Config, opts ...Option) *Service {
	cfg.defaults()
	s := &Service{
		cfg:    cfg,
		parser: schedparse.New(cfg.Parser),
		logger: cfg.Logger,
	}
	if cfg.CacheTTL > 0 {
		s.cache = resultcache.NewMemory(cfg.CacheEntries)
	}
	for _, o := range opts {
		o(s)
	}

	// Results depend on the effective parser settings, so they are part of
	// the cache key. Without a fingerprint results are not cached.
	fp, err := json.Marshal(s.parser.Config())
	if err != nil {
		s.logger.Warn("importsvc: parser config fingerprint failed, result cache disabled", "error", err)
		s.cache = nil
	}
	s.fingerprint = fp
	return s
}

// Open builds a Service from cfg: the SQLite run log when LogDB is set and
// the Redis cache when RedisURL is set. Close releases both.
func Open(ctx context.Context, cfg Config) (*Service, error) {
	cfg.defaults()
	var opts []Option
	var closers []func() error

	if cfg.LogDB != "" {
		db, err := importlog.Open(cfg.LogDB)
		if err != nil {
			return nil, fmt.Errorf("open run log: %w", err)
		}
		closers = append(closers, db.Close)
		opts = append(opts, WithRunLog(importlog.New(db)))
	}

	if cfg.RedisURL != "" && cfg.CacheTTL > 0 {
		rc, err := resultcache.NewRedis(ctx, cfg.RedisURL, cfg.CachePrefix)
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("open result cache: %w", err)
		}
		closers = append(closers, rc.Close)
		opts = append(opts, WithCache(rc))
	}

	s := New(cfg, opts...)
	s.closers = closers
	return s, nil
}

// Close releases resources opened by Open.
func (s *Service) Close() error {
	return closeAll(s.closers)
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Parser returns the underlying extraction engine.
func (s *Service) Parser() *schedparse.Parser { return s.parser }

// Runs returns the run log, nil when disabled.
func (s *Service) Runs() *importlog.Log { return s.runs }

// Preview parses req.Data as the declared import type. It only fails for an
// unknown import type or a kind that cannot carry it; everything else,
// unreadable documents included, comes back as warnings.
func (s *Service) Preview(ctx context.Context, req Request) (*Preview, error) {
	start := time.Now()

	kind, err := resolveKind(req)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(req.Data)
	p := &Preview{
		ImportType: req.ImportType,
		Kind:       kind,
		FileName:   req.FileName,
		SHA256:     hex.EncodeToString(digest[:]),
	}

	key := resultcache.Key([]byte(req.ImportType), []byte(kind), s.fingerprint, digest[:])
	if s.fromCache(ctx, key, p) {
		p.Cached = true
	} else {
		s.parse(ctx, req.Data, p)
		if ctx.Err() == nil {
			s.toCache(ctx, key, p)
		}
	}

	s.record(ctx, p, int64(len(req.Data)), time.Since(start))

	pages, raw := p.counts()
	s.logger.InfoContext(ctx, "importsvc: preview",
		"run_id", p.RunID, "import_type", p.ImportType, "kind", p.Kind,
		"pages", pages, "raw_items", raw, "records", p.Records(),
		"warnings", len(p.Warnings()), "cached", p.Cached,
		"transport", kit.GetTransport(ctx), "request_id", kit.GetRequestID(ctx),
		"remote_addr", kit.GetRemoteAddr(ctx))
	return p, nil
}

func (s *Service) parse(ctx context.Context, data []byte, p *Preview) {
	if p.ImportType == schedparse.ImportTrack {
		p.Track = s.parser.ParseTrackSchedule(ctx, data)
		return
	}
	p.Department = s.parser.ParseDepartmentSchedule(ctx, data, p.Kind)
}

func (s *Service) fromCache(ctx context.Context, key string, p *Preview) bool {
	if s.cache == nil {
		return false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "importsvc: cache get failed", "error", err)
		return false
	}
	if !ok {
		return false
	}

	if p.ImportType == schedparse.ImportTrack {
		var res schedparse.TrackResult
		if err := json.Unmarshal(data, &res); err != nil {
			s.logger.WarnContext(ctx, "importsvc: cached track result unreadable", "error", err)
			return false
		}
		p.Track = &res
		return true
	}
	var res schedparse.DepartmentResult
	if err := json.Unmarshal(data, &res); err != nil {
		s.logger.WarnContext(ctx, "importsvc: cached department result unreadable", "error", err)
		return false
	}
	p.Department = &res
	return true
}

func (s *Service) toCache(ctx context.Context, key string, p *Preview) {
	if s.cache == nil {
		return
	}
	var v any = p.Department
	if p.Track != nil {
		v = p.Track
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.WarnContext(ctx, "importsvc: marshal result", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.logger.WarnContext(ctx, "importsvc: cache set failed", "error", err)
	}
}

// record writes the run log row. Failures are logged and swallowed: the
// preview itself succeeded.
func (s *Service) record(ctx context.Context, p *Preview, size int64, elapsed time.Duration) {
	if s.runs == nil {
		return
	}
	pages, raw := p.counts()
	run := &importlog.Run{
		ImportType:   string(p.ImportType),
		SourceKind:   string(p.Kind),
		FileName:     p.FileName,
		SHA256:       p.SHA256,
		ByteSize:     size,
		PageCount:    pages,
		RawItemCount: raw,
		RecordCount:  p.Records(),
		Warnings:     p.Warnings(),
		Cached:       p.Cached,
		Transport:    kit.GetTransport(ctx),
		RequestID:    kit.GetRequestID(ctx),
		DurationMs:   elapsed.Milliseconds(),
	}
	// The run outlives a client that hung up mid-request.
	if err := s.runs.Record(context.WithoutCancel(ctx), run); err != nil {
		s.logger.ErrorContext(ctx, "importsvc: record run", "error", err)
		return
	}
	p.RunID = run.RunID
}

// CleanupRuns deletes run log rows older than the configured retention.
func (s *Service) CleanupRuns(ctx context.Context) (int64, error) {
	if s.runs == nil {
		return 0, nil
	}
	return s.runs.Cleanup(ctx, s.cfg.RunRetention)
}

var pdfMagic = []byte("%PDF-")

// resolveKind picks the document kind: explicit Kind, then the file
// extension, then the content. A track schedule must be a PDF.
func resolveKind(req Request) (schedparse.SourceKind, error) {
	switch req.ImportType {
	case schedparse.ImportTrack, schedparse.ImportDepartment:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownImportType, req.ImportType)
	}

	kind := req.Kind
	if kind == "" && req.FileName != "" && filepath.Ext(req.FileName) != "" {
		k, ok := schedparse.DetectKind(req.FileName)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(req.FileName)))
		}
		kind = k
	}
	if kind == "" {
		kind = schedparse.KindSpreadsheet
		if bytes.HasPrefix(bytes.TrimLeft(req.Data, "\x00\t\r\n "), pdfMagic) {
			kind = schedparse.KindPDF
		}
	}

	switch kind {
	case schedparse.KindPDF:
	case schedparse.KindSpreadsheet:
		if req.ImportType == schedparse.ImportTrack {
			return "", fmt.Errorf("%w: track schedules must be PDF", ErrUnsupportedFormat)
		}
	default:
		return "", fmt.Errorf("%w: kind %q", ErrUnsupportedFormat, kind)
	}
	return kind, nil
}

// ImportTypeInfo describes one supported import type.
type ImportTypeInfo struct {
	ImportType  schedparse.ImportType   `json:"importType"`
	Kinds       []schedparse.SourceKind `json:"kinds"`
	Extensions  []string                `json:"extensions"`
	Description string                  `json:"description"`
}

// ImportTypes lists the supported import types.
func ImportTypes() []ImportTypeInfo {
	return []ImportTypeInfo{
		{
			ImportType:  schedparse.ImportTrack,
			Kinds:       []schedparse.SourceKind{schedparse.KindPDF},
			Extensions:  []string{".pdf"},
			Description: "Track-authority race weekend schedule: one column per day.",
		},
		{
			ImportType:  schedparse.ImportDepartment,
			Kinds:       []schedparse.SourceKind{schedparse.KindPDF, schedparse.KindSpreadsheet},
			Extensions:  []string{".pdf", ".xlsx", ".xlsm", ".csv"},
			Description: "Department schedule: day-headed rows in a PDF, or Day/Start/End/Name spreadsheet columns.",
		},
	}
}
