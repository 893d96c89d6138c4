// CLAUDE:SUMMARY Entry points of the schedule extraction engine: track (column) and department (row / spreadsheet) parsing with warning-only failure.
// Package schedparse turns uploaded schedule documents into normalized
// day/time records.
//
// Two layouts are supported:
//   - track schedules: a PDF with one vertical column per weekday
//     (ParseTrackSchedule → []ScheduleEvent);
//   - department schedules: a PDF with day-headed rows, or a spreadsheet
//     (xlsx or CSV) with Day/Start/End/Name columns
//     (ParseDepartmentSchedule → []DepartmentItem).
//
// Parsing never fails: unreadable documents and unrecognized layouts yield
// an empty result plus human-readable warnings for the import preview.
//
// Usage:
//
//	p := schedparse.New(schedparse.Config{})
//	res := p.ParseTrackSchedule(ctx, pdfBytes)
//	for _, ev := range res.Events {
//		fmt.Println(ev.Day, ev.StartTime, ev.Title)
//	}
package schedparse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Aggregate warnings, emitted only when nothing at all was extracted.
const (
	WarnNoTrackEvents      = "No events could be extracted. The PDF format may not be supported."
	WarnNoDepartmentRows   = "No timed entries found. Ensure the PDF has day headers (e.g. Friday, Saturday) followed by time ranges (e.g. 8:00 AM - 9:00 AM)."
	WarnNoSpreadsheetItems = "No items could be extracted. Ensure the spreadsheet has columns for Day, Time, and Event/Activity name."
	WarnTooFewRows         = "Sheet has fewer than 2 rows."
	WarnNoSheets           = "No sheets found in workbook."
)

// Parser is the extraction engine. It holds only immutable configuration
// and is safe for concurrent use.
type Parser struct {
	cfg        Config
	logger     *slog.Logger
	classifier *Classifier
}

// New creates a Parser with the given configuration.
func New(cfg Config) *Parser {
	cfg.defaults()
	return &Parser{
		cfg:        cfg,
		logger:     cfg.Logger,
		classifier: NewClassifier(cfg.Series),
	}
}

// Config returns the effective configuration, defaults applied.
func (p *Parser) Config() Config { return p.cfg }

// ParseTrackSchedule extracts column-layout events from a track PDF.
func (p *Parser) ParseTrackSchedule(ctx context.Context, data []byte) (res *TrackResult) {
	res = &TrackResult{Events: []ScheduleEvent{}, Warnings: []string{}}
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.ErrorContext(ctx, "schedparse: track parse panic", "panic", rec)
			*res = TrackResult{Events: []ScheduleEvent{}, Warnings: []string{failure("PDF", fmt.Errorf("%v", rec))}}
		}
	}()

	if w, ok := p.checkSize(data); !ok {
		res.Warnings = append(res.Warnings, w)
		return res
	}

	items, pageCount, err := ExtractTextItems(ctx, data, p.cfg.Layout)
	if err != nil {
		p.logger.WarnContext(ctx, "schedparse: unreadable track pdf", "error", err)
		res.Warnings = append(res.Warnings, failure("PDF", err))
		return res
	}
	res.PageCount = pageCount
	res.RawItemCount = len(items)

	if events := p.ExtractTrackEvents(items); len(events) > 0 {
		res.Events = events
	}
	res.Warnings = append(res.Warnings, p.inspect(ctx, data, items)...)
	if len(res.Events) == 0 {
		res.Warnings = append(res.Warnings, WarnNoTrackEvents)
	}

	p.logger.InfoContext(ctx, "schedparse: track schedule parsed",
		"pages", res.PageCount, "raw_items", res.RawItemCount,
		"events", len(res.Events), "warnings", len(res.Warnings))
	return res
}

// ParseDepartmentSchedule extracts day-headed entries from a department
// PDF or spreadsheet.
func (p *Parser) ParseDepartmentSchedule(ctx context.Context, data []byte, kind SourceKind) (res *DepartmentResult) {
	res = &DepartmentResult{Items: []DepartmentItem{}, Warnings: []string{}}
	label := "PDF"
	if kind == KindSpreadsheet {
		label = "spreadsheet"
	}
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.ErrorContext(ctx, "schedparse: department parse panic", "kind", kind, "panic", rec)
			*res = DepartmentResult{Items: []DepartmentItem{}, Warnings: []string{failure(label, fmt.Errorf("%v", rec))}}
		}
	}()

	if w, ok := p.checkSize(data); !ok {
		res.Warnings = append(res.Warnings, w)
		return res
	}

	switch kind {
	case KindPDF:
		p.departmentPDF(ctx, data, res)
	case KindSpreadsheet:
		p.departmentSheet(ctx, data, res)
	default:
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unsupported department schedule kind %q.", kind))
		return res
	}

	p.logger.InfoContext(ctx, "schedparse: department schedule parsed",
		"kind", kind, "pages", res.PageCount, "raw_items", res.RawItemCount,
		"items", len(res.Items), "warnings", len(res.Warnings))
	return res
}

func (p *Parser) departmentPDF(ctx context.Context, data []byte, res *DepartmentResult) {
	items, pageCount, err := ExtractTextItems(ctx, data, p.cfg.Layout)
	if err != nil {
		p.logger.WarnContext(ctx, "schedparse: unreadable department pdf", "error", err)
		res.Warnings = append(res.Warnings, failure("PDF", err))
		return
	}
	res.PageCount = pageCount
	res.RawItemCount = len(items)

	lines := GroupIntoLines(items, p.cfg.Layout.LineTolerance)
	if rows := ExtractDepartmentRows(lines); len(rows) > 0 {
		res.Items = rows
	}
	res.Warnings = append(res.Warnings, p.inspect(ctx, data, items)...)
	if len(res.Items) == 0 {
		res.Warnings = append(res.Warnings, WarnNoDepartmentRows)
	}
}

func (p *Parser) departmentSheet(ctx context.Context, data []byte, res *DepartmentResult) {
	rows, err := LoadGrid(data)
	if err != nil {
		p.logger.WarnContext(ctx, "schedparse: unreadable spreadsheet", "error", err)
		res.Warnings = append(res.Warnings, sheetFailure(err))
		return
	}
	res.PageCount = 1
	res.RawItemCount = len(rows)

	if len(rows) < 2 {
		res.Warnings = append(res.Warnings, WarnTooFewRows)
		return
	}

	items, warnings := p.ExtractSheet(rows)
	if len(items) > 0 {
		res.Items = items
	}
	res.Warnings = append(res.Warnings, warnings...)
	if len(res.Items) == 0 {
		res.Warnings = append(res.Warnings, WarnNoSpreadsheetItems)
	}
}

// inspect runs the pdfcpu structure check. Its failure is not an import
// failure: the text reader already succeeded.
func (p *Parser) inspect(ctx context.Context, data []byte, items []TextItem) []string {
	q, err := InspectPDF(data)
	if err != nil {
		p.logger.DebugContext(ctx, "schedparse: pdf inspection skipped", "error", err)
	}
	return qualityWarnings(q, items)
}

func (p *Parser) checkSize(data []byte) (string, bool) {
	if int64(len(data)) > p.cfg.MaxFileSize {
		return fmt.Sprintf("File too large: %d bytes (max %d).", len(data), p.cfg.MaxFileSize), false
	}
	return "", true
}

func sheetFailure(err error) string {
	if errors.Is(err, ErrNoSheets) {
		return WarnNoSheets
	}
	return failure("spreadsheet", err)
}

func failure(label string, err error) string {
	return fmt.Sprintf("Failed to parse %s: %v", label, err)
}
