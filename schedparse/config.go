// CLAUDE:SUMMARY Configuration struct, layout tolerances and defaults for the schedule extraction engine.
package schedparse

import "log/slog"

// Layout constants tuned on the track-authority PDF family.
const (
	DefaultLineTolerance  = 3.0   // max y distance between items of one line
	DefaultFirstColumnPad = 50.0  // left padding of the leftmost day column
	DefaultLastColumnPad  = 200.0 // right extent of the rightmost day column
	DefaultRunGapFactor   = 0.6   // glyph gap (in em) that splits a text run
	DefaultSpaceGapFactor = 0.15  // glyph gap (in em) rendered as a space

	DefaultConfidence     = 0.8
	DefaultHeaderScanRows = 5
	DefaultMaxFileSize    = 25 * 1024 * 1024
)

// Layout holds the geometric tolerances used by text acquisition,
// line grouping and column inference.
type Layout struct {
	LineTolerance  float64 `json:"line_tolerance" yaml:"line_tolerance"`
	FirstColumnPad float64 `json:"first_column_pad" yaml:"first_column_pad"`
	LastColumnPad  float64 `json:"last_column_pad" yaml:"last_column_pad"`
	RunGapFactor   float64 `json:"run_gap_factor" yaml:"run_gap_factor"`
	SpaceGapFactor float64 `json:"space_gap_factor" yaml:"space_gap_factor"`
}

func (l *Layout) defaults() {
	if l.LineTolerance <= 0 {
		l.LineTolerance = DefaultLineTolerance
	}
	if l.FirstColumnPad <= 0 {
		l.FirstColumnPad = DefaultFirstColumnPad
	}
	if l.LastColumnPad <= 0 {
		l.LastColumnPad = DefaultLastColumnPad
	}
	if l.RunGapFactor <= 0 {
		l.RunGapFactor = DefaultRunGapFactor
	}
	if l.SpaceGapFactor <= 0 {
		l.SpaceGapFactor = DefaultSpaceGapFactor
	}
}

// Config configures a Parser.
type Config struct {
	// MaxFileSize is the largest document accepted (default: 25 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	Layout Layout `json:"layout" yaml:"layout"`

	// Confidence is attached to every track event (default: 0.8).
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// HeaderScanRows is how many leading spreadsheet rows are searched
	// for column headers (default: 5).
	HeaderScanRows int `json:"header_scan_rows" yaml:"header_scan_rows"`

	// Series replaces the built-in classification table when non-empty.
	Series []SeriesRule `json:"series,omitempty" yaml:"series,omitempty"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	c.Layout.defaults()
	if c.Confidence <= 0 || c.Confidence > 1 {
		c.Confidence = DefaultConfidence
	}
	if c.HeaderScanRows <= 0 {
		c.HeaderScanRows = DefaultHeaderScanRows
	}
	if len(c.Series) == 0 {
		c.Series = DefaultSeriesRules()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
