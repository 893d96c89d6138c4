// CLAUDE:SUMMARY Defines text items, lines, days, series and the two parse result shapes of the schedule extraction engine.
package schedparse

import (
	"path/filepath"
	"strings"
)

// Day is a day of a race weekend.
type Day string

const (
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// TrackDays is the canonical day set, in weekend order.
var TrackDays = []Day{Wednesday, Thursday, Friday, Saturday, Sunday}

// IsTrackDay reports whether d belongs to TrackDays.
func IsTrackDay(d Day) bool {
	for _, td := range TrackDays {
		if td == d {
			return true
		}
	}
	return false
}

// Series is a coarse category inferred from an event title.
type Series string

const (
	SeriesIndyCar Series = "INDYCAR"
	SeriesIndyNXT Series = "INDY_NXT"
	SeriesUSF2000 Series = "USF2000"
	SeriesMX5Cup  Series = "MX5_CUP"
	SeriesNCTS    Series = "NCTS"
	SeriesSupport Series = "SUPPORT"
	SeriesGeneral Series = "GENERAL"
)

// ImportType is the declared kind of schedule being imported.
type ImportType string

const (
	ImportTrack      ImportType = "indycar-schedule"
	ImportDepartment ImportType = "department-schedule"
)

// SourceKind is the container format of an uploaded department schedule.
type SourceKind string

const (
	KindPDF         SourceKind = "pdf"
	KindSpreadsheet SourceKind = "spreadsheet"
)

// DetectKind returns the source kind implied by a file name.
func DetectKind(name string) (SourceKind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF, true
	case ".xlsx", ".xlsm", ".csv":
		return KindSpreadsheet, true
	default:
		return "", false
	}
}

// TextItem is one run of text as laid out on a PDF page.
// Coordinates are PDF user space: y grows upward. Page is 1-based.
type TextItem struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"fontSize"`
	Font     string  `json:"font,omitempty"`
	Page     int     `json:"page"`
}

// Line is a reading-order group of text items.
type Line struct {
	Text string
	Y    float64 // y of the first item in the cluster
	Page int
}

// ScheduleEvent is one event extracted from a column-layout track schedule.
// StartTime <= EndTime is not guaranteed.
type ScheduleEvent struct {
	Day            Day      `json:"day"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	Title          string   `json:"title"`
	RawLines       []string `json:"rawLines"`
	TimeString     string   `json:"timeString"`
	InferredSeries Series   `json:"inferredSeries"`
	Confidence     float64  `json:"confidence"`
}

// DepartmentItem is one entry extracted from a department schedule.
type DepartmentItem struct {
	Day       Day    `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Name      string `json:"name"`
	RawText   string `json:"rawText"`
}

// TrackResult is the outcome of ParseTrackSchedule.
type TrackResult struct {
	Events       []ScheduleEvent `json:"events"`
	Warnings     []string        `json:"warnings"`
	PageCount    int             `json:"pageCount"`
	RawItemCount int             `json:"rawItemCount"`
}

// DepartmentResult is the outcome of ParseDepartmentSchedule.
type DepartmentResult struct {
	Items        []DepartmentItem `json:"items"`
	Warnings     []string         `json:"warnings"`
	PageCount    int              `json:"pageCount"`
	RawItemCount int              `json:"rawItemCount"`
}
