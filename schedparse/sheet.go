// CLAUDE:SUMMARY Spreadsheet department schedule extraction: keyword header inference with positional fallback, per-row day/time parsing.
package schedparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	dayKeywords   = []string{"day", "date"}
	startKeywords = []string{"start", "begin", "from", "time"}
	endKeywords   = []string{"end", "to", "finish", "until"}
	nameKeywords  = []string{"event", "activity", "name", "title", "description", "task", "item"}
)

// WarnPositionalColumns is emitted when header inference fails.
const WarnPositionalColumns = "Could not detect column headers. Using positional mapping: A=Day, B=Start, C=End, D=Name."

// SheetColumns is the column mapping used to read data rows.
// A negative index means the column was not found.
type SheetColumns struct {
	Day       int `json:"day"`
	Start     int `json:"start"`
	End       int `json:"end"`
	Name      int `json:"name"`
	HeaderRow int `json:"headerRow"`
}

func positionalColumns() SheetColumns {
	return SheetColumns{Day: 0, Start: 1, End: 2, Name: 3, HeaderRow: 0}
}

// InferSheetColumns scans the first scanRows rows for header cells. Each
// category keeps the first column that matched it; HeaderRow is the row of
// the last match. ok is false unless Day, Start and Name were all found.
func InferSheetColumns(rows [][]string, scanRows int) (cols SheetColumns, ok bool) {
	cols = SheetColumns{Day: -1, Start: -1, End: -1, Name: -1, HeaderRow: -1}

	for r := 0; r < len(rows) && r < scanRows; r++ {
		for c, raw := range rows[r] {
			cell := strings.ToLower(strings.TrimSpace(raw))
			if cell == "" {
				continue
			}
			if cols.Day < 0 && containsAny(cell, dayKeywords) {
				cols.Day, cols.HeaderRow = c, r
			}
			if cols.Start < 0 && containsAny(cell, startKeywords) {
				cols.Start, cols.HeaderRow = c, r
			}
			if cols.End < 0 && containsAny(cell, endKeywords) {
				cols.End, cols.HeaderRow = c, r
			}
			if cols.Name < 0 && containsAny(cell, nameKeywords) {
				cols.Name, cols.HeaderRow = c, r
			}
		}
		if cols.Day >= 0 && cols.Start >= 0 && cols.Name >= 0 {
			return cols, true
		}
	}
	return cols, false
}

// ExtractSheet reads department items from a row-major grid. The returned
// warnings only report the positional fallback.
func (p *Parser) ExtractSheet(rows [][]string) ([]DepartmentItem, []string) {
	var warnings []string

	cols, ok := InferSheetColumns(rows, p.cfg.HeaderScanRows)
	if !ok {
		warnings = append(warnings, WarnPositionalColumns)
		cols = positionalColumns()
	}
	separateEnd := cols.End >= 0

	var items []DepartmentItem
	for r := cols.HeaderRow + 1; r < len(rows); r++ {
		row := rows[r]
		dayRaw := cellAt(row, cols.Day)
		startRaw := cellAt(row, cols.Start)
		nameRaw := cellAt(row, cols.Name)
		if dayRaw == "" || nameRaw == "" {
			continue
		}

		day, ok := DetectDay(dayRaw)
		if !ok {
			continue
		}

		var start, end string
		if separateEnd {
			start, _ = sheetTime(startRaw)
			end, _ = sheetTime(cellAt(row, cols.End))
		} else if m, found := FindTimeRange(startRaw); found {
			start, end = m.Start, m.End
		} else {
			start, _ = sheetTime(startRaw)
			end = start
		}

		if start == "" {
			continue
		}
		if end == "" {
			end = start
		}

		items = append(items, DepartmentItem{
			Day:       day,
			StartTime: start,
			EndTime:   end,
			Name:      nameRaw,
			RawText:   strings.Join(row, " | "),
		})
	}
	return items, warnings
}

var secondsRe = regexp.MustCompile(`^(\d{1,2}:\d{2}):\d{2}(\s*[AaPp][Mm])?$`)

// sheetTime parses a time cell. Besides ParseTime shapes it accepts
// "HH:mm:ss" and raw Excel day fractions such as "0.375" (09:00).
func sheetTime(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if t, ok := ParseTime(raw); ok {
		return t, true
	}
	if m := secondsRe.FindStringSubmatch(raw); m != nil {
		return ParseTime(m[1] + m[2])
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f < 1 {
		mins := int(math.Round(f * 24 * 60))
		if mins >= 24*60 {
			mins = 24*60 - 1
		}
		return formatHHMM(mins/60, mins%60), true
	}
	return "", false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
