package schedparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeRangePattern finds a "start - end" time range inside a longer line.
// Group 1 is the start, group 2 the end. Both accept an optional AM/PM suffix.
var TimeRangePattern = regexp.MustCompile(
	`(\d{1,2}:\d{2}\s*(?:[AaPp][Mm]\b)?)\s*[-–]\s*(\d{1,2}:\d{2}\s*(?:[AaPp][Mm]\b)?)`)

var (
	twelveHourRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)$`)
	twentyFourRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	rangeSeparator = regexp.MustCompile(`\s*[-–]\s*`)
)

// ParseTime converts "8:00 AM", "8:00am" or "14:00" into "HH:mm".
// Any other shape (bare hours, words, ranges, empty) is rejected.
func ParseTime(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}

	if m := twelveHourRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if h < 1 || h > 12 || mm > 59 {
			return "", false
		}
		switch {
		case m[3] == "AM" && h == 12:
			h = 0
		case m[3] == "PM" && h != 12:
			h += 12
		}
		return formatHHMM(h, mm), true
	}

	if m := twentyFourRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if h > 23 || mm > 59 {
			return "", false
		}
		return formatHHMM(h, mm), true
	}

	return "", false
}

// ParseTimeRange parses "8:00 AM - 9:15 AM" or "8:00-9:15".
// Both halves must parse; a half-valid range is rejected as a whole.
func ParseTimeRange(raw string) (start, end string, ok bool) {
	parts := rangeSeparator.Split(strings.TrimSpace(raw), 2)
	if len(parts) < 2 {
		return "", "", false
	}
	start, okStart := ParseTime(parts[0])
	end, okEnd := ParseTime(parts[1])
	if !okStart || !okEnd {
		return "", "", false
	}
	return start, end, true
}

// RangeMatch is a time range located inside a line.
type RangeMatch struct {
	Start string // HH:mm, empty when the matched text did not parse
	End   string
	Text  string // matched substring
	Rest  string // the line without the matched substring
}

// Valid reports whether both ends of the matched range parsed.
func (m RangeMatch) Valid() bool { return m.Start != "" && m.End != "" }

// FindTimeRange locates the first time range in line. found is true whenever
// the pattern matches, even if the matched times are out of range.
func FindTimeRange(line string) (m RangeMatch, found bool) {
	loc := TimeRangePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return RangeMatch{}, false
	}
	m.Text = line[loc[0]:loc[1]]
	m.Rest = strings.Join(strings.Fields(line[:loc[0]]+" "+line[loc[1]:]), " ")

	start, okStart := ParseTime(line[loc[2]:loc[3]])
	end, okEnd := ParseTime(line[loc[4]:loc[5]])
	if okStart && okEnd {
		m.Start, m.End = start, end
	}
	return m, true
}

// Format12Hour renders "HH:mm" as "8:00 AM". Invalid input is returned as is.
func Format12Hour(hhmm string) string {
	mins, ok := Minutes(hhmm)
	if !ok {
		return hhmm
	}
	h, m := mins/60, mins%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}

// Minutes returns the number of minutes since midnight for "HH:mm".
func Minutes(hhmm string) (int, bool) {
	m := twentyFourRe.FindStringSubmatch(strings.TrimSpace(hhmm))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 || mm > 59 {
		return 0, false
	}
	return h*60 + mm, true
}

func formatHHMM(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}
