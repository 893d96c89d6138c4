// CLAUDE:SUMMARY Column-layout track schedule extraction: day header detection, midpoint column boundaries, per-column event state machine.
package schedparse

import (
	"sort"
	"strings"
)

// Column is the horizontal band of the page holding one day's events.
// Items are ordered top to bottom.
type Column struct {
	Day   Day        `json:"day"`
	XMin  float64    `json:"xMin"`
	XMax  float64    `json:"xMax"`
	Items []TextItem `json:"items"`
}

type dayHeader struct {
	day  Day
	x, y float64
}

// DetectColumns finds one column per track-day header. A day mentioned
// several times keeps the occurrence with the largest y (the first one seen
// on ties): headers are assumed to sit above the column content. Boundaries
// are midpoints between neighbouring headers, padded at both ends by the
// layout. Items falling outside every column are dropped.
func DetectColumns(items []TextItem, layout Layout) []Column {
	layout.defaults()

	top := make(map[Day]dayHeader)
	for _, it := range items {
		day, ok := DetectDay(it.Text)
		if !ok || !IsTrackDay(day) {
			continue
		}
		h, seen := top[day]
		if !seen || it.Y > h.y {
			top[day] = dayHeader{day: day, x: it.X, y: it.Y}
		}
	}

	headers := make([]dayHeader, 0, len(top))
	for _, d := range TrackDays {
		if h, ok := top[d]; ok {
			headers = append(headers, h)
		}
	}
	if len(headers) == 0 {
		return nil
	}
	sort.SliceStable(headers, func(i, j int) bool { return headers[i].x < headers[j].x })

	columns := make([]Column, 0, len(headers))
	for i, h := range headers {
		xMin := h.x - layout.FirstColumnPad
		if i > 0 {
			xMin = (headers[i-1].x + h.x) / 2
		}
		xMax := h.x + layout.LastColumnPad
		if i < len(headers)-1 {
			xMax = (h.x + headers[i+1].x) / 2
		}

		var colItems []TextItem
		for _, it := range items {
			if it.X >= xMin && it.X < xMax {
				colItems = append(colItems, it)
			}
		}
		sortReadingOrder(colItems)

		columns = append(columns, Column{Day: h.day, XMin: xMin, XMax: xMax, Items: colItems})
	}
	return columns
}

// ExtractTrackEvents runs column detection and the per-column event walk.
func (p *Parser) ExtractTrackEvents(items []TextItem) []ScheduleEvent {
	var events []ScheduleEvent
	for _, col := range DetectColumns(items, p.cfg.Layout) {
		events = append(events, p.columnEvents(col)...)
	}
	return events
}

type openEvent struct {
	match RangeMatch
	lines []string
}

// columnEvents walks a column's lines. A line with a time range opens an
// event; plain lines continue the open event or are dropped as noise when
// none is open.
func (p *Parser) columnEvents(col Column) []ScheduleEvent {
	var events []ScheduleEvent
	var cur *openEvent

	emit := func() {
		if cur == nil {
			return
		}
		title := strings.TrimSpace(strings.Join(cur.lines, " "))
		if title == "" {
			return
		}
		events = append(events, ScheduleEvent{
			Day:            col.Day,
			StartTime:      cur.match.Start,
			EndTime:        cur.match.End,
			Title:          title,
			RawLines:       cur.lines,
			TimeString:     cur.match.Text,
			InferredSeries: p.classifier.Classify(title),
			Confidence:     p.cfg.Confidence,
		})
	}

	for _, line := range GroupIntoLines(col.Items, p.cfg.Layout.LineTolerance) {
		m, found := FindTimeRange(line.Text)
		if !found {
			if cur != nil {
				cur.lines = append(cur.lines, line.Text)
			}
			continue
		}

		emit()
		cur = nil
		if !m.Valid() {
			// Out-of-range times end the previous event without opening one.
			continue
		}
		cur = &openEvent{match: m}
		if m.Rest != "" {
			cur.lines = append(cur.lines, m.Rest)
		}
	}
	emit()

	return events
}
