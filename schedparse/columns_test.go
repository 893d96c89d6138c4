package schedparse

import (
	"reflect"
	"testing"
)

func item(x, y float64, text string) TextItem {
	return TextItem{Text: text, X: x, Y: y, Page: 1, FontSize: 10}
}

func TestExtractTrackEvents_Minimal(t *testing.T) {
	// WHAT: A header, a time range and a title one line below form one event.
	p := New(Config{})
	events := p.ExtractTrackEvents([]TextItem{
		item(100, 500, "Thursday"),
		item(100, 480, "8:00 AM - 9:00 AM"),
		item(100, 478, "Team Meeting"),
	})
	if len(events) != 1 {
		t.Fatalf("events = %+v, want 1", events)
	}
	want := ScheduleEvent{
		Day:            Thursday,
		StartTime:      "08:00",
		EndTime:        "09:00",
		Title:          "Team Meeting",
		RawLines:       []string{"Team Meeting"},
		TimeString:     "8:00 AM - 9:00 AM",
		InferredSeries: SeriesGeneral,
		Confidence:     0.8,
	}
	if !reflect.DeepEqual(events[0], want) {
		t.Errorf("event = %+v\nwant    %+v", events[0], want)
	}
}

func TestExtractTrackEvents_Empty(t *testing.T) {
	p := New(Config{})
	if got := p.ExtractTrackEvents(nil); len(got) != 0 {
		t.Errorf("no items: got %+v", got)
	}
	// Text but no day header: no columns, no events.
	got := p.ExtractTrackEvents([]TextItem{item(100, 480, "8:00 AM - 9:00 AM Setup")})
	if len(got) != 0 {
		t.Errorf("no header: got %+v", got)
	}
}

func TestExtractTrackEvents_Columns(t *testing.T) {
	// WHAT: Two day columns, multi-line titles, noise and out-of-column text.
	p := New(Config{})
	events := p.ExtractTrackEvents([]TextItem{
		item(100, 700, "Friday"),
		item(300, 700, "Saturday"),

		item(100, 680, "8:00 AM - 9:00 AM"),
		item(100, 665, "NTT INDYCAR SERIES"),
		item(100, 652, "Practice 1"),
		item(100, 630, "10:00 AM - 11:00 AM Track Walk"),
		// A range with nothing under it is not an event.
		item(100, 610, "12:00 PM - 1:00 PM"),

		item(300, 690, "Gates open"),
		item(300, 680, "9:00 - 10:00"),
		item(300, 665, "INDY NXT Race"),

		item(20, 680, "Left margin"),
		item(600, 680, "Right margin"),
	})

	type got struct {
		day        Day
		start, end string
		title      string
		series     Series
	}
	want := []got{
		{Friday, "08:00", "09:00", "NTT INDYCAR SERIES Practice 1", SeriesIndyCar},
		{Friday, "10:00", "11:00", "Track Walk", SeriesGeneral},
		{Saturday, "09:00", "10:00", "INDY NXT Race", SeriesIndyNXT},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v, want %d", events, len(want))
	}
	for i, w := range want {
		ev := events[i]
		g := got{ev.Day, ev.StartTime, ev.EndTime, ev.Title, ev.InferredSeries}
		if g != w {
			t.Errorf("event %d = %+v, want %+v", i, g, w)
		}
	}
	if rl := events[0].RawLines; len(rl) != 2 || rl[0] != "NTT INDYCAR SERIES" || rl[1] != "Practice 1" {
		t.Errorf("raw lines = %q", rl)
	}
}

func TestExtractTrackEvents_InvalidRangeClosesEvent(t *testing.T) {
	// WHAT: A range with impossible times ends the open event and opens nothing.
	p := New(Config{})
	events := p.ExtractTrackEvents([]TextItem{
		item(100, 700, "Sunday"),
		item(100, 680, "8:00 - 9:00 Setup"),
		item(100, 660, "25:00 - 26:00 Bogus"),
		item(100, 640, "orphan continuation"),
	})
	if len(events) != 1 || events[0].Title != "Setup" {
		t.Fatalf("events = %+v, want only Setup", events)
	}
}

func TestExtractTrackEvents_DayLineIsContinuation(t *testing.T) {
	// WHAT: A plain line, even a bare day name, continues the open event.
	p := New(Config{})
	events := p.ExtractTrackEvents([]TextItem{
		{Text: "Friday", X: 100, Y: 700, Page: 1},
		{Text: "5:00 PM - 6:00 PM Autograph session", X: 100, Y: 100, Page: 1},
		{Text: "Friday", X: 100, Y: 700, Page: 2},
		{Text: "6:00 PM - 7:00 PM Concert", X: 100, Y: 680, Page: 2},
	})
	if len(events) != 2 {
		t.Fatalf("events = %+v, want 2", events)
	}
	if events[0].Title != "Autograph session Friday" || events[1].Title != "Concert" {
		t.Errorf("titles = %q, %q", events[0].Title, events[1].Title)
	}
	if !reflect.DeepEqual(events[0].RawLines, []string{"Autograph session", "Friday"}) {
		t.Errorf("raw lines = %q", events[0].RawLines)
	}
}

func TestExtractTrackEvents_CustomConfidence(t *testing.T) {
	p := New(Config{Confidence: 0.5})
	events := p.ExtractTrackEvents([]TextItem{
		item(100, 500, "Wed"),
		item(100, 480, "7:00 - 8:00 Load in"),
	})
	if len(events) != 1 || events[0].Confidence != 0.5 || events[0].Day != Wednesday {
		t.Errorf("events = %+v", events)
	}
}

func TestDetectColumns_Boundaries(t *testing.T) {
	cols := DetectColumns([]TextItem{
		item(300, 700, "Saturday"),
		item(100, 700, "Friday"),
		item(500, 700, "Sunday"),
	}, Layout{})
	if len(cols) != 3 {
		t.Fatalf("columns = %+v", cols)
	}
	want := []struct {
		day        Day
		xMin, xMax float64
	}{
		{Friday, 50, 200},
		{Saturday, 200, 400},
		{Sunday, 400, 700},
	}
	for i, w := range want {
		c := cols[i]
		if c.Day != w.day || c.XMin != w.xMin || c.XMax != w.xMax {
			t.Errorf("column %d = %s [%v,%v), want %s [%v,%v)", i, c.Day, c.XMin, c.XMax, w.day, w.xMin, w.xMax)
		}
	}
}

func TestDetectColumns_DedupesHeaders(t *testing.T) {
	// WHAT: A day named again lower on the page keeps the topmost header.
	cols := DetectColumns([]TextItem{
		item(400, 300, "Friday Night Lights"),
		item(100, 700, "Friday"),
	}, Layout{})
	if len(cols) != 1 {
		t.Fatalf("columns = %+v, want 1", cols)
	}
	if cols[0].XMin != 50 || cols[0].XMax != 300 {
		t.Errorf("column = [%v,%v), want [50,300)", cols[0].XMin, cols[0].XMax)
	}
	// The lower mention sits outside the column.
	if len(cols[0].Items) != 1 {
		t.Errorf("column items = %+v", cols[0].Items)
	}
}

func TestDetectColumns_LargestYWins(t *testing.T) {
	// WHAT: Dedupe compares y only; the page an occurrence sits on does not matter.
	cols := DetectColumns([]TextItem{
		{Text: "Friday", X: 100, Y: 500, Page: 1},
		{Text: "Friday", X: 300, Y: 750, Page: 2},
		{Text: "Friday", X: 500, Y: 750, Page: 3},
	}, Layout{})
	if len(cols) != 1 || cols[0].XMin != 250 {
		t.Errorf("columns = %+v, want header at x=300", cols)
	}
}

func TestDetectColumns_Boundary(t *testing.T) {
	// WHAT: xMin is inclusive, xMax exclusive.
	cols := DetectColumns([]TextItem{
		item(100, 700, "Friday"),
		item(300, 700, "Saturday"),
		item(200, 600, "edge"),
	}, Layout{})
	if len(cols) != 2 {
		t.Fatalf("columns = %+v", cols)
	}
	for _, it := range cols[0].Items {
		if it.Text == "edge" {
			t.Error("x == xMax landed in the left column")
		}
	}
	found := false
	for _, it := range cols[1].Items {
		found = found || it.Text == "edge"
	}
	if !found {
		t.Error("x == xMin missing from the right column")
	}
}
