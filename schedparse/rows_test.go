package schedparse

import (
	"reflect"
	"testing"
)

func lines(texts ...string) []Line {
	out := make([]Line, len(texts))
	for i, s := range texts {
		out[i] = Line{Text: s, Y: float64(700 - 20*i), Page: 1}
	}
	return out
}

func TestExtractDepartmentRows(t *testing.T) {
	got := ExtractDepartmentRows(lines(
		"Event Staff Schedule",
		"8:00 - 9:00 Before any day",
		"Friday",
		"8:00 AM - 9:00 AM Setup",
		"bring gloves",
		"10:00 AM - 11:00 AM Load in",
		"Saturday 7:00 - 8:00 Breakfast",
		"9:00 - 10:00",
	))
	want := []DepartmentItem{
		{Day: Friday, StartTime: "08:00", EndTime: "09:00", Name: "Setup", RawText: "8:00 AM - 9:00 AM Setup"},
		{Day: Friday, StartTime: "10:00", EndTime: "11:00", Name: "Load in", RawText: "10:00 AM - 11:00 AM Load in"},
		{Day: Saturday, StartTime: "07:00", EndTime: "08:00", Name: "Breakfast", RawText: "7:00 - 8:00 Breakfast"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("items =\n%+v\nwant\n%+v", got, want)
	}
}

func TestExtractDepartmentRows_HeaderThenEntries(t *testing.T) {
	got := ExtractDepartmentRows(lines(
		"Friday Schedule",
		"8:00 AM - 9:00 AM Setup",
		"9:00 AM - 10:00 AM Briefing",
	))
	if len(got) != 2 {
		t.Fatalf("items = %+v, want 2", got)
	}
	for _, it := range got {
		if it.Day != Friday {
			t.Errorf("day = %q, want friday", it.Day)
		}
	}
}

func TestExtractDepartmentRows_NoDayHeader(t *testing.T) {
	// WHAT: Timed lines are ignored until a day has been seen.
	got := ExtractDepartmentRows(lines(
		"8:00 AM - 9:00 AM Setup",
		"9:00 AM - 10:00 AM Briefing",
	))
	if len(got) != 0 {
		t.Errorf("items = %+v, want none", got)
	}
}

func TestExtractDepartmentRows_InvalidRange(t *testing.T) {
	got := ExtractDepartmentRows(lines(
		"Sunday",
		"23:00 - 25:00 Night shift",
		"13:00 PM - 2:00 PM Lunch",
		"1:00 PM - 2:00 PM Lunch",
	))
	if len(got) != 1 || got[0].Name != "Lunch" || got[0].StartTime != "13:00" {
		t.Errorf("items = %+v, want one valid Lunch", got)
	}
}
