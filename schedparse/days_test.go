package schedparse

import "testing"

func TestDetectDay(t *testing.T) {
	tests := []struct {
		in   string
		want Day
		ok   bool
	}{
		{"Fri Schedule", Friday, true},
		{"FRIDAY", Friday, true},
		{"Friday Schedule", Friday, true},
		{"Schedule for friday", Friday, true},
		{"WED", Wednesday, true},
		{"Thurs.", Thursday, true},
		{"Thu 8:00", Thursday, true},
		{"sat", Saturday, true},
		{"SUNDAY, MARCH 1", Sunday, true},

		{"Frid", "", false},
		{"Satellite feed", "", false},
		{"Sunset parade", "", false},
		{"Monday", "", false},
		{"", "", false},

		// Two days: the earlier table entry wins.
		{"Sunday / Wednesday", Wednesday, true},
	}
	for _, tt := range tests {
		got, ok := DetectDay(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("DetectDay(%q) = %q,%v, want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStripDay(t *testing.T) {
	tests := map[string]string{
		"Friday":                             "",
		"Friday 8:00 AM - 9:00 AM Setup":     "8:00 AM - 9:00 AM Setup",
		"Thurs. 8:00 AM - 9:00 AM Setup":     "8:00 AM - 9:00 AM Setup",
		"SATURDAY, 7:00 - 8:00 Breakfast":    "7:00 - 8:00 Breakfast",
		"Schedule for Sunday":                "Schedule for",
		"No day here":                        "No day here",
	}
	for in, want := range tests {
		if got := StripDay(in); got != want {
			t.Errorf("StripDay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsTrackDay(t *testing.T) {
	for _, d := range TrackDays {
		if !IsTrackDay(d) {
			t.Errorf("IsTrackDay(%q) = false", d)
		}
	}
	if IsTrackDay("monday") {
		t.Error("monday is not a track day")
	}
}
