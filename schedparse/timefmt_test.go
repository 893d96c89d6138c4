package schedparse

import "testing"

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"8:00 AM", "08:00", true},
		{"8:00AM", "08:00", true},
		{"8:00 am", "08:00", true},
		{"  8:05 pm ", "20:05", true},
		{"12:00 AM", "00:00", true},
		{"12:30 PM", "12:30", true},
		{"11:59 PM", "23:59", true},
		{"14:00", "14:00", true},
		{"0:00", "00:00", true},
		{"23:59", "23:59", true},

		{"", "", false},
		{"noon", "", false},
		{"8", "", false},
		{"8 AM", "", false},
		{"25:99", "", false},
		{"24:00", "", false},
		{"13:00 PM", "", false},
		{"0:30 AM", "", false},
		{"8:60 AM", "", false},
		{"8:00 AM - 9:00 AM", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTime(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseTime(%q) = %q,%v, want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseTime_RoundTrip(t *testing.T) {
	// WHAT: Every HH:mm survives formatting as 12-hour text and parsing back.
	for mins := 0; mins < 24*60; mins++ {
		hhmm := formatHHMM(mins/60, mins%60)
		display := Format12Hour(hhmm)
		got, ok := ParseTime(display)
		if !ok || got != hhmm {
			t.Fatalf("ParseTime(Format12Hour(%q)=%q) = %q,%v", hhmm, display, got, ok)
		}
	}
}

func TestFormat12Hour(t *testing.T) {
	tests := map[string]string{
		"00:00": "12:00 AM",
		"00:30": "12:30 AM",
		"08:05": "8:05 AM",
		"12:00": "12:00 PM",
		"13:15": "1:15 PM",
		"23:59": "11:59 PM",
		"bogus": "bogus",
	}
	for in, want := range tests {
		if got := Format12Hour(in); got != want {
			t.Errorf("Format12Hour(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
		ok         bool
	}{
		{"8:00 AM - 9:15 AM", "08:00", "09:15", true},
		{"8:00-9:15", "08:00", "09:15", true},
		{"10:00 PM – 1:00 AM", "22:00", "01:00", true},
		{"9:00 AM - 9:00 AM", "09:00", "09:00", true},

		// All or nothing: one good half is not enough.
		{"8:00 AM - garbage", "", "", false},
		{"garbage - 9:00 AM", "", "", false},
		{"8:00 AM - 9:00 AM - 10:00 AM", "", "", false},
		{"8:00 AM", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		start, end, ok := ParseTimeRange(tt.in)
		if ok != tt.ok || start != tt.start || end != tt.end {
			t.Errorf("ParseTimeRange(%q) = %q,%q,%v, want %q,%q,%v",
				tt.in, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
}

func TestFindTimeRange(t *testing.T) {
	tests := []struct {
		line       string
		found      bool
		start, end string
		text, rest string
	}{
		{"8:00 AM - 9:00 AM Team Meeting", true, "08:00", "09:00", "8:00 AM - 9:00 AM", "Team Meeting"},
		{"Practice 1 10:30-11:15 NTT INDYCAR", true, "10:30", "11:15", "10:30-11:15 ", "Practice 1 NTT INDYCAR"},
		// "am" must be a whole word to count as a suffix.
		{"9:00 - 10:00 amateur race", true, "09:00", "10:00", "9:00 - 10:00 ", "amateur race"},
		{"9:00 amateur hour - 10:00", false, "", "", "", ""},
		{"Gates open", false, "", "", "", ""},
		{"25:00 - 26:00 Bogus", true, "", "", "25:00 - 26:00 ", "Bogus"},
	}
	for _, tt := range tests {
		m, found := FindTimeRange(tt.line)
		if found != tt.found {
			t.Errorf("FindTimeRange(%q) found=%v, want %v", tt.line, found, tt.found)
			continue
		}
		if !found {
			continue
		}
		if m.Start != tt.start || m.End != tt.end {
			t.Errorf("FindTimeRange(%q) = %q-%q, want %q-%q", tt.line, m.Start, m.End, tt.start, tt.end)
		}
		if tt.text != "" && m.Text != tt.text {
			t.Errorf("FindTimeRange(%q).Text = %q, want %q", tt.line, m.Text, tt.text)
		}
		if tt.rest != "" && m.Rest != tt.rest {
			t.Errorf("FindTimeRange(%q).Rest = %q, want %q", tt.line, m.Rest, tt.rest)
		}
		if m.Valid() != (tt.start != "") {
			t.Errorf("FindTimeRange(%q).Valid() = %v", tt.line, m.Valid())
		}
	}
}

func TestMinutes(t *testing.T) {
	if m, ok := Minutes("13:45"); !ok || m != 13*60+45 {
		t.Errorf("Minutes(13:45) = %d,%v", m, ok)
	}
	if _, ok := Minutes("8:00 AM"); ok {
		t.Error("Minutes must reject 12-hour text")
	}
}
