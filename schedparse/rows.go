package schedparse

// ExtractDepartmentRows walks lines top to bottom. A line naming a day sets
// the current day, and whatever follows the day token on that line is tried
// as an entry. Other lines under a known day must hold a time range plus a
// name. Lines before the first day are ignored. Entries never span lines.
func ExtractDepartmentRows(lines []Line) []DepartmentItem {
	var items []DepartmentItem
	var currentDay Day

	for _, line := range lines {
		if day, ok := DetectDay(line.Text); ok {
			currentDay = day
			if rest := StripDay(line.Text); rest != "" {
				if it, ok := parseTimedLine(rest, currentDay); ok {
					items = append(items, it)
				}
			}
			continue
		}

		if currentDay == "" {
			continue
		}
		if it, ok := parseTimedLine(line.Text, currentDay); ok {
			items = append(items, it)
		}
	}
	return items
}

// parseTimedLine reads "time-range name". A range with no name left over
// is rejected: stray numbers are not entries.
func parseTimedLine(text string, day Day) (DepartmentItem, bool) {
	m, found := FindTimeRange(text)
	if !found || !m.Valid() || m.Rest == "" {
		return DepartmentItem{}, false
	}
	return DepartmentItem{
		Day:       day,
		StartTime: m.Start,
		EndTime:   m.End,
		Name:      m.Rest,
		RawText:   text,
	}, true
}
