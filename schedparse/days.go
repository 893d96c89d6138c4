package schedparse

import (
	"regexp"
	"strings"
)

type dayPattern struct {
	day      Day
	patterns []*regexp.Regexp
}

// dayTable is checked in order; the first day with a matching pattern wins.
// A string naming two days resolves to the earlier entry.
var dayTable = []dayPattern{
	{Wednesday, []*regexp.Regexp{regexp.MustCompile(`(?i)wednesday`), regexp.MustCompile(`(?i)\bwed\b`)}},
	{Thursday, []*regexp.Regexp{regexp.MustCompile(`(?i)thursday`), regexp.MustCompile(`(?i)\bthu`)}},
	{Friday, []*regexp.Regexp{regexp.MustCompile(`(?i)friday`), regexp.MustCompile(`(?i)\bfri\b`)}},
	{Saturday, []*regexp.Regexp{regexp.MustCompile(`(?i)saturday`), regexp.MustCompile(`(?i)\bsat\b`)}},
	{Sunday, []*regexp.Regexp{regexp.MustCompile(`(?i)sunday`), regexp.MustCompile(`(?i)\bsun\b`)}},
}

// DetectDay finds a day name or abbreviation anywhere in text.
func DetectDay(text string) (Day, bool) {
	d, _, ok := locateDay(text)
	return d, ok
}

// StripDay removes the day token DetectDay matched and returns the
// remaining text, trimmed. It returns text unchanged when no day matches.
func StripDay(text string) string {
	_, loc, ok := locateDay(text)
	if !ok {
		return strings.TrimSpace(text)
	}
	// "Thurs." matched as "thu": swallow the rest of the word.
	end := loc[1]
	for end < len(text) && (isASCIILetter(text[end]) || text[end] == '.' || text[end] == ',' || text[end] == ':') {
		end++
	}
	rest := text[:loc[0]] + " " + text[end:]
	return strings.Join(strings.Fields(rest), " ")
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func locateDay(text string) (Day, []int, bool) {
	for _, dp := range dayTable {
		for _, re := range dp.patterns {
			if loc := re.FindStringIndex(text); loc != nil {
				return dp.day, loc, true
			}
		}
	}
	return "", nil, false
}
