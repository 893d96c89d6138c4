package schedparse

import "strings"

// SeriesRule maps title keywords to a series. Keywords match as
// case-insensitive substrings.
type SeriesRule struct {
	Series   Series   `json:"series" yaml:"series"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultSeriesRules returns the built-in classification table.
func DefaultSeriesRules() []SeriesRule {
	return []SeriesRule{
		{SeriesIndyCar, []string{"NTT INDYCAR", "INDYCAR SERIES", "NICS"}},
		{SeriesIndyNXT, []string{"INDY NXT", "INXT"}},
		{SeriesUSF2000, []string{"USF2000", "USF 2000"}},
		{SeriesMX5Cup, []string{"MX-5", "MX5", "MAZDA"}},
		{SeriesNCTS, []string{"NCTS", "NASCAR", "CRAFTSMAN TRUCK"}},
	}
}

// Classifier assigns a series to a title. The first matching rule wins;
// titles matching nothing are GENERAL.
type Classifier struct {
	rules []SeriesRule
}

// NewClassifier builds a Classifier. Keywords are upper-cased once here.
func NewClassifier(rules []SeriesRule) *Classifier {
	c := &Classifier{rules: make([]SeriesRule, 0, len(rules))}
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToUpper(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		c.rules = append(c.rules, SeriesRule{Series: r.Series, Keywords: kws})
	}
	return c
}

// Classify returns the series for title.
func (c *Classifier) Classify(title string) Series {
	upper := strings.ToUpper(title)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(upper, kw) {
				return r.Series
			}
		}
	}
	return SeriesGeneral
}
