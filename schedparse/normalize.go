package schedparse

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// dashFolder maps the dash look-alikes found in exported schedules to the
// en dash accepted by TimeRangePattern.
var dashFolder = strings.NewReplacer(
	"‐", "–", // hyphen
	"‑", "–", // non-breaking hyphen
	"‒", "–", // figure dash
	"—", "–", // em dash
	"―", "–", // horizontal bar
	"−", "–", // minus sign
	"﹣", "–", // small hyphen-minus
)

// normalizeText applies NFKC (fullwidth digits, no-break spaces, ligatures)
// and folds dash variants.
func normalizeText(s string) string {
	if s == "" {
		return s
	}
	return dashFolder.Replace(norm.NFKC.String(s))
}
