package schedparse

import (
	"math"
	"sort"
	"strings"
)

// GroupIntoLines clusters items into reading-order lines. Items are ordered
// by page, then top to bottom (descending y), then left to right. A new line
// starts when an item's y is more than tolerance away from the y of the
// line's first item, or when the page changes.
func GroupIntoLines(items []TextItem, tolerance float64) []Line {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]TextItem, len(items))
	copy(sorted, items)
	sortReadingOrder(sorted)

	var lines []Line
	var sb strings.Builder
	cur := Line{Y: sorted[0].Y, Page: sorted[0].Page}

	flush := func() {
		if text := strings.TrimSpace(sb.String()); text != "" {
			cur.Text = text
			lines = append(lines, cur)
		}
		sb.Reset()
	}

	for _, it := range sorted {
		if it.Page != cur.Page || math.Abs(it.Y-cur.Y) > tolerance {
			flush()
			cur = Line{Y: it.Y, Page: it.Page}
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(it.Text)
	}
	flush()

	return lines
}

func sortReadingOrder(items []TextItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.X < b.X
	})
}
