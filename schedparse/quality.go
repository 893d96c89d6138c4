// CLAUDE:SUMMARY PDF quality inspection with pdfcpu: image-only pages and garbled text become import warnings.
// CLAUDE:EXPORTS PDFQuality, InspectPDF
package schedparse

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFQuality captures what pdfcpu sees of the document structure.
type PDFQuality struct {
	PageCount  int   `json:"page_count"`
	ImagePages []int `json:"image_pages,omitempty"` // 1-based pages holding image XObjects
}

var disableConfigDir sync.Once

// InspectPDF validates the document with pdfcpu and lists pages carrying
// images. It never reads text.
func InspectPDF(data []byte) (q *PDFQuality, err error) {
	disableConfigDir.Do(api.DisableConfigDir)

	defer func() {
		if rec := recover(); rec != nil {
			q, err = nil, fmt.Errorf("pdfcpu: %v", rec)
		}
	}()

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	q = &PDFQuality{PageCount: ctx.PageCount}
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				q.ImagePages = append(q.ImagePages, pageNr)
			}
		}
	}
	return q, nil
}

// qualityWarnings turns inspection results and the extracted items into
// advisory messages: scanned pages (images, no text) and garbled glyph text.
func qualityWarnings(q *PDFQuality, items []TextItem) []string {
	var warnings []string

	if q != nil && len(q.ImagePages) > 0 {
		withText := make(map[int]bool)
		for _, it := range items {
			withText[it.Page] = true
		}
		var scanned []int
		for _, p := range q.ImagePages {
			if !withText[p] {
				scanned = append(scanned, p)
			}
		}
		sort.Ints(scanned)
		if len(scanned) > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"Page(s) %s contain only images. Scanned schedules are not supported; export the schedule as a text PDF.",
				joinInts(scanned)))
		}
	}

	if len(items) > 0 {
		var sb strings.Builder
		for _, it := range items {
			sb.WriteString(it.Text)
			sb.WriteByte(' ')
		}
		if printableRatio(sb.String()) < 0.85 {
			warnings = append(warnings,
				"Extracted text looks garbled (fonts without a Unicode mapping). Some events may be missing or misspelled.")
		}
	}
	return warnings
}

// printableRatio is the share of runes that are printable and outside the
// Private Use Area, U+FFFD and control characters.
func printableRatio(text string) float64 {
	total, printable := 0, 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	switch {
	case r >= 0xE000 && r <= 0xF8FF:
		return true
	case r == 0xFFFD:
		return true
	case r < 0x0020 && r != '\n' && r != '\r' && r != '\t':
		return true
	}
	return false
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
