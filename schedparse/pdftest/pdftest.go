// Package pdftest writes small text-only PDFs with exactly placed strings,
// for tests of the schedule parsers.
package pdftest

import (
	"fmt"
	"strings"
)

// Text is a string drawn at (X, Y) in 10pt Helvetica.
type Text struct {
	X, Y float64
	S    string
}

// Build writes a PDF with one page per entry of pages. Every string gets
// its own text matrix so positions are exact. The font carries uniform
// 500/1000 em widths, so glyphs advance and dropped space glyphs still
// show up as gaps.
func Build(pages ...[]Text) []byte {
	n := len(pages)
	// Objects: 1 catalog, 2 pages, 3 font, then page/content pairs.
	total := 3 + 2*n
	offsets := make([]int, total+1)

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), n)

	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	offsets[3] = b.Len()
	fmt.Fprintf(&b, "3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>\nendobj\n", widths)

	for i, items := range pages {
		pageObj, contentObj := 4+2*i, 5+2*i

		var s strings.Builder
		for _, it := range items {
			fmt.Fprintf(&s, "BT\n/F1 10 Tf\n1 0 0 1 %.2f %.2f Tm\n(%s) Tj\nET\n", it.X, it.Y, escape(it.S))
		}
		stream := s.String()

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 792 612] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", pageObj, contentObj)

		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", total+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)
	return []byte(b.String())
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}
