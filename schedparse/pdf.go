// CLAUDE:SUMMARY Positioned text acquisition from PDF bytes: per-page glyph reading with rsc.io/pdf, merged into text runs.
// CLAUDE:DEPENDS schedparse/normalize.go
// CLAUDE:EXPORTS ExtractTextItems
package schedparse

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"rsc.io/pdf"
)

// ExtractTextItems reads every page of a PDF and returns its positioned text
// runs with the page count. Pages are read in order; the whole item set is
// needed before any layout analysis can start.
func ExtractTextItems(ctx context.Context, data []byte, layout Layout) ([]TextItem, int, error) {
	layout.defaults()

	r, err := openPDF(data)
	if err != nil {
		return nil, 0, err
	}

	pageCount := r.NumPage()
	var items []TextItem
	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, pageCount, err
		}
		glyphs, err := pageGlyphs(r, pageNr)
		if err != nil {
			return nil, pageCount, err
		}
		items = append(items, mergeGlyphs(glyphs, pageNr, layout)...)
	}
	return items, pageCount, nil
}

// openPDF wraps pdf.NewReader, which panics on some malformed trailers.
func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return r, nil
}

// pageGlyphs returns the glyphs of one page. The content stream
// interpreter panics on unsupported operators; that becomes an error.
func pageGlyphs(r *pdf.Reader, pageNr int) (glyphs []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			glyphs, err = nil, fmt.Errorf("page %d: %v", pageNr, rec)
		}
	}()
	page := r.Page(pageNr)
	if page.V.IsNull() {
		return nil, nil
	}
	return page.Content().Text, nil
}

type runBuilder struct {
	item   TextItem
	sb     strings.Builder
	inkEnd float64 // right edge of the last non-space glyph
	space  bool    // a space glyph is pending
	open   bool
}

// mergeGlyphs joins glyphs into runs. A glyph continues the open run when it
// sits on the same baseline and starts within RunGapFactor em of the run's
// last inked glyph. Explicit space glyphs, or a gap wider than
// SpaceGapFactor em, become a single space.
func mergeGlyphs(glyphs []pdf.Text, pageNr int, layout Layout) []TextItem {
	var items []TextItem
	var rb runBuilder

	flush := func() {
		if !rb.open {
			return
		}
		text := strings.Join(strings.Fields(normalizeText(rb.sb.String())), " ")
		if text != "" {
			rb.item.Text = text
			rb.item.Width = rb.inkEnd - rb.item.X
			items = append(items, rb.item)
		}
		rb = runBuilder{}
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if strings.TrimSpace(g.S) == "" {
			if rb.open {
				rb.space = true
			}
			continue
		}

		size := g.FontSize
		if size <= 0 {
			size = 1
		}

		if rb.open {
			gap := g.X - rb.inkEnd
			runGap := layout.RunGapFactor * size
			sameLine := math.Abs(g.Y-rb.item.Y) <= layout.LineTolerance
			switch {
			case !sameLine || gap > runGap || gap < -runGap:
				flush()
			case rb.space || gap > layout.SpaceGapFactor*size:
				rb.sb.WriteByte(' ')
			}
		}

		if !rb.open {
			rb.open = true
			rb.item = TextItem{
				X:        g.X,
				Y:        g.Y,
				Height:   size,
				FontSize: size,
				Font:     g.Font,
				Page:     pageNr,
			}
			rb.inkEnd = g.X
		}
		rb.space = false
		rb.sb.WriteString(g.S)
		rb.inkEnd = math.Max(rb.inkEnd, g.X+g.W)
	}
	flush()

	return items
}
