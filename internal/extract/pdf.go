package extract

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// rowKeyUnit is the vertical jitter, in points, tolerated within one row
	rowKeyUnit = 2.0

	// columnGapFactor is the horizontal gap, in font sizes, that separates
	// two table columns rather than two words
	columnGapFactor = 3.0

	// wordGapFactor is the smallest gap, in font sizes, treated as a space
	wordGapFactor = 0.15

	columnSeparator = "   "
)

// extractPDF reads per-page text in visual row order. Pages ledongthuc/pdf
// cannot lay out are retried with the pdfcpu content-stream reader.
func extractPDF(data []byte) ([]string, error) {
	pages, err := extractPDFRows(data)
	if err == nil && hasText(pages) {
		return pages, nil
	}

	fallback, fbErr := extractPDFStreams(data)
	if fbErr == nil && hasText(fallback) {
		return fallback, nil
	}

	if err == nil {
		err = fbErr
	}
	if err == nil {
		err = ErrNoText
	}
	return nil, &ExtractionError{Format: FormatPDF, Op: "read", Err: err}
}

func extractPDFRows(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		pages = append(pages, pageRows(r, pageNum))
	}
	return pages, nil
}

// pageRows lays out one page. A page the library cannot decode is empty.
func pageRows(r *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	return layoutRows(page.Content().Text)
}

type row struct {
	key    float64
	glyphs []pdf.Text
}

// layoutRows groups positioned glyphs into rows by rounded baseline, orders rows
// top to bottom and glyphs left to right, and joins the rows with newlines.
// Wide horizontal gaps become a three-space column separator.
func layoutRows(texts []pdf.Text) string {
	rows := make(map[float64]*row)
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		key := math.Round(t.Y / rowKeyUnit)
		rw, ok := rows[key]
		if !ok {
			rw = &row{key: key}
			rows[key] = rw
		}
		rw.glyphs = append(rw.glyphs, t)
	}

	ordered := make([]*row, 0, len(rows))
	for _, rw := range rows {
		ordered = append(ordered, rw)
	}
	// PDF user space grows upward
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key > ordered[j].key })

	lines := make([]string, 0, len(ordered))
	for _, rw := range ordered {
		if line := strings.TrimRight(joinRow(rw.glyphs), " "); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func joinRow(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			gap := g.X - (prev.X + prev.W)
			size := g.FontSize
			if size <= 0 {
				size = 10
			}
			trailing := trailingSpaces(b.String())
			switch {
			case gap > columnGapFactor*size:
				if pad := len(columnSeparator) - trailing; pad > 0 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			case gap > wordGapFactor*size && trailing == 0 && g.S != " ":
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}

// trailingSpaces counts the spaces s already ends with
func trailingSpaces(s string) int {
	return len(s) - len(strings.TrimRight(s, " "))
}

func hasText(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}
