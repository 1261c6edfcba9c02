package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfStringRe matches PDF string literals: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// extractPDFStreams reads page text straight from the content-stream text
// operators. It has no glyph positions, so rows follow the order in which the
// producer wrote them.
func extractPDFStreams(data []byte) ([]string, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	pages := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pages = append(pages, streamPageText(ctx, pageNr))
	}
	return pages, nil
}

func streamPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromStream(data)
}

// textFromStream interprets the text-showing and line-positioning operators of a
// content stream. A vertical move starts a new row; a horizontal-only move is a
// word or column break.
func textFromStream(data []byte) string {
	var (
		lines []string
		cur   strings.Builder
	)
	newline := func() {
		if line := strings.TrimRight(cur.String(), " "); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				cur.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")), bytes.HasSuffix(line, []byte(`"`)):
			newline()
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				cur.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			tx, ty := moveOperands(line)
			switch {
			case ty != 0:
				newline()
			case tx != 0 && cur.Len() > 0:
				cur.WriteString(columnSeparator)
			}
		case bytes.Equal(line, []byte("T*")), bytes.Equal(line, []byte("ET")):
			newline()
		}
	}
	newline()
	return strings.Join(lines, "\n")
}

// moveOperands parses "tx ty Td"
func moveOperands(line []byte) (float64, float64) {
	fields := strings.Fields(string(line))
	if len(fields) < 3 {
		return 0, 0
	}
	tx, errX := strconv.ParseFloat(fields[len(fields)-3], 64)
	ty, errY := strconv.ParseFloat(fields[len(fields)-2], 64)
	if errX != nil || errY != nil {
		return 0, 0
	}
	return tx, ty
}

// decodePDFString handles the escape sequences of a PDF literal string
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				continue
			}
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}
