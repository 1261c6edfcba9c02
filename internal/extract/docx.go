package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	docxBody = "word/document.xml"
	odtBody  = "content.xml"
)

// paragraphMarkup names the elements of a word-processor body
type paragraphMarkup struct {
	paragraphs map[string]bool
	tabs       map[string]bool
	breaks     map[string]bool
	spaces     map[string]bool
}

var (
	// WordprocessingML: <w:p>, <w:tab/>, <w:br/>, <w:cr/>
	docxMarkup = paragraphMarkup{
		paragraphs: map[string]bool{"p": true},
		tabs:       map[string]bool{"tab": true},
		breaks:     map[string]bool{"br": true, "cr": true},
	}

	// OpenDocument: <text:p>, <text:h>, <text:tab/>, <text:line-break/>, <text:s/>
	odtMarkup = paragraphMarkup{
		paragraphs: map[string]bool{"p": true, "h": true},
		tabs:       map[string]bool{"tab": true},
		breaks:     map[string]bool{"line-break": true},
		spaces:     map[string]bool{"s": true},
	}
)

// extractDOCX joins the paragraphs of word/document.xml with newlines
func extractDOCX(data []byte) (string, error) {
	return extractZippedXML(data, FormatDOCX, docxBody, docxMarkup)
}

// extractODT joins the paragraphs and headings of content.xml with newlines
func extractODT(data []byte) (string, error) {
	return extractZippedXML(data, FormatODT, odtBody, odtMarkup)
}

func extractZippedXML(data []byte, format Format, member string, markup paragraphMarkup) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: format, Op: "open zip", Err: err}
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == member {
			body = f
			break
		}
	}
	if body == nil {
		return "", &ExtractionError{Format: format, Op: "open zip", Err: fmt.Errorf("%s not found in archive", member)}
	}

	rc, err := body.Open()
	if err != nil {
		return "", &ExtractionError{Format: format, Op: "open " + member, Err: err}
	}
	defer rc.Close()

	text, err := paragraphText(rc, markup)
	if err != nil {
		return "", &ExtractionError{Format: format, Op: "parse " + member, Err: err}
	}
	return text, nil
}

// paragraphText streams the XML body and returns one line per paragraph. Tabs
// inside a paragraph are kept so table-like rows survive.
func paragraphText(r io.Reader, markup paragraphMarkup) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch {
			case markup.paragraphs[name]:
				if depth == 0 {
					current.Reset()
				}
				depth++
			case depth == 0:
			case markup.tabs[name]:
				current.WriteByte('\t')
			case markup.breaks[name]:
				current.WriteByte('\n')
			case markup.spaces[name]:
				current.WriteString(strings.Repeat(" ", spaceCount(t)))
			}

		case xml.CharData:
			if depth > 0 {
				current.Write(t)
			}

		case xml.EndElement:
			if markup.paragraphs[t.Name.Local] && depth > 0 {
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, strings.TrimRight(current.String(), " "))
				}
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}

// spaceCount reads the text:c attribute of an ODF <text:s/> element
func spaceCount(el xml.StartElement) int {
	for _, attr := range el.Attr {
		if attr.Name.Local != "c" {
			continue
		}
		n := 0
		if _, err := fmt.Sscanf(attr.Value, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
