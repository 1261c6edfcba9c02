// Package extract turns document bytes into ordered page texts.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported input document format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatODT  Format = "odt"
	FormatText Format = "text"
)

// ErrNoText is returned when a document decodes but contains no text at all
var ErrNoText = errors.New("no text content found")

// ExtractionError describes a failed decode of one document
type ExtractionError struct {
	Format Format `json:"format"`
	Op     string `json:"operation"`
	Err    error  `json:"error"`
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed in %s: %v", e.Format, e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DetectFormat chooses the decoder from the filename extension. Anything that
// is not a PDF or word-processor document is treated as plain text.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".odt":
		return FormatODT
	default:
		return FormatText
	}
}

// SupportedExtensions lists the extensions with a dedicated decoder or that are
// commonly used for plain-text syllabi.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".odt", ".txt", ".md"}
}

// Pages extracts the text of every page of a document. PDFs yield one entry per
// page; word-processor documents and text yield a single page.
//
// On failure the returned pages are a single empty page together with the
// error, so callers that only log the error still get a usable result.
func Pages(data []byte, filename string) (pages []string, err error) {
	format := DetectFormat(filename)
	defer func() {
		if r := recover(); r != nil {
			pages = []string{""}
			err = &ExtractionError{Format: format, Op: "decode", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	switch format {
	case FormatPDF:
		pages, err = extractPDF(data)
	case FormatDOCX:
		var text string
		text, err = extractDOCX(data)
		pages = []string{text}
	case FormatODT:
		var text string
		text, err = extractODT(data)
		pages = []string{text}
	default:
		pages = []string{decodeText(data)}
	}

	if err != nil {
		return []string{""}, err
	}
	if len(pages) == 0 {
		pages = []string{""}
	}
	return pages, nil
}
