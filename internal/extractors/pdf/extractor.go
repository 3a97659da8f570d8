// Package pdf extracts text and structure from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the document format this extractor handles.
func (e *Extractor) Kind() domain.Kind {
	return domain.KindPDF
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMEPDF}
}

// Extract reads each page's plain text. Pages that yield no text, such
// as scanned images, are skipped. Page numbers are 1-based and the
// flat text carries a "Page {n}:" marker before each page.
func (e *Extractor) Extract(_ context.Context, content []byte) (string, *domain.Structure, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	structure := &domain.Structure{Kind: domain.KindPDF}
	var lines []string

	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		structure.Sections = append(structure.Sections, domain.Section{
			Title:   fmt.Sprintf("Page %d", n),
			Level:   n,
			Type:    domain.SectionPage,
			Content: []string{text},
		})
		lines = append(lines, fmt.Sprintf("Page %d:", n), text)
	}

	return strings.Join(lines, "\n"), structure, nil
}
