// Package docx extracts text and structure from Word documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the document format this extractor handles.
func (e *Extractor) Kind() domain.Kind {
	return domain.KindWord
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMEWord}
}

// Extract walks the document's paragraphs in order. A paragraph styled
// as a heading starts a new section and is rendered into the flat text
// as a markdown-style heading line. Tables are accumulated separately
// as sections of type table, each row pipe-joined from its non-empty
// cells.
func (e *Extractor) Extract(_ context.Context, content []byte) (string, *domain.Structure, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: not a zip archive", domain.ErrExtractionFailed)
	}

	raw, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return "", nil, err
	}
	if raw == nil {
		return "", &domain.Structure{Kind: domain.KindWord}, nil
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	structure := &domain.Structure{Kind: domain.KindWord}
	var lines []string
	var current *domain.Section

	flush := func() {
		if current != nil && !current.IsEmpty() {
			structure.Sections = append(structure.Sections, *current)
		}
		current = nil
	}

	for _, para := range doc.Body.Paragraphs {
		text := para.text()
		if text == "" {
			continue
		}

		if level := para.headingLevel(); level > 0 {
			flush()
			current = &domain.Section{
				Title: text,
				Level: level,
				Type:  domain.SectionHeading,
			}
			lines = append(lines, strings.Repeat("#", level)+" "+text)
			continue
		}

		if current == nil {
			current = &domain.Section{Type: domain.SectionHeading}
		}
		current.Content = append(current.Content, text)
		lines = append(lines, text)
	}
	flush()

	for i, tbl := range doc.Body.Tables {
		rows := tbl.rows()
		if len(rows) == 0 {
			continue
		}
		structure.Sections = append(structure.Sections, domain.Section{
			Title:   fmt.Sprintf("Table %d", i+1),
			Type:    domain.SectionTable,
			Content: rows,
		})
		lines = append(lines, rows...)
	}

	return strings.Join(lines, "\n"), structure, nil
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
		Tables     []table     `xml:"tbl"`
	} `xml:"body"`
}

type paragraph struct {
	Props struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

type table struct {
	Rows []tableRow `xml:"tr"`
}

type tableRow struct {
	Cells []tableCell `xml:"tc"`
}

type tableCell struct {
	Paragraphs []paragraph `xml:"p"`
}

// text concatenates the paragraph's runs.
func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

// headingLevel returns the heading level for styled paragraphs, or 0.
// "Title" counts as level 1; "Heading3" as level 3.
func (p paragraph) headingLevel() int {
	style := p.Props.Style.Val
	switch {
	case style == "Title":
		return 1
	case strings.HasPrefix(style, "Heading"):
		level, err := strconv.Atoi(strings.TrimPrefix(style, "Heading"))
		if err != nil || level < 1 {
			return 1
		}
		return level
	}
	return 0
}

// rows renders each table row as pipe-joined cell text, skipping empty
// cells and empty rows.
func (t table) rows() []string {
	var rows []string
	for _, row := range t.Rows {
		var cells []string
		for _, cell := range row.Cells {
			var parts []string
			for _, p := range cell.Paragraphs {
				if text := p.text(); text != "" {
					parts = append(parts, text)
				}
			}
			if cellText := strings.Join(parts, " "); cellText != "" {
				cells = append(cells, cellText)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	}
	return rows
}

// readArchiveFile returns the named file's bytes, or nil when absent.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", domain.ErrExtractionFailed, name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrExtractionFailed, name, err)
		}
		return data, nil
	}
	return nil, nil
}
