// Package xlsx extracts text and structure from Excel workbooks.
package xlsx

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

// Extractor handles XLSX workbooks.
type Extractor struct{}

// New creates a new XLSX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the document format this extractor handles.
func (e *Extractor) Kind() domain.Kind {
	return domain.KindSpreadsheet
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMESpreadsheet}
}

// Extract reads each worksheet in workbook order. Every sheet becomes
// one section whose content is its non-blank rows rendered as
// pipe-joined cells, and the flat text carries a "Sheet: {name}"
// marker line before each sheet's rows.
func (e *Extractor) Extract(_ context.Context, content []byte) (string, *domain.Structure, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: not a zip archive", domain.ErrExtractionFailed)
	}

	shared, err := readSharedStrings(reader)
	if err != nil {
		return "", nil, err
	}

	names, err := sheetNames(reader)
	if err != nil {
		return "", nil, err
	}

	structure := &domain.Structure{Kind: domain.KindSpreadsheet}
	var lines []string

	for i, name := range names {
		raw, err := readArchiveFile(reader, fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1))
		if err != nil {
			return "", nil, err
		}
		if raw == nil {
			continue
		}

		var sheet worksheetXML
		if err := xml.Unmarshal(raw, &sheet); err != nil {
			return "", nil, fmt.Errorf("%w: sheet %q: %w", domain.ErrExtractionFailed, name, err)
		}

		rows := sheet.renderRows(shared)
		if len(rows) == 0 {
			continue
		}

		structure.Sections = append(structure.Sections, domain.Section{
			Title:   name,
			Type:    domain.SectionSheet,
			Content: rows,
		})
		lines = append(lines, "Sheet: "+name)
		lines = append(lines, rows...)
	}

	return strings.Join(lines, "\n"), structure, nil
}

// workbookXML mirrors xl/workbook.xml.
type workbookXML struct {
	Sheets struct {
		Sheets []struct {
			Name string `xml:"name,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

// worksheetXML mirrors xl/worksheets/sheetN.xml.
type worksheetXML struct {
	SheetData struct {
		Rows []struct {
			Cells []cell `xml:"c"`
		} `xml:"row"`
	} `xml:"sheetData"`
}

type cell struct {
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline struct {
		Text string `xml:"t"`
	} `xml:"is"`
}

// sharedStringsXML mirrors xl/sharedStrings.xml. Each entry is either
// a plain <t> or a sequence of rich-text runs.
type sharedStringsXML struct {
	Items []struct {
		Text string `xml:"t"`
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

func sheetNames(reader *zip.Reader) ([]string, error) {
	raw, err := readArchiveFile(reader, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var wb workbookXML
	if err := xml.Unmarshal(raw, &wb); err != nil {
		return nil, fmt.Errorf("%w: workbook: %w", domain.ErrExtractionFailed, err)
	}

	names := make([]string, 0, len(wb.Sheets.Sheets))
	for _, sheet := range wb.Sheets.Sheets {
		names = append(names, sheet.Name)
	}
	return names, nil
}

func readSharedStrings(reader *zip.Reader) ([]string, error) {
	raw, err := readArchiveFile(reader, "xl/sharedStrings.xml")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var ss sharedStringsXML
	if err := xml.Unmarshal(raw, &ss); err != nil {
		return nil, fmt.Errorf("%w: shared strings: %w", domain.ErrExtractionFailed, err)
	}

	strs := make([]string, 0, len(ss.Items))
	for _, item := range ss.Items {
		if len(item.Runs) > 0 {
			var b strings.Builder
			for _, run := range item.Runs {
				b.WriteString(run.Text)
			}
			strs = append(strs, b.String())
			continue
		}
		strs = append(strs, item.Text)
	}
	return strs, nil
}

// renderRows turns the sheet's rows into pipe-joined lines, dropping
// rows with no cell values.
func (w worksheetXML) renderRows(shared []string) []string {
	var rows []string
	for _, row := range w.SheetData.Rows {
		var cells []string
		for _, c := range row.Cells {
			if value := c.resolve(shared); value != "" {
				cells = append(cells, value)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	}
	return rows
}

// resolve returns the cell's display value. Shared-string cells look
// up their index; inline and formula-string cells carry text directly.
func (c cell) resolve(shared []string) string {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return strings.TrimSpace(shared[idx])
	case "inlineStr":
		return strings.TrimSpace(c.Inline.Text)
	default:
		return strings.TrimSpace(c.Value)
	}
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
