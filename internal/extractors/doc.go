// Package extractors provides format-specific text extraction.
//
// Each sub-package handles one document format and implements the
// driven.Extractor interface, turning raw bytes into flat text plus a
// structure tree. The Registry selects an extractor by MIME type or
// filename extension.
//
// Supported formats:
//   - docx: Word documents (archive/zip, word/document.xml)
//   - xlsx: Excel workbooks (archive/zip, xl/worksheets)
//   - pptx: PowerPoint decks (archive/zip, ppt/slides)
//   - pdf:  PDF files (ledongthuc/pdf, one section per page)
package extractors
