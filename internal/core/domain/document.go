package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind identifies a supported document format.
// The set is closed: extractors and the chunker dispatch on it.
type Kind string

const (
	// KindWord is a word-processor document (.docx).
	KindWord Kind = "document"

	// KindSpreadsheet is a spreadsheet workbook (.xlsx).
	KindSpreadsheet Kind = "spreadsheet"

	// KindPresentation is a slide deck (.pptx).
	KindPresentation Kind = "presentation"

	// KindPDF is a PDF file.
	KindPDF Kind = "pdf"

	// KindUnknown is any format the pipeline cannot index.
	KindUnknown Kind = ""
)

// RootFolder is the folder path recorded for documents at the top
// of the indexed tree.
const RootFolder = "/"

// MIME types for the indexable formats.
const (
	MIMEWord         = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMESpreadsheet  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MIMEPDF          = "application/pdf"
)

// KindFor determines the document kind from a MIME type, falling back
// to the filename extension when the MIME type is missing or generic.
func KindFor(mimeType, name string) Kind {
	switch {
	case strings.Contains(mimeType, "wordprocessingml"):
		return KindWord
	case strings.Contains(mimeType, "spreadsheetml"):
		return KindSpreadsheet
	case strings.Contains(mimeType, "presentationml"):
		return KindPresentation
	case strings.Contains(mimeType, "pdf"):
		return KindPDF
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return KindWord
	case ".xlsx":
		return KindSpreadsheet
	case ".pptx":
		return KindPresentation
	case ".pdf":
		return KindPDF
	}

	return KindUnknown
}

// DocumentInfo describes a document discovered in the source store.
// Identity is the source store's file ID; the descriptor is immutable
// once listed.
type DocumentInfo struct {
	// ID is the source store's identifier for the document.
	ID string

	// Name is the filename including extension.
	Name string

	// Path is the folder path within the indexed tree.
	// Empty for documents at the root.
	Path string

	// MIMEType is the declared content type.
	MIMEType string

	// ModifiedTime is when the document was last modified in the source.
	ModifiedTime time.Time

	// Size is the document size in bytes.
	Size int64
}

// Kind returns the document's format kind.
func (d DocumentInfo) Kind() Kind {
	return KindFor(d.MIMEType, d.Name)
}

// Folder returns the parent folder path, or RootFolder when the
// document sits at the top of the tree.
func (d DocumentInfo) Folder() string {
	if d.Path == "" {
		return RootFolder
	}
	return d.Path
}

// Indexable reports whether the document is one of the supported formats.
func (d DocumentInfo) Indexable() bool {
	return d.Kind() != KindUnknown
}
