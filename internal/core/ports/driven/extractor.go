package driven

import (
	"context"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// Extractor turns raw document bytes into plain text plus a structure tree.
//
// A fully failed extraction returns an error; the orchestrator treats a
// document producing no text as zero chunks rather than a failure.
type Extractor interface {
	// Kind returns the document format this extractor handles.
	Kind() domain.Kind

	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Extract parses the document bytes. The returned text is the flat
	// rendition fed to the chunker; the structure tree carries the
	// section boundaries the chunker dispatches on.
	Extract(ctx context.Context, content []byte) (string, *domain.Structure, error)
}

// ExtractorRegistry selects the extractor for a document.
type ExtractorRegistry interface {
	// ForDocument returns the extractor matching the document's MIME
	// type or filename extension. Returns domain.ErrUnsupportedType
	// when no extractor handles the format.
	ForDocument(doc domain.DocumentInfo) (Extractor, error)
}
