package extractors

import (
	"fmt"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
	"github.com/halcyon-labs/docindexer/internal/extractors/docx"
	"github.com/halcyon-labs/docindexer/internal/extractors/pdf"
	"github.com/halcyon-labs/docindexer/internal/extractors/pptx"
	"github.com/halcyon-labs/docindexer/internal/extractors/xlsx"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects the extractor for a document's format.
type Registry struct {
	byKind map[domain.Kind]driven.Extractor
}

// NewRegistry creates a registry with the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	byKind := make(map[domain.Kind]driven.Extractor, len(extractors))
	for _, e := range extractors {
		byKind[e.Kind()] = e
	}
	return &Registry{byKind: byKind}
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	return NewRegistry(docx.New(), xlsx.New(), pptx.New(), pdf.New())
}

// ForDocument returns the extractor matching the document's MIME type
// or filename extension.
func (r *Registry) ForDocument(doc domain.DocumentInfo) (driven.Extractor, error) {
	kind := doc.Kind()
	if e, ok := r.byKind[kind]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedType, doc.MIMEType, doc.Name)
}
