package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

func TestNewDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()
	require.NotNil(t, registry)

	tests := []struct {
		name string
		doc  domain.DocumentInfo
		kind domain.Kind
	}{
		{"word by mime", domain.DocumentInfo{Name: "report", MIMEType: domain.MIMEWord}, domain.KindWord},
		{"spreadsheet by mime", domain.DocumentInfo{Name: "budget", MIMEType: domain.MIMESpreadsheet}, domain.KindSpreadsheet},
		{"presentation by mime", domain.DocumentInfo{Name: "deck", MIMEType: domain.MIMEPresentation}, domain.KindPresentation},
		{"pdf by mime", domain.DocumentInfo{Name: "scan", MIMEType: domain.MIMEPDF}, domain.KindPDF},
		{"word by extension", domain.DocumentInfo{Name: "report.docx", MIMEType: "application/octet-stream"}, domain.KindWord},
		{"pdf by extension", domain.DocumentInfo{Name: "scan.pdf"}, domain.KindPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := registry.ForDocument(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, extractor.Kind())
		})
	}
}

func TestForDocument_Unsupported(t *testing.T) {
	registry := NewDefaultRegistry()

	_, err := registry.ForDocument(domain.DocumentInfo{Name: "photo.png", MIMEType: "image/png"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestNewRegistry_Empty(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.ForDocument(domain.DocumentInfo{Name: "report.docx", MIMEType: domain.MIMEWord})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
